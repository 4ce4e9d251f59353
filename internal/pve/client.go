// Package pve is a minimal client for the Proxmox VE HTTP API: ticket
// authentication, version lookup, and the list endpoints the probe reads.
package pve

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pvemon/check-pve/internal/resource"
)

// Config carries the connection settings shared by all candidate hosts.
type Config struct {
	Port     int
	Username string
	Realm    string
	Password string
	Insecure bool
}

// Client talks to one cluster host. Login must succeed before any other
// call; the session ticket rides along as a cookie on every request.
type Client struct {
	host       string
	baseURL    string
	cfg        Config
	ticket     string
	csrfToken  string
	httpClient *http.Client
}

// NewClient creates a client for one host. A host may carry its own
// ":port", overriding cfg.Port. With cfg.Insecure the server certificate is
// not verified, as clusters commonly run self-signed certificates.
func NewClient(host string, cfg Config) *Client {
	addr := host
	if !strings.Contains(addr, ":") {
		addr = fmt.Sprintf("%s:%d", addr, cfg.Port)
	}
	transport := &http.Transport{}
	if cfg.Insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &Client{
		host:    host,
		baseURL: "https://" + addr + "/api2/json",
		cfg:     cfg,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

// Host returns the host this client was created for.
func (c *Client) Host() string {
	return c.host
}

// Login authenticates against the host and stores the session ticket and
// CSRF prevention token.
func (c *Client) Login(ctx context.Context) error {
	form := url.Values{
		"username": {c.cfg.Username + "@" + c.cfg.Realm},
		"password": {c.cfg.Password},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/access/ticket", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("login failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var ticket struct {
		Data struct {
			Ticket    string `json:"ticket"`
			CSRFToken string `json:"CSRFPreventionToken"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ticket); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if ticket.Data.Ticket == "" {
		return fmt.Errorf("login returned no ticket")
	}

	c.ticket = ticket.Data.Ticket
	c.csrfToken = ticket.Data.CSRFToken
	slog.Debug("logged in", "host", c.host, "user", c.cfg.Username)
	return nil
}

// CheckTicket verifies the session ticket is accepted by the API.
func (c *Client) CheckTicket(ctx context.Context) error {
	if c.ticket == "" {
		return fmt.Errorf("not logged in")
	}
	if err := c.get(ctx, "/version", nil); err != nil {
		return fmt.Errorf("ticket check: %w", err)
	}
	return nil
}

type versionResponse struct {
	Data struct {
		Version string `json:"version"`
		Release string `json:"release"`
	} `json:"data"`
}

// Version returns the API version of the connected host.
func (c *Client) Version(ctx context.Context) (string, error) {
	var v versionResponse
	if err := c.get(ctx, "/version", &v); err != nil {
		return "", err
	}
	return v.Data.Version, nil
}

// Get fetches a list endpoint such as /cluster/resources or /cluster/status
// and returns its objects. The API wraps every response in a data envelope.
func (c *Client) Get(ctx context.Context, path string) ([]resource.Object, error) {
	var list struct {
		Data []resource.Object `json:"data"`
	}
	if err := c.get(ctx, path, &list); err != nil {
		return nil, err
	}
	slog.Debug("fetched objects", "host", c.host, "path", path, "count", len(list.Data))
	return list.Data, nil
}

func (c *Client) get(ctx context.Context, path string, response any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if c.ticket != "" {
		req.AddCookie(&http.Cookie{Name: "PVEAuthCookie", Value: c.ticket})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if response != nil {
		if err := json.NewDecoder(resp.Body).Decode(response); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
