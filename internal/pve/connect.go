package pve

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pvemon/check-pve/internal/check"
)

// Connect tries each host in order and returns a client for the first one
// that authenticates with a verified ticket. Hosts are tried strictly
// sequentially; every failed host is recorded as a WARNING finding before
// moving on, and the connected host is reported as a detail line naming the
// remote API version. When every host fails the run terminates with an
// UNKNOWN verdict, so a nil return only ever reaches callers whose Reporter
// does not exit.
func Connect(ctx context.Context, hosts []string, cfg Config, r *check.Reporter) *Client {
	for _, host := range hosts {
		c := NewClient(host, cfg)
		version, err := c.establish(ctx)
		if err != nil {
			slog.Warn("host unreachable", "host", host, "error", err)
			r.Emit(check.StatusWarning, "DOWN:"+host, fmt.Sprintf("WARNING: %s: %v", host, err), "")
			continue
		}
		slog.Debug("connected", "host", host, "version", version)
		r.Emit(check.StatusNone, "", fmt.Sprintf("Connected to %s: version %s", host, version), "")
		return c
	}
	r.Finish(check.StatusUnknown, "Failed connection", "Failed to find a suitable server to connect to")
	return nil
}

// establish runs the login handshake: authenticate, verify the ticket, and
// fetch the API version for the connection report.
func (c *Client) establish(ctx context.Context) (string, error) {
	if err := c.Login(ctx); err != nil {
		return "", err
	}
	if err := c.CheckTicket(ctx); err != nil {
		return "", err
	}
	return c.Version(ctx)
}
