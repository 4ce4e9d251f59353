// Package config assembles the probe options from flags, an optional
// plugin config file, and the environment.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Options holds every knob the probe accepts. Defaults match a stock
// cluster: root@pam on port 8006.
type Options struct {
	Hosts     []string
	Username  string
	Password  string
	Realm     string
	Port      int
	Mode      string
	Filter    string
	Overrides []string
	WarnRules []string
	CritRules []string
	Insecure  bool
	Debug     bool
	Verbose   bool
}

// LoadFile merges a plugin config file into opts. The format is one
// "option value" pair per line, using the long option names; blank lines
// and # comments are skipped, and values keep any spaces they contain.
// Repeatable options append. Scalar options apply only where the command
// line did not already set them, as reported by changed. Flag-style options
// may omit the value, meaning true.
func LoadFile(path string, opts *Options, changed func(name string) bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	lists := map[string]*[]string{
		"host":     &opts.Hosts,
		"override": &opts.Overrides,
		"warnstr":  &opts.WarnRules,
		"critstr":  &opts.CritRules,
	}
	strs := map[string]*string{
		"username": &opts.Username,
		"password": &opts.Password,
		"realm":    &opts.Realm,
		"mode":     &opts.Mode,
		"filter":   &opts.Filter,
	}
	bools := map[string]*bool{
		"insecure": &opts.Insecure,
		"debug":    &opts.Debug,
		"verbose":  &opts.Verbose,
	}

	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		option, value := line, ""
		if i := strings.IndexAny(line, " \t"); i >= 0 {
			option, value = line[:i], strings.TrimSpace(line[i+1:])
		}

		switch {
		case lists[option] != nil:
			*lists[option] = append(*lists[option], value)
		case strs[option] != nil:
			if !changed(option) {
				*strs[option] = value
			}
		case bools[option] != nil:
			if !changed(option) {
				b := true
				if value != "" {
					parsed, err := strconv.ParseBool(value)
					if err != nil {
						return fmt.Errorf("config %s:%d: invalid value %q for %s", path, lineno, value, option)
					}
					b = parsed
				}
				*bools[option] = b
			}
		case option == "port":
			if !changed(option) {
				p, err := strconv.Atoi(value)
				if err != nil {
					return fmt.Errorf("config %s:%d: invalid port %q", path, lineno, value)
				}
				opts.Port = p
			}
		default:
			return fmt.Errorf("config %s:%d: unknown option %q", path, lineno, option)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// ApplyEnv fills credentials from the environment where flags and the
// config file left them empty, keeping the API password out of the process
// list.
func ApplyEnv(opts *Options) {
	if opts.Password == "" {
		opts.Password = os.Getenv("PVE_PASSWORD")
	}
}

// Validate checks that a runnable set of options was assembled. Mode names
// are not checked here: an unrecognized mode is reported through the plugin
// protocol, not as a usage error.
func (o *Options) Validate() error {
	if len(o.Hosts) == 0 {
		return fmt.Errorf("at least one host is required")
	}
	if o.Password == "" {
		return fmt.Errorf("a password is required (flag, config file, or PVE_PASSWORD)")
	}
	if o.Mode == "" {
		return fmt.Errorf("a mode is required")
	}
	return nil
}
