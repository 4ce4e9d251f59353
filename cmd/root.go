package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pvemon/check-pve/internal/check"
	"github.com/pvemon/check-pve/internal/checker"
	"github.com/pvemon/check-pve/internal/config"
	"github.com/pvemon/check-pve/internal/mode"
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags "-X github.com/pvemon/check-pve/cmd.Version=..."
var Version = "dev"

var (
	opts       = &config.Options{}
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "check-pve",
	Short: "Health probe for Proxmox VE clusters",
	Long: `check-pve queries a Proxmox VE cluster and reports one aggregated
verdict in the plugin format monitoring systems expect: a summary line with
performance data, optional detail lines, and an exit code of 0 (OK),
1 (WARNING), 2 (CRITICAL), or 3 (UNKNOWN).

Thresholds live on the objects themselves as warn<field>/crit<field> values
and are usually supplied with --override, e.g.

  check-pve -H pve1 -m storage -o 'id=storage/*^warndiskpercent^80'`,
	Version: Version,
	Args:    cobra.NoArgs,
	RunE:    runProbe,
}

// Execute runs the probe command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	var modes, names strings.Builder
	for i, m := range mode.All() {
		fmt.Fprintf(&modes, "  %-8s %s\n", m.Name(), m.Help())
		if i > 0 {
			names.WriteString(", ")
		}
		names.WriteString(m.Name())
	}
	rootCmd.Long += "\n\nModes:\n" + modes.String()

	f := rootCmd.Flags()
	f.StringArrayVarP(&opts.Hosts, "host", "H", nil, "cluster host to try, repeatable for failover")
	f.StringVarP(&opts.Username, "username", "u", "root", "API username")
	f.StringVarP(&opts.Password, "password", "p", "", "API password (or PVE_PASSWORD)")
	f.IntVar(&opts.Port, "port", 8006, "API port")
	f.StringVarP(&opts.Realm, "realm", "r", "pam", "authentication realm")
	f.StringVarP(&opts.Mode, "mode", "m", "", "what to check: "+names.String())
	f.StringVarP(&opts.Filter, "filter", "f", "", "expression selecting objects, e.g. 'name=web* status=running'")
	f.StringArrayVarP(&opts.Overrides, "override", "o", nil, "set a field on matching objects, as pattern^field^value")
	f.StringArrayVar(&opts.WarnRules, "warnstr", nil, "WARNING for matching objects, as pattern^label^message")
	f.StringArrayVar(&opts.CritRules, "critstr", nil, "CRITICAL for matching objects, as pattern^label^message")
	f.StringVarP(&configFile, "config", "c", "", "config file with one 'option value' per line")
	f.BoolVarP(&opts.Insecure, "insecure", "k", false, "skip TLS certificate verification")
	f.BoolVarP(&opts.Debug, "debug", "d", false, "log debug details to stderr")
	f.BoolVarP(&opts.Verbose, "verbose", "v", false, "add a detail line per checked field")
}

func runProbe(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	if configFile != "" {
		if err := config.LoadFile(configFile, opts, cmd.Flags().Changed); err != nil {
			return err
		}
	}
	config.ApplyEnv(opts)

	level := slog.LevelWarn
	if opts.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := opts.Validate(); err != nil {
		return err
	}

	return checker.Run(cmd.Context(), opts, check.NewReporter(os.Stdout, os.Exit))
}
