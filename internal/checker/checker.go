// Package checker orchestrates one probe invocation: parse the rule
// options, connect with host failover, fetch the requested objects, apply
// filters and overrides, evaluate thresholds, and finish the report.
package checker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pvemon/check-pve/internal/check"
	"github.com/pvemon/check-pve/internal/config"
	"github.com/pvemon/check-pve/internal/evaluate"
	"github.com/pvemon/check-pve/internal/mode"
	"github.com/pvemon/check-pve/internal/pve"
	"github.com/pvemon/check-pve/internal/resource"
	"github.com/pvemon/check-pve/internal/rule"
)

// run carries the parsed inputs of one invocation.
type run struct {
	opts       *config.Options
	rep        *check.Reporter
	mode       mode.Mode
	typeFilter *resource.Expr
	filter     *resource.Expr
	overrides  []rule.Rule
	warnRules  []rule.Rule
	critRules  []rule.Rule
}

// Run executes one probe invocation against the first reachable host. A
// returned error is a usage problem (malformed expression or rule) and is
// reported before any finding is recorded; every other outcome terminates
// through the Reporter.
func Run(ctx context.Context, opts *config.Options, rep *check.Reporter) error {
	m, ok := mode.Lookup(opts.Mode)
	if !ok {
		rep.Finish(check.StatusUnknown, "Unknown mode "+opts.Mode, "")
		return nil
	}

	r := &run{opts: opts, rep: rep, mode: m}

	var err error
	if r.typeFilter, err = resource.ParseExpr("type=" + m.Name()); err != nil {
		return fmt.Errorf("mode filter: %w", err)
	}
	if r.filter, err = resource.ParseExpr(opts.Filter); err != nil {
		return fmt.Errorf("filter: %w", err)
	}
	if r.overrides, err = rule.ParseOverrides(opts.Overrides); err != nil {
		return err
	}
	if r.warnRules, err = rule.ParseStringRules(opts.WarnRules); err != nil {
		return err
	}
	if r.critRules, err = rule.ParseStringRules(opts.CritRules); err != nil {
		return err
	}

	slog.Debug("starting check", "mode", opts.Mode, "hosts", len(opts.Hosts))

	client := pve.Connect(ctx, opts.Hosts, pve.Config{
		Port:     opts.Port,
		Username: opts.Username,
		Realm:    opts.Realm,
		Password: opts.Password,
		Insecure: opts.Insecure,
	}, rep)
	if client == nil {
		return nil
	}

	if m.Name() == mode.Status {
		r.checkStatus(ctx, client)
	} else {
		r.checkResources(ctx, client)
	}
	return nil
}

// checkResources evaluates every object of the mode's resource type.
func (r *run) checkResources(ctx context.Context, client *pve.Client) {
	objs, err := client.Get(ctx, "/cluster/resources")
	if err != nil {
		r.rep.Finish(check.StatusUnknown, "API request failed", fmt.Sprintf("UNKNOWN: %v", err))
		return
	}

	objs = r.typeFilter.Filter(objs)
	objs = r.filter.Filter(objs)
	rule.ApplyOverrides(r.overrides, objs)
	evaluate.StringRules(r.rep, r.mode, objs, r.warnRules, r.critRules)
	for _, o := range objs {
		evaluate.Augment(o, r.mode)
		evaluate.Thresholds(r.rep, r.mode, o, r.opts.Verbose)
	}

	short := ""
	if !r.rep.HasFindings() {
		short = fmt.Sprintf("%d %s objects checked", len(objs), r.mode.Name())
	}
	r.rep.Finish(check.StatusOK, short, "")
}

// checkStatus evaluates cluster quorum and node liveness from the status
// endpoint instead of per-field thresholds.
func (r *run) checkStatus(ctx context.Context, client *pve.Client) {
	objs, err := client.Get(ctx, "/cluster/status")
	if err != nil {
		r.rep.Finish(check.StatusUnknown, "API request failed", fmt.Sprintf("UNKNOWN: %v", err))
		return
	}

	objs = r.filter.Filter(objs)
	rule.ApplyOverrides(r.overrides, objs)
	evaluate.StringRules(r.rep, r.mode, objs, r.warnRules, r.critRules)

	cluster := "cluster"
	online, total := 0, 0
	for _, o := range objs {
		name := r.mode.ObjectName(o)
		switch o.Str("type") {
		case "cluster":
			if name != "" {
				cluster = name
			}
			if !o.Truthy("quorate") {
				r.rep.Emit(check.StatusCritical, name+" not quorate",
					fmt.Sprintf("CRITICAL: %s: cluster is not quorate", name), "")
			}
		case "node":
			total++
			if o.Truthy("online") {
				online++
			} else {
				r.rep.Emit(check.StatusWarning, "DOWN:"+name,
					fmt.Sprintf("WARNING: %s: node is offline", name), "")
			}
		}
	}

	r.rep.Emit(check.StatusNone, "", "", fmt.Sprintf("%s.online=%d;;;0;%d", cluster, online, total))

	short := ""
	if !r.rep.HasFindings() {
		short = fmt.Sprintf("%d/%d nodes online", online, total)
	}
	r.rep.Finish(check.StatusOK, short, "")
}
