// Package check implements the plugin result protocol: a four-level
// severity scale, a single-pass aggregation of findings, and the final
// report line consumed by the monitoring supervisor.
package check

import (
	"fmt"
	"io"
	"strings"
)

// Status is the severity of a finding, ordered from least to most severe.
// The numeric value doubles as the process exit code.
type Status int

const (
	// StatusNone marks an emission that carries text or perfdata but no
	// severity of its own. It never changes the aggregate.
	StatusNone Status = -1

	StatusOK       Status = 0
	StatusWarning  Status = 1
	StatusCritical Status = 2
	StatusUnknown  Status = 3
)

// String returns the conventional monitoring name for the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusWarning:
		return "WARNING"
	case StatusCritical:
		return "CRITICAL"
	}
	return "UNKNOWN"
}

// Reporter accumulates findings across one run and renders the final
// report: a summary line, optional detail lines, and the exit code.
// The zero worst severity is OK, so a run with no findings exits clean.
type Reporter struct {
	worst    Status
	shorts   []string
	longs    []string
	perfdata []string
	out      io.Writer
	exit     func(int)
}

// NewReporter returns a Reporter writing the report to out and terminating
// the run through exit. The plugin entry point passes os.Stdout and os.Exit;
// tests pass a buffer and a recording func.
func NewReporter(out io.Writer, exit func(int)) *Reporter {
	return &Reporter{out: out, exit: exit}
}

// Emit records one finding. A severity above the current worst raises the
// aggregate. Non-empty arguments are appended to their lists; empty ones are
// skipped, so a finding may contribute any combination of summary text,
// detail text, and performance data.
func (r *Reporter) Emit(status Status, short, long, perfdata string) {
	if status > r.worst {
		r.worst = status
	}
	if short != "" {
		r.shorts = append(r.shorts, short)
	}
	if long != "" {
		r.longs = append(r.longs, long)
	}
	if perfdata != "" {
		r.perfdata = append(r.perfdata, perfdata)
	}
}

// HasFindings reports whether any summary text has been recorded.
func (r *Reporter) HasFindings() bool {
	return len(r.shorts) > 0
}

// Worst returns the aggregate severity recorded so far.
func (r *Reporter) Worst() Status {
	return r.worst
}

// Finish records a last finding, prints the report, and exits with the
// aggregate severity. The summary line is "Proxmox <SEVERITY>: " followed
// by the short messages joined by ". ", a literal "|", and the perfdata
// tokens joined by spaces. Detail lines follow, one per line. Finish is the
// single terminal point of a run and must be called exactly once.
func (r *Reporter) Finish(status Status, short, long string) {
	r.Emit(status, short, long, "")
	fmt.Fprintf(r.out, "Proxmox %s: %s|%s\n", r.worst, strings.Join(r.shorts, ". "), strings.Join(r.perfdata, " "))
	if len(r.longs) > 0 {
		fmt.Fprintln(r.out, strings.Join(r.longs, "\n"))
	}
	r.exit(int(r.worst))
}
