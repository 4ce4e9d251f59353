// Package evaluate augments cluster objects with derived metrics and
// compares observed values against thresholds, turning breaches into
// findings and every field into performance data.
package evaluate

import (
	"fmt"
	"time"

	units "github.com/docker/go-units"
	"github.com/pvemon/check-pve/internal/check"
	"github.com/pvemon/check-pve/internal/mode"
	"github.com/pvemon/check-pve/internal/resource"
	"github.com/pvemon/check-pve/internal/rule"
)

// Augment fills in the threshold sub-fields for every performance field of
// the mode and computes the derived percent-of-max metric. For a field f
// the sub-fields are warnf, critf, minf, maxf, warnfpercent, and
// critfpercent; absent or falsy sub-fields get their defaults (empty,
// except minf which defaults to "0"). fpercent is computed only when maxf
// is strictly positive and the observed value is truthy. Must run after
// overrides so overridden values participate.
func Augment(o resource.Object, m mode.Mode) {
	for _, f := range m.PerfFields() {
		defaults := [...]struct{ key, value string }{
			{"warn" + f.Key, ""},
			{"crit" + f.Key, ""},
			{"min" + f.Key, "0"},
			{"max" + f.Key, ""},
			{"warn" + f.Key + "percent", ""},
			{"crit" + f.Key + "percent", ""},
		}
		for _, d := range defaults {
			if !o.Truthy(d.key) {
				o[d.key] = d.value
			}
		}
		if o.Float("max"+f.Key) > 0 && o.Truthy(f.Key) {
			o[f.Key+"percent"] = o.Float(f.Key) * 100 / o.Float("max"+f.Key)
		}
	}
}

// Thresholds evaluates one augmented object. A threshold fires when it is
// set and does not exceed the observed value; warn and crit are checked
// independently, so one field can yield both findings. Percent variants are
// checked only when the percent metric was computed. Every field emits one
// perfdata token regardless of breaches, and verbose mode adds one detail
// line per field.
func Thresholds(r *check.Reporter, m mode.Mode, o resource.Object, verbose bool) {
	name := m.ObjectName(o)
	for _, f := range m.PerfFields() {
		percent := f.Key + "percent"

		threshold(r, check.StatusWarning, o, name, f.Key, f.Unit, "warn"+f.Key)
		threshold(r, check.StatusCritical, o, name, f.Key, f.Unit, "crit"+f.Key)
		if o.Has(percent) {
			threshold(r, check.StatusWarning, o, name, percent, "%", "warn"+percent)
			threshold(r, check.StatusCritical, o, name, percent, "%", "crit"+percent)
		}

		r.Emit(check.StatusNone, "", "", perfToken(o, name, f))
		if o.Has(percent) {
			r.Emit(check.StatusNone, "", "", percentToken(o, name, f.Key))
		}
		if verbose {
			r.Emit(check.StatusNone, "", detail(o, name, f), "")
		}
	}
}

func threshold(r *check.Reporter, st check.Status, o resource.Object, name, field, unit, key string) {
	limit := o.Str(key)
	if limit == "" {
		return
	}
	if o.Float(key) <= o.Float(field) {
		r.Emit(st, fmt.Sprintf("%s %s>%s%s", name, field, limit, unit), "", "")
	}
}

func perfToken(o resource.Object, name string, f mode.Field) string {
	return fmt.Sprintf("%s.%s=%s%s;%s;%s;%s;%s",
		name, f.Key, o.Str(f.Key), f.Unit,
		o.Str("warn"+f.Key), o.Str("crit"+f.Key),
		o.Str("min"+f.Key), o.Str("max"+f.Key))
}

func percentToken(o resource.Object, name, key string) string {
	return fmt.Sprintf("%s.%spercent=%s%%;%s;%s;0;100",
		name, key, o.Str(key+"percent"),
		o.Str("warn"+key+"percent"), o.Str("crit"+key+"percent"))
}

func detail(o resource.Object, name string, f mode.Field) string {
	switch f.Unit {
	case "B":
		s := fmt.Sprintf("%s %s: %s", name, f.Key, units.HumanSize(o.Float(f.Key)))
		if o.Str("max"+f.Key) != "" {
			s += " of " + units.HumanSize(o.Float("max"+f.Key))
		}
		return s
	case "s":
		return fmt.Sprintf("%s %s: %s", name, f.Key, units.HumanDuration(time.Duration(o.Float(f.Key))*time.Second))
	}
	return fmt.Sprintf("%s %s: %s", name, f.Key, o.Str(f.Key))
}

// StringRules applies warnstr and critstr rules to the object list. Every
// object matching a rule's pattern yields one unconditional finding at the
// rule's severity: short "<name> <label>" (the bare name when the label is
// empty) and long "<SEVERITY>: <name>: <message>". String rules fire
// independent of numeric thresholds and run before them.
func StringRules(r *check.Reporter, m mode.Mode, objs []resource.Object, warns, crits []rule.Rule) {
	stringRules(r, check.StatusWarning, m, objs, warns)
	stringRules(r, check.StatusCritical, m, objs, crits)
}

func stringRules(r *check.Reporter, st check.Status, m mode.Mode, objs []resource.Object, rules []rule.Rule) {
	for _, ru := range rules {
		for _, o := range ru.Expr.Filter(objs) {
			name := m.ObjectName(o)
			short := name
			if ru.Field != "" {
				short = name + " " + ru.Field
			}
			r.Emit(st, short, fmt.Sprintf("%s: %s: %s", st, name, ru.Value), "")
		}
	}
}
