// Package rule parses the caret-separated triples given on the command line
// and applies override rules to objects before evaluation.
package rule

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pvemon/check-pve/internal/resource"
)

// Rule is one pattern^field^value triple. The pattern selects objects. For
// overrides, Field names the field to set and Value the value to assign.
// For string-match rules, Field is the short summary label and Value the
// long detail message.
type Rule struct {
	Pattern string
	Expr    *resource.Expr
	Field   string
	Value   string
}

var numericValue = regexp.MustCompile(`^[0-9]*(\.[0-9]*)?$`)

// Parse splits a pattern^field^value triple and compiles its pattern.
func Parse(s string) (Rule, error) {
	parts := strings.Split(s, "^")
	if len(parts) != 3 {
		return Rule{}, fmt.Errorf("rule %q: want pattern^field^value", s)
	}
	e, err := resource.ParseExpr(parts[0])
	if err != nil {
		return Rule{}, fmt.Errorf("rule %q: %w", s, err)
	}
	return Rule{Pattern: parts[0], Expr: e, Field: parts[1], Value: parts[2]}, nil
}

// ParseOverride parses an override triple. Override values must be plain
// non-negative decimal numbers; the empty value is allowed and clears the
// field, disabling any threshold it named.
func ParseOverride(s string) (Rule, error) {
	r, err := Parse(s)
	if err != nil {
		return Rule{}, err
	}
	if !numericValue.MatchString(r.Value) {
		return Rule{}, fmt.Errorf("override %q: value %q is not numeric", s, r.Value)
	}
	return r, nil
}

// ParseOverrides parses a list of override triples.
func ParseOverrides(ss []string) ([]Rule, error) {
	var rules []Rule
	for _, s := range ss {
		r, err := ParseOverride(s)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// ParseStringRules parses a list of warnstr/critstr triples.
func ParseStringRules(ss []string) ([]Rule, error) {
	var rules []Rule
	for _, s := range ss {
		r, err := Parse(s)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// ApplyOverrides applies each override in order to every object matching
// its pattern, unconditionally overwriting the field. Later overrides win.
// A pattern matching zero objects is not an error.
func ApplyOverrides(rules []Rule, objs []resource.Object) {
	for _, r := range rules {
		for _, o := range r.Expr.Filter(objs) {
			o[r.Field] = r.Value
		}
	}
}
