package resource

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Expr is a compiled filter expression: zero or more whitespace-separated
// clauses of the form key=pattern or key!=pattern, all of which must hold.
// Patterns are shell globs where * also crosses path separators (object ids
// look like "qemu/100"). Fields are matched as strings; a missing field
// matches as "". The empty expression matches every object.
type Expr struct {
	src     string
	clauses []clause
}

type clause struct {
	key    string
	g      glob.Glob
	negate bool
}

// ParseExpr compiles a filter expression. A clause without an operator, with
// an empty key, or with an invalid glob pattern is an error.
func ParseExpr(expr string) (*Expr, error) {
	e := &Expr{src: expr}
	for _, c := range strings.Fields(expr) {
		key, pattern, negate, err := splitClause(c)
		if err != nil {
			return nil, err
		}
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern in clause %q: %w", c, err)
		}
		e.clauses = append(e.clauses, clause{key: key, g: g, negate: negate})
	}
	return e, nil
}

// splitClause splits on the first "=", treating a preceding "!" as the
// negation operator.
func splitClause(c string) (key, pattern string, negate bool, err error) {
	i := strings.Index(c, "=")
	if i < 0 {
		return "", "", false, fmt.Errorf("clause %q is not key=pattern or key!=pattern", c)
	}
	key, pattern = c[:i], c[i+1:]
	if strings.HasSuffix(key, "!") {
		key, negate = key[:len(key)-1], true
	}
	if key == "" {
		return "", "", false, fmt.Errorf("clause %q has an empty key", c)
	}
	return key, pattern, negate, nil
}

// String returns the source text the expression was compiled from.
func (e *Expr) String() string {
	return e.src
}

// Match reports whether o satisfies every clause of the expression.
func (e *Expr) Match(o Object) bool {
	for _, c := range e.clauses {
		if c.g.Match(o.Str(c.key)) == c.negate {
			return false
		}
	}
	return true
}

// Filter returns the objects satisfying the expression, preserving order.
func (e *Expr) Filter(objs []Object) []Object {
	var out []Object
	for _, o := range objs {
		if e.Match(o) {
			out = append(out, o)
		}
	}
	return out
}

// Filter compiles expr and returns the matching subsequence of objs.
func Filter(expr string, objs []Object) ([]Object, error) {
	e, err := ParseExpr(expr)
	if err != nil {
		return nil, err
	}
	return e.Filter(objs), nil
}
