// Package resource models the dynamic objects returned by the cluster API
// and the glob expression language used to select them.
package resource

import "strconv"

// Object is one record from the cluster API as decoded from JSON: field
// names mapped to string or float64 values. Objects have no fixed schema;
// overrides may later replace numeric fields with strings, so all access
// goes through the coercing accessors below.
type Object map[string]any

// Str returns the value for key rendered as a string. Numbers use plain
// decimal notation, never scientific. A missing key yields "".
func (o Object) Str(key string) string {
	switch v := o[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

// Float returns the numeric value for key. Strings parse as decimal
// numbers. A missing or unparsable value yields 0.
func (o Object) Float(key string) float64 {
	switch v := o[key].(type) {
	case float64:
		return v
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

// Truthy reports whether key holds a usable value: present, not the empty
// string, and not numeric zero. Numeric strings count as their value, so
// "0" is falsy while "stopped" is truthy.
func (o Object) Truthy(key string) bool {
	switch v := o[key].(type) {
	case float64:
		return v != 0
	case string:
		if v == "" {
			return false
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f != 0
		}
		return true
	}
	return false
}

// Has reports whether key is present at all.
func (o Object) Has(key string) bool {
	_, ok := o[key]
	return ok
}
