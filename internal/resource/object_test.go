package resource

import "testing"

func TestStr(t *testing.T) {
	o := Object{
		"name":    "web01",
		"disk":    float64(90),
		"cpu":     0.5,
		"maxdisk": float64(16492674416640),
	}

	tests := []struct {
		key  string
		want string
	}{
		{"name", "web01"},
		{"disk", "90"},
		{"cpu", "0.5"},
		{"maxdisk", "16492674416640"},
		{"missing", ""},
	}

	for _, tt := range tests {
		if got := o.Str(tt.key); got != tt.want {
			t.Errorf("Str(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestFloat(t *testing.T) {
	o := Object{
		"disk":   float64(90),
		"warn":   "80",
		"crit":   "80.5",
		"status": "running",
		"empty":  "",
	}

	tests := []struct {
		key  string
		want float64
	}{
		{"disk", 90},
		{"warn", 80},
		{"crit", 80.5},
		{"status", 0},
		{"empty", 0},
		{"missing", 0},
	}

	for _, tt := range tests {
		if got := o.Float(tt.key); got != tt.want {
			t.Errorf("Float(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestTruthy(t *testing.T) {
	o := Object{
		"running": float64(1),
		"stopped": float64(0),
		"name":    "web01",
		"empty":   "",
		"zero":    "0",
		"zerof":   "0.0",
		"num":     "100",
	}

	tests := []struct {
		key  string
		want bool
	}{
		{"running", true},
		{"stopped", false},
		{"name", true},
		{"empty", false},
		{"zero", false},
		{"zerof", false},
		{"num", true},
		{"missing", false},
	}

	for _, tt := range tests {
		if got := o.Truthy(tt.key); got != tt.want {
			t.Errorf("Truthy(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestHas(t *testing.T) {
	o := Object{"empty": ""}
	if !o.Has("empty") {
		t.Error("expected Has to report a present empty value")
	}
	if o.Has("missing") {
		t.Error("expected Has to report a missing key as absent")
	}
}
