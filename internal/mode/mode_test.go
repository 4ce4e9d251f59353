package mode

import (
	"testing"

	"github.com/pvemon/check-pve/internal/resource"
)

func TestLookup(t *testing.T) {
	for _, name := range []string{"node", "qemu", "storage", "lxc", "status"} {
		m, ok := Lookup(name)
		if !ok {
			t.Errorf("Lookup(%q): expected mode", name)
			continue
		}
		if m.Name() != name {
			t.Errorf("Lookup(%q) returned mode named %q", name, m.Name())
		}
	}

	if _, ok := Lookup("openvz"); ok {
		t.Error("Lookup(\"openvz\"): expected no mode")
	}
	if _, ok := Lookup(""); ok {
		t.Error("Lookup(\"\"): expected no mode")
	}
}

func TestObjectName(t *testing.T) {
	obj := resource.Object{
		"node":    "pve1",
		"name":    "vm1",
		"storage": "local-lvm",
	}

	tests := []struct {
		mode string
		want string
	}{
		{"node", "pve1"},
		{"qemu", "pve1.vm1"},
		{"lxc", "vm1"},
		{"storage", "pve1.local-lvm"},
		{"status", "vm1"},
	}

	for _, tt := range tests {
		m, ok := Lookup(tt.mode)
		if !ok {
			t.Fatalf("Lookup(%q) failed", tt.mode)
		}
		if got := m.ObjectName(obj); got != tt.want {
			t.Errorf("%s.ObjectName = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestPerfFieldsOrder(t *testing.T) {
	m, _ := Lookup("qemu")
	fields := m.PerfFields()
	want := []string{"cpu", "disk", "mem", "uptime"}
	if len(fields) != len(want) {
		t.Fatalf("expected %d fields, got %d", len(want), len(fields))
	}
	for i, f := range fields {
		if f.Key != want[i] {
			t.Errorf("field %d = %q, want %q", i, f.Key, want[i])
		}
	}

	m, _ = Lookup("storage")
	fields = m.PerfFields()
	if len(fields) != 1 || fields[0].Key != "disk" || fields[0].Unit != "B" {
		t.Errorf("unexpected storage fields: %v", fields)
	}

	m, _ = Lookup("status")
	if len(m.PerfFields()) != 0 {
		t.Error("expected status mode to have no perf fields")
	}
}
