package rule

import (
	"testing"

	"github.com/pvemon/check-pve/internal/resource"
)

func TestParse(t *testing.T) {
	r, err := Parse("id=qemu/*^critdisk^80")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if r.Pattern != "id=qemu/*" || r.Field != "critdisk" || r.Value != "80" {
		t.Errorf("unexpected rule: %+v", r)
	}

	r, err = Parse("name=old*^decommissioned^host is being retired")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if r.Value != "host is being retired" {
		t.Errorf("expected message value, got %q", r.Value)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"onlyonepart",
		"two^parts",
		"too^many^parts^here",
		"badexpr^field^1",
	}

	for _, s := range tests {
		if _, err := Parse(s); err == nil {
			t.Errorf("Parse(%q): expected error, got nil", s)
		}
	}
}

func TestParseOverride(t *testing.T) {
	valid := []string{
		"id=qemu/*^critdisk^80",
		"^warncpu^0.5",
		"name=vm1^maxdisk^100.",
		"name=vm1^warndisk^",
	}
	for _, s := range valid {
		if _, err := ParseOverride(s); err != nil {
			t.Errorf("ParseOverride(%q): unexpected error: %v", s, err)
		}
	}

	invalid := []string{
		"id=qemu/*^critdisk^eighty",
		"id=qemu/*^critdisk^-5",
		"id=qemu/*^critdisk^1.2.3",
		"id=qemu/*^critdisk^80B",
	}
	for _, s := range invalid {
		if _, err := ParseOverride(s); err == nil {
			t.Errorf("ParseOverride(%q): expected error, got nil", s)
		}
	}
}

func TestApplyOverridesPrecedence(t *testing.T) {
	objs := []resource.Object{
		{"id": "storage/x", "critdisk": float64(50)},
		{"id": "storage/y"},
	}

	rules, err := ParseOverrides([]string{
		"id=storage/x^critdisk^100",
		"id=storage/x^critdisk^200",
	})
	if err != nil {
		t.Fatalf("ParseOverrides: %v", err)
	}

	ApplyOverrides(rules, objs)

	if got := objs[0].Str("critdisk"); got != "200" {
		t.Errorf("expected later override to win with 200, got %q", got)
	}
	if objs[1].Has("critdisk") {
		t.Error("expected non-matching object to stay untouched")
	}
}

func TestApplyOverridesEmptyPatternMatchesAll(t *testing.T) {
	objs := []resource.Object{
		{"id": "node/a"},
		{"id": "node/b"},
	}

	rules, err := ParseOverrides([]string{"^warncpu^0.9"})
	if err != nil {
		t.Fatalf("ParseOverrides: %v", err)
	}

	ApplyOverrides(rules, objs)

	for _, o := range objs {
		if got := o.Str("warncpu"); got != "0.9" {
			t.Errorf("expected warncpu 0.9 on %s, got %q", o.Str("id"), got)
		}
	}
}
