// Package mode defines the resource modes the probe can check: which
// cluster objects a mode selects, the performance fields it evaluates, and
// how objects are named in output.
package mode

import "github.com/pvemon/check-pve/internal/resource"

// Status is the name of the special cluster-status mode, which checks
// quorum and node liveness instead of per-object performance fields.
const Status = "status"

// Field is one performance field of a mode, paired with the unit suffix
// used in output ("" plain, "B" bytes, "s" seconds).
type Field struct {
	Key  string
	Unit string
}

// Mode describes one checkable resource type.
type Mode interface {
	// Name is the mode name given on the command line and, for resource
	// modes, the object type selected from the cluster resource list.
	Name() string
	// Help is a one-line description for usage output.
	Help() string
	// PerfFields lists the performance fields in evaluation order.
	PerfFields() []Field
	// ObjectName derives the display name for one object.
	ObjectName(o resource.Object) string
}

// guestFields are the fields shared by nodes, VMs, and containers, in
// evaluation order.
var guestFields = []Field{
	{Key: "cpu", Unit: ""},
	{Key: "disk", Unit: "B"},
	{Key: "mem", Unit: "B"},
	{Key: "uptime", Unit: "s"},
}

type nodeMode struct{}

func (nodeMode) Name() string        { return "node" }
func (nodeMode) Help() string        { return "cluster nodes: cpu, disk, mem, uptime" }
func (nodeMode) PerfFields() []Field { return guestFields }
func (nodeMode) ObjectName(o resource.Object) string {
	return o.Str("node")
}

type qemuMode struct{}

func (qemuMode) Name() string        { return "qemu" }
func (qemuMode) Help() string        { return "virtual machines: cpu, disk, mem, uptime" }
func (qemuMode) PerfFields() []Field { return guestFields }
func (qemuMode) ObjectName(o resource.Object) string {
	return o.Str("node") + "." + o.Str("name")
}

type lxcMode struct{}

func (lxcMode) Name() string        { return "lxc" }
func (lxcMode) Help() string        { return "containers: cpu, disk, mem, uptime" }
func (lxcMode) PerfFields() []Field { return guestFields }
func (lxcMode) ObjectName(o resource.Object) string {
	return o.Str("name")
}

type storageMode struct{}

func (storageMode) Name() string        { return "storage" }
func (storageMode) Help() string        { return "storage volumes: disk usage" }
func (storageMode) PerfFields() []Field { return []Field{{Key: "disk", Unit: "B"}} }
func (storageMode) ObjectName(o resource.Object) string {
	return o.Str("node") + "." + o.Str("storage")
}

type statusMode struct{}

func (statusMode) Name() string        { return Status }
func (statusMode) Help() string        { return "cluster quorum and node liveness" }
func (statusMode) PerfFields() []Field { return nil }
func (statusMode) ObjectName(o resource.Object) string {
	return o.Str("name")
}

var modes = []Mode{nodeMode{}, qemuMode{}, storageMode{}, lxcMode{}, statusMode{}}

// Lookup returns the mode with the given name.
func Lookup(name string) (Mode, bool) {
	for _, m := range modes {
		if m.Name() == name {
			return m, true
		}
	}
	return nil, false
}

// All returns every known mode, in help order.
func All() []Mode {
	return modes
}
