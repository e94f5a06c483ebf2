package wallpaper

import (
	"errors"
	"fmt"
	"strings"
)

// AllMonitors is the monitor target sentinel meaning "every monitor".
const AllMonitors = -1

// Descriptor describes one wallpaper-set request. It is a value object:
// created once per request, passed to the dispatcher, then discarded.
// Kind is derived from Reference at construction time and is never
// overridden afterwards.
type Descriptor struct {
	Reference     string
	Kind          Kind
	MonitorTarget int
	Properties    map[string]string
	Enabled       bool
}

// DescriptorOption customizes a Descriptor during construction.
type DescriptorOption func(*Descriptor)

// WithMonitor targets a specific monitor instead of all monitors.
func WithMonitor(id int) DescriptorOption {
	return func(d *Descriptor) {
		d.MonitorTarget = id
	}
}

// WithProperty attaches a renderer-specific option (e.g. "hwdec", "vo").
func WithProperty(key, value string) DescriptorOption {
	return func(d *Descriptor) {
		if d.Properties == nil {
			d.Properties = make(map[string]string)
		}
		d.Properties[key] = value
	}
}

// WithEnabled sets the enabled flag; descriptors are enabled by default.
func WithEnabled(enabled bool) DescriptorOption {
	return func(d *Descriptor) {
		d.Enabled = enabled
	}
}

// NewDescriptor builds a Descriptor for the given reference. The Kind is
// classified from the reference and cannot be forced by callers.
func NewDescriptor(reference string, opts ...DescriptorOption) (Descriptor, error) {
	if strings.TrimSpace(reference) == "" {
		return Descriptor{}, errors.New("wallpaper reference must not be empty")
	}

	d := Descriptor{
		Reference:     reference,
		Kind:          Classify(reference),
		MonitorTarget: AllMonitors,
		Enabled:       true,
	}
	for _, opt := range opts {
		opt(&d)
	}

	if d.MonitorTarget < AllMonitors {
		return Descriptor{}, fmt.Errorf("invalid monitor target %d: must be non-negative or AllMonitors", d.MonitorTarget)
	}
	return d, nil
}

// String renders the descriptor for logs.
func (d Descriptor) String() string {
	target := "all"
	if d.MonitorTarget != AllMonitors {
		target = fmt.Sprintf("%d", d.MonitorTarget)
	}
	return fmt.Sprintf("%s (%s, monitor %s)", d.Reference, d.Kind, target)
}
