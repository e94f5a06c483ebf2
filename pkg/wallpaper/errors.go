package wallpaper

import "fmt"

// DispatchErrorKind identifies the failure class of a dispatch attempt.
type DispatchErrorKind int

// Dispatch failure classes
const (
	// AdapterMissing means the external renderer for the descriptor's
	// kind is absent and no degraded mode is defined for that kind.
	AdapterMissing DispatchErrorKind = iota
	// AdapterLaunchFailed means the renderer process could not be
	// spawned (permissions, bad path).
	AdapterLaunchFailed
	// UnsupportedKind means no adapter is registered for the
	// descriptor's kind.
	UnsupportedKind
)

// String returns a stable name for the failure class.
func (k DispatchErrorKind) String() string {
	switch k {
	case AdapterMissing:
		return "adapter_missing"
	case AdapterLaunchFailed:
		return "adapter_launch_failed"
	case UnsupportedKind:
		return "unsupported_kind"
	default:
		return "unknown"
	}
}

// DispatchError reports why a descriptor could not be handed to its
// renderer. It is returned as a value, never raised; the CLI layer maps
// it onto exit codes.
type DispatchError struct {
	Kind    DispatchErrorKind
	Adapter string
	Err     error
}

// Error implements the error interface.
func (e *DispatchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dispatch failed (%s, adapter %q): %v", e.Kind, e.Adapter, e.Err)
	}
	return fmt.Sprintf("dispatch failed (%s, adapter %q)", e.Kind, e.Adapter)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *DispatchError) Unwrap() error {
	return e.Err
}
