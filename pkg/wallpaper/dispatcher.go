package wallpaper

import (
	"os"

	"github.com/livelypi/lively/config"
	"github.com/livelypi/lively/util/log"
)

// OutcomeStatus describes how a dispatch concluded.
type OutcomeStatus int

// Dispatch outcomes
const (
	// OutcomeApplied means the renderer ran to completion and the
	// wallpaper is set (image setters).
	OutcomeApplied OutcomeStatus = iota
	// OutcomeLaunched means a long-running renderer was spawned and
	// left running (video and web renderers).
	OutcomeLaunched
	// OutcomeDegraded means the intended adapter was unavailable but
	// the request was acknowledged rather than failed. This is a
	// tolerated degraded mode, not a silent failure.
	OutcomeDegraded
	// OutcomeSkipped means the descriptor was disabled; nothing was
	// spawned.
	OutcomeSkipped
)

// String returns a stable name for the outcome status.
func (s OutcomeStatus) String() string {
	switch s {
	case OutcomeApplied:
		return "applied"
	case OutcomeLaunched:
		return "launched"
	case OutcomeDegraded:
		return "degraded"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Outcome is the result of a successful dispatch.
type Outcome struct {
	Status  OutcomeStatus
	Adapter string
	// Process is non-nil for launch-and-forget renderers. The
	// dispatcher itself does not supervise it; see Supervisor.
	Process Process
}

// adapter renders one wallpaper kind through an external collaborator.
type adapter interface {
	Name() string
	Apply(desc Descriptor) (Outcome, error)
}

// Dispatcher routes a classified descriptor to the renderer adapter for
// its kind. Each successful dispatch causes at most one process spawn,
// and none happen before the spawn attempt on failure.
type Dispatcher struct {
	adapters map[Kind]adapter
}

// DispatcherOptions selects the external renderer commands.
type DispatcherOptions struct {
	// ImageTool is the image setter binary. Empty means DefaultImageTool.
	ImageTool string
	// VideoTool is the video renderer binary. Empty means DefaultVideoTool.
	VideoTool string
	// WebCommand is the web renderer argv prefix; the reference is
	// appended on launch. Empty means the web capability is absent.
	WebCommand []string
}

// OptionsFromConfig derives dispatcher options from the loaded config.
// With no configured web renderer, the running executable is relaunched
// in --webview mode as the embedded browser surface.
func OptionsFromConfig(cfg *config.Config) DispatcherOptions {
	opts := DispatcherOptions{
		ImageTool:  cfg.ImageTool,
		VideoTool:  cfg.VideoTool,
		WebCommand: append([]string(nil), cfg.WebRenderer...),
	}
	if len(opts.WebCommand) == 0 {
		if exe, err := os.Executable(); err == nil {
			opts.WebCommand = []string{exe, "--webview"}
		}
	}
	return opts
}

// NewDispatcher wires the standard adapter set. Web and Stream share the
// web renderer adapter.
func NewDispatcher(runner CommandRunner, opts DispatcherOptions) *Dispatcher {
	imageTool := opts.ImageTool
	if imageTool == "" {
		imageTool = DefaultImageTool
	}
	videoTool := opts.VideoTool
	if videoTool == "" {
		videoTool = DefaultVideoTool
	}

	web := newWebAdapter(runner, opts.WebCommand)
	return &Dispatcher{
		adapters: map[Kind]adapter{
			KindImage:  newImageAdapter(runner, imageTool),
			KindVideo:  newVideoAdapter(runner, videoTool),
			KindWeb:    web,
			KindStream: web,
		},
	}
}

// Dispatch hands the descriptor to the adapter for its kind. Disabled
// descriptors are skipped without side effects.
func (d *Dispatcher) Dispatch(desc Descriptor) (Outcome, error) {
	if !desc.Enabled {
		log.Printf("Skipping disabled wallpaper %s", desc)
		return Outcome{Status: OutcomeSkipped}, nil
	}

	ad, ok := d.adapters[desc.Kind]
	if !ok {
		return Outcome{}, &DispatchError{Kind: UnsupportedKind, Adapter: desc.Kind.String()}
	}

	log.Printf("Dispatching %s via %s adapter", desc, ad.Name())
	return ad.Apply(desc)
}
