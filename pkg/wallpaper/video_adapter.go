package wallpaper

import (
	"fmt"

	"github.com/livelypi/lively/util/log"
)

// videoBaseArgs is the fixed launch template for the video renderer:
// full-screen, infinite loop, muted audio.
var videoBaseArgs = []string{"--fullscreen", "--loop=inf", "--no-audio"}

// videoPropertyFlags translates descriptor properties into renderer
// flags, in a fixed order so launches are reproducible.
var videoPropertyFlags = []struct {
	property string
	format   string
}{
	{"vo", "--vo=%s"},
	{"hwdec", "--hwdec=%s"},
	{"fit-mode", "--panscan=%s"},
}

// videoAdapter launches the video renderer (mpv by default) detached.
// This is launch-and-forget: the adapter does not wait on or supervise
// the spawned process; the Supervisor owns renderer lifecycle.
type videoAdapter struct {
	runner CommandRunner
	tool   string
}

func newVideoAdapter(runner CommandRunner, tool string) *videoAdapter {
	return &videoAdapter{runner: runner, tool: tool}
}

func (a *videoAdapter) Name() string {
	return "video"
}

func (a *videoAdapter) Apply(desc Descriptor) (Outcome, error) {
	if _, err := a.runner.LookPath(a.tool); err != nil {
		return Outcome{}, &DispatchError{Kind: AdapterMissing, Adapter: a.tool, Err: err}
	}

	args := append([]string(nil), videoBaseArgs...)
	for _, pf := range videoPropertyFlags {
		if v, ok := desc.Properties[pf.property]; ok {
			args = append(args, fmt.Sprintf(pf.format, v))
		}
	}
	args = append(args, desc.Reference)

	proc, err := a.runner.StartDetached(a.tool, args...)
	if err != nil {
		return Outcome{}, &DispatchError{Kind: AdapterLaunchFailed, Adapter: a.tool, Err: err}
	}

	log.Printf("Video wallpaper started (pid %d)", proc.Pid())
	return Outcome{Status: OutcomeLaunched, Adapter: a.tool, Process: proc}, nil
}
