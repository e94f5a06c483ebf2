package wallpaper

import (
	"errors"

	"github.com/livelypi/lively/util/log"
)

// webAdapter hands web and stream wallpapers to an embedded browser
// surface, launched detached like the video renderer. There is no
// fallback render: a missing capability is reported as AdapterMissing.
type webAdapter struct {
	runner  CommandRunner
	command []string
}

func newWebAdapter(runner CommandRunner, command []string) *webAdapter {
	return &webAdapter{runner: runner, command: append([]string(nil), command...)}
}

func (a *webAdapter) Name() string {
	return "web"
}

func (a *webAdapter) Apply(desc Descriptor) (Outcome, error) {
	if len(a.command) == 0 {
		return Outcome{}, &DispatchError{
			Kind:    AdapterMissing,
			Adapter: "webview",
			Err:     errors.New("no web renderer configured"),
		}
	}

	name := a.command[0]
	if _, err := a.runner.LookPath(name); err != nil {
		return Outcome{}, &DispatchError{Kind: AdapterMissing, Adapter: name, Err: err}
	}

	args := append(append([]string(nil), a.command[1:]...), desc.Reference)
	proc, err := a.runner.StartDetached(name, args...)
	if err != nil {
		return Outcome{}, &DispatchError{Kind: AdapterLaunchFailed, Adapter: name, Err: err}
	}

	log.Printf("Web wallpaper started (pid %d)", proc.Pid())
	return Outcome{Status: OutcomeLaunched, Adapter: name, Process: proc}, nil
}
