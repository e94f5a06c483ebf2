package wallpaper

import (
	"fmt"

	"github.com/livelypi/lively/util/log"
)

// imageAdapter applies static image wallpapers through external setter
// tools. The primary tool (feh by default) is preferred; gsettings covers
// GNOME desktops without it. With neither installed the request is
// acknowledged as a degraded outcome so the manager stays usable on
// minimal systems.
type imageAdapter struct {
	runner CommandRunner
	tool   string
}

func newImageAdapter(runner CommandRunner, tool string) *imageAdapter {
	return &imageAdapter{runner: runner, tool: tool}
}

func (a *imageAdapter) Name() string {
	return "image"
}

func (a *imageAdapter) Apply(desc Descriptor) (Outcome, error) {
	if _, err := a.runner.LookPath(a.tool); err == nil {
		if err := a.runner.Run(a.tool, "--bg-fill", desc.Reference); err != nil {
			return Outcome{}, &DispatchError{Kind: AdapterLaunchFailed, Adapter: a.tool, Err: err}
		}
		return Outcome{Status: OutcomeApplied, Adapter: a.tool}, nil
	}

	if _, err := a.runner.LookPath(gsettingsTool); err == nil {
		uri := fmt.Sprintf("file://%s", desc.Reference)
		if err := a.runner.Run(gsettingsTool, "set", "org.gnome.desktop.background", "picture-uri", uri); err != nil {
			return Outcome{}, &DispatchError{Kind: AdapterLaunchFailed, Adapter: gsettingsTool, Err: err}
		}
		return Outcome{Status: OutcomeApplied, Adapter: gsettingsTool}, nil
	}

	log.Printf("No image setter installed; acknowledging %s without applying", desc.Reference)
	return Outcome{Status: OutcomeDegraded, Adapter: a.tool}, nil
}
