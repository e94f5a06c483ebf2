package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/zserge/webview"

	"github.com/livelypi/lively/config"
)

// runWebview renders a URL fullscreen as a wallpaper surface. The web
// adapter relaunches this binary with --webview so the page lives in
// its own process the supervisor can pause and stop like any renderer.
func runWebview(reference string) error {
	target := reference
	if !strings.Contains(target, "://") {
		target = "file://" + target
	}
	if _, err := url.Parse(target); err != nil {
		return fmt.Errorf("invalid webview reference %q: %w", reference, err)
	}

	wv := webview.New(webview.Settings{
		Title:     config.AppName,
		URL:       target,
		Width:     1920,
		Height:    1080,
		Resizable: false,
	})
	defer wv.Exit()

	wv.SetFullscreen(true)
	wv.Run()
	return nil
}
