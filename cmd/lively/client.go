package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/livelypi/lively/config"
	"github.com/livelypi/lively/pkg/wallpaper"
)

// errNoDaemon signals that no daemon is listening on the configured
// address, so the caller should fall back to direct dispatch.
var errNoDaemon = errors.New("daemon not running")

var daemonClient = &http.Client{Timeout: 10 * time.Second}

func daemonURL(path string) string {
	return "http://" + config.GetConfig().ListenAddr + path
}

func isConnectionError(err error) bool {
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

// daemonSet asks a running daemon to apply the wallpaper. Returns
// errNoDaemon when nothing is listening.
func daemonSet(reference string, monitor int, properties map[string]string) error {
	payload, err := json.Marshal(map[string]interface{}{
		"reference":  reference,
		"monitor":    monitor,
		"properties": properties,
	})
	if err != nil {
		return err
	}

	resp, err := daemonClient.Post(daemonURL("/set"), "application/json", bytes.NewReader(payload))
	if err != nil {
		if isConnectionError(err) {
			return errNoDaemon
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return daemonError(resp)
	}

	var body struct {
		Status  string `json:"status"`
		Adapter string `json:"adapter"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return err
	}
	fmt.Printf("Wallpaper %s via daemon (%s)\n", body.Status, body.Adapter)
	return nil
}

// daemonControl posts to a control endpoint (/pause, /resume, /stop).
func daemonControl(path string) error {
	resp, err := daemonClient.Post(daemonURL(path), "application/json", nil)
	if err != nil {
		if isConnectionError(err) {
			return fmt.Errorf("%w; start it with --serve", errNoDaemon)
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return daemonError(resp)
	}
	fmt.Printf("OK: %s\n", path[1:])
	return nil
}

// daemonLibrary fetches the saved entries from a running daemon.
func daemonLibrary() ([]wallpaper.Entry, error) {
	resp, err := daemonClient.Get(daemonURL("/library"))
	if err != nil {
		if isConnectionError(err) {
			return nil, errNoDaemon
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, daemonError(resp)
	}

	var entries []wallpaper.Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// daemonError turns a non-200 daemon response into an error, mapping
// the dispatch error kinds back so exit codes stay meaningful.
func daemonError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var body struct {
		Error string `json:"error"`
		Kind  string `json:"kind"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		switch body.Kind {
		case wallpaper.AdapterMissing.String():
			return &wallpaper.DispatchError{Kind: wallpaper.AdapterMissing, Err: errors.New(body.Error)}
		case wallpaper.AdapterLaunchFailed.String():
			return &wallpaper.DispatchError{Kind: wallpaper.AdapterLaunchFailed, Err: errors.New(body.Error)}
		}
		return errors.New(body.Error)
	}
	return fmt.Errorf("daemon returned %s: %s", resp.Status, bytes.TrimSpace(raw))
}
