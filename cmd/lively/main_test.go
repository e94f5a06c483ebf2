package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livelypi/lively/pkg/wallpaper"
)

func TestParseProperties(t *testing.T) {
	props, err := parseProperties([]string{"hwdec=auto", "fit-mode=1.0"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"hwdec": "auto", "fit-mode": "1.0"}, props)
}

func TestParsePropertiesEmpty(t *testing.T) {
	props, err := parseProperties(nil)
	require.NoError(t, err)
	assert.Nil(t, props)
}

func TestParsePropertiesInvalid(t *testing.T) {
	tests := []string{"noequals", "=value", ""}
	for _, tc := range tests {
		_, err := parseProperties([]string{tc})
		assert.Error(t, err, "input %q", tc)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"generic error", errors.New("boom"), 1},
		{"launch failed", &wallpaper.DispatchError{Kind: wallpaper.AdapterLaunchFailed, Err: errors.New("spawn")}, 2},
		{"adapter missing", &wallpaper.DispatchError{Kind: wallpaper.AdapterMissing, Err: errors.New("no mpv")}, 3},
		{"wrapped adapter missing", errors.Join(errors.New("context"), &wallpaper.DispatchError{Kind: wallpaper.AdapterMissing, Err: errors.New("no mpv")}), 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, exitCode(tc.err))
		})
	}
}
