package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDefaultValues(t *testing.T) {
	cfg := &Config{ImageTool: "nitrogen", ListenAddr: "0.0.0.0:80"}
	cfg.setDefaultValues()

	assert.Empty(t, cfg.ImageTool)
	assert.Empty(t, cfg.VideoTool)
	assert.Nil(t, cfg.WebRenderer)
	assert.Equal(t, DefaultListenAddr, cfg.ListenAddr)
	assert.Equal(t, DefaultLibraryLimit, cfg.LibraryLimit)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.json")
	content := `{
  "image_tool": "feh",
  "video_tool": "mpv",
  "web_renderer": ["chromium", "--kiosk"],
  "listen_addr": "127.0.0.1:50000",
  "library_limit": 25
}`
	require.NoError(t, os.WriteFile(cfgFile, []byte(content), 0644))

	cfg := &Config{}
	require.NoError(t, cfg.loadFromFile(cfgFile))

	assert.Equal(t, "feh", cfg.ImageTool)
	assert.Equal(t, "mpv", cfg.VideoTool)
	assert.Equal(t, []string{"chromium", "--kiosk"}, cfg.WebRenderer)
	assert.Equal(t, "127.0.0.1:50000", cfg.ListenAddr)
	assert.Equal(t, 25, cfg.LibraryLimit)
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := &Config{}
	err := cfg.loadFromFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestApplyFallbacks(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantAddr  string
		wantLimit int
	}{
		{
			name:      "Empty config",
			cfg:       Config{},
			wantAddr:  DefaultListenAddr,
			wantLimit: DefaultLibraryLimit,
		},
		{
			name:      "Negative limit",
			cfg:       Config{ListenAddr: "127.0.0.1:9", LibraryLimit: -1},
			wantAddr:  "127.0.0.1:9",
			wantLimit: DefaultLibraryLimit,
		},
		{
			name:      "Fully specified",
			cfg:       Config{ListenAddr: "127.0.0.1:9", LibraryLimit: 10},
			wantAddr:  "127.0.0.1:9",
			wantLimit: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.applyFallbacks()
			assert.Equal(t, tt.wantAddr, tt.cfg.ListenAddr)
			assert.Equal(t, tt.wantLimit, tt.cfg.LibraryLimit)
		})
	}
}
