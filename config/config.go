package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	jsoniter "github.com/json-iterator/go"

	"github.com/livelypi/lively/util/log"
)

// Package config provides configuration management for the wallpaper manager.

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config holds all user-tunable settings.
type Config struct {
	// ImageTool overrides the image setter binary. Default "feh".
	ImageTool string `json:"image_tool,omitempty"`
	// VideoTool overrides the video renderer binary. Default "mpv".
	VideoTool string `json:"video_tool,omitempty"`
	// WebRenderer overrides the web renderer command line. Empty means
	// the lively executable itself in --webview mode.
	WebRenderer []string `json:"web_renderer,omitempty"`
	// ListenAddr is the address the local control API binds to.
	ListenAddr string `json:"listen_addr"`
	// LibraryLimit caps the number of entries kept in the library.
	LibraryLimit int `json:"library_limit"`
}

var (
	current atomic.Pointer[Config]
	once    sync.Once
)

// GetConfig returns the current configuration, loading it from the user's
// config file on first use. The returned value is a snapshot; it is never
// mutated after load, so it is safe to read from any goroutine.
func GetConfig() *Config {
	once.Do(func() {
		cfg := &Config{}
		if err := cfg.loadFromFile(GetFilename()); err != nil {
			if !os.IsNotExist(err) {
				log.Printf("Error loading config: %v", err)
			}
			cfg.setDefaultValues()
		}
		cfg.applyFallbacks()
		current.Store(cfg)
	})
	return current.Load()
}

// GetFilename returns the path to the user's config file.
func GetFilename() string {
	return filepath.Join(GetPath(), "config.json")
}

// GetPath returns the path to the user's config directory.
func GetPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Error getting user home directory: %v", err)
	}
	return filepath.Join(homeDir, "."+strings.ToLower(ServiceName))
}

// loadFromFile loads configuration from the specified file.
func (c *Config) loadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, c)
}

// setDefaultValues resets the configuration to its defaults.
func (c *Config) setDefaultValues() {
	c.ImageTool = ""
	c.VideoTool = ""
	c.WebRenderer = nil
	c.ListenAddr = DefaultListenAddr
	c.LibraryLimit = DefaultLibraryLimit
}

// applyFallbacks fills in required fields a hand-edited config may omit.
func (c *Config) applyFallbacks() {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.LibraryLimit <= 0 {
		c.LibraryLimit = DefaultLibraryLimit
	}
}

// Save writes the configuration to the user's config file.
func (c *Config) Save() error {
	cfgFile := GetFilename()
	if err := os.MkdirAll(filepath.Dir(cfgFile), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(cfgFile, data, 0644)
}

// Watch reloads the configuration whenever the config file changes on disk
// and invokes onChange with the fresh snapshot. It blocks until ctx is done.
func Watch(ctx context.Context, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory rather than the file: editors and Save() replace
	// the file, which would silently drop a file-level watch.
	dir := GetPath()
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	if err := watcher.Add(dir); err != nil {
		return err
	}

	cfgFile := GetFilename()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != cfgFile {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			cfg := &Config{}
			if err := cfg.loadFromFile(cfgFile); err != nil {
				log.Printf("Config changed but could not be reloaded: %v", err)
				continue
			}
			cfg.applyFallbacks()
			current.Store(cfg)
			log.Println("Configuration reloaded")
			if onChange != nil {
				onChange(cfg)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Config watcher error: %v", err)
		}
	}
}
