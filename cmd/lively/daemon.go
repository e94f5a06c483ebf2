package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/livelypi/lively/config"
	"github.com/livelypi/lively/pkg/api"
	"github.com/livelypi/lively/pkg/wallpaper"
	"github.com/livelypi/lively/util/log"
)

// runDaemon starts the long-running wallpaper service: renderer
// supervision, the persistent library and the local control API.
func runDaemon() error {
	locked, err := acquireLock()
	if err != nil {
		return fmt.Errorf("failed to acquire instance lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another instance of %s is already running", config.AppName)
	}
	defer releaseLock()

	cfg := config.GetConfig()

	library := wallpaper.NewLibrary(libraryPath(), cfg.LibraryLimit)
	if err := library.Load(); err != nil {
		log.Printf("Could not load wallpaper library: %v", err)
	}

	runner := wallpaper.NewExecRunner()
	supervisor := wallpaper.NewSupervisor(
		wallpaper.NewDispatcher(runner, wallpaper.OptionsFromConfig(cfg)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Renderer commands follow config edits without a restart. Watch
	// blocks, so it gets its own goroutine for the daemon's lifetime.
	go func() {
		err := config.Watch(ctx, func(updated *config.Config) {
			log.Println("Config changed, rebuilding dispatcher")
			supervisor.SetDispatcher(
				wallpaper.NewDispatcher(runner, wallpaper.OptionsFromConfig(updated)))
		})
		if err != nil && ctx.Err() == nil {
			log.Printf("Config watcher stopped: %v", err)
		}
	}()

	server := api.NewServer(cfg.ListenAddr, supervisor, library)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("%s daemon listening on %s", config.AppName, cfg.ListenAddr)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("Received %v, shutting down", sig)
	case err := <-errCh:
		return fmt.Errorf("API server failed: %w", err)
	}

	if err := server.Stop(); err != nil {
		log.Printf("API server shutdown: %v", err)
	}
	if err := supervisor.StopAll(); err != nil {
		log.Printf("Renderer shutdown: %v", err)
	}
	library.Save()
	return nil
}
