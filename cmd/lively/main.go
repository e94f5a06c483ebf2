package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/livelypi/lively/config"
	"github.com/livelypi/lively/pkg/wallpaper"
	"github.com/livelypi/lively/util"
	"github.com/livelypi/lively/util/log"
)

var (
	flagSetWallpaper string
	flagMonitor      int
	flagPause        bool
	flagResume       bool
	flagStop         bool
	flagList         bool
	flagServe        bool
	flagVersion      bool
	flagCheckUpdates bool
	flagWebview      string
	flagProperties   []string
)

var rootCmd = &cobra.Command{
	Use:   "lively",
	Short: "Wallpaper manager for images, videos and web pages",
	Long: `Lively sets static images, looping videos, web pages and streams
as desktop wallpaper by delegating to external renderers (feh, mpv,
a built-in webview). Run with --serve to keep renderers managed in
the background, or use the one-shot flags directly.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	rootCmd.Flags().StringVar(&flagSetWallpaper, "set-wallpaper", "", "Classify and apply a wallpaper reference (path or URL)")
	rootCmd.Flags().IntVar(&flagMonitor, "monitor", wallpaper.AllMonitors, "Target monitor index (-1 for all monitors)")
	rootCmd.Flags().StringSliceVar(&flagProperties, "property", nil, "Renderer property as key=value (repeatable)")
	rootCmd.Flags().BoolVar(&flagPause, "pause", false, "Pause all live renderers")
	rootCmd.Flags().BoolVar(&flagResume, "resume", false, "Resume paused renderers")
	rootCmd.Flags().BoolVar(&flagStop, "stop", false, "Stop all live renderers")
	rootCmd.Flags().BoolVar(&flagList, "list", false, "List saved wallpaper entries")
	rootCmd.Flags().BoolVar(&flagServe, "serve", false, "Run the background daemon with the local control API")
	rootCmd.Flags().BoolVar(&flagVersion, "version", false, "Print the version and exit")
	rootCmd.Flags().BoolVar(&flagCheckUpdates, "check-updates", false, "Check for a newer release")
	rootCmd.Flags().StringVar(&flagWebview, "webview", "", "Render the given URL fullscreen (internal renderer mode)")
	_ = rootCmd.Flags().MarkHidden("webview")
}

func runRoot(cmd *cobra.Command, args []string) error {
	switch {
	case flagVersion:
		fmt.Printf("%s %s\n", config.AppName, config.AppVersion)
		return nil
	case flagWebview != "":
		return runWebview(flagWebview)
	case flagServe:
		return runDaemon()
	case flagCheckUpdates:
		return runCheckUpdates()
	case flagSetWallpaper != "":
		return runSet(flagSetWallpaper, flagMonitor, flagProperties)
	case flagPause:
		return daemonControl("/pause")
	case flagResume:
		return daemonControl("/resume")
	case flagStop:
		return daemonControl("/stop")
	case flagList:
		return runList()
	default:
		return cmd.Help()
	}
}

// runSet applies a wallpaper, preferring a running daemon so the
// renderer survives this process. Without a daemon it dispatches
// directly.
func runSet(reference string, monitor int, properties []string) error {
	props, err := parseProperties(properties)
	if err != nil {
		return err
	}

	if err := daemonSet(reference, monitor, props); err == nil {
		return nil
	} else if !errors.Is(err, errNoDaemon) {
		return err
	}

	opts := []wallpaper.DescriptorOption{wallpaper.WithMonitor(monitor)}
	for k, v := range props {
		opts = append(opts, wallpaper.WithProperty(k, v))
	}
	desc, err := wallpaper.NewDescriptor(reference, opts...)
	if err != nil {
		return err
	}

	cfg := config.GetConfig()
	dispatcher := wallpaper.NewDispatcher(wallpaper.NewExecRunner(), wallpaper.OptionsFromConfig(cfg))
	out, err := dispatcher.Dispatch(desc)
	if err != nil {
		return err
	}

	switch out.Status {
	case wallpaper.OutcomeDegraded:
		fmt.Printf("Wallpaper path acknowledged: %s\n", desc.Reference)
	case wallpaper.OutcomeLaunched:
		fmt.Printf("Renderer %s launched for %s\n", out.Adapter, desc.Reference)
	default:
		fmt.Printf("Wallpaper set: %s\n", desc.Reference)
	}
	return nil
}

func parseProperties(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	props := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := cutProperty(p)
		if !ok {
			return nil, fmt.Errorf("invalid property %q, expected key=value", p)
		}
		props[k] = v
	}
	return props, nil
}

func cutProperty(s string) (key, value string, ok bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == '=' {
			return s[:i], s[i+1:], i > 0
		}
	}
	return "", "", false
}

func libraryPath() string {
	return filepath.Join(config.GetPath(), wallpaper.LibraryFileName)
}

func runList() error {
	entries, err := daemonLibrary()
	if err == nil {
		printEntries(entries)
		return nil
	} else if !errors.Is(err, errNoDaemon) {
		return err
	}

	lib := wallpaper.NewLibrary(libraryPath(), config.GetConfig().LibraryLimit)
	if err := lib.Load(); err != nil {
		return err
	}
	printEntries(lib.List())
	return nil
}

func printEntries(entries []wallpaper.Entry) {
	if len(entries) == 0 {
		fmt.Println("Library is empty.")
		return
	}
	for _, e := range entries {
		target := "all"
		if e.MonitorTarget != wallpaper.AllMonitors {
			target = fmt.Sprintf("%d", e.MonitorTarget)
		}
		fmt.Printf("%s  %-6s  monitor=%-3s  %s\n", e.ID, e.Kind, target, e.Reference)
	}
}

func runCheckUpdates() error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	result, err := util.CheckForUpdates(ctx, nil)
	if err != nil {
		return fmt.Errorf("update check failed: %w", err)
	}
	if !result.UpdateAvailable {
		fmt.Printf("%s %s is up to date.\n", config.AppName, config.AppVersion)
		return nil
	}
	fmt.Printf("New version available: %s (current %s)\n%s\n", result.LatestVersion, result.CurrentVersion, result.ReleaseURL)
	return nil
}

// exitCode maps dispatch failures onto distinct process exit codes so
// scripts can tell a missing renderer from a launch failure.
func exitCode(err error) int {
	var de *wallpaper.DispatchError
	if errors.As(err, &de) {
		switch de.Kind {
		case wallpaper.AdapterMissing:
			return 3
		case wallpaper.AdapterLaunchFailed:
			return 2
		}
	}
	return 1
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Error: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}
