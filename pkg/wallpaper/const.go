package wallpaper

import "time"

// Default renderer binaries, overridable through config.
const (
	DefaultImageTool = "feh"
	DefaultVideoTool = "mpv"

	// gsettingsTool is the GNOME fallback image setter used when the
	// primary tool is not installed.
	gsettingsTool = "gsettings"
)

// Internal constants
const (
	// RendererKillWait is how long a renderer gets to exit after
	// SIGTERM before it is killed.
	RendererKillWait = 3 * time.Second

	// LibrarySaveDebounce batches bursts of library mutations into one
	// disk write.
	LibrarySaveDebounce = 2 * time.Second

	// LibraryFileName is the library store file under the config dir.
	LibraryFileName = "library.json"
)
