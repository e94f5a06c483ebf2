package config

import "strings"

// AppVersion is the version of the application, overridable at build time.
var AppVersion = "1.0.0"

// AppName is the name of the application.
const AppName = "Lively"

// ServiceName is the name used for lock files and the config directory.
const ServiceName = AppName

// LogSubDir is the sub directory for the log files.
var LogSubDir = "." + strings.ToLower(AppName)

// LogExt is the extension for the log files.
var LogExt = ".log"

// DefaultListenAddr is the local control API address.
const DefaultListenAddr = "127.0.0.1:49417"

// DefaultLibraryLimit caps the number of entries kept in the library.
const DefaultLibraryLimit = 500
