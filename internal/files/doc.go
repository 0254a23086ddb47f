// Package files provides file system operations and discovery utilities
// over the application's data directories.
//
// This package contains two main components:
//
// Discovery: Locates raw dataset CSV files, including the most recently
// generated one, and files matching glob patterns.
//
// Manager: Basic file management such as copying files and ensuring
// directories exist. Relative paths resolve against the configured data
// directories (raw/, processed/, reports/, logs/).
//
// Example usage:
//
//	discovery := files.NewDiscovery("/path/to/base")
//	latest, ok, err := discovery.FindLatestCSV("raw")
//
//	manager := files.NewManager(paths)
//	if manager.FileExists("raw/sales.csv") {
//	    // process file
//	}
package files
