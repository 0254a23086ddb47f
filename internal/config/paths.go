package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths resolves every directory the application reads or writes. All
// subdirectories hang off BaseDir so a whole workspace can be relocated by
// changing a single setting.
type Paths struct {
	BaseDir      string
	RawDir       string
	ProcessedDir string
	ReportsDir   string
	LogsDir      string
}

// NewPaths builds a resolved Paths from configuration. Relative
// subdirectories are joined onto BaseDir; absolute ones are kept as-is.
func NewPaths(cfg PathsConfig) *Paths {
	resolve := func(dir string) string {
		if filepath.IsAbs(dir) {
			return dir
		}
		return filepath.Join(cfg.BaseDir, dir)
	}

	return &Paths{
		BaseDir:      cfg.BaseDir,
		RawDir:       resolve(cfg.RawDir),
		ProcessedDir: resolve(cfg.ProcessedDir),
		ReportsDir:   resolve(cfg.ReportsDir),
		LogsDir:      resolve(cfg.LogsDir),
	}
}

// EnsureDirectories creates every managed directory that does not yet exist.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{p.BaseDir, p.RawDir, p.ProcessedDir, p.ReportsDir, p.LogsDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetRawPath returns the full path of a file in the raw data directory.
func (p *Paths) GetRawPath(filename string) string {
	return filepath.Join(p.RawDir, filename)
}

// GetProcessedPath returns the full path of a file in the processed
// data directory.
func (p *Paths) GetProcessedPath(filename string) string {
	return filepath.Join(p.ProcessedDir, filename)
}

// GetReportPath returns the full path of a file in the reports directory.
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// GetLogPath returns the full path of a file in the logs directory.
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}
