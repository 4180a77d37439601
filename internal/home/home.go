// Package home defines the almirah home directory layout: input image
// folders, the extraction database, and batch result files.
package home

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the default name for the almirah home directory.
	DefaultDirName = ".almirah"

	// DataDirName is the subdirectory for input document scans.
	DataDirName = "data"

	// DBFileName is the extraction database file.
	DBFileName = "extraction.db"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"
)

// Dir represents the almirah home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.almirah).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}

	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// Index1Dir returns the input folder for INDEX I document scans.
func (d *Dir) Index1Dir() string {
	return filepath.Join(d.path, DataDirName, "index1")
}

// Index2Dir returns the input folder for INDEX II document scans.
func (d *Dir) Index2Dir() string {
	return filepath.Join(d.path, DataDirName, "index2")
}

// DBPath returns the path to the extraction database.
func (d *Dir) DBPath() string {
	return filepath.Join(d.path, "db", DBFileName)
}

// ResultsDir returns the directory batch and test result files are written to.
func (d *Dir) ResultsDir() string {
	return filepath.Join(d.path, "results")
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// EnsureExists creates the home directory and subdirectories if they don't exist.
func (d *Dir) EnsureExists() error {
	for _, dir := range []string{
		d.Index1Dir(),
		d.Index2Dir(),
		filepath.Dir(d.DBPath()),
		d.ResultsDir(),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// ConfigExists returns true if the config file exists in the home directory.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}
