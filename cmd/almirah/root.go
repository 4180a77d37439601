package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dsarkar/almirah/internal/config"
	"github.com/dsarkar/almirah/internal/home"
	"github.com/dsarkar/almirah/version"
)

var (
	cfgFile string
	homeDir string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "almirah",
	Short: "Batch extraction of historical registration index records",
	Long: `Almirah extracts structured genealogical and land-record data from
scanned INDEX I (person-transaction) and INDEX II (property-transaction)
registers by prompting a local vision model and persisting the parsed
entries into a SQLite database.

The pipeline per image:
  - Base64-encode the scan and prompt the vision model
  - Recover the JSON object from the free-text reply
  - Write one document row plus its entry rows
  - Record the outcome in a timestamped batch summary`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.almirah/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "almirah home directory (default: ~/.almirah)",
	)
	rootCmd.PersistentFlags().BoolVar(
		&debug, "debug", false, "enable debug logging (dumps raw model content prefixes)",
	)
}

// setup loads configuration, resolves empty path fields against the home
// directory, and builds the logger. Every command goes through here.
func setup() (*config.Manager, *config.Config, *home.Dir, *slog.Logger, error) {
	h, err := home.New(homeDir)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if err := h.EnsureExists(); err != nil {
		return nil, nil, nil, nil, err
	}

	cm, err := config.NewManager(cfgFile)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	cfg := cm.Get()

	if cfg.DBPath == "" {
		cfg.DBPath = h.DBPath()
	}
	if cfg.Index1Dir == "" {
		cfg.Index1Dir = h.Index1Dir()
	}
	if cfg.Index2Dir == "" {
		cfg.Index2Dir = h.Index2Dir()
	}
	if cfg.ResultsDir == "" {
		cfg.ResultsDir = h.ResultsDir()
	}
	if debug {
		cfg.Debug = true
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))

	return cm, cfg, h, logger, nil
}
