package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dsarkar/almirah/internal/inference"
	"github.com/dsarkar/almirah/internal/pipeline"
	"github.com/dsarkar/almirah/internal/record"
)

var singleKind string

var singleCmd = &cobra.Command{
	Use:   "single <image-path>",
	Short: "Extract one document with debug output",
	Long: `Run the extraction pipeline on a single image with debug logging.
The result is printed to stdout and, on success, also written to
test_result_<timestamp>.json in the results directory.

Examples:
  almirah single scans/index1_3.jpg
  almirah single scans/deed_12.png --kind INDEX_2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		kind, err := record.FromName(singleKind)
		if err != nil {
			return err
		}

		debug = true
		_, cfg, _, logger, err := setup()
		if err != nil {
			return err
		}

		client := inference.NewClient(inference.Config{
			EndpointURL: cfg.EndpointURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			TopP:        cfg.TopP,
			Timeout:     cfg.Timeout(),
		})

		proc := pipeline.New(pipeline.Config{
			Client: client,
			DBPath: cfg.DBPath,
			Logger: logger,
			Debug:  true,
		})

		logger.Info("testing single document extraction", "file", args[0], "kind", kind.Name)
		res := proc.ProcessDocument(ctx, args[0], kind)

		out, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))

		if res.Failed() {
			logger.Error("test failed", "err", res.Error)
			return nil
		}

		logger.Info("test successful", "entries", res.EntryCount())
		path := filepath.Join(cfg.ResultsDir, fmt.Sprintf("test_result_%s.json", time.Now().Format("20060102_150405")))
		if err := os.WriteFile(path, out, 0o644); err != nil {
			logger.Warn("could not save test result", "err", err)
			return nil
		}
		logger.Info("test result saved", "path", path)
		return nil
	},
}

func init() {
	singleCmd.Flags().StringVar(&singleKind, "kind", record.Index1.Name, "document kind: INDEX_1 or INDEX_2")

	rootCmd.AddCommand(singleCmd)
}
