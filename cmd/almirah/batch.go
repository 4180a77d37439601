package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/dsarkar/almirah/internal/batch"
	"github.com/dsarkar/almirah/internal/config"
	"github.com/dsarkar/almirah/internal/inference"
	"github.com/dsarkar/almirah/internal/pipeline"
)

var batchParallel bool

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Process every document in the INDEX I and INDEX II folders",
	Long: `Process all jpg/jpeg/png files in the two input folders.

By default the INDEX I folder is processed fully, then the INDEX II
folder, one inference call at a time with a fixed delay between files.
With --parallel the two folders run as independent lanes with no
ordering guarantee between them.

Examples:
  almirah batch                 # sequential, INDEX I then INDEX II
  almirah batch --parallel      # two independent lanes
  almirah batch --debug         # dump raw model content prefixes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cm, cfg, _, logger, err := setup()
		if err != nil {
			return err
		}

		cm.OnChange(func(c *config.Config) {
			logger.Info("config reloaded", "inter_call_delay_seconds", c.InterCallDelaySeconds)
		})
		cm.WatchConfig()

		client := inference.NewClient(inference.Config{
			EndpointURL: cfg.EndpointURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			TopP:        cfg.TopP,
			Timeout:     cfg.Timeout(),
		})

		logger.Info("waiting for inference endpoint", "url", cfg.EndpointURL, "model", client.Model())
		if err := client.WaitReady(ctx, 60*time.Second); err != nil {
			return err
		}

		driver := batch.New(batch.Config{
			Processor: pipeline.New(pipeline.Config{
				Client: client,
				DBPath: cfg.DBPath,
				Logger: logger,
				Debug:  cfg.Debug,
			}),
			Index1Dir:  cfg.Index1Dir,
			Index2Dir:  cfg.Index2Dir,
			ResultsDir: cfg.ResultsDir,
			Delay:      cfg.InterCallDelay(),
			Logger:     logger,
		})

		if batchParallel {
			driver.RunParallel(ctx)
		} else {
			driver.RunAll(ctx)
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().BoolVar(&batchParallel, "parallel", false, "process the two folders as independent lanes")

	rootCmd.AddCommand(batchCmd)
}
