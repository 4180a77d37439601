package main

import (
	"github.com/spf13/cobra"

	"github.com/dsarkar/almirah/internal/store"
)

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Create the extraction database schema",
	Long: `Create the documents, index1_entries, and index2_entries tables if
they do not exist. Safe to run repeatedly; batch runs also initialize the
schema on first write.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cfg, _, logger, err := setup()
		if err != nil {
			return err
		}

		st, err := store.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer st.Close()

		logger.Info("database initialized", "path", cfg.DBPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initDBCmd)
}
