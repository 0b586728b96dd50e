package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"loreweaver/internal/config"
)

func initCmd() *cobra.Command {
	var dsn string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default loreweaver.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(globals.configPath, dsn)
		},
	}
	cmd.Flags().StringVar(&dsn, "dsn", config.DefaultDSN, "Database DSN to record in the config")
	return cmd
}

func runInit(path, dsn string) error {
	cfg := config.Default()
	cfg.Database.DSN = dsn
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Write(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Wrote %s.\n", path)
	return nil
}
