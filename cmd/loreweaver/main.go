package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"loreweaver/internal/config"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "loreweaver",
		Short:        "Campaign manager store with full-text search and an AI tool server",
		SilenceUsage: true,
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().StringVar(&globals.configPath, "config", config.DefaultPath, "Path to the config file")
	root.PersistentFlags().StringVar(&globals.dsn, "db", "", "Database DSN, overrides the config file and LOREWEAVER_DB")
	root.AddCommand(migrateCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(searchCmd())
	root.AddCommand(listCmd())
	root.AddCommand(importCmd())
	root.AddCommand(dumpCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(indexCmd())
	root.AddCommand(initCmd())
	root.AddCommand(versionCmd())
	return root
}
