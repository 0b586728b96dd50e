package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"loreweaver/internal/ingest"
)

func importCmd() *cobra.Command {
	var exclude []string
	cmd := &cobra.Command{
		Use:   "import <campaign-id> <dir>",
		Short: "Import Markdown notes with YAML frontmatter into a campaign",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], args[1], exclude)
		},
	}
	cmd.Flags().StringArrayVar(&exclude, "exclude", nil, "Directory or file to skip (repeatable)")
	return cmd
}

func runImport(cmd *cobra.Command, campaignID, dir string, exclude []string) error {
	ctx := cmd.Context()

	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	db, err := openDB(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	result, err := ingest.Run(ctx, db, campaignID, dir, ingest.Options{Exclude: exclude, Logger: logger})
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, "Import complete.")
	fmt.Fprintf(os.Stdout, "  Entities created: %d\n", result.Created)
	fmt.Fprintf(os.Stdout, "  Already present:  %d\n", result.Existing)
	fmt.Fprintf(os.Stdout, "  Tags linked:      %d\n", result.TagsLinked)
	fmt.Fprintf(os.Stdout, "  Parents set:      %d\n", result.ParentsSet)
	fmt.Fprintf(os.Stdout, "  Files skipped:    %d\n", result.FilesSkipped)

	if len(result.Errors) > 0 {
		fmt.Fprintf(os.Stdout, "\nErrors (%d):\n", len(result.Errors))
		for _, item := range result.Errors {
			fmt.Fprintf(os.Stdout, "  - %v\n", item)
		}
		return fmt.Errorf("import completed with errors")
	}

	return nil
}
