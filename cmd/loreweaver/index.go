package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func indexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Inspect or rebuild the full-text search index",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "verify",
		Short: "Compare the search index with its source rows",
		Args:  cobra.NoArgs,
		RunE:  runIndexVerify,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rebuild",
		Short: "Rewrite the whole search index from the source rows",
		Args:  cobra.NoArgs,
		RunE:  runIndexRebuild,
	})
	return cmd
}

func runIndexVerify(cmd *cobra.Command, args []string) error {
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

	drift, err := db.VerifyIndex(ctx)
	if err != nil {
		return err
	}
	if len(drift) == 0 {
		fmt.Fprintln(os.Stdout, "Search index is consistent.")
		return nil
	}
	for _, d := range drift {
		fmt.Fprintf(os.Stdout, "  - %s %q: %s\n", d.Ref, d.Name, d.Reason)
	}
	return fmt.Errorf("search index has %d inconsistent row(s)", len(drift))
}

func runIndexRebuild(cmd *cobra.Command, args []string) error {
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

	n, err := db.RebuildIndex(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Indexed %d entities.\n", n)
	return nil
}
