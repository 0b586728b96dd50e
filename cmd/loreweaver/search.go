package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"loreweaver/internal/store"
)

func searchCmd() *cobra.Command {
	var kinds []string
	var limit int
	cmd := &cobra.Command{
		Use:   "search <campaign-id> <text...>",
		Short: "Full-text search within a campaign",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args[0], strings.Join(args[1:], " "), kinds, limit)
		},
	}
	cmd.Flags().StringArrayVar(&kinds, "type", nil, "Entity type to include (repeatable)")
	cmd.Flags().IntVar(&limit, "limit", store.DefaultSearchLimit, "Maximum number of results")
	return cmd
}

func runSearch(cmd *cobra.Command, campaignID, query string, kinds []string, limit int) error {
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

	q := store.SearchQuery{CampaignID: campaignID, Query: query, Limit: limit}
	for _, k := range kinds {
		q.EntityTypes = append(q.EntityTypes, store.EntityKind(strings.ToLower(k)))
	}
	results, err := db.Search(ctx, q)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(os.Stdout, "No matches found.")
		return nil
	}

	for _, r := range results {
		fmt.Fprintf(os.Stdout, "%s (%s) %s rank=%.4f\n", r.Name, r.EntityType, r.EntityID, r.Rank)
		if r.Snippet != "" {
			fmt.Fprintf(os.Stdout, "  %s\n", r.Snippet)
		}
	}
	return nil
}
