package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"loreweaver/internal/store"
)

func listCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list <kind> [campaign-id]",
		Short: "List campaigns, or a campaign's entities of one kind",
		Long: "List campaigns with \"list campaigns\", or one kind of entity with \"list <kind> <campaign-id>\".\n" +
			"Kinds: campaign, player, location, character, organization, quest, hero, session, timeline_event, secret, tag.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseListKind(args[0])
			if err != nil {
				return err
			}
			campaignID := ""
			if len(args) == 2 {
				campaignID = args[1]
			}
			if kind != store.KindCampaign && campaignID == "" {
				return fmt.Errorf("listing %s requires a campaign id", kind)
			}
			return runList(cmd, kind, campaignID, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print records as JSON")
	return cmd
}

func runList(cmd *cobra.Command, kind store.EntityKind, campaignID string, asJSON bool) error {
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

	records, err := store.ListEntities(ctx, db, kind, campaignID)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	lines := summaries(records)
	if len(lines) == 0 {
		fmt.Fprintln(os.Stdout, "No entities found.")
		return nil
	}
	for _, line := range lines {
		fmt.Fprintln(os.Stdout, line)
	}
	return nil
}

// parseListKind accepts a kind in singular or plural form.
func parseListKind(s string) (store.EntityKind, error) {
	kind, err := store.ParseKind(s)
	if err == nil {
		return kind, nil
	}
	for _, suffix := range []string{"es", "s"} {
		if k, perr := store.ParseKind(strings.TrimSuffix(s, suffix)); perr == nil {
			return k, nil
		}
	}
	return "", err
}

// summaries renders one line per record: display name then id.
func summaries(records any) []string {
	var lines []string
	add := func(name, id string) { lines = append(lines, fmt.Sprintf("%s  %s", name, id)) }
	switch items := records.(type) {
	case []store.Campaign:
		for _, c := range items {
			add(c.Name, c.ID)
		}
	case []store.Player:
		for _, p := range items {
			add(p.Name, p.ID)
		}
	case []store.Location:
		for _, l := range items {
			add(fmt.Sprintf("%s (%s)", l.Name, l.LocationType), l.ID)
		}
	case []store.Character:
		for _, c := range items {
			add(c.Name, c.ID)
		}
	case []store.Organization:
		for _, o := range items {
			add(fmt.Sprintf("%s (%s)", o.Name, o.OrgType), o.ID)
		}
	case []store.Quest:
		for _, q := range items {
			add(fmt.Sprintf("%s [%s, %s]", q.Name, q.Status, q.PlotType), q.ID)
		}
	case []store.Hero:
		for _, h := range items {
			add(h.Name, h.ID)
		}
	case []store.Session:
		for _, s := range items {
			title := fmt.Sprintf("Session %d", s.SessionNumber)
			if s.Title != nil {
				title += ": " + *s.Title
			}
			add(title, s.ID)
		}
	case []store.TimelineEvent:
		for _, e := range items {
			add(fmt.Sprintf("%s  %s", e.DateDisplay, e.Title), e.ID)
		}
	case []store.Secret:
		for _, s := range items {
			add(s.Title, s.ID)
		}
	case []store.Tag:
		for _, t := range items {
			add(t.Name, t.ID)
		}
	}
	return lines
}
