package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"loreweaver/internal/store"
)

const (
	contentPreview  = 500
	toolDataPreview = 200
	ruleHeavy       = "==============================================================================="
	ruleLight       = "-------------------------------------------------------------------------------"
)

type dumpOptions struct {
	context string
	last    bool
	summary bool
}

func dumpCmd() *cobra.Command {
	var opts dumpOptions
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print stored AI conversations, most recently updated first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch opts.context {
			case "", "sidebar", "fullpage":
			default:
				return fmt.Errorf("--context must be sidebar or fullpage")
			}
			return runDump(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.context, "context", "", "Only conversations of this context type: sidebar or fullpage")
	cmd.Flags().BoolVar(&opts.last, "last", false, "Show only the most recently updated conversation")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "Show message lengths instead of content")
	return cmd
}

func runDump(cmd *cobra.Command, opts dumpOptions) error {
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

	all, err := db.ListConversations(ctx)
	if err != nil {
		return err
	}
	conversations := make([]store.AiConversation, 0, len(all))
	for _, c := range all {
		if opts.context == "" || c.ContextType == opts.context {
			conversations = append(conversations, c)
		}
	}
	if opts.last && len(conversations) > 1 {
		conversations = conversations[:1]
	}
	if len(conversations) == 0 {
		fmt.Fprintln(os.Stdout, "No conversations found.")
		return nil
	}

	for _, c := range conversations {
		messages, err := db.ListMessages(ctx, c.ID)
		if err != nil {
			return err
		}
		writeConversation(os.Stdout, c, messages, opts.summary)
	}
	return nil
}

func writeConversation(w io.Writer, c store.AiConversation, messages []store.AiMessage, summary bool) {
	fmt.Fprintln(w, ruleHeavy)
	fmt.Fprintf(w, "Conversation: %s (%s)\n", strings.ToUpper(c.ContextType), c.ID)
	fmt.Fprintf(w, "   Campaign: %s\n", c.CampaignID)
	fmt.Fprintf(w, "   Tokens: %d in / %d out / %d cache read / %d cache create\n",
		c.TotalInputTokens, c.TotalOutputTokens, c.TotalCacheReadTokens, c.TotalCacheCreationTokens)
	fmt.Fprintf(w, "   Updated: %s\n", c.UpdatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(w, ruleLight)

	if len(messages) == 0 {
		fmt.Fprint(w, "   (no messages)\n\n")
		return
	}

	for _, m := range messages {
		fmt.Fprintf(w, "\n[%d] %s\n", m.MessageOrder, strings.ToUpper(m.Role))
		if m.ToolName != nil {
			fmt.Fprintf(w, "   Tool: %s\n", *m.ToolName)
		}
		if summary {
			fmt.Fprintf(w, "   Content: (%d chars)\n", len(m.Content))
			continue
		}
		fmt.Fprintf(w, "   Content: %s\n", truncate(m.Content, contentPreview))
		if m.ToolInputJSON != nil {
			if pretty, ok := prettyJSON(*m.ToolInputJSON); ok {
				fmt.Fprintf(w, "   Tool Input: %s\n", pretty)
			}
		}
		if m.ToolDataJSON != nil {
			fmt.Fprintf(w, "   Tool Data: %s\n", truncate(*m.ToolDataJSON, toolDataPreview))
		}
		if m.ProposalJSON != nil {
			if pretty, ok := prettyJSON(*m.ProposalJSON); ok {
				fmt.Fprintf(w, "   Proposal: %s\n", pretty)
			}
		}
	}
	fmt.Fprint(w, "\n\n")
}

// truncate cuts s to at most n bytes, backing off to a rune boundary.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}

func prettyJSON(raw string) (string, bool) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return "", false
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", false
	}
	return string(out), true
}
