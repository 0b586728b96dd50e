//go:build integration

package postgres

import (
	"context"
	"errors"
	"os"
	"sort"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"loreweaver/internal/store"
	"loreweaver/internal/store/sqlstore"
)

func newTestStore(t *testing.T) *sqlstore.DB {
	t.Helper()
	dsn := os.Getenv("LOREWEAVER_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("LOREWEAVER_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	s, err := Open(ctx, dsn, Options{Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	if _, err := s.SQL().ExecContext(ctx, `TRUNCATE campaigns CASCADE`); err != nil {
		t.Fatalf("resetting database: %v", err)
	}
	t.Cleanup(func() { s.Close(context.Background()) })
	return s
}

func TestSearchPrefixAndIsolation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	a, err := s.CreateCampaign(ctx, store.CreateCampaignInput{Name: "Middle-earth"})
	if err != nil {
		t.Fatalf("creating campaign: %v", err)
	}
	b, err := s.CreateCampaign(ctx, store.CreateCampaignInput{Name: "Elsewhere"})
	if err != nil {
		t.Fatalf("creating campaign: %v", err)
	}
	for _, name := range []string{"Gandalf", "Galadriel", "Gimli"} {
		if _, err := s.CreateCharacter(ctx, store.CreateCharacterInput{CampaignID: a.ID, Name: name}); err != nil {
			t.Fatalf("creating %s: %v", name, err)
		}
	}
	if _, err := s.CreateCharacter(ctx, store.CreateCharacterInput{CampaignID: b.ID, Name: "Gandalf"}); err != nil {
		t.Fatalf("creating character: %v", err)
	}

	results, err := s.Search(ctx, store.SearchQuery{CampaignID: a.ID, Query: "Ga"})
	if err != nil {
		t.Fatalf("searching: %v", err)
	}
	var names []string
	for _, r := range results {
		if r.EntityType != store.KindCharacter {
			t.Errorf("unexpected kind %q", r.EntityType)
		}
		names = append(names, r.Name)
	}
	sort.Strings(names)
	if got := strings.Join(names, ","); got != "Galadriel,Gandalf" {
		t.Errorf("Search(Ga) = %s, want Galadriel,Gandalf", got)
	}

	if _, err := s.Search(ctx, store.SearchQuery{CampaignID: a.ID, Query: "  "}); !errors.Is(err, store.ErrDatabase) {
		t.Errorf("blank query: got %v, want database error", err)
	}
}

func TestExplicitReindex(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	c, err := s.CreateCampaign(ctx, store.CreateCampaignInput{Name: "Reindex"})
	if err != nil {
		t.Fatalf("creating campaign: %v", err)
	}
	q, err := s.CreateQuest(ctx, store.CreateQuestInput{CampaignID: c.ID, Name: "Find the Ring", Hook: ptr("A wizard visits")})
	if err != nil {
		t.Fatalf("creating quest: %v", err)
	}
	if _, err := s.UpdateQuest(ctx, q.ID, store.UpdateQuestInput{Hook: ptr("A hobbit inherits")}); err != nil {
		t.Fatalf("updating quest: %v", err)
	}
	results, err := s.Search(ctx, store.SearchQuery{CampaignID: c.ID, Query: "hobbit"})
	if err != nil || len(results) != 1 {
		t.Fatalf("search after update = %v, %v; want one result", results, err)
	}
	if !strings.Contains(results[0].Snippet, "<mark>") {
		t.Errorf("snippet %q has no marks", results[0].Snippet)
	}
	if _, err := s.CreateSession(ctx, store.CreateSessionInput{CampaignID: c.ID, SessionNumber: 7}); err != nil {
		t.Fatalf("creating session: %v", err)
	}

	drift, err := s.VerifyIndex(ctx)
	if err != nil || len(drift) != 0 {
		t.Fatalf("VerifyIndex = %+v, %v; want clean", drift, err)
	}

	if _, err := s.DeleteQuest(ctx, q.ID); err != nil {
		t.Fatalf("deleting quest: %v", err)
	}
	n, err := s.RebuildIndex(ctx)
	if err != nil {
		t.Fatalf("rebuilding: %v", err)
	}
	if n != 1 {
		t.Errorf("rebuilt %d entries, want 1", n)
	}
}

func TestMessageOrderAndTokens(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	c, err := s.CreateCampaign(ctx, store.CreateCampaignInput{Name: "Chat"})
	if err != nil {
		t.Fatalf("creating campaign: %v", err)
	}
	conv, err := s.GetOrCreateConversation(ctx, c.ID, "fullpage")
	if err != nil {
		t.Fatalf("creating conversation: %v", err)
	}
	for i := 1; i <= 3; i++ {
		m, err := s.AddMessage(ctx, store.AddMessageInput{ConversationID: conv.ID, Role: "user", Content: "hi"})
		if err != nil {
			t.Fatalf("adding message: %v", err)
		}
		if m.MessageOrder != i {
			t.Errorf("order = %d, want %d", m.MessageOrder, i)
		}
	}
	s.UpdateTokenCounts(ctx, conv.ID, store.TokenUsage{InputTokens: 100, OutputTokens: 50, CacheReadTokens: 25, CacheCreationTokens: 10})
	got, err := s.UpdateTokenCounts(ctx, conv.ID, store.TokenUsage{InputTokens: 200, OutputTokens: 100, CacheReadTokens: 50, CacheCreationTokens: 20})
	if err != nil {
		t.Fatalf("updating tokens: %v", err)
	}
	if got.TotalInputTokens != 300 || got.TotalCacheCreationTokens != 30 {
		t.Errorf("totals = %+v", got)
	}
}

func ptr[T any](v T) *T {
	return &v
}
