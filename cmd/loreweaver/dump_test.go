package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"loreweaver/internal/store"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{name: "short", in: "hello", n: 10, want: "hello"},
		{name: "exact", in: "hello", n: 5, want: "hello"},
		{name: "cut", in: "hello world", n: 5, want: "hello..."},
		{name: "rune boundary", in: "héllo", n: 2, want: "h..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.in, tt.n); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
			}
		})
	}
}

func TestWriteConversation(t *testing.T) {
	tool := "search_entities"
	input := `{"query":"strahd"}`
	conv := store.AiConversation{
		ID:                "conv-1",
		CampaignID:        "camp-1",
		ContextType:       "sidebar",
		TotalInputTokens:  300,
		TotalOutputTokens: 150,
		UpdatedAt:         time.Date(2024, 3, 9, 18, 30, 0, 0, time.UTC),
	}
	messages := []store.AiMessage{
		{Role: "user", Content: "Who rules Barovia?", MessageOrder: 1},
		{Role: "tool", Content: "1 result", ToolName: &tool, ToolInputJSON: &input, MessageOrder: 2},
	}

	var buf bytes.Buffer
	writeConversation(&buf, conv, messages, false)
	out := buf.String()
	for _, want := range []string{
		"Conversation: SIDEBAR (conv-1)",
		"Tokens: 300 in / 150 out / 0 cache read / 0 cache create",
		"Updated: 2024-03-09 18:30:00",
		"[1] USER",
		"Content: Who rules Barovia?",
		"Tool: search_entities",
		"\"query\": \"strahd\"",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	writeConversation(&buf, conv, messages, true)
	if !strings.Contains(buf.String(), "Content: (18 chars)") || strings.Contains(buf.String(), "Barovia") {
		t.Errorf("summary output should only show lengths:\n%s", buf.String())
	}

	buf.Reset()
	writeConversation(&buf, conv, nil, false)
	if !strings.Contains(buf.String(), "(no messages)") {
		t.Errorf("expected empty marker:\n%s", buf.String())
	}
}

func TestParseListKind(t *testing.T) {
	tests := map[string]store.EntityKind{
		"campaigns":       store.KindCampaign,
		"heroes":          store.KindHero,
		"character":       store.KindCharacter,
		"timeline_events": store.KindTimelineEvent,
		"Quests":          store.KindQuest,
	}
	for in, want := range tests {
		got, err := parseListKind(in)
		if err != nil || got != want {
			t.Errorf("parseListKind(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := parseListKind("dragons"); err == nil {
		t.Error("expected error for unknown kind")
	}
}
