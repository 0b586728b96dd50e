package postgres

import (
	"testing"

	"loreweaver/internal/store"
)

func TestRebind(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "no placeholders",
			input:    "SELECT 1",
			expected: "SELECT 1",
		},
		{
			name:     "numbered in order",
			input:    "SELECT id FROM characters WHERE campaign_id = ? AND name = ?",
			expected: "SELECT id FROM characters WHERE campaign_id = $1 AND name = $2",
		},
		{
			name:     "quoted question mark kept",
			input:    "SELECT '?', name FROM tags WHERE id = ?",
			expected: "SELECT '?', name FROM tags WHERE id = $1",
		},
	}

	var d Dialect
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Rebind(tt.input); got != tt.expected {
				t.Errorf("Rebind(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestBuildTSQuery(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "single term",
			input:    "Ga",
			expected: "Ga:*",
		},
		{
			name:     "terms are AND-ed",
			input:    "gandalf wizard",
			expected: "gandalf:* & wizard:*",
		},
		{
			name:     "quotes stripped",
			input:    `gandalf "the grey"`,
			expected: "gandalf:* & the:* & grey:*",
		},
		{
			name:     "operators stripped",
			input:    "!orc | (goblin) &",
			expected: "orc:* & goblin:*",
		},
		{
			name:     "blank",
			input:    "  \t ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildTSQuery(tt.input); got != tt.expected {
				t.Errorf("buildTSQuery(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSearchSQLArgs(t *testing.T) {
	var d Dialect
	_, args := d.SearchSQL("orc:*", store.SearchQuery{
		CampaignID:  "c1",
		EntityTypes: []store.EntityKind{store.KindCharacter, store.KindQuest},
	})
	want := []any{"orc:*", "c1", "character", "quest", store.DefaultSearchLimit}
	if len(args) != len(want) {
		t.Fatalf("got %d args, want %d: %v", len(args), len(want), args)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("args[%d] = %v, want %v", i, args[i], want[i])
		}
	}
}
