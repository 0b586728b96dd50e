package sqlite

import (
	"net/url"
	"strings"
	"testing"
)

func TestParseDSN(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantPath   string
		wantMemory bool
		wantErr    bool
	}{
		{name: "relative path", input: "sqlite://campaigns.db", wantPath: "./campaigns.db"},
		{name: "dot relative path", input: "sqlite://./data/campaigns.db", wantPath: "./data/campaigns.db"},
		{name: "absolute path", input: "sqlite:///var/lib/loreweaver.db", wantPath: "/var/lib/loreweaver.db"},
		{name: "escaped path", input: "sqlite://my%20campaign.db", wantPath: "./my campaign.db"},
		{name: "memory", input: "sqlite://:memory:", wantPath: ":memory:", wantMemory: true},
		{name: "wrong scheme", input: "postgres://localhost/db", wantErr: true},
		{name: "empty path", input: "sqlite://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, memory, err := parseDSN(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseDSN(%q) succeeded, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDSN(%q): %v", tt.input, err)
			}
			path, _, _ := strings.Cut(got, "?")
			if path != tt.wantPath {
				t.Errorf("path = %q, want %q", path, tt.wantPath)
			}
			if memory != tt.wantMemory {
				t.Errorf("memory = %v, want %v", memory, tt.wantMemory)
			}
		})
	}
}

func TestParseDSNPragmas(t *testing.T) {
	got, _, err := parseDSN("sqlite://campaigns.db?cache=shared")
	if err != nil {
		t.Fatalf("parseDSN: %v", err)
	}
	_, rawQuery, _ := strings.Cut(got, "?")
	params, err := url.ParseQuery(rawQuery)
	if err != nil {
		t.Fatalf("parsing driver DSN: %v", err)
	}

	if params.Get("cache") != "shared" {
		t.Errorf("cache = %q, want caller parameter preserved", params.Get("cache"))
	}
	if params.Get("_txlock") != "immediate" {
		t.Errorf("_txlock = %q, want immediate", params.Get("_txlock"))
	}
	pragmas := strings.Join(params["_pragma"], ",")
	for _, want := range []string{"foreign_keys(1)", "busy_timeout(30000)", "journal_mode(WAL)"} {
		if !strings.Contains(pragmas, want) {
			t.Errorf("pragmas %q missing %s", pragmas, want)
		}
	}
}

func TestParseDSNMemorySkipsWAL(t *testing.T) {
	got, _, err := parseDSN("sqlite://:memory:")
	if err != nil {
		t.Fatalf("parseDSN: %v", err)
	}
	if strings.Contains(got, "journal_mode") {
		t.Errorf("memory DSN %q should not request WAL", got)
	}
	if !strings.Contains(got, url.QueryEscape("foreign_keys(1)")) {
		t.Errorf("memory DSN %q should enable foreign keys", got)
	}
}
