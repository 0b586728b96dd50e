package parser

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	t.Run("valid character with full frontmatter", func(t *testing.T) {
		content := []byte("---\nname: Ismark Kolyanovich\ntype: Character\noccupation: Burgomaster's son\nlineage: human\ntags: [barovia, ally]\n---\n\nCalled Ismark the Lesser.\n")
		doc, err := Parse(content)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if doc.Name != "Ismark Kolyanovich" {
			t.Fatalf("expected name, got %q", doc.Name)
		}
		if doc.EntityType != "character" {
			t.Fatalf("expected lower-cased type, got %q", doc.EntityType)
		}
		if doc.Body != "Called Ismark the Lesser." {
			t.Fatalf("unexpected body %q", doc.Body)
		}
		if !reflect.DeepEqual(doc.Tags, []string{"barovia", "ally"}) {
			t.Fatalf("unexpected tags: %#v", doc.Tags)
		}
		if got := doc.OptField("occupation"); got == nil || *got != "Burgomaster's son" {
			t.Fatalf("unexpected occupation %v", got)
		}
	})

	t.Run("title stands in for name", func(t *testing.T) {
		doc, err := Parse([]byte("---\ntitle: Old Bonegrinder\ntype: location\n---\n"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if doc.Name != "Old Bonegrinder" {
			t.Fatalf("expected title as name, got %q", doc.Name)
		}
	})

	t.Run("minimal frontmatter", func(t *testing.T) {
		content := []byte("---\nname: Minimal\ntype: quest\n---\n")
		doc, err := Parse(content)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if doc.Tags != nil {
			t.Fatalf("expected nil tags, got %#v", doc.Tags)
		}
		if doc.Body != "" {
			t.Fatalf("expected empty body, got %q", doc.Body)
		}
	})

	t.Run("windows line endings", func(t *testing.T) {
		doc, err := Parse([]byte("---\r\nname: Vallaki\r\ntype: location\r\n---\r\nA town.\r\n"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if doc.Name != "Vallaki" || doc.Body != "A town." {
			t.Fatalf("unexpected document %+v", doc)
		}
	})

	t.Run("no frontmatter", func(t *testing.T) {
		_, err := Parse([]byte("Just text"))
		if !errors.Is(err, ErrNoFrontmatter) {
			t.Fatalf("expected ErrNoFrontmatter, got %v", err)
		}
	})

	t.Run("missing closing marker", func(t *testing.T) {
		_, err := Parse([]byte("---\nname: Missing\n"))
		if !errors.Is(err, ErrNoFrontmatter) {
			t.Fatalf("expected ErrNoFrontmatter, got %v", err)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := Parse([]byte("---\nname: [\n---\n"))
		if !errors.Is(err, ErrInvalidYAML) {
			t.Fatalf("expected ErrInvalidYAML, got %v", err)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := Parse([]byte("---\ntype: character\n---\n"))
		if !errors.Is(err, ErrMissingName) {
			t.Fatalf("expected ErrMissingName, got %v", err)
		}
	})

	t.Run("missing type", func(t *testing.T) {
		_, err := Parse([]byte("---\nname: Something\n---\n"))
		if !errors.Is(err, ErrMissingType) {
			t.Fatalf("expected ErrMissingType, got %v", err)
		}
	})

	t.Run("tags single string", func(t *testing.T) {
		doc, err := Parse([]byte("---\nname: Tags\ntype: character\ntags: lone\n---\n"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !reflect.DeepEqual(doc.Tags, []string{"lone"}) {
			t.Fatalf("unexpected tags: %#v", doc.Tags)
		}
	})

	t.Run("tags of the wrong shape", func(t *testing.T) {
		if _, err := Parse([]byte("---\nname: Tags\ntype: character\ntags: {a: b}\n---\n")); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestField(t *testing.T) {
	fm := map[string]any{
		"text":   "plain",
		"number": 3,
		"float":  1.5,
		"flag":   true,
		"list":   []any{"a", 2, "b"},
		"nested": map[string]any{"x": "y"},
	}
	tests := []struct {
		key  string
		want string
	}{
		{"text", "plain"},
		{"number", "3"},
		{"float", "1.5"},
		{"flag", "true"},
		{"list", "a, 2, b"},
		{"nested", ""},
		{"missing", ""},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := Field(fm, tt.key); got != tt.want {
				t.Errorf("Field(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	doc, err := ParseFile(filepath.Join("testdata", "valid_character.md"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if doc.Name != "Ireena Kolyana" {
		t.Fatalf("expected name, got %q", doc.Name)
	}
	if doc.SourceFile == "" {
		t.Fatalf("expected source file set")
	}
}

func TestParseFile_NoFrontmatter(t *testing.T) {
	_, err := ParseFile(filepath.Join("testdata", "no_frontmatter.md"))
	if !errors.Is(err, ErrNoFrontmatter) {
		t.Fatalf("expected ErrNoFrontmatter, got %v", err)
	}
}

func TestParseFile_MissingType(t *testing.T) {
	_, err := ParseFile(filepath.Join("testdata", "missing_type.md"))
	if !errors.Is(err, ErrMissingType) {
		t.Fatalf("expected ErrMissingType, got %v", err)
	}
}

func TestParse_BOMTrim(t *testing.T) {
	content := []byte("\ufeff---\nname: BOM\ntype: character\n---\n")
	doc, err := Parse(content)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if doc.Name != "BOM" {
		t.Fatalf("expected name, got %q", doc.Name)
	}
}

func TestParseFile_ReadError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected missing file")
	}
	if _, err := ParseFile(path); err == nil {
		t.Fatalf("expected error")
	}
}
