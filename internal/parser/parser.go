// Package parser reads campaign notes: Markdown files that open with a
// YAML frontmatter block.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Document struct {
	Frontmatter map[string]any
	Name        string
	EntityType  string
	Tags        []string
	Body        string
	SourceFile  string
}

var (
	ErrNoFrontmatter = errors.New("no frontmatter found")
	ErrInvalidYAML   = errors.New("invalid YAML in frontmatter")
	ErrMissingName   = errors.New("frontmatter missing required 'name' or 'title' field")
	ErrMissingType   = errors.New("frontmatter missing required 'type' field")
)

func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	doc.SourceFile = path
	return doc, nil
}

func Parse(content []byte) (*Document, error) {
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	trimmed := bytes.TrimLeft(content, "\ufeff\n\t ")
	if !bytes.HasPrefix(trimmed, []byte("---\n")) {
		return nil, ErrNoFrontmatter
	}

	rest := trimmed[len("---\n"):]
	var yamlBytes []byte
	var body string
	if bytes.HasPrefix(rest, []byte("---\n")) {
		body = string(rest[len("---\n"):])
	} else {
		end := bytes.Index(rest, []byte("\n---\n"))
		if end == -1 {
			if !bytes.HasSuffix(rest, []byte("\n---")) {
				return nil, ErrNoFrontmatter
			}
			end = len(rest) - len("\n---")
			yamlBytes = rest[:end]
		} else {
			yamlBytes = rest[:end]
			body = string(rest[end+len("\n---\n"):])
		}
	}

	var frontmatter map[string]any
	if err := yaml.Unmarshal(yamlBytes, &frontmatter); err != nil {
		return nil, ErrInvalidYAML
	}

	name := strings.TrimSpace(Field(frontmatter, "name"))
	if name == "" {
		name = strings.TrimSpace(Field(frontmatter, "title"))
	}
	if name == "" {
		return nil, ErrMissingName
	}

	entityType := strings.TrimSpace(Field(frontmatter, "type"))
	if entityType == "" {
		return nil, ErrMissingType
	}

	tags, err := parseTags(frontmatter["tags"])
	if err != nil {
		return nil, err
	}

	return &Document{
		Frontmatter: frontmatter,
		Name:        name,
		EntityType:  strings.ToLower(entityType),
		Tags:        tags,
		Body:        strings.TrimSpace(body),
	}, nil
}

// Field renders a scalar frontmatter value as text. Lists are joined with
// ", "; a missing key or a nested map yields "".
func Field(frontmatter map[string]any, key string) string {
	switch v := frontmatter[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s := Field(map[string]any{"": item}, ""); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

// OptField is Field with blank values reported as nil.
func (d *Document) OptField(key string) *string {
	s := strings.TrimSpace(Field(d.Frontmatter, key))
	if s == "" {
		return nil
	}
	return &s
}

func parseTags(value any) ([]string, error) {
	if value == nil {
		return nil, nil
	}
	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
		return []string{strings.TrimSpace(v)}, nil
	case []any:
		tags := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("tags must be strings")
			}
			if strings.TrimSpace(s) == "" {
				continue
			}
			tags = append(tags, strings.TrimSpace(s))
		}
		if len(tags) == 0 {
			return nil, nil
		}
		return tags, nil
	default:
		return nil, fmt.Errorf("tags must be string or list of strings")
	}
}
