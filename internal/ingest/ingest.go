// Package ingest imports a directory of Markdown campaign notes into a
// campaign.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"loreweaver/internal/parser"
	"loreweaver/internal/store"
)

type Result struct {
	Created      int
	Existing     int
	FilesSkipped int
	TagsLinked   int
	ParentsSet   int
	Errors       []error
}

type Options struct {
	Exclude []string
	Logger  zerolog.Logger
}

type createdDoc struct {
	doc  *parser.Document
	kind store.EntityKind
	id   string
}

// Run imports every note under root into the campaign. Notes whose name
// already exists for their kind are left alone, so running it twice is
// harmless. Per-file failures are collected in the result.
func Run(ctx context.Context, db Store, campaignID, root string, options Options) (*Result, error) {
	if _, err := db.GetCampaign(ctx, campaignID); err != nil {
		return nil, err
	}

	files, err := walkMarkdownFiles([]string{root}, options.Exclude)
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	result := &Result{}
	names := make(map[store.EntityKind]map[string]string)
	var created []createdDoc

	for _, path := range files {
		doc, err := parser.ParseFile(path)
		if err != nil {
			if errors.Is(err, parser.ErrNoFrontmatter) || errors.Is(err, parser.ErrMissingType) {
				result.FilesSkipped++
				continue
			}
			result.Errors = append(result.Errors, fmt.Errorf("parsing %s: %w", path, err))
			continue
		}

		kind := store.EntityKind(doc.EntityType)
		imp, ok := importers[kind]
		if !ok {
			options.Logger.Debug().Str("file", path).Str("type", doc.EntityType).Msg("skipping note of unknown type")
			result.FilesSkipped++
			continue
		}

		existing, ok := names[kind]
		if !ok {
			existing, err = imp.names(ctx, db, campaignID)
			if err != nil {
				return nil, fmt.Errorf("listing existing %s entities: %w", kind, err)
			}
			names[kind] = existing
		}
		if _, ok := existing[doc.Name]; ok {
			result.Existing++
			continue
		}

		id, err := imp.create(ctx, db, campaignID, doc)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("importing %s: %w", path, err))
			continue
		}
		existing[doc.Name] = id
		result.Created++
		created = append(created, createdDoc{doc: doc, kind: kind, id: id})
		options.Logger.Debug().Str("file", path).Str("kind", string(kind)).Str("id", id).Msg("imported note")
	}

	tags, err := newTagCache(ctx, db, campaignID)
	if err != nil {
		return nil, err
	}
	for _, item := range created {
		if item.kind == store.KindLocation {
			if parent := item.doc.OptField("parent"); parent != nil {
				if err := setParent(ctx, db, names, item, *parent); err != nil {
					result.Errors = append(result.Errors, fmt.Errorf("nesting %s: %w", item.doc.SourceFile, err))
				} else {
					result.ParentsSet++
				}
			}
		}
		for _, name := range item.doc.Tags {
			tagID, err := tags.resolve(ctx, name)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("tagging %s: %w", item.doc.SourceFile, err))
				continue
			}
			if _, err := db.AddEntityTag(ctx, tagID, store.EntityRef{Type: item.kind, ID: item.id}); err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("tagging %s: %w", item.doc.SourceFile, err))
				continue
			}
			result.TagsLinked++
		}
	}

	return result, nil
}

func setParent(ctx context.Context, db Store, names map[store.EntityKind]map[string]string, item createdDoc, parent string) error {
	locations := names[store.KindLocation]
	parentID, ok := locations[parent]
	if !ok {
		return fmt.Errorf("parent location %q not found", parent)
	}
	_, err := db.UpdateLocation(ctx, item.id, store.UpdateLocationInput{ParentID: &parentID})
	return err
}

// tagCache finds tags by name and creates the missing ones.
type tagCache struct {
	db         Store
	campaignID string
	ids        map[string]string
}

func newTagCache(ctx context.Context, db Store, campaignID string) (*tagCache, error) {
	existing, err := db.ListTags(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	ids := make(map[string]string, len(existing))
	for _, t := range existing {
		ids[t.Name] = t.ID
	}
	return &tagCache{db: db, campaignID: campaignID, ids: ids}, nil
}

func (c *tagCache) resolve(ctx context.Context, name string) (string, error) {
	if id, ok := c.ids[name]; ok {
		return id, nil
	}
	t, err := c.db.CreateTag(ctx, store.CreateTagInput{CampaignID: c.campaignID, Name: name})
	if err != nil {
		return "", err
	}
	c.ids[name] = t.ID
	return t.ID, nil
}

func walkMarkdownFiles(roots []string, excludes []string) ([]string, error) {
	excluded := make([]string, 0, len(excludes))
	for _, path := range excludes {
		if path == "" {
			continue
		}
		excluded = append(excluded, filepath.Clean(path))
	}

	var files []string
	for _, root := range roots {
		if root == "" {
			continue
		}
		root = filepath.Clean(root)
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() && (isExcluded(path, excluded) || (path != root && strings.HasPrefix(d.Name(), "."))) {
				return filepath.SkipDir
			}
			if d.IsDir() {
				return nil
			}
			if !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
				return nil
			}
			if isExcluded(path, excluded) {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

func isExcluded(path string, excludes []string) bool {
	clean := filepath.Clean(path)
	for _, exclude := range excludes {
		if exclude == clean || strings.HasPrefix(clean, exclude+string(os.PathSeparator)) {
			return true
		}
	}
	return false
}
