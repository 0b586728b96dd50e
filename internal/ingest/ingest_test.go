package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"loreweaver/internal/store"
	"loreweaver/internal/store/sqlite"
	"loreweaver/internal/store/sqlstore"
)

func newTestStore(t *testing.T) (*sqlstore.DB, string) {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, "sqlite://"+filepath.Join(t.TempDir(), "ingest.db"), sqlite.Options{Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { db.Close(context.Background()) })
	c, err := db.CreateCampaign(ctx, store.CreateCampaignInput{Name: "Barovia"})
	if err != nil {
		t.Fatalf("creating campaign: %v", err)
	}
	return db, c.ID
}

func writeNotes(t *testing.T, notes map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range notes {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("creating dir for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	return dir
}

var campaignNotes = map[string]string{
	"npcs/ireena.md":      "---\nname: Ireena Kolyana\ntype: character\noccupation: Burgomaster's daughter\ntags: [ally, barovia]\n---\n\nA red-haired noblewoman.\n",
	"npcs/strahd.md":      "---\nname: Strahd von Zarovich\ntype: character\nlineage: vampire\ntags: villain\n---\n\nThe lord of Barovia.\n",
	"places/village.md":   "---\nname: Village of Barovia\ntype: location\nlocation_type: settlement\ntags: [barovia]\n---\n",
	"places/church.md":    "---\ntitle: Church of the Morninglord\ntype: location\nlocation_type: building\nparent: Village of Barovia\n---\n\nA crumbling chapel.\n",
	"factions/keepers.md": "---\nname: Keepers of the Feather\ntype: organization\norg_type: secret_society\ngoals: Defeat Strahd\n---\n",
	"quests/escort.md":    "---\nname: Escort Ireena\ntype: quest\nstatus: active\nplot_type: main\nhook: The burgomaster's letter\n---\n",
	"scratch.md":          "Loose thoughts without frontmatter.\n",
	"lore/history.md":     "---\nname: The Sunless Citadel\ntype: lore\n---\n",
	"readme.txt":          "not markdown",
}

func TestRun_BasicImport(t *testing.T) {
	ctx := context.Background()
	db, campaignID := newTestStore(t)
	dir := writeNotes(t, campaignNotes)

	result, err := Run(ctx, db, campaignID, dir, Options{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Created != 6 {
		t.Errorf("expected 6 created, got %d", result.Created)
	}
	if result.FilesSkipped != 2 {
		t.Errorf("expected 2 files skipped, got %d", result.FilesSkipped)
	}
	if result.ParentsSet != 1 {
		t.Errorf("expected 1 parent set, got %d", result.ParentsSet)
	}
	if result.TagsLinked != 4 {
		t.Errorf("expected 4 tag links, got %d", result.TagsLinked)
	}

	chars, err := db.ListCharacters(ctx, campaignID)
	if err != nil {
		t.Fatalf("listing characters: %v", err)
	}
	if len(chars) != 2 || chars[0].Name != "Ireena Kolyana" {
		t.Fatalf("unexpected characters: %+v", chars)
	}
	if chars[0].Description == nil || *chars[0].Description != "A red-haired noblewoman." {
		t.Errorf("body should become the description, got %v", chars[0].Description)
	}
	if chars[1].Lineage == nil || *chars[1].Lineage != "vampire" {
		t.Errorf("expected lineage from frontmatter, got %v", chars[1].Lineage)
	}

	tags, err := db.GetEntityTags(ctx, store.EntityRef{Type: store.KindCharacter, ID: chars[0].ID})
	if err != nil {
		t.Fatalf("reading tags: %v", err)
	}
	var tagNames []string
	for _, tag := range tags {
		tagNames = append(tagNames, tag.Name)
	}
	if !reflect.DeepEqual(tagNames, []string{"ally", "barovia"}) {
		t.Errorf("unexpected tags: %v", tagNames)
	}
	allTags, err := db.ListTags(ctx, campaignID)
	if err != nil || len(allTags) != 3 {
		t.Errorf("expected 3 distinct tags, got %v, %v", allTags, err)
	}

	locations, err := db.ListLocations(ctx, campaignID)
	if err != nil {
		t.Fatalf("listing locations: %v", err)
	}
	var village, church store.Location
	for _, l := range locations {
		switch l.Name {
		case "Village of Barovia":
			village = l
		case "Church of the Morninglord":
			church = l
		}
	}
	if church.ParentID == nil || *church.ParentID != village.ID {
		t.Errorf("church should be nested under the village, got %v", church.ParentID)
	}
	if church.LocationType != "building" {
		t.Errorf("expected building, got %q", church.LocationType)
	}

	quests, err := db.ListQuests(ctx, campaignID)
	if err != nil || len(quests) != 1 || quests[0].Status != "active" || quests[0].PlotType != "main" {
		t.Errorf("unexpected quests: %+v, %v", quests, err)
	}

	results, err := db.Search(ctx, store.SearchQuery{CampaignID: campaignID, Query: "chapel"})
	if err != nil || len(results) != 1 {
		t.Errorf("imported notes should be searchable: %v, %v", results, err)
	}
}

func TestRun_Idempotent(t *testing.T) {
	ctx := context.Background()
	db, campaignID := newTestStore(t)
	dir := writeNotes(t, campaignNotes)

	if _, err := Run(ctx, db, campaignID, dir, Options{}); err != nil {
		t.Fatalf("first run: %v", err)
	}
	result, err := Run(ctx, db, campaignID, dir, Options{})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if result.Created != 0 || result.Existing != 6 {
		t.Errorf("second run created %d, found %d existing; want 0 and 6", result.Created, result.Existing)
	}
	chars, err := db.ListCharacters(ctx, campaignID)
	if err != nil || len(chars) != 2 {
		t.Errorf("expected 2 characters after re-import, got %d, %v", len(chars), err)
	}
}

func TestRun_ContinuesOnError(t *testing.T) {
	ctx := context.Background()
	db, campaignID := newTestStore(t)
	dir := writeNotes(t, map[string]string{
		"bad_type.md":   "---\nname: Bad Place\ntype: location\nlocation_type: moon\n---\n",
		"bad_yaml.md":   "---\nname: [\n---\n",
		"bad_parent.md": "---\nname: Lost Tower\ntype: location\nparent: Nowhere\n---\n",
		"good.md":       "---\nname: Rictavio\ntype: character\nis_alive: true\n---\n",
	})

	result, err := Run(ctx, db, campaignID, dir, Options{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Created != 2 {
		t.Errorf("expected 2 created, got %d", result.Created)
	}
	if len(result.Errors) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(result.Errors), result.Errors)
	}
	var validation int
	for _, err := range result.Errors {
		if errors.Is(err, store.ErrValidation) {
			validation++
		}
	}
	if validation != 1 {
		t.Errorf("expected one validation error, got %d", validation)
	}
}

func TestRun_DeadCharacter(t *testing.T) {
	ctx := context.Background()
	db, campaignID := newTestStore(t)
	dir := writeNotes(t, map[string]string{
		"leo.md": "---\nname: Leo Dilisnya\ntype: character\nis_alive: false\n---\n",
	})
	if _, err := Run(ctx, db, campaignID, dir, Options{}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	chars, err := db.ListCharacters(ctx, campaignID)
	if err != nil || len(chars) != 1 {
		t.Fatalf("unexpected characters %v, %v", chars, err)
	}
	if chars[0].IsAlive {
		t.Error("expected is_alive false from frontmatter")
	}
}

func TestRun_UnknownCampaign(t *testing.T) {
	db, _ := newTestStore(t)
	_, err := Run(context.Background(), db, "missing", t.TempDir(), Options{})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestWalkMarkdownFiles_Excludes(t *testing.T) {
	dir := writeNotes(t, map[string]string{
		"a.md":           "x",
		"drafts/b.md":    "x",
		".obsidian/c.md": "x",
		"sub/D.MD":       "x",
	})
	files, err := walkMarkdownFiles([]string{dir}, []string{filepath.Join(dir, "drafts")})
	if err != nil {
		t.Fatalf("walking: %v", err)
	}
	want := []string{filepath.Join(dir, "a.md"), filepath.Join(dir, "sub", "D.MD")}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("files = %v, want %v", files, want)
	}
}
