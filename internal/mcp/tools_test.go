package mcp

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"loreweaver/internal/store"
	"loreweaver/internal/store/sqlite"
)

func newTestServer(t *testing.T) (*Server, store.Store) {
	t.Helper()
	db, err := sqlite.Open(context.Background(), "sqlite://"+filepath.Join(t.TempDir(), "mcp.db"), sqlite.Options{Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { db.Close(context.Background()) })
	return NewServer(db, zerolog.Nop(), "test"), db
}

func createCampaign(t *testing.T, server *Server) *store.Campaign {
	t.Helper()
	_, out, err := server.handleCreateCampaign(context.Background(), nil, CreateCampaignInput{Name: "Barovia"})
	if err != nil {
		t.Fatalf("create campaign: %v", err)
	}
	return out.(*store.Campaign)
}

func ptr[T any](v T) *T { return &v }

func TestCreateAndGetCampaign(t *testing.T) {
	server, _ := newTestServer(t)
	campaign := createCampaign(t, server)

	_, out, err := server.handleGetCampaign(context.Background(), nil, GetCampaignInput{ID: campaign.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.(*store.Campaign); got.Name != "Barovia" {
		t.Fatalf("unexpected campaign: %+v", got)
	}

	_, out, err = server.handleListCampaigns(context.Background(), nil, ListCampaignsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if list := out.(CampaignsOutput); len(list.Campaigns) != 1 {
		t.Fatalf("expected one campaign, got %+v", list)
	}
}

func TestGetEntity_NotFound(t *testing.T) {
	server, _ := newTestServer(t)

	_, out, err := server.handleGetEntity(context.Background(), nil, EntityRefInput{EntityType: "character", ID: "missing"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err.Error() != "Not found: Character missing not found" {
		t.Errorf("unexpected display string %q", err.Error())
	}
	if out != nil {
		t.Errorf("expected no output on error, got %+v", out)
	}
}

func TestGetEntity_UnknownKind(t *testing.T) {
	server, _ := newTestServer(t)

	_, _, err := server.handleGetEntity(context.Background(), nil, EntityRefInput{EntityType: "dragon", ID: "x"})
	if !errors.Is(err, store.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCharacterLifecycle(t *testing.T) {
	ctx := context.Background()
	server, _ := newTestServer(t)
	campaign := createCampaign(t, server)

	_, out, err := server.handleCreateCharacter(ctx, nil, CreateCharacterInput{
		CampaignID:  campaign.ID,
		Name:        "Ireena Kolyana",
		Description: ptr("A noblewoman haunted by the devil Strahd"),
	})
	if err != nil {
		t.Fatalf("create character: %v", err)
	}
	character := out.(*store.Character)
	if !character.IsAlive {
		t.Error("expected new character to be alive")
	}

	_, out, err = server.handleUpdateCharacter(ctx, nil, UpdateCharacterInput{ID: character.ID, IsAlive: ptr(false)})
	if err != nil {
		t.Fatalf("update character: %v", err)
	}
	updated := out.(*store.Character)
	if updated.IsAlive || updated.Name != "Ireena Kolyana" {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	_, out, err = server.handleGetEntity(ctx, nil, EntityRefInput{EntityType: "Character", ID: character.ID})
	if err != nil {
		t.Fatalf("get entity: %v", err)
	}
	if got := out.(*store.Character); got.ID != character.ID {
		t.Fatalf("unexpected entity: %+v", got)
	}

	_, search, err := server.handleSearchEntities(ctx, nil, SearchEntitiesInput{CampaignID: campaign.ID, Query: "haunt"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(search.Results) != 1 || search.Results[0].EntityID != character.ID {
		t.Fatalf("unexpected search output: %+v", search)
	}
	if !strings.Contains(search.Results[0].Snippet, "<mark>") {
		t.Errorf("expected marked snippet, got %q", search.Results[0].Snippet)
	}

	_, deleted, err := server.handleDeleteEntity(ctx, nil, EntityRefInput{EntityType: "character", ID: character.ID})
	if err != nil || !deleted.Deleted {
		t.Fatalf("delete: %+v, %v", deleted, err)
	}
	_, deleted, err = server.handleDeleteEntity(ctx, nil, EntityRefInput{EntityType: "character", ID: character.ID})
	if err != nil || deleted.Deleted {
		t.Fatalf("second delete should report false: %+v, %v", deleted, err)
	}
}

func TestCreateCharacter_Validation(t *testing.T) {
	server, _ := newTestServer(t)
	campaign := createCampaign(t, server)

	_, _, err := server.handleCreateCharacter(context.Background(), nil, CreateCharacterInput{CampaignID: campaign.ID, Name: ""})
	if !errors.Is(err, store.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "Validation error: ") {
		t.Errorf("unexpected display string %q", err.Error())
	}
}

func TestLocationHierarchy(t *testing.T) {
	ctx := context.Background()
	server, _ := newTestServer(t)
	campaign := createCampaign(t, server)

	_, out, err := server.handleCreateLocation(ctx, nil, CreateLocationInput{CampaignID: campaign.ID, Name: "Vallaki"})
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}
	town := out.(*store.Location)
	_, out, err = server.handleCreateLocation(ctx, nil, CreateLocationInput{
		CampaignID:   campaign.ID,
		Name:         "Blue Water Inn",
		LocationType: "building",
		ParentID:     &town.ID,
	})
	if err != nil {
		t.Fatalf("create child: %v", err)
	}
	inn := out.(*store.Location)

	_, out, err = server.handleListLocationChildren(ctx, nil, ListLocationChildrenInput{ParentID: town.ID})
	if err != nil {
		t.Fatalf("list children: %v", err)
	}
	children := out.(LocationsOutput).Locations
	if len(children) != 1 || children[0].ID != inn.ID {
		t.Fatalf("unexpected children: %+v", children)
	}

	_, _, err = server.handleUpdateLocation(ctx, nil, UpdateLocationInput{ID: town.ID, ParentID: &inn.ID})
	if !errors.Is(err, store.ErrValidation) {
		t.Fatalf("expected cycle to be rejected, got %v", err)
	}
}

func TestListEntities(t *testing.T) {
	ctx := context.Background()
	server, _ := newTestServer(t)
	campaign := createCampaign(t, server)

	for _, name := range []string{"Zarovich Quest", "Amber Temple"} {
		if _, _, err := server.handleCreateQuest(ctx, nil, CreateQuestInput{CampaignID: campaign.ID, Name: name}); err != nil {
			t.Fatalf("create quest: %v", err)
		}
	}

	_, out, err := server.handleListEntities(ctx, nil, ListEntitiesInput{EntityType: "quest", CampaignID: campaign.ID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	quests := out.(EntitiesOutput).Entities.([]store.Quest)
	if len(quests) != 2 || quests[0].Name != "Amber Temple" {
		t.Fatalf("unexpected quests: %+v", quests)
	}
	if quests[0].Status != "planned" || quests[0].PlotType != "side" {
		t.Errorf("expected defaults, got %s/%s", quests[0].Status, quests[0].PlotType)
	}

	_, _, err = server.handleListEntities(ctx, nil, ListEntitiesInput{EntityType: "quest"})
	if !errors.Is(err, store.ErrValidation) {
		t.Fatalf("expected campaign_id to be required, got %v", err)
	}
	_, _, err = server.handleListEntities(ctx, nil, ListEntitiesInput{EntityType: "dragon", CampaignID: campaign.ID})
	if !errors.Is(err, store.ErrValidation) {
		t.Fatalf("expected unknown kind to be rejected, got %v", err)
	}
}

func TestRelationshipsAndTags(t *testing.T) {
	ctx := context.Background()
	server, _ := newTestServer(t)
	campaign := createCampaign(t, server)

	_, out, err := server.handleCreateOrganization(ctx, nil, CreateOrganizationInput{CampaignID: campaign.ID, Name: "Order of the Silver Dragon"})
	if err != nil {
		t.Fatalf("create organization: %v", err)
	}
	org := out.(*store.Organization)
	_, out, err = server.handleCreateHero(ctx, nil, CreateHeroInput{CampaignID: campaign.ID, Name: "Vladimir"})
	if err != nil {
		t.Fatalf("create hero: %v", err)
	}
	hero := out.(*store.Hero)

	_, out, err = server.handleCreateRelationship(ctx, nil, CreateRelationshipInput{
		CampaignID:       campaign.ID,
		SourceType:       "hero",
		SourceID:         hero.ID,
		TargetType:       "organization",
		TargetID:         org.ID,
		RelationshipType: "member_of",
	})
	if err != nil {
		t.Fatalf("create relationship: %v", err)
	}
	rel := out.(*store.Relationship)
	if rel.IsBidirectional || !rel.IsPublic {
		t.Errorf("unexpected relationship defaults: %+v", rel)
	}

	_, out, err = server.handleGetEntityRelationships(ctx, nil, EntityRefInput{EntityType: "organization", ID: org.ID})
	if err != nil {
		t.Fatalf("get relationships: %v", err)
	}
	if rels := out.(RelationshipsOutput).Relationships; len(rels) != 1 || rels[0].ID != rel.ID {
		t.Fatalf("unexpected relationships: %+v", rels)
	}

	_, out, err = server.handleCreateTag(ctx, nil, CreateTagInput{CampaignID: campaign.ID, Name: "faction"})
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}
	tag := out.(*store.Tag)

	for i := 0; i < 2; i++ {
		_, changed, err := server.handleTagEntity(ctx, nil, TagEntityInput{TagID: tag.ID, EntityType: "organization", EntityID: org.ID})
		if err != nil || !changed.Changed {
			t.Fatalf("tag entity attempt %d: %+v, %v", i, changed, err)
		}
	}
	_, out, err = server.handleGetEntityTags(ctx, nil, EntityRefInput{EntityType: "organization", ID: org.ID})
	if err != nil {
		t.Fatalf("get tags: %v", err)
	}
	if tags := out.(TagsOutput).Tags; len(tags) != 1 || tags[0].Name != "faction" {
		t.Fatalf("unexpected tags: %+v", tags)
	}

	_, changed, err := server.handleUntagEntity(ctx, nil, TagEntityInput{TagID: tag.ID, EntityType: "organization", EntityID: org.ID})
	if err != nil || !changed.Changed {
		t.Fatalf("untag: %+v, %v", changed, err)
	}
	_, changed, err = server.handleUntagEntity(ctx, nil, TagEntityInput{TagID: tag.ID, EntityType: "organization", EntityID: org.ID})
	if err != nil || changed.Changed {
		t.Fatalf("second untag should report false: %+v, %v", changed, err)
	}
}

func TestCreateSessionAndQuestUpdate(t *testing.T) {
	ctx := context.Background()
	server, _ := newTestServer(t)
	campaign := createCampaign(t, server)

	_, out, err := server.handleCreateSession(ctx, nil, CreateSessionInput{CampaignID: campaign.ID, SessionNumber: 1, Date: ptr("2024-03-09")})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if session := out.(*store.Session); session.SessionNumber != 1 {
		t.Fatalf("unexpected session: %+v", session)
	}
	_, _, err = server.handleCreateSession(ctx, nil, CreateSessionInput{CampaignID: campaign.ID, SessionNumber: 2, Date: ptr("March 9th")})
	if !errors.Is(err, store.ErrValidation) {
		t.Fatalf("expected bad date to be rejected, got %v", err)
	}

	_, out, err = server.handleCreateQuest(ctx, nil, CreateQuestInput{CampaignID: campaign.ID, Name: "The Lost Tome"})
	if err != nil {
		t.Fatalf("create quest: %v", err)
	}
	quest := out.(*store.Quest)
	_, out, err = server.handleUpdateQuest(ctx, nil, UpdateQuestInput{ID: quest.ID, Status: ptr("completed"), Reward: ptr("A spellbook")})
	if err != nil {
		t.Fatalf("update quest: %v", err)
	}
	if got := out.(*store.Quest); got.Status != "completed" || got.Reward == nil || *got.Reward != "A spellbook" {
		t.Fatalf("unexpected quest: %+v", got)
	}
	_, _, err = server.handleUpdateQuest(ctx, nil, UpdateQuestInput{ID: quest.ID, Status: ptr("won")})
	if !errors.Is(err, store.ErrValidation) {
		t.Fatalf("expected bad status to be rejected, got %v", err)
	}
}

func TestSearchEntities_EmptyQuery(t *testing.T) {
	server, _ := newTestServer(t)
	campaign := createCampaign(t, server)

	_, _, err := server.handleSearchEntities(context.Background(), nil, SearchEntitiesInput{CampaignID: campaign.ID, Query: "  "})
	if !errors.Is(err, store.ErrDatabase) {
		t.Fatalf("expected database error, got %v", err)
	}
}
