package mcp

import (
	"context"
	"strings"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"loreweaver/internal/store"
)

type SearchResultOutput struct {
	EntityType string  `json:"entity_type"`
	EntityID   string  `json:"entity_id"`
	Name       string  `json:"name"`
	Snippet    string  `json:"snippet"`
	Rank       float64 `json:"rank"`
}

type SearchEntitiesOutput struct {
	Results []SearchResultOutput `json:"results"`
}

type DeleteOutput struct {
	Deleted bool `json:"deleted"`
}

type TagChangeOutput struct {
	Changed bool `json:"changed"`
}

type CampaignsOutput struct {
	Campaigns []store.Campaign `json:"campaigns"`
}

type EntitiesOutput struct {
	EntityType string `json:"entity_type"`
	Entities   any    `json:"entities"`
}

type LocationsOutput struct {
	Locations []store.Location `json:"locations"`
}

type RelationshipsOutput struct {
	Relationships []store.Relationship `json:"relationships"`
}

type TagsOutput struct {
	Tags []store.Tag `json:"tags"`
}

// Record-returning tools declare their output as any. Records carry
// time.Time fields, which have no useful inferred schema.
func (s *Server) registerTools() {
	addTool(s, "search_entities", "Full-text search over a campaign's characters, locations, organizations, quests, heroes and sessions", s.handleSearchEntities)

	addTool(s, "list_campaigns", "List campaigns, most recently updated first", s.handleListCampaigns)
	addTool(s, "get_campaign", "Retrieve a campaign", s.handleGetCampaign)
	addTool(s, "create_campaign", "Create a campaign", s.handleCreateCampaign)

	addTool(s, "get_entity", "Retrieve any entity by kind and id", s.handleGetEntity)
	addTool(s, "list_entities", "List a campaign's entities of one kind", s.handleListEntities)
	addTool(s, "delete_entity", "Delete an entity by kind and id", s.handleDeleteEntity)

	addTool(s, "create_character", "Create a non-player character", s.handleCreateCharacter)
	addTool(s, "update_character", "Update a character; omitted fields are left unchanged", s.handleUpdateCharacter)

	addTool(s, "create_location", "Create a location, optionally inside another", s.handleCreateLocation)
	addTool(s, "update_location", "Update a location; omitted fields are left unchanged", s.handleUpdateLocation)
	addTool(s, "list_location_children", "List the locations directly inside a location", s.handleListLocationChildren)

	addTool(s, "create_organization", "Create an organization", s.handleCreateOrganization)
	addTool(s, "create_quest", "Create a quest", s.handleCreateQuest)
	addTool(s, "update_quest", "Update a quest; omitted fields are left unchanged", s.handleUpdateQuest)
	addTool(s, "create_hero", "Create a player character", s.handleCreateHero)
	addTool(s, "create_session", "Create a play session", s.handleCreateSession)

	addTool(s, "create_relationship", "Relate two entities", s.handleCreateRelationship)
	addTool(s, "get_entity_relationships", "List relationships where the entity is either end", s.handleGetEntityRelationships)

	addTool(s, "create_tag", "Create a tag", s.handleCreateTag)
	addTool(s, "tag_entity", "Attach a tag to an entity", s.handleTagEntity)
	addTool(s, "untag_entity", "Detach a tag from an entity", s.handleUntagEntity)
	addTool(s, "get_entity_tags", "List the tags attached to an entity", s.handleGetEntityTags)
}

func (s *Server) handleSearchEntities(ctx context.Context, req *sdk.CallToolRequest, input SearchEntitiesInput) (*sdk.CallToolResult, SearchEntitiesOutput, error) {
	kinds := make([]store.EntityKind, 0, len(input.EntityTypes))
	for _, t := range input.EntityTypes {
		kinds = append(kinds, kindOf(t))
	}
	results, err := s.db.Search(ctx, store.SearchQuery{
		CampaignID:  input.CampaignID,
		Query:       input.Query,
		EntityTypes: kinds,
		Limit:       input.Limit,
	})
	if err != nil {
		return nil, SearchEntitiesOutput{}, err
	}

	output := make([]SearchResultOutput, 0, len(results))
	for _, r := range results {
		output = append(output, SearchResultOutput{
			EntityType: string(r.EntityType),
			EntityID:   r.EntityID,
			Name:       r.Name,
			Snippet:    r.Snippet,
			Rank:       r.Rank,
		})
	}
	return nil, SearchEntitiesOutput{Results: output}, nil
}

func (s *Server) handleListCampaigns(ctx context.Context, req *sdk.CallToolRequest, input ListCampaignsInput) (*sdk.CallToolResult, any, error) {
	campaigns, err := s.db.ListCampaigns(ctx)
	if err != nil {
		return nil, nil, err
	}
	return nil, CampaignsOutput{Campaigns: campaigns}, nil
}

func (s *Server) handleGetCampaign(ctx context.Context, req *sdk.CallToolRequest, input GetCampaignInput) (*sdk.CallToolResult, any, error) {
	return record(s.db.GetCampaign(ctx, input.ID))
}

func (s *Server) handleCreateCampaign(ctx context.Context, req *sdk.CallToolRequest, input CreateCampaignInput) (*sdk.CallToolResult, any, error) {
	return record(s.db.CreateCampaign(ctx, store.CreateCampaignInput{
		Name:        input.Name,
		Description: input.Description,
		System:      input.System,
	}))
}

func (s *Server) handleGetEntity(ctx context.Context, req *sdk.CallToolRequest, input EntityRefInput) (*sdk.CallToolResult, any, error) {
	entity, err := store.GetEntity(ctx, s.db, refOf(input.EntityType, input.ID))
	if err != nil {
		return nil, nil, err
	}
	return nil, entity, nil
}

func (s *Server) handleListEntities(ctx context.Context, req *sdk.CallToolRequest, input ListEntitiesInput) (*sdk.CallToolResult, any, error) {
	kind := kindOf(input.EntityType)
	if kind.Valid() && kind != store.KindCampaign && strings.TrimSpace(input.CampaignID) == "" {
		return nil, nil, store.Validation("campaign_id is required")
	}
	entities, err := store.ListEntities(ctx, s.db, kind, input.CampaignID)
	if err != nil {
		return nil, nil, err
	}
	return nil, EntitiesOutput{EntityType: string(kind), Entities: entities}, nil
}

func (s *Server) handleDeleteEntity(ctx context.Context, req *sdk.CallToolRequest, input EntityRefInput) (*sdk.CallToolResult, DeleteOutput, error) {
	deleted, err := store.DeleteEntity(ctx, s.db, refOf(input.EntityType, input.ID))
	if err != nil {
		return nil, DeleteOutput{}, err
	}
	return nil, DeleteOutput{Deleted: deleted}, nil
}

func (s *Server) handleCreateCharacter(ctx context.Context, req *sdk.CallToolRequest, input CreateCharacterInput) (*sdk.CallToolResult, any, error) {
	return record(s.db.CreateCharacter(ctx, store.CreateCharacterInput{
		CampaignID:  input.CampaignID,
		Name:        input.Name,
		Lineage:     input.Lineage,
		Occupation:  input.Occupation,
		Description: input.Description,
		Personality: input.Personality,
		Motivations: input.Motivations,
		Secrets:     input.Secrets,
		VoiceNotes:  input.VoiceNotes,
	}))
}

func (s *Server) handleUpdateCharacter(ctx context.Context, req *sdk.CallToolRequest, input UpdateCharacterInput) (*sdk.CallToolResult, any, error) {
	return record(s.db.UpdateCharacter(ctx, input.ID, store.UpdateCharacterInput{
		Name:        input.Name,
		Lineage:     input.Lineage,
		Occupation:  input.Occupation,
		IsAlive:     input.IsAlive,
		Description: input.Description,
		Personality: input.Personality,
		Motivations: input.Motivations,
		Secrets:     input.Secrets,
		VoiceNotes:  input.VoiceNotes,
	}))
}

func (s *Server) handleCreateLocation(ctx context.Context, req *sdk.CallToolRequest, input CreateLocationInput) (*sdk.CallToolResult, any, error) {
	return record(s.db.CreateLocation(ctx, store.CreateLocationInput{
		CampaignID:   input.CampaignID,
		Name:         input.Name,
		LocationType: input.LocationType,
		ParentID:     input.ParentID,
		Description:  input.Description,
		GMNotes:      input.GMNotes,
	}))
}

func (s *Server) handleUpdateLocation(ctx context.Context, req *sdk.CallToolRequest, input UpdateLocationInput) (*sdk.CallToolResult, any, error) {
	return record(s.db.UpdateLocation(ctx, input.ID, store.UpdateLocationInput{
		Name:         input.Name,
		LocationType: input.LocationType,
		ParentID:     input.ParentID,
		Description:  input.Description,
		GMNotes:      input.GMNotes,
	}))
}

func (s *Server) handleListLocationChildren(ctx context.Context, req *sdk.CallToolRequest, input ListLocationChildrenInput) (*sdk.CallToolResult, any, error) {
	children, err := s.db.ListLocationChildren(ctx, input.ParentID)
	if err != nil {
		return nil, nil, err
	}
	return nil, LocationsOutput{Locations: children}, nil
}

func (s *Server) handleCreateOrganization(ctx context.Context, req *sdk.CallToolRequest, input CreateOrganizationInput) (*sdk.CallToolResult, any, error) {
	return record(s.db.CreateOrganization(ctx, store.CreateOrganizationInput{
		CampaignID:  input.CampaignID,
		Name:        input.Name,
		OrgType:     input.OrgType,
		Description: input.Description,
		Goals:       input.Goals,
		Resources:   input.Resources,
	}))
}

func (s *Server) handleCreateQuest(ctx context.Context, req *sdk.CallToolRequest, input CreateQuestInput) (*sdk.CallToolResult, any, error) {
	return record(s.db.CreateQuest(ctx, store.CreateQuestInput{
		CampaignID:  input.CampaignID,
		Name:        input.Name,
		Status:      input.Status,
		PlotType:    input.PlotType,
		Description: input.Description,
		Hook:        input.Hook,
		Objectives:  input.Objectives,
	}))
}

func (s *Server) handleUpdateQuest(ctx context.Context, req *sdk.CallToolRequest, input UpdateQuestInput) (*sdk.CallToolResult, any, error) {
	return record(s.db.UpdateQuest(ctx, input.ID, store.UpdateQuestInput{
		Name:          input.Name,
		Status:        input.Status,
		PlotType:      input.PlotType,
		Description:   input.Description,
		Hook:          input.Hook,
		Objectives:    input.Objectives,
		Complications: input.Complications,
		Resolution:    input.Resolution,
		Reward:        input.Reward,
	}))
}

func (s *Server) handleCreateHero(ctx context.Context, req *sdk.CallToolRequest, input CreateHeroInput) (*sdk.CallToolResult, any, error) {
	return record(s.db.CreateHero(ctx, store.CreateHeroInput{
		CampaignID:  input.CampaignID,
		PlayerID:    input.PlayerID,
		Name:        input.Name,
		Lineage:     input.Lineage,
		Classes:     input.Classes,
		Description: input.Description,
		Backstory:   input.Backstory,
	}))
}

func (s *Server) handleCreateSession(ctx context.Context, req *sdk.CallToolRequest, input CreateSessionInput) (*sdk.CallToolResult, any, error) {
	return record(s.db.CreateSession(ctx, store.CreateSessionInput{
		CampaignID:     input.CampaignID,
		SessionNumber:  input.SessionNumber,
		Title:          input.Title,
		Date:           input.Date,
		PlannedContent: input.PlannedContent,
	}))
}

func (s *Server) handleCreateRelationship(ctx context.Context, req *sdk.CallToolRequest, input CreateRelationshipInput) (*sdk.CallToolResult, any, error) {
	return record(s.db.CreateRelationship(ctx, store.CreateRelationshipInput{
		CampaignID:       input.CampaignID,
		Source:           refOf(input.SourceType, input.SourceID),
		Target:           refOf(input.TargetType, input.TargetID),
		RelationshipType: input.RelationshipType,
		Description:      input.Description,
		IsBidirectional:  input.IsBidirectional,
		Strength:         input.Strength,
		IsPublic:         input.IsPublic,
	}))
}

func (s *Server) handleGetEntityRelationships(ctx context.Context, req *sdk.CallToolRequest, input EntityRefInput) (*sdk.CallToolResult, any, error) {
	rels, err := s.db.ListEntityRelationships(ctx, refOf(input.EntityType, input.ID))
	if err != nil {
		return nil, nil, err
	}
	return nil, RelationshipsOutput{Relationships: rels}, nil
}

func (s *Server) handleCreateTag(ctx context.Context, req *sdk.CallToolRequest, input CreateTagInput) (*sdk.CallToolResult, any, error) {
	return record(s.db.CreateTag(ctx, store.CreateTagInput{
		CampaignID: input.CampaignID,
		Name:       input.Name,
		Color:      input.Color,
	}))
}

func (s *Server) handleTagEntity(ctx context.Context, req *sdk.CallToolRequest, input TagEntityInput) (*sdk.CallToolResult, TagChangeOutput, error) {
	changed, err := s.db.AddEntityTag(ctx, input.TagID, refOf(input.EntityType, input.EntityID))
	if err != nil {
		return nil, TagChangeOutput{}, err
	}
	return nil, TagChangeOutput{Changed: changed}, nil
}

func (s *Server) handleUntagEntity(ctx context.Context, req *sdk.CallToolRequest, input TagEntityInput) (*sdk.CallToolResult, TagChangeOutput, error) {
	changed, err := s.db.RemoveEntityTag(ctx, input.TagID, refOf(input.EntityType, input.EntityID))
	if err != nil {
		return nil, TagChangeOutput{}, err
	}
	return nil, TagChangeOutput{Changed: changed}, nil
}

func (s *Server) handleGetEntityTags(ctx context.Context, req *sdk.CallToolRequest, input EntityRefInput) (*sdk.CallToolResult, any, error) {
	tags, err := s.db.GetEntityTags(ctx, refOf(input.EntityType, input.ID))
	if err != nil {
		return nil, nil, err
	}
	return nil, TagsOutput{Tags: tags}, nil
}

// record adapts a store call returning one record to a tool result. The
// record is dropped on error so a typed nil never reaches the client.
func record[T any](v *T, err error) (*sdk.CallToolResult, any, error) {
	if err != nil {
		return nil, nil, err
	}
	return nil, v, nil
}

func kindOf(s string) store.EntityKind {
	return store.EntityKind(strings.ToLower(strings.TrimSpace(s)))
}

func refOf(kind, id string) store.EntityRef {
	return store.EntityRef{Type: kindOf(kind), ID: strings.TrimSpace(id)}
}
