package store

import (
	"context"
)

type Store interface {
	Close(ctx context.Context) error

	CreateCampaign(ctx context.Context, in CreateCampaignInput) (*Campaign, error)
	GetCampaign(ctx context.Context, id string) (*Campaign, error)
	ListCampaigns(ctx context.Context) ([]Campaign, error)
	UpdateCampaign(ctx context.Context, id string, in UpdateCampaignInput) (*Campaign, error)
	DeleteCampaign(ctx context.Context, id string) (bool, error)

	CreatePlayer(ctx context.Context, in CreatePlayerInput) (*Player, error)
	GetPlayer(ctx context.Context, id string) (*Player, error)
	ListPlayers(ctx context.Context, campaignID string) ([]Player, error)
	UpdatePlayer(ctx context.Context, id string, in UpdatePlayerInput) (*Player, error)
	DeletePlayer(ctx context.Context, id string) (bool, error)

	CreateLocation(ctx context.Context, in CreateLocationInput) (*Location, error)
	GetLocation(ctx context.Context, id string) (*Location, error)
	ListLocations(ctx context.Context, campaignID string) ([]Location, error)
	ListLocationChildren(ctx context.Context, parentID string) ([]Location, error)
	UpdateLocation(ctx context.Context, id string, in UpdateLocationInput) (*Location, error)
	DeleteLocation(ctx context.Context, id string) (bool, error)

	CreateCharacter(ctx context.Context, in CreateCharacterInput) (*Character, error)
	GetCharacter(ctx context.Context, id string) (*Character, error)
	ListCharacters(ctx context.Context, campaignID string) ([]Character, error)
	UpdateCharacter(ctx context.Context, id string, in UpdateCharacterInput) (*Character, error)
	DeleteCharacter(ctx context.Context, id string) (bool, error)

	CreateOrganization(ctx context.Context, in CreateOrganizationInput) (*Organization, error)
	GetOrganization(ctx context.Context, id string) (*Organization, error)
	ListOrganizations(ctx context.Context, campaignID string) ([]Organization, error)
	UpdateOrganization(ctx context.Context, id string, in UpdateOrganizationInput) (*Organization, error)
	DeleteOrganization(ctx context.Context, id string) (bool, error)

	CreateQuest(ctx context.Context, in CreateQuestInput) (*Quest, error)
	GetQuest(ctx context.Context, id string) (*Quest, error)
	ListQuests(ctx context.Context, campaignID string) ([]Quest, error)
	UpdateQuest(ctx context.Context, id string, in UpdateQuestInput) (*Quest, error)
	DeleteQuest(ctx context.Context, id string) (bool, error)

	CreateHero(ctx context.Context, in CreateHeroInput) (*Hero, error)
	GetHero(ctx context.Context, id string) (*Hero, error)
	ListHeroes(ctx context.Context, campaignID string) ([]Hero, error)
	UpdateHero(ctx context.Context, id string, in UpdateHeroInput) (*Hero, error)
	DeleteHero(ctx context.Context, id string) (bool, error)

	CreateSession(ctx context.Context, in CreateSessionInput) (*Session, error)
	GetSession(ctx context.Context, id string) (*Session, error)
	ListSessions(ctx context.Context, campaignID string) ([]Session, error)
	UpdateSession(ctx context.Context, id string, in UpdateSessionInput) (*Session, error)
	DeleteSession(ctx context.Context, id string) (bool, error)

	CreateTimelineEvent(ctx context.Context, in CreateTimelineEventInput) (*TimelineEvent, error)
	GetTimelineEvent(ctx context.Context, id string) (*TimelineEvent, error)
	ListTimelineEvents(ctx context.Context, campaignID string) ([]TimelineEvent, error)
	UpdateTimelineEvent(ctx context.Context, id string, in UpdateTimelineEventInput) (*TimelineEvent, error)
	DeleteTimelineEvent(ctx context.Context, id string) (bool, error)

	CreateSecret(ctx context.Context, in CreateSecretInput) (*Secret, error)
	GetSecret(ctx context.Context, id string) (*Secret, error)
	ListSecrets(ctx context.Context, campaignID string) ([]Secret, error)
	UpdateSecret(ctx context.Context, id string, in UpdateSecretInput) (*Secret, error)
	DeleteSecret(ctx context.Context, id string) (bool, error)

	CreateTag(ctx context.Context, in CreateTagInput) (*Tag, error)
	GetTag(ctx context.Context, id string) (*Tag, error)
	ListTags(ctx context.Context, campaignID string) ([]Tag, error)
	UpdateTag(ctx context.Context, id string, in UpdateTagInput) (*Tag, error)
	DeleteTag(ctx context.Context, id string) (bool, error)

	AddEntityTag(ctx context.Context, tagID string, ref EntityRef) (bool, error)
	RemoveEntityTag(ctx context.Context, tagID string, ref EntityRef) (bool, error)
	GetEntityTags(ctx context.Context, ref EntityRef) ([]Tag, error)
	ListTaggedEntities(ctx context.Context, tagID string) ([]EntityRef, error)

	CreateRelationship(ctx context.Context, in CreateRelationshipInput) (*Relationship, error)
	GetRelationship(ctx context.Context, id string) (*Relationship, error)
	ListRelationships(ctx context.Context, campaignID string) ([]Relationship, error)
	ListEntityRelationships(ctx context.Context, ref EntityRef) ([]Relationship, error)
	UpdateRelationship(ctx context.Context, id string, in UpdateRelationshipInput) (*Relationship, error)
	DeleteRelationship(ctx context.Context, id string) (bool, error)

	GetOrCreateConversation(ctx context.Context, campaignID, contextType string) (*AiConversation, error)
	LoadConversation(ctx context.Context, campaignID, contextType string) (*ConversationWithMessages, error)
	ListConversations(ctx context.Context) ([]AiConversation, error)
	ListMessages(ctx context.Context, conversationID string) ([]AiMessage, error)
	AddMessage(ctx context.Context, in AddMessageInput) (*AiMessage, error)
	UpdateTokenCounts(ctx context.Context, conversationID string, usage TokenUsage) (*AiConversation, error)
	ClearConversation(ctx context.Context, conversationID string) (bool, error)

	Search(ctx context.Context, q SearchQuery) ([]SearchResult, error)

	VerifyIndex(ctx context.Context) ([]IndexDrift, error)
	RebuildIndex(ctx context.Context) (int64, error)
	DanglingReferences(ctx context.Context) ([]DanglingReference, error)
}
