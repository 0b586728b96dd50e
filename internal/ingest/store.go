package ingest

import (
	"context"

	"loreweaver/internal/store"
)

// Store is the part of store.Store an import needs.
type Store interface {
	GetCampaign(ctx context.Context, id string) (*store.Campaign, error)

	ListCharacters(ctx context.Context, campaignID string) ([]store.Character, error)
	ListLocations(ctx context.Context, campaignID string) ([]store.Location, error)
	ListOrganizations(ctx context.Context, campaignID string) ([]store.Organization, error)
	ListQuests(ctx context.Context, campaignID string) ([]store.Quest, error)
	ListHeroes(ctx context.Context, campaignID string) ([]store.Hero, error)
	ListPlayers(ctx context.Context, campaignID string) ([]store.Player, error)

	CreateCharacter(ctx context.Context, in store.CreateCharacterInput) (*store.Character, error)
	UpdateCharacter(ctx context.Context, id string, in store.UpdateCharacterInput) (*store.Character, error)
	CreateLocation(ctx context.Context, in store.CreateLocationInput) (*store.Location, error)
	UpdateLocation(ctx context.Context, id string, in store.UpdateLocationInput) (*store.Location, error)
	CreateOrganization(ctx context.Context, in store.CreateOrganizationInput) (*store.Organization, error)
	CreateQuest(ctx context.Context, in store.CreateQuestInput) (*store.Quest, error)
	CreateHero(ctx context.Context, in store.CreateHeroInput) (*store.Hero, error)
	CreatePlayer(ctx context.Context, in store.CreatePlayerInput) (*store.Player, error)

	ListTags(ctx context.Context, campaignID string) ([]store.Tag, error)
	CreateTag(ctx context.Context, in store.CreateTagInput) (*store.Tag, error)
	AddEntityTag(ctx context.Context, tagID string, ref store.EntityRef) (bool, error)
}
