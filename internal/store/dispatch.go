package store

import (
	"context"
	"strings"
)

// GetEntity loads the record ref points at.
func GetEntity(ctx context.Context, s Store, ref EntityRef) (any, error) {
	if err := ValidateRef("entity", ref); err != nil {
		return nil, err
	}
	switch ref.Type {
	case KindCampaign:
		return s.GetCampaign(ctx, ref.ID)
	case KindPlayer:
		return s.GetPlayer(ctx, ref.ID)
	case KindLocation:
		return s.GetLocation(ctx, ref.ID)
	case KindCharacter:
		return s.GetCharacter(ctx, ref.ID)
	case KindOrganization:
		return s.GetOrganization(ctx, ref.ID)
	case KindQuest:
		return s.GetQuest(ctx, ref.ID)
	case KindHero:
		return s.GetHero(ctx, ref.ID)
	case KindSession:
		return s.GetSession(ctx, ref.ID)
	case KindTimelineEvent:
		return s.GetTimelineEvent(ctx, ref.ID)
	case KindSecret:
		return s.GetSecret(ctx, ref.ID)
	case KindTag:
		return s.GetTag(ctx, ref.ID)
	}
	return nil, Internal("no getter for %s", ref.Type)
}

// ListEntities lists a campaign's records of one kind. Campaigns ignore
// campaignID.
func ListEntities(ctx context.Context, s Store, kind EntityKind, campaignID string) (any, error) {
	switch kind {
	case KindCampaign:
		return s.ListCampaigns(ctx)
	case KindPlayer:
		return s.ListPlayers(ctx, campaignID)
	case KindLocation:
		return s.ListLocations(ctx, campaignID)
	case KindCharacter:
		return s.ListCharacters(ctx, campaignID)
	case KindOrganization:
		return s.ListOrganizations(ctx, campaignID)
	case KindQuest:
		return s.ListQuests(ctx, campaignID)
	case KindHero:
		return s.ListHeroes(ctx, campaignID)
	case KindSession:
		return s.ListSessions(ctx, campaignID)
	case KindTimelineEvent:
		return s.ListTimelineEvents(ctx, campaignID)
	case KindSecret:
		return s.ListSecrets(ctx, campaignID)
	case KindTag:
		return s.ListTags(ctx, campaignID)
	}
	return nil, Validation("entity_type must be one of: " + kindList())
}

// DeleteEntity removes the record ref points at and reports whether it
// existed.
func DeleteEntity(ctx context.Context, s Store, ref EntityRef) (bool, error) {
	if err := ValidateRef("entity", ref); err != nil {
		return false, err
	}
	switch ref.Type {
	case KindCampaign:
		return s.DeleteCampaign(ctx, ref.ID)
	case KindPlayer:
		return s.DeletePlayer(ctx, ref.ID)
	case KindLocation:
		return s.DeleteLocation(ctx, ref.ID)
	case KindCharacter:
		return s.DeleteCharacter(ctx, ref.ID)
	case KindOrganization:
		return s.DeleteOrganization(ctx, ref.ID)
	case KindQuest:
		return s.DeleteQuest(ctx, ref.ID)
	case KindHero:
		return s.DeleteHero(ctx, ref.ID)
	case KindSession:
		return s.DeleteSession(ctx, ref.ID)
	case KindTimelineEvent:
		return s.DeleteTimelineEvent(ctx, ref.ID)
	case KindSecret:
		return s.DeleteSecret(ctx, ref.ID)
	case KindTag:
		return s.DeleteTag(ctx, ref.ID)
	}
	return false, Internal("no delete for %s", ref.Type)
}

func kindList() string {
	kinds := Kinds()
	names := make([]string, len(kinds))
	for i, kind := range kinds {
		names[i] = string(kind)
	}
	return strings.Join(names, ", ")
}
