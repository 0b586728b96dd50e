package ingest

import (
	"context"
	"strconv"

	"loreweaver/internal/parser"
	"loreweaver/internal/store"
)

// importers maps each importable kind to the code that lists existing
// names and creates one entity from a note.
var importers = map[store.EntityKind]importer{
	store.KindCharacter:    {names: characterNames, create: createCharacter},
	store.KindLocation:     {names: locationNames, create: createLocation},
	store.KindOrganization: {names: organizationNames, create: createOrganization},
	store.KindQuest:        {names: questNames, create: createQuest},
	store.KindHero:         {names: heroNames, create: createHero},
	store.KindPlayer:       {names: playerNames, create: createPlayer},
}

type importer struct {
	names  func(ctx context.Context, db Store, campaignID string) (map[string]string, error)
	create func(ctx context.Context, db Store, campaignID string, doc *parser.Document) (string, error)
}

func nameIndex[T any](items []T, name, id func(T) string) map[string]string {
	out := make(map[string]string, len(items))
	for _, item := range items {
		out[name(item)] = id(item)
	}
	return out
}

func characterNames(ctx context.Context, db Store, campaignID string) (map[string]string, error) {
	items, err := db.ListCharacters(ctx, campaignID)
	return nameIndex(items, func(c store.Character) string { return c.Name }, func(c store.Character) string { return c.ID }), err
}

func locationNames(ctx context.Context, db Store, campaignID string) (map[string]string, error) {
	items, err := db.ListLocations(ctx, campaignID)
	return nameIndex(items, func(l store.Location) string { return l.Name }, func(l store.Location) string { return l.ID }), err
}

func organizationNames(ctx context.Context, db Store, campaignID string) (map[string]string, error) {
	items, err := db.ListOrganizations(ctx, campaignID)
	return nameIndex(items, func(o store.Organization) string { return o.Name }, func(o store.Organization) string { return o.ID }), err
}

func questNames(ctx context.Context, db Store, campaignID string) (map[string]string, error) {
	items, err := db.ListQuests(ctx, campaignID)
	return nameIndex(items, func(q store.Quest) string { return q.Name }, func(q store.Quest) string { return q.ID }), err
}

func heroNames(ctx context.Context, db Store, campaignID string) (map[string]string, error) {
	items, err := db.ListHeroes(ctx, campaignID)
	return nameIndex(items, func(h store.Hero) string { return h.Name }, func(h store.Hero) string { return h.ID }), err
}

func playerNames(ctx context.Context, db Store, campaignID string) (map[string]string, error) {
	items, err := db.ListPlayers(ctx, campaignID)
	return nameIndex(items, func(p store.Player) string { return p.Name }, func(p store.Player) string { return p.ID }), err
}

func body(doc *parser.Document) *string {
	if doc.Body == "" {
		return nil
	}
	return &doc.Body
}

func plain(doc *parser.Document, key string) string {
	if v := doc.OptField(key); v != nil {
		return *v
	}
	return ""
}

func createCharacter(ctx context.Context, db Store, campaignID string, doc *parser.Document) (string, error) {
	var isAlive *bool
	if v := doc.OptField("is_alive"); v != nil {
		b, err := strconv.ParseBool(*v)
		if err != nil {
			return "", store.Validation("is_alive must be true or false")
		}
		isAlive = &b
	}
	c, err := db.CreateCharacter(ctx, store.CreateCharacterInput{
		CampaignID:  campaignID,
		Name:        doc.Name,
		Lineage:     doc.OptField("lineage"),
		Occupation:  doc.OptField("occupation"),
		Description: body(doc),
		Personality: doc.OptField("personality"),
		Motivations: doc.OptField("motivations"),
		Secrets:     doc.OptField("secrets"),
		VoiceNotes:  doc.OptField("voice_notes"),
	})
	if err != nil {
		return "", err
	}
	if isAlive != nil && !*isAlive {
		if _, err := db.UpdateCharacter(ctx, c.ID, store.UpdateCharacterInput{IsAlive: isAlive}); err != nil {
			return c.ID, err
		}
	}
	return c.ID, nil
}

func createLocation(ctx context.Context, db Store, campaignID string, doc *parser.Document) (string, error) {
	l, err := db.CreateLocation(ctx, store.CreateLocationInput{
		CampaignID:   campaignID,
		Name:         doc.Name,
		LocationType: plain(doc, "location_type"),
		Description:  body(doc),
		GMNotes:      doc.OptField("gm_notes"),
	})
	if err != nil {
		return "", err
	}
	return l.ID, nil
}

func createOrganization(ctx context.Context, db Store, campaignID string, doc *parser.Document) (string, error) {
	o, err := db.CreateOrganization(ctx, store.CreateOrganizationInput{
		CampaignID:  campaignID,
		Name:        doc.Name,
		OrgType:     plain(doc, "org_type"),
		Description: body(doc),
		Goals:       doc.OptField("goals"),
		Resources:   doc.OptField("resources"),
	})
	if err != nil {
		return "", err
	}
	return o.ID, nil
}

func createQuest(ctx context.Context, db Store, campaignID string, doc *parser.Document) (string, error) {
	q, err := db.CreateQuest(ctx, store.CreateQuestInput{
		CampaignID:  campaignID,
		Name:        doc.Name,
		Status:      plain(doc, "status"),
		PlotType:    plain(doc, "plot_type"),
		Description: body(doc),
		Hook:        doc.OptField("hook"),
		Objectives:  doc.OptField("objectives"),
	})
	if err != nil {
		return "", err
	}
	return q.ID, nil
}

func createHero(ctx context.Context, db Store, campaignID string, doc *parser.Document) (string, error) {
	h, err := db.CreateHero(ctx, store.CreateHeroInput{
		CampaignID:  campaignID,
		Name:        doc.Name,
		Lineage:     doc.OptField("lineage"),
		Classes:     doc.OptField("classes"),
		Description: body(doc),
		Backstory:   doc.OptField("backstory"),
	})
	if err != nil {
		return "", err
	}
	return h.ID, nil
}

func createPlayer(ctx context.Context, db Store, campaignID string, doc *parser.Document) (string, error) {
	p, err := db.CreatePlayer(ctx, store.CreatePlayerInput{
		CampaignID:  campaignID,
		Name:        doc.Name,
		Preferences: doc.OptField("preferences"),
		Boundaries:  doc.OptField("boundaries"),
		Notes:       body(doc),
	})
	if err != nil {
		return "", err
	}
	return p.ID, nil
}
