package store

import (
	"fmt"
	"sort"
	"strings"
)

// EntityKind is the discriminator stored in the entity_type columns of
// relationships, entity_tags, secrets and the search index.
type EntityKind string

const (
	KindCampaign      EntityKind = "campaign"
	KindPlayer        EntityKind = "player"
	KindLocation      EntityKind = "location"
	KindCharacter     EntityKind = "character"
	KindOrganization  EntityKind = "organization"
	KindQuest         EntityKind = "quest"
	KindHero          EntityKind = "hero"
	KindSession       EntityKind = "session"
	KindTimelineEvent EntityKind = "timeline_event"
	KindSecret        EntityKind = "secret"
	KindTag           EntityKind = "tag"
)

var kindTables = map[EntityKind]string{
	KindCampaign:      "campaigns",
	KindPlayer:        "players",
	KindLocation:      "locations",
	KindCharacter:     "characters",
	KindOrganization:  "organizations",
	KindQuest:         "quests",
	KindHero:          "heroes",
	KindSession:       "sessions",
	KindTimelineEvent: "timeline_events",
	KindSecret:        "secrets",
	KindTag:           "tags",
}

// Kinds returns every entity kind in a stable order.
func Kinds() []EntityKind {
	kinds := make([]EntityKind, 0, len(kindTables))
	for kind := range kindTables {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func ParseKind(s string) (EntityKind, error) {
	kind := EntityKind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := kindTables[kind]; !ok {
		return "", fmt.Errorf("unknown entity kind %q", s)
	}
	return kind, nil
}

func (k EntityKind) Valid() bool {
	_, ok := kindTables[k]
	return ok
}

// Table is the source table for the kind, or "" for an unknown kind.
func (k EntityKind) Table() string {
	return kindTables[k]
}

// Label is the capitalised name used in NotFound messages.
func (k EntityKind) Label() string {
	switch k {
	case KindTimelineEvent:
		return "TimelineEvent"
	case "":
		return "Entity"
	}
	s := string(k)
	return strings.ToUpper(s[:1]) + s[1:]
}

// EntityRef is an untyped (entity_type, entity_id) pointer.
type EntityRef struct {
	Type EntityKind `json:"entity_type"`
	ID   string     `json:"entity_id"`
}

func (r EntityRef) String() string {
	return string(r.Type) + ":" + r.ID
}

// Projection describes how a source row becomes a search index entry.
type Projection struct {
	Kind           EntityKind
	Table          string
	NameExpr       string
	ContentColumns []string
}

// Projections lists the indexed kinds. The sqlite triggers encode the same
// rules; VerifyIndex compares the two.
var Projections = []Projection{
	{Kind: KindCharacter, Table: "characters", NameExpr: "name", ContentColumns: []string{"description", "personality", "motivations"}},
	{Kind: KindLocation, Table: "locations", NameExpr: "name", ContentColumns: []string{"description"}},
	{Kind: KindOrganization, Table: "organizations", NameExpr: "name", ContentColumns: []string{"description", "goals"}},
	{Kind: KindQuest, Table: "quests", NameExpr: "name", ContentColumns: []string{"description", "hook", "objectives"}},
	{Kind: KindHero, Table: "heroes", NameExpr: "name", ContentColumns: []string{"description", "backstory"}},
	{Kind: KindSession, Table: "sessions", NameExpr: "COALESCE(title, 'Session ' || session_number)", ContentColumns: []string{"notes", "summary"}},
}

// ProjectionFor returns the projection of an indexed kind.
func ProjectionFor(kind EntityKind) (Projection, bool) {
	for _, p := range Projections {
		if p.Kind == kind {
			return p, true
		}
	}
	return Projection{}, false
}

func (k EntityKind) Indexed() bool {
	_, ok := ProjectionFor(k)
	return ok
}

// ContentExpr renders the content concatenation as SQL over the source
// table. Missing fields contribute an empty string, so separators remain.
func (p Projection) ContentExpr() string {
	parts := make([]string, len(p.ContentColumns))
	for i, col := range p.ContentColumns {
		parts[i] = "COALESCE(" + col + ", '')"
	}
	return strings.Join(parts, " || ' ' || ")
}

// Content applies the projection to already loaded field values.
func (p Projection) Content(fields map[string]*string) string {
	parts := make([]string, len(p.ContentColumns))
	for i, col := range p.ContentColumns {
		if v := fields[col]; v != nil {
			parts[i] = *v
		}
	}
	return strings.Join(parts, " ")
}
