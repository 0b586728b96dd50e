package store

import (
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	LocationTypes = []string{"world", "continent", "region", "territory", "settlement", "district", "building", "room", "landmark", "wilderness"}
	OrgTypes      = []string{"government", "guild", "religion", "military", "criminal", "mercantile", "academic", "secret_society", "family", "other"}
	QuestStatuses = []string{"planned", "available", "active", "completed", "failed", "abandoned"}
	PlotTypes     = []string{"main", "secondary", "side", "background"}
	MessageRoles  = []string{"user", "assistant", "system", "tool", "proposal", "error"}
)

const (
	DefaultLocationType = "settlement"
	DefaultOrgType      = "other"
	DefaultQuestStatus  = "planned"
	DefaultPlotType     = "side"
	DefaultSignificance = "local"

	maxNameLen  = 200
	maxShortLen = 200
	maxTextLen  = 50000

	dateLayout = "2006-01-02"
)

type checker struct {
	violations []string
}

func (c *checker) add(format string, args ...any) {
	c.violations = append(c.violations, fmt.Sprintf(format, args...))
}

func (c *checker) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		c.add("%s is required", field)
	}
}

func (c *checker) name(field, value string) {
	if n := utf8.RuneCountInString(value); n < 1 || n > maxNameLen {
		c.add("%s must be 1-%d characters", field, maxNameLen)
	}
}

func (c *checker) optName(field string, value *string) {
	if value != nil {
		c.name(field, *value)
	}
}

func (c *checker) short(field string, value *string) {
	if value != nil && utf8.RuneCountInString(*value) > maxShortLen {
		c.add("%s too long (max %d chars)", field, maxShortLen)
	}
}

func (c *checker) text(field string, value *string) {
	if value != nil && utf8.RuneCountInString(*value) > maxTextLen {
		c.add("%s too long (max %d chars)", field, maxTextLen)
	}
}

func (c *checker) oneOf(field, value string, allowed []string) {
	if !slices.Contains(allowed, value) {
		c.add("%s must be one of: %s", field, strings.Join(allowed, ", "))
	}
}

func (c *checker) optOneOf(field string, value *string, allowed []string) {
	if value != nil {
		c.oneOf(field, *value, allowed)
	}
}

func (c *checker) date(field string, value *string) {
	if value == nil {
		return
	}
	if _, err := time.Parse(dateLayout, *value); err != nil {
		c.add("%s must be a date in YYYY-MM-DD format", field)
	}
}

func (c *checker) ref(field string, ref EntityRef) {
	if !ref.Type.Valid() {
		c.add("%s type %q is not a known entity kind", field, ref.Type)
	}
	if strings.TrimSpace(ref.ID) == "" {
		c.add("%s id is required", field)
	}
}

func (c *checker) err() error {
	if len(c.violations) == 0 {
		return nil
	}
	return Validation(c.violations...)
}

func (in CreateCampaignInput) Validate() error {
	var c checker
	c.name("name", in.Name)
	c.text("description", in.Description)
	c.short("system", in.System)
	return c.err()
}

func (in UpdateCampaignInput) Validate() error {
	var c checker
	c.optName("name", in.Name)
	c.text("description", in.Description)
	c.short("system", in.System)
	c.text("settings_json", in.SettingsJSON)
	return c.err()
}

func (in CreatePlayerInput) Validate() error {
	var c checker
	c.required("campaign_id", in.CampaignID)
	c.name("name", in.Name)
	c.text("preferences", in.Preferences)
	c.text("boundaries", in.Boundaries)
	c.text("notes", in.Notes)
	return c.err()
}

func (in UpdatePlayerInput) Validate() error {
	var c checker
	c.optName("name", in.Name)
	c.text("preferences", in.Preferences)
	c.text("boundaries", in.Boundaries)
	c.text("notes", in.Notes)
	return c.err()
}

func (in CreateLocationInput) Validate() error {
	var c checker
	c.required("campaign_id", in.CampaignID)
	c.name("name", in.Name)
	if in.LocationType != "" {
		c.oneOf("location_type", in.LocationType, LocationTypes)
	}
	c.text("description", in.Description)
	c.text("gm_notes", in.GMNotes)
	return c.err()
}

func (in UpdateLocationInput) Validate() error {
	var c checker
	c.optName("name", in.Name)
	c.optOneOf("location_type", in.LocationType, LocationTypes)
	c.text("description", in.Description)
	c.text("gm_notes", in.GMNotes)
	return c.err()
}

func (in CreateCharacterInput) Validate() error {
	var c checker
	c.required("campaign_id", in.CampaignID)
	c.name("name", in.Name)
	c.short("lineage", in.Lineage)
	c.short("occupation", in.Occupation)
	c.text("description", in.Description)
	c.text("personality", in.Personality)
	c.text("motivations", in.Motivations)
	c.text("secrets", in.Secrets)
	c.text("voice_notes", in.VoiceNotes)
	return c.err()
}

func (in UpdateCharacterInput) Validate() error {
	var c checker
	c.optName("name", in.Name)
	c.short("lineage", in.Lineage)
	c.short("occupation", in.Occupation)
	c.text("description", in.Description)
	c.text("personality", in.Personality)
	c.text("motivations", in.Motivations)
	c.text("secrets", in.Secrets)
	c.text("voice_notes", in.VoiceNotes)
	c.text("stat_block_json", in.StatBlockJSON)
	return c.err()
}

func (in CreateOrganizationInput) Validate() error {
	var c checker
	c.required("campaign_id", in.CampaignID)
	c.name("name", in.Name)
	if in.OrgType != "" {
		c.oneOf("org_type", in.OrgType, OrgTypes)
	}
	c.text("description", in.Description)
	c.text("goals", in.Goals)
	c.text("resources", in.Resources)
	return c.err()
}

func (in UpdateOrganizationInput) Validate() error {
	var c checker
	c.optName("name", in.Name)
	c.optOneOf("org_type", in.OrgType, OrgTypes)
	c.text("description", in.Description)
	c.text("goals", in.Goals)
	c.text("resources", in.Resources)
	c.text("reputation", in.Reputation)
	c.text("secrets", in.Secrets)
	return c.err()
}

func (in CreateQuestInput) Validate() error {
	var c checker
	c.required("campaign_id", in.CampaignID)
	c.name("name", in.Name)
	if in.Status != "" {
		c.oneOf("status", in.Status, QuestStatuses)
	}
	if in.PlotType != "" {
		c.oneOf("plot_type", in.PlotType, PlotTypes)
	}
	c.text("description", in.Description)
	c.text("hook", in.Hook)
	c.text("objectives", in.Objectives)
	return c.err()
}

func (in UpdateQuestInput) Validate() error {
	var c checker
	c.optName("name", in.Name)
	c.optOneOf("status", in.Status, QuestStatuses)
	c.optOneOf("plot_type", in.PlotType, PlotTypes)
	c.text("description", in.Description)
	c.text("hook", in.Hook)
	c.text("objectives", in.Objectives)
	c.text("complications", in.Complications)
	c.text("resolution", in.Resolution)
	c.text("reward", in.Reward)
	return c.err()
}

func (in CreateHeroInput) Validate() error {
	var c checker
	c.required("campaign_id", in.CampaignID)
	c.name("name", in.Name)
	c.short("lineage", in.Lineage)
	c.short("classes", in.Classes)
	c.text("description", in.Description)
	c.text("backstory", in.Backstory)
	return c.err()
}

func (in UpdateHeroInput) Validate() error {
	var c checker
	c.optName("name", in.Name)
	c.short("lineage", in.Lineage)
	c.short("classes", in.Classes)
	c.text("description", in.Description)
	c.text("backstory", in.Backstory)
	c.text("goals", in.Goals)
	c.text("bonds", in.Bonds)
	return c.err()
}

func (in CreateSessionInput) Validate() error {
	var c checker
	c.required("campaign_id", in.CampaignID)
	if in.SessionNumber < 1 {
		c.add("session_number must be at least 1")
	}
	c.optName("title", in.Title)
	c.date("date", in.Date)
	c.text("planned_content", in.PlannedContent)
	return c.err()
}

func (in UpdateSessionInput) Validate() error {
	var c checker
	if in.SessionNumber != nil && *in.SessionNumber < 1 {
		c.add("session_number must be at least 1")
	}
	c.optName("title", in.Title)
	c.date("date", in.Date)
	c.text("planned_content", in.PlannedContent)
	c.text("notes", in.Notes)
	c.text("summary", in.Summary)
	c.text("highlights", in.Highlights)
	return c.err()
}

func (in CreateTimelineEventInput) Validate() error {
	var c checker
	c.required("campaign_id", in.CampaignID)
	c.name("title", in.Title)
	c.required("date_display", in.DateDisplay)
	c.text("description", in.Description)
	return c.err()
}

func (in UpdateTimelineEventInput) Validate() error {
	var c checker
	c.optName("title", in.Title)
	if in.DateDisplay != nil {
		c.required("date_display", *in.DateDisplay)
	}
	c.text("description", in.Description)
	return c.err()
}

func (in CreateSecretInput) Validate() error {
	var c checker
	c.required("campaign_id", in.CampaignID)
	c.name("title", in.Title)
	c.required("content", in.Content)
	c.text("content", &in.Content)
	if in.RelatedEntity != nil {
		c.ref("related_entity", *in.RelatedEntity)
	}
	c.text("known_by", in.KnownBy)
	return c.err()
}

func (in UpdateSecretInput) Validate() error {
	var c checker
	c.optName("title", in.Title)
	if in.Content != nil {
		c.required("content", *in.Content)
	}
	c.text("content", in.Content)
	if in.RelatedEntity != nil {
		c.ref("related_entity", *in.RelatedEntity)
	}
	c.text("known_by", in.KnownBy)
	return c.err()
}

func (in CreateTagInput) Validate() error {
	var c checker
	c.required("campaign_id", in.CampaignID)
	c.name("name", in.Name)
	c.short("color", in.Color)
	return c.err()
}

func (in UpdateTagInput) Validate() error {
	var c checker
	c.optName("name", in.Name)
	c.short("color", in.Color)
	return c.err()
}

func (in CreateRelationshipInput) Validate() error {
	var c checker
	c.required("campaign_id", in.CampaignID)
	c.ref("source", in.Source)
	c.ref("target", in.Target)
	c.name("relationship_type", in.RelationshipType)
	c.text("description", in.Description)
	return c.err()
}

func (in UpdateRelationshipInput) Validate() error {
	var c checker
	c.optName("relationship_type", in.RelationshipType)
	c.text("description", in.Description)
	return c.err()
}

func (in AddMessageInput) Validate() error {
	var c checker
	c.required("conversation_id", in.ConversationID)
	c.oneOf("role", in.Role, MessageRoles)
	return c.err()
}

// ValidateRef checks an untyped entity reference supplied at the boundary.
func ValidateRef(field string, ref EntityRef) error {
	var c checker
	c.ref(field, ref)
	return c.err()
}

func (q SearchQuery) Validate() error {
	var c checker
	c.required("campaign_id", q.CampaignID)
	if q.Limit < 0 {
		c.add("limit must not be negative")
	}
	for _, kind := range q.EntityTypes {
		if !kind.Indexed() {
			c.add("entity_types: %q is not a searchable kind", kind)
		}
	}
	return c.err()
}

// EffectiveLimit applies the default limit.
func (q SearchQuery) EffectiveLimit() int {
	if q.Limit == 0 {
		return DefaultSearchLimit
	}
	return q.Limit
}

func ValidateContextType(contextType string) error {
	var c checker
	c.required("context_type", contextType)
	return c.err()
}
