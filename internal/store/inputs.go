package store

// Update inputs use nil to mean "leave the stored value alone".

type CreateCampaignInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	System      *string `json:"system,omitempty"`
}

type UpdateCampaignInput struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	System       *string `json:"system,omitempty"`
	SettingsJSON *string `json:"settings_json,omitempty"`
}

type CreatePlayerInput struct {
	CampaignID  string  `json:"campaign_id"`
	Name        string  `json:"name"`
	Preferences *string `json:"preferences,omitempty"`
	Boundaries  *string `json:"boundaries,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

type UpdatePlayerInput struct {
	Name        *string `json:"name,omitempty"`
	Preferences *string `json:"preferences,omitempty"`
	Boundaries  *string `json:"boundaries,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

type CreateLocationInput struct {
	CampaignID   string  `json:"campaign_id"`
	Name         string  `json:"name"`
	LocationType string  `json:"location_type,omitempty"`
	ParentID     *string `json:"parent_id,omitempty"`
	Description  *string `json:"description,omitempty"`
	GMNotes      *string `json:"gm_notes,omitempty"`
}

type UpdateLocationInput struct {
	Name         *string `json:"name,omitempty"`
	LocationType *string `json:"location_type,omitempty"`
	ParentID     *string `json:"parent_id,omitempty"`
	Description  *string `json:"description,omitempty"`
	GMNotes      *string `json:"gm_notes,omitempty"`
}

type CreateCharacterInput struct {
	CampaignID  string  `json:"campaign_id"`
	Name        string  `json:"name"`
	Lineage     *string `json:"lineage,omitempty"`
	Occupation  *string `json:"occupation,omitempty"`
	Description *string `json:"description,omitempty"`
	Personality *string `json:"personality,omitempty"`
	Motivations *string `json:"motivations,omitempty"`
	Secrets     *string `json:"secrets,omitempty"`
	VoiceNotes  *string `json:"voice_notes,omitempty"`
}

type UpdateCharacterInput struct {
	Name          *string `json:"name,omitempty"`
	Lineage       *string `json:"lineage,omitempty"`
	Occupation    *string `json:"occupation,omitempty"`
	IsAlive       *bool   `json:"is_alive,omitempty"`
	Description   *string `json:"description,omitempty"`
	Personality   *string `json:"personality,omitempty"`
	Motivations   *string `json:"motivations,omitempty"`
	Secrets       *string `json:"secrets,omitempty"`
	VoiceNotes    *string `json:"voice_notes,omitempty"`
	StatBlockJSON *string `json:"stat_block_json,omitempty"`
}

type CreateOrganizationInput struct {
	CampaignID  string  `json:"campaign_id"`
	Name        string  `json:"name"`
	OrgType     string  `json:"org_type,omitempty"`
	Description *string `json:"description,omitempty"`
	Goals       *string `json:"goals,omitempty"`
	Resources   *string `json:"resources,omitempty"`
}

type UpdateOrganizationInput struct {
	Name        *string `json:"name,omitempty"`
	OrgType     *string `json:"org_type,omitempty"`
	Description *string `json:"description,omitempty"`
	Goals       *string `json:"goals,omitempty"`
	Resources   *string `json:"resources,omitempty"`
	Reputation  *string `json:"reputation,omitempty"`
	Secrets     *string `json:"secrets,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type CreateQuestInput struct {
	CampaignID  string  `json:"campaign_id"`
	Name        string  `json:"name"`
	Status      string  `json:"status,omitempty"`
	PlotType    string  `json:"plot_type,omitempty"`
	Description *string `json:"description,omitempty"`
	Hook        *string `json:"hook,omitempty"`
	Objectives  *string `json:"objectives,omitempty"`
}

type UpdateQuestInput struct {
	Name          *string `json:"name,omitempty"`
	Status        *string `json:"status,omitempty"`
	PlotType      *string `json:"plot_type,omitempty"`
	Description   *string `json:"description,omitempty"`
	Hook          *string `json:"hook,omitempty"`
	Objectives    *string `json:"objectives,omitempty"`
	Complications *string `json:"complications,omitempty"`
	Resolution    *string `json:"resolution,omitempty"`
	Reward        *string `json:"reward,omitempty"`
}

type CreateHeroInput struct {
	CampaignID  string  `json:"campaign_id"`
	PlayerID    *string `json:"player_id,omitempty"`
	Name        string  `json:"name"`
	Lineage     *string `json:"lineage,omitempty"`
	Classes     *string `json:"classes,omitempty"`
	Description *string `json:"description,omitempty"`
	Backstory   *string `json:"backstory,omitempty"`
}

type UpdateHeroInput struct {
	PlayerID    *string `json:"player_id,omitempty"`
	Name        *string `json:"name,omitempty"`
	Lineage     *string `json:"lineage,omitempty"`
	Classes     *string `json:"classes,omitempty"`
	Description *string `json:"description,omitempty"`
	Backstory   *string `json:"backstory,omitempty"`
	Goals       *string `json:"goals,omitempty"`
	Bonds       *string `json:"bonds,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type CreateSessionInput struct {
	CampaignID     string  `json:"campaign_id"`
	SessionNumber  int     `json:"session_number"`
	Title          *string `json:"title,omitempty"`
	Date           *string `json:"date,omitempty"`
	PlannedContent *string `json:"planned_content,omitempty"`
}

type UpdateSessionInput struct {
	SessionNumber  *int    `json:"session_number,omitempty"`
	Title          *string `json:"title,omitempty"`
	Date           *string `json:"date,omitempty"`
	PlannedContent *string `json:"planned_content,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	Summary        *string `json:"summary,omitempty"`
	Highlights     *string `json:"highlights,omitempty"`
}

type CreateTimelineEventInput struct {
	CampaignID   string  `json:"campaign_id"`
	Title        string  `json:"title"`
	DateDisplay  string  `json:"date_display"`
	SortOrder    *int64  `json:"sort_order,omitempty"`
	Description  *string `json:"description,omitempty"`
	Significance string  `json:"significance,omitempty"`
	IsPublic     *bool   `json:"is_public,omitempty"`
}

type UpdateTimelineEventInput struct {
	Title        *string `json:"title,omitempty"`
	DateDisplay  *string `json:"date_display,omitempty"`
	SortOrder    *int64  `json:"sort_order,omitempty"`
	Description  *string `json:"description,omitempty"`
	Significance *string `json:"significance,omitempty"`
	IsPublic     *bool   `json:"is_public,omitempty"`
}

type CreateSecretInput struct {
	CampaignID    string     `json:"campaign_id"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	RelatedEntity *EntityRef `json:"related_entity,omitempty"`
	KnownBy       *string    `json:"known_by,omitempty"`
}

type UpdateSecretInput struct {
	Title             *string    `json:"title,omitempty"`
	Content           *string    `json:"content,omitempty"`
	RelatedEntity     *EntityRef `json:"related_entity,omitempty"`
	KnownBy           *string    `json:"known_by,omitempty"`
	Revealed          *bool      `json:"revealed,omitempty"`
	RevealedInSession *int       `json:"revealed_in_session,omitempty"`
}

type CreateTagInput struct {
	CampaignID string  `json:"campaign_id"`
	Name       string  `json:"name"`
	Color      *string `json:"color,omitempty"`
}

type UpdateTagInput struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

type CreateRelationshipInput struct {
	CampaignID       string    `json:"campaign_id"`
	Source           EntityRef `json:"source"`
	Target           EntityRef `json:"target"`
	RelationshipType string    `json:"relationship_type"`
	Description      *string   `json:"description,omitempty"`
	IsBidirectional  *bool     `json:"is_bidirectional,omitempty"`
	Strength         *int      `json:"strength,omitempty"`
	IsPublic         *bool     `json:"is_public,omitempty"`
}

type UpdateRelationshipInput struct {
	RelationshipType *string `json:"relationship_type,omitempty"`
	Description      *string `json:"description,omitempty"`
	IsBidirectional  *bool   `json:"is_bidirectional,omitempty"`
	Strength         *int    `json:"strength,omitempty"`
	IsPublic         *bool   `json:"is_public,omitempty"`
}

type AddMessageInput struct {
	ConversationID string  `json:"conversation_id"`
	Role           string  `json:"role"`
	Content        string  `json:"content"`
	ToolName       *string `json:"tool_name,omitempty"`
	ToolInputJSON  *string `json:"tool_input_json,omitempty"`
	ToolDataJSON   *string `json:"tool_data_json,omitempty"`
	ProposalJSON   *string `json:"proposal_json,omitempty"`
}

// SearchQuery scopes a full-text search to one campaign. A zero Limit means
// DefaultSearchLimit; EntityTypes narrows results to the listed kinds.
type SearchQuery struct {
	CampaignID  string
	Query       string
	EntityTypes []EntityKind
	Limit       int
}

const DefaultSearchLimit = 50
