package store

import "time"

type Campaign struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	System       *string   `json:"system"`
	SettingsJSON *string   `json:"settings_json"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Player struct {
	ID          string    `json:"id"`
	CampaignID  string    `json:"campaign_id"`
	Name        string    `json:"name"`
	Preferences *string   `json:"preferences"`
	Boundaries  *string   `json:"boundaries"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Location struct {
	ID           string    `json:"id"`
	CampaignID   string    `json:"campaign_id"`
	ParentID     *string   `json:"parent_id"`
	Name         string    `json:"name"`
	LocationType string    `json:"location_type"`
	Description  *string   `json:"description"`
	GMNotes      *string   `json:"gm_notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Character struct {
	ID            string    `json:"id"`
	CampaignID    string    `json:"campaign_id"`
	Name          string    `json:"name"`
	Lineage       *string   `json:"lineage"`
	Occupation    *string   `json:"occupation"`
	IsAlive       bool      `json:"is_alive"`
	Description   *string   `json:"description"`
	Personality   *string   `json:"personality"`
	Motivations   *string   `json:"motivations"`
	Secrets       *string   `json:"secrets"`
	VoiceNotes    *string   `json:"voice_notes"`
	StatBlockJSON *string   `json:"stat_block_json"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Organization struct {
	ID          string    `json:"id"`
	CampaignID  string    `json:"campaign_id"`
	Name        string    `json:"name"`
	OrgType     string    `json:"org_type"`
	Description *string   `json:"description"`
	Goals       *string   `json:"goals"`
	Resources   *string   `json:"resources"`
	Reputation  *string   `json:"reputation"`
	Secrets     *string   `json:"secrets"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Quest struct {
	ID            string    `json:"id"`
	CampaignID    string    `json:"campaign_id"`
	Name          string    `json:"name"`
	Status        string    `json:"status"`
	PlotType      string    `json:"plot_type"`
	Description   *string   `json:"description"`
	Hook          *string   `json:"hook"`
	Objectives    *string   `json:"objectives"`
	Complications *string   `json:"complications"`
	Resolution    *string   `json:"resolution"`
	Reward        *string   `json:"reward"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Hero struct {
	ID          string    `json:"id"`
	CampaignID  string    `json:"campaign_id"`
	PlayerID    *string   `json:"player_id"`
	Name        string    `json:"name"`
	Lineage     *string   `json:"lineage"`
	Classes     *string   `json:"classes"`
	Description *string   `json:"description"`
	Backstory   *string   `json:"backstory"`
	Goals       *string   `json:"goals"`
	Bonds       *string   `json:"bonds"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Session struct {
	ID             string    `json:"id"`
	CampaignID     string    `json:"campaign_id"`
	SessionNumber  int       `json:"session_number"`
	Date           *string   `json:"date"`
	Title          *string   `json:"title"`
	PlannedContent *string   `json:"planned_content"`
	Notes          *string   `json:"notes"`
	Summary        *string   `json:"summary"`
	Highlights     *string   `json:"highlights"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type TimelineEvent struct {
	ID           string    `json:"id"`
	CampaignID   string    `json:"campaign_id"`
	DateDisplay  string    `json:"date_display"`
	SortOrder    int64     `json:"sort_order"`
	Title        string    `json:"title"`
	Description  *string   `json:"description"`
	Significance string    `json:"significance"`
	IsPublic     bool      `json:"is_public"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Secret struct {
	ID                string    `json:"id"`
	CampaignID        string    `json:"campaign_id"`
	Title             string    `json:"title"`
	Content           string    `json:"content"`
	RelatedEntityType *string   `json:"related_entity_type"`
	RelatedEntityID   *string   `json:"related_entity_id"`
	KnownBy           *string   `json:"known_by"`
	Revealed          bool      `json:"revealed"`
	RevealedInSession *int      `json:"revealed_in_session"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type Tag struct {
	ID         string    `json:"id"`
	CampaignID string    `json:"campaign_id"`
	Name       string    `json:"name"`
	Color      *string   `json:"color"`
	CreatedAt  time.Time `json:"created_at"`
}

type Relationship struct {
	ID               string     `json:"id"`
	CampaignID       string     `json:"campaign_id"`
	SourceType       EntityKind `json:"source_type"`
	SourceID         string     `json:"source_id"`
	TargetType       EntityKind `json:"target_type"`
	TargetID         string     `json:"target_id"`
	RelationshipType string     `json:"relationship_type"`
	Description      *string    `json:"description"`
	IsBidirectional  bool       `json:"is_bidirectional"`
	Strength         *int       `json:"strength"`
	IsPublic         bool       `json:"is_public"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (r Relationship) Source() EntityRef {
	return EntityRef{Type: r.SourceType, ID: r.SourceID}
}

func (r Relationship) Target() EntityRef {
	return EntityRef{Type: r.TargetType, ID: r.TargetID}
}

type AiConversation struct {
	ID                       string    `json:"id"`
	CampaignID               string    `json:"campaign_id"`
	ContextType              string    `json:"context_type"`
	TotalInputTokens         int64     `json:"total_input_tokens"`
	TotalOutputTokens        int64     `json:"total_output_tokens"`
	TotalCacheReadTokens     int64     `json:"total_cache_read_tokens"`
	TotalCacheCreationTokens int64     `json:"total_cache_creation_tokens"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`
}

type AiMessage struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	ToolName       *string   `json:"tool_name"`
	ToolInputJSON  *string   `json:"tool_input_json"`
	ToolDataJSON   *string   `json:"tool_data_json"`
	ProposalJSON   *string   `json:"proposal_json"`
	MessageOrder   int       `json:"message_order"`
	CreatedAt      time.Time `json:"created_at"`
}

type ConversationWithMessages struct {
	Conversation AiConversation `json:"conversation"`
	Messages     []AiMessage    `json:"messages"`
}

// TokenUsage is added onto a conversation's running totals.
type TokenUsage struct {
	InputTokens         int64 `json:"input_tokens"`
	OutputTokens        int64 `json:"output_tokens"`
	CacheReadTokens     int64 `json:"cache_read_tokens"`
	CacheCreationTokens int64 `json:"cache_creation_tokens"`
}

type SearchResult struct {
	EntityType EntityKind `json:"entity_type"`
	EntityID   string     `json:"entity_id"`
	Name       string     `json:"name"`
	Snippet    string     `json:"snippet"`
	Rank       float64    `json:"rank"`
}

// IndexDrift is a search index row that disagrees with its source row.
type IndexDrift struct {
	Ref    EntityRef
	Name   string
	Reason string
}

const (
	DriftMissing  = "missing"
	DriftStale    = "stale"
	DriftMismatch = "mismatch"
)

// DanglingReference is an association whose endpoint no longer resolves.
type DanglingReference struct {
	Table    string
	RowID    string
	Endpoint EntityRef
}
