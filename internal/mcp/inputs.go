package mcp

type SearchEntitiesInput struct {
	CampaignID  string   `json:"campaign_id" jsonschema:"campaign to search"`
	Query       string   `json:"query" jsonschema:"search terms; each word matches as a prefix"`
	EntityTypes []string `json:"entity_types,omitempty" jsonschema:"restrict to these kinds: character, location, organization, quest, hero, session"`
	Limit       int      `json:"limit,omitempty" jsonschema:"maximum results, default 50"`
}

type ListCampaignsInput struct{}

type GetCampaignInput struct {
	ID string `json:"id" jsonschema:"campaign id"`
}

type CreateCampaignInput struct {
	Name        string  `json:"name" jsonschema:"campaign name"`
	Description *string `json:"description,omitempty" jsonschema:"campaign description"`
	System      *string `json:"system,omitempty" jsonschema:"game system, for example D&D 5e"`
}

type EntityRefInput struct {
	EntityType string `json:"entity_type" jsonschema:"entity kind, for example character or location"`
	ID         string `json:"id" jsonschema:"entity id"`
}

type ListEntitiesInput struct {
	EntityType string `json:"entity_type" jsonschema:"entity kind to list"`
	CampaignID string `json:"campaign_id,omitempty" jsonschema:"campaign id; ignored when listing campaigns"`
}

type CreateCharacterInput struct {
	CampaignID  string  `json:"campaign_id" jsonschema:"campaign id"`
	Name        string  `json:"name" jsonschema:"character name"`
	Lineage     *string `json:"lineage,omitempty" jsonschema:"ancestry or species"`
	Occupation  *string `json:"occupation,omitempty" jsonschema:"role or profession"`
	Description *string `json:"description,omitempty" jsonschema:"appearance and summary"`
	Personality *string `json:"personality,omitempty" jsonschema:"personality traits"`
	Motivations *string `json:"motivations,omitempty" jsonschema:"what the character wants"`
	Secrets     *string `json:"secrets,omitempty" jsonschema:"GM-only secrets"`
	VoiceNotes  *string `json:"voice_notes,omitempty" jsonschema:"how to voice the character"`
}

type UpdateCharacterInput struct {
	ID          string  `json:"id" jsonschema:"character id"`
	Name        *string `json:"name,omitempty" jsonschema:"new name"`
	Lineage     *string `json:"lineage,omitempty" jsonschema:"ancestry or species"`
	Occupation  *string `json:"occupation,omitempty" jsonschema:"role or profession"`
	IsAlive     *bool   `json:"is_alive,omitempty" jsonschema:"whether the character is alive"`
	Description *string `json:"description,omitempty" jsonschema:"appearance and summary"`
	Personality *string `json:"personality,omitempty" jsonschema:"personality traits"`
	Motivations *string `json:"motivations,omitempty" jsonschema:"what the character wants"`
	Secrets     *string `json:"secrets,omitempty" jsonschema:"GM-only secrets"`
	VoiceNotes  *string `json:"voice_notes,omitempty" jsonschema:"how to voice the character"`
}

type CreateLocationInput struct {
	CampaignID   string  `json:"campaign_id" jsonschema:"campaign id"`
	Name         string  `json:"name" jsonschema:"location name"`
	LocationType string  `json:"location_type,omitempty" jsonschema:"world, continent, region, territory, settlement, district, building, room, landmark or wilderness"`
	ParentID     *string `json:"parent_id,omitempty" jsonschema:"enclosing location id"`
	Description  *string `json:"description,omitempty" jsonschema:"location description"`
	GMNotes      *string `json:"gm_notes,omitempty" jsonschema:"GM-only notes"`
}

type UpdateLocationInput struct {
	ID           string  `json:"id" jsonschema:"location id"`
	Name         *string `json:"name,omitempty" jsonschema:"new name"`
	LocationType *string `json:"location_type,omitempty" jsonschema:"new location type"`
	ParentID     *string `json:"parent_id,omitempty" jsonschema:"new enclosing location id"`
	Description  *string `json:"description,omitempty" jsonschema:"location description"`
	GMNotes      *string `json:"gm_notes,omitempty" jsonschema:"GM-only notes"`
}

type ListLocationChildrenInput struct {
	ParentID string `json:"parent_id" jsonschema:"enclosing location id"`
}

type CreateOrganizationInput struct {
	CampaignID  string  `json:"campaign_id" jsonschema:"campaign id"`
	Name        string  `json:"name" jsonschema:"organization name"`
	OrgType     string  `json:"org_type,omitempty" jsonschema:"government, guild, religion, military, criminal, mercantile, academic, secret_society, family or other"`
	Description *string `json:"description,omitempty" jsonschema:"organization description"`
	Goals       *string `json:"goals,omitempty" jsonschema:"what the organization pursues"`
	Resources   *string `json:"resources,omitempty" jsonschema:"assets and means"`
}

type CreateQuestInput struct {
	CampaignID  string  `json:"campaign_id" jsonschema:"campaign id"`
	Name        string  `json:"name" jsonschema:"quest name"`
	Status      string  `json:"status,omitempty" jsonschema:"planned, available, active, completed, failed or abandoned"`
	PlotType    string  `json:"plot_type,omitempty" jsonschema:"main, secondary, side or background"`
	Description *string `json:"description,omitempty" jsonschema:"quest description"`
	Hook        *string `json:"hook,omitempty" jsonschema:"how the party gets involved"`
	Objectives  *string `json:"objectives,omitempty" jsonschema:"what must be done"`
}

type UpdateQuestInput struct {
	ID            string  `json:"id" jsonschema:"quest id"`
	Name          *string `json:"name,omitempty" jsonschema:"new name"`
	Status        *string `json:"status,omitempty" jsonschema:"new status"`
	PlotType      *string `json:"plot_type,omitempty" jsonschema:"new plot type"`
	Description   *string `json:"description,omitempty" jsonschema:"quest description"`
	Hook          *string `json:"hook,omitempty" jsonschema:"how the party gets involved"`
	Objectives    *string `json:"objectives,omitempty" jsonschema:"what must be done"`
	Complications *string `json:"complications,omitempty" jsonschema:"twists and obstacles"`
	Resolution    *string `json:"resolution,omitempty" jsonschema:"how the quest ended"`
	Reward        *string `json:"reward,omitempty" jsonschema:"reward on completion"`
}

type CreateHeroInput struct {
	CampaignID  string  `json:"campaign_id" jsonschema:"campaign id"`
	PlayerID    *string `json:"player_id,omitempty" jsonschema:"player who runs the hero"`
	Name        string  `json:"name" jsonschema:"hero name"`
	Lineage     *string `json:"lineage,omitempty" jsonschema:"ancestry or species"`
	Classes     *string `json:"classes,omitempty" jsonschema:"classes and levels"`
	Description *string `json:"description,omitempty" jsonschema:"hero description"`
	Backstory   *string `json:"backstory,omitempty" jsonschema:"hero backstory"`
}

type CreateSessionInput struct {
	CampaignID     string  `json:"campaign_id" jsonschema:"campaign id"`
	SessionNumber  int     `json:"session_number" jsonschema:"session number, starting at 1"`
	Title          *string `json:"title,omitempty" jsonschema:"session title"`
	Date           *string `json:"date,omitempty" jsonschema:"play date as YYYY-MM-DD"`
	PlannedContent *string `json:"planned_content,omitempty" jsonschema:"what the GM has prepared"`
}

type CreateRelationshipInput struct {
	CampaignID       string  `json:"campaign_id" jsonschema:"campaign id"`
	SourceType       string  `json:"source_type" jsonschema:"kind of the source entity"`
	SourceID         string  `json:"source_id" jsonschema:"source entity id"`
	TargetType       string  `json:"target_type" jsonschema:"kind of the target entity"`
	TargetID         string  `json:"target_id" jsonschema:"target entity id"`
	RelationshipType string  `json:"relationship_type" jsonschema:"free-form label, for example ally_of"`
	Description      *string `json:"description,omitempty" jsonschema:"relationship details"`
	IsBidirectional  *bool   `json:"is_bidirectional,omitempty" jsonschema:"whether the relationship holds both ways, default false"`
	Strength         *int    `json:"strength,omitempty" jsonschema:"relationship strength"`
	IsPublic         *bool   `json:"is_public,omitempty" jsonschema:"whether players know about it, default true"`
}

type CreateTagInput struct {
	CampaignID string  `json:"campaign_id" jsonschema:"campaign id"`
	Name       string  `json:"name" jsonschema:"tag name, unique within the campaign"`
	Color      *string `json:"color,omitempty" jsonschema:"display color"`
}

type TagEntityInput struct {
	TagID      string `json:"tag_id" jsonschema:"tag id"`
	EntityType string `json:"entity_type" jsonschema:"kind of the tagged entity"`
	EntityID   string `json:"entity_id" jsonschema:"tagged entity id"`
}
