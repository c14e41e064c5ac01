package models

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single turn in a chat conversation
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Stage is the coarse funnel phase of a qualification conversation,
// derived from how many messages have been exchanged.
type Stage string

const (
	StageRapport Stage = "rapport"
	StageExplore Stage = "explore"
	StageQualify Stage = "qualify"
	StageConvert Stage = "convert"
)

// ConversationState summarizes a conversation for prompt construction.
// It is recomputed from the full message list on every turn and is never
// persisted between calls.
type ConversationState struct {
	MessageCount    int    `json:"message_count"`
	Stage           Stage  `json:"stage"`
	BudgetQualified bool   `json:"budget_qualified"`
	BudgetRange     string `json:"budget_range,omitempty"`
	TimelineKnown   bool   `json:"timeline_known"`
}

// ProjectType is the kind of pool project a prospect described.
type ProjectType string

const (
	ProjectNewConstruction ProjectType = "New Construction"
	ProjectRenovation      ProjectType = "Renovation"
)

// ExtractedLeadInfo holds whatever qualification details could be pulled
// out of free-form conversation text. Every field is independently
// optional; an empty value means the prospect has not mentioned it yet.
type ExtractedLeadInfo struct {
	Email       string      `json:"email,omitempty"`
	Phone       string      `json:"phone,omitempty"`
	Name        string      `json:"name,omitempty"`
	Budget      string      `json:"budget,omitempty"` // normalized as "$<integer>"
	ProjectType ProjectType `json:"project_type,omitempty"`
	Timeline    string      `json:"timeline,omitempty"`
	PoolType    string      `json:"pool_type,omitempty"`
	HasKids     bool        `json:"has_kids"`
}

// HasContactInfo reports whether the record is worth capturing as a lead.
func (e ExtractedLeadInfo) HasContactInfo() bool {
	return e.Email != "" || e.Phone != ""
}

// Tier buckets a lead score into hot/warm/cold.
type Tier string

const (
	TierHot  Tier = "hot"
	TierWarm Tier = "warm"
	TierCold Tier = "cold"
)
