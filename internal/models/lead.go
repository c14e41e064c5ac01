package models

import "time"

// LeadSource tags where a captured lead came from.
const LeadSourceChatWidget = "ai_chat_widget"

// Lead is a prospective customer captured from a conversation. Records are
// created once with status "new" and never updated by this service.
type Lead struct {
	ID              string    `json:"id"`
	Email           string    `json:"email,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	Name            string    `json:"name,omitempty"`
	Budget          string    `json:"budget,omitempty"`
	ProjectType     string    `json:"project_type,omitempty"`
	Timeline        string    `json:"timeline,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	ConversationLog string    `json:"conversation_log,omitempty"`
	Source          string    `json:"source"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// Application is a pool-contractor partner application submitted through
// the marketing site.
type Application struct {
	ID                  string    `json:"id"`
	CompanyName         string    `json:"company_name"`
	ContactName         string    `json:"contact_name"`
	Email               string    `json:"email"`
	Phone               string    `json:"phone"`
	Website             string    `json:"website,omitempty"`
	YearsInBusiness     string    `json:"years_in_business"`
	AverageProjectValue string    `json:"average_project_value"`
	MonthlyLeads        string    `json:"monthly_leads"`
	BiggestChallenge    string    `json:"biggest_challenge"`
	WhyInterested       string    `json:"why_interested"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
}
