// Package domain defines request DTOs for the audits API
package domain

// FieldsBody carries inline listing text
type FieldsBody struct {
	Title    string `json:"title" validate:"omitempty,max=200" example:"Habit Tracker - Daily Streaks"`
	Subtitle string `json:"subtitle" validate:"omitempty,max=200" example:"Routines, goals & reminders"`
	Keywords string `json:"keywords" validate:"omitempty,max=400" example:"habit,streak,routine,daily"`
	Promo    string `json:"promo" validate:"omitempty,max=600" example:"Build habits that stick"`
}

// AppBody names one app, inline or by store id
type AppBody struct {
	AppID  string      `json:"app_id" validate:"omitempty,numeric,max=20" example:"1437816860"`
	Name   string      `json:"name" validate:"omitempty,max=200" example:"Habit Tracker"`
	Fields *FieldsBody `json:"fields,omitempty"`
}

// RunInput is the audit request payload
type RunInput struct {
	App         AppBody   `json:"app" validate:"required"`
	Competitors []AppBody `json:"competitors,omitempty" validate:"omitempty,max=25,dive"`
	Country     string    `json:"country,omitempty" validate:"omitempty,alpha,len=2" example:"us"`
	Platform    string    `json:"platform,omitempty" validate:"omitempty,oneof=ios mac" example:"ios"`
	DryRun      bool      `json:"dry_run,omitempty" example:"false"`
}

// GetInput fetches one stored audit
type GetInput struct {
	AuditID string `json:"audit_id" validate:"required,uuid4" example:"6f1f4f8a-3f2f-4bb4-9a32-2a9c2f1c9d10"`
}

// RecentInput lists stored audits, optionally per app
type RecentInput struct {
	AppID string `json:"app_id,omitempty" validate:"omitempty,numeric,max=20" example:"1437816860"`
	Limit int    `json:"limit,omitempty" validate:"omitempty,min=1,max=50" example:"20"`
}
