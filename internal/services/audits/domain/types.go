// Package domain defines the audit service types and ports
package domain

import (
	"time"

	"asolens/internal/core/gapscan"
	"asolens/internal/core/priority"
)

// AppFields is the inline text surface of one listing
type AppFields struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Keywords string `json:"keywords"`
	Promo    string `json:"promo"`
}

// AppInput names one app for an audit. Either Fields is supplied inline
// or AppID is resolved through the catalog port
type AppInput struct {
	AppID  string     `json:"app_id"`
	Name   string     `json:"name"`
	Fields *AppFields `json:"fields"`
}

// RunInput is one audit request
type RunInput struct {
	App         AppInput   `json:"app"`
	Competitors []AppInput `json:"competitors"`
	Country     string     `json:"country"`
	Platform    string     `json:"platform"`
	DryRun      bool       `json:"dry_run"`
}

// PhraseRow is one ranked phrase of an audit result
type PhraseRow struct {
	Rank          int                 `json:"rank"`
	Text          string              `json:"text"`
	Length        int                 `json:"length"`
	Fields        []string            `json:"fields"`
	Consecutive   bool                `json:"consecutive"`
	Tier          string              `json:"tier"`
	CanStrengthen bool                `json:"can_strengthen"`
	Suggestion    string              `json:"suggestion,omitempty"`
	Score         float64             `json:"score"`
	Components    priority.Components `json:"components"`
}

// AuditResult is the full outcome of one audit run
type AuditResult struct {
	AuditID         string         `json:"audit_id,omitempty"`
	AppID           string         `json:"app_id"`
	AppName         string         `json:"app_name"`
	Country         string         `json:"country,omitempty"`
	Platform        string         `json:"platform,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	CompetitorCount int            `json:"competitor_count"`
	TotalGenerated  int            `json:"total_generated"`
	LimitReached    bool           `json:"limit_reached"`
	Phrases         []PhraseRow    `json:"phrases"`
	Gaps            gapscan.Report `json:"gaps"`
}

// AuditSummary is the listing row for stored audits.
// db tags line up with the column aliases in the repo
type AuditSummary struct {
	AuditID         string    `json:"audit_id" db:"audit_id"`
	AppID           string    `json:"app_id" db:"app_id"`
	AppName         string    `json:"app_name" db:"app_name"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	CompetitorCount int       `json:"competitor_count" db:"competitor_count"`
	PhraseCount     int       `json:"phrase_count" db:"phrase_count"`
	GapCount        int       `json:"gap_count" db:"gap_count"`
}
