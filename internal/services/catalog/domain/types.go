// Package domain defines the catalog lookup types and ports
package domain

import "context"

// AppMetadata is one store listing's text surface plus identity.
// Fields the catalog cannot supply resolve to empty strings, never errors
type AppMetadata struct {
	AppID     string
	Country   string
	Platform  string
	Name      string
	Title     string
	Subtitle  string
	Keywords  string
	Promo     string
	Developer string
	Genre     string
	Rating    float64
	Ratings   int
}

// LookupPort fetches listing metadata for one or many apps
type LookupPort interface {
	Lookup(ctx context.Context, appID, country, platform string) (AppMetadata, error)
	LookupMany(ctx context.Context, appIDs []string, country, platform string) ([]AppMetadata, error)
}
