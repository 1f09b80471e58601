package itunes

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	perr "asolens/internal/platform/errors"
	"asolens/internal/services/catalog/domain"
)

// lookupBatchSize and lookupBatchDelay pace LookupMany on top of the
// per-request limiter; the lookup endpoint punishes bursts hard
const (
	lookupBatchSize  = 2
	lookupBatchDelay = 1 * time.Second
)

// lookupResponse is the wire shape of the lookup endpoint
type lookupResponse struct {
	ResultCount int            `json:"resultCount"`
	Results     []lookupResult `json:"results"`
}

type lookupResult struct {
	TrackID          int64   `json:"trackId"`
	TrackName        string  `json:"trackName"`
	ArtistName       string  `json:"artistName"`
	PrimaryGenreName string  `json:"primaryGenreName"`
	AverageRating    float64 `json:"averageUserRating"`
	RatingCount      int     `json:"userRatingCount"`
}

// Lookup implements domain.LookupPort. The public lookup endpoint only
// exposes the track name; subtitle, keyword field and promo text resolve
// to empty strings and callers supply them inline when they have them
func (c *Client) Lookup(ctx context.Context, appID, country, platform string) (domain.AppMetadata, error) {
	if appID == "" {
		return domain.AppMetadata{}, perr.InvalidArgf("app id required")
	}
	if country == "" {
		country = "us"
	}

	q := url.Values{}
	q.Set("id", appID)
	q.Set("country", country)
	q.Set("entity", entityFor(platform))

	resp, err := c.do(ctx, "/lookup", q)
	if err != nil {
		return domain.AppMetadata{}, err
	}
	defer resp.Body.Close()

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.AppMetadata{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "itunes decode failed")
	}
	if body.ResultCount == 0 || len(body.Results) == 0 {
		return domain.AppMetadata{}, perr.Newf(perr.ErrorCodeNotFound, "itunes app %s not found in %s", appID, country)
	}

	r := body.Results[0]
	return domain.AppMetadata{
		AppID:     appID,
		Country:   country,
		Platform:  platform,
		Name:      r.TrackName,
		Title:     r.TrackName,
		Developer: r.ArtistName,
		Genre:     r.PrimaryGenreName,
		Rating:    r.AverageRating,
		Ratings:   r.RatingCount,
	}, nil
}

// LookupMany implements domain.LookupPort, fetching in small batches
// with a fixed pause between them. A missing app drops out of the result
// rather than failing the whole batch
func (c *Client) LookupMany(ctx context.Context, appIDs []string, country, platform string) ([]domain.AppMetadata, error) {
	out := make([]domain.AppMetadata, 0, len(appIDs))
	for i, id := range appIDs {
		if i > 0 && i%lookupBatchSize == 0 {
			select {
			case <-ctx.Done():
				return out, ctx.Err()
			case <-time.After(lookupBatchDelay):
			}
		}
		md, err := c.Lookup(ctx, id, country, platform)
		if err != nil {
			if perr.CodeOf(err) == perr.ErrorCodeNotFound {
				c.log.Warn().Str("app_id", id).Msg("itunes app missing, skipping")
				continue
			}
			return out, err
		}
		out = append(out, md)
	}
	return out, nil
}

func entityFor(platform string) string {
	switch platform {
	case "mac":
		return "macSoftware"
	default:
		return "software"
	}
}
