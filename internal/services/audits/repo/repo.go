// Package repo provides the audit snapshot repository
package repo

import (
	"context"
	"fmt"
	"strings"

	"asolens/internal/core/gapscan"
	"asolens/internal/modkit/repokit"
	perr "asolens/internal/platform/errors"
	"asolens/internal/platform/store"
	dom "asolens/internal/services/audits/domain"
)

type pg struct{ q repokit.Queryer }

// NewPG constructs the audit repo binder for Postgres
func NewPG() repokit.Binder[Storage] {
	return repokit.BindFunc[Storage](func(q repokit.Queryer) Storage { return &pg{q: q} })
}

// Storage defines the audit repository
type Storage interface {
	InsertAudit(ctx context.Context, res dom.AuditResult) error
	InsertPhrases(ctx context.Context, auditID string, xs []dom.PhraseRow) error
	InsertGaps(ctx context.Context, auditID string, rep gapscan.Report) error
	Get(ctx context.Context, auditID string) (dom.AuditResult, error)
	Recent(ctx context.Context, appID string, limit int) ([]dom.AuditSummary, error)
}

// phraseInsertChunk keeps each multi-row insert well under the
// Postgres bind-parameter ceiling
const phraseInsertChunk = 500

// InsertAudit implements Storage
func (s *pg) InsertAudit(ctx context.Context, res dom.AuditResult) error {
	err := store.ExecOne(ctx, s.q, `
		INSERT INTO audits
			(id, app_id, app_name, country, platform, competitor_count,
			total_generated, limit_reached, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		res.AuditID, res.AppID, res.AppName, res.Country, res.Platform,
		res.CompetitorCount, res.TotalGenerated, res.LimitReached, res.CreatedAt,
	)
	return perr.FromPostgresf(err, "insert audit %s", res.AuditID)
}

// InsertPhrases implements Storage
func (s *pg) InsertPhrases(ctx context.Context, auditID string, xs []dom.PhraseRow) error {
	for len(xs) > 0 {
		n := len(xs)
		if n > phraseInsertChunk {
			n = phraseInsertChunk
		}
		if err := s.insertPhraseChunk(ctx, auditID, xs[:n]); err != nil {
			return err
		}
		xs = xs[n:]
	}
	return nil
}

func (s *pg) insertPhraseChunk(ctx context.Context, auditID string, xs []dom.PhraseRow) error {
	var sb strings.Builder
	sb.WriteString(`INSERT INTO audit_phrases
		(audit_id, rank, text, length, fields, consecutive, tier, can_strengthen,
		suggestion, score, strength, demand, opportunity, trend, intent) VALUES `)

	args := make([]any, 0, len(xs)*15)
	for i, p := range xs {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*15 + 1
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base, base+1, base+2, base+3, base+4, base+5, base+6,
			base+7, base+8, base+9, base+10, base+11, base+12, base+13, base+14)

		args = append(args,
			auditID, p.Rank, p.Text, p.Length, strings.Join(p.Fields, ","),
			p.Consecutive, p.Tier, p.CanStrengthen, p.Suggestion, p.Score,
			p.Components.Strength, p.Components.Demand, p.Components.Opportunity,
			p.Components.Trend, p.Components.Intent,
		)
	}
	_, err := s.q.Exec(ctx, sb.String(), args...)
	return perr.FromPostgresf(err, "insert audit phrases %s", auditID)
}

// InsertGaps implements Storage
func (s *pg) InsertGaps(ctx context.Context, auditID string, rep gapscan.Report) error {
	all := make([]gapscan.Opportunity, 0,
		len(rep.MissingKeywords)+len(rep.MissingPhrases)+len(rep.FrequencyGaps))
	all = append(all, rep.MissingKeywords...)
	all = append(all, rep.MissingPhrases...)
	all = append(all, rep.FrequencyGaps...)
	if len(all) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO audit_gaps
		(audit_id, kind, subject, score, competitors, recommendation) VALUES `)

	args := make([]any, 0, len(all)*6)
	for i, g := range all {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*6 + 1
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d,$%d)",
			base, base+1, base+2, base+3, base+4, base+5)
		args = append(args,
			auditID, g.Kind.String(), g.Subject, g.Score, g.Competitors, g.Recommendation)
	}
	_, err := s.q.Exec(ctx, sb.String(), args...)
	return perr.FromPostgresf(err, "insert audit gaps %s", auditID)
}

// Get implements Storage
func (s *pg) Get(ctx context.Context, auditID string) (dom.AuditResult, error) {
	res, err := store.One(ctx, s.q, func(r store.Row) (dom.AuditResult, error) {
		var a dom.AuditResult
		err := r.Scan(
			&a.AuditID, &a.AppID, &a.AppName, &a.Country, &a.Platform,
			&a.CompetitorCount, &a.TotalGenerated, &a.LimitReached, &a.CreatedAt,
		)
		return a, err
	}, `
		SELECT id::text, app_id, app_name, country, platform, competitor_count,
			total_generated, limit_reached, created_at
		FROM audits WHERE id = $1::uuid`, auditID)
	if err != nil {
		return dom.AuditResult{}, perr.FromPostgresf(err, "get audit %s", auditID)
	}

	if res.Phrases, err = s.phrases(ctx, auditID); err != nil {
		return dom.AuditResult{}, err
	}
	if res.Gaps, err = s.gaps(ctx, auditID); err != nil {
		return dom.AuditResult{}, err
	}
	return res, nil
}

func (s *pg) phrases(ctx context.Context, auditID string) ([]dom.PhraseRow, error) {
	out, err := store.Many(ctx, s.q, func(r store.Row) (dom.PhraseRow, error) {
		var p dom.PhraseRow
		var fields string
		err := r.Scan(
			&p.Rank, &p.Text, &p.Length, &fields, &p.Consecutive, &p.Tier,
			&p.CanStrengthen, &p.Suggestion, &p.Score,
			&p.Components.Strength, &p.Components.Demand,
			&p.Components.Opportunity, &p.Components.Trend, &p.Components.Intent,
		)
		if err == nil && fields != "" {
			p.Fields = strings.Split(fields, ",")
		}
		return p, err
	}, `
		SELECT rank, text, length, fields, consecutive, tier, can_strengthen,
			suggestion, score, strength, demand, opportunity, trend, intent
		FROM audit_phrases WHERE audit_id = $1::uuid ORDER BY rank`, auditID)
	return out, perr.FromPostgresf(err, "list audit phrases %s", auditID)
}

type gapRow struct {
	kind string
	opp  gapscan.Opportunity
}

func (s *pg) gaps(ctx context.Context, auditID string) (gapscan.Report, error) {
	rows, err := store.Many(ctx, s.q, func(r store.Row) (gapRow, error) {
		var g gapRow
		err := r.Scan(&g.kind, &g.opp.Subject, &g.opp.Score, &g.opp.Competitors, &g.opp.Recommendation)
		return g, err
	}, `
		SELECT kind, subject, score, competitors, recommendation
		FROM audit_gaps WHERE audit_id = $1::uuid
		ORDER BY kind, score DESC, competitors DESC, subject`, auditID)
	if err != nil {
		return gapscan.Report{}, perr.FromPostgresf(err, "list audit gaps %s", auditID)
	}

	var rep gapscan.Report
	for _, g := range rows {
		switch g.kind {
		case gapscan.KindMissingKeyword.String():
			g.opp.Kind = gapscan.KindMissingKeyword
			rep.MissingKeywords = append(rep.MissingKeywords, g.opp)
		case gapscan.KindMissingPhrase.String():
			g.opp.Kind = gapscan.KindMissingPhrase
			rep.MissingPhrases = append(rep.MissingPhrases, g.opp)
		case gapscan.KindFrequencyGap.String():
			g.opp.Kind = gapscan.KindFrequencyGap
			rep.FrequencyGaps = append(rep.FrequencyGaps, g.opp)
		}
	}
	return rep, nil
}

// Recent implements Storage
func (s *pg) Recent(ctx context.Context, appID string, limit int) ([]dom.AuditSummary, error) {
	var sb strings.Builder
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sb.WriteString(`
		SELECT a.id::text AS audit_id, a.app_id, a.app_name, a.created_at, a.competitor_count,
			(SELECT count(*) FROM audit_phrases p WHERE p.audit_id = a.id) AS phrase_count,
			(SELECT count(*) FROM audit_gaps g WHERE g.audit_id = a.id) AS gap_count
		FROM audits a
	`)
	if appID != "" {
		sb.WriteString("WHERE a.app_id = " + arg(appID) + "\n")
	}
	sb.WriteString("ORDER BY a.created_at DESC\nLIMIT " + arg(limit))

	out, err := store.StructsByName[dom.AuditSummary](ctx, s.q, sb.String(), args...)
	return out, perr.FromPostgresf(err, "list recent audits")
}
