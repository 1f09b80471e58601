// Package service implements the audit pipeline: tokenize, generate,
// classify, score, compare, snapshot
package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"asolens/internal/core/combine"
	"asolens/internal/core/gapscan"
	"asolens/internal/core/keyword"
	"asolens/internal/core/priority"
	"asolens/internal/core/strength"
	"asolens/internal/core/tokenize"
	"asolens/internal/modkit/repokit"
	perr "asolens/internal/platform/errors"
	"asolens/internal/platform/logger"
	dom "asolens/internal/services/audits/domain"
	"asolens/internal/services/audits/repo"
	catalogdom "asolens/internal/services/catalog/domain"
	signalsdom "asolens/internal/services/signals/domain"
)

// Config for the audit service
type Config struct {
	MinLength      int
	MaxLength      int
	HardCap        int
	MaxAlphabet    int
	TopN           int
	Workers        int
	MaxCompetitors int
	Stopwords      []string
}

// Service implements domain.RunnerPort and domain.ReaderPort
type Service struct {
	tx      repokit.TxRunner
	binder  repokit.Binder[repo.Storage]
	catalog catalogdom.LookupPort
	signals signalsdom.ProviderPort
	stop    tokenize.Stopwords
	cfg     Config
	log     logger.Logger
}

// New constructs the audit service. tx may be nil for a dry-run-only
// deployment such as the CLI runner without a database
func New(
	tx repokit.TxRunner,
	binder repokit.Binder[repo.Storage],
	catalog catalogdom.LookupPort,
	signals signalsdom.ProviderPort,
	cfg Config,
) *Service {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.MaxCompetitors <= 0 {
		cfg.MaxCompetitors = 10
	}
	if cfg.TopN <= 0 {
		cfg.TopN = gapscan.DefaultTopN
	}
	stop := tokenize.DefaultStopwords()
	if len(cfg.Stopwords) > 0 {
		stop = tokenize.NewStopwords(cfg.Stopwords...)
	}
	return &Service{
		tx:      tx,
		binder:  binder,
		catalog: catalog,
		signals: signals,
		stop:    stop,
		cfg:     cfg,
		log:     *logger.Named("audits"),
	}
}

func (s *Service) options() combine.Options {
	opt := combine.DefaultOptions()
	if s.cfg.MinLength > 0 {
		opt.MinLength = s.cfg.MinLength
	}
	if s.cfg.MaxLength > 0 {
		opt.MaxLength = s.cfg.MaxLength
	}
	if s.cfg.HardCap > 0 {
		opt.HardCap = s.cfg.HardCap
	}
	if s.cfg.MaxAlphabet > 0 {
		opt.MaxAlphabet = s.cfg.MaxAlphabet
	}
	return opt
}

// Run implements domain.RunnerPort
func (s *Service) Run(ctx context.Context, in dom.RunInput) (dom.AuditResult, error) {
	target, err := s.resolve(ctx, in.App, in.Country, in.Platform)
	if err != nil {
		return dom.AuditResult{}, err
	}

	fields := tokenize.Fields(fieldTexts(target), s.stop)
	if len(fields) == 0 {
		return dom.AuditResult{}, perr.InvalidArgf("app %q has no analyzable text in any field", target.Name)
	}

	gen, err := combine.Generate(fields, s.options())
	if err != nil {
		return dom.AuditResult{}, err
	}
	if gen.LimitReached {
		s.log.Warn().
			Int("total", gen.TotalGenerated).
			Int("kept", len(gen.Phrases)).
			Msg("phrase cap reached, ranking and truncating")
	}

	classified := strength.ClassifyAll(gen.Phrases)
	scored := priority.ComputeAll(classified, s.provider(ctx, classified))
	priority.Sort(scored)

	profiles, err := s.competitorProfiles(ctx, in)
	if err != nil {
		return dom.AuditResult{}, err
	}

	gaps := gapscan.Analyze(gapscan.Target{
		Phrases:          classified,
		KeywordFrequency: wordFrequency(fields),
	}, profiles, gapscan.Options{TopN: s.cfg.TopN})

	res := dom.AuditResult{
		AppID:           target.AppID,
		AppName:         target.Name,
		Country:         in.Country,
		Platform:        in.Platform,
		CreatedAt:       time.Now().UTC(),
		CompetitorCount: len(profiles),
		TotalGenerated:  gen.TotalGenerated,
		LimitReached:    gen.LimitReached,
		Phrases:         phraseRows(scored),
		Gaps:            gaps,
	}

	if in.DryRun || s.tx == nil {
		return res, nil
	}
	res.AuditID = uuid.NewString()
	if err := s.snapshot(ctx, res); err != nil {
		return dom.AuditResult{}, err
	}
	return res, nil
}

// Get implements domain.ReaderPort
func (s *Service) Get(ctx context.Context, auditID string) (dom.AuditResult, error) {
	if s.tx == nil {
		return dom.AuditResult{}, perr.Unavailablef("audit storage not configured")
	}
	if _, err := uuid.Parse(auditID); err != nil {
		return dom.AuditResult{}, perr.InvalidArgf("audit id %q is not a uuid", auditID)
	}
	return s.binder.Bind(s.tx).Get(ctx, auditID)
}

// Recent implements domain.ReaderPort
func (s *Service) Recent(ctx context.Context, appID string, limit int) ([]dom.AuditSummary, error) {
	if s.tx == nil {
		return nil, perr.Unavailablef("audit storage not configured")
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return s.binder.Bind(s.tx).Recent(ctx, appID, limit)
}

// resolve turns an AppInput into concrete metadata. Inline fields win;
// otherwise the catalog port is required
func (s *Service) resolve(ctx context.Context, in dom.AppInput, country, platform string) (catalogdom.AppMetadata, error) {
	if in.Fields != nil {
		return catalogdom.AppMetadata{
			AppID:    in.AppID,
			Name:     in.Name,
			Title:    in.Fields.Title,
			Subtitle: in.Fields.Subtitle,
			Keywords: in.Fields.Keywords,
			Promo:    in.Fields.Promo,
		}, nil
	}
	if in.AppID == "" {
		return catalogdom.AppMetadata{}, perr.InvalidArgf("app needs inline fields or an app id")
	}
	if s.catalog == nil {
		return catalogdom.AppMetadata{}, perr.Unavailablef("catalog lookup not configured")
	}
	md, err := s.catalog.Lookup(ctx, in.AppID, country, platform)
	if err != nil {
		return catalogdom.AppMetadata{}, err
	}
	if in.Name != "" {
		md.Name = in.Name
	}
	return md, nil
}

// competitorProfiles builds one profile per competitor. Classification
// is independent per competitor so it fans out across a worker
// semaphore; aggregation order never affects the gap report
func (s *Service) competitorProfiles(ctx context.Context, in dom.RunInput) ([]gapscan.CompetitorProfile, error) {
	comps := in.Competitors
	if len(comps) > s.cfg.MaxCompetitors {
		s.log.Warn().
			Int("given", len(comps)).
			Int("max", s.cfg.MaxCompetitors).
			Msg("competitor list truncated")
		comps = comps[:s.cfg.MaxCompetitors]
	}
	if len(comps) == 0 {
		return nil, nil
	}

	metas := make([]catalogdom.AppMetadata, len(comps))
	for i, c := range comps {
		md, err := s.resolve(ctx, c, in.Country, in.Platform)
		if err != nil {
			if perr.CodeOf(err) == perr.ErrorCodeNotFound {
				s.log.Warn().Str("app_id", c.AppID).Msg("competitor missing in catalog, skipping")
				continue
			}
			return nil, err
		}
		metas[i] = md
	}

	out := make([]gapscan.CompetitorProfile, len(metas))
	sem := make(chan struct{}, s.cfg.Workers)
	wg := sync.WaitGroup{}

	for i := range metas {
		if metas[i].Title == "" && metas[i].Subtitle == "" && metas[i].Keywords == "" && metas[i].Promo == "" {
			continue
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer func() { <-sem; wg.Done() }()
			md := metas[i]
			fields := tokenize.Fields(fieldTexts(md), s.stop)
			gen, err := combine.Generate(fields, s.options())
			if err != nil {
				s.log.Warn().Err(err).Str("app_id", md.AppID).Msg("competitor generation failed, skipping")
				return
			}
			out[i] = gapscan.CompetitorProfile{
				AppID:            md.AppID,
				Phrases:          strength.ClassifyAll(gen.Phrases),
				KeywordFrequency: wordFrequency(fields),
			}
		}(i)
	}
	wg.Wait()

	profiles := make([]gapscan.CompetitorProfile, 0, len(out))
	for _, p := range out {
		if p.AppID != "" || p.Phrases != nil || p.KeywordFrequency != nil {
			profiles = append(profiles, p)
		}
	}
	return profiles, nil
}

// provider wraps the signal port into a per-text lookup, fetched once
// for the whole classified set. Signal failures degrade to midpoints
func (s *Service) provider(ctx context.Context, classified []strength.Classified) priority.Provider {
	if s.signals == nil {
		return nil
	}
	texts := make([]string, len(classified))
	for i, c := range classified {
		texts[i] = c.Phrase.Text
	}
	got, err := s.signals.PhraseSignals(ctx, texts)
	if err != nil {
		s.log.Warn().Err(err).Msg("signal provider failed, scoring at midpoints")
		return nil
	}
	return func(text string) priority.Signals { return got[text] }
}

func (s *Service) snapshot(ctx context.Context, res dom.AuditResult) error {
	return repokit.WithTx(ctx, s.tx, func(q repokit.Queryer) error {
		st := repokit.MustBind(s.binder, q)
		if err := st.InsertAudit(ctx, res); err != nil {
			return err
		}
		if err := st.InsertPhrases(ctx, res.AuditID, res.Phrases); err != nil {
			return err
		}
		return st.InsertGaps(ctx, res.AuditID, res.Gaps)
	})
}

func fieldTexts(md catalogdom.AppMetadata) map[keyword.Field]string {
	return map[keyword.Field]string{
		keyword.FieldTitle:    md.Title,
		keyword.FieldSubtitle: md.Subtitle,
		keyword.FieldKeywords: md.Keywords,
		keyword.FieldPromo:    md.Promo,
	}
}

// wordFrequency counts raw token occurrences across all fields, the
// usage measure the gap analyzer compares against competitors
func wordFrequency(fields map[keyword.Field]tokenize.FieldTokens) map[string]int {
	out := make(map[string]int)
	for _, ft := range fields {
		for _, t := range ft.Raw {
			out[t.Text]++
		}
	}
	return out
}

func phraseRows(scored []priority.Scored) []dom.PhraseRow {
	out := make([]dom.PhraseRow, len(scored))
	for i, sc := range scored {
		out[i] = dom.PhraseRow{
			Rank:          i + 1,
			Text:          sc.Phrase.Text,
			Length:        sc.Phrase.Length,
			Fields:        sc.Phrase.Fields.Strings(),
			Consecutive:   sc.Phrase.Consecutive,
			Tier:          sc.Tier.Label(),
			CanStrengthen: sc.CanStrengthen,
			Suggestion:    sc.Suggestion,
			Score:         sc.Score.Value,
			Components:    sc.Score.Components,
		}
	}
	return out
}
