package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"asolens/internal/modkit"
	"asolens/internal/modkit/module"
	"asolens/internal/modkit/repokit"
	"asolens/internal/platform/config"
	"asolens/internal/platform/logger"
	"asolens/internal/platform/store"

	"asolens/internal/adapters/catalog/itunes"
	auditdom "asolens/internal/services/audits/domain"
	auditsmod "asolens/internal/services/audits/module"
	signalsvc "asolens/internal/services/signals/service"
)

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	l := logger.Get()

	var (
		appID    = flag.String("app-id", "", "App Store id to audit (catalog lookup)")
		name     = flag.String("name", "", "app display name (with inline fields)")
		title    = flag.String("title", "", "inline title text")
		subtitle = flag.String("subtitle", "", "inline subtitle text")
		keywords = flag.String("keywords", "", "inline keyword field text")
		promo    = flag.String("promo", "", "inline promotional text")
		comps    = flag.String("competitors", "", "comma separated competitor app ids")
		country  = flag.String("country", "us", "storefront country")
		platform = flag.String("platform", "ios", "platform: ios or mac")
		dryRun   = flag.Bool("dry-run", false, "compute but do not snapshot")
		timeout  = flag.Duration("timeout", 5*time.Minute, "overall deadline")
	)
	flag.Parse()

	if *appID == "" && *title == "" && *keywords == "" {
		log.Fatal("need -app-id or inline fields (-title / -keywords)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	// Postgres is optional for the CLI; without it every run is a dry run
	var st *store.Store
	if url := pgCfg.MayString("DBURL", ""); url != "" {
		var err error
		st, err = store.Open(ctx, store.Config{
			PG: store.PGConfig{
				Enabled:     true,
				URL:         url,
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 2)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", false),

				// the CLI gives up fast rather than camping on a dead database
				ConnectRetries: pgCfg.MayInt("CONNECT_RETRIES", 3),
				PingTimeout:    pgCfg.MayDuration("PING_TIMEOUT", 2*time.Second),
			},
		}, store.WithLogger(*l))
		if err != nil {
			l.Panic().Err(err).Msg("store.Open failed")
		}
		repokit.MustGuard(ctx, st)
		defer func() {
			if err := st.Close(context.Background()); err != nil {
				l.Error().Err(err).Msg("failed to close store")
			}
		}()
	}

	deps := modkit.Deps{Cfg: root, Log: *l}
	if st != nil {
		deps.PG = st.PG
	}

	am := auditsmod.New(deps, auditsmod.Options{}, modkit.WithPorts(auditdom.Ports{
		Catalog: itunes.NewClient(itunes.Options{}),
		Signals: signalsvc.NewStatic(nil),
	}))
	module.Register(am.Name(), am.Ports())

	in := auditdom.RunInput{
		App:      appInput(*appID, *name, *title, *subtitle, *keywords, *promo),
		Country:  *country,
		Platform: *platform,
		DryRun:   *dryRun || st == nil,
	}
	for _, id := range strings.Split(*comps, ",") {
		if id = strings.TrimSpace(id); id != "" {
			in.Competitors = append(in.Competitors, auditdom.AppInput{AppID: id})
		}
	}

	ports := module.MustPortsOf[auditsmod.Ports](am)
	res, err := ports.Runner.Run(ctx, in)
	if err != nil {
		l.Fatal().Err(err).Msg("audit failed")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		l.Fatal().Err(err).Msg("encode result failed")
	}
}

func appInput(appID, name, title, subtitle, keywords, promo string) auditdom.AppInput {
	in := auditdom.AppInput{AppID: appID, Name: name}
	if title != "" || subtitle != "" || keywords != "" || promo != "" {
		in.Fields = &auditdom.AppFields{
			Title:    title,
			Subtitle: subtitle,
			Keywords: keywords,
			Promo:    promo,
		}
	}
	return in
}
