// @title         muzzle API
// @version       0.1.0
// @description   Fuzzy profanity checks and masking for Korean text

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"muzzle/internal/modkit/repokit"
	"muzzle/internal/platform/bus"
	"muzzle/internal/platform/config"
	"muzzle/internal/platform/logger"
	phttp "muzzle/internal/platform/net/http"
	"muzzle/internal/platform/store"

	"muzzle/internal/services/api"
	wlsvc "muzzle/internal/services/wordlist/service"
)

func main() {
	if err := config.LoadDotenv(); err != nil {
		logger.Get().Panic().Err(err).Msg("dotenv")
	}
	logger.Init(logger.FromEnv())
	l := logger.Named("main")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// service-scoped config for HTTP and the filter (MUZZLE_API_*)
	root := config.New()
	apiCfg := root.Prefix("MUZZLE_API_")

	// every backend is optional; an unset URL leaves it out
	stCfg := store.ConfigFromEnv("muzzle-api")
	st, err := store.Open(ctx, stCfg, store.WithLogger(*logger.Named("store")))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	repokit.MustGuard(ctx, st)
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	pub, err := bus.Open(ctx, bus.ConfigFromEnv(), *logger.Named("bus"))
	if err != nil {
		l.Panic().Err(err).Msg("bus.Open failed")
	}
	// a configured broker must answer before the recorder starts publishing
	if p, ok := pub.(repokit.Pinger); ok {
		repokit.MustPing(ctx, "kafka", p)
	}
	defer func() {
		if err := pub.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close bus")
		}
	}()

	src := wlsvc.SourceFromConfig(root)
	var stored wlsvc.Loader
	if st.PG != nil {
		wl := wlsvc.New(st.PG, nil)
		if stCfg.PG.Migrate {
			if err := wl.EnsureSchema(ctx); err != nil {
				l.Panic().Err(err).Msg("wordlist schema")
			}
		}
		stored = wl
	}
	f, list, err := wlsvc.BuildFilter(ctx, src, stored)
	if err != nil {
		l.Panic().Err(err).Str("source", string(src.Source)).Msg("build filter")
	}
	l.Info().
		Str("source", string(src.Source)).
		Str("wordlist", list.Name).
		Int("version", list.Version).
		Int("rules", f.Rules().Len()).
		Msg("filter ready")

	srv := phttp.NewServer(apiCfg)
	mounted := api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         logger.Get(),
			Bus:            pub,
			Filter:         f,
			Wordlist:       list,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)
	if err := mounted.Start(ctx); err != nil {
		l.Panic().Err(err).Msg("verdict sinks schema")
	}

	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
	}

	// drain buffered verdicts before the store and bus close
	dctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := mounted.Close(dctx); err != nil {
		l.Warn().Err(err).Msg("verdict recorder drain")
	}
	l.Info().Msg("bye")
}
