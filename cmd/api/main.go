package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"concierge/internal/adapters/events"
	server "concierge/internal/adapters/http_server"
	"concierge/internal/adapters/llm"
	"concierge/internal/adapters/observability"
	"concierge/internal/adapters/openmeteo"
	"concierge/internal/adapters/overpass"
	"concierge/internal/adapters/pdf"
	redisad "concierge/internal/adapters/redis"
	"concierge/internal/app"
	"concierge/internal/domain"
	"concierge/internal/shared"
	mysqlrepo "concierge/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, observability.MetricsHandler(reg))

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	defer db.Close()
	log.Info().Msg("database connection ok")

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cache.Close()
	if err := cache.Ping(ctx); err != nil {
		// lookups fall through to the providers while redis is down
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable")
	}

	// outbound providers
	geo, err := overpass.New(cfg.OverpassMirrors, overpass.Options{Timeout: cfg.GeoTimeout, RPS: cfg.GeoRPS})
	if err != nil {
		log.Fatal().Err(err).Msg("overpass setup failed")
	}
	meteo := openmeteo.New(cfg.OpenMeteoGeoURL, cfg.OpenMeteoWxURL, cfg.GeoTimeout, cfg.GeoRPS)
	lookups := app.NewLookupService(meteo, meteo, cache, cfg.CacheTTL)

	svc := app.NewPlanService(app.PlanDeps{
		Selection: app.NewSelectionEngine(repo, geo, app.SelectionConfig{
			InitialRadiusKm: cfg.RadiusKm,
			MaxRadiusKm:     cfg.MaxRadiusKm,
			MaxPOIs:         cfg.MaxPOIs,
			MaxRestaurants:  cfg.MaxRestaurants,
		}),
		Assembler:  app.NewAssembler(app.AssemblerConfig{PoolCap: cfg.PoolCap, ItemsPerDay: 3}),
		Geocoder:   lookups,
		Forecaster: lookups,
		Events:     eventSources(cfg),
		Extractor:  llm.NewExtractor("", cfg.OpenAIKey, cfg.OpenAIModel, 10*time.Second),
		Runs:       repo,
	}, app.PlanConfig{Seed: cfg.ShuffleSeed, MaxTripDays: cfg.MaxTripDays})

	// http
	srv := server.New(server.Options{
		Timeout:        cfg.GeoTimeout*4 + 10*time.Second,
		CORSOrigins:    cfg.CORSOrigins,
		PlanRatePerMin: cfg.PlanRatePerMin,
	})
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Plans: svc, Render: pdf.Render, MaxTripDays: cfg.MaxTripDays})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown")
		}
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Int("overpass_mirrors", len(cfg.OverpassMirrors)).Msg("API listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}

// eventSources combines the configured event providers; nil when none is set up.
func eventSources(cfg shared.Config) domain.EventSource {
	var m events.Multi
	if cfg.TavilyKey != "" {
		tv, err := events.NewTavily("", cfg.TavilyKey, cfg.GeoTimeout)
		if err != nil {
			log.Fatal().Err(err).Msg("tavily setup failed")
		}
		m = append(m, tv)
	}
	if len(cfg.EventFeeds) > 0 {
		m = append(m, events.NewFeeds(cfg.EventFeeds, cfg.GeoTimeout))
	}
	if len(m) == 0 {
		log.Info().Msg("no event source configured")
		return nil
	}
	return m
}
