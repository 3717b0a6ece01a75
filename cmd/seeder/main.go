package main

import (
	"context"
	"database/sql"
	"flag"
	"sync"
	"sync/atomic"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"concierge/internal/adapters/observability"
	"concierge/internal/adapters/openmeteo"
	"concierge/internal/adapters/overpass"
	redisad "concierge/internal/adapters/redis"
	"concierge/internal/app"
	"concierge/internal/shared"
	mysqlrepo "concierge/internal/storage/mysql"
)

func main() {
	warm := flag.Bool("warm", false, "also geocode each city and fetch live candidates into the store")
	flag.Parse()

	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	log.Info().
		Int("cities", len(shared.SeedCities)).
		Int("workers", cfg.SeedWorkers).
		Bool("warm", *warm).
		Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	defer db.Close()

	repo := mysqlrepo.New(db)
	seeder := app.NewSeedService(repo, nil, nil)
	if *warm {
		geo, err := overpass.New(cfg.OverpassMirrors, overpass.Options{Timeout: cfg.GeoTimeout, RPS: cfg.GeoRPS})
		if err != nil {
			log.Fatal().Err(err).Msg("overpass setup failed")
		}
		meteo := openmeteo.New(cfg.OpenMeteoGeoURL, cfg.OpenMeteoWxURL, cfg.GeoTimeout, cfg.GeoRPS)
		cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer cache.Close()
		seeder = app.NewSeedService(repo,
			app.NewLookupService(meteo, meteo, cache, cfg.CacheTTL),
			app.NewSelectionEngine(repo, geo, app.SelectionConfig{
				InitialRadiusKm: cfg.RadiusKm,
				MaxRadiusKm:     cfg.MaxRadiusKm,
				MaxPOIs:         cfg.MaxPOIs,
				MaxRestaurants:  cfg.MaxRestaurants,
			}))
	}

	workers := cfg.SeedWorkers
	if workers < 1 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	var (
		wg       sync.WaitGroup
		inserted atomic.Int64
		failed   atomic.Int64
	)

	for _, city := range shared.SeedCities {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(c shared.SeedCity) {
			defer wg.Done()
			defer sem.Release(1)

			n, err := seeder.SeedCity(ctx, c.Location, c.POIs, c.Restaurants)
			inserted.Add(int64(n))
			if err != nil {
				failed.Add(1)
				log.Warn().Str("city", c.Location).Err(err).Msg("seed failed")
				return
			}
			log.Info().Str("city", c.Location).Int("inserted", n).Msg("seed ok")

			if !*warm {
				return
			}
			acts, rests, err := seeder.WarmCity(ctx, c.Location)
			if err != nil {
				log.Warn().Str("city", c.Location).Err(err).Msg("warm-up failed")
				return
			}
			log.Info().Str("city", c.Location).Int("activities", acts).Int("restaurants", rests).Msg("warm-up ok")
		}(city)
	}

	wg.Wait()
	log.Info().Int64("inserted", inserted.Load()).Int64("failed_cities", failed.Load()).Msg("seeding completed")
}
