package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string
	CORSOrigins []string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	CacheTTL    time.Duration
	// POST /v1/plans per client IP and minute; 0 disables the limit
	PlanRatePerMin int

	// selection and assembly
	RadiusKm       float64
	MaxRadiusKm    float64
	MaxPOIs        int
	MaxRestaurants int
	PoolCap        int
	ShuffleSeed    int64
	MaxTripDays    int

	// outbound providers
	OverpassMirrors []string
	GeoTimeout      time.Duration
	GeoRPS          float64
	OpenMeteoGeoURL string
	OpenMeteoWxURL  string
	OpenAIKey       string
	OpenAIModel     string
	TavilyKey       string
	EventFeeds      []string

	SeedWorkers int
}

var defaultMirrors = []string{
	"https://overpass-api.de/api/interpreter",
	"https://overpass.kumi.systems/api/interpreter",
	"https://overpass.openstreetmap.ru/api/interpreter",
}

// Load reads the environment, after merging an optional .env file
// (existing variables win).
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg(".env loaded")
	}

	mirrors := list("OVERPASS_MIRRORS")
	if u := env("OVERPASS_URL", ""); u != "" {
		mirrors = append([]string{u}, mirrors...)
	}
	if len(mirrors) == 0 {
		mirrors = append(mirrors, defaultMirrors...)
	}

	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		LogLevel:    env("LOG_LEVEL", "info"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		CORSOrigins: list("CORS_ORIGINS"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/concierge?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,

		RadiusKm:       atof("RADIUS_KM", 5),
		MaxRadiusKm:    atof("MAX_RADIUS_KM", 15),
		MaxPOIs:        atoi("MAX_POIS", 40),
		MaxRestaurants: atoi("MAX_RESTAURANTS", 40),
		PoolCap:        atoi("POOL_CAP", 60),
		ShuffleSeed:    int64(atoi("SHUFFLE_SEED", 0)),
		MaxTripDays:    atoi("MAX_TRIP_DAYS", 30),

		OverpassMirrors: mirrors,
		GeoTimeout:      time.Duration(atoi("GEO_TIMEOUT_SECONDS", 15)) * time.Second,
		GeoRPS:          atof("GEO_RPS", 2),
		OpenMeteoGeoURL: env("OPENMETEO_GEOCODE_URL", "https://geocoding-api.open-meteo.com/v1/search"),
		OpenMeteoWxURL:  env("OPENMETEO_FORECAST_URL", "https://api.open-meteo.com/v1/forecast"),
		OpenAIKey:       env("OPENAI_API_KEY", ""),
		OpenAIModel:     env("OPENAI_MODEL", "gpt-4o-mini"),
		TavilyKey:       env("TAVILY_API_KEY", ""),
		EventFeeds:      list("EVENT_FEEDS"),

		PlanRatePerMin: atoi("PLAN_RATE_PER_MIN", 30),
		SeedWorkers:    atoi("SEED_WORKERS", 4),
	}
	if c.MaxRadiusKm < c.RadiusKm {
		log.Warn().Float64("radius_km", c.RadiusKm).Float64("max_radius_km", c.MaxRadiusKm).
			Msg("MAX_RADIUS_KM below RADIUS_KM; geo search will only use the initial radius")
		c.MaxRadiusKm = c.RadiusKm
	}
	if c.OpenAIKey == "" {
		log.Info().Msg("OPENAI_API_KEY is empty; free-text preferences disabled")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoi(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func atof(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func list(k string) []string {
	var out []string
	for _, s := range strings.Split(os.Getenv(k), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
