package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

const (
	// DefaultDtekURL is the utility's AJAX endpoint for house schedules.
	DefaultDtekURL = "https://www.dtek-krem.com.ua/ua/ajax"
	// DefaultSvitlobotURL returns the crowd-sourced power status rows.
	DefaultSvitlobotURL = "https://api.svitlobot.in.ua/website/getChannelsForMap"
	// DefaultFallbackImageURL is the pre-rendered schedule image used when
	// local rendering fails.
	DefaultFallbackImageURL = "https://y2.vyshgorod.in.ua/dtek_data/images/kyiv-region/today.png"
	// DefaultFontURL is the TTF used for schedule table rendering.
	DefaultFontURL = "https://github.com/google/fonts/raw/main/ofl/inter/Inter%5Bopsz%2Cwght%5D.ttf"
)

type Config struct {
	Port          string
	BotToken      string
	WebhookSecret string

	DtekURL       string
	DtekCSRFToken string
	DtekCookie    string
	DtekCity      string
	DtekStreet    string
	DtekHouse     string

	SvitlobotURL string
	PowerCities  string // comma-separated city allowlist for regional stats
	PowerRegion  string // display name for the stats line

	FallbackImageURL string
	FontURL          string
	RedisURL         string // optional; empty disables the shared image cache
	ImageCacheTTLSec int
}

// Load reads configuration from the environment. It returns an error naming
// every missing required variable so a misconfigured deploy fails before the
// first webhook arrives.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		BotToken:      os.Getenv("BOT_TOKEN"),
		WebhookSecret: os.Getenv("WEBHOOK_SECRET"),

		DtekURL:       getEnv("DTEK_URL", DefaultDtekURL),
		DtekCSRFToken: os.Getenv("DTEK_CSRF_TOKEN"),
		DtekCookie:    os.Getenv("DTEK_COOKIE"),
		DtekCity:      os.Getenv("DTEK_CITY"),
		DtekStreet:    os.Getenv("DTEK_STREET"),
		DtekHouse:     os.Getenv("DTEK_HOUSE"),

		SvitlobotURL: getEnv("SVITLOBOT_URL", DefaultSvitlobotURL),
		PowerCities:  os.Getenv("POWER_CITIES"),
		PowerRegion:  getEnv("POWER_REGION", "Регіон"),

		FallbackImageURL: getEnv("FALLBACK_IMAGE_URL", DefaultFallbackImageURL),
		FontURL:          getEnv("FONT_URL", DefaultFontURL),
		RedisURL:         os.Getenv("REDIS_URL"),
		ImageCacheTTLSec: getEnvInt("IMAGE_CACHE_TTL", 86400),
	}

	required := map[string]string{
		"BOT_TOKEN":       cfg.BotToken,
		"WEBHOOK_SECRET":  cfg.WebhookSecret,
		"DTEK_CSRF_TOKEN": cfg.DtekCSRFToken,
		"DTEK_COOKIE":     cfg.DtekCookie,
		"DTEK_CITY":       cfg.DtekCity,
		"DTEK_STREET":     cfg.DtekStreet,
		"DTEK_HOUSE":      cfg.DtekHouse,
	}
	var missing []string
	for name, val := range required {
		if val == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

// PowerCityList splits the comma-separated allowlist, trimming blanks.
func (c *Config) PowerCityList() []string {
	var cities []string
	for _, part := range strings.Split(c.PowerCities, ",") {
		if city := strings.TrimSpace(part); city != "" {
			cities = append(cities, city)
		}
	}
	return cities
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}
