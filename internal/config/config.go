package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultMenuAPIURL = "https://spring-menu-production.up.railway.app"
	defaultSiteAPIURL = "https://faithful-charisma-production.up.railway.app"
	defaultDSN        = "host=localhost user=postgres password=postgres dbname=backoffice port=5432 sslmode=disable"
	defaultCORS       = "http://localhost:5173"
)

type Config struct {
	HTTPPort    string
	CORSOrigins string

	MenuAPIURL      string // foods, chefs, orders, reservations, table tokens
	SiteAPIURL      string // categories, about, locations, messages, visits, users
	UpstreamTimeout time.Duration

	JWTSecret  string
	SessionTTL time.Duration

	DatabaseDriver string // postgres | sqlite
	DatabaseDSN    string

	RedisAddr       string // boş ise oturum iptalleri bellekte tutulur
	KafkaBroker     string
	KafkaAuditTopic string

	PollInterval    time.Duration
	PageSize        int
	DefaultLanguage string
}

// Load reads .env (if any) and the environment; it stops the process on invalid settings.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] .env bulunamadı, ortam değişkenleri kullanılıyor")
	}

	cfg, err := FromEnv(os.Getenv)
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}

	if cfg.DatabaseDSN == defaultDSN {
		log.Println("[WARN] DATABASE_DSN varsayılan değer kullanılıyor, production için kendi bağlantını tanımla.")
	}
	if cfg.CORSOrigins == defaultCORS {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS varsayılan değer kullanılıyor, production için kendi domain'ini tanımla.")
	}
	if cfg.RedisAddr == "" {
		log.Println("[WARN] REDIS_ADDR tanımlı değil, çıkış yapılan oturumlar sadece bu süreçte geçersiz sayılır.")
	}

	return cfg
}

// FromEnv builds a Config from a lookup function so tests can inject values.
func FromEnv(lookup func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := lookup(key); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		HTTPPort:        get("HTTP_PORT", "8080"),
		CORSOrigins:     get("CORS_ALLOWED_ORIGINS", defaultCORS),
		MenuAPIURL:      get("MENU_API_URL", defaultMenuAPIURL),
		SiteAPIURL:      get("SITE_API_URL", defaultSiteAPIURL),
		JWTSecret:       get("JWT_SECRET", ""),
		DatabaseDriver:  get("DATABASE_DRIVER", "postgres"),
		DatabaseDSN:     get("DATABASE_DSN", defaultDSN),
		RedisAddr:       get("REDIS_ADDR", ""),
		KafkaBroker:     get("KAFKA_BROKER", ""),
		KafkaAuditTopic: get("KAFKA_AUDIT_TOPIC", "backoffice.audit"),
		DefaultLanguage: get("DEFAULT_LANGUAGE", "en"),
	}

	var err error
	if cfg.UpstreamTimeout, err = parseDuration(get("UPSTREAM_TIMEOUT", "15s"), "UPSTREAM_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = parseDuration(get("SESSION_TTL", "24h"), "SESSION_TTL"); err != nil {
		return nil, err
	}
	if cfg.PollInterval, err = parseDuration(get("POLL_INTERVAL", "30s"), "POLL_INTERVAL"); err != nil {
		return nil, err
	}

	cfg.PageSize, err = strconv.Atoi(get("PAGE_SIZE", "5"))
	if err != nil || cfg.PageSize <= 0 {
		return nil, fmt.Errorf("PAGE_SIZE pozitif bir tam sayı olmalı: %q", lookup("PAGE_SIZE"))
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment değişkeni tanımlanmamış")
	}
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET en az 32 karakter olmalıdır")
	}

	switch cfg.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("DATABASE_DRIVER desteklenmiyor: %q", cfg.DatabaseDriver)
	}

	return cfg, nil
}

func parseDuration(v, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s geçersiz süre: %q", key, v)
	}
	return d, nil
}
