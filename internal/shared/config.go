package shared

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	DatabaseURL string
	AutoMigrate bool
	SeedOnStart bool

	RedisAddr string
	RedisPass string
	RedisDB   int
	CacheTTL  time.Duration

	RequestTimeout time.Duration
	CORSOrigin     string
	AdminJWTSecret string
	// TrustProxy takes the client address from X-Forwarded-For/X-Real-IP.
	// Only set it behind a proxy that overwrites those headers.
	TrustProxy bool

	InquiryRPS   float64
	InquiryBurst int

	NotifyTo          []string
	SMTPHost          string
	SMTPPort          int
	SMTPUser          string
	SMTPPass          string
	SMTPFrom          string
	WorkerConcurrency int
}

var defaults = map[string]any{
	"APP_ENV":                  "prod",
	"HTTP_ADDR":                ":8080",
	"METRICS_ADDR":             "",
	"DATABASE_URL":             "",
	"AUTO_MIGRATE":             true,
	"SEED_ON_START":            true,
	"REDIS_ADDR":               "",
	"REDIS_PASSWORD":           "",
	"REDIS_DB":                 0,
	"CACHE_TTL_SECONDS":        300,
	"REQUEST_TIMEOUT_SECONDS":  15,
	"CORS_ORIGIN":              "*",
	"ADMIN_JWT_SECRET":         "",
	"TRUST_PROXY_HEADERS":      false,
	"INQUIRY_RATE_LIMIT_RPS":   1.0,
	"INQUIRY_RATE_LIMIT_BURST": 5,
	"NOTIFY_TO":                "",
	"SMTP_HOST":                "",
	"SMTP_PORT":                587,
	"SMTP_USERNAME":            "",
	"SMTP_PASSWORD":            "",
	"SMTP_FROM":                "noreply@landai.example",
	"WORKER_CONCURRENCY":       4,
}

// Load reads .env (when present) and the environment. CONFIG_FILE may point
// at a yaml/json/toml file using the same keys; the environment wins.
func Load() Config {
	_ = godotenv.Load()
	v := NewViper()
	if f := v.GetString("CONFIG_FILE"); f != "" {
		v.SetConfigFile(f)
		if err := v.ReadInConfig(); err != nil {
			log.Fatal().Err(err).Str("file", f).Msg("read config file")
		}
	}
	c := FromViper(v)
	if c.AdminJWTSecret == "" {
		log.Warn().Msg("ADMIN_JWT_SECRET is empty; property creation is open")
	}
	return c
}

func NewViper() *viper.Viper {
	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.AutomaticEnv()
	return v
}

func FromViper(v *viper.Viper) Config {
	return Config{
		AppEnv:            v.GetString("APP_ENV"),
		HTTPAddr:          v.GetString("HTTP_ADDR"),
		MetricsAddr:       v.GetString("METRICS_ADDR"),
		DatabaseURL:       strings.TrimSpace(v.GetString("DATABASE_URL")),
		AutoMigrate:       v.GetBool("AUTO_MIGRATE"),
		SeedOnStart:       v.GetBool("SEED_ON_START"),
		RedisAddr:         v.GetString("REDIS_ADDR"),
		RedisPass:         v.GetString("REDIS_PASSWORD"),
		RedisDB:           v.GetInt("REDIS_DB"),
		CacheTTL:          time.Duration(v.GetInt("CACHE_TTL_SECONDS")) * time.Second,
		RequestTimeout:    time.Duration(v.GetInt("REQUEST_TIMEOUT_SECONDS")) * time.Second,
		CORSOrigin:        v.GetString("CORS_ORIGIN"),
		AdminJWTSecret:    v.GetString("ADMIN_JWT_SECRET"),
		TrustProxy:        v.GetBool("TRUST_PROXY_HEADERS"),
		InquiryRPS:        v.GetFloat64("INQUIRY_RATE_LIMIT_RPS"),
		InquiryBurst:      v.GetInt("INQUIRY_RATE_LIMIT_BURST"),
		NotifyTo:          splitList(v.GetString("NOTIFY_TO")),
		SMTPHost:          v.GetString("SMTP_HOST"),
		SMTPPort:          v.GetInt("SMTP_PORT"),
		SMTPUser:          v.GetString("SMTP_USERNAME"),
		SMTPPass:          v.GetString("SMTP_PASSWORD"),
		SMTPFrom:          v.GetString("SMTP_FROM"),
		WorkerConcurrency: v.GetInt("WORKER_CONCURRENCY"),
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
