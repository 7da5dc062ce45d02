package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/abrezinsky/evote/internal/auth"
)

// Config holds runtime configuration
type Config struct {
	Port          int
	DBPath        string
	JWTSecret     string
	TokenTTL      time.Duration
	AdminEmail    string
	AdminPassword string
	LogLevel      string
	LogFormat     string
	CORSOrigins   []string
	VoteRate      float64
	VoteBurst     int
	ScheduleSpec  string
	BaseURL       string
	ShowVersion   bool
	// TrustProxy honours X-Forwarded-For / X-Real-IP from a reverse proxy
	TrustProxy bool

	// GeneratedSecret is set when no JWT secret was configured and one was generated
	GeneratedSecret bool
	// GeneratedPassword is set when no admin password was configured and one was generated
	GeneratedPassword bool
}

// Addr returns the listen address
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads .env (if present), the environment and then command line flags.
// Flags override environment values.
func Load(args []string) (Config, error) {
	_ = godotenv.Load()
	return parse(args, os.Stderr)
}

func parse(args []string, output io.Writer) (Config, error) {
	var cfg Config
	var origins string

	fs := flag.NewFlagSet("evote", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.IntVar(&cfg.Port, "port", getEnvInt("EVOTE_PORT", 8080), "HTTP server port")
	fs.StringVar(&cfg.DBPath, "db", getEnv("EVOTE_DB", "evote.db"), "SQLite database path")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", getEnv("EVOTE_JWT_SECRET", ""), "Secret used to sign session tokens (generated if not set)")
	fs.DurationVar(&cfg.TokenTTL, "token-ttl", getEnvDuration("EVOTE_TOKEN_TTL", 24*time.Hour), "Session token lifetime")
	fs.StringVar(&cfg.AdminEmail, "admin-email", getEnv("EVOTE_ADMIN_EMAIL", "admin@evote.local"), "Bootstrap admin email")
	fs.StringVar(&cfg.AdminPassword, "admin-password", getEnv("EVOTE_ADMIN_PASSWORD", ""), "Bootstrap admin password (generated if not set)")
	fs.StringVar(&cfg.LogLevel, "loglevel", getEnv("EVOTE_LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "logformat", getEnv("EVOTE_LOG_FORMAT", "text"), "Log format (text, json)")
	fs.StringVar(&origins, "cors-origins", getEnv("EVOTE_CORS_ORIGINS", "http://localhost:5173"), "Comma separated list of allowed CORS origins")
	fs.Float64Var(&cfg.VoteRate, "vote-rate", getEnvFloat("EVOTE_VOTE_RATE", 1), "Vote requests per second allowed per client")
	fs.IntVar(&cfg.VoteBurst, "vote-burst", getEnvInt("EVOTE_VOTE_BURST", 5), "Vote request burst allowed per client")
	fs.StringVar(&cfg.ScheduleSpec, "schedule", getEnv("EVOTE_SCHEDULE_SPEC", "@every 30s"), "Cron spec for closing elections on schedule")
	fs.StringVar(&cfg.BaseURL, "base-url", getEnv("EVOTE_BASE_URL", ""), "Public base URL encoded in access code QR images (detected if not set)")
	fs.BoolVar(&cfg.TrustProxy, "trust-proxy", getEnvBool("EVOTE_TRUST_PROXY", false), "Take client addresses from proxy headers (only behind a trusted reverse proxy)")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.CORSOrigins = splitList(origins)

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = auth.GenerateSecret()
		cfg.GeneratedSecret = true
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = auth.GeneratePassword()
		cfg.GeneratedPassword = true
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that configured values are usable
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.DBPath == "" {
		return fmt.Errorf("database path is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("jwt secret is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token ttl must be positive, got %s", c.TokenTTL)
	}
	if c.VoteRate <= 0 {
		return fmt.Errorf("vote rate must be positive, got %g", c.VoteRate)
	}
	if c.VoteBurst < 1 {
		return fmt.Errorf("vote burst must be at least 1, got %d", c.VoteBurst)
	}
	if c.ScheduleSpec == "" {
		return fmt.Errorf("schedule spec is required")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log format must be text or json, got %q", c.LogFormat)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
