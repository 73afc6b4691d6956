package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Config holds application level configuration loaded from file, environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	SessionSecret   string
	SessionTTL      time.Duration
	CookieSecure    bool
	ShutdownTimeout time.Duration
	NotifyWorkers   int
	NotifyQueue     int
	RateLimitRPS    float64
	RateLimitBurst  int
	CORSOrigins     []string
	SeedDemo        bool
	LogLevel        string
}

const (
	defaultRunAddress      = ":8080"
	defaultRedisAddr       = "localhost:6379"
	defaultSessionSecret   = "change-me-in-production"
	defaultSessionTTL      = 24 * time.Hour
	defaultShutdownTimeout = 10 * time.Second
	defaultNotifyWorkers   = 4
	defaultNotifyQueue     = 256
	defaultRateLimitRPS    = 5.0
	defaultRateLimitBurst  = 10
	defaultLogLevel        = "info"
)

// Load parses configuration from an optional config file, .env, environment variables and flags.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

// configFileArg finds -c before the full flag set is parsed, since the file
// supplies the defaults the other flags override.
func configFileArg(args []string) (string, bool) {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		name := strings.TrimLeft(arg, "-")
		if name == arg {
			continue
		}
		switch {
		case name == "c":
			if i+1 < len(args) {
				return args[i+1], true
			}
			return "", false
		case strings.HasPrefix(name, "c="):
			return strings.TrimPrefix(name, "c="), true
		}
	}
	return "", false
}

func load(args []string, env envLookup) (*Config, error) {
	lookup := env
	path, ok := configFileArg(args)
	if !ok {
		path, ok = env("CONFIG_FILE")
	}
	if ok && path != "" {
		file, err := readFile(path)
		if err != nil {
			return nil, err
		}
		lookup = layered(env, file)
	}

	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		RedisAddr:       getString(lookup, "REDIS_ADDR", defaultRedisAddr),
		RedisPassword:   getString(lookup, "REDIS_PASSWORD", ""),
		RedisDB:         getInt(lookup, "REDIS_DB", 0),
		SessionSecret:   getString(lookup, "SESSION_SECRET", defaultSessionSecret),
		SessionTTL:      getDuration(lookup, "SESSION_TTL", defaultSessionTTL),
		CookieSecure:    getBool(lookup, "COOKIE_SECURE", false),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		NotifyWorkers:   getInt(lookup, "NOTIFY_WORKERS", defaultNotifyWorkers),
		NotifyQueue:     getInt(lookup, "NOTIFY_QUEUE", defaultNotifyQueue),
		RateLimitRPS:    getFloat(lookup, "RATE_LIMIT_RPS", defaultRateLimitRPS),
		RateLimitBurst:  getInt(lookup, "RATE_LIMIT_BURST", defaultRateLimitBurst),
		CORSOrigins:     getList(lookup, "CORS_ORIGINS"),
		SeedDemo:        getBool(lookup, "SEED_DEMO", false),
		LogLevel:        getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	fs := flag.NewFlagSet("thermopolio", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		sessionTTLStr      = cfg.SessionTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		configFile         string
	)

	fs.StringVar(&configFile, "c", "", "YAML config file (overrides CONFIG_FILE)")
	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "Redis address for sessions")
	fs.StringVar(&cfg.SessionSecret, "session-secret", cfg.SessionSecret, "Secret for signing session cookies")
	fs.StringVar(&sessionTTLStr, "session-ttl", sessionTTLStr, "Session lifetime")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.NotifyWorkers, "notify-workers", cfg.NotifyWorkers, "Number of notification workers")
	fs.IntVar(&cfg.NotifyQueue, "notify-queue", cfg.NotifyQueue, "Notification queue capacity")
	fs.BoolVar(&cfg.SeedDemo, "seed-demo", cfg.SeedDemo, "Create demo accounts on start")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.SessionTTL, err = time.ParseDuration(sessionTTLStr); err != nil {
		return nil, fmt.Errorf("invalid session ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("SESSION_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read session secret file: %w", err)
		}
		cfg.SessionSecret = strings.TrimSpace(string(content))
	}

	if cfg.NotifyWorkers <= 0 {
		cfg.NotifyWorkers = defaultNotifyWorkers
	}

	if cfg.NotifyQueue <= 0 {
		cfg.NotifyQueue = defaultNotifyQueue
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.RateLimitRPS <= 0 {
		cfg.RateLimitRPS = defaultRateLimitRPS
	}

	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = defaultRateLimitBurst
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("session secret must not be empty")
	}

	return cfg, nil
}

// readFile loads a YAML/JSON/TOML config file whose keys mirror the environment variable names.
func readFile(path string) (envLookup, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return func(key string) (string, bool) {
		k := strings.ToLower(key)
		if !v.IsSet(k) {
			return "", false
		}
		raw := v.Get(k)
		if list, ok := raw.([]any); ok {
			return strings.Join(cast.ToStringSlice(list), ","), true
		}
		return cast.ToString(raw), true
	}, nil
}

func layered(primary, fallback envLookup) envLookup {
	return func(key string) (string, bool) {
		if v, ok := primary(key); ok && v != "" {
			return v, true
		}
		return fallback(key)
	}
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := cast.ToIntE(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(lookup envLookup, key string, def float64) float64 {
	if v, ok := lookup(key); ok && v != "" {
		if f, err := cast.ToFloat64E(v); err == nil {
			return f
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := cast.ToBoolE(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getList(lookup envLookup, key string) []string {
	v, ok := lookup(key)
	if !ok || v == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
