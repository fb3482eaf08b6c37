package config

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

// Classification is the resolved environment category used to pick a
// dependency default.
type Classification int

const (
	// Production is the catch-all classification.
	Production Classification = iota
	// Testing marks an automated test run.
	Testing
	// Preview marks an interactive preview/sandbox environment.
	Preview
)

func (c Classification) String() string {
	switch c {
	case Testing:
		return "testing"
	case Preview:
		return "preview"
	default:
		return "production"
	}
}

// Config is the central typed configuration struct.
type Config struct {
	App AppConfig
}

type AppConfig struct {
	Name    string
	Env     string // production | testing | preview
	Debug   bool
	Port    string
	Preview bool // APP_PREVIEW, wins over Env
}

// Load reads .env (if present) and populates a Config from environment
// variables. Call once at bootstrap: cfg := config.Load()
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	return &Config{
		App: AppConfig{
			Name:    env("APP_NAME", "GoInject"),
			Env:     env("APP_ENV", "production"),
			Debug:   envBool("APP_DEBUG", false),
			Port:    env("APP_PORT", "8000"),
			Preview: envBool("APP_PREVIEW", false),
		},
	}
}

// Classification maps the loaded environment onto a category. The
// preview indicator wins over Env, and a testing Env wins over the
// production catch-all.
func (c *Config) Classification() Classification {
	if c.App.Preview {
		return Preview
	}
	return classifyEnv(c.App.Env)
}

func classifyEnv(env string) Classification {
	switch strings.ToLower(env) {
	case "preview", "sandbox":
		return Preview
	case "testing", "test":
		return Testing
	default:
		return Production
	}
}

// ── Process-wide probe ───────────────────────────────────────────────────────

var (
	overrideMu sync.RWMutex
	override   *Classification
)

// Classify reports the process classification. An explicit
// SetClassification pin wins; otherwise APP_PREVIEW and APP_ENV are
// probed, preview over testing over production.
func Classify() Classification {
	overrideMu.RLock()
	pinned := override
	overrideMu.RUnlock()
	if pinned != nil {
		return *pinned
	}
	if envBool("APP_PREVIEW", false) {
		return Preview
	}
	return classifyEnv(os.Getenv("APP_ENV"))
}

// SetClassification pins the process classification, bypassing the
// environment probe. Intended for bootstrap code and test harnesses
// that know the classification outright.
func SetClassification(c Classification) {
	overrideMu.Lock()
	defer overrideMu.Unlock()
	override = &c
}

// ResetClassification removes the pin so Classify probes the
// environment again.
func ResetClassification() {
	overrideMu.Lock()
	defer overrideMu.Unlock()
	override = nil
}

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	return envBool(key, defaultVal)
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
