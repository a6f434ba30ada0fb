package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BackendFile      = "file"
	BackendFirestore = "firestore"

	defaultPort          = "8080"
	defaultStorePath     = "receipts.json"
	defaultStoreDocument = "default"
	defaultSeedCount     = 100
)

type Config struct {
	Port          string
	LogLevel      string
	LogFormat     string
	StoreBackend  string
	StorePath     string
	ProjectID     string
	StoreDocument string
	SeedCount     int
	SeedDisabled  bool

	// parseErrs holds environment values that were set but unreadable.
	parseErrs []error
}

// New loads .env when present, then reads the environment. Values already
// set in the environment win over .env.
func New() *Config {
	_ = godotenv.Load()
	return fromEnv()
}

func fromEnv() *Config {
	cfg := &Config{
		Port:          getEnv("PORT", defaultPort),
		LogLevel:      os.Getenv("LOGLEVEL"),
		LogFormat:     getEnv("LOGFORMAT", "cloudrun"),
		StoreBackend:  strings.ToLower(getEnv("STOREBACKEND", BackendFile)),
		StorePath:     getEnv("STOREPATH", defaultStorePath),
		ProjectID:     os.Getenv("PROJECTID"),
		StoreDocument: getEnv("STOREDOCUMENT", defaultStoreDocument),
	}
	cfg.SeedCount = getEnvInt("SEEDCOUNT", defaultSeedCount, &cfg.parseErrs)
	cfg.SeedDisabled = getEnvBool("SEEDDISABLED", false, &cfg.parseErrs)
	return cfg
}

func (c *Config) Validate() error {
	problems := append([]error(nil), c.parseErrs...)
	switch c.StoreBackend {
	case BackendFile:
		if c.StorePath == "" {
			problems = append(problems, errors.New("STOREPATH is required for the file backend"))
		}
	case BackendFirestore:
		if c.ProjectID == "" {
			problems = append(problems, errors.New("PROJECTID is required for the firestore backend"))
		}
	default:
		problems = append(problems, fmt.Errorf("STOREBACKEND %q is not one of file, firestore", c.StoreBackend))
	}
	if c.SeedCount < 0 {
		problems = append(problems, fmt.Errorf("SEEDCOUNT must not be negative, got %d", c.SeedCount))
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Errorf("PORT %q is not a number", c.Port))
	}
	return errors.Join(problems...)
}

// ---- Helpers ----

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// getEnvInt falls back when key is unset or empty. An unparsable value also
// falls back but is recorded in problems.
func getEnvInt(key string, fallback int, problems *[]error) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		*problems = append(*problems, fmt.Errorf("%s %q is not an integer", key, raw))
		return fallback
	}
	return v
}

func getEnvBool(key string, fallback bool, problems *[]error) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		*problems = append(*problems, fmt.Errorf("%s %q is not a boolean", key, raw))
		return fallback
	}
	return v
}
