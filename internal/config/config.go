package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

const (
	DefaultAPIURL   = "https://server-ss1i.onrender.com"
	DefaultTimezone = "America/La_Paz"
	DefaultAddr     = ":8081"
)

// Config is the runtime configuration of the console, read from the
// environment after loading an optional .env file.
type Config struct {
	APIURL         string
	Token          string
	SessionFile    string
	Timezone       string
	HTTPTimeout    time.Duration
	LogLevel       string
	Addr           string
	AllowedOrigins []string
}

// Load reads .env (a missing file is fine) and then the environment.
func Load() Config {
	godotenv.Load()

	return Config{
		APIURL:         strings.TrimRight(stringFromEnv("TAQUEANDO_API_URL", DefaultAPIURL), "/"),
		Token:          strings.TrimSpace(os.Getenv("TAQUEANDO_TOKEN")),
		SessionFile:    stringFromEnv("TAQUEANDO_SESSION_FILE", defaultSessionFile()),
		Timezone:       stringFromEnv("TAQUEANDO_TIMEZONE", DefaultTimezone),
		HTTPTimeout:    time.Duration(intFromEnv("HTTP_TIMEOUT_SECONDS", 10)) * time.Second,
		LogLevel:       stringFromEnv("LOG_LEVEL", "info"),
		Addr:           stringFromEnv("CONSOLE_ADDR", DefaultAddr),
		AllowedOrigins: listFromEnv("CONSOLE_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
	}
}

// Location resolves the business timezone. Day boundaries are always computed
// in this zone; an unknown name falls back to a fixed UTC-4 offset.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.FixedZone("BOT", -4*60*60)
	}
	return loc
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".taqueando-session"
	}
	return filepath.Join(home, ".taqueando", "session")
}

func stringFromEnv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func intFromEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func listFromEnv(key string, def []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
