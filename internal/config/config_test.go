package config

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"TAQUEANDO_API_URL", "TAQUEANDO_TOKEN", "TAQUEANDO_TIMEZONE", "HTTP_TIMEOUT_SECONDS", "CONSOLE_ADDR", "CONSOLE_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, DefaultTimezone, cfg.Timezone)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, DefaultAddr, cfg.Addr)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Empty(t, cfg.Token)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TAQUEANDO_API_URL", "http://localhost:3000/")
	t.Setenv("TAQUEANDO_TOKEN", " abc ")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "3")
	t.Setenv("CONSOLE_ALLOWED_ORIGINS", "http://a, http://b,")

	cfg := Load()

	assert.Equal(t, "http://localhost:3000", cfg.APIURL)
	assert.Equal(t, "abc", cfg.Token)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, []string{"http://a", "http://b"}, cfg.AllowedOrigins)
}

func TestLoad_InvalidTimeoutFallsBack(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT_SECONDS", "soon")
	assert.Equal(t, 10*time.Second, Load().HTTPTimeout)
}

func TestConfig_Location(t *testing.T) {
	loc := Config{Timezone: DefaultTimezone}.Location()
	_, offset := time.Date(2025, 5, 1, 12, 0, 0, 0, loc).Zone()
	assert.Equal(t, -4*60*60, offset)

	fallback := Config{Timezone: "Nowhere/Atlantis"}.Location()
	_, offset = time.Date(2025, 5, 1, 12, 0, 0, 0, fallback).Zone()
	assert.Equal(t, -4*60*60, offset)
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(&buf)

	LogError(logger, "usecase", "Submit", "posting arqueo", map[string]int{"id": 1}, errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, `"module":"usecase"`)
	assert.Contains(t, out, `"funcName":"Submit"`)
	assert.Contains(t, out, `"msg":"boom"`)
	assert.Contains(t, out, `"data"`)
}
