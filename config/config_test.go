package config

import (
	"testing"

	log "github.com/sirupsen/logrus"
)

func lookupFrom(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	}
}

func TestDefaults(t *testing.T) {
	config, err := FromLookup(lookupFrom(map[string]string{}))
	if err != nil {
		t.Fatal(err)
	}
	if config.Port != 3001 {
		t.Errorf("port = %d, want 3001", config.Port)
	}
	if config.LogLevel != log.InfoLevel {
		t.Errorf("log level = %v, want info", config.LogLevel)
	}
	if config.AccessLog {
		t.Error("access log should be off by default")
	}
	if config.CorsMaxAge != 0 {
		t.Errorf("cors max age = %d, want 0", config.CorsMaxAge)
	}
}

func TestPortFromEnvironment(t *testing.T) {
	config, err := FromLookup(lookupFrom(map[string]string{"PORT": "4000"}))
	if err != nil {
		t.Fatal(err)
	}
	if config.Port != 4000 {
		t.Errorf("port = %d, want 4000", config.Port)
	}
}

func TestEmptyPortFallsBackToDefault(t *testing.T) {
	config, err := FromLookup(lookupFrom(map[string]string{"PORT": ""}))
	if err != nil {
		t.Fatal(err)
	}
	if config.Port != DefaultPort {
		t.Errorf("port = %d, want %d", config.Port, DefaultPort)
	}
}

func TestLoadReadsProcessEnvironment(t *testing.T) {
	t.Setenv("PORT", "4000")
	t.Setenv("ACCESS_LOG", "true")
	config, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if config.Port != 4000 || !config.AccessLog {
		t.Errorf("unexpected config %+v", config)
	}
}

func TestOptionalSettings(t *testing.T) {
	config, err := FromLookup(lookupFrom(map[string]string{
		"LOG_LEVEL":    "debug",
		"ACCESS_LOG":   "1",
		"CORS_MAX_AGE": "600",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if config.LogLevel != log.DebugLevel || !config.AccessLog || config.CorsMaxAge != 600 {
		t.Errorf("unexpected config %+v", config)
	}
}

func TestInvalidValues(t *testing.T) {
	for _, env := range []map[string]string{
		{"PORT": "abc"},
		{"PORT": "70000"},
		{"PORT": "0"},
		{"LOG_LEVEL": "loud"},
		{"ACCESS_LOG": "maybe"},
		{"CORS_MAX_AGE": "-5"},
		{"CORS_MAX_AGE": "soon"},
	} {
		if _, err := FromLookup(lookupFrom(env)); err == nil {
			t.Errorf("expected error for %v", env)
		}
	}
}
