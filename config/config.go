package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/kahgeh/frontend/utility"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	portKey       = "PORT"
	logLevelKey   = "LOG_LEVEL"
	accessLogKey  = "ACCESS_LOG"
	corsMaxAgeKey = "CORS_MAX_AGE"

	// DefaultPort is bound when PORT is unset
	DefaultPort uint16 = 3001
)

// Config holds the process settings read from the environment
type Config struct {
	Port       uint16
	LogLevel   log.Level
	AccessLog  bool
	CorsMaxAge int
}

// LookupFunc has the signature of os.LookupEnv
type LookupFunc func(key string) (string, bool)

// Load reads the configuration from the process environment
func Load() (*Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from lookup, applying defaults for unset or empty keys
func FromLookup(lookup LookupFunc) (*Config, error) {
	config := &Config{
		Port:     DefaultPort,
		LogLevel: log.InfoLevel,
	}

	if value, ok := get(lookup, portKey); ok {
		port, err := utility.ParsePort(value)
		if err != nil {
			return nil, errors.Wrap(err, portKey)
		}
		config.Port = port
	}

	if value, ok := get(lookup, logLevelKey); ok {
		level, err := log.ParseLevel(value)
		if err != nil {
			return nil, errors.Wrap(err, logLevelKey)
		}
		config.LogLevel = level
	}

	if value, ok := get(lookup, accessLogKey); ok {
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: invalid boolean %q", accessLogKey, value)
		}
		config.AccessLog = enabled
	}

	if value, ok := get(lookup, corsMaxAgeKey); ok {
		seconds, err := strconv.Atoi(value)
		if err != nil || seconds < 0 {
			return nil, errors.Errorf("%s: invalid number of seconds %q", corsMaxAgeKey, value)
		}
		config.CorsMaxAge = seconds
	}

	return config, nil
}

func get(lookup LookupFunc, key string) (string, bool) {
	value, ok := lookup(key)
	value = strings.TrimSpace(value)
	return value, ok && value != ""
}
