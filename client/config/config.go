package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/cbodonnell/arena/pkg/log"
	"github.com/joho/godotenv"
)

const (
	EnvServerAddress   = "ARENA_SERVER_ADDRESS"
	EnvLogLevel        = "ARENA_LOG_LEVEL"
	EnvPreferencesPath = "ARENA_PREFERENCES_PATH"
	EnvRecordPath      = "ARENA_RECORD_PATH"
	EnvReplayPath      = "ARENA_REPLAY_PATH"
	EnvDebug           = "ARENA_DEBUG"
)

const (
	DefaultServerAddress   = "ws://localhost:8080"
	DefaultPreferencesPath = "arena.db"
)

type Config struct {
	// ServerAddress prefills the menu when no address was saved.
	ServerAddress string
	LogLevel      log.LogLevel
	// PreferencesPath is the SQLite file holding saved preferences, empty to disable.
	PreferencesPath string
	// RecordPath, when set, records every inbound frame to this file.
	RecordPath string
	// ReplayPath, when set, replays a recording instead of dialing a server.
	ReplayPath string
	Debug      bool
}

func Default() Config {
	return Config{
		ServerAddress:   DefaultServerAddress,
		LogLevel:        log.LogLevelInfo,
		PreferencesPath: DefaultPreferencesPath,
	}
}

// Load reads the given .env files, or ./.env when none are named, into the
// process environment and builds a Config from it. Missing files are skipped.
// Variables already set in the environment win over the files.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.Debug("No env file at %s", f)
				continue
			}
			return Config{}, fmt.Errorf("failed to load env file %s: %v", f, err)
		}
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from lookup, falling back to Default for unset
// or empty variables.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	c := Default()
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		return v, ok && v != ""
	}

	if v, ok := get(EnvServerAddress); ok {
		c.ServerAddress = v
	}
	if v, ok := get(EnvLogLevel); ok {
		level, err := log.ParseLogLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %v", EnvLogLevel, err)
		}
		c.LogLevel = level
	}
	if v, ok := lookup(EnvPreferencesPath); ok {
		// set but empty disables persistence
		c.PreferencesPath = v
	}
	if v, ok := get(EnvRecordPath); ok {
		c.RecordPath = v
	}
	if v, ok := get(EnvReplayPath); ok {
		c.ReplayPath = v
	}
	if v, ok := get(EnvDebug); ok {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %v", EnvDebug, err)
		}
		c.Debug = debug
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports settings that cannot be combined. Callers overriding
// fields after Load should validate again.
func (c Config) Validate() error {
	if c.RecordPath != "" && c.ReplayPath != "" {
		return fmt.Errorf("%s and %s cannot both be set", EnvRecordPath, EnvReplayPath)
	}
	return nil
}
