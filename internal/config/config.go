// Package config resolves the §6.3 configuration options from flags,
// environment variables, and an optional .env file, in the layering
// the pack's only config loader (pkg/config's Load) establishes.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config mirrors spec §6.3 exactly.
type Config struct {
	DatasetPath         string
	Phase2Seconds       int
	MinConflictsIters   int
	ClassPreferredRooms map[string][]string // class name -> physical room names
	PhysicalRoomPool    int                 // generic physical rooms available beyond rr
	RandomSeed          int64
	HasRandomSeed       bool

	MetricsAddr string
	DatabaseURL string
	LogDebug    bool
}

const envPrefix = "SCHEDULE"

// Load resolves Config from (in increasing precedence) built-in
// defaults, an optional .env file, and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{
		DatasetPath:       v.GetString("dataset_path"),
		Phase2Seconds:     v.GetInt("phase2_seconds"),
		MinConflictsIters: v.GetInt("min_conflicts_iters"),
		PhysicalRoomPool:  v.GetInt("physical_room_pool"),
		MetricsAddr:       v.GetString("metrics_addr"),
		DatabaseURL:       v.GetString("database_url"),
		LogDebug:          v.GetBool("log_debug"),
	}

	if seed := v.GetString("random_seed"); seed != "" {
		cfg.RandomSeed = v.GetInt64("random_seed")
		cfg.HasRandomSeed = true
	}

	cfg.ClassPreferredRooms = parseClassPreferredRooms(v.GetStringMapString("class_preferred_rooms"))

	return cfg, nil
}

// Seed returns RandomSeed if one was configured, otherwise a seed
// derived from the monotonic clock, matching spec §6.3 and §9's
// reproducibility note.
func (c *Config) Seed() int64 {
	if c.HasRandomSeed {
		return c.RandomSeed
	}
	return time.Now().UnixNano()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("phase2_seconds", 60)
	v.SetDefault("min_conflicts_iters", 1000)
	v.SetDefault("physical_room_pool", 8)
	v.SetDefault("metrics_addr", "")
	v.SetDefault("database_url", "")
	v.SetDefault("log_debug", false)
}

// parseClassPreferredRooms takes the class -> "room1|room2" map that
// viper's GetStringMapString returns and splits each value on "|" into a
// room name list; a value with no room names maps to nil.
func parseClassPreferredRooms(raw map[string]string) map[string][]string {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string][]string, len(raw))
	for class, rooms := range raw {
		var names []string
		for _, name := range strings.Split(rooms, "|") {
			if trimmed := strings.TrimSpace(name); trimmed != "" {
				names = append(names, trimmed)
			}
		}
		out[class] = names
	}
	return out
}
