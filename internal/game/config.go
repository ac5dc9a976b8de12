package game

import (
	"os"
	"strconv"

	"github.com/samdwyer/cryptrunner/internal/world"
)

// Config holds game configuration options, read from the environment.
// Every field has a playable default; malformed values fall back to it.
type Config struct {
	// Seed for random number generation, reproducing dungeon layout and
	// enemy choice. A seed of 0 means derive one from the current time.
	Seed int64

	// Dungeon generation parameters.
	Width    int
	Height   int
	MaxRooms int
	RoomMin  int
	RoomMax  int
}

// DefaultConfig returns the out-of-the-box configuration.
func DefaultConfig() Config {
	return Config{
		Seed:     0,
		Width:    30,
		Height:   30,
		MaxRooms: 6,
		RoomMin:  3,
		RoomMax:  6,
	}
}

// LoadConfig builds a Config from CRYPTRUNNER_* environment variables,
// falling back to defaults for anything unset or unparsable.
func LoadConfig() Config {
	cfg := DefaultConfig()
	cfg.Seed = envInt64("CRYPTRUNNER_SEED", cfg.Seed)
	cfg.Width = envInt("CRYPTRUNNER_WIDTH", cfg.Width)
	cfg.Height = envInt("CRYPTRUNNER_HEIGHT", cfg.Height)
	cfg.MaxRooms = envInt("CRYPTRUNNER_MAX_ROOMS", cfg.MaxRooms)
	cfg.RoomMin = envInt("CRYPTRUNNER_ROOM_MIN", cfg.RoomMin)
	cfg.RoomMax = envInt("CRYPTRUNNER_ROOM_MAX", cfg.RoomMax)

	if cfg.RoomMin < 1 {
		cfg.RoomMin = 1
	}
	if cfg.RoomMax < cfg.RoomMin {
		cfg.RoomMax = cfg.RoomMin
	}
	return cfg
}

// WorldParams converts the config into dungeon generation parameters.
func (c Config) WorldParams() world.Params {
	return world.Params{
		Width:    c.Width,
		Height:   c.Height,
		MaxRooms: c.MaxRooms,
		RoomMin:  c.RoomMin,
		RoomMax:  c.RoomMax,
	}
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
