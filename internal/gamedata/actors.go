package gamedata

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"

	"github.com/gdamore/tcell/v2"
)

// ActorDef defines an actor archetype loaded from actors.json.
type ActorDef struct {
	ID          string  `json:"id"`          // Unique identifier (e.g., "wraith")
	Name        string  `json:"name"`        // Display name (e.g., "Wraith")
	Glyph       string  `json:"glyph"`       // Single character for rendering
	Color       string  `json:"color"`       // Hex color code (e.g., "#AA33CC")
	HP          int     `json:"hp"`          // Maximum hit points
	Speed       float64 `json:"speed"`       // Movement speed in grid units per second
	Damage      int     `json:"damage"`      // Damage per successful attack
	SpawnWeight int     `json:"spawnWeight"` // Relative spawn frequency (enemies only)
}

// GlyphRune returns the glyph as a rune for rendering.
func (a *ActorDef) GlyphRune() rune {
	if len(a.Glyph) == 0 {
		return '?'
	}
	return rune(a.Glyph[0])
}

// TCellColor returns the actor's color, falling back to white on bad data.
func (a *ActorDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(a.Color)
	if err != nil {
		return tcell.ColorWhite
	}
	return color
}

// actorsFile is the on-disk structure of actors.json.
type actorsFile struct {
	Player  ActorDef   `json:"player"`
	Enemies []ActorDef `json:"enemies"`
}

func loadActorsFile() (*actorsFile, error) {
	content, err := dataFS.ReadFile("actors.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded actors.json: %w", err)
	}
	var file actorsFile
	if err := json.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("failed to parse actors.json: %w", err)
	}
	return &file, nil
}

// LoadPlayerDef loads the player definition from the embedded actors.json.
func LoadPlayerDef() (*ActorDef, error) {
	file, err := loadActorsFile()
	if err != nil {
		return nil, err
	}
	if file.Player.ID == "" {
		return nil, errors.New("actors.json has no player definition")
	}
	return &file.Player, nil
}

// EnemyRegistry holds loaded enemy definitions and provides spawning utilities.
type EnemyRegistry struct {
	enemies     []ActorDef
	totalWeight int
}

// NewEnemyRegistry creates a registry from enemy definitions.
func NewEnemyRegistry(enemies []ActorDef) *EnemyRegistry {
	totalWeight := 0
	for _, e := range enemies {
		totalWeight += e.SpawnWeight
	}
	return &EnemyRegistry{enemies: enemies, totalWeight: totalWeight}
}

// LoadEnemyRegistry loads a registry from the embedded actors.json.
func LoadEnemyRegistry() (*EnemyRegistry, error) {
	file, err := loadActorsFile()
	if err != nil {
		return nil, err
	}
	if len(file.Enemies) == 0 {
		return nil, errors.New("actors.json has no enemy definitions")
	}
	return NewEnemyRegistry(file.Enemies), nil
}

// SpawnRandom selects an enemy definition using weighted probability.
// Definitions with higher spawnWeight are more likely to be selected.
func (r *EnemyRegistry) SpawnRandom(rng *rand.Rand) *ActorDef {
	if r.totalWeight <= 0 || len(r.enemies) == 0 {
		return nil
	}

	roll := rng.Intn(r.totalWeight)
	cumulative := 0
	for i := range r.enemies {
		cumulative += r.enemies[i].SpawnWeight
		if roll < cumulative {
			return &r.enemies[i]
		}
	}
	return &r.enemies[0]
}

// GetByID returns the enemy definition with the given ID, or nil if not found.
func (r *EnemyRegistry) GetByID(id string) *ActorDef {
	for i := range r.enemies {
		if r.enemies[i].ID == id {
			return &r.enemies[i]
		}
	}
	return nil
}

// Count returns the number of enemy types in the registry.
func (r *EnemyRegistry) Count() int {
	return len(r.enemies)
}
