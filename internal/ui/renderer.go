package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/cryptrunner/internal/entity"
	"github.com/samdwyer/cryptrunner/internal/world"
)

const healthBarWidth = 20

// Renderer draws the game to the screen. Draw calls are fire-and-forget;
// the simulation never reads anything back from here.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws one frame: dungeon tiles, actors at their rounded cells, the
// HUD, and the game-over banner when the session has ended.
func (r *Renderer) Render(dungeon *world.Dungeon, player, enemy *entity.Actor, gameOver bool) {
	r.screen.Clear()

	for y := 0; y < dungeon.Height; y++ {
		for x := 0; x < dungeon.Width; x++ {
			tile := dungeon.GetTile(x, y)
			r.screen.SetContent(x, y, tile.Rune(), r.getTileStyle(tile))
		}
	}

	if enemy != nil && enemy.Alive() {
		style := tcell.StyleDefault.Foreground(enemy.Color())
		r.screen.SetContent(cell(enemy.X), cell(enemy.Z), enemy.Glyph, style)
	}

	playerStyle := tcell.StyleDefault.Foreground(player.Color()).Bold(true)
	r.screen.SetContent(cell(player.X), cell(player.Z), player.Glyph, playerStyle)

	r.renderHUD(dungeon, player, enemy)
	if gameOver {
		r.renderGameOver(dungeon)
	}

	r.screen.Show()
}

// renderHUD draws the player health bar and enemy status below the map.
func (r *Renderer) renderHUD(dungeon *world.Dungeon, player, enemy *entity.Actor) {
	pct := player.HealthPercent()
	filled := pct * healthBarWidth / 100
	bar := strings.Repeat("#", filled) + strings.Repeat("-", healthBarWidth-filled)

	line := fmt.Sprintf("HP [%s] %3d%%", bar, pct)
	if enemy != nil && enemy.Alive() {
		line += fmt.Sprintf("   %s %d/%d", enemy.Name, enemy.HP, enemy.MaxHP)
	}
	r.renderText(0, dungeon.Height, line, tcell.StyleDefault.Foreground(tcell.ColorWhite))
}

func (r *Renderer) renderGameOver(dungeon *world.Dungeon) {
	msg := "GAME OVER - press r to restart"
	x := (dungeon.Width - len(msg)) / 2
	if x < 0 {
		x = 0
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	r.renderText(x, dungeon.Height/2, msg, style)
}

func (r *Renderer) renderText(x, y int, msg string, style tcell.Style) {
	for i, ch := range msg {
		r.screen.SetContent(x+i, y, ch, style)
	}
}

// getTileStyle returns the appropriate style for a tile type.
func (r *Renderer) getTileStyle(tile world.Tile) tcell.Style {
	switch tile {
	case world.TileWall:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case world.TileFloor:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	default:
		return tcell.StyleDefault
	}
}

// cell rounds a continuous coordinate to the grid cell it occupies.
func cell(v float64) int {
	return int(math.Floor(v + 0.5))
}
