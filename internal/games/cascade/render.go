package cascade

import (
	"fmt"

	"github.com/vovakirdan/tui-cascade/internal/core"
	"github.com/vovakirdan/tui-cascade/internal/engine"
)

// Each field cell is drawn two characters wide so the blocks come out
// roughly square in a terminal.
const (
	cellWidth    = 2
	sidebarWidth = 18
	blockRune    = '█'
	flashRune    = '▓'
)

// requiredWidth is the minimum screen width for the field plus sidebar.
func (g *Game) requiredWidth() int {
	return g.size.Cols*cellWidth + 2 + sidebarWidth
}

// requiredHeight is the minimum screen height for the bordered field.
func (g *Game) requiredHeight() int {
	return g.size.Rows + 2
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boxW := g.eng.Cols()*cellWidth + 2
	boxH := g.eng.Rows() + 2
	boxX := (g.screenW - boxW - sidebarWidth) / 2
	if boxX < 0 {
		boxX = 0
	}
	boxY := (g.screenH - boxH) / 2
	if boxY < 0 {
		boxY = 0
	}

	dst.DrawBox(core.Rect{X: boxX, Y: boxY, W: boxW, H: boxH})
	g.renderField(dst, boxX+1, boxY+1)
	g.renderFallingPiece(dst, boxX+1, boxY+1)
	g.renderSidebar(dst, boxX+boxW+2, boxY)
	g.renderOverlays(dst, boxX+boxW/2, boxY+boxH/2)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", g.requiredWidth(), g.requiredHeight()))
}

// renderField draws the landed blocks, blinking the rows being erased.
func (g *Game) renderField(dst *core.Screen, fieldX, fieldY int) {
	flashOn := g.eng.FlashVisible()

	for y := 0; y < g.eng.Rows(); y++ {
		for x := 0; x < g.eng.Cols(); x++ {
			switch g.eng.CellStatus(y, x) {
			case engine.StatusOccupied:
				g.drawCell(dst, fieldX, fieldY, x, y, blockRune, g.eng.CellColor(y, x))
			case engine.StatusFlashing:
				if flashOn {
					g.drawCell(dst, fieldX, fieldY, x, y, flashRune, core.ColorWhite)
				}
			}
		}
	}
}

// renderFallingPiece overlays the piece in flight. Cells still above the
// field top are not drawn.
func (g *Game) renderFallingPiece(dst *core.Screen, fieldX, fieldY int) {
	p := g.eng.FallingPiece()
	if p == nil {
		return
	}
	for _, b := range p.Blocks() {
		if b.Y < 0 {
			continue
		}
		g.drawCell(dst, fieldX, fieldY, b.X, b.Y, blockRune, p.Color)
	}
}

// drawCell paints one field cell (cellWidth screen characters).
func (g *Game) drawCell(dst *core.Screen, fieldX, fieldY, x, y int, r rune, c core.Color) {
	for i := 0; i < cellWidth; i++ {
		dst.SetCell(fieldX+x*cellWidth+i, fieldY+y, r, c)
	}
}

// renderSidebar draws the score panel and the reserve piece preview.
func (g *Game) renderSidebar(dst *core.Screen, x, y int) {
	dst.DrawText(x, y, g.Title())
	dst.DrawText(x, y+2, fmt.Sprintf("Score: %d", g.eng.Score()))
	if g.deltaShowTicks > 0 && g.lastDelta > 0 {
		note := fmt.Sprintf("+%d", g.lastDelta)
		if g.lastBonus > 1 {
			note = fmt.Sprintf("+%d (chain x%d)", g.lastDelta, g.lastBonus)
		}
		dst.DrawTextColored(x, y+3, note, core.ColorBrightYellow)
	}
	dst.DrawText(x, y+4, fmt.Sprintf("Lines: %d", g.eng.Lines()))
	dst.DrawText(x, y+5, fmt.Sprintf("Level: %d", g.eng.Level()))

	dst.DrawText(x, y+7, "Next:")
	g.renderPreview(dst, x, y+8)
}

// renderPreview draws the reserve shape in its spawn orientation.
func (g *Game) renderPreview(dst *core.Screen, x, y int) {
	shape := engine.GetShape(g.eng.ReservedShape())
	for gy, row := range shape.Grid {
		for gx, filled := range row {
			if !filled {
				continue
			}
			for i := 0; i < cellWidth; i++ {
				dst.SetCell(x+gx*cellWidth+i, y+gy, blockRune, shape.Color)
			}
		}
	}
}

// renderOverlays draws the paused / game over boxes.
func (g *Game) renderOverlays(dst *core.Screen, centerX, centerY int) {
	switch {
	case g.paused:
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	case g.gameOver:
		g.drawOverlay(dst, centerX, centerY,
			"GAME OVER",
			fmt.Sprintf("Score: %d", g.eng.Score()),
			"Press R to restart")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		if len(line) > maxLen {
			maxLen = len(line)
		}
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	boxX := centerX - boxW/2
	boxY := centerY - boxH/2

	// Clear area behind overlay
	for y := boxY; y < boxY+boxH; y++ {
		for x := boxX; x < boxX+boxW; x++ {
			dst.Set(x, y, ' ')
		}
	}

	dst.DrawBox(core.Rect{X: boxX, Y: boxY, W: boxW, H: boxH})
	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, boxY+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "A/D: Move | W/X: Rotate CW | Z: Rotate CCW | S/Space: Drop | P: Pause | Q: Quit"
}
