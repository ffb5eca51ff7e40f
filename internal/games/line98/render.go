package line98

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/line98/internal/core"
	"github.com/vovakirdan/line98/internal/lines"
)

const (
	cellWidth  = 4 // columns per board cell
	cellHeight = 2 // rows per board cell
	hudHeight  = 3
)

// Glyphs.
const (
	glyphBall     = '●'
	glyphSelected = '◉'
	glyphPending  = '∘'
	glyphEmpty    = '·'
	glyphFlash    = '✦'
)

type layout struct {
	box  core.Rect
	grid core.Grid
	minW int
	minH int
}

// layout centres the board horizontally below the HUD. Cell (r, c) draws
// its ball at grid origin + (2, 0) with cursor brackets on either side.
func (g *Game) layout() layout {
	size := lines.DefaultSize
	if g.engine != nil {
		size = g.engine.Board().Size()
	}

	boxW := size*cellWidth + 3
	boxH := size*cellHeight + 1
	boxX := max(0, (g.screenW-boxW)/2)
	boxY := hudHeight

	return layout{
		box: core.NewRect(boxX, boxY, boxW, boxH),
		grid: core.Grid{
			Origin: core.Point{X: boxX + 1, Y: boxY + 1},
			CellW:  cellWidth,
			CellH:  cellHeight,
			Rows:   size,
			Cols:   size,
		},
		minW: boxW,
		minH: hudHeight + boxH + 1,
	}
}

// Resize updates the screen size without restarting the game.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// ballColor maps an engine colour onto a screen colour.
func ballColor(c lines.Color) core.Color {
	if c == lines.Empty || int(c) > len(core.BallColors) {
		return core.ColorMuted
	}
	return core.BallColors[c-1]
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	l := g.layout()
	g.renderHUD(dst, l)
	g.renderBoard(dst, l)
	dst.DrawTextCentered(l.box.Bottom(), g.Controls(), core.ColorMuted)

	if g.State().GameOver {
		g.drawOverlay(dst, l,
			"GAME OVER",
			fmt.Sprintf("Score: %d", g.engine.Score()),
			"Press R to restart",
		)
	}
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDanger)
	dst.DrawTextCentered(y+1, "Please resize terminal", core.ColorDefault)
}

func (g *Game) renderHUD(dst *core.Screen, l layout) {
	dst.DrawTextCentered(0, g.Title(), core.ColorAccent)

	left := l.box.X
	right := l.box.Right()

	dst.DrawText(left, 1, fmt.Sprintf("Score: %d", g.engine.Score()))
	best := fmt.Sprintf("Best: %d", g.State().HighScore)
	dst.DrawText(right-len(best), 1, best)

	if g.replay.active() && g.lastPoints > 0 {
		pts := fmt.Sprintf("+%d", g.lastPoints)
		dst.DrawTextColored(left+(l.box.W-len(pts))/2, 1, pts, core.ColorAccent)
	}

	// Forecast of the next spawn, in colour.
	x := left
	dst.DrawText(x, 2, "Next:")
	x += len("Next:") + 1
	for _, pb := range g.engine.Pending() {
		dst.SetColored(x, 2, glyphBall, ballColor(pb.Color))
		x += 2
	}

	switch {
	case g.noticeTicks > 0:
		dst.DrawTextColored(right-len(g.notice), 2, g.notice, core.ColorDanger)
	case g.mode == ModeTools:
		tools := g.toolsLine()
		dst.DrawText(right-len(tools), 2, tools)
		if t := g.engine.ActiveTool(); t != lines.ToolNone {
			label := strings.ToUpper(t.String())
			if idx := strings.Index(tools, label); idx >= 0 {
				dst.DrawTextColored(right-len(tools)+idx, 2, label, core.ColorAccent)
			}
		}
	}
}

// toolsLine lists remaining tool uses; the armed tool is upper-cased.
func (g *Game) toolsLine() string {
	name := func(t lines.Tool) string {
		if g.engine.ActiveTool() == t {
			return strings.ToUpper(t.String())
		}
		return t.String()
	}
	return fmt.Sprintf("%s %d  %s %d",
		name(lines.ToolHammer), g.engine.ToolUses(lines.ToolHammer),
		name(lines.ToolSwap), g.engine.ToolUses(lines.ToolSwap),
	)
}

func (g *Game) renderBoard(dst *core.Screen, l layout) {
	dst.DrawBox(l.box, core.ColorMuted)

	fr := g.replay.current()
	board := g.engine.Board()
	if fr != nil {
		board = fr.board
	}

	marked := make(map[lines.Position]bool, 2)
	if p, ok := g.engine.Selected(); ok {
		marked[p] = true
	}
	if p, ok := g.engine.SwapSource(); ok {
		marked[p] = true
	}

	blink := (g.tick/4)%2 == 0
	size := board.Size()
	for row := range size {
		for col := range size {
			p := lines.Pos(row, col)
			o := l.grid.CellOrigin(row, col)
			cell := board.Get(p)

			glyph, color := glyphEmpty, core.ColorMuted
			switch {
			case fr != nil && fr.flashing(p):
				glyph, color = glyphBall, ballColor(cell.Color)
				if blink {
					glyph = glyphFlash
				}
			case !cell.Empty():
				glyph, color = glyphBall, ballColor(cell.Color)
				if fr == nil && marked[p] {
					glyph = glyphSelected
				}
			}
			dst.SetColored(o.X+2, o.Y, glyph, color)
		}
	}

	if fr == nil {
		// Forecast targets show as small rings on empty cells.
		for _, pb := range g.engine.Pending() {
			if board.IsEmpty(pb.Pos) {
				o := l.grid.CellOrigin(pb.Pos.Row, pb.Pos.Col)
				dst.SetColored(o.X+2, o.Y, glyphPending, ballColor(pb.Color))
			}
		}
	} else if !fr.ball.Empty() {
		o := l.grid.CellOrigin(fr.ballAt.Row, fr.ballAt.Col)
		dst.SetColored(o.X+2, o.Y, glyphBall, ballColor(fr.ball.Color))
	}

	if fr == nil && !g.engine.Over() {
		o := l.grid.CellOrigin(g.cursor.Row, g.cursor.Col)
		dst.SetColored(o.X+1, o.Y, '[', core.ColorAccent)
		dst.SetColored(o.X+3, o.Y, ']', core.ColorAccent)
	}
}

// drawOverlay draws a boxed message centred on the board.
func (g *Game) drawOverlay(dst *core.Screen, l layout, msgs ...string) {
	maxLen := 0
	for _, m := range msgs {
		maxLen = max(maxLen, len(m))
	}

	boxW := maxLen + 4
	boxH := len(msgs) + 2
	box := core.NewRect(l.box.X+(l.box.W-boxW)/2, l.box.Y+(l.box.H-boxH)/2, boxW, boxH)

	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box, core.ColorDanger)

	for i, m := range msgs {
		color := core.ColorDefault
		if i == 0 {
			color = core.ColorDanger
		}
		dst.DrawTextColored(box.X+(boxW-len(m))/2, box.Y+1+i, m, color)
	}
}
