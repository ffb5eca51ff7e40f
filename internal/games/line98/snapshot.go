package line98

import "github.com/vovakirdan/line98/internal/lines"

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick      uint64
	Mode      string
	Engine    lines.Snapshot
	Cursor    lines.Position
	Replaying bool
	HighScore int
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:      g.tick,
		Mode:      g.ID(),
		Engine:    g.engine.Snapshot(),
		Cursor:    g.cursor,
		Replaying: g.replay.active(),
		HighScore: g.highScore,
	}
}
