package lines

import (
	"math/rand"

	"github.com/google/uuid"
)

// DefaultSpawnCount is the number of balls forecast per turn.
const DefaultSpawnCount = 3

// PendingBall is a forecast ball shown before it is committed to the board.
// It refers to its target cell by coordinate only.
type PendingBall struct {
	Color Color
	Pos   Position
}

// Spawner picks pending-ball positions and colours and places them.
// All randomness comes from the injected source so seeded games replay
// identically.
type Spawner struct {
	rng     *rand.Rand
	palette []Color
}

// NewSpawner creates a spawner drawing colours from palette.
func NewSpawner(rng *rand.Rand, palette []Color) *Spawner {
	if len(palette) == 0 {
		palette = Palette
	}
	return &Spawner{rng: rng, palette: palette}
}

// RandomColor returns a uniformly random palette colour.
func (s *Spawner) RandomColor() Color {
	return s.palette[s.rng.Intn(len(s.palette))]
}

// NewID returns a fresh identity token for a ball.
func (s *Spawner) NewID() string {
	id, err := uuid.NewRandomFromReader(s.rng)
	if err != nil {
		// math/rand never fails to read; keep a valid token regardless.
		return uuid.NewString()
	}
	return id.String()
}

// GeneratePending samples up to count distinct empty cells uniformly and
// pairs each with a random colour. Fewer balls are returned when fewer
// empty cells exist.
func (s *Spawner) GeneratePending(b *Board, count int) []PendingBall {
	empty := b.EmptyPositions()
	out := make([]PendingBall, 0, count)

	for range count {
		if len(empty) == 0 {
			break
		}
		idx := s.rng.Intn(len(empty))
		pos := empty[idx]
		empty = append(empty[:idx], empty[idx+1:]...)

		out = append(out, PendingBall{
			Color: s.RandomColor(),
			Pos:   pos,
		})
	}

	return out
}

// Commit places pending balls on the board and returns where each ball
// actually landed. A ball whose target is no longer empty falls back to a
// random empty cell; cells filled earlier in the same batch are never
// reused. Balls that find no empty cell are dropped.
func (s *Spawner) Commit(b *Board, pending []PendingBall) []PendingBall {
	placed := make([]PendingBall, 0, len(pending))

	for _, pb := range pending {
		target := pb.Pos
		if !b.IsEmpty(target) {
			free := b.EmptyPositions()
			if len(free) == 0 {
				break
			}
			target = free[s.rng.Intn(len(free))]
		}

		b.Set(target, Cell{Color: pb.Color, ID: s.NewID()})
		placed = append(placed, PendingBall{Color: pb.Color, Pos: target})
	}

	return placed
}

// Scatter places n random balls directly, as used for the opening board.
func (s *Spawner) Scatter(b *Board, n int) []PendingBall {
	return s.Commit(b, s.GeneratePending(b, n))
}
