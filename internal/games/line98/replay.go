package line98

import "github.com/vovakirdan/line98/internal/lines"

// frame is one held picture of a turn replay.
type frame struct {
	board  *lines.Board
	ball   lines.Cell // moving ball, drawn at ballAt when not empty
	ballAt lines.Position
	flash  []lines.Position // cells being cleared
	ticks  int
}

// replay walks through the frames of a resolved turn on tick counters.
// The engine has already applied the outcome; frames are cosmetic.
type replay struct {
	frames  []frame
	elapsed int
}

// ticksFor converts a delay in milliseconds into ticks, at least one.
func ticksFor(ms, tickRate int) int {
	if ms <= 0 || tickRate <= 0 {
		return 1
	}
	return max(1, (ms*tickRate+999)/1000)
}

func newReplay(events []lines.Event, stepTicks, clearTicks int) replay {
	var frames []frame
	for _, ev := range events {
		switch ev := ev.(type) {
		case lines.MoveApplied:
			base := ev.Board.Clone()
			ball := base.Get(ev.To)
			base.Clear(ev.To)
			for _, p := range ev.Path {
				frames = append(frames, frame{board: base, ball: ball, ballAt: p, ticks: stepTicks})
			}
		case lines.BallRemoved:
			frames = append(frames, frame{board: ev.Board, ticks: stepTicks * 2})
		case lines.BallsSwapped:
			frames = append(frames, frame{board: ev.Board, ticks: stepTicks * 2})
		case lines.LinesCleared:
			frames = append(frames, frame{board: ev.Board, flash: ev.Cells, ticks: clearTicks})
		case lines.BallsSpawned:
			frames = append(frames, frame{board: ev.Board, ticks: stepTicks})
		}
	}
	return replay{frames: frames}
}

func (r *replay) active() bool {
	return len(r.frames) > 0
}

func (r *replay) current() *frame {
	if !r.active() {
		return nil
	}
	return &r.frames[0]
}

// advance consumes one tick and reports whether the replay has finished.
func (r *replay) advance() bool {
	if !r.active() {
		return true
	}
	r.elapsed++
	if r.elapsed >= r.frames[0].ticks {
		r.frames = r.frames[1:]
		r.elapsed = 0
	}
	return !r.active()
}

// flashing reports whether p is being cleared in the current frame.
func (f *frame) flashing(p lines.Position) bool {
	for _, q := range f.flash {
		if q == p {
			return true
		}
	}
	return false
}
