package lines

// neighbours is the BFS visitation order: up, down, left, right.
// It decides which of several equally short paths is returned.
var neighbours = [4][2]int{
	{-1, 0},
	{1, 0},
	{0, -1},
	{0, 1},
}

// FindPath returns the shortest orthogonal path from start to end through
// empty cells. The start cell is the origin and may be occupied; every
// other cell on the path, end included, must be empty.
// The returned path begins with start and ends with end.
// ok is false when end is occupied, start equals end, either position is
// off the board, or end is unreachable.
func FindPath(b *Board, start, end Position) (path []Position, ok bool) {
	if !b.InBounds(start) || !b.InBounds(end) {
		return nil, false
	}
	if start == end || !b.IsEmpty(end) {
		return nil, false
	}

	size := b.Size()
	index := func(p Position) int { return p.Row*size + p.Col }

	// cameFrom holds the predecessor index + 1 (0 = unvisited).
	cameFrom := make([]int, size*size)
	cameFrom[index(start)] = index(start) + 1

	queue := make([]Position, 0, size*size)
	queue = append(queue, start)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur == end {
			return tracePath(cameFrom, size, start, end), true
		}

		for _, d := range neighbours {
			next := cur.Add(d[0], d[1])
			if !b.InBounds(next) {
				continue
			}
			ni := index(next)
			if cameFrom[ni] != 0 || !b.Get(next).Empty() {
				continue
			}
			cameFrom[ni] = index(cur) + 1
			queue = append(queue, next)
		}
	}

	return nil, false
}

// tracePath walks predecessors back from end and returns the path in
// start-to-end order.
func tracePath(cameFrom []int, size int, start, end Position) []Position {
	var rev []Position
	cur := end
	for {
		rev = append(rev, cur)
		if cur == start {
			break
		}
		prev := cameFrom[cur.Row*size+cur.Col] - 1
		cur = Position{Row: prev / size, Col: prev % size}
	}

	path := make([]Position, len(rev))
	for i, p := range rev {
		path[len(rev)-1-i] = p
	}
	return path
}

// Reachable reports whether a ball at start can move to end.
func Reachable(b *Board, start, end Position) bool {
	_, ok := FindPath(b, start, end)
	return ok
}
