package maze

import "math/rand"

// Reachable returns every empty cell 4-connected to start, in breadth-first
// discovery order with start first. It returns nil if start is not an empty cell.
func Reachable(g *Grid, start Position) []Position {
	if !g.IsOpen(start) {
		return nil
	}

	visited := make([]bool, g.Rows*g.Cols)
	visited[start.Row*g.Cols+start.Col] = true
	queue := []Position{start}

	for qi := 0; qi < len(queue); qi++ {
		cur := queue[qi]
		for _, d := range neighborDeltas {
			next := cur.Add(d[0], d[1])
			if !g.IsOpen(next) {
				continue
			}
			idx := next.Row*g.Cols + next.Col
			if visited[idx] {
				continue
			}
			visited[idx] = true
			queue = append(queue, next)
		}
	}

	// The queue doubles as the visit order.
	return queue
}

// CountReachable returns the number of empty cells reachable from start, start included.
func CountReachable(g *Grid, start Position) int {
	return len(Reachable(g, start))
}

// FindGoalCell picks a uniformly random empty cell reachable from start,
// excluding start itself. If start is isolated, start is returned.
func FindGoalCell(g *Grid, start Position, rng *rand.Rand) Position {
	reachable := Reachable(g, start)
	if len(reachable) <= 1 {
		return start
	}

	// reachable[0] is always start.
	candidates := reachable[1:]
	return candidates[rng.Intn(len(candidates))]
}

// ShortestPath returns a shortest 4-connected path from `from` to `to`, both
// included. It returns nil if either end is blocked or no path exists.
func ShortestPath(g *Grid, from, to Position) []Position {
	if !g.IsOpen(from) || !g.IsOpen(to) {
		return nil
	}
	if from == to {
		return []Position{from}
	}

	cameFrom := make(map[Position]Position)
	cameFrom[from] = from
	queue := []Position{from}

	for qi := 0; qi < len(queue); qi++ {
		cur := queue[qi]
		if cur == to {
			break
		}
		for _, d := range neighborDeltas {
			next := cur.Add(d[0], d[1])
			if !g.IsOpen(next) {
				continue
			}
			if _, seen := cameFrom[next]; seen {
				continue
			}
			cameFrom[next] = cur
			queue = append(queue, next)
		}
	}

	if _, ok := cameFrom[to]; !ok {
		return nil
	}

	// Reconstruct path
	var path []Position
	for cur := to; cur != from; cur = cameFrom[cur] {
		path = append(path, cur)
	}
	path = append(path, from)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
