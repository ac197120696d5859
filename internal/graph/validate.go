package graph

// DetectCycle runs a depth-first walk over every node in declaration order,
// maintaining a recursion stack via node coloring. Revisiting a node that is
// still on the stack yields a CycleError naming the cycle in forward order.
//
// The walk covers the whole graph, not just the part reachable from the
// root: a cyclic component swallows its own incoming edges, so it would
// otherwise surface as the misleading "no root" symptom instead of the
// cycle that caused it.
func (g *Graph) DetectCycle() error {
	const (
		white = 0 // unvisited
		gray  = 1 // on the recursion stack
		black = 2 // finished
	)

	color := make(map[string]int, g.Len())
	parent := make(map[string]string, g.Len())

	var cycle []string

	var dfs func(u string) bool
	dfs = func(u string) bool {
		color[u] = gray
		for _, e := range g.out[u] {
			v := e.Dst
			switch color[v] {
			case white:
				parent[v] = u
				if dfs(v) {
					return true
				}
			case gray:
				// Back-edge u -> v. Walk parents from u back to v to
				// reconstruct the cycle, then reverse into forward order.
				var path []string
				for cur := u; ; cur = parent[cur] {
					path = append(path, cur)
					if cur == v {
						break
					}
				}
				for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
					path[i], path[j] = path[j], path[i]
				}
				cycle = append(path, v)
				return true
			}
		}
		color[u] = black
		return false
	}

	for _, id := range g.order {
		if color[id] == white && dfs(id) {
			return &CycleError{Path: cycle}
		}
	}
	return nil
}

// Unreachable returns the ids of nodes that a traversal from root never
// visits, in declaration order. Dead content is reported as a warning by
// the compiler, not treated as fatal.
func (g *Graph) Unreachable(root string) []string {
	seen := make(map[string]bool, g.Len())
	stack := []string{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[id] {
			continue
		}
		seen[id] = true
		for _, e := range g.out[id] {
			if !seen[e.Dst] {
				stack = append(stack, e.Dst)
			}
		}
	}

	var dead []string
	for _, id := range g.order {
		if !seen[id] {
			dead = append(dead, id)
		}
	}
	return dead
}
