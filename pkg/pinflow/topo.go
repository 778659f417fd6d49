package pinflow

// addEdge records a node-level edge in the adjacency map. fromID is
// empty for edges originating at a system input; those never take part
// in cycle detection because nothing feeds the system input set.
func (s *System) addEdge(fromID, toID string) {
	if fromID == "" {
		return
	}
	targets := s.adj[fromID]
	if targets == nil {
		targets = make(map[string]int)
		s.adj[fromID] = targets
	}
	targets[toID]++
}

// reachable reports whether to can be reached from from over the
// committed edges. Used before committing an edge A→B: if A is reachable
// from B, the new edge would close a cycle.
func (s *System) reachable(from, to string) bool {
	if from == to {
		return true
	}
	visited := map[string]bool{from: true}
	stack := []string{from}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for next := range s.adj[cur] {
			if next == to {
				return true
			}
			if !visited[next] {
				visited[next] = true
				stack = append(stack, next)
			}
		}
	}
	return false
}

// reorder recomputes the topological order of the node set (Kahn's
// algorithm). Called on every successful connect, never per event: the
// order is a structural property of the graph. Ties are broken by
// registration order so propagation is deterministic.
//
// A valid order always exists here because every edge was cycle-checked
// before being committed.
func (s *System) reorder() {
	indegree := make(map[string]int, len(s.nodes))
	for _, n := range s.nodes {
		indegree[n.id] = 0
	}
	for _, targets := range s.adj {
		for toID, count := range targets {
			indegree[toID] += count
		}
	}

	order := make([]*node, 0, len(s.nodes))
	placed := make(map[string]bool, len(s.nodes))
	for len(order) < len(s.nodes) {
		progress := false
		for _, n := range s.nodes {
			if placed[n.id] || indegree[n.id] != 0 {
				continue
			}
			placed[n.id] = true
			order = append(order, n)
			progress = true
			for toID, count := range s.adj[n.id] {
				indegree[toID] -= count
			}
		}
		if !progress {
			// Unreachable for committed edge sets; every edge was
			// cycle-checked before commit.
			panic("pinflow: committed graph is not acyclic")
		}
	}

	s.order = order
}
