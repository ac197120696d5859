package graph

// SyntheticRootID is the id of the generated entry node used when several
// candidate roots exist. The prefix keeps it out of any author's id space.
const SyntheticRootID = "__synthetic_start__"

// Roots returns the zero-indegree node ids in first-seen order. When the
// graph pins a root explicitly (declarative sources), that node alone is
// the root regardless of indegree.
func (g *Graph) Roots() []string {
	if g.Root != "" {
		if g.Node(g.Root) == nil {
			return nil
		}
		return []string{g.Root}
	}
	var roots []string
	for _, id := range g.order {
		if g.indeg[id] == 0 {
			roots = append(roots, id)
		}
	}
	return roots
}

// Resolve determines the single entry node. Exactly one candidate root is
// used as-is. Several candidates are fanned out from a synthetic question
// node whose options are labeled with each candidate's display label. Zero
// candidates is a NoRootError: every node has an incoming edge, which means
// the input is cyclic or empty.
//
// Resolve returns the root id and whether it was synthesized. The synthetic
// node is marked so downstream tooling can tell authored from generated
// content.
func (g *Graph) Resolve(startPrompt string) (string, bool, error) {
	if g.Len() == 0 {
		return "", false, &NoRootError{Reason: "no nodes were parsed from input"}
	}

	roots := g.Roots()
	switch len(roots) {
	case 0:
		return "", false, &NoRootError{Reason: "every node has an incoming edge"}
	case 1:
		return roots[0], false, nil
	}

	root := g.Ensure(SyntheticRootID)
	root.Label = startPrompt
	root.Synthetic = true
	root.Declared = true
	for _, r := range roots {
		g.AddEdge(&Edge{Src: SyntheticRootID, Dst: r})
	}
	return SyntheticRootID, true, nil
}
