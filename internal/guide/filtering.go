package guide

import "sort"

// FilterModel is the precomputed data the hypothesis-filtering front-end
// needs: the question menu, and for every option the set of result leaves
// still possible after choosing it. Answers intersect these sets.
type FilterModel struct {
	Questions         []string            `json:"questions"`
	OptionLeaves      map[string][]string `json:"optionLeaves"`
	InitialCandidates []string            `json:"initialCandidates"`
}

// OptionKey identifies an option across the model; one question never has
// two options to the same destination.
func OptionKey(src, dst string) string {
	return src + "__TO__" + dst
}

// BuildFilterModel derives the filtering model from a compiled tree. The
// question menu keeps declaration order and skips the synthetic root, which
// only disambiguates entry points and carries no classifying signal.
func BuildFilterModel(t *Tree) *FilterModel {
	m := &FilterModel{
		OptionLeaves: make(map[string][]string),
	}

	sets := leafSets(t)

	for _, id := range t.Order {
		n := t.Nodes[id]
		if n.Kind != KindQuestion || n.Synthetic {
			continue
		}
		m.Questions = append(m.Questions, id)
		for _, o := range n.Options {
			m.OptionLeaves[OptionKey(id, o.Next)] = sortedIDs(sets[o.Next])
		}
	}

	m.InitialCandidates = sortedIDs(sets[t.RootID])
	return m
}

// leafSets computes, for every node, the result leaves in its subtree. The
// tree is already proven acyclic, so memoized descent terminates.
func leafSets(t *Tree) map[string]map[string]bool {
	memo := make(map[string]map[string]bool, len(t.Nodes))

	var visit func(id string) map[string]bool
	visit = func(id string) map[string]bool {
		if s, ok := memo[id]; ok {
			return s
		}
		n := t.Nodes[id]
		s := make(map[string]bool)
		memo[id] = s
		if n.Kind == KindResult {
			s[id] = true
			return s
		}
		for _, o := range n.Options {
			for leaf := range visit(o.Next) {
				s[leaf] = true
			}
		}
		return s
	}

	for _, id := range t.Order {
		visit(id)
	}
	return memo
}

func sortedIDs(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
