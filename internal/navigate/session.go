package navigate

import (
	"errors"
	"sort"

	"github.com/dgallion1/guidegen/internal/guide"
)

// ErrContradiction is returned when an answer would eliminate every
// remaining hypothesis; the answer is refused and prior state kept.
var ErrContradiction = errors.New("answer contradicts earlier answers")

// Session is the hypothesis-filtering traversal state: one chosen option
// per answered question, applied as hard constraints over the candidate
// result set. Questions may be answered in any order and skipped freely.
type Session struct {
	tree    *guide.Tree
	model   *guide.FilterModel
	answers map[string]string // question id -> option key
}

// Hypothesis is one remaining candidate result with its ranking inputs.
type Hypothesis struct {
	ID    string
	Node  *guide.Node
	Depth int
}

// NewSession starts a filtering session with no answers.
func NewSession(tree *guide.Tree, model *guide.FilterModel) *Session {
	return &Session{
		tree:    tree,
		model:   model,
		answers: make(map[string]string),
	}
}

// Answer records the choice of option optionIndex for a question. It fails
// with ErrContradiction when the combined constraints would leave no
// candidates, leaving the session unchanged.
func (s *Session) Answer(questionID string, optionIndex int) error {
	q, ok := s.tree.Nodes[questionID]
	if !ok || q.Kind != guide.KindQuestion {
		return errors.New("not a question node")
	}
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return errors.New("option index out of range")
	}

	key := guide.OptionKey(questionID, q.Options[optionIndex].Next)
	trial := s.candidatesWith(questionID, key)
	if len(trial) == 0 {
		return ErrContradiction
	}
	s.answers[questionID] = key
	return nil
}

// Skip removes any answer for a question ("I don't know" = no constraint).
func (s *Session) Skip(questionID string) {
	delete(s.answers, questionID)
}

// Reset clears all answers.
func (s *Session) Reset() {
	clear(s.answers)
}

// Answered reports whether a question currently constrains the candidates.
func (s *Session) Answered(questionID string) bool {
	_, ok := s.answers[questionID]
	return ok
}

// Candidates returns the result ids still compatible with every answer,
// sorted for determinism.
func (s *Session) Candidates() []string {
	return s.candidatesWith("", "")
}

// candidatesWith computes the candidate set with an optional extra or
// overriding answer applied.
func (s *Session) candidatesWith(questionID, optionKey string) []string {
	cur := s.model.InitialCandidates
	for qid, key := range s.answers {
		if qid == questionID {
			continue // overridden below
		}
		cur = intersect(cur, s.model.OptionLeaves[key])
	}
	if questionID != "" {
		cur = intersect(cur, s.model.OptionLeaves[optionKey])
	}
	return cur
}

// Hypotheses returns the remaining candidates ranked most-specific first:
// depth descending, then summary text, then id for stability.
func (s *Session) Hypotheses() []Hypothesis {
	ids := s.Candidates()
	out := make([]Hypothesis, 0, len(ids))
	for _, id := range ids {
		n := s.tree.Nodes[id]
		out = append(out, Hypothesis{ID: id, Node: n, Depth: n.Depth})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Depth != out[j].Depth {
			return out[i].Depth > out[j].Depth
		}
		if out[i].Node.SummaryText != out[j].Node.SummaryText {
			return out[i].Node.SummaryText < out[j].Node.SummaryText
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Top returns at most n ranked hypotheses.
func (s *Session) Top(n int) []Hypothesis {
	hyps := s.Hypotheses()
	if n > 0 && len(hyps) > n {
		hyps = hyps[:n]
	}
	return hyps
}

func intersect(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, x := range b {
		inB[x] = true
	}
	var out []string
	for _, x := range a {
		if inB[x] {
			out = append(out, x)
		}
	}
	return out
}
