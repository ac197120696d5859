// Package navigate implements the traversal engine over a compiled decision
// tree: a current position plus a history stack, mutated only by discrete
// events. The tree itself is never modified. Each document session owns its
// own Navigator, so concurrently open documents never interfere.
//
// The emitted HTML embeds a JavaScript port of the same state machine; this
// package is the canonical definition and the one under test.
package navigate

import "github.com/dgallion1/guidegen/internal/guide"

// Navigator is the click-through traversal state: the current node id and
// the ordered history of previously visited ids.
type Navigator struct {
	tree    *guide.Tree
	current string
	history []string
}

// New starts a navigator at the tree's root with empty history.
func New(tree *guide.Tree) *Navigator {
	return &Navigator{tree: tree, current: tree.RootID}
}

// Current returns the node at the current position.
func (n *Navigator) Current() *guide.Node {
	return n.tree.Nodes[n.current]
}

// CurrentID returns the current node id.
func (n *Navigator) CurrentID() string {
	return n.current
}

// History returns a copy of the visited id stack, oldest first.
func (n *Navigator) History() []string {
	out := make([]string, len(n.history))
	copy(out, n.history)
	return out
}

// AtResult reports whether the current node is terminal.
func (n *Navigator) AtResult() bool {
	return n.Current().Kind == guide.KindResult
}

// SelectOption follows option i of the current question, pushing the
// current id onto history. On a result node or with an out-of-range index
// it is a no-op: the tree is pre-validated, so such a call can only come
// from a corrupted document, and a dead click beats a crash.
func (n *Navigator) SelectOption(i int) {
	cur := n.Current()
	if cur.Kind != guide.KindQuestion {
		return
	}
	if i < 0 || i >= len(cur.Options) {
		return
	}
	n.history = append(n.history, n.current)
	n.current = cur.Options[i].Next
}

// GoBack pops the most recent id off history and makes it current. No-op
// with empty history (at the root).
func (n *Navigator) GoBack() {
	if len(n.history) == 0 {
		return
	}
	n.current = n.history[len(n.history)-1]
	n.history = n.history[:len(n.history)-1]
}

// Restart resets to the root with empty history.
func (n *Navigator) Restart() {
	n.current = n.tree.RootID
	n.history = n.history[:0]
}

// Jump moves directly to a question node, clearing history. This is the
// start-anywhere entry used by the hypothesis-filtering front-end; result
// nodes are not valid jump targets.
func (n *Navigator) Jump(id string) bool {
	target, ok := n.tree.Nodes[id]
	if !ok || target.Kind != guide.KindQuestion {
		return false
	}
	n.current = id
	n.history = n.history[:0]
	return true
}
