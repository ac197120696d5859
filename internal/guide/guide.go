// Package guide defines the compiled decision tree: a flat, id-addressed
// set of question and result nodes with resolved option lists. Trees are
// built once per compilation and are read-only afterwards; navigation state
// lives elsewhere.
package guide

// Kind tags the two node variants. The union is closed: every consumer
// switches exhaustively on it.
type Kind string

const (
	KindQuestion Kind = "question"
	KindResult   Kind = "result"
)

// Tree is one compiled decision tree.
type Tree struct {
	RootID string           `json:"rootId"`
	Nodes  map[string]*Node `json:"nodes"`
	Order  []string         `json:"order"` // node ids in source declaration order
}

// Node is a single decision node. Question fields are populated when Kind
// is KindQuestion, result fields when Kind is KindResult.
type Node struct {
	ID        string `json:"id"`
	Kind      Kind   `json:"kind"`
	Synthetic bool   `json:"synthetic,omitempty"`

	// Question variant.
	PromptHTML string   `json:"promptHtml,omitempty"`
	PromptText string   `json:"promptText,omitempty"`
	Help       string   `json:"help,omitempty"`
	Options    []Option `json:"options,omitempty"`

	// Result variant.
	Classification []Field     `json:"classification,omitempty"`
	SummaryHTML    string      `json:"summaryHtml,omitempty"`
	SummaryText    string      `json:"summaryText,omitempty"`
	NextSteps      string      `json:"nextSteps,omitempty"`
	References     []Reference `json:"references,omitempty"`

	// Depth is the minimum number of choices from the root to this node.
	// Hypothesis ranking treats deeper results as more specific.
	Depth int `json:"depth"`
}

// Option is one selectable branch out of a question node. Order follows
// edge declaration order in the source.
type Option struct {
	Label       string `json:"label"`               // plain display text
	TitleHTML   string `json:"titleHtml"`           // rich title markup
	Description string `json:"description,omitempty"` // supporting context markup
	Image       string `json:"image,omitempty"`     // preview image src
	ImageTag    string `json:"imageTag,omitempty"`  // verbatim <img> when src is unusable
	Next        string `json:"next"`                // destination node id
}

// Field is one named classification attribute of a result, in declared
// order.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Reference is a citation displayed with a result.
type Reference struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Root returns the entry node.
func (t *Tree) Root() *Node {
	return t.Nodes[t.RootID]
}

// Questions returns the question node ids in declaration order.
func (t *Tree) Questions() []string {
	var out []string
	for _, id := range t.Order {
		if t.Nodes[id].Kind == KindQuestion {
			out = append(out, id)
		}
	}
	return out
}

// Results returns the result node ids in declaration order.
func (t *Tree) Results() []string {
	var out []string
	for _, id := range t.Order {
		if t.Nodes[id].Kind == KindResult {
			out = append(out, id)
		}
	}
	return out
}
