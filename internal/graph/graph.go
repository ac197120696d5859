package graph

// Graph holds the raw node and edge sets extracted from a flowchart source.
// It is rebuilt on every compilation and discarded once the decision tree
// has been built.
type Graph struct {
	nodes map[string]*Node
	order []string // node ids in first-seen order
	out   map[string][]*Edge
	indeg map[string]int

	// Root, when non-empty, pins the entry node and skips indegree-based
	// root resolution. Set by parsers whose format names the root directly.
	Root string

	// RequireDeclared makes the builder reject edges whose destination was
	// never declared. Flowchart sources legitimately declare nodes through
	// edges alone; declarative sources do not.
	RequireDeclared bool
}

// Node is a raw flowchart node. Label may contain HTML-ish markup; it is
// decomposed later by the label package.
type Node struct {
	ID        string
	Label     string
	Help      string
	Image     string
	Synthetic bool // generated by root resolution, not authored
	Declared  bool // appeared as its own declaration, not just in an edge

	// Result carries terminal metadata for formats that declare it
	// explicitly. Nil for sources that only imply results by out-degree.
	Result *ResultMeta
}

// ResultMeta is the terminal classification payload of a result node.
type ResultMeta struct {
	Classification []Field
	Summary        string
	NextSteps      string
	References     []Reference
}

// Field is one named classification attribute, e.g. class/group/subgroup.
type Field struct {
	Name  string
	Value string
}

// Reference is a citation attached to a result node.
type Reference struct {
	Name string
	URL  string
}

// Edge is a directed, optionally labeled connection between two nodes.
// Description and Image are only set by declarative sources whose options
// carry them as separate fields; flowchart sources embed both in Label.
type Edge struct {
	Src   string
	Dst   string
	Label string
	// HasLabel distinguishes an empty label from an absent one; absent
	// labels fall back to the destination's display text.
	HasLabel    bool
	Description string
	Image       string
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		out:   make(map[string][]*Edge),
		indeg: make(map[string]int),
	}
}

// Ensure registers a node id if it has not been seen yet and returns the
// node. The initial label is the id with underscores replaced by spaces,
// matching the fallback display text for nodes declared only via edges.
func (g *Graph) Ensure(id string) *Node {
	if n, ok := g.nodes[id]; ok {
		return n
	}
	n := &Node{ID: id, Label: FallbackLabel(id)}
	g.nodes[id] = n
	g.order = append(g.order, id)
	return n
}

// SetLabel registers a node as declared and sets its display label.
func (g *Graph) SetLabel(id, label string) *Node {
	n := g.Ensure(id)
	n.Label = label
	n.Declared = true
	return n
}

// AddEdge appends a directed edge. Both endpoints are registered as a side
// effect, so edge-only declarations still yield nodes.
func (g *Graph) AddEdge(e *Edge) {
	g.Ensure(e.Src)
	g.Ensure(e.Dst)
	g.out[e.Src] = append(g.out[e.Src], e)
	g.indeg[e.Dst]++
}

// Node returns the node for an id, or nil.
func (g *Graph) Node(id string) *Node {
	return g.nodes[id]
}

// Order returns node ids in first-seen order. Callers must not mutate it.
func (g *Graph) Order() []string {
	return g.order
}

// Out returns the outgoing edges of a node in declaration order.
func (g *Graph) Out(id string) []*Edge {
	return g.out[id]
}

// Indegree returns the number of incoming edges of a node.
func (g *Graph) Indegree(id string) int {
	return g.indeg[id]
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// FallbackLabel derives display text from a bare node id.
func FallbackLabel(id string) string {
	out := []rune(id)
	for i, r := range out {
		if r == '_' {
			out[i] = ' '
		}
	}
	return string(out)
}
