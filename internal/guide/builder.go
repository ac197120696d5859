package guide

import (
	"github.com/dgallion1/guidegen/internal/graph"
	"github.com/dgallion1/guidegen/internal/label"
)

// BuildOptions tune builder behavior.
type BuildOptions struct {
	// BlankOptionLabels leaves unlabeled options blank instead of falling
	// back to the destination node's display text.
	BlankOptionLabels bool
}

// Build converts a validated rooted graph into the decision tree. It is a
// pure function of its inputs: no I/O, deterministic output for identical
// graphs.
//
// Variant assignment follows out-degree: nodes with outgoing edges become
// questions, terminal nodes become results. Each outgoing edge becomes one
// option in declaration order. Option images prefer an image on the edge
// label itself, then the destination node's image: the option previews what
// selecting it leads to.
func Build(g *graph.Graph, rootID string, opts BuildOptions) (*Tree, error) {
	t := &Tree{
		RootID: rootID,
		Nodes:  make(map[string]*Node, g.Len()),
	}

	for _, id := range g.Order() {
		raw := g.Node(id)
		out := g.Out(id)

		if g.RequireDeclared && !raw.Declared {
			return nil, &ReferenceError{Src: referrer(g, id), Dst: id}
		}

		if len(out) == 0 {
			n, err := buildResult(raw)
			if err != nil {
				return nil, err
			}
			t.Nodes[id] = n
		} else {
			t.Nodes[id] = buildQuestion(g, raw, out, opts)
		}
		t.Order = append(t.Order, id)
	}

	computeDepths(t)
	return t, nil
}

func buildQuestion(g *graph.Graph, raw *graph.Node, out []*graph.Edge, opts BuildOptions) *Node {
	n := &Node{
		ID:         raw.ID,
		Kind:       KindQuestion,
		Synthetic:  raw.Synthetic,
		PromptHTML: raw.Label,
		PromptText: label.Plain(raw.Label),
		Help:       raw.Help,
	}
	if n.PromptText == "" {
		n.PromptText = graph.FallbackLabel(raw.ID)
	}

	for _, e := range out {
		n.Options = append(n.Options, buildOption(g, e, opts))
	}
	return n
}

func buildOption(g *graph.Graph, e *graph.Edge, opts BuildOptions) Option {
	dst := g.Node(e.Dst)

	dstText := label.Plain(dst.Label)
	if dstText == "" {
		dstText = graph.FallbackLabel(e.Dst)
	}

	o := Option{Next: e.Dst}
	switch {
	case e.HasLabel:
		parts := label.Decompose(e.Label, dstText)
		o.Label = parts.Plain
		o.TitleHTML = parts.TitleHTML
		o.Description = parts.ContextHTML
		o.Image = parts.ImageSrc
		o.ImageTag = parts.ImageTag
	case opts.BlankOptionLabels && !g.Node(e.Src).Synthetic:
		// Unlabeled option stays blank by policy. Synthetic fan-out edges
		// are exempt: an entry menu with blank choices is unusable.
	default:
		o.Label = dstText
		o.TitleHTML = dstText
	}

	if e.Description != "" {
		o.Description = e.Description
	}
	if e.Image != "" {
		o.Image = e.Image
		o.ImageTag = ""
	}

	// Destination image as fallback preview.
	if o.Image == "" && o.ImageTag == "" {
		if dst.Image != "" {
			o.Image = dst.Image
		} else {
			o.ImageTag, o.Image = label.FirstImage(dst.Label)
		}
	}
	return o
}

func buildResult(raw *graph.Node) (*Node, error) {
	n := &Node{
		ID:   raw.ID,
		Kind: KindResult,
	}

	if raw.Result != nil {
		if raw.Result.Summary == "" {
			return nil, &MissingMetadataError{Node: raw.ID, Msg: "result has no summary"}
		}
		n.Classification = make([]Field, 0, len(raw.Result.Classification))
		for _, f := range raw.Result.Classification {
			n.Classification = append(n.Classification, Field{Name: f.Name, Value: f.Value})
		}
		n.SummaryHTML = label.Render(raw.Result.Summary)
		n.SummaryText = label.Plain(n.SummaryHTML)
		n.NextSteps = raw.Result.NextSteps
		for _, r := range raw.Result.References {
			n.References = append(n.References, Reference{Name: r.Name, URL: r.URL})
		}
		return n, nil
	}

	// Flowchart sources imply results by out-degree; the node label is the
	// result card.
	n.SummaryHTML = raw.Label
	n.SummaryText = label.Plain(raw.Label)
	if n.SummaryText == "" {
		return nil, &MissingMetadataError{Node: raw.ID, Msg: "terminal node has no displayable result text"}
	}
	return n, nil
}

// referrer finds the source of the first edge pointing at id, for error
// reporting.
func referrer(g *graph.Graph, id string) string {
	for _, src := range g.Order() {
		for _, e := range g.Out(src) {
			if e.Dst == id {
				return src
			}
		}
	}
	return ""
}

// computeDepths assigns every node the minimum number of choices from the
// root. Nodes the root cannot reach keep depth 0 so ranking stays sane.
func computeDepths(t *Tree) {
	type item struct {
		id    string
		depth int
	}
	best := make(map[string]int, len(t.Nodes))
	stack := []item{{t.RootID, 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if d, ok := best[it.id]; ok && d <= it.depth {
			continue
		}
		best[it.id] = it.depth
		for _, o := range t.Nodes[it.id].Options {
			stack = append(stack, item{o.Next, it.depth + 1})
		}
	}
	for id, n := range t.Nodes {
		n.Depth = best[id]
	}
}
