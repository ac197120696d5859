package parse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/dgallion1/guidegen/internal/graph"
	"github.com/dgallion1/guidegen/internal/label"
)

// StartNodeID is the node a declarative tree file must contain; it serves
// as the root directly, with no indegree-based resolution.
const StartNodeID = "start"

// treeNode is one node definition in the declarative tree format. A node is
// either a question (question + options) or a result (result:true plus
// classification metadata), never both.
type treeNode struct {
	Question string       `json:"question"`
	Help     string       `json:"help"`
	Options  []treeOption `json:"options"`

	Result         bool            `json:"result"`
	Classification json.RawMessage `json:"classification"`
	Summary        string          `json:"summary"`
	NextSteps      string          `json:"next_steps"`
	References     []treeRef       `json:"references"`

	Image string `json:"image"`
}

type treeOption struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Next        string `json:"next"`
}

type treeRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// TreeParser reads the declarative JSON tree description: a mapping from
// node id to node definition. Declaration order of nodes, options,
// classification fields and references is preserved.
type TreeParser struct{}

func (p *TreeParser) Parse(r io.Reader, filename string) (*graph.Graph, []string, error) {
	g := graph.New()

	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, &ParseError{Filename: filename, Msg: fmt.Sprintf("invalid JSON: %v", err)}
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, &ParseError{Filename: filename, Msg: "top level must be an object mapping node id to definition"}
	}

	// Decode key by key so node declaration order survives; a plain map
	// would scramble the question menu and option ordering downstream.
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, &ParseError{Filename: filename, Msg: fmt.Sprintf("invalid JSON: %v", err)}
		}
		id := keyTok.(string)

		var def treeNode
		if err := dec.Decode(&def); err != nil {
			return nil, nil, &ParseError{Filename: filename, Msg: fmt.Sprintf("node %q: %v", id, err)}
		}
		if err := p.addNode(g, id, &def, filename); err != nil {
			return nil, nil, err
		}
	}

	if start := g.Node(StartNodeID); start == nil || !start.Declared {
		return nil, nil, &ParseError{Filename: filename, Msg: fmt.Sprintf("missing required root node %q", StartNodeID)}
	}
	g.Root = StartNodeID
	g.RequireDeclared = true
	return g, nil, nil
}

func (p *TreeParser) addNode(g *graph.Graph, id string, def *treeNode, filename string) error {
	if def.Result && def.Question != "" {
		return &ParseError{Filename: filename, Msg: fmt.Sprintf("node %q: cannot be both a question and a result", id)}
	}
	if !def.Result && def.Question == "" {
		return &ParseError{Filename: filename, Msg: fmt.Sprintf("node %q: must declare either a question or result:true", id)}
	}

	n := g.Ensure(id)
	n.Declared = true
	n.Help = def.Help
	n.Image = def.Image

	if def.Result {
		fields, err := classificationFields(def.Classification)
		if err != nil {
			return &ParseError{Filename: filename, Msg: fmt.Sprintf("node %q: classification: %v", id, err)}
		}
		meta := &graph.ResultMeta{
			Classification: fields,
			Summary:        def.Summary,
			NextSteps:      def.NextSteps,
		}
		for _, ref := range def.References {
			meta.References = append(meta.References, graph.Reference{Name: ref.Name, URL: ref.URL})
		}
		n.Result = meta
		n.Label = label.Render(def.Summary)
		return nil
	}

	if len(def.Options) == 0 {
		return &ParseError{Filename: filename, Msg: fmt.Sprintf("node %q: a question needs at least one option", id)}
	}
	n.Label = label.Render(def.Question)
	for i, opt := range def.Options {
		if opt.Next == "" {
			return &ParseError{Filename: filename, Msg: fmt.Sprintf("node %q: option %d has no next id", id, i)}
		}
		g.AddEdge(&graph.Edge{
			Src:         id,
			Dst:         opt.Next,
			Label:       label.Render(opt.Label),
			HasLabel:    opt.Label != "",
			Description: opt.Description,
			Image:       opt.Image,
		})
	}
	return nil
}

// classificationFields decodes a JSON object into ordered name/value pairs.
// encoding/json maps do not preserve key order, so the object is walked
// token by token.
func classificationFields(raw json.RawMessage) ([]graph.Field, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("must be an object of named fields")
	}

	var fields []graph.Field
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("field %q: value must be a string", keyTok)
		}
		fields = append(fields, graph.Field{Name: keyTok.(string), Value: value})
	}
	return fields, nil
}
