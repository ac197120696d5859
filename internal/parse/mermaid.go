package parse

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/dgallion1/guidegen/internal/graph"
	"github.com/dgallion1/guidegen/internal/label"
)

// Edge formats supported:
//
//	A --> B
//	A --> |Label| B
//	A --> |"Label with HTML"| B
var edgeRe = regexp.MustCompile(
	`^\s*([A-Za-z0-9_]+)\s*-->\s*(?:\|((?:"[^"]*"|[^|])*)\|\s*)?([A-Za-z0-9_]+)\s*$`)

// Node format:
//
//	NodeId["Some <br/> Label"]
var nodeRe = regexp.MustCompile(
	`^\s*([A-Za-z0-9_]+)\s*\[\s*"([\s\S]*?)"\s*\]\s*$`)

// cosmeticPrefixes are Mermaid directives that carry no structure. They are
// ignored without a warning.
var cosmeticPrefixes = []string{
	"flowchart", "graph", "classDef", "class ", "style ", "linkStyle",
	"click ", "direction", "subgraph", "end",
}

// MermaidParser extracts nodes and labeled edges from the Mermaid flowchart
// subset used for decision guides.
type MermaidParser struct{}

func (p *MermaidParser) Parse(r io.Reader, filename string) (*graph.Graph, []string, error) {
	g := graph.New()
	var warnings []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		s := strings.TrimSpace(line)

		if s == "" || strings.HasPrefix(s, "%%") {
			continue
		}

		if m := nodeRe.FindStringSubmatch(line); m != nil {
			g.SetLabel(m[1], label.Render(m[2]))
			continue
		}

		if m := edgeRe.FindStringSubmatch(line); m != nil {
			src, lbl, dst := m[1], m[2], m[3]
			e := &graph.Edge{Src: src, Dst: dst}
			if strings.Contains(line, "|") {
				e.HasLabel = true
				e.Label = label.Render(unquote(lbl))
			}
			g.AddEdge(e)
			continue
		}

		if isCosmetic(s) {
			continue
		}

		// A line mentioning an arrow was meant to be an edge; failing the
		// edge rule is structural, not cosmetic.
		if strings.Contains(s, "-->") {
			return nil, warnings, &ParseError{
				Filename: filename,
				Line:     lineNo,
				Msg:      fmt.Sprintf("malformed edge declaration: %q", s),
			}
		}
		if strings.Contains(s, "[") {
			return nil, warnings, &ParseError{
				Filename: filename,
				Line:     lineNo,
				Msg:      fmt.Sprintf("malformed node declaration: %q", s),
			}
		}

		warnings = append(warnings, fmt.Sprintf("%s:%d: skipping unrecognized line: %q", filename, lineNo, s))
	}
	if err := scanner.Err(); err != nil {
		return nil, warnings, fmt.Errorf("read source: %w", err)
	}

	if g.Len() == 0 {
		return nil, warnings, &ParseError{Filename: filename, Msg: "no nodes were parsed from input"}
	}
	return g, warnings, nil
}

// unquote strips the wrapping quotes of a |"..."| edge label.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return s
}

func isCosmetic(s string) bool {
	for _, prefix := range cosmeticPrefixes {
		if strings.HasPrefix(s, prefix) || s == strings.TrimSpace(prefix) {
			return true
		}
	}
	return false
}
