// Package render emits the self-contained interactive HTML document: inline
// styles, an inline JavaScript navigator, and the compiled tree embedded as
// JSON. The document makes no network fetches after load.
package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"time"

	"github.com/dgallion1/guidegen/internal/guide"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// Mode selects the front-end embedded in the output document. Both modes
// run over the same compiled tree; only the initial state and available
// jump targets differ.
type Mode string

const (
	// ModeClickthrough always starts at the resolved root.
	ModeClickthrough Mode = "clickthrough"
	// ModeFiltering starts anywhere and narrows a ranked hypothesis list.
	ModeFiltering Mode = "filtering"
)

// ParseMode validates a mode name from the CLI.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeClickthrough, ModeFiltering:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown mode %q (want %q or %q)", s, ModeClickthrough, ModeFiltering)
	}
}

// Options configure one rendered document.
type Options struct {
	Title         string
	Mode          Mode
	MaxHypotheses int // filtering mode: ranked hypotheses shown, default 5
}

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html.tmpl"))

type page struct {
	Title         string
	BuildID       string
	GeneratedAt   string
	TreeJSON      template.JS
	ModelJSON     template.JS
	MaxHypotheses int
}

// Document renders a compiled tree into a standalone HTML document.
func Document(t *guide.Tree, opts Options) ([]byte, error) {
	if opts.Title == "" {
		opts.Title = "Classification Guide"
	}
	if opts.Mode == "" {
		opts.Mode = ModeClickthrough
	}
	if opts.MaxHypotheses <= 0 {
		opts.MaxHypotheses = 5
	}

	treeJSON, err := embedJSON(t)
	if err != nil {
		return nil, fmt.Errorf("encode tree: %w", err)
	}

	p := page{
		Title:         opts.Title,
		BuildID:       NewBuildID(),
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		TreeJSON:      treeJSON,
		MaxHypotheses: opts.MaxHypotheses,
	}

	name := "clickthrough.html.tmpl"
	if opts.Mode == ModeFiltering {
		name = "filtering.html.tmpl"
		modelJSON, err := embedJSON(guide.BuildFilterModel(t))
		if err != nil {
			return nil, fmt.Errorf("encode filter model: %w", err)
		}
		p.ModelJSON = modelJSON
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, p); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}
	return buf.Bytes(), nil
}

// embedJSON marshals for inclusion inside a <script> element. The default
// encoder escapes <, > and &, so "</script>" cannot appear in the payload.
func embedJSON(v any) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}
