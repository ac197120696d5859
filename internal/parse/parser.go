// Package parse extracts the raw node and edge sets from guide source
// files. Each supported format has its own parser behind one interface; all
// of them normalize to the same graph model.
package parse

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/guidegen/internal/graph"
)

// Parser converts source bytes into a raw graph. Warnings report skipped or
// cosmetic constructs; they never abort extraction.
type Parser interface {
	Parse(r io.Reader, filename string) (g *graph.Graph, warnings []string, err error)
}

// ErrParse is the sentinel kind for malformed source input.
var ErrParse = errors.New("parse error")

// ParseError reports a malformed construct with its source line.
type ParseError struct {
	Filename string
	Line     int
	Msg      string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Filename, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Filename, e.Msg)
}

func (e *ParseError) Unwrap() error { return ErrParse }

// SupportedExtensions lists source file extensions the compiler accepts.
var SupportedExtensions = map[string]bool{
	".mmd":     true,
	".mermaid": true,
	".json":    true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mmd", ".mermaid":
		return &MermaidParser{}, nil
	case ".json":
		return &TreeParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", filepath.Ext(filename))
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}
