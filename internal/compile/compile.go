// Package compile wires the full pipeline: extract the raw graph, detect
// cycles, resolve the root, report dead content, build the decision tree,
// and render the output document. A run either completes or fails fast with
// one of the typed errors; no partial output is ever written.
package compile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/guidegen/internal/config"
	"github.com/dgallion1/guidegen/internal/guide"
	"github.com/dgallion1/guidegen/internal/parse"
	"github.com/dgallion1/guidegen/internal/render"
)

// Request describes one compilation.
type Request struct {
	InputPath  string
	OutputPath string
	Title      string
	Mode       render.Mode
	// Strict promotes unreachable-node warnings to fatal errors.
	Strict bool
}

// Result summarizes a completed compilation.
type Result struct {
	Tree          *guide.Tree
	OutputPath    string
	Warnings      []string
	RootID        string
	SyntheticRoot bool
	Questions     int
	Results       int
}

// Build runs the pipeline up to the decision tree, without rendering or
// writing anything.
func Build(cfg config.Config, log *slog.Logger, req Request) (*Result, error) {
	if err := ValidateInputPath(req.InputPath); err != nil {
		return nil, err
	}

	p, err := parse.ForFile(req.InputPath)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(req.InputPath)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	g, warnings, err := p.Parse(f, filepath.Base(req.InputPath))
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		log.Warn(w)
	}

	// Cycles are checked before root resolution: a cyclic component
	// swallows its own entry edges and would otherwise misreport as a
	// missing root.
	if err := g.DetectCycle(); err != nil {
		return nil, err
	}

	rootID, synthetic, err := g.Resolve(cfg.StartPrompt)
	if err != nil {
		return nil, err
	}

	// A pinned root may carry fan-in from nodes the walk never reaches;
	// reachable fan-in is already fatal as a cycle.
	if n := g.Indegree(rootID); n > 0 {
		w := fmt.Sprintf("root %q has %d incoming edge(s)", rootID, n)
		warnings = append(warnings, w)
		log.Warn("root has incoming edges", "root", rootID, "count", n)
	}

	if dead := g.Unreachable(rootID); len(dead) > 0 {
		if req.Strict {
			return nil, fmt.Errorf("unreachable nodes: %s", strings.Join(dead, ", "))
		}
		w := fmt.Sprintf("unreachable nodes (dead content): %s", strings.Join(dead, ", "))
		warnings = append(warnings, w)
		log.Warn("dead content", "nodes", dead)
	}

	tree, err := guide.Build(g, rootID, guide.BuildOptions{
		BlankOptionLabels: cfg.FallbackLabel == config.FallbackBlank,
	})
	if err != nil {
		return nil, err
	}

	res := &Result{
		Tree:          tree,
		Warnings:      warnings,
		RootID:        rootID,
		SyntheticRoot: synthetic,
		Questions:     len(tree.Questions()),
		Results:       len(tree.Results()),
	}

	if synthetic {
		log.Info("multiple top nodes, using synthetic start question",
			"roots", len(tree.Root().Options))
	} else {
		log.Info("root detected", "root", rootID)
	}
	log.Info("tree built", "questions", res.Questions, "results", res.Results)

	return res, nil
}

// Document builds the tree and renders it, returning the document bytes
// without touching the filesystem. Used by the preview server.
func Document(cfg config.Config, log *slog.Logger, req Request) ([]byte, *Result, error) {
	res, err := Build(cfg, log, req)
	if err != nil {
		return nil, nil, err
	}
	doc, err := render.Document(res.Tree, render.Options{
		Title:         req.Title,
		Mode:          req.Mode,
		MaxHypotheses: cfg.MaxHypotheses,
	})
	if err != nil {
		return nil, nil, err
	}
	return doc, res, nil
}

// Run compiles one source file into an output document on disk.
func Run(cfg config.Config, log *slog.Logger, req Request) (*Result, error) {
	doc, res, err := Document(cfg, log, req)
	if err != nil {
		return nil, err
	}

	out := EnsureHTMLPath(req.OutputPath)
	if err := os.WriteFile(out, doc, 0o644); err != nil {
		return nil, fmt.Errorf("write output: %w", err)
	}
	res.OutputPath = out

	log.Info("wrote guide", "output", out, "bytes", len(doc))
	return res, nil
}

// ValidateInputPath checks that the input exists and has a supported
// extension.
func ValidateInputPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("input file not found: %s", path)
	}
	if info.IsDir() {
		return fmt.Errorf("input is a directory: %s", path)
	}
	if !parse.IsSupportedExtension(path) {
		return fmt.Errorf("unsupported input %s: want one of .mmd, .mermaid, .json", path)
	}
	return nil
}

// EnsureHTMLPath forces a .html extension on the output path.
func EnsureHTMLPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".html") {
		return path
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".html"
}
