package parse

import (
	"errors"
	"strings"
	"testing"
)

const sampleTree = `{
  "start": {
    "question": "Does it have a shoulder stock?",
    "help": "Look at the rear of the firearm.",
    "options": [
      {"label": "Yes", "description": "Braced against the shoulder", "next": "rifle"},
      {"label": "No", "image": "pistol.png", "next": "pistol"}
    ]
  },
  "rifle": {
    "result": true,
    "classification": {"Category": "Long gun", "Action": "Varies"},
    "summary": "This is a rifle.",
    "next_steps": "Check the action type.",
    "references": [{"name": "ATF guide", "url": "https://example.org/atf"}]
  },
  "pistol": {
    "result": true,
    "summary": "This is a pistol."
  }
}`

func TestTreeParse(t *testing.T) {
	p := &TreeParser{}
	g, warnings, err := p.Parse(strings.NewReader(sampleTree), "guide.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	if g.Root != StartNodeID {
		t.Errorf("root: got %q", g.Root)
	}
	if !g.RequireDeclared {
		t.Error("declarative sources must require declared destinations")
	}

	start := g.Node("start")
	if start.Label != "Does it have a shoulder stock?" {
		t.Errorf("start label: got %q", start.Label)
	}
	if start.Help != "Look at the rear of the firearm." {
		t.Errorf("start help: got %q", start.Help)
	}

	out := g.Out("start")
	if len(out) != 2 {
		t.Fatalf("expected 2 options, got %d", len(out))
	}
	if out[0].Dst != "rifle" || out[1].Dst != "pistol" {
		t.Errorf("option order: got %q, %q", out[0].Dst, out[1].Dst)
	}
	if out[0].Description != "Braced against the shoulder" {
		t.Errorf("option description: got %q", out[0].Description)
	}
	if out[1].Image != "pistol.png" {
		t.Errorf("option image: got %q", out[1].Image)
	}

	rifle := g.Node("rifle")
	if rifle.Result == nil {
		t.Fatal("rifle should carry result metadata")
	}
	if rifle.Result.Summary != "This is a rifle." {
		t.Errorf("summary: got %q", rifle.Result.Summary)
	}
	cls := rifle.Result.Classification
	if len(cls) != 2 || cls[0].Name != "Category" || cls[1].Name != "Action" {
		t.Errorf("classification order: got %+v", cls)
	}
	if len(rifle.Result.References) != 1 || rifle.Result.References[0].URL != "https://example.org/atf" {
		t.Errorf("references: got %+v", rifle.Result.References)
	}
}

func TestTreeParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{
			"missing start",
			`{"a": {"result": true, "summary": "s"}}`,
			`missing required root node "start"`,
		},
		{
			"question and result",
			`{"start": {"question": "q", "result": true, "options": [{"label": "x", "next": "a"}]}}`,
			"cannot be both",
		},
		{
			"neither question nor result",
			`{"start": {"help": "only help"}}`,
			"must declare either",
		},
		{
			"question without options",
			`{"start": {"question": "q"}}`,
			"at least one option",
		},
		{
			"option without next",
			`{"start": {"question": "q", "options": [{"label": "x"}]}}`,
			"option 0 has no next",
		},
		{
			"top level array",
			`[{"question": "q"}]`,
			"top level must be an object",
		},
		{
			"classification not an object",
			`{"start": {"result": true, "summary": "s", "classification": ["a"]}}`,
			"must be an object",
		},
		{
			"truncated",
			`{"start": {"question":`,
			"invalid JSON",
		},
	}
	p := &TreeParser{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := p.Parse(strings.NewReader(tt.src), "guide.json")
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrParse) {
				t.Errorf("expected ErrParse, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error %q does not mention %q", err, tt.msg)
			}
		})
	}
}

func TestForFile(t *testing.T) {
	tests := []struct {
		path string
		want Parser
		ok   bool
	}{
		{"guide.mmd", &MermaidParser{}, true},
		{"guide.mermaid", &MermaidParser{}, true},
		{"GUIDE.MMD", &MermaidParser{}, true},
		{"guide.json", &TreeParser{}, true},
		{"guide.txt", nil, false},
		{"guide", nil, false},
	}
	for _, tt := range tests {
		got, err := ForFile(tt.path)
		if tt.ok && err != nil {
			t.Errorf("ForFile(%q): unexpected error %v", tt.path, err)
			continue
		}
		if !tt.ok {
			if err == nil {
				t.Errorf("ForFile(%q): expected error", tt.path)
			}
			continue
		}
		switch tt.want.(type) {
		case *MermaidParser:
			if _, ok := got.(*MermaidParser); !ok {
				t.Errorf("ForFile(%q) = %T, want *MermaidParser", tt.path, got)
			}
		case *TreeParser:
			if _, ok := got.(*TreeParser); !ok {
				t.Errorf("ForFile(%q) = %T, want *TreeParser", tt.path, got)
			}
		}
	}
}
