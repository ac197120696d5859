package label

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "Rifle", "Rifle"},
		{"trimmed", "  Rifle  ", "Rifle"},
		{"empty", "   ", ""},
		{"bold", "**Has** a stock", "<strong>Has</strong> a stock"},
		{"escaped quote", `a \"quoted\" word`, `a &quot;quoted&quot; word`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.raw); got != tt.want {
				t.Errorf("Render(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestRender_HTMLPassthrough(t *testing.T) {
	got := Render(`<h1>Revolver</h1>`)
	if !strings.Contains(got, "<h1>Revolver</h1>") {
		t.Errorf("inline HTML should pass through, got %q", got)
	}
}

func TestDecompose_TitleAndContext(t *testing.T) {
	p := Decompose(`<img src="revolver.jpg"/><h1>Revolver</h1><p>Rotating cylinder.</p>`, "fallback")

	if p.TitleHTML != "Revolver" {
		t.Errorf("title: got %q", p.TitleHTML)
	}
	if p.ContextHTML != "<p>Rotating cylinder.</p>" {
		t.Errorf("context: got %q", p.ContextHTML)
	}
	if p.ImageSrc != "revolver.jpg" {
		t.Errorf("image src: got %q", p.ImageSrc)
	}
	if !strings.Contains(p.ImageTag, `src="revolver.jpg"`) {
		t.Errorf("image tag: got %q", p.ImageTag)
	}
	if p.Plain != "Revolver" {
		t.Errorf("plain: got %q", p.Plain)
	}
}

func TestDecompose_NoHeading(t *testing.T) {
	p := Decompose("Has a <strong>shoulder</strong> stock", "fallback")

	if p.TitleHTML != "Has a <strong>shoulder</strong> stock" {
		t.Errorf("title: got %q", p.TitleHTML)
	}
	if p.ContextHTML != "" {
		t.Errorf("context should be empty, got %q", p.ContextHTML)
	}
	if p.Plain != "Has a shoulder stock" {
		t.Errorf("plain: got %q", p.Plain)
	}
}

func TestDecompose_ImageOnly(t *testing.T) {
	p := Decompose(`<img src="pistol.png"/>`, "bolt action rifle")

	if p.ImageSrc != "pistol.png" {
		t.Errorf("image src: got %q", p.ImageSrc)
	}
	if p.TitleHTML != "bolt action rifle" {
		t.Errorf("title should fall back, got %q", p.TitleHTML)
	}
	if p.Plain != "bolt action rifle" {
		t.Errorf("plain should fall back, got %q", p.Plain)
	}
}

func TestDecompose_Empty(t *testing.T) {
	p := Decompose("", "semi automatic")
	if p.TitleHTML != "semi automatic" || p.Plain != "semi automatic" {
		t.Errorf("fallback not applied: %+v", p)
	}
}

func TestPlain(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"line breaks", "Lever<br/>action", "Lever action"},
		{"images dropped", `<img src="x.png"/>Rifle`, "Rifle"},
		{"blocks separate", "<h1>Rifle</h1><p>Long gun</p>", "Rifle Long gun"},
		{"collapse", "  a \n  b  ", "a b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Plain(tt.in); got != tt.want {
				t.Errorf("Plain(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFirstImage(t *testing.T) {
	tag, src := FirstImage(`text <img src="a.png"/> more <img src="b.png"/>`)
	if src != "a.png" {
		t.Errorf("src: got %q", src)
	}
	if !strings.Contains(tag, "a.png") {
		t.Errorf("tag: got %q", tag)
	}

	if tag, src = FirstImage("no images here"); tag != "" || src != "" {
		t.Errorf("expected empty results, got %q %q", tag, src)
	}
}
