// Package label processes the HTML-ish display labels carried by flowchart
// nodes and edges: markdown-bold conversion, image extraction, title/context
// splitting, and plain-text fallbacks.
package label

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	ghtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
)

var md = goldmark.New(
	goldmark.WithRendererOptions(ghtml.WithUnsafe()),
)

// Render converts a raw source label into HTML. Markdown bold (`**x**`)
// becomes <strong>; existing HTML such as <img>, <br/>, <h1> and <p> passes
// through untouched.
func Render(raw string) string {
	txt := strings.TrimSpace(raw)
	if txt == "" {
		return ""
	}
	// Unescape \" left over from quoted edge labels.
	txt = strings.ReplaceAll(txt, `\"`, `"`)

	var buf bytes.Buffer
	if err := md.Convert([]byte(txt), &buf); err != nil {
		return txt
	}
	return stripParagraph(buf.String())
}

// stripParagraph unwraps goldmark's block rendering when the whole label is
// a single paragraph, so inline labels stay inline.
func stripParagraph(s string) string {
	s = strings.TrimSpace(s)
	inner, ok := strings.CutPrefix(s, "<p>")
	if !ok {
		return s
	}
	inner, ok = strings.CutSuffix(inner, "</p>")
	if !ok || strings.Contains(inner, "<p>") {
		return s
	}
	return strings.TrimSpace(inner)
}

// Parts is the decomposition of one label into renderable pieces.
type Parts struct {
	TitleHTML   string // option title markup
	ContextHTML string // supporting <p> blocks, if any
	Plain       string // plain-text fallback
	ImageTag    string // first <img> tag, verbatim
	ImageSrc    string // src of that image
}

// Decompose splits an HTML label into title, context, plain text and image.
// If the label contains an <h1>, that is the title and any <p> blocks become
// the context; otherwise the whole label (minus images) is the title. An
// empty label falls back to the given text.
func Decompose(htmlLabel, fallback string) Parts {
	body := parseBody(htmlLabel)
	var p Parts
	if body == nil {
		p.TitleHTML = fallback
		p.Plain = fallback
		return p
	}

	// Pull images out of the tree first; the remainder is the textual label.
	imgs := findAll(body, "img")
	if len(imgs) > 0 {
		p.ImageTag = renderNode(imgs[0])
		p.ImageSrc = attr(imgs[0], "src")
	}
	for _, img := range imgs {
		img.Parent.RemoveChild(img)
	}

	withoutImages := strings.TrimSpace(innerHTML(body))
	if withoutImages == "" {
		plain := Plain(fallback)
		if plain == "" {
			plain = fallback
		}
		p.TitleHTML = plain
		p.Plain = plain
		return p
	}

	if h1 := findFirst(body, "h1"); h1 != nil {
		p.TitleHTML = strings.TrimSpace(innerHTML(h1))
	} else {
		p.TitleHTML = withoutImages
	}

	var ctx strings.Builder
	for _, pn := range findAll(body, "p") {
		ctx.WriteString("<p>")
		ctx.WriteString(strings.TrimSpace(innerHTML(pn)))
		ctx.WriteString("</p>")
	}
	p.ContextHTML = ctx.String()

	p.Plain = Plain(p.TitleHTML)
	if p.Plain == "" {
		p.Plain = Plain(withoutImages)
	}
	if p.Plain == "" {
		p.Plain = fallback
	}
	return p
}

// Plain strips markup from an HTML label, turning <br> into spaces and
// collapsing whitespace.
func Plain(htmlLabel string) string {
	body := parseBody(htmlLabel)
	if body == nil {
		return strings.TrimSpace(htmlLabel)
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			buf.WriteString(n.Data)
		case n.Type == html.ElementNode && n.Data == "br":
			buf.WriteString(" ")
		case n.Type == html.ElementNode && n.Data == "img":
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		// Block boundaries separate words even without whitespace.
		if n.Type == html.ElementNode {
			switch n.Data {
			case "p", "h1", "h2", "h3", "div", "li":
				buf.WriteString(" ")
			}
		}
	}
	walk(body)
	return strings.Join(strings.Fields(buf.String()), " ")
}

// FirstImage returns the first <img> tag and its src, if the label has one.
func FirstImage(htmlLabel string) (tag, src string) {
	body := parseBody(htmlLabel)
	if body == nil {
		return "", ""
	}
	img := findFirst(body, "img")
	if img == nil {
		return "", ""
	}
	return renderNode(img), attr(img, "src")
}

func parseBody(s string) *html.Node {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return nil
	}
	return findFirst(doc, "body")
}

func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func renderNode(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

func innerHTML(n *html.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		html.Render(&buf, c)
	}
	return buf.String()
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}
