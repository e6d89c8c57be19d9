package richtext

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Node is one top-level unit of a Document: a Paragraph or a ScriptBlock.
type Node interface {
	// Len is the number of linear positions the node occupies.
	Len() int
	isNode()
}

// Paragraph is a top-level run of ordinary rich text: one element such as
// <p>, <ul> or <h2>, or a run of bare text and inline elements. It occupies
// its text length plus one position for the line break that ends it.
type Paragraph struct {
	node *html.Node
}

// NewParagraph wraps plain text in a <p>.
func NewParagraph(text string) Paragraph {
	p := &html.Node{Type: html.ElementNode, Data: "p", DataAtom: atom.P}
	p.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return Paragraph{node: p}
}

func (p Paragraph) isNode() {}

func (p Paragraph) Len() int {
	return textLen(p.node) + 1
}

// Text is the plain text content.
func (p Paragraph) Text() string {
	var sb strings.Builder
	collectText(p.node, &sb)
	return sb.String()
}

// Tag is the element name, or "" for an inline run.
func (p Paragraph) Tag() string {
	if p.node.Type != html.ElementNode {
		return ""
	}
	return p.node.Data
}

// HTML renders the paragraph markup.
func (p Paragraph) HTML() string {
	var buf bytes.Buffer
	html.Render(&buf, p.node)
	return buf.String()
}

// Root exposes the parsed markup. Callers must not modify it.
func (p Paragraph) Root() *html.Node {
	return p.node
}

func (s ScriptBlock) isNode() {}

// Len of a script block is always one: it is an atomic embed.
func (s ScriptBlock) Len() int {
	return 1
}

// Document is block content as an ordered sequence of nodes. HTML is only
// produced and consumed at the storage boundary by Parse and HTML.
type Document struct {
	Nodes []Node
}

// Parse reads stored block content. Whitespace between top-level elements is
// dropped; script blocks are recognized at the top level only. Consecutive
// top-level text and inline elements form a single paragraph.
func Parse(s string) Document {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(s), body)
	if err != nil {
		// The tokenizer only fails on reader errors, which strings.Reader never returns.
		return Document{Nodes: []Node{NewParagraph(s)}}
	}
	var doc Document
	var run *html.Node
	flush := func() {
		if run == nil {
			return
		}
		for run.LastChild != nil && isBlankText(run.LastChild) {
			run.RemoveChild(run.LastChild)
		}
		if run.FirstChild != nil {
			doc.Nodes = append(doc.Nodes, Paragraph{node: run})
		}
		run = nil
	}
	for _, n := range nodes {
		switch {
		case n.Type == html.CommentNode:
			continue
		case isScriptBlockNode(n):
			flush()
			doc.Nodes = append(doc.Nodes, ReadScriptBlock(n))
		case isInline(n):
			if run == nil {
				if isBlankText(n) {
					continue
				}
				// A document node renders as its children only.
				run = &html.Node{Type: html.DocumentNode}
			}
			run.AppendChild(n)
		default:
			flush()
			doc.Nodes = append(doc.Nodes, Paragraph{node: n})
		}
	}
	flush()
	return doc
}

var inlineAtoms = map[atom.Atom]bool{
	atom.A: true, atom.Abbr: true, atom.B: true, atom.Br: true, atom.Code: true,
	atom.Del: true, atom.Em: true, atom.Font: true, atom.I: true, atom.Mark: true,
	atom.S: true, atom.Small: true, atom.Span: true, atom.Strike: true,
	atom.Strong: true, atom.Sub: true, atom.Sup: true, atom.U: true,
}

func isInline(n *html.Node) bool {
	return n.Type == html.TextNode || n.Type == html.ElementNode && inlineAtoms[n.DataAtom]
}

func isBlankText(n *html.Node) bool {
	return n.Type == html.TextNode && strings.TrimSpace(n.Data) == ""
}

// HTML serializes the document back to its storage form.
func (d Document) HTML() string {
	var sb strings.Builder
	for _, n := range d.Nodes {
		switch v := n.(type) {
		case Paragraph:
			sb.WriteString(v.HTML())
		case ScriptBlock:
			sb.WriteString(v.Markup())
		}
	}
	return sb.String()
}

// Len is the total number of linear positions.
func (d Document) Len() int {
	total := 0
	for _, n := range d.Nodes {
		total += n.Len()
	}
	return total
}

// IsBlank reports whether the document has no text and no script blocks.
func (d Document) IsBlank() bool {
	for _, n := range d.Nodes {
		switch v := n.(type) {
		case ScriptBlock:
			return false
		case Paragraph:
			if strings.TrimSpace(v.Text()) != "" {
				return false
			}
		}
	}
	return true
}

// Scripts returns every script block in order.
func (d Document) Scripts() []ScriptBlock {
	var out []ScriptBlock
	for _, n := range d.Nodes {
		if s, ok := n.(ScriptBlock); ok {
			out = append(out, s)
		}
	}
	return out
}

type OpKind int

const (
	OpText OpKind = iota
	OpEmbed
)

// Op is one entry of the linear representation of a document.
type Op struct {
	Kind  OpKind
	Len   int
	Index int // position in Document.Nodes
}

// Ops lists the document as text runs and embeds.
func (d Document) Ops() []Op {
	ops := make([]Op, 0, len(d.Nodes))
	for i, n := range d.Nodes {
		kind := OpText
		if _, ok := n.(ScriptBlock); ok {
			kind = OpEmbed
		}
		ops = append(ops, Op{Kind: kind, Len: n.Len(), Index: i})
	}
	return ops
}

func (d Document) clone() Document {
	nodes := make([]Node, len(d.Nodes))
	copy(nodes, d.Nodes)
	return Document{Nodes: nodes}
}

func textLen(n *html.Node) int {
	if n.Type == html.TextNode {
		return utf8.RuneCountInString(n.Data)
	}
	total := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		total += textLen(c)
	}
	return total
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

func innerHTML(n *html.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		html.Render(&buf, c)
	}
	return buf.String()
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, a := range n.Attr {
		if a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func findByClass(n *html.Node, class string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if hasClass(c, class) {
			return c
		}
		if found := findByClass(c, class); found != nil {
			return found
		}
	}
	return nil
}

// cloneNode deep-copies n without its parent and siblings.
func cloneNode(n *html.Node) *html.Node {
	c := shallowClone(n)
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		c.AppendChild(cloneNode(ch))
	}
	return c
}

func shallowClone(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		c.Attr = make([]html.Attribute, len(n.Attr))
		copy(c.Attr, n.Attr)
	}
	return c
}

func (d Document) plainText() string {
	var sb strings.Builder
	for _, n := range d.Nodes {
		switch v := n.(type) {
		case Paragraph:
			sb.WriteString(v.Text())
		case ScriptBlock:
			sb.WriteString(v.Label)
		}
	}
	return sb.String()
}
