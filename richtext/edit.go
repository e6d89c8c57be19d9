package richtext

import (
	"errors"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	ErrNotScriptBlock     = errors.New("no script block at position")
	ErrEmptyScript        = errors.New("script content is empty")
	ErrDeleteNotConfirmed = errors.New("script deletion was not confirmed")
)

// InsertScriptBlock places s at linear position pos. A position inside a
// paragraph splits it, keeping the markup on both sides, so the script always
// ends up as its own top-level node. Out of range positions are clamped.
func InsertScriptBlock(doc Document, pos int, s ScriptBlock) Document {
	if pos < 0 {
		pos = 0
	}
	out := doc.clone()
	start := 0
	for i, n := range doc.Nodes {
		end := start + n.Len()
		if pos == start {
			out.Nodes = insertAt(out.Nodes, i, s)
			return out
		}
		if p, ok := n.(Paragraph); ok && pos < end {
			offset := pos - start
			if offset >= end-start-1 {
				// At the line break: the script goes after the paragraph.
				out.Nodes = insertAt(out.Nodes, i+1, s)
				return out
			}
			left, right := splitNode(p.node, offset)
			out.Nodes[i] = Paragraph{node: left}
			out.Nodes = insertAt(out.Nodes, i+1, s, Paragraph{node: right})
			return out
		}
		start = end
	}
	out.Nodes = append(out.Nodes, s)
	return out
}

// ScriptBlockAt returns the script block starting at pos.
func ScriptBlockAt(doc Document, pos int) (ScriptBlock, error) {
	i, ok := indexAt(doc, pos)
	if !ok {
		return ScriptBlock{}, ErrNotScriptBlock
	}
	s, ok := doc.Nodes[i].(ScriptBlock)
	if !ok {
		return ScriptBlock{}, ErrNotScriptBlock
	}
	return s, nil
}

// DeleteScriptBlock removes the single script block starting at pos.
func DeleteScriptBlock(doc Document, pos int) (Document, error) {
	if _, err := ScriptBlockAt(doc, pos); err != nil {
		return doc, err
	}
	i, _ := indexAt(doc, pos)
	out := doc.clone()
	out.Nodes = append(out.Nodes[:i], out.Nodes[i+1:]...)
	return out, nil
}

// UpdateScriptBlock replaces the script block at pos by deleting it and
// inserting s at the same position.
func UpdateScriptBlock(doc Document, pos int, s ScriptBlock) (Document, error) {
	out, err := DeleteScriptBlock(doc, pos)
	if err != nil {
		return doc, err
	}
	return InsertScriptBlock(out, pos, s), nil
}

// LocateScriptBlock returns the linear position of the script block with the
// given zero-based ordinal, counting embeds while walking the ops.
func LocateScriptBlock(doc Document, ordinal int) (int, bool) {
	if ordinal < 0 {
		return 0, false
	}
	pos, seen := 0, 0
	for _, op := range doc.Ops() {
		if op.Kind == OpEmbed {
			if seen == ordinal {
				return pos, true
			}
			seen++
		}
		pos += op.Len
	}
	return 0, false
}

// ScriptOrdinal maps a node of rendered content back to the ordinal of the
// top-level script block that contains it. root is the parent of the rendered
// top-level nodes. It returns -1 when target is not inside a script block.
func ScriptOrdinal(root, target *html.Node) int {
	top := target
	for top != nil && top.Parent != root {
		top = top.Parent
	}
	if top == nil || !isScriptBlockNode(top) {
		return -1
	}
	ordinal := 0
	for c := root.FirstChild; c != nil && c != top; c = c.NextSibling {
		if isScriptBlockNode(c) {
			ordinal++
		}
	}
	return ordinal
}

// Rendered builds the markup tree a viewer clicks on. The second result holds,
// per document node, its first top-level element in that tree; nil when the
// node rendered to nothing.
func (d Document) Rendered() (*html.Node, []*html.Node) {
	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	tops := make([]*html.Node, len(d.Nodes))
	for i, n := range d.Nodes {
		var markup string
		switch v := n.(type) {
		case Paragraph:
			markup = v.HTML()
		case ScriptBlock:
			markup = v.Markup()
		}
		nodes, err := html.ParseFragment(strings.NewReader(markup), root)
		if err != nil {
			continue
		}
		for _, c := range nodes {
			root.AppendChild(c)
		}
		if len(nodes) > 0 {
			tops[i] = nodes[0]
		}
	}
	return root, tops
}

func indexAt(doc Document, pos int) (int, bool) {
	start := 0
	for i, n := range doc.Nodes {
		if pos == start {
			return i, true
		}
		start += n.Len()
		if pos < start {
			return i, false
		}
	}
	return 0, false
}

func insertAt(nodes []Node, i int, add ...Node) []Node {
	out := make([]Node, 0, len(nodes)+len(add))
	out = append(out, nodes[:i]...)
	out = append(out, add...)
	return append(out, nodes[i:]...)
}

// splitNode cuts n at a text offset into two fresh trees. Both keep the
// ancestor elements and their attributes. Zero-length children stay left.
func splitNode(n *html.Node, offset int) (*html.Node, *html.Node) {
	if n.Type == html.TextNode {
		runes := []rune(n.Data)
		left, right := shallowClone(n), shallowClone(n)
		left.Data = string(runes[:offset])
		right.Data = string(runes[offset:])
		return left, right
	}
	left, right := shallowClone(n), shallowClone(n)
	acc := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		l := textLen(c)
		switch {
		case acc+l <= offset:
			left.AppendChild(cloneNode(c))
		case acc >= offset:
			right.AppendChild(cloneNode(c))
		default:
			cl, cr := splitNode(c, offset-acc)
			left.AppendChild(cl)
			right.AppendChild(cr)
		}
		acc += l
	}
	return left, right
}
