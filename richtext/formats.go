package richtext

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type Format string

const (
	FormatHeader      Format = "header"
	FormatBold        Format = "bold"
	FormatItalic      Format = "italic"
	FormatUnderline   Format = "underline"
	FormatStrike      Format = "strike"
	FormatList        Format = "list"
	FormatBullet      Format = "bullet"
	FormatLink        Format = "link"
	FormatColor       Format = "color"
	FormatBackground  Format = "background"
	FormatBlockquote  Format = "blockquote"
	FormatScriptBlock Format = "scriptBlock"
)

// FormatSet is the formatting an editor allows.
type FormatSet []Format

var (
	// OuterFormats apply to the block content itself.
	OuterFormats = FormatSet{
		FormatHeader,
		FormatBold, FormatItalic, FormatUnderline, FormatStrike,
		FormatList, FormatBullet,
		FormatLink,
		FormatColor, FormatBackground,
		FormatBlockquote,
		FormatScriptBlock,
	}

	// ScriptFormats apply inside a script block.
	ScriptFormats = FormatSet{
		FormatBold, FormatItalic, FormatUnderline,
		FormatList, FormatBullet,
		FormatLink,
		FormatColor,
	}
)

func (fs FormatSet) Has(f Format) bool {
	for _, x := range fs {
		if x == f {
			return true
		}
	}
	return false
}

func (fs FormatSet) allowsTag(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Br, atom.Span:
		return true
	case atom.H1, atom.H2, atom.H3:
		return fs.Has(FormatHeader)
	case atom.Strong, atom.B:
		return fs.Has(FormatBold)
	case atom.Em, atom.I:
		return fs.Has(FormatItalic)
	case atom.U:
		return fs.Has(FormatUnderline)
	case atom.S, atom.Strike, atom.Del:
		return fs.Has(FormatStrike)
	case atom.Ol:
		return fs.Has(FormatList)
	case atom.Ul:
		return fs.Has(FormatBullet) || fs.Has(FormatList)
	case atom.Li:
		return fs.Has(FormatList) || fs.Has(FormatBullet)
	case atom.A:
		return fs.Has(FormatLink)
	case atom.Blockquote:
		return fs.Has(FormatBlockquote)
	}
	return false
}

func (fs FormatSet) allowsStyle(prop string) bool {
	switch prop {
	case "color":
		return fs.Has(FormatColor)
	case "background", "background-color":
		return fs.Has(FormatBackground)
	}
	return false
}

// dropped elements lose their content too.
var dropped = map[atom.Atom]bool{
	atom.Script: true, atom.Style: true, atom.Iframe: true, atom.Object: true,
	atom.Embed: true, atom.Head: true, atom.Title: true, atom.Template: true,
}

// Sanitize rewrites an HTML fragment so only markup allowed by fs remains.
// Disallowed elements are unwrapped, keeping their text. Script blocks
// survive only when fs allows them, with their content sanitized against
// ScriptFormats.
func (fs FormatSet) Sanitize(fragment string) string {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return html.EscapeString(fragment)
	}
	var buf bytes.Buffer
	for _, n := range nodes {
		fs.render(&buf, n)
	}
	return buf.String()
}

func (fs FormatSet) render(buf *bytes.Buffer, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" && structural(n.Parent) {
			return
		}
		buf.WriteString(html.EscapeString(n.Data))
		return
	case html.ElementNode:
	default:
		return
	}

	if isScriptBlockNode(n) {
		if fs.Has(FormatScriptBlock) {
			s := ReadScriptBlock(n)
			s.Content = ScriptFormats.Sanitize(s.Content)
			buf.WriteString(s.Markup())
			return
		}
		// Flatten to its content.
		if content := findByClass(n, "script-content"); content != nil {
			fs.renderChildren(buf, content)
		}
		return
	}

	if dropped[n.DataAtom] {
		return
	}
	if !fs.allowsTag(n.DataAtom) {
		fs.renderChildren(buf, n)
		return
	}

	buf.WriteByte('<')
	buf.WriteString(n.Data)
	for _, a := range n.Attr {
		if v, ok := fs.cleanAttr(n.DataAtom, a); ok {
			buf.WriteByte(' ')
			buf.WriteString(a.Key)
			buf.WriteString(`="`)
			buf.WriteString(html.EscapeString(v))
			buf.WriteByte('"')
		}
	}
	buf.WriteByte('>')
	if n.DataAtom == atom.Br {
		return
	}
	fs.renderChildren(buf, n)
	buf.WriteString("</")
	buf.WriteString(n.Data)
	buf.WriteByte('>')
}

func (fs FormatSet) renderChildren(buf *bytes.Buffer, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		fs.render(buf, c)
	}
}

func (fs FormatSet) cleanAttr(tag atom.Atom, a html.Attribute) (string, bool) {
	switch a.Key {
	case "style":
		v := fs.cleanStyle(a.Val)
		return v, v != ""
	case "href":
		return a.Val, tag == atom.A && safeURL(a.Val)
	case "target":
		return "_blank", tag == atom.A
	case "rel":
		return "noopener noreferrer", tag == atom.A
	}
	return "", false
}

func (fs FormatSet) cleanStyle(style string) string {
	var kept []string
	for _, decl := range strings.Split(style, ";") {
		prop, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		val = strings.TrimSpace(val)
		if val == "" || (strings.ContainsAny(val, "()<>\"") && !strings.HasPrefix(val, "rgb")) {
			continue
		}
		if fs.allowsStyle(prop) {
			kept = append(kept, prop+": "+val)
		}
	}
	return strings.Join(kept, "; ")
}

// structural parents only hold block children, so whitespace text between
// them is layout noise.
func structural(parent *html.Node) bool {
	if parent == nil {
		return true
	}
	switch parent.DataAtom {
	case atom.Ul, atom.Ol, atom.Blockquote:
		return true
	}
	return false
}

func safeURL(u string) bool {
	u = strings.ToLower(strings.TrimSpace(u))
	for _, prefix := range []string{"http://", "https://", "mailto:", "tel:", "/", "#"} {
		if strings.HasPrefix(u, prefix) {
			return true
		}
	}
	return !strings.Contains(u, ":")
}
