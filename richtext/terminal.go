package richtext

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/deemkeen/disclosures/util"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var spaceRun = regexp.MustCompile(`\s+`)

// Terminal renders a document for a terminal of the given width. Script
// blocks become callouts with a colored left border in their preset colors.
func Terminal(doc Document, width int) string {
	if width < 20 {
		width = 20
	}
	var parts []string
	for _, n := range doc.Nodes {
		switch v := n.(type) {
		case Paragraph:
			if s := renderBlock(v.node, width); strings.TrimSpace(s) != "" {
				parts = append(parts, s)
			}
		case ScriptBlock:
			parts = append(parts, TerminalScript(v, width))
		}
	}
	return strings.Join(parts, "\n\n")
}

// TerminalHTML is Terminal for stored content.
func TerminalHTML(content string, width int) string {
	return Terminal(Parse(content), width)
}

// TerminalScript renders a single script block callout.
func TerminalScript(s ScriptBlock, width int) string {
	p := s.Preset()
	border := lipgloss.Color(util.HexToAnsi256(p.Border, "220"))
	labelColor := lipgloss.Color(util.HexToAnsi256(p.LabelColor, "94"))

	box := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(border).
		PaddingLeft(1).
		Width(width - 2)

	label := lipgloss.NewStyle().Bold(true).Foreground(labelColor).Render(s.Label)
	body := Terminal(Parse(s.Content), width-4)
	if s.Label == "" {
		return box.Render(body)
	}
	return box.Render(label + "\n" + body)
}

func renderBlock(n *html.Node, width int) string {
	switch n.Type {
	case html.TextNode:
		return wrap(strings.TrimSpace(n.Data), width)
	case html.DocumentNode:
		return wrap(inline(n), width)
	}
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3:
		return lipgloss.NewStyle().Bold(true).Underline(n.DataAtom == atom.H1).Width(width).Render(inline(n))
	case atom.Ul, atom.Ol:
		return renderList(n, width)
	case atom.Blockquote:
		var inner []string
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if s := renderBlock(c, width-2); strings.TrimSpace(s) != "" {
				inner = append(inner, s)
			}
		}
		return lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			PaddingLeft(1).
			Faint(true).
			Render(strings.Join(inner, "\n"))
	}
	if findByClass(n, "script-block") != nil {
		// Nested script blocks are not editable but still shown.
		var inner []string
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if isScriptBlockNode(c) {
				inner = append(inner, TerminalScript(ReadScriptBlock(c), width))
			} else if s := renderBlock(c, width); strings.TrimSpace(s) != "" {
				inner = append(inner, s)
			}
		}
		return strings.Join(inner, "\n")
	}
	return wrap(inline(n), width)
}

func renderList(n *html.Node, width int) string {
	var lines []string
	i := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.DataAtom != atom.Li {
			continue
		}
		i++
		bullet := "• "
		if n.DataAtom == atom.Ol {
			bullet = fmt.Sprintf("%d. ", i)
		}
		item := lipgloss.NewStyle().Width(width - len(bullet)).Render(strings.TrimSpace(inline(c)))
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, bullet, item))
	}
	return strings.Join(lines, "\n")
}

func inline(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(inlineNode(c))
	}
	return sb.String()
}

func inlineNode(n *html.Node) string {
	switch n.Type {
	case html.TextNode:
		return spaceRun.ReplaceAllString(n.Data, " ")
	case html.ElementNode:
	default:
		return ""
	}
	text := inline(n)
	style := lipgloss.NewStyle()
	switch n.DataAtom {
	case atom.Br:
		return "\n"
	case atom.Strong, atom.B:
		style = style.Bold(true)
	case atom.Em, atom.I:
		style = style.Italic(true)
	case atom.U:
		style = style.Underline(true)
	case atom.S, atom.Strike, atom.Del:
		style = style.Strikethrough(true)
	case atom.A:
		href, _ := attr(n, "href")
		if href != "" && href != text {
			return style.Underline(true).Render(text) + " (" + href + ")"
		}
		style = style.Underline(true)
	case atom.Li, atom.P:
		return text + " "
	default:
		return text
	}
	return style.Render(text)
}

func wrap(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(strings.TrimSpace(s))
}
