package richtext

import (
	"fmt"
	"html"

	nethtml "golang.org/x/net/html"
)

// ScriptBlock is a labeled, colored callout embedded in block content,
// usually a phrase an agent must read out verbatim.
type ScriptBlock struct {
	Label   string  `json:"label"`
	Content string  `json:"content"` // HTML fragment limited to ScriptFormats
	Color   ColorID `json:"colorId"`
}

// Preset is the styling for the block's color.
func (s ScriptBlock) Preset() Preset {
	return PresetFor(s.colorOrDefault())
}

func (s ScriptBlock) colorOrDefault() ColorID {
	if s.Color == "" {
		return DefaultColor
	}
	return s.Color
}

// Markup is the storage form of the block. The color id is written as given
// even when it is not a known preset; styling then falls back to amber.
func (s ScriptBlock) Markup() string {
	p := s.Preset()
	return fmt.Sprintf(
		`<div class="script-block" data-script="true" contenteditable="false" data-color="%s" style="background:%s;border-left-color:%s"><span class="script-label" style="color:%s">%s</span><div class="script-content">%s</div></div>`,
		html.EscapeString(string(s.colorOrDefault())), p.Background, p.Border, p.LabelColor, html.EscapeString(s.Label), s.Content,
	)
}

func isScriptBlockNode(n *nethtml.Node) bool {
	if !hasClass(n, "script-block") {
		return false
	}
	v, _ := attr(n, "data-script")
	return v == "true" || v == ""
}

// ReadScriptBlock recovers a script block from its rendered markup: the label
// text, the inner HTML of the content region and the data-color attribute.
// Missing parts come back empty; a missing color is amber.
func ReadScriptBlock(n *nethtml.Node) ScriptBlock {
	var s ScriptBlock
	if label := findByClass(n, "script-label"); label != nil {
		s.Label = Paragraph{node: label}.Text()
	}
	if content := findByClass(n, "script-content"); content != nil {
		s.Content = innerHTML(content)
	}
	if color, ok := attr(n, "data-color"); ok && color != "" {
		s.Color = ColorID(color)
	} else {
		s.Color = DefaultColor
	}
	return s
}
