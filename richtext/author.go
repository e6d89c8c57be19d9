package richtext

import (
	"bytes"
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var tagRegex = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// Author turns editor input into stored HTML. Input that already contains
// tags is treated as HTML; anything else is Markdown. Both are sanitized
// against fs.
func Author(input string, fs FormatSet) string {
	if tagRegex.MatchString(input) {
		return fs.Sanitize(input)
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(input), &buf); err != nil {
		return fs.Sanitize(NewParagraph(input).HTML())
	}
	return fs.Sanitize(buf.String())
}
