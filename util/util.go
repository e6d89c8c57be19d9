package util

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/charmbracelet/ssh"
	"github.com/mattn/go-runewidth"
	gossh "golang.org/x/crypto/ssh"
)

//go:embed version.txt
var embeddedVersion string

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)
var whitespaceRegex = regexp.MustCompile(`\s+`)

func LogPublicKey(s ssh.Session) {
	log.Printf("%s@%s opened a new ssh-session..", s.User(), s.RemoteAddr())
}

func PublicKeyToString(s ssh.PublicKey) string {
	return strings.TrimSpace(string(gossh.MarshalAuthorizedKey(s)))
}

func PkToHash(pk string) string {
	h := sha256.New()
	h.Write([]byte(pk))
	return hex.EncodeToString(h.Sum(nil))
}

func GetVersion() string {
	return strings.TrimSpace(embeddedVersion)
}

func GetNameAndVersion() string {
	return fmt.Sprintf("%s / %s", Name, GetVersion())
}

// UnescapeHTML converts common HTML entities back to their characters
func UnescapeHTML(text string) string {
	text = strings.ReplaceAll(text, "&lt;", "<")
	text = strings.ReplaceAll(text, "&gt;", ">")
	text = strings.ReplaceAll(text, "&amp;", "&")
	text = strings.ReplaceAll(text, "&quot;", "\"")
	text = strings.ReplaceAll(text, "&#34;", "\"")
	text = strings.ReplaceAll(text, "&#39;", "'")
	text = strings.ReplaceAll(text, "&nbsp;", " ")
	return text
}

// StripHTMLTags removes HTML tags from a string and converts common HTML entities
func StripHTMLTags(html string) string {
	// Block-level closings become spaces so adjacent paragraphs don't merge
	text := strings.NewReplacer("</p>", " ", "</li>", " ", "</div>", " ", "<br>", " ", "</h1>", " ", "</h2>", " ", "</h3>", " ").Replace(html)
	text = htmlTagRegex.ReplaceAllString(text, "")
	text = UnescapeHTML(text)
	text = whitespaceRegex.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Excerpt returns the plain text of an HTML fragment cut to width terminal cells.
func Excerpt(html string, width int) string {
	return TruncateWidth(StripHTMLTags(html), width)
}

// TruncateWidth shortens s to at most width display cells, adding "…" when cut.
func TruncateWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// PadWidth right-pads s with spaces to width display cells.
func PadWidth(s string, width int) string {
	return runewidth.FillRight(s, width)
}

func PrettyPrint(i any) string {
	s, _ := json.MarshalIndent(i, "", " ")
	return string(s)
}
