package richtext

import (
	"strings"
	"testing"
)

func TestSanitizeOuterFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"keeps header and strike", `<h2>Başlık</h2><p><s>eski</s></p>`, `<h2>Başlık</h2><p><s>eski</s></p>`},
		{"drops script elements", `<p>x</p><script>alert(1)</script>`, `<p>x</p>`},
		{"unwraps unknown tags", `<p><font face="x">metin</font></p>`, `<p>metin</p>`},
		{"drops javascript links", `<p><a href="javascript:alert(1)">t</a></p>`, `<p><a>t</a></p>`},
		{"keeps safe links", `<p><a href="https://turkcell.com.tr" onclick="x()">t</a></p>`, `<p><a href="https://turkcell.com.tr">t</a></p>`},
		{"filters style", `<p><span style="color: red; font-size: 40px; background-color: yellow">t</span></p>`, `<p><span style="color: red; background-color: yellow">t</span></p>`},
		{"drops class attributes", `<p class="ql-align-center">t</p>`, `<p>t</p>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OuterFormats.Sanitize(tt.input); got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestSanitizeScriptFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unwraps header", `<h1>Büyük</h1>`, `Büyük`},
		{"unwraps strike", `<p><s>x</s></p>`, `<p>x</p>`},
		{"drops background", `<p><span style="background-color: red; color: blue">x</span></p>`, `<p><span style="color: blue">x</span></p>`},
		{"keeps lists", `<ol><li>a</li></ol>`, `<ol><li>a</li></ol>`},
		{"flattens nested script blocks", ScriptBlock{Label: "iç", Content: "<em>metin</em>"}.Markup(), `<em>metin</em>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScriptFormats.Sanitize(tt.input); got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestSanitizeKeepsScriptBlocksInOuterSet(t *testing.T) {
	s := ScriptBlock{Label: "Onay", Content: `<h1>x</h1><strong>y</strong>`, Color: "green"}
	got := OuterFormats.Sanitize(`<p>a</p>` + s.Markup())
	want := `<p>a</p>` + ScriptBlock{Label: "Onay", Content: `x<strong>y</strong>`, Color: "green"}.Markup()
	if got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestAuthorMarkdown(t *testing.T) {
	tests := []struct {
		name  string
		input string
		fs    FormatSet
		want  string
	}{
		{"bold", "**Dikkat** okuyunuz", ScriptFormats, `<p><strong>Dikkat</strong> okuyunuz</p>`},
		{"list", "- bir\n- iki", OuterFormats, `<ul><li>bir</li><li>iki</li></ul>`},
		{"strike only outer", "~~eski~~ yeni", OuterFormats, `<p><del>eski</del> yeni</p>`},
		{"strike removed in script", "~~eski~~ yeni", ScriptFormats, `<p>eski yeni</p>`},
		{"html passthrough", `<p><u>altı çizili</u></p>`, ScriptFormats, `<p><u>altı çizili</u></p>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Author(tt.input, tt.fs); got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestAuthorEscapesRawText(t *testing.T) {
	got := Author("Fiyat 5 < 10 & indirim", ScriptFormats)
	if strings.Contains(got, "< 10") || !strings.Contains(got, "&lt; 10") {
		t.Errorf("Expected escaped text, got %s", got)
	}
}
