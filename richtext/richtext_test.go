package richtext

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// shape describes a document as node kinds: "p:<text>" or "s:<label>".
func shape(d Document) []string {
	var out []string
	for _, n := range d.Nodes {
		switch v := n.(type) {
		case Paragraph:
			out = append(out, "p:"+v.Text())
		case ScriptBlock:
			out = append(out, "s:"+v.Label)
		}
	}
	return out
}

func TestParseLegacyContent(t *testing.T) {
	content := `<p><strong>Modem iadesi:</strong></p><div class="script-block" data-script="true"><span class="script-label">Okunması Gereken Script</span><div class="script-content">Modem teslim edilmelidir.</div></div><p>Kiralama: 9 TL/ay</p><div class="script-block" data-script="true"><span class="script-label">Modem Kullanım Bedeli Scripti</span><div class="script-content">Son faturanıza yansıtılacaktır.</div></div>`

	doc := Parse(content)

	want := []string{
		"p:Modem iadesi:",
		"s:Okunması Gereken Script",
		"p:Kiralama: 9 TL/ay",
		"s:Modem Kullanım Bedeli Scripti",
	}
	if diff := cmp.Diff(want, shape(doc)); diff != "" {
		t.Errorf("shape mismatch (-want +got):\n%s", diff)
	}

	scripts := doc.Scripts()
	if scripts[0].Color != DefaultColor {
		t.Errorf("Expected legacy block without data-color to be amber, got %q", scripts[0].Color)
	}
	if scripts[1].Content != "Son faturanıza yansıtılacaktır." {
		t.Errorf("Unexpected content %q", scripts[1].Content)
	}
}

func TestParseSkipsWhitespaceBetweenBlocks(t *testing.T) {
	doc := Parse("\n  <p>a</p>\n\n  <p>b</p>\n")
	if diff := cmp.Diff([]string{"p:a", "p:b"}, shape(doc)); diff != "" {
		t.Errorf("shape mismatch (-want +got):\n%s", diff)
	}
}

func TestParseKeepsInlineRunTogether(t *testing.T) {
	doc := Parse(`Sayın müşterimiz, <strong>24 ay</strong> taahhüt vardır.<p>Son</p><em>a</em> <b>b</b>`)
	want := []string{"p:Sayın müşterimiz, 24 ay taahhüt vardır.", "p:Son", "p:a b"}
	if diff := cmp.Diff(want, shape(doc)); diff != "" {
		t.Errorf("shape mismatch (-want +got):\n%s", diff)
	}
	if p := doc.Nodes[0].(Paragraph); p.Tag() != "" || p.Len() != 40 {
		t.Errorf("Expected an inline run of 40 positions, got tag %q len %d", p.Tag(), p.Len())
	}
	if got := doc.HTML(); got != `Sayın müşterimiz, <strong>24 ay</strong> taahhüt vardır.<p>Son</p><em>a</em> <b>b</b>` {
		t.Errorf("Unexpected markup: %s", got)
	}

	split := InsertScriptBlock(Parse(`Merhaba <b>dünya</b>`), 8, ScriptBlock{Label: "S", Content: "x"})
	if diff := cmp.Diff([]string{"p:Merhaba ", "s:S", "p:dünya"}, shape(split)); diff != "" {
		t.Errorf("split mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(split.HTML(), "<b>dünya</b>") {
		t.Errorf("Expected formatting kept after split: %s", split.HTML())
	}
}

func TestMarkupWireFormat(t *testing.T) {
	s := ScriptBlock{Label: "Onay", Content: "<strong>Evet</strong>", Color: "blue"}
	want := `<div class="script-block" data-script="true" contenteditable="false" data-color="blue" style="background:#EFF6FF;border-left-color:#3B82F6"><span class="script-label" style="color:#1E40AF">Onay</span><div class="script-content"><strong>Evet</strong></div></div>`
	if got := s.Markup(); got != want {
		t.Errorf("Markup mismatch\nwant %s\ngot  %s", want, got)
	}
}

func TestMarkupUnknownColorKeepsIdStylesAmber(t *testing.T) {
	s := ScriptBlock{Label: "x", Content: "y", Color: "pink"}
	m := s.Markup()
	if !strings.Contains(m, `data-color="pink"`) {
		t.Errorf("Expected stored color id to be kept, got %s", m)
	}
	if !strings.Contains(m, "background:#FFFBEB;border-left-color:#FFC900") {
		t.Errorf("Expected amber styling, got %s", m)
	}
	if got := Parse(m).Scripts()[0].Color; got != "pink" {
		t.Errorf("Expected color id pink after parse, got %q", got)
	}
}

func TestInsertScriptBlockRoundTrip(t *testing.T) {
	base := Parse(`<p>Merhaba <strong>dünya</strong></p><ul><li>bir</li><li>iki</li></ul>`)
	payloads := []ScriptBlock{
		{Label: "", Content: "<em>boş etiket</em>", Color: "amber"},
		{Label: "Müşteri & Onay", Content: "Onaylıyor musunuz?", Color: "teal"},
		{Label: "<b>etiket</b>", Content: "<ul><li>a</li></ul>", Color: "slate"},
	}

	for pos := 0; pos <= base.Len()+1; pos++ {
		for _, p := range payloads {
			doc := InsertScriptBlock(base, pos, p)
			if doc.Len() != base.Len()+lenDelta(base, pos) {
				t.Fatalf("pos %d: unexpected length %d", pos, doc.Len())
			}

			at, ok := findScript(doc, p)
			if !ok {
				t.Fatalf("pos %d: inserted block not found", pos)
			}
			got, err := ScriptBlockAt(doc, at)
			if err != nil {
				t.Fatalf("pos %d: %v", pos, err)
			}
			if diff := cmp.Diff(p, got); diff != "" {
				t.Errorf("pos %d: payload mismatch (-want +got):\n%s", pos, diff)
			}

			reparsed := Parse(doc.HTML())
			got, err = ScriptBlockAt(reparsed, at)
			if err != nil {
				t.Fatalf("pos %d: reparsed: %v", pos, err)
			}
			if diff := cmp.Diff(p, got); diff != "" {
				t.Errorf("pos %d: payload after storage mismatch (-want +got):\n%s", pos, diff)
			}
		}
	}
}

// lenDelta is how much an insert at pos grows the document: one for the
// embed plus one for the extra line break when a paragraph is split.
func lenDelta(d Document, pos int) int {
	start := 0
	for _, n := range d.Nodes {
		end := start + n.Len()
		if p, ok := n.(Paragraph); ok && pos > start && pos < end-1 {
			_ = p
			return 2
		}
		start = end
	}
	return 1
}

func findScript(d Document, s ScriptBlock) (int, bool) {
	pos := 0
	for _, n := range d.Nodes {
		if got, ok := n.(ScriptBlock); ok && got == s {
			return pos, true
		}
		pos += n.Len()
	}
	return 0, false
}

func TestInsertSplitsParagraph(t *testing.T) {
	doc := Parse(`<p>Hello <strong>world</strong></p>`)
	s := ScriptBlock{Label: "L", Content: "C", Color: "amber"}

	tests := []struct {
		name string
		pos  int
		want string
	}{
		{"start", 0, s.Markup() + `<p>Hello <strong>world</strong></p>`},
		{"inside text", 3, `<p>Hel</p>` + s.Markup() + `<p>lo <strong>world</strong></p>`},
		{"inside bold", 8, `<p>Hello <strong>wo</strong></p>` + s.Markup() + `<p><strong>rld</strong></p>`},
		{"at boundary", 6, `<p>Hello </p>` + s.Markup() + `<p><strong>world</strong></p>`},
		{"at line break", 11, `<p>Hello <strong>world</strong></p>` + s.Markup()},
		{"past end", 50, `<p>Hello <strong>world</strong></p>` + s.Markup()},
		{"negative", -4, s.Markup() + `<p>Hello <strong>world</strong></p>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InsertScriptBlock(doc, tt.pos, s).HTML(); got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}

	if doc.HTML() != `<p>Hello <strong>world</strong></p>` {
		t.Error("InsertScriptBlock must not modify its input")
	}
}

func TestInsertKeepsAttributesOnBothSides(t *testing.T) {
	doc := Parse(`<p><span style="color: red">kırmızı metin</span></p>`)
	got := InsertScriptBlock(doc, 7, ScriptBlock{Content: "x"}).HTML()
	if strings.Count(got, `<span style="color: red">`) != 2 {
		t.Errorf("Expected span to be kept on both halves, got %s", got)
	}
}

func TestUpdateScriptBlockInPlace(t *testing.T) {
	first := ScriptBlock{Label: "Eski", Content: "eski", Color: "amber"}
	doc := InsertScriptBlock(Parse(`<p>ab</p><p>cd</p>`), 3, first)
	if diff := cmp.Diff([]string{"p:ab", "s:Eski", "p:cd"}, shape(doc)); diff != "" {
		t.Fatalf("setup mismatch:\n%s", diff)
	}

	updated := ScriptBlock{Label: "Yeni", Content: "yeni", Color: "red"}
	doc2, err := UpdateScriptBlock(doc, 3, updated)
	if err != nil {
		t.Fatalf("UpdateScriptBlock failed: %v", err)
	}
	if diff := cmp.Diff([]string{"p:ab", "s:Yeni", "p:cd"}, shape(doc2)); diff != "" {
		t.Errorf("shape mismatch (-want +got):\n%s", diff)
	}
	if doc2.Len() != doc.Len() {
		t.Errorf("Update changed document length from %d to %d", doc.Len(), doc2.Len())
	}

	last := InsertScriptBlock(Parse(`<p>ab</p>`), 3, first)
	last2, err := UpdateScriptBlock(last, 3, updated)
	if err != nil {
		t.Fatalf("UpdateScriptBlock at end failed: %v", err)
	}
	if diff := cmp.Diff([]string{"p:ab", "s:Yeni"}, shape(last2)); diff != "" {
		t.Errorf("shape mismatch at end (-want +got):\n%s", diff)
	}
}

func TestDeleteScriptBlock(t *testing.T) {
	s := ScriptBlock{Label: "S", Content: "x"}
	doc := InsertScriptBlock(Parse(`<p>ab</p><p>cd</p>`), 3, s)

	out, err := DeleteScriptBlock(doc, 3)
	if err != nil {
		t.Fatalf("DeleteScriptBlock failed: %v", err)
	}
	if out.Len() != doc.Len()-1 {
		t.Errorf("Expected exactly one unit removed, got %d -> %d", doc.Len(), out.Len())
	}
	if diff := cmp.Diff([]string{"p:ab", "p:cd"}, shape(out)); diff != "" {
		t.Errorf("shape mismatch (-want +got):\n%s", diff)
	}

	if _, err := DeleteScriptBlock(doc, 0); !errors.Is(err, ErrNotScriptBlock) {
		t.Errorf("Expected ErrNotScriptBlock on a paragraph, got %v", err)
	}
	if _, err := DeleteScriptBlock(doc, 1); !errors.Is(err, ErrNotScriptBlock) {
		t.Errorf("Expected ErrNotScriptBlock inside a paragraph, got %v", err)
	}
}

func TestLocateScriptBlock(t *testing.T) {
	a := ScriptBlock{Label: "A", Content: "a"}
	b := ScriptBlock{Label: "B", Content: "b"}
	doc := Document{Nodes: []Node{NewParagraph("ab"), a, NewParagraph("cd"), b}}

	tests := []struct {
		ordinal int
		pos     int
		ok      bool
	}{
		{0, 3, true},
		{1, 7, true},
		{2, 0, false},
		{-1, 0, false},
	}
	for _, tt := range tests {
		pos, ok := LocateScriptBlock(doc, tt.ordinal)
		if pos != tt.pos || ok != tt.ok {
			t.Errorf("LocateScriptBlock(%d) = %d,%v want %d,%v", tt.ordinal, pos, ok, tt.pos, tt.ok)
		}
	}
}

func TestScriptOrdinalMapsClickToBlock(t *testing.T) {
	a := ScriptBlock{Label: "A", Content: "<strong>a</strong>"}
	b := ScriptBlock{Label: "B", Content: "<strong>b</strong>"}
	doc := Document{Nodes: []Node{NewParagraph("giriş"), a, NewParagraph("ara"), b}}

	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(doc.HTML()), root)
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range nodes {
		root.AppendChild(n)
	}

	var strongs []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.DataAtom == atom.Strong {
			strongs = append(strongs, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	if len(strongs) != 2 {
		t.Fatalf("Expected 2 strong elements, got %d", len(strongs))
	}

	ordinal := ScriptOrdinal(root, strongs[1])
	if ordinal != 1 {
		t.Fatalf("Expected ordinal 1, got %d", ordinal)
	}
	pos, ok := LocateScriptBlock(doc, ordinal)
	if !ok {
		t.Fatal("Expected to locate block")
	}
	got, err := ScriptBlockAt(doc, pos)
	if err != nil || got.Label != "B" {
		t.Errorf("Expected block B, got %+v (%v)", got, err)
	}

	if ScriptOrdinal(root, root.FirstChild) != -1 {
		t.Error("Expected -1 for a paragraph")
	}
}

func TestRenderedTreeFindsScriptOrdinals(t *testing.T) {
	doc := Parse(`Giriş <b>metni</b><div class="script-block" data-script="true"><span class="script-label">A</span><div class="script-content">a</div></div><p>ara</p><div class="script-block" data-script="true"><span class="script-label">B</span><div class="script-content">b</div></div>`)
	root, tops := doc.Rendered()
	if len(tops) != len(doc.Nodes) {
		t.Fatalf("Expected %d tops, got %d", len(doc.Nodes), len(tops))
	}

	want := []int{-1, 0, -1, 1}
	for i, top := range tops {
		if got := ScriptOrdinal(root, top); got != want[i] {
			t.Errorf("node %d: expected ordinal %d, got %d", i, want[i], got)
		}
	}
}

func TestReadScriptBlockMissingParts(t *testing.T) {
	doc := Parse(`<div class="script-block" data-script="true"></div>`)
	got := doc.Scripts()
	want := []ScriptBlock{{Color: DefaultColor}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestPresetFor(t *testing.T) {
	if PresetFor("green").Border != "#22C55E" {
		t.Error("Unexpected green preset")
	}
	if PresetFor("unknown").ID != "amber" {
		t.Error("Expected amber fallback")
	}
	if len(Presets) != 8 {
		t.Errorf("Expected 8 presets, got %d", len(Presets))
	}
	if NextColor("slate", 1) != "amber" || NextColor("amber", -1) != "slate" {
		t.Error("NextColor should wrap around")
	}
}

func TestIsBlank(t *testing.T) {
	if !Parse("<p> </p><p><br></p>").IsBlank() {
		t.Error("Expected blank document")
	}
	if Parse("<p>x</p>").IsBlank() {
		t.Error("Expected non-blank document")
	}
	if (Document{Nodes: []Node{ScriptBlock{}}}).IsBlank() {
		t.Error("A script block is content")
	}
}
