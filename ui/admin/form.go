package admin

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/deemkeen/disclosures/catalog"
	"github.com/deemkeen/disclosures/domain"
	"github.com/deemkeen/disclosures/richtext"
)

const (
	titleField = iota
	categoryField
	activeField
	contentField
	structureField
	formFieldCount
)

// blockForm edits one information block. Content is typed as Markdown or
// HTML; the structure field shows the parsed document so script blocks can
// be inserted, edited and removed without touching markup.
type blockForm struct {
	Id           int // zero while creating
	Input        catalog.BlockInput
	Field        int
	TitleInput   textarea.Model
	ContentInput textarea.Model

	Doc        richtext.Document
	NodeCursor int // index into Doc.Nodes, len(Doc.Nodes) is the end slot
	Script     *scriptModal
}

// createTextarea creates a new textarea with standard settings
func createTextarea(placeholder string, maxHeight, width int) textarea.Model {
	t := textarea.New()
	t.Placeholder = placeholder
	t.CharLimit = 0
	t.ShowLineNumbers = false
	t.SetWidth(width)
	t.SetHeight(maxHeight)
	t.Cursor.SetMode(cursor.CursorBlink)
	return t
}

func newBlockForm(b domain.InformationBlock, width int) blockForm {
	f := blockForm{
		Id: b.Id,
		Input: catalog.BlockInput{
			Title:       b.Title,
			ContentHTML: b.ContentHTML,
			CategoryId:  b.CategoryId,
			IsActive:    b.IsActive,
		},
		Field:        titleField,
		TitleInput:   createTextarea("Başlık", 1, width),
		ContentInput: createTextarea("İçerik (Markdown veya HTML)", 8, width),
	}
	f.TitleInput.SetValue(b.Title)
	f.ContentInput.SetValue(b.ContentHTML)
	f.Doc = richtext.Parse(b.ContentHTML)
	return f
}

func (f *blockForm) focused() bool {
	return f.TitleInput.Focused() || f.ContentInput.Focused()
}

// focus focuses the textarea for the current field
func (f *blockForm) focus() tea.Cmd {
	f.TitleInput.Blur()
	f.ContentInput.Blur()

	switch f.Field {
	case titleField:
		f.TitleInput.Focus()
		return textarea.Blink
	case contentField:
		f.ContentInput.Focus()
		return textarea.Blink
	}
	return nil
}

func (f *blockForm) blur() {
	f.TitleInput.Blur()
	f.ContentInput.Blur()
}

// sync copies textarea values into Input and reparses the document.
func (f *blockForm) sync() {
	f.Input.Title = f.TitleInput.Value()
	f.Input.ContentHTML = richtext.Author(f.ContentInput.Value(), richtext.OuterFormats)
	f.Doc = richtext.Parse(f.Input.ContentHTML)
	f.NodeCursor = min(f.NodeCursor, len(f.Doc.Nodes))
}

// applyDoc writes an edited document back into the content field.
func (f *blockForm) applyDoc(doc richtext.Document) {
	f.Doc = doc
	f.Input.ContentHTML = doc.HTML()
	f.ContentInput.SetValue(f.Input.ContentHTML)
	f.NodeCursor = min(f.NodeCursor, len(f.Doc.Nodes))
}

func (f *blockForm) moveField(step int) {
	f.sync()
	f.Field = (f.Field + step + formFieldCount) % formFieldCount
}

// cursorPosition is the linear position of the node under the cursor, or -1
// for the end slot.
func (f *blockForm) cursorPosition() int {
	if f.NodeCursor >= len(f.Doc.Nodes) {
		return -1
	}
	pos := 0
	for _, op := range f.Doc.Ops()[:f.NodeCursor] {
		pos += op.Len
	}
	return pos
}

// scriptOrdinal is the ordinal of the script block under the cursor.
func (f *blockForm) scriptOrdinal() (int, bool) {
	if f.NodeCursor >= len(f.Doc.Nodes) {
		return 0, false
	}
	root, tops := f.Doc.Rendered()
	if tops[f.NodeCursor] == nil {
		return 0, false
	}
	ordinal := richtext.ScriptOrdinal(root, tops[f.NodeCursor])
	return ordinal, ordinal >= 0
}

func (f *blockForm) cycleCategory(cats []domain.Category, step int) {
	if len(cats) == 0 {
		return
	}
	idx := -1
	for i, c := range cats {
		if c.Id == f.Input.CategoryId {
			idx = i
		}
	}
	n := len(cats)
	if idx < 0 {
		idx = 0
	} else {
		idx = ((idx+step)%n + n) % n
	}
	f.Input.CategoryId = cats[idx].Id
}

func (m Model) handleFormKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.Form.Script != nil {
		return m.handleScriptKeys(msg)
	}
	f := &m.Form

	if !f.focused() {
		// No textarea focused - handle field navigation
		switch msg.String() {
		case "esc":
			m.Editing = false
			m.Status = "Düzenleme iptal edildi"
			return m, nil

		case "ctrl+s":
			f.sync()
			return m, saveBlock(m.Service, f.Id, f.Input)

		case "tab":
			f.moveField(1)
			cmd := f.focus()
			return m, cmd

		case "shift+tab":
			f.moveField(-1)
			cmd := f.focus()
			return m, cmd

		case "up", "k":
			if f.Field == structureField && f.NodeCursor > 0 {
				f.NodeCursor--
				return m, nil
			}
			if f.Field > 0 {
				f.moveField(-1)
			}
			return m, nil

		case "down", "j":
			if f.Field == structureField {
				if f.NodeCursor < len(f.Doc.Nodes) {
					f.NodeCursor++
				}
				return m, nil
			}
			f.moveField(1)
			return m, nil

		case "left", "h", "right", "l", " ":
			step := 1
			if msg.String() == "left" || msg.String() == "h" {
				step = -1
			}
			switch f.Field {
			case categoryField:
				f.cycleCategory(m.Categories, step)
			case activeField:
				f.Input.IsActive = !f.Input.IsActive
			}
			return m, nil

		case "enter":
			switch f.Field {
			case titleField, contentField:
				cmd := f.focus()
				return m, cmd
			case activeField:
				f.Input.IsActive = !f.Input.IsActive
			case structureField:
				if ordinal, ok := f.scriptOrdinal(); ok {
					return m.openScriptEditor(ordinal, false)
				}
			}
			return m, nil

		case "a":
			if f.Field == structureField {
				f.Script = newScriptModal(nil, f.cursorPosition(), m.formWidth())
				return m, textarea.Blink
			}

		case "d":
			if f.Field == structureField {
				if ordinal, ok := f.scriptOrdinal(); ok {
					return m.openScriptEditor(ordinal, true)
				}
			}
		}
		return m, nil
	}

	// Textarea is focused - handle editing controls
	switch msg.String() {
	case "esc":
		f.sync()
		f.blur()
		return m, nil

	case "ctrl+s":
		f.sync()
		return m, saveBlock(m.Service, f.Id, f.Input)

	case "tab":
		f.moveField(1)
		cmd := f.focus()
		return m, cmd

	case "shift+tab":
		f.moveField(-1)
		cmd := f.focus()
		return m, cmd

	case "enter":
		if f.Field == titleField {
			return m, nil
		}
	}

	return m.updateFormInputs(msg)
}

// updateFormInputs lets the focused textarea handle msg.
func (m Model) updateFormInputs(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.Form.Script != nil {
		return m.updateScriptInputs(msg)
	}
	switch {
	case m.Form.TitleInput.Focused():
		m.Form.TitleInput, cmd = m.Form.TitleInput.Update(msg)
	case m.Form.ContentInput.Focused():
		m.Form.ContentInput, cmd = m.Form.ContentInput.Update(msg)
	}
	return m, cmd
}

func (m Model) openScriptEditor(ordinal int, deleting bool) (Model, tea.Cmd) {
	editor, err := richtext.EditScriptEditor(m.Form.Doc, ordinal)
	if err != nil {
		m.Error = err.Error()
		return m, nil
	}
	if deleting {
		editor.RequestDelete()
	}
	m.Form.Script = newScriptModal(editor, -1, m.formWidth())
	return m, textarea.Blink
}
