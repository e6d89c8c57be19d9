package admin

import (
	"errors"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/deemkeen/disclosures/richtext"
)

const (
	labelField = iota
	scriptContentField
	colorField
	scriptFieldCount
)

// scriptModal wraps a richtext.ScriptEditor with terminal inputs.
type scriptModal struct {
	Editor       *richtext.ScriptEditor
	Cursor       int // insert position for new blocks, -1 appends
	Field        int
	LabelInput   textinput.Model
	ContentInput textarea.Model
}

func newScriptModal(editor *richtext.ScriptEditor, cursor, width int) *scriptModal {
	if editor == nil {
		editor = richtext.NewScriptEditor()
	}
	label := textinput.New()
	label.Placeholder = "Etiket (ör. Müşteriye okunacak)"
	label.CharLimit = 80
	label.Width = width
	label.SetValue(editor.Label)
	label.Focus()

	content := createTextarea("Okunacak metin", 5, width)
	content.SetValue(editor.Content)

	return &scriptModal{
		Editor:       editor,
		Cursor:       cursor,
		Field:        labelField,
		LabelInput:   label,
		ContentInput: content,
	}
}

// sync copies the inputs into the editor. Script content only keeps the
// reduced inline format set.
func (s *scriptModal) sync() {
	s.Editor.Label = s.LabelInput.Value()
	s.Editor.Content = richtext.Author(s.ContentInput.Value(), richtext.ScriptFormats)
}

func (s *scriptModal) focus() {
	s.LabelInput.Blur()
	s.ContentInput.Blur()
	switch s.Field {
	case labelField:
		s.LabelInput.Focus()
	case scriptContentField:
		s.ContentInput.Focus()
	}
}

func (m Model) handleScriptKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	s := m.Form.Script

	if s.Editor.DeletePending() {
		switch msg.String() {
		case "y", "Y":
			doc, err := s.Editor.ConfirmDelete(m.Form.Doc)
			if err != nil {
				m.Error = err.Error()
				return m, nil
			}
			m.Form.applyDoc(doc)
			m.Form.Script = nil
			m.Status = "Script bloğu silindi"
		case "n", "N", "esc":
			s.Editor.CancelDelete()
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.Form.Script = nil
		return m, nil

	case "tab", "shift+tab":
		step := 1
		if msg.String() == "shift+tab" {
			step = scriptFieldCount - 1
		}
		s.sync()
		s.Field = (s.Field + step) % scriptFieldCount
		s.focus()
		return m, nil

	case "ctrl+p":
		s.sync()
		s.Editor.TogglePreview()
		return m, nil

	case "ctrl+d":
		if !s.Editor.RequestDelete() {
			m.Error = "Yeni script bloğu henüz eklenmedi"
		}
		return m, nil

	case "ctrl+s":
		s.sync()
		doc, err := s.Editor.Save(m.Form.Doc, s.Cursor)
		if errors.Is(err, richtext.ErrEmptyScript) {
			m.Error = "Script içeriği boş olamaz"
			return m, nil
		}
		if err != nil {
			m.Error = err.Error()
			return m, nil
		}
		m.Form.applyDoc(doc)
		m.Form.Script = nil
		m.Status = "Script bloğu kaydedildi"
		return m, nil
	}

	if s.Field == colorField {
		switch msg.String() {
		case "left", "h":
			s.Editor.Color = richtext.NextColor(s.Editor.Color, -1)
		case "right", "l", " ":
			s.Editor.Color = richtext.NextColor(s.Editor.Color, 1)
		}
		return m, nil
	}
	if s.Field == labelField && msg.String() == "enter" {
		return m, nil
	}

	return m.updateScriptInputs(msg)
}

func (m Model) updateScriptInputs(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	s := m.Form.Script
	switch s.Field {
	case labelField:
		s.LabelInput, cmd = s.LabelInput.Update(msg)
	case scriptContentField:
		s.ContentInput, cmd = s.ContentInput.Update(msg)
	}
	return m, cmd
}
