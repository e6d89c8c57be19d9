package richtext

import "strings"

// ScriptEditor holds the state of the modal used to create or edit one
// script block inside a document.
type ScriptEditor struct {
	Label   string
	Content string
	Color   ColorID

	editing       bool
	pos           int
	preview       bool
	confirmDelete bool
}

// NewScriptEditor starts a blank script block in the default color.
func NewScriptEditor() *ScriptEditor {
	return &ScriptEditor{Color: DefaultColor}
}

// EditScriptEditor opens the script block with the given ordinal, prefilled
// from the document.
func EditScriptEditor(doc Document, ordinal int) (*ScriptEditor, error) {
	pos, ok := LocateScriptBlock(doc, ordinal)
	if !ok {
		return nil, ErrNotScriptBlock
	}
	s, err := ScriptBlockAt(doc, pos)
	if err != nil {
		return nil, err
	}
	return &ScriptEditor{
		Label:   s.Label,
		Content: s.Content,
		Color:   s.colorOrDefault(),
		editing: true,
		pos:     pos,
	}, nil
}

func (e *ScriptEditor) Editing() bool {
	return e.editing
}

// Position is the linear offset of the block being edited.
func (e *ScriptEditor) Position() int {
	return e.pos
}

func (e *ScriptEditor) Previewing() bool {
	return e.preview
}

func (e *ScriptEditor) TogglePreview() {
	e.preview = !e.preview
}

// Block is the script block as it would be saved.
func (e *ScriptEditor) Block() ScriptBlock {
	return ScriptBlock{Label: e.Label, Content: e.Content, Color: e.Color}
}

// Preview renders the block exactly as it will be embedded.
func (e *ScriptEditor) Preview() string {
	return e.Block().Markup()
}

// CanSave is false while the content has no visible text.
func (e *ScriptEditor) CanSave() bool {
	return strings.TrimSpace(Parse(e.Content).plainText()) != ""
}

// Save inserts a new block at cursor, or replaces the edited one in place.
func (e *ScriptEditor) Save(doc Document, cursor int) (Document, error) {
	if !e.CanSave() {
		return doc, ErrEmptyScript
	}
	if e.editing {
		return UpdateScriptBlock(doc, e.pos, e.Block())
	}
	if cursor < 0 {
		cursor = doc.Len()
	}
	return InsertScriptBlock(doc, cursor, e.Block()), nil
}

// RequestDelete asks for confirmation before ConfirmDelete may remove the block.
func (e *ScriptEditor) RequestDelete() bool {
	if !e.editing {
		return false
	}
	e.confirmDelete = true
	return true
}

func (e *ScriptEditor) DeletePending() bool {
	return e.confirmDelete
}

func (e *ScriptEditor) CancelDelete() {
	e.confirmDelete = false
}

func (e *ScriptEditor) ConfirmDelete(doc Document) (Document, error) {
	if !e.editing || !e.confirmDelete {
		return doc, ErrDeleteNotConfirmed
	}
	e.confirmDelete = false
	return DeleteScriptBlock(doc, e.pos)
}
