package categories

import (
	"errors"
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/deemkeen/disclosures/catalog"
	"github.com/deemkeen/disclosures/domain"
	"github.com/deemkeen/disclosures/ui/common"
	"github.com/deemkeen/disclosures/util"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	nameField = iota
	colorField
	fieldCount
)

type Model struct {
	Service    *catalog.Service
	Categories []domain.Category
	Counts     map[string]int
	Selected   int
	Offset     int
	Width      int
	Height     int
	Status     string
	Error      string

	Editing   bool
	EditId    string // empty while creating
	EditInput catalog.CategoryInput
	EditField int
	EditValue string

	ConfirmDelete bool
	DeleteId      string
}

func InitialModel(svc *catalog.Service, width, height int) Model {
	return Model{
		Service:    svc,
		Categories: []domain.Category{},
		Counts:     map[string]int{},
		Width:      width,
		Height:     height,
	}
}

func (m Model) Init() tea.Cmd {
	return loadCategories(m.Service)
}

type categoriesLoadedMsg struct {
	categories []domain.Category
	counts     map[string]int
}

type categorySavedMsg struct{ id string }
type categoryDeletedMsg struct{ id string }
type categoryErrorMsg struct{ err error }

func loadCategories(svc *catalog.Service) tea.Cmd {
	return func() tea.Msg {
		return categoriesLoadedMsg{categories: svc.Categories(), counts: svc.CategoryCounts()}
	}
}

func saveCategory(svc *catalog.Service, id string, in catalog.CategoryInput) tea.Cmd {
	return func() tea.Msg {
		var (
			c   domain.Category
			err error
		)
		if id == "" {
			c, err = svc.CreateCategory(in)
		} else {
			c, err = svc.UpdateCategory(id, in)
		}
		if err != nil {
			log.Printf("Failed to save category: %v", err)
			return categoryErrorMsg{err: err}
		}
		return categorySavedMsg{id: c.Id}
	}
}

func deleteCategory(svc *catalog.Service, id string) tea.Cmd {
	return func() tea.Msg {
		if err := svc.DeleteCategory(id); err != nil {
			return categoryErrorMsg{err: err}
		}
		return categoryDeletedMsg{id: id}
	}
}

func dataChanged() tea.Msg {
	return common.DataChangedMsg{}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case categoriesLoadedMsg:
		m.Categories = msg.categories
		m.Counts = msg.counts
		if m.Selected >= len(m.Categories) {
			m.Selected = max(0, len(m.Categories)-1)
		}
		return m, nil

	case common.DataChangedMsg:
		return m, loadCategories(m.Service)

	case categorySavedMsg:
		m.Status = fmt.Sprintf("Kategori kaydedildi: %s", msg.id)
		m.Error = ""
		m.Editing = false
		return m, tea.Batch(loadCategories(m.Service), dataChanged)

	case categoryDeletedMsg:
		m.Status = fmt.Sprintf("Kategori silindi: %s", msg.id)
		m.Error = ""
		return m, tea.Batch(loadCategories(m.Service), dataChanged)

	case categoryErrorMsg:
		m.Error = describe(msg.err)
		return m, nil

	case tea.KeyMsg:
		m.Status = ""
		m.Error = ""

		if m.Editing {
			return m.handleEditingKeys(msg)
		}
		if m.ConfirmDelete {
			switch msg.String() {
			case "y", "Y":
				m.ConfirmDelete = false
				return m, deleteCategory(m.Service, m.DeleteId)
			case "n", "N", "esc":
				m.ConfirmDelete = false
				m.DeleteId = ""
				m.Status = "Silme iptal edildi"
			}
			return m, nil
		}

		switch msg.String() {
		case "up", "k":
			if m.Selected > 0 {
				m.Selected--
				if m.Selected < m.Offset {
					m.Offset = m.Selected
				}
			}
		case "down", "j":
			if len(m.Categories) > 0 && m.Selected < len(m.Categories)-1 {
				m.Selected++
				if m.Selected >= m.Offset+common.DefaultItemsPerPage {
					m.Offset = m.Selected - common.DefaultItemsPerPage + 1
				}
			}
		case "n":
			m.Editing = true
			m.EditId = ""
			m.EditInput = catalog.CategoryInput{Color: catalog.DefaultCategoryColor}
			m.EditField = nameField
			m.EditValue = ""
		case "e", "enter":
			if m.Selected < len(m.Categories) {
				c := m.Categories[m.Selected]
				m.Editing = true
				m.EditId = c.Id
				m.EditInput = catalog.CategoryInput{Name: c.Name, Color: c.Color}
				m.EditField = nameField
				m.EditValue = c.Name
			}
		case "d":
			if m.Selected < len(m.Categories) {
				c := m.Categories[m.Selected]
				if n := m.Counts[c.Id]; n > 0 {
					m.Error = (&catalog.CategoryInUseError{Id: c.Id, Count: n}).Error()
					return m, nil
				}
				m.ConfirmDelete = true
				m.DeleteId = c.Id
			}
		}
	}

	return m, nil
}

func (m Model) handleEditingKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Editing = false
		m.Status = "Düzenleme iptal edildi"
		return m, nil

	case "tab", "shift+tab", "down", "up":
		m.saveCurrentField()
		if msg.String() == "shift+tab" || msg.String() == "up" {
			m.EditField = (m.EditField + fieldCount - 1) % fieldCount
		} else {
			m.EditField = (m.EditField + 1) % fieldCount
		}
		m.loadFieldValue()
		return m, nil

	case "enter", "ctrl+s":
		m.saveCurrentField()
		return m, saveCategory(m.Service, m.EditId, m.EditInput)

	case "backspace":
		if r := []rune(m.EditValue); len(r) > 0 {
			m.EditValue = string(r[:len(r)-1])
		}
		return m, nil
	}

	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		m.EditValue += string(msg.Runes)
	}
	return m, nil
}

func (m *Model) saveCurrentField() {
	switch m.EditField {
	case nameField:
		m.EditInput.Name = m.EditValue
	case colorField:
		m.EditInput.Color = strings.TrimSpace(m.EditValue)
	}
}

func (m *Model) loadFieldValue() {
	switch m.EditField {
	case nameField:
		m.EditValue = m.EditInput.Name
	case colorField:
		m.EditValue = m.EditInput.Color
	}
}

// describe flattens validation errors into one line.
func describe(err error) string {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		var parts []string
		for _, field := range []string{"Name", "Color"} {
			if e, ok := verrs[field]; ok {
				parts = append(parts, e.Error())
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, "; ")
		}
	}
	return err.Error()
}

func (m Model) View() string {
	var s strings.Builder

	if m.Editing {
		return m.renderEditView()
	}

	s.WriteString(common.CaptionStyle.Render(fmt.Sprintf("kategoriler (%d)", len(m.Categories))))
	s.WriteString("\n\n")

	if len(m.Categories) == 0 {
		s.WriteString(common.ListEmptyStyle.Render("Kategori yok. Eklemek için 'n' tuşuna basın."))
		s.WriteString("\n\n")
		s.WriteString(common.ListBadgeStyle.Render("Keys: n: ekle • esc: geri"))
		return s.String()
	}

	start := m.Offset
	end := min(start+common.DefaultItemsPerPage, len(m.Categories))

	for i := start; i < end; i++ {
		c := m.Categories[i]
		swatch := util.ColorSwatch(c.Color, 2)
		count := common.ListBadgeStyle.Render(fmt.Sprintf(" %d zorunlu bilgi", m.Counts[c.Id]))
		order := common.ListBadgeStyle.Render(fmt.Sprintf("#%d", c.DisplayOrder))
		text := fmt.Sprintf("%s %s %s", order, c.Name, common.ListBadgeMutedStyle.Render(c.Color))

		if i == m.Selected {
			s.WriteString(common.ListSelectedPrefix + swatch + " " + common.ListItemSelectedStyle.Render(text) + count)
		} else {
			s.WriteString(common.ListUnselectedPrefix + swatch + " " + common.ListItemStyle.Render(text) + count)
		}
		s.WriteString("\n")
	}

	if len(m.Categories) > common.DefaultItemsPerPage {
		s.WriteString("\n")
		s.WriteString(common.ListBadgeStyle.Render(fmt.Sprintf("showing %d-%d of %d", start+1, end, len(m.Categories))))
	}

	s.WriteString("\n")

	if m.Status != "" {
		s.WriteString(common.ListStatusStyle.Render(m.Status))
		s.WriteString("\n")
	}
	if m.Error != "" {
		s.WriteString(common.ListErrorStyle.Render(m.Error))
		s.WriteString("\n")
	}

	s.WriteString("\n")
	if m.ConfirmDelete {
		s.WriteString(common.ListErrorStyle.Render("Bu kategoriyi silmek istediğinizden emin misiniz? (y/n)"))
	} else {
		s.WriteString(common.ListBadgeStyle.Render("Keys: ↑/↓ • n: ekle • enter: düzenle • d: sil • esc: geri"))
	}

	return s.String()
}

func (m Model) renderEditView() string {
	var s strings.Builder

	if m.EditId == "" {
		s.WriteString(common.CaptionStyle.Render("yeni kategori"))
	} else {
		s.WriteString(common.CaptionStyle.Render("kategori düzenle"))
	}
	s.WriteString("\n\n")

	fieldNames := []string{"Ad", "Renk (#RRGGBB)"}
	for i, name := range fieldNames {
		if i == m.EditField {
			s.WriteString(common.ListItemSelectedStyle.Render(fmt.Sprintf("▶ %s: %s_", name, m.EditValue)))
		} else {
			value := m.EditInput.Name
			if i == colorField {
				value = m.EditInput.Color
			}
			s.WriteString(common.ListItemStyle.Render(fmt.Sprintf("  %s: %s", name, value)))
		}
		if i == colorField {
			color := m.EditInput.Color
			if m.EditField == colorField {
				color = m.EditValue
			}
			if util.IsHexColor(color) {
				s.WriteString(" " + util.ColorSwatch(color, 4))
			}
		}
		s.WriteString("\n")
	}

	if m.Error != "" {
		s.WriteString("\n")
		s.WriteString(common.ListErrorStyle.Render(m.Error))
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(common.ListBadgeStyle.Render("Keys: tab: sonraki alan • enter: kaydet • esc: iptal"))
	if m.EditId == "" {
		s.WriteString("\n\n")
		s.WriteString(common.ListBadgeStyle.Render("Not: Ad büyük harfe çevrilir, kimlik addan türetilir."))
	}

	return s.String()
}
