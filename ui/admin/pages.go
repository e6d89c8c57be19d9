package admin

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/deemkeen/disclosures/catalog"
	"github.com/deemkeen/disclosures/domain"
)

func addPageCategory(svc *catalog.Service, pageId int, categoryId string) tea.Cmd {
	return func() tea.Msg {
		p, err := svc.AddPageCategory(pageId, categoryId)
		if err != nil {
			log.Printf("Failed to add category %s to page %d: %v", categoryId, pageId, err)
			return adminErrorMsg{err: err}
		}
		return pageSavedMsg{page: p}
	}
}

func removePageCategory(svc *catalog.Service, pageId int, categoryId string) tea.Cmd {
	return func() tea.Msg {
		p, err := svc.RemovePageCategory(pageId, categoryId)
		if err != nil {
			return adminErrorMsg{err: err}
		}
		return pageSavedMsg{page: p}
	}
}

func movePageCategory(svc *catalog.Service, pageId, index, delta int) tea.Cmd {
	return func() tea.Msg {
		p, err := svc.MovePageCategory(pageId, index, delta)
		if err != nil {
			return adminErrorMsg{err: err}
		}
		return pageSavedMsg{page: p}
	}
}

func (m Model) selectedPage() (domain.Page, bool) {
	if m.PageSelected < 0 || m.PageSelected >= len(m.Pages) {
		return domain.Page{}, false
	}
	return m.Pages[m.PageSelected], true
}

// addableCategories are the categories the selected page does not show yet.
func (m Model) addableCategories() []domain.Category {
	p, ok := m.selectedPage()
	if !ok {
		return nil
	}
	var out []domain.Category
	for _, c := range m.Categories {
		if !p.HasCategory(c.Id) {
			out = append(out, c)
		}
	}
	return out
}

func (m Model) handlePageKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.PageOpen {
		switch msg.String() {
		case "esc":
			m.CurrentView = MenuView
		case "up", "k":
			if m.PageSelected > 0 {
				m.PageSelected--
			}
		case "down", "j":
			if m.PageSelected < len(m.Pages)-1 {
				m.PageSelected++
			}
		case "enter":
			if _, ok := m.selectedPage(); ok {
				m.PageOpen = true
				m.PageCursor = 0
			}
		}
		return m, nil
	}

	p, ok := m.selectedPage()
	if !ok {
		m.PageOpen = false
		return m, nil
	}

	if m.PageAdding {
		addable := m.addableCategories()
		switch msg.String() {
		case "esc":
			m.PageAdding = false
		case "up", "k":
			if m.AddCursor > 0 {
				m.AddCursor--
			}
		case "down", "j":
			if m.AddCursor < len(addable)-1 {
				m.AddCursor++
			}
		case "enter":
			if m.AddCursor < len(addable) {
				m.PageAdding = false
				return m, addPageCategory(m.Service, p.Id, addable[m.AddCursor].Id)
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.PageOpen = false
	case "up", "k":
		if m.PageCursor > 0 {
			m.PageCursor--
		}
	case "down", "j":
		if m.PageCursor < len(p.CategoryIds)-1 {
			m.PageCursor++
		}
	case "a", "n":
		if len(m.addableCategories()) == 0 {
			m.Status = "Eklenecek kategori kalmadı"
			return m, nil
		}
		m.PageAdding = true
		m.AddCursor = 0
	case "d", "x":
		if m.PageCursor < len(p.CategoryIds) {
			id := p.CategoryIds[m.PageCursor]
			if m.PageCursor > 0 && m.PageCursor == len(p.CategoryIds)-1 {
				m.PageCursor--
			}
			return m, removePageCategory(m.Service, p.Id, id)
		}
	case "[", "K":
		if m.PageCursor > 0 {
			m.PageCursor--
			return m, movePageCategory(m.Service, p.Id, m.PageCursor+1, -1)
		}
	case "]", "J":
		if m.PageCursor < len(p.CategoryIds)-1 {
			m.PageCursor++
			return m, movePageCategory(m.Service, p.Id, m.PageCursor-1, 1)
		}
	}
	return m, nil
}
