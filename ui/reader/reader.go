package reader

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/deemkeen/disclosures/catalog"
	"github.com/deemkeen/disclosures/domain"
	"github.com/deemkeen/disclosures/progress"
	"github.com/deemkeen/disclosures/ui/common"
)

const Title = "Müşteriyle Paylaşılması Gereken Zorunlu Bilgiler"

type rowKind int

const (
	categoryRow rowKind = iota
	blockRow
)

// row is one selectable line of the categorized view.
type row struct {
	kind  rowKind
	group int
	block int
}

type Model struct {
	Service *catalog.Service
	Width   int
	Height  int

	Pages     []domain.Page
	PageIndex int
	Content   domain.PageContent
	Mode      domain.ViewMode

	Session *progress.Session
	Filter  progress.Filter
	Tabs    progress.Tabs

	Search    textinput.Model
	Searching bool

	FilterOpen   bool
	FilterCursor int

	Selected int
	Error    string
}

func InitialModel(svc *catalog.Service, defaultPageId, width, height int) Model {
	search := textinput.New()
	search.Placeholder = "Zorunlu bilgilerde ara..."
	search.Prompt = "/ "
	search.CharLimit = 100
	search.Width = common.TextInputDefaultWidth

	m := Model{
		Service: svc,
		Width:   width,
		Height:  height,
		Search:  search,
		Mode:    domain.ViewCategorized,
	}
	m.Pages = svc.Pages()
	for i, p := range m.Pages {
		if p.Id == defaultPageId {
			m.PageIndex = i
		}
	}
	return m
}

type pageLoadedMsg struct {
	pages   []domain.Page
	content domain.PageContent
	mode    domain.ViewMode
	err     error
}

func (m Model) Init() tea.Cmd {
	return m.loadPage()
}

func (m Model) loadPage() tea.Cmd {
	svc := m.Service
	pages := svc.Pages()
	index := m.PageIndex
	return func() tea.Msg {
		if len(pages) == 0 {
			return pageLoadedMsg{pages: pages, mode: svc.ViewMode()}
		}
		if index >= len(pages) {
			index = 0
		}
		pc, err := svc.PageContent(pages[index].Id)
		if err != nil {
			log.Printf("Failed to load page %d: %v", pages[index].Id, err)
		}
		return pageLoadedMsg{pages: pages, content: pc, mode: svc.ViewMode(), err: err}
	}
}

// CurrentPage returns the page being read, if any.
func (m Model) CurrentPage() (domain.Page, bool) {
	if m.PageIndex < 0 || m.PageIndex >= len(m.Pages) {
		return domain.Page{}, false
	}
	return m.Pages[m.PageIndex], true
}

func (m Model) groups() []domain.PageGroup {
	return m.Filter.Apply(m.Content.Groups)
}

func (m Model) visible() []progress.Item {
	return m.Filter.Visible(m.Content.Groups)
}

func (m Model) rows() []row {
	var rows []row
	for gi, g := range m.groups() {
		rows = append(rows, row{kind: categoryRow, group: gi})
		if !m.Session.IsCategoryExpanded(g.Category.Id) {
			continue
		}
		for bi := range g.Blocks {
			rows = append(rows, row{kind: blockRow, group: gi, block: bi})
		}
	}
	return rows
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case pageLoadedMsg:
		m.Pages = msg.pages
		if m.PageIndex >= len(m.Pages) {
			m.PageIndex = 0
		}
		m.Content = msg.content
		m.Mode = msg.mode
		m.Session = progress.ForContent(msg.content)
		m.Selected = 0
		m.Tabs.Reset()
		m.Tabs.SetCount(len(m.visible()))
		m.Error = ""
		if msg.err != nil {
			m.Error = msg.err.Error()
		}
		return m, nil

	case common.DataChangedMsg:
		return m, m.loadPage()

	case common.PageSelectedMsg:
		for i, p := range m.Pages {
			if p.Id == msg.PageId {
				m.PageIndex = i
			}
		}
		return m, m.loadPage()

	case common.ResetProgressMsg:
		if m.Session != nil {
			m.Session.Reset()
		}
		m.Selected = 0
		m.Tabs.Reset()
		return m, nil

	case tea.KeyMsg:
		if m.Session == nil {
			return m, nil
		}
		if m.Searching {
			return m.handleSearchKeys(msg)
		}
		if m.FilterOpen {
			return m.handleFilterKeys(msg), nil
		}
		switch msg.String() {
		case "/":
			m.Searching = true
			cmd := m.Search.Focus()
			return m, cmd
		case "f":
			m.FilterOpen = true
			m.FilterCursor = 0
			return m, nil
		case "v":
			m.Mode = m.Mode.Toggle()
			m.Service.SetViewMode(m.Mode)
			m.Tabs.SetCount(len(m.visible()))
			return m, nil
		case "[":
			if len(m.Pages) > 0 {
				m.PageIndex = (m.PageIndex - 1 + len(m.Pages)) % len(m.Pages)
				return m, m.loadPage()
			}
		case "]":
			if len(m.Pages) > 0 {
				m.PageIndex = (m.PageIndex + 1) % len(m.Pages)
				return m, m.loadPage()
			}
		}
		if m.Mode == domain.ViewTabs {
			return m.handleTabsKeys(msg)
		}
		return m.handleCategorizedKeys(msg)
	}

	if m.Searching {
		m.Search, cmd = m.Search.Update(msg)
	}
	return m, cmd
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.String() {
	case "esc", "enter":
		m.Searching = false
		m.Search.Blur()
		return m, nil
	}
	m.Search, cmd = m.Search.Update(msg)
	if m.Filter.Search != m.Search.Value() {
		m.Filter.Search = m.Search.Value()
		m.Selected = 0
		m.Tabs.SetCount(len(m.visible()))
	}
	return m, cmd
}

// handleFilterKeys drives the category filter picker. Changing the filter
// returns the tabs view to its first block.
func (m Model) handleFilterKeys(msg tea.KeyMsg) Model {
	groups := m.Content.Groups
	switch msg.String() {
	case "esc", "f", "enter":
		m.FilterOpen = false
	case "up", "k":
		if m.FilterCursor > 0 {
			m.FilterCursor--
		}
	case "down", "j":
		if m.FilterCursor < len(groups)-1 {
			m.FilterCursor++
		}
	case " ", "x":
		if m.FilterCursor < len(groups) {
			m.Filter.ToggleCategory(groups[m.FilterCursor].Category.Id)
			m.Selected = 0
			m.Tabs.Reset()
			m.Tabs.SetCount(len(m.visible()))
		}
	case "c":
		m.Filter.Categories = nil
		m.Tabs.Reset()
		m.Tabs.SetCount(len(m.visible()))
	}
	return m
}

func (m Model) handleTabsKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		m.Tabs.Prev()
	case "right", "l":
		m.Tabs.Next()
	case "home", "g":
		m.Tabs.Select(0)
	case "end", "G":
		m.Tabs.Select(m.Tabs.Count() - 1)
	case " ", "r":
		visible := m.visible()
		if m.Tabs.Active < len(visible) {
			return m.toggleRead(visible[m.Tabs.Active].ID)
		}
	}
	return m, nil
}

func (m Model) handleCategorizedKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	rows := m.rows()
	switch msg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(rows)-1 {
			m.Selected++
		}
	case "enter", "o":
		if m.Selected >= len(rows) {
			return m, nil
		}
		r := rows[m.Selected]
		g := m.groups()[r.group]
		if r.kind == categoryRow {
			m.Session.ToggleCategory(g.Category.Id)
		} else {
			m.Session.ToggleItem(g.Blocks[r.block].Id)
		}
	case " ", "r":
		if m.Selected >= len(rows) || rows[m.Selected].kind != blockRow {
			return m, nil
		}
		r := rows[m.Selected]
		return m.toggleRead(m.groups()[r.group].Blocks[r.block].Id)
	}
	m.clampSelection()
	return m, nil
}

// toggleRead applies a read toggle and moves the cursor onto the block the
// engine opened next.
func (m Model) toggleRead(id int) (Model, tea.Cmd) {
	t := m.Session.ToggleRead(id, m.visible())
	if t.HasNext {
		if m.Mode == domain.ViewTabs {
			for i, it := range m.visible() {
				if it.ID == t.Next {
					m.Tabs.Select(i)
				}
			}
		} else {
			m.selectBlock(t.Next)
		}
	}
	m.clampSelection()
	if t.Completed {
		return m, func() tea.Msg { return common.CompletedMsg{} }
	}
	return m, nil
}

func (m *Model) selectBlock(id int) {
	groups := m.groups()
	for i, r := range m.rows() {
		if r.kind == blockRow && groups[r.group].Blocks[r.block].Id == id {
			m.Selected = i
			return
		}
	}
}

func (m *Model) clampSelection() {
	n := len(m.rows())
	if m.Selected >= n {
		m.Selected = max(n-1, 0)
	}
}

// Help returns the key summary for the footer.
func (m Model) Help() string {
	switch {
	case m.Searching:
		return "type to search • enter/esc: done"
	case m.FilterOpen:
		return "↑/↓ • space: toggle • c: clear • esc: close"
	case m.Mode == domain.ViewTabs:
		return "←/→: prev/next • space: read • /: search • f: filter • v: view • [/]: page"
	default:
		return "↑/↓ • enter: open • space: read • /: search • f: filter • v: view • [/]: page"
	}
}

func (m Model) badges(b domain.InformationBlock, now time.Time) string {
	var parts []string
	switch b.Status(now) {
	case domain.StatusNew:
		parts = append(parts, common.NewBadgeStyle.Render(domain.StatusNew.Badge()))
	case domain.StatusUpdated:
		parts = append(parts, common.UpdatedBadgeStyle.Render(domain.StatusUpdated.Badge()))
	}
	if b.HasScript() {
		parts = append(parts, common.ScriptMarkerStyle.Render("S"))
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, " ")
}

func (m Model) progressLine() string {
	read, total := m.Session.Progress()
	return fmt.Sprintf("%d/%d Okundu", read, total)
}
