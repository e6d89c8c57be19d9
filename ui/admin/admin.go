package admin

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/deemkeen/disclosures/catalog"
	"github.com/deemkeen/disclosures/domain"
	"github.com/deemkeen/disclosures/ui/categories"
	"github.com/deemkeen/disclosures/ui/common"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type AdminView int

const (
	MenuView AdminView = iota
	BlocksView
	CategoriesView
	PageCategoriesView
	ResetView
)

var menuItems = []string{"Zorunlu Bilgiler", "Kategoriler", "Sayfa Kategorileri", "Varsayılana Sıfırla"}

type Model struct {
	Service      *catalog.Service
	CurrentView  AdminView
	MenuSelected int

	// Block management
	Blocks        []domain.InformationBlock
	Categories    []domain.Category
	Query         catalog.BlockQuery
	Search        textinput.Model
	Searching     bool
	Selected      int
	Offset        int
	ConfirmDelete bool
	DeleteId      int
	Previewing    bool
	Editing       bool
	Form          blockForm

	// Category management
	CategoriesModel categories.Model

	// Page category lists
	Pages        []domain.Page
	PageSelected int
	PageOpen     bool
	PageCursor   int
	PageAdding   bool
	AddCursor    int

	Width  int
	Height int
	Status string
	Error  string
}

func InitialModel(svc *catalog.Service, width, height int) Model {
	search := textinput.New()
	search.Placeholder = "Başlıkta ara..."
	search.Prompt = "/ "
	search.CharLimit = 100
	search.Width = common.TextInputDefaultWidth

	return Model{
		Service:         svc,
		CurrentView:     MenuView,
		Blocks:          []domain.InformationBlock{},
		Categories:      []domain.Category{},
		Pages:           []domain.Page{},
		Search:          search,
		CategoriesModel: categories.InitialModel(svc, width, height),
		Width:           width,
		Height:          height,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(loadData(m.Service, m.Query), m.CategoriesModel.Init())
}

// Message types
type dataLoadedMsg struct {
	blocks     []domain.InformationBlock
	categories []domain.Category
	pages      []domain.Page
}

type blockSavedMsg struct{ block domain.InformationBlock }
type blockDeletedMsg struct{ id int }
type blockToggledMsg struct{ block domain.InformationBlock }
type blockMovedMsg struct{}
type pageSavedMsg struct{ page domain.Page }
type resetDoneMsg struct{}
type adminErrorMsg struct{ err error }

func loadData(svc *catalog.Service, q catalog.BlockQuery) tea.Cmd {
	return func() tea.Msg {
		return dataLoadedMsg{
			blocks:     svc.ListBlocks(q),
			categories: svc.Categories(),
			pages:      svc.Pages(),
		}
	}
}

func saveBlock(svc *catalog.Service, id int, in catalog.BlockInput) tea.Cmd {
	return func() tea.Msg {
		var (
			b   domain.InformationBlock
			err error
		)
		if id == 0 {
			b, err = svc.CreateBlock(in)
		} else {
			b, err = svc.UpdateBlock(id, in)
		}
		if err != nil {
			log.Printf("Failed to save block: %v", err)
			return adminErrorMsg{err: err}
		}
		return blockSavedMsg{block: b}
	}
}

func deleteBlock(svc *catalog.Service, id int) tea.Cmd {
	return func() tea.Msg {
		if err := svc.DeleteBlock(id); err != nil {
			log.Printf("Failed to delete block %d: %v", id, err)
			return adminErrorMsg{err: err}
		}
		return blockDeletedMsg{id: id}
	}
}

func toggleBlock(svc *catalog.Service, id int) tea.Cmd {
	return func() tea.Msg {
		b, err := svc.ToggleActive(id)
		if err != nil {
			return adminErrorMsg{err: err}
		}
		return blockToggledMsg{block: b}
	}
}

func moveBlock(svc *catalog.Service, id int, up bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		if up {
			err = svc.MoveBlockUp(id)
		} else {
			err = svc.MoveBlockDown(id)
		}
		if err != nil {
			return adminErrorMsg{err: err}
		}
		return blockMovedMsg{}
	}
}

func resetAll(svc *catalog.Service) tea.Cmd {
	return func() tea.Msg {
		svc.ResetAll()
		return resetDoneMsg{}
	}
}

func dataChanged() tea.Msg {
	return common.DataChangedMsg{}
}

// InSubView reports whether keys like tab must stay inside the admin panel.
func (m Model) InSubView() bool {
	return m.CurrentView != MenuView
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.CategoriesModel.Width = msg.Width
		m.CategoriesModel.Height = msg.Height
		return m, nil

	case dataLoadedMsg:
		m.Blocks = msg.blocks
		m.Categories = msg.categories
		m.Pages = msg.pages
		if m.Selected >= len(m.Blocks) {
			m.Selected = max(0, len(m.Blocks)-1)
		}
		if m.PageSelected >= len(m.Pages) {
			m.PageSelected = max(0, len(m.Pages)-1)
		}
		return m, nil

	case common.DataChangedMsg:
		m.CategoriesModel, cmd = m.CategoriesModel.Update(msg)
		return m, tea.Batch(loadData(m.Service, m.Query), cmd)

	case blockSavedMsg:
		m.Status = fmt.Sprintf("Kaydedildi: %s", msg.block.Title)
		m.Error = ""
		m.Editing = false
		return m, dataChanged

	case blockDeletedMsg:
		m.Status = "Zorunlu bilgi silindi"
		m.Error = ""
		return m, dataChanged

	case blockToggledMsg:
		if msg.block.IsActive {
			m.Status = "Aktif edildi: " + msg.block.Title
		} else {
			m.Status = "Pasif edildi: " + msg.block.Title
		}
		return m, dataChanged

	case blockMovedMsg:
		return m, dataChanged

	case pageSavedMsg:
		for i := range m.Pages {
			if m.Pages[i].Id == msg.page.Id {
				m.Pages[i] = msg.page
			}
		}
		return m, dataChanged

	case resetDoneMsg:
		m.Status = "Tüm veriler varsayılana sıfırlandı"
		m.CurrentView = MenuView
		return m, dataChanged

	case adminErrorMsg:
		m.Error = describe(msg.err)
		return m, nil

	case tea.KeyMsg:
		m.Status = ""
		m.Error = ""

		switch m.CurrentView {
		case MenuView:
			return m.handleMenuKeys(msg)
		case BlocksView:
			if m.Editing {
				return m.handleFormKeys(msg)
			}
			return m.handleBlocksKeys(msg)
		case CategoriesView:
			if msg.String() == "esc" && !m.CategoriesModel.Editing && !m.CategoriesModel.ConfirmDelete {
				m.CurrentView = MenuView
				return m, nil
			}
			m.CategoriesModel, cmd = m.CategoriesModel.Update(msg)
			return m, cmd
		case PageCategoriesView:
			return m.handlePageKeys(msg)
		case ResetView:
			switch msg.String() {
			case "y", "Y":
				return m, resetAll(m.Service)
			case "n", "N", "esc":
				m.CurrentView = MenuView
				m.Status = "Sıfırlama iptal edildi"
			}
			return m, nil
		}
	}

	// Non-key messages for the category screen and the form inputs.
	switch m.CurrentView {
	case CategoriesView:
		m.CategoriesModel, cmd = m.CategoriesModel.Update(msg)
		return m, cmd
	case BlocksView:
		if m.Editing {
			return m.updateFormInputs(msg)
		}
		if m.Searching {
			m.Search, cmd = m.Search.Update(msg)
			return m, cmd
		}
	}
	// Category messages can arrive while another view is showing.
	m.CategoriesModel, cmd = m.CategoriesModel.Update(msg)
	return m, cmd
}

func (m Model) handleMenuKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.MenuSelected > 0 {
			m.MenuSelected--
		}
	case "down", "j":
		if m.MenuSelected < len(menuItems)-1 {
			m.MenuSelected++
		}
	case "enter":
		switch m.MenuSelected {
		case 0:
			m.CurrentView = BlocksView
			return m, loadData(m.Service, m.Query)
		case 1:
			m.CurrentView = CategoriesView
			return m, m.CategoriesModel.Init()
		case 2:
			m.CurrentView = PageCategoriesView
			m.PageOpen = false
			return m, loadData(m.Service, m.Query)
		case 3:
			m.CurrentView = ResetView
		}
	}
	return m, nil
}

func (m Model) selectedBlock() (domain.InformationBlock, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Blocks) {
		return domain.InformationBlock{}, false
	}
	return m.Blocks[m.Selected], true
}

func (m Model) handleBlocksKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.Searching {
		switch msg.String() {
		case "esc", "enter":
			m.Searching = false
			m.Search.Blur()
			return m, nil
		}
		m.Search, cmd = m.Search.Update(msg)
		m.Query.Search = m.Search.Value()
		m.Selected, m.Offset = 0, 0
		return m, tea.Batch(cmd, loadData(m.Service, m.Query))
	}

	if m.ConfirmDelete {
		switch msg.String() {
		case "y", "Y":
			m.ConfirmDelete = false
			return m, deleteBlock(m.Service, m.DeleteId)
		case "n", "N", "esc":
			m.ConfirmDelete = false
			m.DeleteId = 0
			m.Status = "Silme iptal edildi"
		}
		return m, nil
	}

	if m.Previewing {
		switch msg.String() {
		case "esc", "p", "enter":
			m.Previewing = false
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.CurrentView = MenuView
		return m, nil
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
			if m.Selected < m.Offset {
				m.Offset = m.Selected
			}
		}
	case "down", "j":
		if len(m.Blocks) > 0 && m.Selected < len(m.Blocks)-1 {
			m.Selected++
			if m.Selected >= m.Offset+common.DefaultItemsPerPage {
				m.Offset = m.Selected - common.DefaultItemsPerPage + 1
			}
		}
	case "/":
		m.Searching = true
		cmd := m.Search.Focus()
		return m, cmd
	case "a":
		m.Query.Active = (m.Query.Active + 1) % 3
		m.Selected, m.Offset = 0, 0
		return m, loadData(m.Service, m.Query)
	case "c":
		m.Query.CategoryId = nextCategoryFilter(m.Categories, m.Query.CategoryId)
		m.Selected, m.Offset = 0, 0
		return m, loadData(m.Service, m.Query)
	case "n":
		m.Editing = true
		m.Form = newBlockForm(domain.InformationBlock{IsActive: true, CategoryId: m.defaultCategory()}, m.formWidth())
		cmd := m.Form.focus()
		return m, cmd
	case "enter", "e":
		if b, ok := m.selectedBlock(); ok {
			m.Editing = true
			m.Form = newBlockForm(b, m.formWidth())
			cmd := m.Form.focus()
			return m, cmd
		}
	case "p":
		if _, ok := m.selectedBlock(); ok {
			m.Previewing = true
		}
	case "d":
		if b, ok := m.selectedBlock(); ok {
			m.ConfirmDelete = true
			m.DeleteId = b.Id
		}
	case "t":
		if b, ok := m.selectedBlock(); ok {
			return m, toggleBlock(m.Service, b.Id)
		}
	case "[", "K":
		if b, ok := m.selectedBlock(); ok && !m.Service.IsFirstInCategory(b) {
			if m.Selected > 0 {
				m.Selected--
			}
			return m, moveBlock(m.Service, b.Id, true)
		}
	case "]", "J":
		if b, ok := m.selectedBlock(); ok && !m.Service.IsLastInCategory(b) {
			if m.Selected < len(m.Blocks)-1 {
				m.Selected++
			}
			return m, moveBlock(m.Service, b.Id, false)
		}
	}
	return m, nil
}

func (m Model) defaultCategory() string {
	if m.Query.CategoryId != "" {
		return m.Query.CategoryId
	}
	if len(m.Categories) > 0 {
		return m.Categories[0].Id
	}
	return ""
}

func (m Model) formWidth() int {
	return max(min(m.Width/2, common.TextAreaDefaultWidth+20), common.TextAreaDefaultWidth)
}

// nextCategoryFilter cycles "all" then each category in order.
func nextCategoryFilter(cats []domain.Category, current string) string {
	if current == "" {
		if len(cats) > 0 {
			return cats[0].Id
		}
		return ""
	}
	for i, c := range cats {
		if c.Id == current && i+1 < len(cats) {
			return cats[i+1].Id
		}
	}
	return ""
}

func (m Model) findCategory(id string) (domain.Category, bool) {
	for _, c := range m.Categories {
		if c.Id == id {
			return c, true
		}
	}
	return domain.Category{}, false
}

func (m Model) categoryName(id string) string {
	if c, ok := m.findCategory(id); ok {
		return c.Name
	}
	return id
}

// describe flattens validation errors into one line in field order.
func describe(err error) string {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		var parts []string
		for _, field := range []string{"Title", "CategoryId", "Name", "Color"} {
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
