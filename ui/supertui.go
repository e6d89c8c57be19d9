package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/deemkeen/disclosures/catalog"
	"github.com/deemkeen/disclosures/ui/admin"
	"github.com/deemkeen/disclosures/ui/common"
	"github.com/deemkeen/disclosures/ui/completion"
	"github.com/deemkeen/disclosures/ui/header"
	"github.com/deemkeen/disclosures/ui/reader"
	"github.com/deemkeen/disclosures/util"
)

const (
	minWidth  = 60
	minHeight = 20
)

var (
	modelStyle = lipgloss.NewStyle().
			Align(lipgloss.Top, lipgloss.Top).
			BorderStyle(lipgloss.HiddenBorder()).MarginLeft(1)
	focusedModelStyle = lipgloss.NewStyle().
				Align(lipgloss.Top, lipgloss.Top).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color(common.COLOR_ACCENT)).MarginLeft(1)
)

type MainModel struct {
	width           int
	height          int
	config          *util.AppConfig
	isAdmin         bool
	state           common.SessionState
	headerModel     header.Model
	readerModel     reader.Model
	adminModel      admin.Model
	completionModel completion.Model
}

// NewModel builds the session UI. Admin screens are only reachable when
// isAdmin is set by the caller after checking the session key.
func NewModel(svc *catalog.Service, conf *util.AppConfig, isAdmin bool, width int, height int) MainModel {
	width = common.DefaultWindowWidth(width)
	height = common.DefaultWindowHeight(height)

	defaultPage := 0
	if conf != nil {
		defaultPage = conf.Conf.DefaultPageId
	}

	return MainModel{
		width:           width,
		height:          height,
		config:          conf,
		isAdmin:         isAdmin,
		state:           common.ReaderView,
		headerModel:     header.Model{Width: width, Admin: isAdmin},
		readerModel:     reader.InitialModel(svc, defaultPage, width, common.CalculateAvailableHeight(height)),
		adminModel:      admin.InitialModel(svc, width, common.CalculateAvailableHeight(height)),
		completionModel: completion.InitialModel(),
	}
}

func (m MainModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.readerModel.Init()}
	if m.isAdmin {
		cmds = append(cmds, m.adminModel.Init())
	}
	return tea.Batch(cmds...)
}

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.headerModel.Width = msg.Width
		m.readerModel.Width = msg.Width
		m.readerModel.Height = common.CalculateAvailableHeight(msg.Height)
		m.adminModel, cmd = m.adminModel.Update(tea.WindowSizeMsg{
			Width:  msg.Width,
			Height: common.CalculateAvailableHeight(msg.Height),
		})
		return m, cmd

	case common.CompletedMsg:
		if m.readerModel.Session != nil {
			_, total := m.readerModel.Session.Progress()
			m.completionModel.Total = total
		}
		m.state = common.CompletionView
		return m, nil

	case common.ResetProgressMsg:
		m.readerModel, cmd = m.readerModel.Update(msg)
		m.state = common.ReaderView
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab", "shift+tab":
			if !m.isAdmin || m.state == common.CompletionView {
				break
			}
			// Tab is blocked in admin submenus and while the reader takes text input
			if m.state == common.AdminPanelView && m.adminModel.InSubView() {
				break
			}
			if m.state == common.ReaderView && m.readerModel.Searching {
				break
			}
			if m.state == common.ReaderView {
				m.state = common.AdminPanelView
			} else {
				m.state = common.ReaderView
			}
			return m, nil
		}

		switch m.state {
		case common.ReaderView:
			m.readerModel, cmd = m.readerModel.Update(msg)
		case common.AdminPanelView:
			m.adminModel, cmd = m.adminModel.Update(msg)
		case common.CompletionView:
			m.completionModel, cmd = m.completionModel.Update(msg)
		}
		return m, cmd
	}

	// Everything else is broadcast; each model ignores what it does not own.
	m.readerModel, cmd = m.readerModel.Update(msg)
	cmds = append(cmds, cmd)
	if m.isAdmin {
		m.adminModel, cmd = m.adminModel.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m MainModel) View() string {
	if m.width < minWidth || m.height < minHeight {
		message := fmt.Sprintf(
			"Terminal çok küçük!\n\nEn az: %dx%d\nŞu an: %dx%d\n\nLütfen terminali büyütün.",
			minWidth, minHeight, m.width, m.height,
		)
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(lipgloss.Color(common.COLOR_ERROR)).
			Bold(true).
			Render(message)
	}

	if m.state == common.CompletionView {
		return m.completionModel.ViewWithWidth(m.width, m.height)
	}

	availableHeight := common.CalculateAvailableHeight(m.height)
	panelWidth := m.width - 4

	var body string
	switch m.state {
	case common.AdminPanelView:
		body = m.adminModel.View()
	default:
		body = m.readerModel.View()
	}

	panel := lipgloss.NewStyle().
		MaxHeight(availableHeight).
		Height(availableHeight).
		Width(panelWidth).
		MaxWidth(panelWidth).
		Render(body)

	var s string
	s += m.headerModel.View()
	s += "\n"
	if m.isAdmin {
		s += focusedModelStyle.Render(panel)
	} else {
		s += modelStyle.Render(panel)
	}
	s += "\n"

	currentContentHeight := common.HeaderHeight + availableHeight + common.PanelMarginVertical
	remainingHeight := m.height - currentContentHeight - common.FooterHeight
	if remainingHeight > 0 {
		s += strings.Repeat("\n", remainingHeight)
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(common.COLOR_HELP)).
		Width(m.width).
		Align(lipgloss.Center)
	s += helpStyle.Render(m.helpText())
	return s
}

func (m MainModel) helpText() string {
	var viewCommands string
	switch m.state {
	case common.AdminPanelView:
		switch {
		case m.adminModel.Editing:
			viewCommands = "tab/shift+tab: alan • ctrl+s: kaydet • esc: iptal"
		case m.adminModel.InSubView():
			viewCommands = "↑/↓ • esc: geri"
		default:
			viewCommands = "↑/↓ • enter: seç"
		}
	default:
		viewCommands = m.readerModel.Help()
	}

	if m.isAdmin && !m.adminModel.InSubView() {
		return fmt.Sprintf("focused > %s\t\tkeys > tab: panel • %s • ctrl-c: exit", m.currentFocusedModel(), viewCommands)
	}
	return fmt.Sprintf("focused > %s\t\tkeys > %s • ctrl-c: exit", m.currentFocusedModel(), viewCommands)
}

func (m MainModel) currentFocusedModel() string {
	switch m.state {
	case common.AdminPanelView:
		return "yönetim"
	case common.CompletionView:
		return "tamamlandı"
	default:
		return "zorunlu bilgiler"
	}
}
