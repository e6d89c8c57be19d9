package completion

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/deemkeen/disclosures/ui/common"
)

var (
	Style = lipgloss.NewStyle().
		Align(lipgloss.Center, lipgloss.Center).
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(lipgloss.Color(common.COLOR_WARNING)).
		Padding(1, 3)

	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_WARNING)).
			Bold(true)

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color(common.COLOR_WARNING)).
			Bold(true).
			Padding(0, 2)
)

// Model is the dialog shown once every visible block was read. Its only
// action resets progress.
type Model struct {
	Total int
}

func InitialModel() Model {
	return Model{}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter", " ", "esc":
			return m, func() tea.Msg { return common.ResetProgressMsg{} }
		}
	}
	return m, nil
}

func (m Model) View() string {
	s := headingStyle.Render("Tebrikler!")
	s += "\n\n"
	s += "Tüm zorunlu bilgiler okundu"
	if m.Total > 0 {
		s += fmt.Sprintf(" (%d/%d)", m.Total, m.Total)
	}
	s += "\n\n"
	s += buttonStyle.Render("Tamam, Sıfırla")
	return s
}

// ViewWithWidth centers the dialog on the terminal.
func (m Model) ViewWithWidth(termWidth, termHeight int) string {
	contentWidth := max(min(termWidth-common.DialogBorderAndMargin, 50), common.DialogMinWidth)
	bordered := Style.Width(contentWidth).Render(m.View())
	return lipgloss.Place(termWidth, termHeight, lipgloss.Center, lipgloss.Center, bordered)
}
