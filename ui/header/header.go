package header

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/deemkeen/disclosures/ui/common"
	"github.com/deemkeen/disclosures/util"
)

var (
	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_WHITE)).
			Background(lipgloss.Color(common.COLOR_BRAND)).
			Bold(true).
			Padding(0, 1)

	roleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_BRAND)).
			Background(lipgloss.Color(common.COLOR_WARNING)).
			Bold(true).
			Padding(0, 1)
)

// Model is the one line brand bar above every view.
type Model struct {
	Width int
	Admin bool
}

func (m Model) View() string {
	left := barStyle.Render(util.GetNameAndVersion())
	right := ""
	if m.Admin {
		right = roleStyle.Render("YÖNETİCİ")
	}
	gap := max(m.Width-lipgloss.Width(left)-lipgloss.Width(right)-2, 0)
	fill := barStyle.Padding(0).Render(lipgloss.PlaceHorizontal(gap, lipgloss.Left, ""))
	return left + fill + right
}
