package reader

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/deemkeen/disclosures/domain"
	"github.com/deemkeen/disclosures/richtext"
	"github.com/deemkeen/disclosures/ui/common"
	"github.com/deemkeen/disclosures/util"
)

var (
	frameStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color(common.COLOR_WARNING)).
			Padding(0, 1)

	titleBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color(common.COLOR_WARNING)).
			Bold(true).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_DIM)).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_WHITE)).
			Background(lipgloss.Color(common.COLOR_ACCENT)).
			Bold(true).
			Padding(0, 1)
)

func (m Model) View() string {
	var s strings.Builder

	if m.Session == nil {
		s.WriteString(common.ListEmptyStyle.Render("Yükleniyor..."))
		return s.String()
	}

	width := max(m.Width-4, 20)

	s.WriteString(titleBarStyle.Width(width).Render(m.titleLine()))
	s.WriteString("\n")

	if page, ok := m.CurrentPage(); ok {
		s.WriteString(common.CaptionStyle.Render(page.Title))
		s.WriteString(common.ListBadgeStyle.Render("  " + page.CampaignType))
		s.WriteString("\n")
	}

	if m.Searching || m.Filter.Search != "" {
		s.WriteString(m.Search.View())
		s.WriteString("\n")
	}
	if m.FilterOpen {
		s.WriteString(m.renderFilter())
		s.WriteString("\n")
	} else if len(m.Filter.Categories) > 0 {
		s.WriteString(common.ListBadgeStyle.Render(fmt.Sprintf("filtre: %d kategori", len(m.Filter.Categories))))
		s.WriteString("\n")
	}
	s.WriteString("\n")

	if len(m.Content.Blocks()) == 0 {
		s.WriteString(common.ListEmptyStyle.Render("Zorunlu bilgi bulunmuyor."))
	} else if len(m.visible()) == 0 {
		s.WriteString(common.ListEmptyStyle.Render("Sonuç bulunamadı."))
	} else if m.Mode == domain.ViewTabs {
		s.WriteString(m.renderTabs(width))
	} else {
		s.WriteString(m.renderCategorized(width))
	}

	if m.Error != "" {
		s.WriteString("\n")
		s.WriteString(common.ListErrorStyle.Render("Hata: " + m.Error))
	}

	return s.String()
}

func (m Model) titleLine() string {
	mode := "Kategorili"
	if m.Mode == domain.ViewTabs {
		mode = "Sekmeli"
	}
	return fmt.Sprintf("%s  [%s]  %s", Title, mode, m.progressLine())
}

func (m Model) renderFilter() string {
	var s strings.Builder
	s.WriteString(common.CaptionStyle.Render("kategori filtresi"))
	s.WriteString("\n")
	for i, g := range m.Content.Groups {
		check := "[ ]"
		if m.Filter.HasCategory(g.Category.Id) {
			check = "[x]"
		}
		text := fmt.Sprintf("%s %s %s (%d)", check, util.ColorSwatch(g.Category.Color, 2), g.Category.Name, len(g.Blocks))
		if i == m.FilterCursor {
			s.WriteString(common.ListSelectedPrefix + common.ListItemSelectedStyle.Render(text))
		} else {
			s.WriteString(common.ListUnselectedPrefix + common.ListItemStyle.Render(text))
		}
		s.WriteString("\n")
	}
	return s.String()
}

func (m Model) renderCategorized(width int) string {
	var lines []string
	selectedLine := 0
	groups := m.groups()
	now := m.Service.Now()

	for i, r := range m.rows() {
		g := groups[r.group]
		selected := i == m.Selected
		if selected {
			selectedLine = len(lines)
		}
		prefix := common.ListUnselectedPrefix
		if selected {
			prefix = common.ListSelectedPrefix
		}

		if r.kind == categoryRow {
			arrow := "▸"
			if m.Session.IsCategoryExpanded(g.Category.Id) {
				arrow = "▾"
			}
			read, total := m.Session.CategoryProgress(g.Category.Id)
			counter := fmt.Sprintf("%d/%d Okundu", read, total)
			if m.Session.CategoryDone(g.Category.Id) {
				counter = common.ReadMarkStyle.Render("✓ " + counter)
			} else {
				counter = common.ListBadgeStyle.Render(counter)
			}
			name := g.Category.Name
			if selected {
				name = common.ListItemSelectedStyle.Render(name)
			} else {
				name = lipgloss.NewStyle().Bold(true).Render(name)
			}
			lines = append(lines, fmt.Sprintf("%s%s %s %s  %s", prefix, arrow, util.ColorSwatch(g.Category.Color, 1), name, counter))
			continue
		}

		b := g.Blocks[r.block]
		mark := "○"
		if m.Session.IsRead(b.Id) {
			mark = common.ReadMarkStyle.Render("●")
		}
		title := util.TruncateWidth(b.Title, max(width-20, 10))
		if selected {
			title = common.ListItemSelectedStyle.Render(title)
		} else if m.Session.IsRead(b.Id) {
			title = common.ListBadgeMutedStyle.Render(title)
		} else {
			title = common.ListItemStyle.Render(title)
		}
		lines = append(lines, fmt.Sprintf("%s  %s %s%s", prefix, mark, title, m.badges(b, now)))

		if m.Session.IsExpanded(b.Id) {
			body := richtext.TerminalHTML(b.ContentHTML, max(width-6, 20))
			lines = append(lines, lipgloss.NewStyle().MarginLeft(6).Render(body))
		}
	}

	return m.scroll(lines, selectedLine)
}

// scroll keeps the selected row on screen. Expanded bodies count as many
// lines as they render to.
func (m Model) scroll(lines []string, selected int) string {
	budget := max(common.CalculateAvailableHeight(m.Height)-6, 5)
	start := 0
	for start < selected && lipgloss.Height(strings.Join(lines[start:selected+1], "\n")) > budget {
		start++
	}
	var out []string
	used := 0
	for _, l := range lines[start:] {
		h := lipgloss.Height(l)
		if used+h > budget && len(out) > 0 {
			break
		}
		out = append(out, l)
		used += h
	}
	return strings.Join(out, "\n")
}

func (m Model) renderTabs(width int) string {
	var s strings.Builder
	visible := m.visible()
	blocks := map[int]domain.InformationBlock{}
	for _, b := range m.Content.Blocks() {
		blocks[b.Id] = b
	}

	var tabs []string
	used := 0
	for i, it := range visible {
		label := util.TruncateWidth(blocks[it.ID].Title, 18)
		if m.Session.IsRead(it.ID) {
			label = "✓ " + label
		}
		style := tabStyle
		if i == m.Tabs.Active {
			style = activeTabStyle
		}
		rendered := style.Render(label)
		used += lipgloss.Width(rendered)
		if used > width && i > m.Tabs.Active {
			tabs = append(tabs, tabStyle.Render("…"))
			break
		}
		tabs = append(tabs, rendered)
	}
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	s.WriteString("\n\n")

	if m.Tabs.Active < len(visible) {
		b := blocks[visible[m.Tabs.Active].ID]
		s.WriteString(common.CaptionStyle.Render(b.Title))
		s.WriteString(m.badges(b, m.Service.Now()))
		s.WriteString("\n\n")
		s.WriteString(frameStyle.Width(width - 2).Render(richtext.TerminalHTML(b.ContentHTML, width-6)))
		s.WriteString("\n")
	}

	nav := fmt.Sprintf("%d / %d", m.Tabs.Active+1, m.Tabs.Count())
	if m.Tabs.HasPrev() {
		nav = "← Önceki  " + nav
	}
	if m.Tabs.HasNext() {
		nav += "  Sonraki →"
	}
	s.WriteString(common.ListBadgeStyle.Render(nav))
	return s.String()
}
