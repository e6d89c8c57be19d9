package admin

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/deemkeen/disclosures/catalog"
	"github.com/deemkeen/disclosures/richtext"
	"github.com/deemkeen/disclosures/ui/common"
	"github.com/deemkeen/disclosures/util"
)

var activeFilterNames = map[catalog.ActiveFilter]string{
	catalog.AllBlocks:    "tümü",
	catalog.ActiveOnly:   "aktif",
	catalog.InactiveOnly: "pasif",
}

var modalStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color(common.COLOR_WARNING)).
	Padding(0, 1)

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(common.CaptionStyle.Render("yönetim paneli"))
	s.WriteString("\n\n")

	switch m.CurrentView {
	case MenuView:
		s.WriteString(m.renderMenu())
	case BlocksView:
		if m.Editing {
			s.WriteString(m.renderEditView())
		} else {
			s.WriteString(m.renderBlocksView())
		}
	case CategoriesView:
		s.WriteString(m.CategoriesModel.View())
	case PageCategoriesView:
		s.WriteString(m.renderPagesView())
	case ResetView:
		s.WriteString(common.ListErrorStyle.Render("Tüm veriler varsayılana sıfırlanacak. Emin misiniz? (y/n)"))
	}

	if m.Status != "" {
		s.WriteString("\n\n")
		s.WriteString(common.ListStatusStyle.Render(m.Status))
	}
	if m.Error != "" {
		s.WriteString("\n\n")
		s.WriteString(common.ListErrorStyle.Render("Hata: " + m.Error))
	}

	return s.String()
}

func (m Model) renderMenu() string {
	var s strings.Builder

	for i, item := range menuItems {
		if i == m.MenuSelected {
			s.WriteString(common.ListSelectedPrefix + common.ListItemSelectedStyle.Render(item))
		} else {
			s.WriteString(common.ListUnselectedPrefix + common.ListItemStyle.Render(item))
		}
		s.WriteString("\n")
	}

	s.WriteString("\n\n")
	s.WriteString(common.ListBadgeStyle.Render("devam etmek için bir seçenek seçin"))

	return s.String()
}

func (m Model) renderBlocksView() string {
	var s strings.Builder

	filter := fmt.Sprintf("durum: %s", activeFilterNames[m.Query.Active])
	if m.Query.CategoryId != "" {
		filter += " • kategori: " + m.categoryName(m.Query.CategoryId)
	}
	s.WriteString(common.CaptionStyle.Render(fmt.Sprintf("zorunlu bilgiler (%d)", len(m.Blocks))))
	s.WriteString("  ")
	s.WriteString(common.ListBadgeStyle.Render(filter))
	s.WriteString("\n")
	if m.Searching || m.Query.Search != "" {
		s.WriteString(m.Search.View())
		s.WriteString("\n")
	}
	s.WriteString("\n")

	if len(m.Blocks) == 0 {
		s.WriteString(common.ListEmptyStyle.Render("Zorunlu bilgi bulunamadı. Eklemek için 'n' tuşuna basın."))
		s.WriteString("\n\n")
		s.WriteString(common.ListBadgeStyle.Render("Keys: n: ekle • /: ara • a: durum • c: kategori • esc: geri"))
		return s.String()
	}

	if m.Previewing {
		if b, ok := m.selectedBlock(); ok {
			width := common.CalculateContentWidth(m.Width, 4)
			s.WriteString(common.ListItemSelectedStyle.Render(b.Title))
			s.WriteString("\n\n")
			s.WriteString(richtext.TerminalHTML(b.ContentHTML, width))
			s.WriteString("\n\n")
			s.WriteString(common.ListBadgeStyle.Render("Keys: esc/p: kapat"))
			return s.String()
		}
	}

	titleWidth := max(common.CalculateContentWidth(m.Width, 30), 20)
	now := m.Service.Now()
	start := m.Offset
	end := min(start+common.DefaultItemsPerPage, len(m.Blocks))

	for i := start; i < end; i++ {
		b := m.Blocks[i]
		title := util.TruncateWidth(b.Title, titleWidth)

		status := common.ListBadgeEnabledStyle.Render(" [AKTİF]")
		if !b.IsActive {
			status = common.ListBadgeMutedStyle.Render(" [PASİF]")
		}
		if badge := b.Status(now).Badge(); badge != "" {
			status += " " + common.ListBadgeStyle.Render(badge)
		}
		if b.HasScript() {
			status += " " + common.ScriptMarkerStyle.Render("S")
		}

		order := common.ListBadgeStyle.Render(fmt.Sprintf("%s #%d", m.categoryName(b.CategoryId), b.DisplayOrder))

		if i == m.Selected {
			s.WriteString(common.ListSelectedPrefix + common.ListItemSelectedStyle.Render(title) + status + " " + order)
		} else {
			s.WriteString(common.ListUnselectedPrefix + common.ListItemStyle.Render(title) + status + " " + order)
		}
		s.WriteString("\n")
	}

	if len(m.Blocks) > common.DefaultItemsPerPage {
		s.WriteString("\n")
		s.WriteString(common.ListBadgeStyle.Render(fmt.Sprintf("showing %d-%d of %d", start+1, end, len(m.Blocks))))
	}

	s.WriteString("\n\n")

	if m.ConfirmDelete {
		s.WriteString(common.ListErrorStyle.Render("Bu zorunlu bilgiyi silmek istediğinizden emin misiniz? (y/n)"))
	} else {
		s.WriteString(common.ListBadgeStyle.Render("Keys: ↑/↓ • n: ekle • enter: düzenle • p: önizle • d: sil • t: aktif/pasif • [/]: sırala"))
		s.WriteString("\n")
		s.WriteString(common.ListBadgeStyle.Render("      /: ara • a: durum • c: kategori • esc: geri"))
	}

	return s.String()
}

func (m Model) renderEditView() string {
	f := m.Form
	if f.Script != nil {
		return m.renderScriptModal()
	}

	var s strings.Builder

	if f.Id == 0 {
		s.WriteString(common.CaptionStyle.Render("yeni zorunlu bilgi"))
	} else {
		s.WriteString(common.CaptionStyle.Render(fmt.Sprintf("zorunlu bilgi düzenle #%d", f.Id)))
	}
	s.WriteString("\n\n")

	fieldNames := []string{"Başlık", "Kategori", "Durum", "İçerik (Markdown veya HTML)", "Yapı"}

	for i, name := range fieldNames {
		if i > 0 {
			s.WriteString("\n")
		}

		indicator := "  "
		labelStyle := common.ListItemStyle
		if i == f.Field {
			indicator = "▶ "
			labelStyle = common.ListItemSelectedStyle
		}
		s.WriteString(labelStyle.Render(indicator + name + ":"))

		switch i {
		case titleField:
			s.WriteString("\n")
			s.WriteString(f.TitleInput.View())
		case categoryField:
			s.WriteString(" ")
			if c, ok := m.findCategory(f.Input.CategoryId); ok {
				s.WriteString(util.ColorSwatch(c.Color, 2) + " " + c.Name)
			} else {
				s.WriteString(common.ListEmptyStyle.Render("seçilmedi"))
			}
			s.WriteString(common.ListBadgeStyle.Render("  ←/→"))
		case activeField:
			if f.Input.IsActive {
				s.WriteString(common.ListBadgeEnabledStyle.Render(" aktif"))
			} else {
				s.WriteString(common.ListBadgeMutedStyle.Render(" pasif"))
			}
		case contentField:
			s.WriteString("\n")
			s.WriteString(f.ContentInput.View())
		case structureField:
			s.WriteString("\n")
			s.WriteString(m.renderStructure())
		}
		s.WriteString("\n")
	}

	s.WriteString("\n")
	if f.Field == structureField {
		s.WriteString(common.ListBadgeStyle.Render("Keys: ↑/↓: düğüm • a: script ekle • enter: script düzenle • d: script sil • tab: alan"))
	} else {
		s.WriteString(common.ListBadgeStyle.Render("Keys: tab/shift+tab: alan • enter: düzenle • ctrl+s: kaydet • esc: iptal"))
	}

	return s.String()
}

func (m Model) renderStructure() string {
	f := m.Form
	var s strings.Builder
	width := max(m.formWidth()-6, 20)

	for i, n := range f.Doc.Nodes {
		var line string
		switch v := n.(type) {
		case richtext.ScriptBlock:
			line = common.ScriptMarkerStyle.Render("S") + " " + util.TruncateWidth(v.Label, width/2) +
				common.ListBadgeStyle.Render(" "+util.TruncateWidth(util.StripHTMLTags(v.Content), width/2))
		case richtext.Paragraph:
			line = util.TruncateWidth(strings.TrimSpace(v.Text()), width)
		}
		if f.Field == structureField && i == f.NodeCursor {
			s.WriteString(common.ListSelectedPrefix + line)
		} else {
			s.WriteString(common.ListUnselectedPrefix + line)
		}
		s.WriteString("\n")
	}

	end := common.ListEmptyStyle.Render("(sona ekle)")
	if f.Field == structureField && f.NodeCursor >= len(f.Doc.Nodes) {
		s.WriteString(common.ListSelectedPrefix + end)
	} else {
		s.WriteString(common.ListUnselectedPrefix + end)
	}
	return s.String()
}

func (m Model) renderScriptModal() string {
	sm := m.Form.Script
	var s strings.Builder

	if sm.Editor.Editing() {
		s.WriteString(common.CaptionStyle.Render("script bloğu düzenle"))
	} else {
		s.WriteString(common.CaptionStyle.Render("script bloğu ekle"))
	}
	s.WriteString("\n\n")

	fieldNames := []string{"Etiket", "Metin", "Renk"}
	inputs := []string{sm.LabelInput.View(), sm.ContentInput.View(), m.renderColorPicker()}
	for i, name := range fieldNames {
		indicator := "  "
		labelStyle := common.ListItemStyle
		if i == sm.Field {
			indicator = "▶ "
			labelStyle = common.ListItemSelectedStyle
		}
		s.WriteString(labelStyle.Render(indicator + name + ":"))
		s.WriteString("\n")
		s.WriteString(inputs[i])
		s.WriteString("\n\n")
	}

	if sm.Editor.Previewing() {
		s.WriteString(common.ListBadgeStyle.Render("önizleme:"))
		s.WriteString("\n")
		s.WriteString(richtext.TerminalScript(sm.Editor.Block(), max(m.formWidth()-4, 24)))
		s.WriteString("\n\n")
	}

	switch {
	case sm.Editor.DeletePending():
		s.WriteString(common.ListErrorStyle.Render("Bu script bloğunu silmek istediğinizden emin misiniz? (y/n)"))
	default:
		keys := "Keys: tab: alan • ←/→: renk • ctrl+p: önizle • esc: kapat"
		if sm.Editor.Editing() {
			keys += " • ctrl+d: sil"
		}
		s.WriteString(common.ListBadgeStyle.Render(keys))
		s.WriteString("\n")
		save := "ctrl+s: kaydet"
		if !canSave(sm) {
			s.WriteString(common.ListBadgeMutedStyle.Render(save + " (metin gerekli)"))
		} else {
			s.WriteString(common.ListBadgeEnabledStyle.Render(save))
		}
	}

	return modalStyle.Render(s.String())
}

// canSave checks the live input, not the last synced editor state.
func canSave(sm *scriptModal) bool {
	draft := *sm.Editor
	draft.Content = richtext.Author(sm.ContentInput.Value(), richtext.ScriptFormats)
	return draft.CanSave()
}

func (m Model) renderColorPicker() string {
	sm := m.Form.Script
	var parts []string
	for _, p := range richtext.Presets {
		swatch := util.ColorSwatch(p.Border, 2)
		label := p.Label
		if p.ID == sm.Editor.Color {
			label = common.ListItemSelectedStyle.Render("[" + label + "]")
		} else {
			label = common.ListBadgeStyle.Render(label)
		}
		parts = append(parts, swatch+" "+label)
	}
	return "  " + strings.Join(parts, " ")
}

func (m Model) renderPagesView() string {
	var s strings.Builder

	s.WriteString(common.CaptionStyle.Render(fmt.Sprintf("sayfa kategorileri (%d sayfa)", len(m.Pages))))
	s.WriteString("\n\n")

	if len(m.Pages) == 0 {
		s.WriteString(common.ListEmptyStyle.Render("Sayfa yok."))
		return s.String()
	}

	if !m.PageOpen {
		for i, p := range m.Pages {
			text := fmt.Sprintf("%s %s", p.Title, common.ListBadgeStyle.Render(fmt.Sprintf("(%d kategori)", len(p.CategoryIds))))
			if i == m.PageSelected {
				s.WriteString(common.ListSelectedPrefix + common.ListItemSelectedStyle.Render(p.Title) + " " +
					common.ListBadgeStyle.Render(fmt.Sprintf("(%d kategori)", len(p.CategoryIds))))
			} else {
				s.WriteString(common.ListUnselectedPrefix + common.ListItemStyle.Render(text))
			}
			s.WriteString("\n")
		}
		s.WriteString("\n")
		s.WriteString(common.ListBadgeStyle.Render("Keys: ↑/↓ • enter: kategorileri düzenle • esc: geri"))
		return s.String()
	}

	p, _ := m.selectedPage()
	s.WriteString(common.ListItemSelectedStyle.Render(p.Title))
	s.WriteString("\n\n")

	if len(p.CategoryIds) == 0 {
		s.WriteString(common.ListEmptyStyle.Render("Bu sayfada kategori yok."))
		s.WriteString("\n")
	}
	for i, id := range p.CategoryIds {
		name := id
		swatch := "  "
		if c, ok := m.findCategory(id); ok {
			name = c.Name
			swatch = util.ColorSwatch(c.Color, 2)
		}
		line := fmt.Sprintf("%d. %s %s", i+1, swatch, name)
		if i == m.PageCursor && !m.PageAdding {
			s.WriteString(common.ListSelectedPrefix + common.ListItemSelectedStyle.Render(line))
		} else {
			s.WriteString(common.ListUnselectedPrefix + common.ListItemStyle.Render(line))
		}
		s.WriteString("\n")
	}

	if m.PageAdding {
		s.WriteString("\n")
		s.WriteString(common.ListBadgeStyle.Render("eklenecek kategori:"))
		s.WriteString("\n")
		for i, c := range m.addableCategories() {
			line := util.ColorSwatch(c.Color, 2) + " " + c.Name
			if i == m.AddCursor {
				s.WriteString(common.ListSelectedPrefix + common.ListItemSelectedStyle.Render(line))
			} else {
				s.WriteString(common.ListUnselectedPrefix + common.ListItemStyle.Render(line))
			}
			s.WriteString("\n")
		}
		s.WriteString("\n")
		s.WriteString(common.ListBadgeStyle.Render("Keys: ↑/↓ • enter: ekle • esc: vazgeç"))
		return s.String()
	}

	s.WriteString("\n")
	s.WriteString(common.ListBadgeStyle.Render("Keys: ↑/↓ • a: ekle • d: çıkar • [/]: sırala • esc: geri"))
	return s.String()
}
