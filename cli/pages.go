package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/deemkeen/disclosures/domain"
	"github.com/deemkeen/disclosures/richtext"
)

const showWidth = 80

func pageItem(p domain.Page) PageItem {
	cats := p.CategoryIds
	if cats == nil {
		cats = []string{}
	}
	return PageItem{ID: p.Id, Title: p.Title, CampaignType: p.CampaignType, Categories: cats}
}

// handlePages lists the campaign pages
func (h *Handler) handlePages(args []string) error {
	pages := h.catalog.Pages()

	if h.output.IsJSON() {
		items := make([]PageItem, 0, len(pages))
		for _, p := range pages {
			items = append(items, pageItem(p))
		}
		h.output.JSON(PagesResponse{Pages: items, Count: len(items)})
		return nil
	}

	if len(pages) == 0 {
		h.output.Println("No pages.")
		return nil
	}
	for _, p := range pages {
		h.output.Print("%d  %s (%s) - %d categories\n", p.Id, p.Title, p.CampaignType, len(p.CategoryIds))
	}
	return nil
}

// handleShow renders the active blocks of one page, grouped by category
func (h *Handler) handleShow(args []string) error {
	pageId := h.defaultPageId()
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			err = fmt.Errorf("invalid page id: %s", args[0])
			h.output.Error(err)
			return err
		}
		pageId = n
	}

	content, err := h.catalog.PageContent(pageId)
	if err != nil {
		h.output.Error(err)
		return err
	}
	now := h.catalog.Now()

	if h.output.IsJSON() {
		resp := ShowResponse{Page: pageItem(content.Page), Groups: []GroupItem{}}
		for _, g := range content.Groups {
			group := GroupItem{
				Category: g.Category.Id,
				Name:     g.Category.Name,
				Color:    g.Category.Color,
				Blocks:   make([]BlockItem, 0, len(g.Blocks)),
			}
			for _, b := range g.Blocks {
				group.Blocks = append(group.Blocks, blockItem(b, now, true))
			}
			resp.Total += len(group.Blocks)
			resp.Groups = append(resp.Groups, group)
		}
		h.output.JSON(resp)
		return nil
	}

	h.output.Print("%s\n%s\n\n", content.Page.Title, content.Page.CampaignType)
	if len(content.Blocks()) == 0 {
		h.output.Println("No disclosures on this page.")
		return nil
	}
	for _, g := range content.Groups {
		if len(g.Blocks) == 0 {
			continue
		}
		h.output.Print("== %s (%d) ==\n\n", g.Category.Name, len(g.Blocks))
		for _, b := range g.Blocks {
			h.output.Print("# %s%s\n", b.Title, markers(b, now))
			h.output.Print("%s\n\n", richtext.TerminalHTML(b.ContentHTML, showWidth))
		}
	}
	return nil
}

func markers(b domain.InformationBlock, now time.Time) string {
	s := ""
	if badge := b.Status(now).Badge(); badge != "" {
		s += " [" + badge + "]"
	}
	if b.HasScript() {
		s += " [S]"
	}
	return s
}
