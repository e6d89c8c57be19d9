package progress

import (
	"strings"

	"github.com/deemkeen/disclosures/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var turkishLower = cases.Lower(language.Turkish)

// Filter narrows what a reader sees. An empty category set means all.
type Filter struct {
	Search     string
	Categories map[string]bool
}

// ToggleCategory adds or removes a category from the filter set.
func (f *Filter) ToggleCategory(id string) {
	if f.Categories == nil {
		f.Categories = map[string]bool{}
	}
	if f.Categories[id] {
		delete(f.Categories, id)
	} else {
		f.Categories[id] = true
	}
}

func (f Filter) HasCategory(id string) bool {
	return f.Categories[id]
}

func (f Filter) Active() bool {
	return strings.TrimSpace(f.Search) != "" || len(f.Categories) > 0
}

// Matches reports whether the block's title or raw content contains the
// search term, ignoring case with Turkish casing rules.
func (f Filter) Matches(b domain.InformationBlock) bool {
	term := strings.TrimSpace(f.Search)
	if term == "" {
		return true
	}
	term = turkishLower.String(term)
	return strings.Contains(turkishLower.String(b.Title), term) ||
		strings.Contains(turkishLower.String(b.ContentHTML), term)
}

// Apply returns the groups a reader sees. Categories left without blocks
// are dropped.
func (f Filter) Apply(groups []domain.PageGroup) []domain.PageGroup {
	var out []domain.PageGroup
	for _, g := range groups {
		if len(f.Categories) > 0 && !f.Categories[g.Category.Id] {
			continue
		}
		var blocks []domain.InformationBlock
		for _, b := range g.Blocks {
			if f.Matches(b) {
				blocks = append(blocks, b)
			}
		}
		if len(blocks) == 0 {
			continue
		}
		out = append(out, domain.PageGroup{Category: g.Category, Blocks: blocks})
	}
	return out
}

// Visible is the flat sequence the read engine works on.
func (f Filter) Visible(groups []domain.PageGroup) []Item {
	return ItemsOf(f.Apply(groups))
}
