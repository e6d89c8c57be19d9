package domain

import "github.com/deemkeen/disclosures/richtext"

// Category groups information blocks under a colored header
type Category struct {
	Id           string `json:"id"`           // URL-safe slug, e.g. "fatura-vergi"
	Name         string `json:"name"`         // Display name, upper-cased on creation
	Color        string `json:"color"`        // Hex color, e.g. "#005F9E"
	DisplayOrder int    `json:"displayOrder"` // Lower numbers first
}

// InformationBlock is one mandatory disclosure text belonging to a category
type InformationBlock struct {
	Id           int    `json:"id"`
	Title        string `json:"title"`
	ContentHTML  string `json:"contentHtml"` // Rich content, may embed script blocks
	CategoryId   string `json:"kategoriId"`
	IsActive     bool   `json:"isActive"`     // Inactive blocks are hidden from pages
	DisplayOrder int    `json:"displayOrder"` // Order within the category
	CreatedAt    Date   `json:"createdAt"`
	UpdatedAt    Date   `json:"updatedAt"`
	UsageCount   int    `json:"usageCount"`
}

// HasScript reports whether the block content embeds at least one script block.
func (b InformationBlock) HasScript() bool {
	return len(richtext.Parse(b.ContentHTML).Scripts()) > 0
}

// Page is a campaign page listing which categories it shows, in order
type Page struct {
	Id           int      `json:"id"`
	Title        string   `json:"title"`
	CampaignType string   `json:"campaignType"`
	CategoryIds  []string `json:"kategoriIds"`
}

// HasCategory reports whether the page shows the given category.
func (p Page) HasCategory(id string) bool {
	for _, c := range p.CategoryIds {
		if c == id {
			return true
		}
	}
	return false
}

// ViewMode selects how a page renders its blocks
type ViewMode string

const (
	ViewTabs        ViewMode = "tabs"
	ViewCategorized ViewMode = "kategorili"
)

// ParseViewMode returns the mode for s, or ViewCategorized when s is unknown.
func ParseViewMode(s string) (ViewMode, bool) {
	switch ViewMode(s) {
	case ViewTabs:
		return ViewTabs, true
	case ViewCategorized:
		return ViewCategorized, true
	}
	return ViewCategorized, false
}

// Toggle returns the other view mode.
func (m ViewMode) Toggle() ViewMode {
	if m == ViewTabs {
		return ViewCategorized
	}
	return ViewTabs
}

// PageGroup is one category of a page with its visible blocks
type PageGroup struct {
	Category Category           `json:"category"`
	Blocks   []InformationBlock `json:"blocks"`
}

// PageContent is everything a page renders
type PageContent struct {
	Page   Page        `json:"page"`
	Groups []PageGroup `json:"groups"`
}

// Blocks returns the blocks of all groups in display sequence.
func (pc PageContent) Blocks() []InformationBlock {
	var out []InformationBlock
	for _, g := range pc.Groups {
		out = append(out, g.Blocks...)
	}
	return out
}
