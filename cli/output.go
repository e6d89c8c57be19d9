package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/deemkeen/disclosures/catalog"
	"github.com/deemkeen/disclosures/domain"
)

const excerptWidth = 100

// Output handles formatting responses in text or JSON format
type Output struct {
	writer   io.Writer
	jsonMode bool
}

// NewOutput creates a new output handler
func NewOutput(w io.Writer, jsonMode bool) *Output {
	return &Output{
		writer:   w,
		jsonMode: jsonMode,
	}
}

// IsJSON returns true if output is in JSON mode
func (o *Output) IsJSON() bool {
	return o.jsonMode
}

// Error outputs an error message
func (o *Output) Error(err error) {
	if o.jsonMode {
		o.writeJSON(map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		fmt.Fprintf(o.writer, "Error: %v\n", err)
	}
}

// Print outputs formatted text (text mode only)
func (o *Output) Print(format string, args ...interface{}) {
	if !o.jsonMode {
		fmt.Fprintf(o.writer, format, args...)
	}
}

// Println outputs a line with newline (text mode only)
func (o *Output) Println(text string) {
	if !o.jsonMode {
		fmt.Fprintln(o.writer, text)
	}
}

// JSON outputs any value as JSON
func (o *Output) JSON(v interface{}) {
	if o.jsonMode {
		o.writeJSON(v)
	}
}

func (o *Output) writeJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(o.writer, `{"error":"failed to marshal JSON: %s"}`+"\n", err.Error())
		return
	}
	fmt.Fprintln(o.writer, string(data))
}

// PageItem represents a page in pages output
type PageItem struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	CampaignType string   `json:"campaign_type"`
	Categories   []string `json:"categories"`
}

type PagesResponse struct {
	Pages []PageItem `json:"pages"`
	Count int        `json:"count"`
}

// BlockItem represents an information block in output
type BlockItem struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	Active    bool   `json:"active"`
	Status    string `json:"status,omitempty"`
	HasScript bool   `json:"has_script"`
	Excerpt   string `json:"excerpt"`
	Content   string `json:"content_html,omitempty"`
	UpdatedAt string `json:"updated_at"`
}

type BlocksResponse struct {
	Blocks []BlockItem `json:"blocks"`
	Count  int         `json:"count"`
}

// GroupItem is one category section of a page
type GroupItem struct {
	Category string      `json:"category"`
	Name     string      `json:"name"`
	Color    string      `json:"color"`
	Blocks   []BlockItem `json:"blocks"`
}

type ShowResponse struct {
	Page   PageItem    `json:"page"`
	Groups []GroupItem `json:"groups"`
	Total  int         `json:"total"`
}

type CategoryItem struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Color        string `json:"color"`
	DisplayOrder int    `json:"display_order"`
	BlockCount   int    `json:"block_count"`
}

type CategoriesResponse struct {
	Categories []CategoryItem `json:"categories"`
	Count      int            `json:"count"`
}

type ResetResponse struct {
	Status string `json:"status"`
	Reset  bool   `json:"reset"`
}

// HelpCommand represents a command in help output
type HelpCommand struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Usage       string   `json:"usage"`
	Flags       []string `json:"flags,omitempty"`
}

// HelpResponse represents the help output
type HelpResponse struct {
	Version     string        `json:"version"`
	Commands    []HelpCommand `json:"commands"`
	GlobalFlags []string      `json:"global_flags"`
}

// FormatAge returns how long ago a date was, in days
func FormatAge(d domain.Date, now time.Time) string {
	if d.IsZero() {
		return "unknown"
	}
	days := int(now.Sub(d.Time).Hours() / 24)
	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "1 day ago"
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}

func blockItem(b domain.InformationBlock, now time.Time, withContent bool) BlockItem {
	item := BlockItem{
		ID:        b.Id,
		Title:     b.Title,
		Category:  b.CategoryId,
		Active:    b.IsActive,
		Status:    b.Status(now).String(),
		HasScript: b.HasScript(),
		Excerpt:   catalog.Excerpt(b, excerptWidth),
		UpdatedAt: b.UpdatedAt.String(),
	}
	if withContent {
		item.Content = b.ContentHTML
	}
	return item
}
