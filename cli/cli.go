package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/deemkeen/disclosures/catalog"
	"github.com/deemkeen/disclosures/domain"
	"github.com/deemkeen/disclosures/util"
)

// Session interface represents the minimal session requirements for CLI operations
type Session interface {
	io.Reader
	io.Writer
}

// Catalog is the part of catalog.Service the commands read from.
type Catalog interface {
	Pages() []domain.Page
	PageContent(id int) (domain.PageContent, error)
	ListBlocks(q catalog.BlockQuery) []domain.InformationBlock
	Categories() []domain.Category
	CategoryCounts() map[string]int
	ResetAll()
	Now() time.Time
}

// Handler processes CLI commands
type Handler struct {
	session  Session
	catalog  Catalog
	isAdmin  bool
	output   *Output
	jsonMode bool
	conf     *util.AppConfig
}

// NewHandler creates a new CLI handler
func NewHandler(s Session, c Catalog, isAdmin bool, conf *util.AppConfig) *Handler {
	return &Handler{
		session:  s,
		catalog:  c,
		isAdmin:  isAdmin,
		jsonMode: false,
		conf:     conf,
	}
}

// Execute parses and executes a CLI command
func (h *Handler) Execute(args []string) error {
	args, h.jsonMode = parseGlobalFlags(args)

	h.output = NewOutput(h.session, h.jsonMode)

	if len(args) == 0 {
		return h.showHelp()
	}

	cmd := strings.ToLower(args[0])
	cmdArgs := args[1:]

	switch cmd {
	case "pages":
		return h.handlePages(cmdArgs)
	case "show":
		return h.handleShow(cmdArgs)
	case "blocks":
		return h.handleBlocks(cmdArgs)
	case "categories":
		return h.handleCategories(cmdArgs)
	case "reset":
		return h.handleReset(cmdArgs)
	case "--help", "-h", "help":
		return h.showHelp()
	default:
		err := fmt.Errorf("unknown command: %s", cmd)
		h.output.Error(err)
		return err
	}
}

// parseGlobalFlags extracts global flags like --json from args
func parseGlobalFlags(args []string) ([]string, bool) {
	jsonMode := false
	var filtered []string

	for _, arg := range args {
		switch arg {
		case "--json", "-j":
			jsonMode = true
		default:
			filtered = append(filtered, arg)
		}
	}

	return filtered, jsonMode
}

func (h *Handler) defaultPageId() int {
	if h.conf != nil && h.conf.Conf.DefaultPageId > 0 {
		return h.conf.Conf.DefaultPageId
	}
	return 1
}

// showHelp displays help information
func (h *Handler) showHelp() error {
	if h.output.IsJSON() {
		help := HelpResponse{
			Version: util.GetVersion(),
			Commands: []HelpCommand{
				{
					Name:        "pages",
					Description: "List campaign pages",
					Usage:       "pages",
				},
				{
					Name:        "show",
					Description: "Show the disclosures of a page grouped by category",
					Usage:       "show [pageId]",
				},
				{
					Name:        "blocks",
					Description: "List information blocks",
					Usage:       "blocks [-c <categoryId>] [-s <search>] [--all]",
					Flags: []string{
						"-c <categoryId>: only blocks of one category",
						"-s <search>: title search",
						"--all: include inactive blocks",
					},
				},
				{
					Name:        "categories",
					Description: "List categories with block counts",
					Usage:       "categories",
				},
				{
					Name:        "reset",
					Description: "Reset all data to the built-in defaults (admin only)",
					Usage:       "reset --yes",
				},
				{
					Name:        "help",
					Description: "Show this help message",
					Usage:       "help",
				},
			},
			GlobalFlags: []string{
				"--json, -j: output in JSON format",
			},
		}
		h.output.JSON(help)
	} else {
		h.output.Println("disclosures CLI - mandatory customer disclosures")
		h.output.Println("")
		h.output.Println("Usage: ssh -p <port> <server> <command> [options]")
		h.output.Println("")
		h.output.Println("Commands:")
		h.output.Println("  pages                 List campaign pages")
		h.output.Println("  show [pageId]         Show the disclosures of a page")
		h.output.Println("  blocks                List active information blocks")
		h.output.Println("  blocks -c <id>        Only blocks of one category")
		h.output.Println("  blocks -s <text>      Search block titles")
		h.output.Println("  blocks --all          Include inactive blocks")
		h.output.Println("  categories            List categories")
		h.output.Println("  reset --yes           Reset all data (admin only)")
		h.output.Println("  help                  Show this help message")
		h.output.Println("")
		h.output.Println("Global flags:")
		h.output.Println("  --json, -j            Output in JSON format")
		h.output.Println("")
		h.output.Println("Examples:")
		h.output.Println("  ssh -p 23232 localhost show 2")
		h.output.Println("  ssh -p 23232 localhost blocks -c retention -j")
	}
	return nil
}
