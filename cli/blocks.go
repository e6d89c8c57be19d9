package cli

import (
	"errors"
	"fmt"

	"github.com/deemkeen/disclosures/catalog"
	"github.com/deemkeen/disclosures/util"
)

// handleBlocks lists information blocks in admin order
func (h *Handler) handleBlocks(args []string) error {
	q := catalog.BlockQuery{Active: catalog.ActiveOnly}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-c", "--category":
			if i+1 >= len(args) {
				err := fmt.Errorf("%s needs a category id", args[i])
				h.output.Error(err)
				return err
			}
			q.CategoryId = args[i+1]
			i++
		case "-s", "--search":
			if i+1 >= len(args) {
				err := fmt.Errorf("%s needs a search term", args[i])
				h.output.Error(err)
				return err
			}
			q.Search = args[i+1]
			i++
		case "--all", "-a":
			q.Active = catalog.AllBlocks
		default:
			err := fmt.Errorf("unknown flag: %s", args[i])
			h.output.Error(err)
			return err
		}
	}

	blocks := h.catalog.ListBlocks(q)
	now := h.catalog.Now()

	if h.output.IsJSON() {
		items := make([]BlockItem, 0, len(blocks))
		for _, b := range blocks {
			items = append(items, blockItem(b, now, false))
		}
		h.output.JSON(BlocksResponse{Blocks: items, Count: len(items)})
		return nil
	}

	if len(blocks) == 0 {
		h.output.Println("No information blocks found.")
		return nil
	}
	for _, b := range blocks {
		state := ""
		if !b.IsActive {
			state = " (inactive)"
		}
		h.output.Print("%3d  [%s #%d] %s%s%s (updated %s)\n",
			b.Id, b.CategoryId, b.DisplayOrder, b.Title, state, markers(b, now), FormatAge(b.UpdatedAt, now))
		h.output.Print("     %s\n", catalog.Excerpt(b, excerptWidth))
	}
	return nil
}

// handleCategories lists categories with their block counts
func (h *Handler) handleCategories(args []string) error {
	cats := h.catalog.Categories()
	counts := h.catalog.CategoryCounts()

	if h.output.IsJSON() {
		items := make([]CategoryItem, 0, len(cats))
		for _, c := range cats {
			items = append(items, CategoryItem{
				ID:           c.Id,
				Name:         c.Name,
				Color:        c.Color,
				DisplayOrder: c.DisplayOrder,
				BlockCount:   counts[c.Id],
			})
		}
		h.output.JSON(CategoriesResponse{Categories: items, Count: len(items)})
		return nil
	}

	if len(cats) == 0 {
		h.output.Println("No categories.")
		return nil
	}
	for _, c := range cats {
		h.output.Print("%d. %s %s  %s (%d blocks)\n", c.DisplayOrder, util.PadWidth(c.Id, 16), c.Color, c.Name, counts[c.Id])
	}
	return nil
}

var errNotAdmin = errors.New("reset is only available to admins")

// handleReset restores the built-in data set. It needs --yes as the
// non-interactive confirmation.
func (h *Handler) handleReset(args []string) error {
	if !h.isAdmin {
		h.output.Error(errNotAdmin)
		return errNotAdmin
	}

	confirmed := false
	for _, a := range args {
		if a == "--yes" || a == "-y" {
			confirmed = true
		}
	}
	if !confirmed {
		err := errors.New("reset deletes all changes; run again with --yes to confirm")
		h.output.Error(err)
		return err
	}

	h.catalog.ResetAll()

	if h.output.IsJSON() {
		h.output.JSON(ResetResponse{Status: "ok", Reset: true})
	} else {
		h.output.Println("All data was reset to the defaults.")
	}
	return nil
}
