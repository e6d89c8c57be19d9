package catalog

import (
	"fmt"
	"sort"

	"github.com/deemkeen/disclosures/domain"
)

func (s *Service) Pages() []domain.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Pages()
}

func (s *Service) Page(id int) (domain.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pages := s.store.Pages()
	i := pageIndex(pages, id)
	if i < 0 {
		return domain.Page{}, fmt.Errorf("page %d: %w", id, ErrNotFound)
	}
	return pages[i], nil
}

// PageContent resolves a page into its categories in page order, each with
// its active blocks sorted by display order. Ids that name no category are
// skipped.
func (s *Service) PageContent(id int) (domain.PageContent, error) {
	s.mu.Lock()
	pages := s.store.Pages()
	categories := s.store.Categories()
	blocks := s.store.Blocks()
	s.mu.Unlock()

	i := pageIndex(pages, id)
	if i < 0 {
		return domain.PageContent{}, fmt.Errorf("page %d: %w", id, ErrNotFound)
	}
	page := pages[i]

	byId := map[string]domain.Category{}
	for _, c := range categories {
		byId[c.Id] = c
	}

	pc := domain.PageContent{Page: page}
	for _, cid := range page.CategoryIds {
		c, ok := byId[cid]
		if !ok {
			continue
		}
		group := domain.PageGroup{Category: c}
		for _, b := range blocks {
			if b.CategoryId == cid && b.IsActive {
				group.Blocks = append(group.Blocks, b)
			}
		}
		sort.SliceStable(group.Blocks, func(a, b int) bool {
			return group.Blocks[a].DisplayOrder < group.Blocks[b].DisplayOrder
		})
		pc.Groups = append(pc.Groups, group)
	}
	return pc, nil
}

// AddPageCategory appends a category to the page. Adding one already present
// is a no-op.
func (s *Service) AddPageCategory(pageId int, categoryId string) (domain.Page, error) {
	return s.editPage(pageId, func(ids []string) []string {
		for _, id := range ids {
			if id == categoryId {
				return ids
			}
		}
		return append(ids, categoryId)
	})
}

func (s *Service) RemovePageCategory(pageId int, categoryId string) (domain.Page, error) {
	return s.editPage(pageId, func(ids []string) []string {
		out := ids[:0]
		for _, id := range ids {
			if id != categoryId {
				out = append(out, id)
			}
		}
		return out
	})
}

// MovePageCategory swaps the category at index with its neighbor delta
// positions away. Moves past either end are ignored.
func (s *Service) MovePageCategory(pageId, index, delta int) (domain.Page, error) {
	return s.editPage(pageId, func(ids []string) []string {
		target := index + delta
		if index < 0 || index >= len(ids) || target < 0 || target >= len(ids) {
			return ids
		}
		ids[index], ids[target] = ids[target], ids[index]
		return ids
	})
}

func (s *Service) editPage(pageId int, edit func([]string) []string) (domain.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pages := s.store.Pages()
	i := pageIndex(pages, pageId)
	if i < 0 {
		return domain.Page{}, fmt.Errorf("page %d: %w", pageId, ErrNotFound)
	}
	ids := append([]string(nil), pages[i].CategoryIds...)
	ids = edit(ids)
	if ids == nil {
		ids = []string{}
	}
	pages[i].CategoryIds = ids
	s.store.SavePages(pages)
	return pages[i], nil
}

func pageIndex(pages []domain.Page, id int) int {
	for i, p := range pages {
		if p.Id == id {
			return i
		}
	}
	return -1
}
