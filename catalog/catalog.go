package catalog

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/deemkeen/disclosures/db"
	"github.com/deemkeen/disclosures/domain"
	"github.com/deemkeen/disclosures/util"
)

const DefaultCategoryColor = "#005F9E"

// ActiveFilter narrows a block listing by its active flag.
type ActiveFilter int

const (
	AllBlocks ActiveFilter = iota
	ActiveOnly
	InactiveOnly
)

// BlockQuery filters the admin block listing.
type BlockQuery struct {
	Search     string
	Active     ActiveFilter
	CategoryId string
}

// Service owns every read-modify-write cycle on the stored collections.
// All methods are safe for concurrent use by SSH sessions and HTTP handlers.
type Service struct {
	mu    sync.Mutex
	store *db.Store
	now   func() time.Time
}

func NewService(store *db.Store) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) today() domain.Date {
	return domain.NewDate(s.now())
}

// Now returns the clock the service uses for dates and badges.
func (s *Service) Now() time.Time {
	return s.now()
}

func (s *Service) Blocks() []domain.InformationBlock {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Blocks()
}

func (s *Service) Block(id int) (domain.InformationBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	blocks := s.store.Blocks()
	i := blockIndex(blocks, id)
	if i < 0 {
		return domain.InformationBlock{}, fmt.Errorf("block %d: %w", id, ErrNotFound)
	}
	return blocks[i], nil
}

// ListBlocks returns the blocks matching q ordered by category order, then
// by display order within the category.
func (s *Service) ListBlocks(q BlockQuery) []domain.InformationBlock {
	s.mu.Lock()
	blocks := s.store.Blocks()
	categories := sortedCategories(s.store.Categories())
	s.mu.Unlock()

	term := turkishLower.String(strings.TrimSpace(q.Search))
	var out []domain.InformationBlock
	for _, b := range blocks {
		if term != "" && !strings.Contains(turkishLower.String(b.Title), term) {
			continue
		}
		if q.Active == ActiveOnly && !b.IsActive || q.Active == InactiveOnly && b.IsActive {
			continue
		}
		if q.CategoryId != "" && b.CategoryId != q.CategoryId {
			continue
		}
		out = append(out, b)
	}

	rank := map[string]int{}
	for i, c := range categories {
		rank[c.Id] = i
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, oki := rank[out[i].CategoryId]
		rj, okj := rank[out[j].CategoryId]
		if !oki {
			ri = -1
		}
		if !okj {
			rj = -1
		}
		if ri != rj {
			return ri < rj
		}
		return out[i].DisplayOrder < out[j].DisplayOrder
	})
	return out
}

func (s *Service) CreateBlock(in BlockInput) (domain.InformationBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in = in.normalized()
	if err := in.validate(s.store.Categories()); err != nil {
		return domain.InformationBlock{}, err
	}

	blocks := s.store.Blocks()
	maxId := 0
	for _, b := range blocks {
		if b.Id > maxId {
			maxId = b.Id
		}
	}

	today := s.today()
	block := domain.InformationBlock{
		Id:           maxId + 1,
		Title:        in.Title,
		ContentHTML:  in.ContentHTML,
		CategoryId:   in.CategoryId,
		IsActive:     in.IsActive,
		DisplayOrder: nextDisplayOrder(blocks, in.CategoryId),
		CreatedAt:    today,
		UpdatedAt:    today,
	}
	s.store.SaveBlocks(append(blocks, block))
	log.Printf("Created block %d %q in %s", block.Id, block.Title, block.CategoryId)
	return block, nil
}

// UpdateBlock replaces the editable fields and stamps updatedAt with today.
func (s *Service) UpdateBlock(id int, in BlockInput) (domain.InformationBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blocks := s.store.Blocks()
	i := blockIndex(blocks, id)
	if i < 0 {
		return domain.InformationBlock{}, fmt.Errorf("block %d: %w", id, ErrNotFound)
	}
	in = in.normalized()
	if err := in.validate(s.store.Categories()); err != nil {
		return domain.InformationBlock{}, err
	}

	b := &blocks[i]
	if b.CategoryId != in.CategoryId {
		b.DisplayOrder = nextDisplayOrder(blocks, in.CategoryId)
	}
	b.Title = in.Title
	b.ContentHTML = in.ContentHTML
	b.CategoryId = in.CategoryId
	b.IsActive = in.IsActive
	b.UpdatedAt = s.today()
	s.store.SaveBlocks(blocks)
	return *b, nil
}

func (s *Service) DeleteBlock(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blocks := s.store.Blocks()
	i := blockIndex(blocks, id)
	if i < 0 {
		return fmt.Errorf("block %d: %w", id, ErrNotFound)
	}
	s.store.SaveBlocks(append(blocks[:i], blocks[i+1:]...))
	log.Printf("Deleted block %d", id)
	return nil
}

func (s *Service) ToggleActive(id int) (domain.InformationBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blocks := s.store.Blocks()
	i := blockIndex(blocks, id)
	if i < 0 {
		return domain.InformationBlock{}, fmt.Errorf("block %d: %w", id, ErrNotFound)
	}
	blocks[i].IsActive = !blocks[i].IsActive
	s.store.SaveBlocks(blocks)
	return blocks[i], nil
}

// MoveBlockUp swaps the block with its predecessor in the same category.
// The first block of a category stays where it is.
func (s *Service) MoveBlockUp(id int) error {
	return s.moveBlock(id, -1)
}

// MoveBlockDown swaps the block with its successor in the same category.
func (s *Service) MoveBlockDown(id int) error {
	return s.moveBlock(id, 1)
}

// moveBlock renumbers the category 1..n in its current visible order before
// swapping, so duplicate display orders never survive a move.
func (s *Service) moveBlock(id, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blocks := s.store.Blocks()
	i := blockIndex(blocks, id)
	if i < 0 {
		return fmt.Errorf("block %d: %w", id, ErrNotFound)
	}

	members := categoryMembers(blocks, blocks[i].CategoryId)
	pos := -1
	for k, idx := range members {
		if idx == i {
			pos = k
		}
	}
	target := pos + delta
	if target < 0 || target >= len(members) {
		return nil
	}
	members[pos], members[target] = members[target], members[pos]
	for k, idx := range members {
		blocks[idx].DisplayOrder = k + 1
	}
	s.store.SaveBlocks(blocks)
	return nil
}

// IsFirstInCategory and IsLastInCategory decide whether move buttons apply.
func (s *Service) IsFirstInCategory(b domain.InformationBlock) bool {
	members := s.categoryOrder(b.CategoryId)
	return len(members) > 0 && members[0] == b.Id
}

func (s *Service) IsLastInCategory(b domain.InformationBlock) bool {
	members := s.categoryOrder(b.CategoryId)
	return len(members) > 0 && members[len(members)-1] == b.Id
}

func (s *Service) categoryOrder(categoryId string) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	blocks := s.store.Blocks()
	var ids []int
	for _, idx := range categoryMembers(blocks, categoryId) {
		ids = append(ids, blocks[idx].Id)
	}
	return ids
}

// ResetAll restores the three collections to their built-in defaults.
func (s *Service) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Reset()
	log.Println("Reset all disclosure data to defaults")
}

func (s *Service) ViewMode() domain.ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.ViewMode()
}

func (s *Service) SetViewMode(mode domain.ViewMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.SetViewMode(mode)
}

// Export returns the three collections for serialization.
func (s *Service) Export() Export {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Export{
		Blocks:     s.store.Blocks(),
		Categories: s.store.Categories(),
		Pages:      s.store.Pages(),
	}
}

type Export struct {
	Blocks     []domain.InformationBlock `json:"zorunluBilgiler"`
	Categories []domain.Category         `json:"kategoriler"`
	Pages      []domain.Page             `json:"sayfalar"`
}

// Excerpt is the plain-text preview used by block listings.
func Excerpt(b domain.InformationBlock, width int) string {
	return util.Excerpt(b.ContentHTML, width)
}

func blockIndex(blocks []domain.InformationBlock, id int) int {
	for i, b := range blocks {
		if b.Id == id {
			return i
		}
	}
	return -1
}

// nextDisplayOrder is one past the highest display order in the category.
func nextDisplayOrder(blocks []domain.InformationBlock, categoryId string) int {
	top := 0
	for _, b := range blocks {
		if b.CategoryId == categoryId && b.DisplayOrder > top {
			top = b.DisplayOrder
		}
	}
	return top + 1
}

// categoryMembers returns indices into blocks for one category, ordered by
// display order with ties kept in stored order.
func categoryMembers(blocks []domain.InformationBlock, categoryId string) []int {
	var idx []int
	for i, b := range blocks {
		if b.CategoryId == categoryId {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return blocks[idx[a]].DisplayOrder < blocks[idx[b]].DisplayOrder
	})
	return idx
}
