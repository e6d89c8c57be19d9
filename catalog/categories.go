package catalog

import (
	"fmt"
	"log"
	"regexp"
	"sort"
	"strconv"

	"github.com/deemkeen/disclosures/domain"
	"github.com/goliatone/go-slug"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	turkishUpper = cases.Upper(language.Turkish)
	turkishLower = cases.Lower(language.Turkish)
	slugInvalid  = regexp.MustCompile(`[^a-z0-9ğüşıöç]`)
	slugDashes   = regexp.MustCompile(`-+`)
)

// Categories returns the categories ordered by display order.
func (s *Service) Categories() []domain.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedCategories(s.store.Categories())
}

func (s *Service) Category(id string) (domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.store.Categories() {
		if c.Id == id {
			return c, nil
		}
	}
	return domain.Category{}, fmt.Errorf("category %q: %w", id, ErrNotFound)
}

// CategoryCounts returns how many blocks reference each category.
func (s *Service) CategoryCounts() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := map[string]int{}
	for _, b := range s.store.Blocks() {
		counts[b.CategoryId]++
	}
	return counts
}

// CreateCategory derives the id from the name, upper-cases the name and
// appends the category after the existing ones.
func (s *Service) CreateCategory(in CategoryInput) (domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in = in.normalized()
	if err := in.validate(); err != nil {
		return domain.Category{}, err
	}

	categories := s.store.Categories()
	c := domain.Category{
		Id:           uniqueId(categoryId(in.Name), categories),
		Name:         turkishUpper.String(in.Name),
		Color:        in.Color,
		DisplayOrder: len(categories) + 1,
	}
	s.store.SaveCategories(append(categories, c))
	log.Printf("Created category %s", c.Id)
	return c, nil
}

// UpdateCategory changes name and color. The name is stored as entered.
func (s *Service) UpdateCategory(id string, in CategoryInput) (domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in = in.normalized()
	if err := in.validate(); err != nil {
		return domain.Category{}, err
	}
	categories := s.store.Categories()
	for i := range categories {
		if categories[i].Id == id {
			categories[i].Name = in.Name
			categories[i].Color = in.Color
			s.store.SaveCategories(categories)
			return categories[i], nil
		}
	}
	return domain.Category{}, fmt.Errorf("category %q: %w", id, ErrNotFound)
}

// DeleteCategory removes an unreferenced category. A category that still has
// blocks is left untouched and a *CategoryInUseError is returned.
func (s *Service) DeleteCategory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, b := range s.store.Blocks() {
		if b.CategoryId == id {
			count++
		}
	}
	if count > 0 {
		return &CategoryInUseError{Id: id, Count: count}
	}

	categories := s.store.Categories()
	for i, c := range categories {
		if c.Id == id {
			s.store.SaveCategories(append(categories[:i], categories[i+1:]...))
			log.Printf("Deleted category %s", id)
			return nil
		}
	}
	return fmt.Errorf("category %q: %w", id, ErrNotFound)
}

func categoryId(name string) string {
	if normalized, err := slug.Normalize(name); err == nil && normalized != "" {
		return normalized
	}
	id := slugInvalid.ReplaceAllString(turkishLower.String(name), "-")
	return slugDashes.ReplaceAllString(id, "-")
}

func uniqueId(base string, categories []domain.Category) string {
	taken := map[string]bool{}
	for _, c := range categories {
		taken[c.Id] = true
	}
	id := base
	for n := 2; taken[id]; n++ {
		id = base + "-" + strconv.Itoa(n)
	}
	return id
}

func sortedCategories(categories []domain.Category) []domain.Category {
	out := append([]domain.Category(nil), categories...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DisplayOrder < out[j].DisplayOrder
	})
	return out
}
