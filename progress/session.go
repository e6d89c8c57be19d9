// Package progress tracks which disclosure blocks have been read out to a
// customer in one session and drives the reader towards the next unread block.
package progress

import (
	"sort"

	"github.com/deemkeen/disclosures/domain"
)

// Item is a block as the engine sees it.
type Item struct {
	ID         int
	CategoryID string
}

// ItemsOf lists the blocks of page content in display sequence.
func ItemsOf(groups []domain.PageGroup) []Item {
	var items []Item
	for _, g := range groups {
		for _, b := range g.Blocks {
			items = append(items, Item{ID: b.Id, CategoryID: g.Category.Id})
		}
	}
	return items
}

// Transition reports what a ToggleRead did.
type Transition struct {
	ID                int
	NowRead           bool
	Next              int
	HasNext           bool
	CategoryCollapsed bool
	Completed         bool
}

// Session is the read state of one page for one reader. It is not safe for
// concurrent use; each terminal or browser session owns its own.
type Session struct {
	categories []string
	items      []Item

	read               map[int]bool
	expanded           map[int]bool
	expandedCategories map[string]bool
	completed          bool
}

// NewSession starts with nothing read, no block open and every category open.
func NewSession(categories []string, items []Item) *Session {
	s := &Session{
		categories: append([]string(nil), categories...),
		items:      append([]Item(nil), items...),
	}
	s.Reset()
	return s
}

// ForContent builds a session for a rendered page.
func ForContent(pc domain.PageContent) *Session {
	cats := make([]string, 0, len(pc.Groups))
	for _, g := range pc.Groups {
		cats = append(cats, g.Category.Id)
	}
	return NewSession(cats, ItemsOf(pc.Groups))
}

// Reset returns to the initial state for a fresh read-through.
func (s *Session) Reset() {
	s.read = map[int]bool{}
	s.expanded = map[int]bool{}
	s.expandedCategories = map[string]bool{}
	for _, c := range s.categories {
		s.expandedCategories[c] = true
	}
	s.completed = false
}

// ToggleRead flips the read mark of block id. visible is the sequence the
// reader currently sees, after search and category filters. Marking a block
// read closes it and opens the next unread visible block, wrapping around to
// the start. A category whose blocks are all read is collapsed. Unmarking is
// a plain toggle and does not undo the expansion of the next block.
func (s *Session) ToggleRead(id int, visible []Item) Transition {
	t := Transition{ID: id}
	if s.read[id] {
		delete(s.read, id)
		return t
	}
	s.read[id] = true
	t.NowRead = true

	t.Next, t.HasNext = s.nextUnread(id, visible)
	delete(s.expanded, id)
	if t.HasNext {
		s.expanded[t.Next] = true
	}

	nextCategory := ""
	if t.HasNext {
		nextCategory = s.categoryOf(t.Next, visible)
	}
	if category, ok := s.categoryOfItem(id); ok {
		if s.categoryRead(category) {
			delete(s.expandedCategories, category)
			t.CategoryCollapsed = true
			if nextCategory != "" {
				s.expandedCategories[nextCategory] = true
			}
		} else if nextCategory != "" && nextCategory != category {
			s.expandedCategories[nextCategory] = true
		}
	}

	if len(visible) > 0 && s.allRead(visible) {
		s.completed = true
		t.Completed = true
	}
	return t
}

// nextUnread searches forward from id to the end, then from the start up to
// id. If id is not visible the whole sequence is searched.
func (s *Session) nextUnread(id int, visible []Item) (int, bool) {
	idx := -1
	for i, it := range visible {
		if it.ID == id {
			idx = i
			break
		}
	}
	for i := idx + 1; i < len(visible); i++ {
		if !s.read[visible[i].ID] {
			return visible[i].ID, true
		}
	}
	for i := 0; i < idx; i++ {
		if !s.read[visible[i].ID] {
			return visible[i].ID, true
		}
	}
	return 0, false
}

func (s *Session) categoryOfItem(id int) (string, bool) {
	for _, it := range s.items {
		if it.ID == id {
			return it.CategoryID, true
		}
	}
	return "", false
}

func (s *Session) categoryOf(id int, visible []Item) string {
	for _, it := range visible {
		if it.ID == id {
			return it.CategoryID
		}
	}
	c, _ := s.categoryOfItem(id)
	return c
}

// categoryRead checks every block of the category on the page, visible or not.
func (s *Session) categoryRead(category string) bool {
	for _, it := range s.items {
		if it.CategoryID == category && !s.read[it.ID] {
			return false
		}
	}
	return true
}

func (s *Session) allRead(items []Item) bool {
	for _, it := range items {
		if !s.read[it.ID] {
			return false
		}
	}
	return true
}

// ToggleItem opens or closes a block.
func (s *Session) ToggleItem(id int) {
	if s.expanded[id] {
		delete(s.expanded, id)
	} else {
		s.expanded[id] = true
	}
}

// ToggleCategory opens or closes a category.
func (s *Session) ToggleCategory(id string) {
	if s.expandedCategories[id] {
		delete(s.expandedCategories, id)
	} else {
		s.expandedCategories[id] = true
	}
}

func (s *Session) IsRead(id int) bool {
	return s.read[id]
}

func (s *Session) IsExpanded(id int) bool {
	return s.expanded[id]
}

func (s *Session) IsCategoryExpanded(id string) bool {
	return s.expandedCategories[id]
}

// Completed is true once every visible block was read, until Reset or
// CloseCompletion.
func (s *Session) Completed() bool {
	return s.completed
}

func (s *Session) CloseCompletion() {
	s.completed = false
}

// CategoryProgress counts read blocks of a category over the whole page.
func (s *Session) CategoryProgress(category string) (read, total int) {
	for _, it := range s.items {
		if it.CategoryID != category {
			continue
		}
		total++
		if s.read[it.ID] {
			read++
		}
	}
	return read, total
}

// CategoryDone matches the "all read" header state: at least one block and
// every block read.
func (s *Session) CategoryDone(category string) bool {
	read, total := s.CategoryProgress(category)
	return total > 0 && read == total
}

// Progress counts read blocks over the whole page.
func (s *Session) Progress() (read, total int) {
	for _, it := range s.items {
		total++
		if s.read[it.ID] {
			read++
		}
	}
	return read, total
}

// Covers reports whether the session was built for exactly these items.
func (s *Session) Covers(items []Item) bool {
	if len(items) != len(s.items) {
		return false
	}
	for i, it := range items {
		if s.items[i] != it {
			return false
		}
	}
	return true
}

// Snapshot is the serializable session state.
type Snapshot struct {
	Read               []int    `json:"readIds"`
	Expanded           []int    `json:"expandedIds"`
	ExpandedCategories []string `json:"expandedCategoryIds"`
	Completed          bool     `json:"allRead"`
}

func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Read:               sortedInts(s.read),
		Expanded:           sortedInts(s.expanded),
		ExpandedCategories: []string{},
		Completed:          s.completed,
	}
	for _, c := range s.categories {
		if s.expandedCategories[c] {
			snap.ExpandedCategories = append(snap.ExpandedCategories, c)
		}
	}
	return snap
}

func sortedInts(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
