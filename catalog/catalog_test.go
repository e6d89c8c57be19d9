package catalog

import (
	"errors"
	"testing"
	"time"

	"github.com/deemkeen/disclosures/db"
	"github.com/deemkeen/disclosures/domain"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/go-cmp/cmp"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	database, err := db.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	s := NewService(db.NewStore(database))
	s.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	return s
}

func orderOf(s *Service, categoryId string) []int {
	var ids []int
	for _, b := range s.ListBlocks(BlockQuery{CategoryId: categoryId}) {
		ids = append(ids, b.Id)
	}
	return ids
}

func TestCreateBlock(t *testing.T) {
	s := setupService(t)

	b, err := s.CreateBlock(BlockInput{Title: "  Yeni Bilgi ", ContentHTML: "<p>x</p>", CategoryId: "retention", IsActive: true})
	if err != nil {
		t.Fatalf("CreateBlock failed: %v", err)
	}
	if b.Id != 13 {
		t.Errorf("Expected id 13 (max+1), got %d", b.Id)
	}
	if b.DisplayOrder != 4 {
		t.Errorf("Expected displayOrder 4, got %d", b.DisplayOrder)
	}
	if b.Title != "Yeni Bilgi" {
		t.Errorf("Expected trimmed title, got %q", b.Title)
	}
	if b.CreatedAt.String() != "2026-03-01" || b.UpdatedAt.String() != "2026-03-01" {
		t.Errorf("Expected today's dates, got %s / %s", b.CreatedAt, b.UpdatedAt)
	}
	if b.UsageCount != 0 {
		t.Errorf("Expected usage 0, got %d", b.UsageCount)
	}

	stored, err := s.Block(13)
	if err != nil {
		t.Fatalf("Block(13) failed: %v", err)
	}
	if stored.Title != "Yeni Bilgi" {
		t.Errorf("Block was not persisted: %+v", stored)
	}
}

func TestCreateBlockValidation(t *testing.T) {
	s := setupService(t)

	_, err := s.CreateBlock(BlockInput{Title: "  ", CategoryId: "nope"})
	if err == nil {
		t.Fatal("Expected validation error")
	}
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("Expected validation.Errors, got %T", err)
	}
	if _, ok := verrs["Title"]; !ok {
		t.Errorf("Expected Title error, got %v", verrs)
	}
	if _, ok := verrs["CategoryId"]; !ok {
		t.Errorf("Expected CategoryId error, got %v", verrs)
	}
	if len(s.Blocks()) != 12 {
		t.Errorf("Invalid input must not be stored")
	}
}

func TestUpdateBlock(t *testing.T) {
	s := setupService(t)

	b, err := s.UpdateBlock(3, BlockInput{Title: "Taşınma", ContentHTML: "<p>y</p>", CategoryId: "sifir-satis", IsActive: false})
	if err != nil {
		t.Fatalf("UpdateBlock failed: %v", err)
	}
	if b.UpdatedAt.String() != "2026-03-01" {
		t.Errorf("Expected updatedAt bumped, got %s", b.UpdatedAt)
	}
	if b.CreatedAt.String() != "2024-03-05" {
		t.Errorf("createdAt must not change, got %s", b.CreatedAt)
	}
	if b.IsActive {
		t.Errorf("Expected inactive block")
	}

	if _, err := s.UpdateBlock(999, BlockInput{Title: "x", CategoryId: "retention"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func assertDistinctOrders(t *testing.T, s *Service, categoryId string) {
	t.Helper()
	seen := map[int]int{}
	for _, b := range s.ListBlocks(BlockQuery{CategoryId: categoryId}) {
		if other, ok := seen[b.DisplayOrder]; ok {
			t.Errorf("Blocks %d and %d share displayOrder %d in %s", other, b.Id, b.DisplayOrder, categoryId)
		}
		seen[b.DisplayOrder] = b.Id
	}
}

func TestDisplayOrderStaysUniqueAfterDelete(t *testing.T) {
	s := setupService(t)

	if err := s.DeleteBlock(1); err != nil {
		t.Fatal(err)
	}
	b, err := s.CreateBlock(BlockInput{Title: "Yeni", ContentHTML: "<p>x</p>", CategoryId: "sifir-satis", IsActive: true})
	if err != nil {
		t.Fatal(err)
	}
	assertDistinctOrders(t, s, "sifir-satis")
	if !s.IsLastInCategory(b) {
		t.Errorf("Expected new block last, got %v", orderOf(s, "sifir-satis"))
	}

	moved, err := s.UpdateBlock(5, BlockInput{Title: "Taşındı", ContentHTML: "<p>y</p>", CategoryId: "sifir-satis", IsActive: true})
	if err != nil {
		t.Fatal(err)
	}
	assertDistinctOrders(t, s, "sifir-satis")
	if !s.IsLastInCategory(moved) {
		t.Errorf("Expected moved block last, got %v", orderOf(s, "sifir-satis"))
	}
}

func TestDeleteAndToggleBlock(t *testing.T) {
	s := setupService(t)

	b, err := s.ToggleActive(5)
	if err != nil || b.IsActive {
		t.Fatalf("Expected block 5 to become inactive: %+v %v", b, err)
	}
	if err := s.DeleteBlock(5); err != nil {
		t.Fatalf("DeleteBlock failed: %v", err)
	}
	if _, err := s.Block(5); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected block 5 gone, got %v", err)
	}
	if err := s.DeleteBlock(5); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestMoveBlock(t *testing.T) {
	s := setupService(t)

	if diff := cmp.Diff([]int{1, 2, 3, 6, 12}, orderOf(s, "sifir-satis")); diff != "" {
		t.Fatalf("Unexpected initial order (-want +got):\n%s", diff)
	}

	if err := s.MoveBlockUp(3); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{1, 3, 2, 6, 12}, orderOf(s, "sifir-satis")); diff != "" {
		t.Errorf("After move up (-want +got):\n%s", diff)
	}

	if err := s.MoveBlockDown(1); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{3, 1, 2, 6, 12}, orderOf(s, "sifir-satis")); diff != "" {
		t.Errorf("After move down (-want +got):\n%s", diff)
	}

	// Ends are no-ops.
	s.MoveBlockUp(3)
	s.MoveBlockDown(12)
	if diff := cmp.Diff([]int{3, 1, 2, 6, 12}, orderOf(s, "sifir-satis")); diff != "" {
		t.Errorf("Moves past the ends changed order (-want +got):\n%s", diff)
	}

	// Other categories are untouched.
	if diff := cmp.Diff([]int{5, 8, 11}, orderOf(s, "retention")); diff != "" {
		t.Errorf("Retention order changed (-want +got):\n%s", diff)
	}
}

func TestMoveBlockResolvesDuplicateOrders(t *testing.T) {
	s := setupService(t)

	blocks := s.Blocks()
	for i := range blocks {
		if blocks[i].CategoryId == "retention" {
			blocks[i].DisplayOrder = 1
		}
	}
	s.store.SaveBlocks(blocks)

	// Ties keep stored order: 5, 8, 11.
	if err := s.MoveBlockDown(5); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{8, 5, 11}, orderOf(s, "retention")); diff != "" {
		t.Errorf("Unexpected order (-want +got):\n%s", diff)
	}

	seen := map[int]bool{}
	for _, b := range s.ListBlocks(BlockQuery{CategoryId: "retention"}) {
		if seen[b.DisplayOrder] {
			t.Errorf("Duplicate displayOrder %d", b.DisplayOrder)
		}
		seen[b.DisplayOrder] = true
	}
}

func TestMoveSequenceKeepsTotalOrder(t *testing.T) {
	s := setupService(t)

	moves := []struct {
		id int
		up bool
	}{{12, true}, {12, true}, {1, false}, {6, true}, {12, true}, {12, true}, {12, true}, {2, false}}
	for _, m := range moves {
		if m.up {
			s.MoveBlockUp(m.id)
		} else {
			s.MoveBlockDown(m.id)
		}
		items := s.ListBlocks(BlockQuery{CategoryId: "sifir-satis"})
		for i := 1; i < len(items); i++ {
			if items[i-1].DisplayOrder >= items[i].DisplayOrder {
				t.Fatalf("Order not strict after moving %d: %+v", m.id, items)
			}
		}
	}
	if !s.IsFirstInCategory(domain.InformationBlock{Id: 12, CategoryId: "sifir-satis"}) {
		t.Errorf("Expected block 12 first, got %v", orderOf(s, "sifir-satis"))
	}
}

func TestListBlocks(t *testing.T) {
	s := setupService(t)
	s.ToggleActive(9)

	got := s.ListBlocks(BlockQuery{Search: "BİLGİ"})
	for _, b := range got {
		if b.Id == 12 {
			t.Errorf("Son Onay must not match search")
		}
	}

	inactive := s.ListBlocks(BlockQuery{Active: InactiveOnly})
	if len(inactive) != 1 || inactive[0].Id != 9 {
		t.Errorf("Expected only block 9 inactive, got %+v", inactive)
	}

	all := s.ListBlocks(BlockQuery{})
	var ids []int
	for _, b := range all {
		ids = append(ids, b.Id)
	}
	want := []int{1, 2, 3, 6, 12, 5, 8, 11, 9, 10, 7, 4}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("Unexpected listing order (-want +got):\n%s", diff)
	}
}

func TestResetAll(t *testing.T) {
	s := setupService(t)
	s.DeleteBlock(1)
	s.SetViewMode(domain.ViewTabs)

	s.ResetAll()
	if len(s.Blocks()) != 12 {
		t.Errorf("Expected defaults restored")
	}
	if s.ViewMode() != domain.ViewTabs {
		t.Errorf("Reset must keep the view preference")
	}
}
