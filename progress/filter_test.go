package progress

import (
	"testing"

	"github.com/deemkeen/disclosures/domain"
	"github.com/google/go-cmp/cmp"
)

func sampleGroups() []domain.PageGroup {
	return []domain.PageGroup{
		{Category: domain.Category{Id: "sifir-satis"}, Blocks: []domain.InformationBlock{
			{Id: 1, Title: "Kampanya Genel Bilgisi", ContentHTML: "<p>taahhüt</p>"},
			{Id: 2, Title: "Cayma Bedeli", ContentHTML: "<p>İPTAL durumunda</p>"},
		}},
		{Category: domain.Category{Id: "fatura-vergi"}, Blocks: []domain.InformationBlock{
			{Id: 9, Title: "Damga Vergisi", ContentHTML: "<p>binde 9.48</p>"},
		}},
	}
}

func ids(items []Item) []int {
	out := []int{}
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestFilterVisible(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []int
	}{
		{"no filter", Filter{}, []int{1, 2, 9}},
		{"search title", Filter{Search: "damga"}, []int{9}},
		{"search content", Filter{Search: "TAAHHÜT"}, []int{1}},
		{"turkish dotted capital", Filter{Search: "iptal"}, []int{2}},
		{"category filter", Filter{Categories: map[string]bool{"fatura-vergi": true}}, []int{9}},
		{"category and search", Filter{Search: "cayma", Categories: map[string]bool{"fatura-vergi": true}}, []int{}},
		{"searches raw markup", Filter{Search: "<p>"}, []int{1, 2, 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ids(tt.filter.Visible(sampleGroups()))); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterDropsEmptyCategories(t *testing.T) {
	groups := Filter{Search: "damga"}.Apply(sampleGroups())
	if len(groups) != 1 || groups[0].Category.Id != "fatura-vergi" {
		t.Errorf("Expected only fatura-vergi, got %+v", groups)
	}
}

func TestFilterToggleCategory(t *testing.T) {
	var f Filter
	f.ToggleCategory("a")
	if !f.HasCategory("a") || !f.Active() {
		t.Fatal("Expected category a selected")
	}
	f.ToggleCategory("a")
	if f.HasCategory("a") || f.Active() {
		t.Fatal("Expected empty filter")
	}
}

func TestTabs(t *testing.T) {
	var tabs Tabs
	tabs.SetCount(3)
	if tabs.HasPrev() || !tabs.HasNext() {
		t.Fatal("Expected only next at start")
	}
	tabs.Next()
	tabs.Next()
	tabs.Next()
	if tabs.Active != 2 || tabs.HasNext() {
		t.Errorf("Expected to stop at last tab, got %d", tabs.Active)
	}

	tabs.SetCount(2)
	if tabs.Active != 0 {
		t.Errorf("Expected clamp to first tab, got %d", tabs.Active)
	}

	tabs.Select(1)
	tabs.SetCount(0)
	if tabs.Active != 1 {
		t.Errorf("An empty list keeps the index, got %d", tabs.Active)
	}

	tabs.SetCount(2)
	tabs.Prev()
	tabs.Prev()
	if tabs.Active != 0 {
		t.Errorf("Expected to stop at first tab, got %d", tabs.Active)
	}
	tabs.Select(1)
	tabs.Reset()
	if tabs.Active != 0 {
		t.Error("Reset should go to the first tab")
	}
}
