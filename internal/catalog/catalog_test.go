package catalog

import (
	"testing"

	"vocabdrill/internal/models"
)

func sample() []models.LibrarySummary {
	return []models.LibrarySummary{
		{Name: "Basic", Description: "Everyday words", FavoriteCount: 1},
		{Name: "Travel", Description: "", FavoriteCount: 5},
		{Name: "Exam", Description: "GEPT intermediate", FavoriteCount: 2, IsFavorited: true},
		{Name: "Kitchen", Description: "Cooking basics", FavoriteCount: 0},
	}
}

func names(items []models.LibrarySummary) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Name
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestOrdering(t *testing.T) {
	c := New(sample(), Options{})
	want := []string{"Exam", "Travel", "Basic", "Kitchen"}
	if got := names(c.Items()); !equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestFilter(t *testing.T) {
	c := New(sample(), Options{})
	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"Exam", "Travel", "Basic", "Kitchen"}},
		{"basic", []string{"Basic", "Kitchen"}},
		{"GEPT", []string{"Exam"}},
		{"  TRAVEL ", []string{"Travel"}},
		{"nothing", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := names(c.Filter(tt.query)); !equal(got, tt.want) {
				t.Errorf("Filter(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestPagination(t *testing.T) {
	c := New(sample(), Options{PerPage: 3, Current: "Basic", Quotes: []string{"q0", "q1"}, Pick: func(int) int { return 1 }})

	first := c.Page("", 1)
	if first.TotalPages != 2 || first.Matches != 4 || len(first.Items) != 3 {
		t.Fatalf("first page = %+v", first)
	}
	if first.Items[1].Quote != "q1" {
		t.Errorf("empty description should get a fallback quote, got %q", first.Items[1].Quote)
	}
	if first.Items[0].Quote != "" {
		t.Error("libraries with a description get no quote")
	}
	if !first.Items[2].Selected || first.Items[0].Selected {
		t.Error("only the current library should be marked selected")
	}

	last := c.Page("", 9)
	if last.Page != 2 || len(last.Items) != 1 || last.Items[0].Name != "Kitchen" {
		t.Errorf("clamped page = %+v", last)
	}

	empty := c.Page("zzz", 2)
	if empty.Page != 1 || empty.TotalPages != 0 || len(empty.Items) != 0 {
		t.Errorf("empty page = %+v", empty)
	}
}

func TestToggleFavorite(t *testing.T) {
	c := New(sample(), Options{})

	got, ok := c.ToggleFavorite("Kitchen")
	if !ok || !got.IsFavorited || got.FavoriteCount != 1 {
		t.Fatalf("toggle on = %+v, %v", got, ok)
	}
	if order := names(c.Items()); !equal(order, []string{"Exam", "Kitchen", "Travel", "Basic"}) {
		t.Errorf("order after favouriting = %v", order)
	}

	got, _ = c.ToggleFavorite("Exam")
	if got.IsFavorited || got.FavoriteCount != 1 {
		t.Errorf("toggle off = %+v", got)
	}
	if order := names(c.Items()); order[0] != "Kitchen" {
		t.Errorf("order after unfavouriting = %v", order)
	}

	if _, ok := c.ToggleFavorite("Missing"); ok {
		t.Error("unknown library should report false")
	}
}
