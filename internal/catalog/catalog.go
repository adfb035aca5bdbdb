// Package catalog implements the library browser: search, favourite-first
// ordering, pagination and the favourite toggle.
package catalog

import (
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/samber/lo"

	"vocabdrill/internal/models"
)

// DefaultPerPage is the page size used when none is configured
const DefaultPerPage = 3

// Entry is one library as shown on a page
type Entry struct {
	models.LibrarySummary
	Selected bool   `json:"selected"`
	Quote    string `json:"quote,omitempty"` // shown instead of an empty description
}

// Page is one page of filtered results
type Page struct {
	Query      string  `json:"query"`
	Page       int     `json:"page"`
	TotalPages int     `json:"total_pages"`
	Matches    int     `json:"matches"`
	Items      []Entry `json:"items"`
	Current    string  `json:"current_library"`
}

// Options configures a Catalog
type Options struct {
	PerPage int
	Quotes  []string
	Current string
	// Pick returns a random index in [0,n); defaults to math/rand
	Pick func(n int) int
}

// Catalog holds the libraries visible to one viewer
type Catalog struct {
	items   []models.LibrarySummary
	perPage int
	quotes  []string
	current string
	pick    func(n int) int
}

// New copies items and orders them favourites first
func New(items []models.LibrarySummary, opts Options) *Catalog {
	c := &Catalog{
		items:   append([]models.LibrarySummary(nil), items...),
		perPage: opts.PerPage,
		quotes:  opts.Quotes,
		current: opts.Current,
		pick:    opts.Pick,
	}
	if c.perPage <= 0 {
		c.perPage = DefaultPerPage
	}
	if c.pick == nil {
		c.pick = rand.IntN
	}
	c.sort()
	return c
}

// sort puts favourited libraries first, then higher favourite counts.
// Ties keep their previous relative order.
func (c *Catalog) sort() {
	sort.SliceStable(c.items, func(i, j int) bool {
		a, b := c.items[i], c.items[j]
		if a.IsFavorited != b.IsFavorited {
			return a.IsFavorited
		}
		return a.FavoriteCount > b.FavoriteCount
	})
}

// Items returns the libraries in display order
func (c *Catalog) Items() []models.LibrarySummary {
	return append([]models.LibrarySummary(nil), c.items...)
}

// Filter returns libraries whose name or description contains query,
// ignoring case. An empty query matches everything.
func (c *Catalog) Filter(query string) []models.LibrarySummary {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.Items()
	}
	return lo.Filter(c.items, func(item models.LibrarySummary, _ int) bool {
		return strings.Contains(strings.ToLower(item.Name), q) ||
			strings.Contains(strings.ToLower(item.Description), q)
	})
}

// Page returns page number page (1-based) of the libraries matching query.
// Out of range pages are clamped.
func (c *Catalog) Page(query string, page int) Page {
	matches := c.Filter(query)
	total := (len(matches) + c.perPage - 1) / c.perPage

	if page > total {
		page = total
	}
	if page < 1 {
		page = 1
	}

	start := min((page-1)*c.perPage, len(matches))
	end := min(start+c.perPage, len(matches))

	return Page{
		Query:      query,
		Page:       page,
		TotalPages: total,
		Matches:    len(matches),
		Items:      lo.Map(matches[start:end], func(item models.LibrarySummary, _ int) Entry { return c.entry(item) }),
		Current:    c.current,
	}
}

func (c *Catalog) entry(item models.LibrarySummary) Entry {
	e := Entry{LibrarySummary: item, Selected: item.Name == c.current}
	if strings.TrimSpace(item.Description) == "" && len(c.quotes) > 0 {
		e.Quote = c.quotes[c.pick(len(c.quotes))]
	}
	return e
}

// ToggleFavorite flips the favourite flag of name, adjusts its count and
// re-sorts. It reports false when name is not listed.
func (c *Catalog) ToggleFavorite(name string) (models.LibrarySummary, bool) {
	_, idx, ok := lo.FindIndexOf(c.items, func(item models.LibrarySummary) bool {
		return item.Name == name
	})
	if !ok {
		return models.LibrarySummary{}, false
	}

	item := &c.items[idx]
	if item.IsFavorited {
		item.IsFavorited = false
		item.FavoriteCount = max(item.FavoriteCount-1, 0)
	} else {
		item.IsFavorited = true
		item.FavoriteCount++
	}
	toggled := *item
	c.sort()
	return toggled, true
}

// Select marks name as the current library
func (c *Catalog) Select(name string) {
	c.current = name
}

// Current returns the selected library name
func (c *Catalog) Current() string {
	return c.current
}
