package quiz

import (
	"errors"

	"github.com/samber/lo"
)

// ErrEmptyPool is returned when no presentable items remain after filtering
var ErrEmptyPool = errors.New("no questions available")

// Pool is the fixed, ordered set of items for one session
type Pool struct {
	mode  Mode
	items []Item
}

// BuildPool filters out items without an answer and, for sentence mode,
// collapses structurally identical items keeping first-occurrence order.
func BuildPool(mode Mode, raw []Item) (*Pool, error) {
	items := lo.Filter(raw, func(it Item, _ int) bool {
		if isBlank(it.Answer(mode)) {
			return false
		}
		// a sentence question needs its sentence as well as the target word
		return mode != ModeSentence || !isBlank(it.English)
	})

	if mode == ModeSentence {
		items = lo.Uniq(items)
	}

	if len(items) == 0 {
		return nil, ErrEmptyPool
	}

	return &Pool{mode: mode, items: items}, nil
}

// Mode returns the mode the pool was built for
func (p *Pool) Mode() Mode {
	return p.mode
}

// Len returns the number of items in the pool
func (p *Pool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.items)
}

// Item returns the item at index i
func (p *Pool) Item(i int) (Item, bool) {
	if p == nil || i < 0 || i >= len(p.items) {
		return Item{}, false
	}
	return p.items[i], true
}

// Items returns a copy of the pool contents
func (p *Pool) Items() []Item {
	if p == nil {
		return nil
	}
	out := make([]Item, len(p.items))
	copy(out, p.items)
	return out
}

// Exhausted reports whether every index of the pool is in used
func (p *Pool) Exhausted(used IndexSet) bool {
	return used.CountWithin(p.Len()) >= p.Len()
}
