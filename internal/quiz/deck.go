package quiz

// Deck walks a flashcard pool front to back. It keeps no persisted progress.
type Deck struct {
	pool     *Pool
	index    int
	flipped  bool
	hintSeen bool
}

// DeckView is the projection of a flashcard deck
type DeckView struct {
	Index             int     `json:"index"`
	Number            int     `json:"number"`
	Total             int     `json:"total"`
	Front             string  `json:"front"`
	Back              string  `json:"back"`
	Flipped           bool    `json:"flipped"`
	PrevEnabled       bool    `json:"prevEnabled"`
	NextEnabled       bool    `json:"nextEnabled"`
	CompletionPercent float64 `json:"completionPercent"`
	ShowFlipHint      bool    `json:"showFlipHint"`
}

// NewDeck starts at the first card
func NewDeck(pool *Pool) (*Deck, error) {
	if pool.Len() == 0 {
		return nil, ErrEmptyPool
	}
	return &Deck{pool: pool}, nil
}

// Seek jumps to index, clamped to the deck bounds
func (d *Deck) Seek(index int) {
	switch {
	case index < 0:
		index = 0
	case index >= d.pool.Len():
		index = d.pool.Len() - 1
	}
	d.index = index
	d.flipped = false
}

// Next advances one card; false at the last card
func (d *Deck) Next() bool {
	if d.index >= d.pool.Len()-1 {
		return false
	}
	d.Seek(d.index + 1)
	return true
}

// Prev goes back one card; false at the first card
func (d *Deck) Prev() bool {
	if d.index <= 0 {
		return false
	}
	d.Seek(d.index - 1)
	return true
}

// Flip turns the card over and dismisses the flip hint for good
func (d *Deck) Flip() {
	d.flipped = !d.flipped
	d.hintSeen = true
}

// DismissHint hides the flip hint without flipping
func (d *Deck) DismissHint() {
	d.hintSeen = true
}

// Reset returns to the first card and shows the flip hint again
func (d *Deck) Reset() {
	d.Seek(0)
	d.hintSeen = false
}

// View projects the deck
func (d *Deck) View() DeckView {
	total := d.pool.Len()
	item, _ := d.pool.Item(d.index)
	return DeckView{
		Index:             d.index,
		Number:            d.index + 1,
		Total:             total,
		Front:             item.English,
		Back:              item.Chinese,
		Flipped:           d.flipped,
		PrevEnabled:       d.index > 0,
		NextEnabled:       d.index < total-1,
		CompletionPercent: clampPercent(float64(d.index+1) * 100 / float64(total)),
		ShowFlipHint:      !d.hintSeen,
	}
}
