package quiz

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrExhausted is returned when an action needs an unanswered question and none remain
	ErrExhausted = errors.New("all questions answered")
	// ErrStaleQuestion is returned when a client refers to a question that is not active
	ErrStaleQuestion = errors.New("question is not active")
	// ErrAlreadyAnswered is returned when the current question was graded already
	ErrAlreadyAnswered = errors.New("question already answered")
)

// Controller owns one quiz session: its pool, its state and the store the
// state is written to after every change.
type Controller struct {
	pool     *Pool
	store    ProgressStore
	ns       Namespace
	rng      Rand
	state    State
	hint     HintMode
	answered bool
	last     *Result
}

// Option configures a Controller
type Option func(*Controller)

// WithRand replaces the default random source
func WithRand(rng Rand) Option {
	return func(c *Controller) {
		if rng != nil {
			c.rng = rng
		}
	}
}

// WithHintMode sets the initial hint mode
func WithHintMode(mode HintMode) Option {
	return func(c *Controller) {
		c.hint = mode.normalize()
	}
}

// NewController restores progress for the pool's namespace from store and
// picks the first question.
func NewController(ctx context.Context, pool *Pool, store ProgressStore, opts ...Option) (*Controller, error) {
	if pool == nil || pool.Len() == 0 {
		return nil, ErrEmptyPool
	}

	c := &Controller{
		pool:  pool,
		store: store,
		ns:    pool.Mode().Namespace(),
		rng:   defaultRand{},
		state: NewState(),
	}
	for _, opt := range opts {
		opt(c)
	}

	snap, err := store.Load(ctx, c.ns)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}
	c.state = snap.State()
	c.pick()

	return c, nil
}

// Pool returns the session's pool
func (c *Controller) Pool() *Pool {
	return c.pool
}

// State returns a copy of the current state
func (c *Controller) State() State {
	return c.state.Clone()
}

// Hint returns the current hint mode
func (c *Controller) Hint() HintMode {
	return c.hint
}

// Exhausted reports whether every question has been answered correctly
func (c *Controller) Exhausted() bool {
	return c.pool.Exhausted(c.state.Used)
}

// Focus makes index the current question. Clients that keep the current
// index between requests use it to resume where they were.
func (c *Controller) Focus(index int) error {
	if c.Exhausted() {
		return ErrExhausted
	}
	if _, ok := c.pool.Item(index); !ok || c.state.Used.Has(index) {
		return ErrStaleQuestion
	}
	c.state.Current = index
	c.answered = false
	c.last = nil
	return nil
}

// Check grades input against the current question. A correct answer retires
// the question; a wrong one leaves it eligible. Progress is saved either way.
func (c *Controller) Check(ctx context.Context, input string) (Result, error) {
	if c.Exhausted() || !c.state.HasCurrent() {
		return Result{}, ErrExhausted
	}
	if c.answered {
		return Result{}, ErrAlreadyAnswered
	}

	item, _ := c.pool.Item(c.state.Current)
	res := Evaluate(c.pool.Mode(), item, input)
	if res.Correct {
		c.state.Correct++
		c.state.Used.Add(c.state.Current)
		if c.Exhausted() {
			c.state.Current = NoQuestion
		}
	} else {
		c.state.Wrong++
	}
	c.answered = true
	c.last = &res

	if err := c.store.Save(ctx, c.ns, c.state); err != nil {
		return res, fmt.Errorf("failed to save progress: %w", err)
	}
	return res, nil
}

// Next saves progress and moves to another unanswered question. The
// boolean is false once the pool is exhausted.
func (c *Controller) Next(ctx context.Context) (int, bool, error) {
	if c.Exhausted() {
		c.state.Current = NoQuestion
		return NoQuestion, false, nil
	}
	if err := c.store.Save(ctx, c.ns, c.state); err != nil {
		return NoQuestion, false, fmt.Errorf("failed to save progress: %w", err)
	}
	idx, ok := c.pick()
	return idx, ok, nil
}

// Reset clears persisted progress and starts over
func (c *Controller) Reset(ctx context.Context) error {
	if err := c.store.Clear(ctx, c.ns); err != nil {
		return fmt.Errorf("failed to clear progress: %w", err)
	}
	c.state = NewState()
	c.pick()
	return nil
}

// ToggleHint cycles the hint mode. Grading is unaffected.
func (c *Controller) ToggleHint() HintMode {
	c.hint = c.hint.Next()
	return c.hint
}

// View projects the session for display
func (c *Controller) View() View {
	return Project(c.pool, c.state, ProjectOptions{
		Hint:     c.hint,
		Answered: c.answered,
		Last:     c.last,
	})
}

func (c *Controller) pick() (int, bool) {
	idx, ok := PickNext(c.pool.Len(), c.state.Used, c.rng)
	c.state.Current = idx
	c.answered = false
	c.last = nil
	return idx, ok
}
