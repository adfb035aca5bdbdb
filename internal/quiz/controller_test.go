package quiz

import (
	"context"
	"errors"
	"testing"
)

// memoryStore keeps snapshots per namespace in memory
type memoryStore struct {
	data  map[Namespace]Snapshot
	saves int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[Namespace]Snapshot)}
}

func (m *memoryStore) Load(_ context.Context, ns Namespace) (Snapshot, error) {
	return m.data[ns], nil
}

func (m *memoryStore) Save(_ context.Context, ns Namespace, st State) error {
	m.saves++
	m.data[ns] = SnapshotOf(st)
	return nil
}

func (m *memoryStore) Clear(_ context.Context, ns Namespace) error {
	delete(m.data, ns)
	return nil
}

// firstRand always picks the first eligible index
type firstRand struct{}

func (firstRand) IntN(int) int { return 0 }

func wordPool(t *testing.T) *Pool {
	t.Helper()
	pool, err := BuildPool(ModeWord, []Item{
		{English: "cat", Chinese: "貓"},
		{English: "dog", Chinese: "狗"},
	})
	if err != nil {
		t.Fatalf("BuildPool failed: %v", err)
	}
	return pool
}

func TestControllerAnswersEveryQuestion(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	c, err := NewController(ctx, wordPool(t), store, WithRand(firstRand{}))
	if err != nil {
		t.Fatalf("NewController failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		item, _ := c.Pool().Item(c.State().Current)
		res, err := c.Check(ctx, item.English)
		if err != nil {
			t.Fatalf("Check failed: %v", err)
		}
		if !res.Correct {
			t.Fatalf("expected %q to be correct", item.English)
		}
		if _, _, err := c.Next(ctx); err != nil {
			t.Fatalf("Next failed: %v", err)
		}
	}

	st := c.State()
	if st.Correct != 2 || st.Wrong != 0 {
		t.Errorf("expected 2 correct 0 wrong, got %d/%d", st.Correct, st.Wrong)
	}
	if st.Used.Len() != 2 || !st.Used.Has(0) || !st.Used.Has(1) {
		t.Errorf("expected used {0,1}, got %v", st.Used.Slice())
	}
	if st.HasCurrent() {
		t.Errorf("expected no current question, got %d", st.Current)
	}
	if !c.View().Finished {
		t.Error("expected view to be finished")
	}
}

func TestControllerWrongAnswerKeepsQuestionEligible(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	c, err := NewController(ctx, wordPool(t), store, WithRand(firstRand{}))
	if err != nil {
		t.Fatalf("NewController failed: %v", err)
	}

	if err := c.Focus(1); err != nil {
		t.Fatalf("Focus failed: %v", err)
	}
	res, err := c.Check(ctx, "horse")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if res.Correct || res.Canonical != "dog" {
		t.Errorf("unexpected result %+v", res)
	}

	st := c.State()
	if st.Wrong != 1 || st.Used.Has(1) {
		t.Errorf("wrong answer should only bump wrongCount, got %+v", st)
	}
	if store.saves != 1 {
		t.Errorf("expected progress to be saved once, saved %d times", store.saves)
	}

	if _, err := c.Check(ctx, "dog"); !errors.Is(err, ErrAlreadyAnswered) {
		t.Errorf("expected ErrAlreadyAnswered, got %v", err)
	}

	if err := c.Focus(1); err != nil {
		t.Errorf("missed question should still be focusable: %v", err)
	}
}

func TestControllerCheckIsNoOpWhenExhausted(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	store.data[WordNamespace] = SnapshotOf(State{Correct: 2, Used: NewIndexSet(0, 1)})

	c, err := NewController(ctx, wordPool(t), store)
	if err != nil {
		t.Fatalf("NewController failed: %v", err)
	}

	if _, err := c.Check(ctx, "cat"); !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
	if store.saves != 0 {
		t.Error("exhausted check must not persist")
	}
	if st := c.State(); st.Correct != 2 || st.Wrong != 0 {
		t.Errorf("state changed on exhausted check: %+v", st)
	}
	if err := c.Focus(0); !errors.Is(err, ErrExhausted) {
		t.Errorf("expected ErrExhausted from Focus, got %v", err)
	}
}

func TestControllerNamespacesDoNotMix(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	store.data[WordNamespace] = SnapshotOf(State{Correct: 5, Wrong: 3})

	pool, err := BuildPool(ModeSentence, []Item{{English: "I run.", Chinese: "我跑。", WordEnglish: "run"}})
	if err != nil {
		t.Fatalf("BuildPool failed: %v", err)
	}

	c, err := NewController(ctx, pool, store)
	if err != nil {
		t.Fatalf("NewController failed: %v", err)
	}
	if st := c.State(); st.Correct != 0 || st.Wrong != 0 {
		t.Errorf("sentence session picked up word progress: %+v", st)
	}

	if _, err := c.Check(ctx, "run"); err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if got := store.data[WordNamespace]; got.Correct != 5 {
		t.Errorf("word namespace overwritten: %+v", got)
	}
	if got := store.data[SentenceNamespace]; got.Correct != 1 {
		t.Errorf("expected sentence progress to be saved, got %+v", got)
	}
}

func TestControllerReset(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	store.data[WordNamespace] = SnapshotOf(State{Correct: 2, Wrong: 4, Used: NewIndexSet(0, 1)})

	c, err := NewController(ctx, wordPool(t), store)
	if err != nil {
		t.Fatalf("NewController failed: %v", err)
	}
	if err := c.Reset(ctx); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	st := c.State()
	if st.Correct != 0 || st.Wrong != 0 || st.Used.Len() != 0 {
		t.Errorf("expected empty state after reset, got %+v", st)
	}
	if !st.HasCurrent() {
		t.Error("expected a question after reset")
	}
	if _, ok := store.data[WordNamespace]; ok {
		t.Error("expected stored progress to be cleared")
	}
}

func TestControllerRestoresPartialSnapshot(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	store.data[WordNamespace] = Snapshot{Correct: 1, HasCorrect: true}

	c, err := NewController(ctx, wordPool(t), store)
	if err != nil {
		t.Fatalf("NewController failed: %v", err)
	}
	st := c.State()
	if st.Correct != 1 || st.Wrong != 0 || st.Used.Len() != 0 {
		t.Errorf("unexpected restored state %+v", st)
	}
}

func TestToggleHintRerendersHint(t *testing.T) {
	ctx := context.Background()
	pool, _ := BuildPool(ModeWord, []Item{{English: "apple", Chinese: "蘋果"}})
	c, err := NewController(ctx, pool, newMemoryStore())
	if err != nil {
		t.Fatalf("NewController failed: %v", err)
	}

	if got := c.View().Question.Hint; got != "a_e" {
		t.Fatalf("expected hint a_e, got %q", got)
	}
	c.ToggleHint()
	if got := c.View().Question.Hint; got != "a_" {
		t.Errorf("expected hint a_ after toggle, got %q", got)
	}
}
