package quiz

import (
	"context"
	"errors"
	"math"
	"time"
)

// Namespace prefixes progress keys so the word and sentence quizzes never
// read each other's counters.
type Namespace string

const (
	WordNamespace     Namespace = ""
	SentenceNamespace Namespace = "s-"
)

// Persisted field names, before namespacing
const (
	KeyCorrect = "correctCount"
	KeyWrong   = "wrongCount"
	KeyUsed    = "usedIndices"
	KeyScale   = "pageScale"
)

// ProgressTTL is how long persisted progress survives without being rewritten
const ProgressTTL = 7 * 24 * time.Hour

// Key returns the namespaced key for field
func (ns Namespace) Key(field string) string {
	return string(ns) + field
}

// Name is a readable namespace label for storage rows and logs
func (ns Namespace) Name() string {
	if ns == SentenceNamespace {
		return "sentence"
	}
	return "word"
}

// Snapshot is what a store could recover. Each field is restored
// independently; a missing or malformed field is simply absent.
type Snapshot struct {
	Correct    int
	HasCorrect bool
	Wrong      int
	HasWrong   bool
	Used       IndexSet
	HasUsed    bool
}

// SnapshotOf captures every field of st
func SnapshotOf(st State) Snapshot {
	return Snapshot{
		Correct:    st.Correct,
		HasCorrect: true,
		Wrong:      st.Wrong,
		HasWrong:   true,
		Used:       st.Used.Clone(),
		HasUsed:    true,
	}
}

// State rebuilds a session state, defaulting absent fields to zero
func (s Snapshot) State() State {
	st := NewState()
	if s.HasCorrect && s.Correct > 0 {
		st.Correct = s.Correct
	}
	if s.HasWrong && s.Wrong > 0 {
		st.Wrong = s.Wrong
	}
	if s.HasUsed {
		st.Used = s.Used.Clone()
	}
	return st
}

// ProgressStore persists quiz progress per namespace
type ProgressStore interface {
	Load(ctx context.Context, ns Namespace) (Snapshot, error)
	Save(ctx context.Context, ns Namespace, st State) error
	Clear(ctx context.Context, ns Namespace) error
}

// ScaleStore persists the question panel display scale
type ScaleStore interface {
	LoadScale(ctx context.Context) (float64, bool, error)
	SaveScale(ctx context.Context, scale float64) error
}

// SliderSteps is the slider value that corresponds to a scale of 1
const SliderSteps = 400

// ErrInvalidScale is returned for non-positive or non-finite scale factors
var ErrInvalidScale = errors.New("invalid display scale")

// ScaleFromSlider maps a slider position onto a scale factor
func ScaleFromSlider(value float64) (float64, error) {
	scale := value / SliderSteps
	if !ValidScale(scale) {
		return 0, ErrInvalidScale
	}
	return scale, nil
}

// SliderFromScale maps a restored scale factor back onto the slider
func SliderFromScale(scale float64) float64 {
	return scale * SliderSteps
}

// ValidScale reports whether scale can be applied as a transform
func ValidScale(scale float64) bool {
	return scale > 0 && !math.IsInf(scale, 0) && !math.IsNaN(scale)
}
