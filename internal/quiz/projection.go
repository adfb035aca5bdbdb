package quiz

import (
	"fmt"
	"math"
)

// View is everything a front-end needs to draw a quiz page
type View struct {
	Mode              string        `json:"mode"`
	Empty             bool          `json:"empty"`
	Message           string        `json:"message,omitempty"`
	Total             int           `json:"total"`
	Correct           int           `json:"correct"`
	Wrong             int           `json:"wrong"`
	Completed         int           `json:"completed"`
	QuestionNumber    int           `json:"questionNumber"`
	CompletionPercent float64       `json:"completionPercent"`
	AccuracyPercent   float64       `json:"accuracyPercent"`
	CompletionText    string        `json:"completionText"`
	AccuracyText      string        `json:"accuracyText"`
	Finished          bool          `json:"finished"`
	Question          *QuestionView `json:"question,omitempty"`
	Result            *Result       `json:"result,omitempty"`
	Controls          Controls      `json:"controls"`
}

// QuestionView describes the active question
type QuestionView struct {
	Index     int    `json:"index"`
	Prompt    string `json:"prompt"`
	Context   string `json:"context,omitempty"`
	Hint      string `json:"hint,omitempty"`
	HintMode  int    `json:"hintMode"`
	HintLabel string `json:"hintLabel,omitempty"`
}

// Controls says which buttons are usable
type Controls struct {
	ShowCheck bool `json:"showCheck"`
	ShowNext  bool `json:"showNext"`
	ShowReset bool `json:"showReset"`
}

// ProjectOptions carries display-only inputs
type ProjectOptions struct {
	Hint     HintMode
	Answered bool
	Last     *Result
}

// Project maps a pool and state onto a View. It never changes either.
func Project(pool *Pool, st State, opts ProjectOptions) View {
	if pool.Len() == 0 {
		return View{
			Empty:          true,
			Message:        ErrEmptyPool.Error(),
			CompletionText: "0 / 0 (0%)",
			AccuracyText:   "0%",
		}
	}

	total := pool.Len()
	completed := st.Used.CountWithin(total)
	completion := clampPercent(float64(completed) * 100 / float64(total))

	accuracy := 0.0
	if st.Attempts() > 0 {
		accuracy = clampPercent(float64(st.Correct) * 100 / float64(st.Attempts()))
	}

	v := View{
		Mode:              pool.Mode().String(),
		Total:             total,
		Correct:           st.Correct,
		Wrong:             st.Wrong,
		Completed:         completed,
		QuestionNumber:    st.QuestionNumber(),
		CompletionPercent: completion,
		AccuracyPercent:   accuracy,
		CompletionText:    fmt.Sprintf("%d / %d (%d%%)", st.Correct, total, int(math.Round(completion))),
		AccuracyText:      fmt.Sprintf("%d%%", int(math.Round(accuracy))),
		Finished:          completed >= total,
		Result:            opts.Last,
	}

	switch {
	case v.Finished:
		v.Controls = Controls{ShowReset: true}
	case opts.Answered:
		v.Controls = Controls{ShowNext: true}
	default:
		v.Controls = Controls{ShowCheck: true}
	}

	if item, ok := pool.Item(st.Current); ok && !v.Finished {
		v.Question = questionView(pool.Mode(), st.Current, item, opts.Hint)
	}

	return v
}

func questionView(mode Mode, index int, item Item, hint HintMode) *QuestionView {
	q := &QuestionView{Index: index, Prompt: item.Chinese}
	switch mode {
	case ModeWord:
		q.Hint = FormatHint(item.English, hint)
		q.HintMode = int(hint.normalize())
		q.HintLabel = hint.Label()
	case ModeSentence:
		q.Context = item.English
	}
	return q
}

func clampPercent(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
