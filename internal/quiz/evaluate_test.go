package quiz

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		a, b string
	}{
		{"alternatives in any order", "a/b", "b/a"},
		{"annotation ignored", "run v", "run"},
		{"several annotations", "look after sb", "look after"},
		{"alternatives inside phrase", "give up/in adj", "give in/up"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if Normalize(tt.a) != Normalize(tt.b) {
				t.Errorf("Normalize(%q) = %q, Normalize(%q) = %q", tt.a, Normalize(tt.a), tt.b, Normalize(tt.b))
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	word := Item{English: "Run/Sprint v", Chinese: "跑"}
	sentence := Item{English: "I like apples.", Chinese: "我喜歡蘋果。", WordEnglish: "Apple", WordChinese: "蘋果"}

	tests := []struct {
		name    string
		mode    Mode
		item    Item
		input   string
		correct bool
	}{
		{"word exact", ModeWord, word, "run/sprint v", true},
		{"word swapped alternatives", ModeWord, word, "  SPRINT/run ", true},
		{"word without annotation", ModeWord, word, "run/sprint", true},
		{"word wrong", ModeWord, word, "walk", false},
		{"word single alternative is not enough", ModeWord, word, "run", false},
		{"sentence case and space insensitive", ModeSentence, sentence, "  aPPle ", true},
		{"sentence no normalization", ModeSentence, Item{English: "x", WordEnglish: "a/b"}, "b/a", false},
		{"sentence wrong", ModeSentence, sentence, "apples", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Evaluate(tt.mode, tt.item, tt.input)
			if res.Correct != tt.correct {
				t.Errorf("Evaluate(%q) correct = %v, want %v", tt.input, res.Correct, tt.correct)
			}
		})
	}
}

func TestEvaluateCanonicalIsLowercase(t *testing.T) {
	res := Evaluate(ModeWord, Item{English: "New York"}, "boston")
	if res.Canonical != "new york" {
		t.Errorf("expected canonical 'new york', got %q", res.Canonical)
	}
}

func TestFormatHint(t *testing.T) {
	tests := []struct {
		answer string
		mode   HintMode
		want   string
	}{
		{"apple", HintFirstLast, "a_e"},
		{"apple", HintFirst, "a_"},
		{"apple", HintNone, "_"},
		{"cat", HintFirstLast, "_"},
		{"cat", HintFirst, "_"},
		{"look after sb", HintFirstLast, "l_k a_r sb"},
		{"begin/start v", HintFirst, "b_ / s_ v"},
		{"one's", HintNone, "one's"},
		{"Adj", HintFirstLast, "Adj"},
		{"café", HintFirstLast, "c_é"},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			if got := FormatHint(tt.answer, tt.mode); got != tt.want {
				t.Errorf("FormatHint(%q, %d) = %q, want %q", tt.answer, tt.mode, got, tt.want)
			}
		})
	}
}

func TestFormatWordHintWhitelistIgnoresMode(t *testing.T) {
	for _, tok := range annotationWhitelist {
		for _, mode := range []HintMode{HintFirstLast, HintFirst, HintNone} {
			if got := FormatWordHint(tok, mode); got != tok {
				t.Errorf("FormatWordHint(%q, %d) = %q, want unchanged", tok, mode, got)
			}
		}
	}
}

func TestHintModeCycle(t *testing.T) {
	mode := HintFirstLast
	want := []HintMode{HintFirst, HintNone, HintFirstLast}
	for _, w := range want {
		mode = mode.Next()
		if mode != w {
			t.Fatalf("Next() = %d, want %d", mode, w)
		}
	}

	if ParseHintMode(7) != HintFirstLast {
		t.Error("out of range hint mode should fall back to first & last")
	}
}
