package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"vocabdrill/internal/database"
	"vocabdrill/internal/quiz"
	"vocabdrill/internal/repository"
)

func setupService(t *testing.T) *QuizService {
	t.Helper()
	db, err := database.Initialize(filepath.Join(t.TempDir(), "service.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.RunMigrations(""); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	seed := []string{
		`INSERT INTO users (id, username) VALUES (1, 'alice')`,
		`INSERT INTO libraries (id, name, description, public, author_id) VALUES
			(1, 'Basic', 'Everyday words', 1, 1),
			(2, 'Empty', NULL, 1, 1)`,
		`INSERT INTO words (id, library_id, chinese, english) VALUES
			(1, 1, '蘋果', 'apple'),
			(2, 1, '跑', 'run (v)'),
			(3, 1, '貓', 'cat')`,
		`INSERT INTO sentences (id, chinese, english, word_chinese, word_english) VALUES
			(1, '我喜歡蘋果。', 'I like apples.', '蘋果', 'apple'),
			(2, '蘋果是紅的。', 'The apple is red.', '蘋果', 'apple'),
			(3, '貓在睡覺。', 'The cat is sleeping.', '貓', 'cat')`,
	}
	for _, stmt := range seed {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("Failed to seed: %v", err)
		}
	}
	return NewQuizService(repository.NewLibraryRepository(db))
}

func TestLoadMaterial(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	m, err := svc.Load(ctx, "client-1", "Basic")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(m.Words) != 3 || m.Words[1].English != "run (v)" {
		t.Errorf("words = %+v", m.Words)
	}
	if len(m.Questions) != 2 {
		t.Fatalf("questions = %+v", m.Questions)
	}
	if m.Questions[0].WordEnglish != "apple" || m.Questions[1].WordEnglish != "cat" {
		t.Errorf("questions out of word order: %+v", m.Questions)
	}
	if len(m.Missing) != 1 || m.Missing[0] != "run (v)" {
		t.Errorf("missing = %v", m.Missing)
	}

	again, _ := svc.Load(ctx, "client-1", "Basic")
	if again.Questions[0] != m.Questions[0] {
		t.Error("sentence choice should be stable for a client")
	}

	pool, err := m.Pool(quiz.ModeSentence)
	if err != nil || pool.Len() != 2 {
		t.Errorf("sentence pool = %v, %v", pool.Len(), err)
	}
	pool, err = m.Pool(quiz.ModeWord)
	if err != nil || pool.Len() != 3 {
		t.Errorf("word pool = %v, %v", pool.Len(), err)
	}

	payload := m.Payload([]string{"quote"}, "tok")
	if payload.CurrentLibrary != "Basic" || payload.CSRFToken != "tok" || len(payload.MissingSentences) != 1 {
		t.Errorf("payload = %+v", payload)
	}
}

func TestLoadErrors(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	for _, name := range []string{"", "Nope"} {
		if _, err := svc.Load(ctx, "c", name); !errors.Is(err, ErrNoLibrary) {
			t.Errorf("Load(%q) err = %v, want ErrNoLibrary", name, err)
		}
	}

	m, err := svc.Load(ctx, "c", "Empty")
	if err != nil {
		t.Fatalf("Load(Empty): %v", err)
	}
	if _, err := m.Pool(quiz.ModeWord); !errors.Is(err, quiz.ErrEmptyPool) {
		t.Errorf("empty library pool err = %v", err)
	}
}

func TestPickSentence(t *testing.T) {
	for n := 1; n < 5; n++ {
		i := pickSentence("client", "apple", n)
		if i < 0 || i >= n {
			t.Errorf("pickSentence(n=%d) = %d out of range", n, i)
		}
		if i != pickSentence("client", "apple", n) {
			t.Error("pickSentence must be deterministic")
		}
	}
}

func TestExportToWriter(t *testing.T) {
	exporter := NewExportService(setupService(t))
	ctx := context.Background()

	var buf bytes.Buffer
	if _, err := exporter.ExportToWriter(ctx, &buf, "Basic", false); err != nil {
		t.Fatalf("ExportToWriter: %v", err)
	}
	var entries []struct{ English, Chinese string }
	if err := json.Unmarshal(buf.Bytes(), &entries); err != nil {
		t.Fatalf("export is not a word array: %v", err)
	}
	if len(entries) != 3 || entries[0].English != "apple" || entries[0].Chinese != "蘋果" {
		t.Errorf("entries = %+v", entries)
	}

	buf.Reset()
	f, err := exporter.ExportToWriter(ctx, &buf, "Basic", true)
	if err != nil {
		t.Fatalf("ExportToWriter with sentences: %v", err)
	}
	if f.Library != "Basic" || len(f.Questions) != 2 {
		t.Errorf("file = %+v", f)
	}

	if _, err := exporter.ExportToWriter(ctx, &buf, "Nope", false); !errors.Is(err, ErrNoLibrary) {
		t.Errorf("unknown library err = %v", err)
	}
}
