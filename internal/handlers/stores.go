package handlers

import (
	"context"
	"net/http"
	"time"

	"vocabdrill/internal/progress"
	"vocabdrill/internal/quiz"
	"vocabdrill/internal/repository"
)

// Store is a progress backend that also keeps the display scale
type Store interface {
	quiz.ProgressStore
	quiz.ScaleStore
}

// Stores picks the progress backend for a request
type Stores struct {
	backend string
	repo    *repository.ProgressRepository
	ttl     time.Duration
}

// NewStores creates a factory for backend "cookie" or "sql"
func NewStores(backend string, repo *repository.ProgressRepository, ttl time.Duration) *Stores {
	return &Stores{backend: backend, repo: repo, ttl: ttl}
}

// For returns the store for one request
func (s *Stores) For(w http.ResponseWriter, r *http.Request, client *Client) Store {
	if s.backend == "sql" && s.repo != nil && client != nil {
		return progress.NewSQLStore(s.repo, client.ID, s.ttl)
	}
	return progress.NewCookieStore(w, r, s.ttl)
}

// clearAll drops progress in both quiz namespaces
func clearAll(ctx context.Context, store Store) error {
	if s, ok := store.(interface{ ClearAll(context.Context) error }); ok {
		return s.ClearAll(ctx)
	}
	for _, ns := range []quiz.Namespace{quiz.WordNamespace, quiz.SentenceNamespace} {
		if err := store.Clear(ctx, ns); err != nil {
			return err
		}
	}
	return nil
}
