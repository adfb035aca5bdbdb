package progress

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"vocabdrill/internal/models"
	"vocabdrill/internal/quiz"
	"vocabdrill/internal/repository"
)

// SQLStore keeps progress for one client in the database. Rows older than
// the TTL load as absent, matching cookie expiry.
type SQLStore struct {
	repo     *repository.ProgressRepository
	clientID string
	ttl      time.Duration
	now      func() time.Time
}

var (
	_ quiz.ProgressStore = (*SQLStore)(nil)
	_ quiz.ScaleStore    = (*SQLStore)(nil)
)

// NewSQLStore creates a store for clientID
func NewSQLStore(repo *repository.ProgressRepository, clientID string, ttl time.Duration) *SQLStore {
	if ttl <= 0 {
		ttl = quiz.ProgressTTL
	}
	return &SQLStore{repo: repo, clientID: clientID, ttl: ttl, now: time.Now}
}

func (s *SQLStore) Load(ctx context.Context, ns quiz.Namespace) (quiz.Snapshot, error) {
	row, err := s.repo.GetProgress(ctx, s.clientID, ns.Name())
	if err != nil {
		return quiz.Snapshot{}, err
	}
	if row == nil || row.IsExpired(s.ttl, s.now()) {
		return quiz.Snapshot{}, nil
	}

	snap := quiz.Snapshot{
		Correct:    row.CorrectCount,
		HasCorrect: row.CorrectCount >= 0,
		Wrong:      row.WrongCount,
		HasWrong:   row.WrongCount >= 0,
	}
	snap.Used, snap.HasUsed = parseIndices(row.UsedIndices)
	return snap, nil
}

func (s *SQLStore) Save(ctx context.Context, ns quiz.Namespace, st quiz.State) error {
	used, err := json.Marshal(st.Used)
	if err != nil {
		return err
	}
	return s.repo.SaveProgress(ctx, &models.QuizProgress{
		ClientID:     s.clientID,
		Namespace:    ns.Name(),
		CorrectCount: st.Correct,
		WrongCount:   st.Wrong,
		UsedIndices:  string(used),
		UpdatedAt:    s.now(),
	})
}

func (s *SQLStore) Clear(ctx context.Context, ns quiz.Namespace) error {
	return s.repo.DeleteProgress(ctx, s.clientID, ns.Name())
}

// ClearAll drops progress in both quiz namespaces
func (s *SQLStore) ClearAll(ctx context.Context) error {
	return s.repo.DeleteProgress(ctx, s.clientID, quiz.WordNamespace.Name(), quiz.SentenceNamespace.Name())
}

func (s *SQLStore) LoadScale(ctx context.Context) (float64, bool, error) {
	setting, err := s.repo.GetDisplaySetting(ctx, s.clientID)
	if err != nil {
		return 0, false, err
	}
	if setting == nil || setting.IsExpired(s.ttl, s.now()) || !quiz.ValidScale(setting.PageScale) {
		return 0, false, nil
	}
	return setting.PageScale, true, nil
}

func (s *SQLStore) SaveScale(ctx context.Context, scale float64) error {
	if !quiz.ValidScale(scale) {
		return quiz.ErrInvalidScale
	}
	return s.repo.SaveDisplaySetting(ctx, &models.DisplaySetting{
		ClientID:  s.clientID,
		PageScale: scale,
		UpdatedAt: s.now(),
	})
}

// Prune deletes expired rows every interval until ctx is done
func Prune(ctx context.Context, repo *repository.ProgressRepository, ttl, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := repo.DeleteExpired(ctx, now.Add(-ttl))
			if err != nil {
				log.Printf("Error pruning expired progress: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("Pruned %d expired progress rows", n)
			}
		}
	}
}
