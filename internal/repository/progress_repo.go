package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"vocabdrill/internal/database"
	"vocabdrill/internal/models"
)

// ProgressRepository stores quiz progress and display settings per client
type ProgressRepository struct {
	db database.DBTX
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db database.DBTX) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// GetProgress returns the stored progress, or nil when there is none
func (r *ProgressRepository) GetProgress(ctx context.Context, clientID, namespace string) (*models.QuizProgress, error) {
	query := `
		SELECT client_id, namespace, correct_count, wrong_count, used_indices, updated_unix
		FROM quiz_progress
		WHERE client_id = ? AND namespace = ?
	`
	p := &models.QuizProgress{}
	var updated int64
	err := r.db.QueryRowContext(ctx, query, clientID, namespace).Scan(
		&p.ClientID,
		&p.Namespace,
		&p.CorrectCount,
		&p.WrongCount,
		&p.UsedIndices,
		&updated,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}

	p.UpdatedAt = time.Unix(updated, 0)
	return p, nil
}

// SaveProgress inserts or replaces the progress row
func (r *ProgressRepository) SaveProgress(ctx context.Context, p *models.QuizProgress) error {
	query := r.db.GetDialect().Upsert("quiz_progress",
		[]string{"client_id", "namespace"},
		[]string{"correct_count", "wrong_count", "used_indices", "updated_unix"},
	)
	_, err := r.db.ExecContext(ctx, query,
		p.ClientID, p.Namespace, p.CorrectCount, p.WrongCount, p.UsedIndices, p.UpdatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

// DeleteProgress removes progress for the given namespaces
func (r *ProgressRepository) DeleteProgress(ctx context.Context, clientID string, namespaces ...string) error {
	for _, ns := range namespaces {
		if _, err := r.db.ExecContext(ctx, "DELETE FROM quiz_progress WHERE client_id = ? AND namespace = ?", clientID, ns); err != nil {
			return fmt.Errorf("failed to delete progress: %w", err)
		}
	}
	return nil
}

// GetDisplaySetting returns the client's display scale, or nil when unset
func (r *ProgressRepository) GetDisplaySetting(ctx context.Context, clientID string) (*models.DisplaySetting, error) {
	s := &models.DisplaySetting{}
	var updated int64
	err := r.db.QueryRowContext(ctx,
		"SELECT client_id, page_scale, updated_unix FROM display_settings WHERE client_id = ?", clientID,
	).Scan(&s.ClientID, &s.PageScale, &updated)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get display setting: %w", err)
	}

	s.UpdatedAt = time.Unix(updated, 0)
	return s, nil
}

// SaveDisplaySetting inserts or replaces the client's display scale
func (r *ProgressRepository) SaveDisplaySetting(ctx context.Context, s *models.DisplaySetting) error {
	query := r.db.GetDialect().Upsert("display_settings",
		[]string{"client_id"},
		[]string{"page_scale", "updated_unix"},
	)
	if _, err := r.db.ExecContext(ctx, query, s.ClientID, s.PageScale, s.UpdatedAt.Unix()); err != nil {
		return fmt.Errorf("failed to save display setting: %w", err)
	}
	return nil
}

// DeleteExpired removes progress and settings last written before cutoff
func (r *ProgressRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	var total int64
	for _, table := range []string{"quiz_progress", "display_settings"} {
		result, err := r.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE updated_unix < ?", cutoff.Unix())
		if err != nil {
			return total, fmt.Errorf("failed to delete expired rows from %s: %w", table, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
