package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"vocabdrill/internal/database"
	"vocabdrill/internal/models"
)

// LibraryRepository reads libraries, their words and example sentences
type LibraryRepository struct {
	db database.DBTX
}

// NewLibraryRepository creates a new library repository
func NewLibraryRepository(db database.DBTX) *LibraryRepository {
	return &LibraryRepository{db: db}
}

// ListVisibleLibraries returns public libraries plus those authored by
// viewerID. A viewerID of 0 is an anonymous visitor.
func (r *LibraryRepository) ListVisibleLibraries(ctx context.Context, viewerID int64) ([]models.LibrarySummary, error) {
	query := `
		SELECT l.name, COALESCE(l.description, ''), COALESCE(u.username, ''),
		       l.created_at, l.updated_at,
		       (SELECT COUNT(*) FROM words w WHERE w.library_id = l.id),
		       (SELECT COUNT(*) FROM favorites f WHERE f.library_id = l.id),
		       (SELECT COUNT(*) FROM favorites f WHERE f.library_id = l.id AND f.user_id = ?),
		       l.public, l.author_id
		FROM libraries l
		LEFT JOIN users u ON u.id = l.author_id
		WHERE l.public = ` + r.db.GetDialect().BoolValue(true) + ` OR l.author_id = ?
		ORDER BY l.id
	`

	rows, err := r.db.QueryContext(ctx, query, viewerID, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list libraries: %w", err)
	}
	defer rows.Close()

	var libraries []models.LibrarySummary
	for rows.Next() {
		var lib models.LibrarySummary
		var favoritedByViewer int
		var authorID sql.NullInt64
		if err := rows.Scan(
			&lib.Name,
			&lib.Description,
			&lib.Author,
			&lib.CreatedAt,
			&lib.UpdatedAt,
			&lib.Count,
			&lib.FavoriteCount,
			&favoritedByViewer,
			&lib.IsPublic,
			&authorID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan library: %w", err)
		}
		lib.IsFavorited = viewerID != 0 && favoritedByViewer > 0
		lib.IsOwner = viewerID != 0 && authorID.Valid && authorID.Int64 == viewerID
		libraries = append(libraries, lib)
	}

	return libraries, rows.Err()
}

// GetLibraryByName retrieves a library by its name
func (r *LibraryRepository) GetLibraryByName(ctx context.Context, name string) (*models.Library, error) {
	query := `
		SELECT id, name, COALESCE(description, ''), public, author_id, created_at, updated_at
		FROM libraries
		WHERE name = ?
		ORDER BY id
		LIMIT 1
	`
	lib := &models.Library{}
	var authorID sql.NullInt64
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&lib.ID,
		&lib.Name,
		&lib.Description,
		&lib.IsPublic,
		&authorID,
		&lib.CreatedAt,
		&lib.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get library: %w", err)
	}

	if authorID.Valid {
		lib.AuthorID = &authorID.Int64
	}
	return lib, nil
}

// ListWords returns the words of a library in insertion order
func (r *LibraryRepository) ListWords(ctx context.Context, libraryID int64) ([]models.Word, error) {
	query := `
		SELECT id, library_id, chinese, english
		FROM words
		WHERE library_id = ?
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, libraryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list words: %w", err)
	}
	defer rows.Close()

	var words []models.Word
	for rows.Next() {
		var w models.Word
		if err := rows.Scan(&w.ID, &w.LibraryID, &w.Chinese, &w.English); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		words = append(words, w)
	}

	return words, rows.Err()
}

// sentenceBatchSize bounds the IN list per query, well under the bind
// variable limits of every supported driver
var sentenceBatchSize = 500

// ListSentencesForWords returns example sentences grouped by word_english.
// Large word lists are queried in batches.
func (r *LibraryRepository) ListSentencesForWords(ctx context.Context, english []string) (map[string][]models.Sentence, error) {
	result := make(map[string][]models.Sentence)
	for _, batch := range lo.Chunk(lo.Uniq(english), sentenceBatchSize) {
		if err := r.listSentences(ctx, batch, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *LibraryRepository) listSentences(ctx context.Context, english []string, result map[string][]models.Sentence) error {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(english)), ", ")
	query := `
		SELECT id, chinese, english, word_chinese, word_english
		FROM sentences
		WHERE word_english IN (` + placeholders + `)
		ORDER BY id
	`

	args := make([]interface{}, len(english))
	for i, e := range english {
		args[i] = e
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to list sentences: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.Sentence
		if err := rows.Scan(&s.ID, &s.Chinese, &s.English, &s.WordChinese, &s.WordEnglish); err != nil {
			return fmt.Errorf("failed to scan sentence: %w", err)
		}
		result[s.WordEnglish] = append(result[s.WordEnglish], s)
	}
	return rows.Err()
}

// GetUserCurrentLibrary returns the library a signed-in user last selected
func (r *LibraryRepository) GetUserCurrentLibrary(ctx context.Context, userID int64) (string, error) {
	var name sql.NullString
	err := r.db.QueryRowContext(ctx, "SELECT current_library FROM users WHERE id = ?", userID).Scan(&name)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get current library: %w", err)
	}
	return name.String, nil
}
