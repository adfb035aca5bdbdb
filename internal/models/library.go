package models

import "time"

// Library is a named deck of words
type Library struct {
	ID          int64
	Name        string
	Description string
	IsPublic    bool
	AuthorID    *int64 // Nullable once the author account is gone
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Word is one vocabulary entry of a library
type Word struct {
	ID        int64
	LibraryID int64
	Chinese   string
	English   string
}

// Sentence is an example sentence for a word. Sentences are matched to
// library words by WordEnglish, not by foreign key.
type Sentence struct {
	ID          int64
	Chinese     string
	English     string
	WordChinese string
	WordEnglish string
}

// LibrarySummary is the row shown in the library browser
type LibrarySummary struct {
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Author        string    `json:"author"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Count         int       `json:"count"`
	FavoriteCount int       `json:"favorite_count"`
	IsFavorited   bool      `json:"is_favorited"`
	IsPublic      bool      `json:"is_public"`
	IsOwner       bool      `json:"is_owner"`
}
