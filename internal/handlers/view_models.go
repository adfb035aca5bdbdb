package handlers

import (
	"vocabdrill/internal/catalog"
	"vocabdrill/internal/deck"
	"vocabdrill/internal/models"
	"vocabdrill/internal/quiz"
)

// QuizResponse is returned by every quiz endpoint
type QuizResponse struct {
	View      quiz.View     `json:"view"`
	Deck      *deck.Payload `json:"deck,omitempty"`
	CSRFToken string        `json:"csrf_token,omitempty"`
	Scale     float64       `json:"scale,omitempty"`
	Slider    float64       `json:"slider,omitempty"`
}

// QuizRequest is the body of the mutating quiz endpoints. Index and HintMode
// echo what the client is currently showing.
type QuizRequest struct {
	Index    *int   `json:"index"`
	Answer   string `json:"answer"`
	HintMode *int   `json:"hintMode"`
}

// CardResponse is one flashcard
type CardResponse struct {
	Card           quiz.DeckView `json:"card"`
	CurrentLibrary string        `json:"current_library"`
}

// ScaleRequest carries the display slider position
type ScaleRequest struct {
	Slider float64 `json:"slider"`
}

// ScaleResponse echoes the stored scale
type ScaleResponse struct {
	Scale  float64 `json:"scale"`
	Slider float64 `json:"slider"`
}

// LibraryActionResponse reports an upstream library action
type LibraryActionResponse struct {
	OK             bool                   `json:"ok"`
	Message        string                 `json:"message,omitempty"`
	CurrentLibrary string                 `json:"current_library,omitempty"`
	Library        *models.LibrarySummary `json:"library,omitempty"`
	Page           *catalog.Page          `json:"page,omitempty"`
}

// RedirectResponse tells the page to navigate, e.g. to the login page
type RedirectResponse struct {
	Redirect string `json:"redirect"`
}
