package handlers

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"vocabdrill/internal/quiz"
	"vocabdrill/internal/repository"
	"vocabdrill/internal/security"
	"vocabdrill/internal/service"
	"vocabdrill/internal/validation"
)

// QuizHandler serves the word quiz, sentence quiz and flashcards
type QuizHandler struct {
	quizService *service.QuizService
	libraryRepo *repository.LibraryRepository
	stores      *Stores
	csrf        *security.CSRFGenerator
	quotes      []string
	rng         quiz.Rand
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizService *service.QuizService, libraryRepo *repository.LibraryRepository, stores *Stores, csrf *security.CSRFGenerator, quotes []string) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
		libraryRepo: libraryRepo,
		stores:      stores,
		csrf:        csrf,
		quotes:      quotes,
	}
}

// currentLibrary prefers the cookie set by a switch from this service and
// falls back to the signed-in user's saved choice
func currentLibrary(r *http.Request, client *Client, libraryRepo *repository.LibraryRepository) string {
	if cookie, err := r.Cookie(CurrentLibraryCookieName); err == nil && cookie.Value != "" {
		if name, err := url.PathUnescape(cookie.Value); err == nil {
			return name
		}
	}
	if client != nil && client.UserID > 0 && libraryRepo != nil {
		name, err := libraryRepo.GetUserCurrentLibrary(r.Context(), client.UserID)
		if err != nil {
			log.Printf("Error loading current library for user %d: %v", client.UserID, err)
			return ""
		}
		return name
	}
	return ""
}

func quizMode(r *http.Request) (quiz.Mode, bool) {
	mode, err := quiz.ParseMode(r.PathValue("mode"))
	if err != nil || mode == quiz.ModeFlashcard {
		return 0, false
	}
	return mode, true
}

// session loads the pool for mode and restores the client's progress. When
// it returns nil the response has been written.
func (h *QuizHandler) session(w http.ResponseWriter, r *http.Request, mode quiz.Mode, hint quiz.HintMode) (*quiz.Controller, *service.Material, Store) {
	client := GetClientFromContext(r.Context())
	if client == nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Missing client identity", errors.New("no client in context"))
		return nil, nil, nil
	}

	m, err := h.quizService.Load(r.Context(), client.ID, currentLibrary(r, client, h.libraryRepo))
	if errors.Is(err, service.ErrNoLibrary) {
		h.respondEmpty(w, r, mode, ErrNoLibrarySelected)
		return nil, nil, nil
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load questions", "Error loading library", err)
		return nil, nil, nil
	}

	pool, err := m.Pool(mode)
	if errors.Is(err, quiz.ErrEmptyPool) {
		h.respondEmpty(w, r, mode, err.Error())
		return nil, nil, nil
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error building pool", err)
		return nil, nil, nil
	}

	store := h.stores.For(w, r, client)
	opts := []quiz.Option{quiz.WithHintMode(hint)}
	if h.rng != nil {
		opts = append(opts, quiz.WithRand(h.rng))
	}
	c, err := quiz.NewController(r.Context(), pool, store, opts...)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load progress", "Error restoring session", err)
		return nil, nil, nil
	}
	return c, m, store
}

func (h *QuizHandler) respondEmpty(w http.ResponseWriter, r *http.Request, mode quiz.Mode, message string) {
	view := quiz.Project(nil, quiz.NewState(), quiz.ProjectOptions{})
	view.Mode = mode.String()
	view.Message = message
	respondJSON(w, http.StatusOK, QuizResponse{View: view, CSRFToken: h.csrfToken(r)})
}

func (h *QuizHandler) csrfToken(r *http.Request) string {
	client := GetClientFromContext(r.Context())
	if client == nil {
		return ""
	}
	token, err := h.csrf.GenerateToken(client.ID)
	if err != nil {
		log.Printf("Error generating CSRF token: %v", err)
		return ""
	}
	return token
}

// GetState returns the deck payload and the current view. ?index= resumes a
// question the page is still showing.
func (h *QuizHandler) GetState(w http.ResponseWriter, r *http.Request) {
	mode, ok := quizMode(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	hint := quiz.HintFirstLast
	if v, err := strconv.Atoi(r.URL.Query().Get("hintMode")); err == nil {
		hint = quiz.ParseHintMode(v)
	}

	c, m, store := h.session(w, r, mode, hint)
	if c == nil {
		return
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("index")); err == nil {
		// a stale index just keeps the freshly picked question
		_ = c.Focus(v)
	}

	token := h.csrfToken(r)
	payload := m.Payload(h.quotes, token)
	resp := QuizResponse{View: c.View(), Deck: &payload, CSRFToken: token}

	scale, ok, err := store.LoadScale(r.Context())
	if err != nil {
		log.Printf("Error loading display scale: %v", err)
	}
	if ok {
		resp.Scale = scale
		resp.Slider = quiz.SliderFromScale(scale)
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *QuizHandler) readRequest(w http.ResponseWriter, r *http.Request) (QuizRequest, quiz.HintMode, bool) {
	var req QuizRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequest, "", nil)
		return req, 0, false
	}
	hint := quiz.HintFirstLast
	if req.HintMode != nil {
		hint = quiz.ParseHintMode(*req.HintMode)
	}
	return req, hint, true
}

// Check grades an answer for the question at index
func (h *QuizHandler) Check(w http.ResponseWriter, r *http.Request) {
	mode, ok := quizMode(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	req, hint, ok := h.readRequest(w, r)
	if !ok {
		return
	}
	if req.Index == nil {
		respondWithError(w, http.StatusBadRequest, "Missing question index", "", nil)
		return
	}
	if err := validation.ValidateAnswer(req.Answer); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}

	c, _, _ := h.session(w, r, mode, hint)
	if c == nil {
		return
	}

	if err := c.Focus(*req.Index); err != nil {
		if errors.Is(err, quiz.ErrExhausted) {
			// nothing left to grade; the view says finished
			respondJSON(w, http.StatusOK, QuizResponse{View: c.View()})
			return
		}
		respondJSON(w, http.StatusConflict, QuizResponse{View: c.View()})
		return
	}

	if _, err := c.Check(r.Context(), req.Answer); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to save progress", "Error checking answer", err)
		return
	}
	respondJSON(w, http.StatusOK, QuizResponse{View: c.View()})
}

// Next moves on to another unanswered question
func (h *QuizHandler) Next(w http.ResponseWriter, r *http.Request) {
	mode, ok := quizMode(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	_, hint, ok := h.readRequest(w, r)
	if !ok {
		return
	}

	c, _, _ := h.session(w, r, mode, hint)
	if c == nil {
		return
	}
	if _, _, err := c.Next(r.Context()); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to save progress", "Error advancing quiz", err)
		return
	}
	respondJSON(w, http.StatusOK, QuizResponse{View: c.View()})
}

// Reset clears the client's progress for the mode
func (h *QuizHandler) Reset(w http.ResponseWriter, r *http.Request) {
	mode, ok := quizMode(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	_, hint, ok := h.readRequest(w, r)
	if !ok {
		return
	}

	c, _, _ := h.session(w, r, mode, hint)
	if c == nil {
		return
	}
	if err := c.Reset(r.Context()); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to reset progress", "Error resetting quiz", err)
		return
	}
	respondJSON(w, http.StatusOK, QuizResponse{View: c.View()})
}

// ToggleHint cycles the word quiz hint mode and re-renders the hint for
// the question at index
func (h *QuizHandler) ToggleHint(w http.ResponseWriter, r *http.Request) {
	req, hint, ok := h.readRequest(w, r)
	if !ok {
		return
	}

	c, _, _ := h.session(w, r, quiz.ModeWord, hint)
	if c == nil {
		return
	}
	if req.Index != nil {
		_ = c.Focus(*req.Index)
	}
	c.ToggleHint()
	respondJSON(w, http.StatusOK, QuizResponse{View: c.View()})
}

// GetCard returns the flashcard at ?index=. seen=1 hides the flip hint,
// flipped=1 shows the back.
func (h *QuizHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	client := GetClientFromContext(r.Context())
	if client == nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Missing client identity", errors.New("no client in context"))
		return
	}

	name := currentLibrary(r, client, h.libraryRepo)
	m, err := h.quizService.Load(r.Context(), client.ID, name)
	if errors.Is(err, service.ErrNoLibrary) {
		respondWithError(w, http.StatusNotFound, ErrNoLibrarySelected, "", nil)
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load cards", "Error loading library", err)
		return
	}

	pool, err := m.Pool(quiz.ModeFlashcard)
	if err != nil {
		respondWithError(w, http.StatusNotFound, err.Error(), "", nil)
		return
	}
	d, err := quiz.NewDeck(pool)
	if err != nil {
		respondWithError(w, http.StatusNotFound, err.Error(), "", nil)
		return
	}

	q := r.URL.Query()
	if v, err := strconv.Atoi(q.Get("index")); err == nil {
		d.Seek(v)
	}
	if q.Get("seen") == "1" {
		d.DismissHint()
	}
	if q.Get("flipped") == "1" {
		d.Flip()
	}

	respondJSON(w, http.StatusOK, CardResponse{Card: d.View(), CurrentLibrary: m.Library.Name})
}

// SaveScale stores the question panel scale from the slider position
func (h *QuizHandler) SaveScale(w http.ResponseWriter, r *http.Request) {
	var req ScaleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequest, "", nil)
		return
	}
	scale, err := quiz.ScaleFromSlider(req.Slider)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}

	store := h.stores.For(w, r, GetClientFromContext(r.Context()))
	if err := store.SaveScale(r.Context(), scale); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to save scale", "Error saving display scale", err)
		return
	}
	respondJSON(w, http.StatusOK, ScaleResponse{Scale: scale, Slider: req.Slider})
}
