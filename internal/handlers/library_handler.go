package handlers

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"vocabdrill/internal/catalog"
	"vocabdrill/internal/libraryapi"
	"vocabdrill/internal/repository"
	"vocabdrill/internal/security"
	"vocabdrill/internal/validation"
)

// LibraryHandler serves the library browser and forwards library actions
// to the library site
type LibraryHandler struct {
	libraryRepo *repository.LibraryRepository
	api         *libraryapi.Client
	stores      *Stores
	perPage     int
	quotes      []string
	loginURL    string
}

// NewLibraryHandler creates a new library handler
func NewLibraryHandler(libraryRepo *repository.LibraryRepository, api *libraryapi.Client, stores *Stores, perPage int, quotes []string, loginURL string) *LibraryHandler {
	return &LibraryHandler{
		libraryRepo: libraryRepo,
		api:         api,
		stores:      stores,
		perPage:     perPage,
		quotes:      quotes,
		loginURL:    loginURL,
	}
}

func (h *LibraryHandler) catalogFor(r *http.Request, client *Client) (*catalog.Catalog, error) {
	var viewerID int64
	if client != nil {
		viewerID = client.UserID
	}
	items, err := h.libraryRepo.ListVisibleLibraries(r.Context(), viewerID)
	if err != nil {
		return nil, err
	}
	return catalog.New(items, catalog.Options{
		PerPage: h.perPage,
		Quotes:  h.quotes,
		Current: currentLibrary(r, client, h.libraryRepo),
	}), nil
}

// List returns one page of libraries matching ?q=
func (h *LibraryHandler) List(w http.ResponseWriter, r *http.Request) {
	client := GetClientFromContext(r.Context())
	c, err := h.catalogFor(r, client)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load libraries", "Error listing libraries", err)
		return
	}

	respondJSON(w, http.StatusOK, c.Page(r.URL.Query().Get("q"), pageParam(r)))
}

// pageParam reads ?page=, defaulting to the first page
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		return 1
	}
	return page
}

// Select switches the current library and clears quiz progress for both
// quizzes
func (h *LibraryHandler) Select(w http.ResponseWriter, r *http.Request) {
	name, ok := libraryName(w, r)
	if !ok {
		return
	}
	client := GetClientFromContext(r.Context())

	body, err := h.api.SwitchLibrary(r.Context(), libraryapi.CredentialsFrom(r), name)
	if err != nil {
		h.respondUpstreamError(w, "Error changing library", err)
		return
	}

	if err := clearAll(r.Context(), h.stores.For(w, r, client)); err != nil {
		log.Printf("Error clearing progress after library switch: %v", err)
	}
	http.SetCookie(w, security.CreateScriptCookie(r, CurrentLibraryCookieName, url.PathEscape(name), CurrentLibraryTTL))

	resp := LibraryActionResponse{OK: true, Message: body, CurrentLibrary: name}
	if c, err := h.catalogFor(r, client); err != nil {
		log.Printf("Error listing libraries after switch: %v", err)
	} else {
		c.Select(name)
		p := c.Page(r.URL.Query().Get("q"), pageParam(r))
		resp.Page = &p
	}
	respondJSON(w, http.StatusOK, resp)
}

// ToggleFavorite favourites or unfavourites a library. Anonymous users are
// sent to the login page.
func (h *LibraryHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	name, ok := libraryName(w, r)
	if !ok {
		return
	}
	client := GetClientFromContext(r.Context())

	c, err := h.catalogFor(r, client)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load libraries", "Error listing libraries", err)
		return
	}

	body, err := h.api.ToggleFavorite(r.Context(), libraryapi.CredentialsFrom(r), name)
	if errors.Is(err, libraryapi.ErrUnauthorized) {
		respondJSON(w, http.StatusUnauthorized, RedirectResponse{Redirect: h.loginURL})
		return
	}
	if err != nil {
		h.respondUpstreamError(w, "Error toggling favorite", err)
		return
	}

	resp := LibraryActionResponse{OK: true, Message: body, CurrentLibrary: c.Current()}
	if item, ok := c.ToggleFavorite(name); ok {
		resp.Library = &item
	}
	p := c.Page(r.URL.Query().Get("q"), pageParam(r))
	resp.Page = &p

	respondJSON(w, http.StatusOK, resp)
}

// Delete removes a library. Upstream errors are passed back verbatim.
func (h *LibraryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name, ok := libraryName(w, r)
	if !ok {
		return
	}
	client := GetClientFromContext(r.Context())

	body, err := h.api.DeleteLibrary(r.Context(), libraryapi.CredentialsFrom(r), name)
	if err != nil {
		h.respondUpstreamError(w, "Error deleting library", err)
		return
	}

	if currentLibrary(r, client, h.libraryRepo) == name {
		http.SetCookie(w, security.CreateDeleteCookie(r, CurrentLibraryCookieName))
	}
	respondJSON(w, http.StatusOK, LibraryActionResponse{OK: true, Message: body})
}

// libraryName reads and validates the {name} path segment
func libraryName(w http.ResponseWriter, r *http.Request) (string, bool) {
	name := r.PathValue("name")
	if err := validation.ValidateLibraryName(name); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return "", false
	}
	return name, true
}

// respondUpstreamError keeps the upstream status and text for API errors
// and reports network failures as 502
func (h *LibraryHandler) respondUpstreamError(w http.ResponseWriter, logMsg string, err error) {
	var apiErr *libraryapi.Error
	if errors.As(err, &apiErr) {
		log.Printf("%s: status %d: %s", logMsg, apiErr.Status, apiErr.Body)
		respondJSON(w, apiErr.Status, map[string]string{"error": apiErr.Error()})
		return
	}
	respondWithError(w, http.StatusBadGateway, ErrUpstreamUnavailable, logMsg, err)
}
