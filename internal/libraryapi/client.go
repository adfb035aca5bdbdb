// Package libraryapi is a client for the vocabulary site's library endpoints.
// Requests are made on behalf of a browser: its cookies and CSRF token are
// forwarded and the upstream site does the authentication.
package libraryapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vocabdrill/internal/security"
)

// ErrUnauthorized matches errors for requests the upstream rejected with 401
var ErrUnauthorized = errors.New("not signed in")

// maxErrorBody bounds how much of an error response is kept
const maxErrorBody = 64 << 10

// Error is a non-2xx upstream response
type Error struct {
	Status int
	Body   string
}

func (e *Error) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("library api returned status %d", e.Status)
	}
	return e.Body
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses
func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// Credentials are the browser values forwarded upstream
type Credentials struct {
	CSRFToken string
	Cookies   []*http.Cookie
}

// CredentialsFrom copies the CSRF header and cookies from an incoming request
func CredentialsFrom(r *http.Request) Credentials {
	return Credentials{
		CSRFToken: r.Header.Get(security.CSRFHeader),
		Cookies:   r.Cookies(),
	}
}

// Client talks to the library endpoints under baseURL
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client with the given request timeout
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SwitchLibrary makes name the signed-in user's current library
func (c *Client) SwitchLibrary(ctx context.Context, creds Credentials, name string) (string, error) {
	return c.do(ctx, creds, http.MethodPut, "/api/change_user_library/"+url.PathEscape(name))
}

// ToggleFavorite adds or removes name from the user's favourites
func (c *Client) ToggleFavorite(ctx context.Context, creds Credentials, name string) (string, error) {
	return c.do(ctx, creds, http.MethodPut, "/api/favorites/"+url.PathEscape(name))
}

// DeleteLibrary deletes a library the user owns
func (c *Client) DeleteLibrary(ctx context.Context, creds Credentials, name string) (string, error) {
	return c.do(ctx, creds, http.MethodDelete, "/api/library/"+url.PathEscape(name))
}

// do sends the request and returns the response body
func (c *Client) do(ctx context.Context, creds Credentials, method, path string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	if !security.IsSafeMethod(method) && creds.CSRFToken != "" {
		req.Header.Set(security.CSRFHeader, creds.CSRFToken)
	}
	for _, cookie := range creds.Cookies {
		req.AddCookie(cookie)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach library api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return "", fmt.Errorf("failed to read library api response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &Error{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return string(body), nil
}
