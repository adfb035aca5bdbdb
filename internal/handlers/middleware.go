package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"vocabdrill/internal/security"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	ClientContextKey    ContextKey = "client"
	RequestIDContextKey ContextKey = "request_id"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-Id"

// Client identifies the browser behind a request. UserID is zero for
// anonymous visitors.
type Client struct {
	ID     string
	UserID int64
}

// Middleware holds dependencies for middleware functions
type Middleware struct {
	tokens  *security.ClientTokens
	csrf    *security.CSRFGenerator
	limiter *security.RateLimiter
	// trustProxy keys rate limits on proxy headers instead of RemoteAddr
	trustProxy bool
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(tokens *security.ClientTokens, csrf *security.CSRFGenerator, limiter *security.RateLimiter, trustProxy bool) *Middleware {
	return &Middleware{
		tokens:     tokens,
		csrf:       csrf,
		limiter:    limiter,
		trustProxy: trustProxy,
	}
}

// ClientIdentity restores the client from its signed cookie, issuing a new
// anonymous identity when the cookie is missing or invalid
func (m *Middleware) ClientIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var client *Client
		if cookie, err := r.Cookie(ClientCookieName); err == nil {
			if claims, err := m.tokens.Parse(cookie.Value); err == nil {
				client = &Client{ID: claims.ClientID(), UserID: claims.UserID}
			}
		}

		if client == nil {
			client = &Client{ID: security.NewClientID()}
			token, err := m.tokens.Issue(client.ID, 0)
			if err != nil {
				respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error issuing client token", err)
				return
			}
			http.SetCookie(w, security.CreateSessionCookie(r, ClientCookieName, token, m.tokens.TTL()))
		}

		ctx := context.WithValue(r.Context(), ClientContextKey, client)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CSRFProtect requires a valid X-CSRFToken on unsafe methods. Must run
// after ClientIdentity.
func (m *Middleware) CSRFProtect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if security.IsSafeMethod(r.Method) {
			next(w, r)
			return
		}

		client := GetClientFromContext(r.Context())
		if client == nil || !m.csrf.ValidateToken(client.ID, r.Header.Get(security.CSRFHeader)) {
			respondWithError(w, http.StatusForbidden, ErrInvalidCSRFToken, "", nil)
			return
		}
		next(w, r)
	}
}

// RateLimit rejects clients that exceed their request budget
func (m *Middleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := security.GetClientIP(r, m.trustProxy)
		if !m.limiter.Allow(ip) {
			log.Printf("Rate limit exceeded for %s on %s", ip, r.URL.Path)
			respondWithError(w, http.StatusTooManyRequests, ErrTooManyRequests, "", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequestID tags each request with an id, reusing one supplied by a proxy
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), RequestIDContextKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Call next handler
		next.ServeHTTP(w, r)

		// Log request
		if id, ok := r.Context().Value(RequestIDContextKey).(string); ok {
			log.Printf("%s %s %s [%s]", r.Method, r.URL.Path, time.Since(start), id)
			return
		}
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// GetClientFromContext retrieves the client from the request context
func GetClientFromContext(ctx context.Context) *Client {
	client, ok := ctx.Value(ClientContextKey).(*Client)
	if !ok {
		return nil
	}
	return client
}
