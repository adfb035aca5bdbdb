package security

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewClientID creates a new random identifier for an anonymous client
func NewClientID() string {
	return uuid.New().String()
}

// IsSecureRequest determines if the request is over HTTPS
// Checks TLS connection, X-Forwarded-Proto header (for reverse proxies), and URL scheme
func IsSecureRequest(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "https" {
		return true
	}
	return r.URL.Scheme == "https"
}

// CreateSessionCookie creates an HttpOnly cookie living for ttl
func CreateSessionCookie(r *http.Request, name, value string, ttl time.Duration) *http.Cookie {
	c := CreateScriptCookie(r, name, value, ttl)
	c.HttpOnly = true
	return c
}

// CreateScriptCookie creates a cookie page scripts can read, used for quiz
// progress and display preferences
func CreateScriptCookie(r *http.Request, name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
		Secure:   IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	}
}

// CreateDeleteCookie creates an already expired cookie that removes name
func CreateDeleteCookie(r *http.Request, name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Secure:   IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	}
}

// SetRawCookie adds c to the response without the double quotes net/http
// puts around values containing commas or spaces, so page scripts read
// values such as JSON arrays verbatim. Bytes a cookie value cannot carry
// are dropped.
func SetRawCookie(w http.ResponseWriter, c *http.Cookie) {
	value := strings.Map(func(r rune) rune {
		if r <= 0x20 || r >= 0x7f || r == '"' || r == ';' || r == '\\' {
			return -1
		}
		return r
	}, c.Value)

	attrs := *c
	attrs.Value = ""
	prefix := c.Name + "="
	w.Header().Add("Set-Cookie", prefix+value+strings.TrimPrefix(attrs.String(), prefix))
}
