// Package progress provides the quiz.ProgressStore backends: browser cookies
// compatible with the page scripts, and SQL rows keyed by client ID.
package progress

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"vocabdrill/internal/quiz"
	"vocabdrill/internal/security"
)

// CookieStore reads progress from the request cookies and writes changes to
// the response. It is scoped to a single request.
type CookieStore struct {
	w       http.ResponseWriter
	r       *http.Request
	ttl     time.Duration
	pending map[string]*string // nil value means deleted
}

var (
	_ quiz.ProgressStore = (*CookieStore)(nil)
	_ quiz.ScaleStore    = (*CookieStore)(nil)
)

// NewCookieStore creates a store for one request/response pair
func NewCookieStore(w http.ResponseWriter, r *http.Request, ttl time.Duration) *CookieStore {
	if ttl <= 0 {
		ttl = quiz.ProgressTTL
	}
	return &CookieStore{w: w, r: r, ttl: ttl, pending: make(map[string]*string)}
}

// lookup returns the value written earlier in this request, falling back to
// the incoming cookie
func (s *CookieStore) lookup(name string) (string, bool) {
	if v, ok := s.pending[name]; ok {
		if v == nil {
			return "", false
		}
		return *v, true
	}
	c, err := s.r.Cookie(name)
	if err != nil {
		return "", false
	}
	return decodeValue(c.Value), true
}

func (s *CookieStore) set(name, value string) {
	s.pending[name] = &value
	security.SetRawCookie(s.w, security.CreateScriptCookie(s.r, name, value, s.ttl))
}

func (s *CookieStore) remove(name string) {
	s.pending[name] = nil
	http.SetCookie(s.w, security.CreateDeleteCookie(s.r, name))
}

// Load restores every field it can parse. Malformed fields are treated as absent.
func (s *CookieStore) Load(_ context.Context, ns quiz.Namespace) (quiz.Snapshot, error) {
	var snap quiz.Snapshot

	if v, ok := s.lookup(ns.Key(quiz.KeyCorrect)); ok {
		snap.Correct, snap.HasCorrect = parseCount(v)
	}
	if v, ok := s.lookup(ns.Key(quiz.KeyWrong)); ok {
		snap.Wrong, snap.HasWrong = parseCount(v)
	}
	if v, ok := s.lookup(ns.Key(quiz.KeyUsed)); ok {
		snap.Used, snap.HasUsed = parseIndices(v)
	}
	return snap, nil
}

// Save writes all three fields for ns
func (s *CookieStore) Save(_ context.Context, ns quiz.Namespace, st quiz.State) error {
	used, err := json.Marshal(st.Used)
	if err != nil {
		return err
	}
	s.set(ns.Key(quiz.KeyCorrect), strconv.Itoa(st.Correct))
	s.set(ns.Key(quiz.KeyWrong), strconv.Itoa(st.Wrong))
	s.set(ns.Key(quiz.KeyUsed), string(used))
	return nil
}

// Clear expires the three fields for ns
func (s *CookieStore) Clear(_ context.Context, ns quiz.Namespace) error {
	for _, field := range []string{quiz.KeyCorrect, quiz.KeyWrong, quiz.KeyUsed} {
		s.remove(ns.Key(field))
	}
	return nil
}

// LoadScale returns the saved display scale, if any
func (s *CookieStore) LoadScale(_ context.Context) (float64, bool, error) {
	v, ok := s.lookup(quiz.KeyScale)
	if !ok {
		return 0, false, nil
	}
	scale, err := strconv.ParseFloat(v, 64)
	if err != nil || !quiz.ValidScale(scale) {
		return 0, false, nil
	}
	return scale, true, nil
}

// SaveScale writes the display scale
func (s *CookieStore) SaveScale(_ context.Context, scale float64) error {
	if !quiz.ValidScale(scale) {
		return quiz.ErrInvalidScale
	}
	s.set(quiz.KeyScale, strconv.FormatFloat(scale, 'f', -1, 64))
	return nil
}

// decodeValue undoes quoting left by older writers and the percent-encoding
// some scripts apply
func decodeValue(v string) string {
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		v = v[1 : len(v)-1]
	}
	if strings.Contains(v, "%") {
		if unescaped, err := url.QueryUnescape(v); err == nil {
			v = unescaped
		}
	}
	return v
}

func parseCount(v string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func parseIndices(v string) (quiz.IndexSet, bool) {
	var set quiz.IndexSet
	if err := json.Unmarshal([]byte(v), &set); err != nil {
		return quiz.IndexSet{}, false
	}
	return set, true
}
