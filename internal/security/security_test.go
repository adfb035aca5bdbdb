package security

import (
	"crypto/tls"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestCSRFTokens(t *testing.T) {
	gen := NewCSRFGenerator("secret")

	token, err := gen.GenerateToken("client-1")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if !gen.ValidateToken("client-1", token) {
		t.Error("token should validate for its own client")
	}
	if gen.ValidateToken("client-2", token) {
		t.Error("token should not validate for another client")
	}
	if NewCSRFGenerator("other").ValidateToken("client-1", token) {
		t.Error("token should not validate under another secret")
	}
	if _, err := gen.GenerateToken(""); err == nil {
		t.Error("expected error for empty client ID")
	}
	if gen.ValidateToken("client-1", "") {
		t.Error("empty token must not validate")
	}
}

func TestIsSafeMethod(t *testing.T) {
	tests := map[string]bool{
		"GET": true, "HEAD": true, "OPTIONS": true, "TRACE": true,
		"POST": false, "PUT": false, "DELETE": false, "PATCH": false,
	}
	for method, want := range tests {
		if got := IsSafeMethod(method); got != want {
			t.Errorf("IsSafeMethod(%s) = %v, want %v", method, got, want)
		}
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 3)

	for i := 0; i < 3; i++ {
		if !rl.Allow("a") {
			t.Fatalf("request %d within burst was rejected", i+1)
		}
	}
	if rl.Allow("a") {
		t.Error("request beyond burst should be rejected")
	}
	if !rl.Allow("b") {
		t.Error("other keys have their own bucket")
	}

	if removed := rl.Cleanup(time.Now()); removed != 0 {
		t.Errorf("Cleanup removed %d fresh keys", removed)
	}
	if removed := rl.Cleanup(time.Now().Add(2 * time.Hour)); removed != 2 {
		t.Errorf("Cleanup removed %d idle keys, want 2", removed)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remote     string
		trustProxy bool
		want       string
	}{
		{"forwarded ignored without proxy", map[string]string{"X-Forwarded-For": "10.0.0.1"}, "1.2.3.4:80", false, "1.2.3.4"},
		{"real ip ignored without proxy", map[string]string{"X-Real-IP": "10.0.0.9"}, "1.2.3.4:80", false, "1.2.3.4"},
		{"forwarded last hop behind proxy", map[string]string{"X-Forwarded-For": "6.6.6.6, 10.0.0.2"}, "1.2.3.4:80", true, "10.0.0.2"},
		{"real ip behind proxy", map[string]string{"X-Real-IP": "10.0.0.9", "X-Forwarded-For": "10.0.0.2"}, "1.2.3.4:80", true, "10.0.0.9"},
		{"proxy without headers", nil, "1.2.3.4:80", true, "1.2.3.4"},
		{"remote addr", nil, "1.2.3.4:80", false, "1.2.3.4"},
		{"no port", nil, "1.2.3.4", false, "1.2.3.4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := GetClientIP(r, tt.trustProxy); got != tt.want {
				t.Errorf("GetClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCookies(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)

	c := CreateSessionCookie(r, "vd_client", "x", time.Hour)
	if !c.HttpOnly || c.Secure || c.MaxAge != 3600 || c.Path != "/" {
		t.Errorf("unexpected session cookie: %+v", c)
	}

	s := CreateScriptCookie(r, "correctCount", "3", time.Hour)
	if s.HttpOnly {
		t.Error("script cookie must be readable by page scripts")
	}

	d := CreateDeleteCookie(r, "correctCount")
	if d.MaxAge >= 0 || d.Value != "" {
		t.Errorf("unexpected delete cookie: %+v", d)
	}

	secure := httptest.NewRequest("GET", "/", nil)
	secure.TLS = &tls.ConnectionState{}
	if !CreateSessionCookie(secure, "a", "b", time.Hour).Secure {
		t.Error("TLS requests should get secure cookies")
	}
	proxied := httptest.NewRequest("GET", "/", nil)
	proxied.Header.Set("X-Forwarded-Proto", "https")
	if !IsSecureRequest(proxied) {
		t.Error("X-Forwarded-Proto https should count as secure")
	}
}

func TestSetRawCookie(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"json array", "[0,1]", "usedIndices=[0,1]; Path=/; "},
		{"strips unsafe bytes", "[0, \"1\";]", "usedIndices=[0,1]; Path=/; "},
		{"empty", "", "usedIndices=; Path=/; "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			SetRawCookie(w, CreateScriptCookie(r, "usedIndices", tt.value, time.Hour))
			got := w.Header().Get("Set-Cookie")
			if !strings.HasPrefix(got, tt.want) {
				t.Errorf("Set-Cookie = %q, want prefix %q", got, tt.want)
			}
			if !strings.Contains(got, "Max-Age=3600") || !strings.Contains(got, "SameSite=Lax") {
				t.Errorf("Set-Cookie = %q lost its attributes", got)
			}
		})
	}

	// the header still parses back as a normal cookie
	w := httptest.NewRecorder()
	SetRawCookie(w, CreateScriptCookie(r, "usedIndices", "[3,4]", time.Hour))
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != "[3,4]" {
		t.Errorf("parsed cookies = %+v", cookies)
	}
}

func TestClientTokens(t *testing.T) {
	tokens := NewClientTokens("secret", time.Hour)
	id := NewClientID()

	token, err := tokens.Issue(id, 42)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := tokens.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.ClientID() != id || claims.UserID != 42 {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := NewClientTokens("other", time.Hour).Parse(token); err != ErrInvalidClientToken {
		t.Errorf("wrong secret: err = %v", err)
	}
	if _, err := tokens.Parse("not-a-token"); err != ErrInvalidClientToken {
		t.Errorf("garbage: err = %v", err)
	}

	expired := NewClientTokens("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := expired.Parse(token); err != ErrInvalidClientToken {
		t.Errorf("expired: err = %v", err)
	}

	if _, err := tokens.Issue("", 0); err == nil {
		t.Error("expected error for empty client ID")
	}
}
