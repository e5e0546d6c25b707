package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crucial707/blog-api/internal/auth"
)

type stubVerifier struct {
	claims *auth.Claims
	err    error
}

func (s stubVerifier) VerifyToken(string) (*auth.Claims, error) { return s.claims, s.err }

func decodeMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var out map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out["message"]
}

func TestJWTMiddleware(t *testing.T) {
	var seen *auth.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetClaims(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	cases := []struct {
		name     string
		header   string
		verifier TokenVerifier
		status   int
		message  string
	}{
		{"no header", "", stubVerifier{}, http.StatusUnauthorized, "Missing token"},
		{"not bearer", "Basic abc", stubVerifier{}, http.StatusUnauthorized, "Missing token"},
		{"invalid", "Bearer bad", stubVerifier{err: auth.ErrInvalidToken}, http.StatusUnauthorized, "Invalid token"},
		{"valid", "Bearer good", stubVerifier{claims: &auth.Claims{ID: "u1", Username: "alice"}}, http.StatusOK, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest("GET", "/auth/profile", nil)
			if c.header != "" {
				req.Header.Set("Authorization", c.header)
			}
			rr := httptest.NewRecorder()
			JWTMiddleware(c.verifier)(next).ServeHTTP(rr, req)

			if rr.Code != c.status {
				t.Fatalf("status: got %d, want %d", rr.Code, c.status)
			}
			if c.status != http.StatusOK {
				if msg := decodeMessage(t, rr); msg != c.message {
					t.Errorf("message: got %q, want %q", msg, c.message)
				}
				return
			}
			if seen == nil || seen.ID != "u1" {
				t.Errorf("claims not propagated: %+v", seen)
			}
		})
	}
}

func TestIPRateLimiter(t *testing.T) {
	lim := NewIPRateLimiter(0, 2)
	h := lim.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("POST", "/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:" + []string{"1111", "2222", "3333"}[i]
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	if codes[0] != 200 || codes[1] != 200 || codes[2] != http.StatusTooManyRequests {
		t.Errorf("unexpected codes: %v", codes)
	}

	other := httptest.NewRequest("POST", "/auth/login", nil)
	other.RemoteAddr = "10.0.0.2:1111"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, other)
	if rr.Code != http.StatusOK {
		t.Errorf("other IP: got %d, want 200", rr.Code)
	}
}

func TestRecoverer(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := Recoverer(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(errors.New("boom"))
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want 500", rr.Code)
	}
	if msg := decodeMessage(t, rr); msg != "Internal server error" {
		t.Errorf("message: got %q", msg)
	}
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"https://app.example"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("OPTIONS", "/posts", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Errorf("preflight status: got %d, want 204", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Errorf("allow origin: got %q", got)
	}

	req = httptest.NewRequest("GET", "/posts", nil)
	req.Header.Set("Origin", "https://evil.example")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unexpected allow origin for unlisted origin: %q", got)
	}
}
