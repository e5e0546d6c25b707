package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/crucial707/blog-api/internal/auth"
	"github.com/crucial707/blog-api/internal/middleware"
	"github.com/crucial707/blog-api/internal/service"
	"github.com/crucial707/blog-api/internal/store"
	"github.com/go-chi/chi/v5"
)

type testEnv struct {
	store *store.Store
	auth  *auth.Authenticator
	authH *AuthHandler
	postH *PostHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	a := auth.New([]byte("test-secret"), 0)
	return &testEnv{
		store: st,
		auth:  a,
		authH: &AuthHandler{Users: service.NewUserService(st, a)},
		postH: &PostHandler{Posts: service.NewPostService(st)},
	}
}

// requestWithChiURLParams returns a request with chi route context and URL params set.
func requestWithChiURLParams(method, path string, body []byte, params map[string]string) *http.Request {
	var r *http.Request
	if body != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	return r
}

// asUser attaches claims as JWTMiddleware would.
func asUser(r *http.Request, c *auth.Claims) *http.Request {
	return r.WithContext(middleware.WithClaims(r.Context(), c))
}

// registerUser goes through the handler and returns the verified claims.
func (e *testEnv) registerUser(t *testing.T, email, username string) *auth.Claims {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": email, "password": "pw", "username": username})
	rr := httptest.NewRecorder()
	e.authH.Register(rr, httptest.NewRequest("POST", "/auth/register", bytes.NewReader(body)))
	if rr.Code != http.StatusCreated {
		t.Fatalf("register %s: got %d: %s", email, rr.Code, rr.Body.String())
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode register: %v", err)
	}
	claims, err := e.auth.VerifyToken(out.Token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	return claims
}

func decodeMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var out map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	msg, _ := out["message"].(string)
	return msg
}
