package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAuthHandler_Register(t *testing.T) {
	env := newTestEnv(t)

	body, _ := json.Marshal(map[string]string{"email": "bob@x.com", "password": "pw", "username": "bob"})
	req := httptest.NewRequest("POST", "/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	env.authH.Register(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("Register status: got %d, want 201", rr.Code)
	}
	var out struct {
		Token string                 `json:"token"`
		User  map[string]interface{} `json:"user"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Token == "" || out.User["email"] != "bob@x.com" || out.User["username"] != "bob" || out.User["id"] == "" {
		t.Errorf("unexpected response: %+v", out)
	}
	if _, leaked := out.User["passwordHash"]; leaked {
		t.Error("password hash must not be returned")
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "bob@x.com", "bob")

	body, _ := json.Marshal(map[string]string{"email": "bob@x.com", "password": "pw2", "username": "bobby"})
	rr := httptest.NewRecorder()
	env.authH.Register(rr, httptest.NewRequest("POST", "/auth/register", bytes.NewReader(body)))

	if rr.Code != http.StatusConflict {
		t.Errorf("Register status: got %d, want 409", rr.Code)
	}
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	env := newTestEnv(t)

	body, _ := json.Marshal(map[string]string{"email": "bob@x.com"})
	rr := httptest.NewRecorder()
	env.authH.Register(rr, httptest.NewRequest("POST", "/auth/register", bytes.NewReader(body)))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Register status: got %d, want 400", rr.Code)
	}
	if msg := decodeMessage(t, rr); msg == "" {
		t.Error("expected a descriptive message")
	}
}

func TestAuthHandler_Register_BadJSON(t *testing.T) {
	env := newTestEnv(t)

	rr := httptest.NewRecorder()
	env.authH.Register(rr, httptest.NewRequest("POST", "/auth/register", bytes.NewReader([]byte("{"))))

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Register status: got %d, want 400", rr.Code)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "alice@x.com", "alice")

	body, _ := json.Marshal(map[string]string{"email": "alice@x.com", "password": "pw"})
	rr := httptest.NewRecorder()
	env.authH.Login(rr, httptest.NewRequest("POST", "/auth/login", bytes.NewReader(body)))

	if rr.Code != http.StatusOK {
		t.Fatalf("Login status: got %d, want 200", rr.Code)
	}
	var out struct {
		Token string `json:"token"`
		User  struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Token == "" || out.User.Username != "alice" || out.User.ID == "" {
		t.Errorf("unexpected response: token=%q user=%+v", out.Token, out.User)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "alice@x.com", "alice")

	for _, creds := range []map[string]string{
		{"email": "alice@x.com", "password": "wrong"},
		{"email": "nobody@x.com", "password": "pw"},
	} {
		body, _ := json.Marshal(creds)
		rr := httptest.NewRecorder()
		env.authH.Login(rr, httptest.NewRequest("POST", "/auth/login", bytes.NewReader(body)))

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("Login(%v) status: got %d, want 401", creds, rr.Code)
		}
		if msg := decodeMessage(t, rr); msg != "Invalid credentials" {
			t.Errorf("unexpected message: %q", msg)
		}
	}
}

func TestAuthHandler_Profile(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice@x.com", "alice")

	body, _ := json.Marshal(map[string]string{"title": "T", "content": "C"})
	rr := httptest.NewRecorder()
	env.postH.CreatePost(rr, asUser(httptest.NewRequest("POST", "/posts", bytes.NewReader(body)), alice))
	if rr.Code != http.StatusCreated {
		t.Fatalf("CreatePost status: got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	env.authH.Profile(rr, asUser(httptest.NewRequest("GET", "/auth/profile", nil), alice))
	if rr.Code != http.StatusOK {
		t.Fatalf("Profile status: got %d, want 200", rr.Code)
	}
	var prof struct {
		ID       string `json:"id"`
		Email    string `json:"email"`
		Username string `json:"username"`
		MyPosts  []struct {
			Title string `json:"title"`
		} `json:"myPosts"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&prof); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if prof.ID != alice.ID || prof.Email != "alice@x.com" || len(prof.MyPosts) != 1 || prof.MyPosts[0].Title != "T" {
		t.Errorf("unexpected profile: %+v", prof)
	}
}

func TestAuthHandler_Profile_NoClaims(t *testing.T) {
	env := newTestEnv(t)
	rr := httptest.NewRecorder()
	env.authH.Profile(rr, httptest.NewRequest("GET", "/auth/profile", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Profile status: got %d, want 401", rr.Code)
	}
}
