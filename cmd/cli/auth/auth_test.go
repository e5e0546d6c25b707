package auth

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crucial707/blog-api/cmd/cli/config"
	"github.com/crucial707/blog-api/internal/models"
)

func TestLogin_SavesToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in["email"] != "a@x.com" || in["password"] != "pw" {
			t.Errorf("unexpected body: %v", in)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"token": "tok-123",
			"user":  models.PublicUser{ID: "u1", Email: "a@x.com", Username: "alice"},
		})
	}))
	defer srv.Close()

	t.Setenv("BLOG_API_URL", srv.URL)
	t.Setenv("BLOGCTL_TOKEN_FILE", filepath.Join(t.TempDir(), "token"))

	cmd := loginCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--email", "a@x.com", "--password", "pw"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(buf.String(), "alice") {
		t.Errorf("unexpected output: %s", buf.String())
	}

	token, err := config.ReadToken()
	if err != nil || token != "tok-123" {
		t.Fatalf("ReadToken: %q %v", token, err)
	}

	logout := logoutCmd()
	logout.SetOut(&buf)
	logout.SetArgs([]string{})
	if err := logout.Execute(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := config.ReadToken(); !errors.Is(err, config.ErrNotLoggedIn) {
		t.Errorf("after logout: got %v, want ErrNotLoggedIn", err)
	}
}

func TestProfile_RequiresLogin(t *testing.T) {
	t.Setenv("BLOGCTL_TOKEN_FILE", filepath.Join(t.TempDir(), "missing"))

	cmd := profileCmd()
	cmd.SetArgs([]string{})
	cmd.SetOut(&bytes.Buffer{})
	if err := cmd.Execute(); !errors.Is(err, config.ErrNotLoggedIn) {
		t.Fatalf("got %v, want ErrNotLoggedIn", err)
	}
}
