package handlers

import (
	"context"
	"net/http"

	"github.com/crucial707/blog-api/internal/models"
)

// ServiceName is reported by GET /.
const ServiceName = "blog-api"

// Loader is the read side of the store, used for readiness.
type Loader interface {
	Load(ctx context.Context) (*models.Document, error)
}

func Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "service": ServiceName})
}

func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports 200 when the document can be loaded, 503 otherwise.
func Ready(store Loader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := store.Load(r.Context()); err != nil {
			JSONError(w, "Store unavailable", http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
