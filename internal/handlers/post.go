package handlers

import (
	"net/http"

	"github.com/crucial707/blog-api/internal/auth"
	"github.com/crucial707/blog-api/internal/middleware"
	"github.com/crucial707/blog-api/internal/service"
	"github.com/go-chi/chi/v5"
)

type PostHandler struct {
	Posts *service.PostService
}

// caller returns the authenticated claims or answers 401.
func caller(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		JSONError(w, "Missing token", http.StatusUnauthorized)
	}
	return claims, ok
}

// ==========================
// List Posts
// ==========================
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Posts.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// ==========================
// Get Post
// ==========================
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.Posts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// ==========================
// Create Post
// ==========================
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	var input service.PostInput
	if !decodeJSON(w, r, &input) {
		return
	}

	post, err := h.Posts.Create(r.Context(), claims, input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

// ==========================
// Update Post
// ==========================
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	var input service.PostUpdate
	if !decodeJSON(w, r, &input) {
		return
	}

	post, err := h.Posts.Update(r.Context(), claims.ID, chi.URLParam(r, "id"), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// ==========================
// Delete Post
// ==========================
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}

	post, err := h.Posts.Delete(r.Context(), claims.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// ==========================
// Like / Unlike
// ==========================
func (h *PostHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}

	res, err := h.Posts.ToggleLike(r.Context(), claims.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ==========================
// Add Comment
// ==========================
func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}
	var input service.CommentInput
	if !decodeJSON(w, r, &input) {
		return
	}

	comment, err := h.Posts.AddComment(r.Context(), claims, chi.URLParam(r, "id"), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}
