package blog

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/daaffalbari/portfolio/internal/api"
)

const (
	defaultLimit = 6
	maxLimit     = 20
)

// Source is what the handler reads posts from.
type Source interface {
	Posts(ctx context.Context, limit int) ([]Post, error)
	PostBySlug(ctx context.Context, slug string) (*Post, error)
}

// Handler handles blog HTTP endpoints.
type Handler struct {
	src Source
}

func NewHandler(src Source) *Handler {
	return &Handler{src: src}
}

// List returns the newest posts. A feed failure yields an empty list.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = min(v, maxLimit)
		}
	}

	posts, err := h.src.Posts(r.Context(), limit)
	if err != nil {
		slog.Error("listing blog posts", "error", err)
		posts = []Post{}
	}
	api.JSON(w, http.StatusOK, posts)
}

// Get returns one post by slug.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.src.PostBySlug(r.Context(), slug)
	if errors.Is(err, ErrPostNotFound) {
		api.HandleError(w, api.NewNotFoundError("post not found"))
		return
	}
	if err != nil {
		slog.Error("getting blog post", "slug", slug, "error", err)
		api.HandleError(w, &api.AppError{Code: http.StatusBadGateway, Message: "blog feed unavailable"})
		return
	}
	api.JSON(w, http.StatusOK, post)
}
