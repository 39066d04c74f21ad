package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jornaltgi/backend/internal/content"
	"github.com/jornaltgi/backend/internal/logging"
	"github.com/jornaltgi/backend/internal/models"
	"github.com/jornaltgi/backend/internal/repositories"
)

// ArticleHandler provides the public and administrative article endpoints.
type ArticleHandler struct {
	Articles ArticleService
}

type articleCreateRequest struct {
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	Content     string `json:"content"`
	IsPublished *bool  `json:"is_published"`
}

type articleUpdateRequest struct {
	Title       *string `json:"title"`
	Summary     *string `json:"summary"`
	Content     *string `json:"content"`
	IsPublished *bool   `json:"is_published"`
}

// List handles GET /api/articles, returning published articles only.
func (h ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	articles, err := h.Articles.ListPublished(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("list published articles", "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to list articles"})
		return
	}

	if articles == nil {
		articles = []models.Article{}
	}
	respondJSON(ctx, w, http.StatusOK, articles)
}

// ListAdmin handles GET /api/admin/articles, returning every article including drafts.
func (h ArticleHandler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	articles, err := h.Articles.ListAll(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("list all articles", "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to list articles"})
		return
	}

	if articles == nil {
		articles = []models.Article{}
	}
	respondJSON(ctx, w, http.StatusOK, articles)
}

// Get handles GET /api/articles/{id}. Unpublished articles are reported as absent.
func (h ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(r)
	if !ok {
		respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "article not found"})
		return
	}

	article, err := h.Articles.GetPublished(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "article not found"})
			return
		}
		logging.FromContext(ctx).Error("get article", "error", err, "id", id)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch article"})
		return
	}

	respondJSON(ctx, w, http.StatusOK, article)
}

// Create handles POST /api/articles.
func (h ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	var req articleCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid article payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	article, err := h.Articles.Create(ctx, content.ArticleInput{
		Title:       req.Title,
		Summary:     req.Summary,
		Content:     req.Content,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		var ve *content.ValidationError
		if errors.As(err, &ve) {
			logger.Warn("article validation failed", "field", ve.Field)
			respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": ve.Error()})
			return
		}
		logger.Error("create article", "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to create article"})
		return
	}

	respondJSON(ctx, w, http.StatusCreated, article)
}

// Update handles PUT /api/articles/{id} with partial payload semantics.
func (h ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	id, ok := pathID(r)
	if !ok {
		respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "article not found"})
		return
	}

	var req articleUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid article payload", "error", err, "id", id)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	article, err := h.Articles.Update(ctx, id, content.ArticlePatch{
		Title:       req.Title,
		Summary:     req.Summary,
		Content:     req.Content,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "article not found"})
			return
		}
		logger.Error("update article", "error", err, "id", id)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to update article"})
		return
	}

	respondJSON(ctx, w, http.StatusOK, article)
}

// Delete handles DELETE /api/articles/{id}.
func (h ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(r)
	if !ok {
		respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "article not found"})
		return
	}

	if err := h.Articles.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "article not found"})
			return
		}
		logging.FromContext(ctx).Error("delete article", "error", err, "id", id)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to delete article"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
