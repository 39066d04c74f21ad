package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/jornaltgi/backend/internal/content"
	"github.com/jornaltgi/backend/internal/logging"
	"github.com/jornaltgi/backend/internal/models"
	"github.com/jornaltgi/backend/internal/repositories"
)

// VideoHandler provides the public and administrative video endpoints.
type VideoHandler struct {
	Videos VideoService
}

type videoCreateRequest struct {
	Title        string `json:"title"`
	URL          string `json:"url"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnail_url"`
	IsPublished  *bool  `json:"is_published"`
}

type videoUpdateRequest struct {
	Title        *string `json:"title"`
	URL          *string `json:"url"`
	Description  *string `json:"description"`
	ThumbnailURL *string `json:"thumbnail_url"`
	IsPublished  *bool   `json:"is_published"`
}

// List handles GET /api/videos, returning published videos only.
func (h VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	videos, err := h.Videos.ListPublished(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("list published videos", "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to list videos"})
		return
	}

	if videos == nil {
		videos = []models.Video{}
	}
	respondJSON(ctx, w, http.StatusOK, videos)
}

// ListAdmin handles GET /api/admin/videos, returning every video including drafts.
func (h VideoHandler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	videos, err := h.Videos.ListAll(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("list all videos", "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to list videos"})
		return
	}

	if videos == nil {
		videos = []models.Video{}
	}
	respondJSON(ctx, w, http.StatusOK, videos)
}

// Get handles GET /api/videos/{id}. Unpublished videos are reported as absent.
func (h VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(r)
	if !ok {
		respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "video not found"})
		return
	}

	video, err := h.Videos.GetPublished(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "video not found"})
			return
		}
		logging.FromContext(ctx).Error("get video", "error", err, "id", id)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch video"})
		return
	}

	respondJSON(ctx, w, http.StatusOK, video)
}

// Create handles POST /api/videos.
func (h VideoHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	var req videoCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid video payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	video, err := h.Videos.Create(ctx, content.VideoInput{
		Title:        req.Title,
		URL:          req.URL,
		Description:  req.Description,
		ThumbnailURL: req.ThumbnailURL,
		IsPublished:  req.IsPublished,
	})
	if err != nil {
		var ve *content.ValidationError
		if errors.As(err, &ve) {
			logger.Warn("video validation failed", "field", ve.Field)
			respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": ve.Error()})
			return
		}
		logger.Error("create video", "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to create video"})
		return
	}

	respondJSON(ctx, w, http.StatusCreated, video)
}

// Update handles PUT /api/videos/{id} with partial payload semantics.
func (h VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	id, ok := pathID(r)
	if !ok {
		respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "video not found"})
		return
	}

	var req videoUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid video payload", "error", err, "id", id)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	video, err := h.Videos.Update(ctx, id, content.VideoPatch{
		Title:        req.Title,
		URL:          req.URL,
		Description:  req.Description,
		ThumbnailURL: req.ThumbnailURL,
		IsPublished:  req.IsPublished,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "video not found"})
			return
		}
		logger.Error("update video", "error", err, "id", id)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to update video"})
		return
	}

	respondJSON(ctx, w, http.StatusOK, video)
}

// Delete handles DELETE /api/videos/{id}.
func (h VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(r)
	if !ok {
		respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "video not found"})
		return
	}

	if err := h.Videos.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "video not found"})
			return
		}
		logging.FromContext(ctx).Error("delete video", "error", err, "id", id)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to delete video"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pathID parses the {id} path segment of the matched route.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
