// Package content implements the editorial services for videos and articles.
// The services are auth-agnostic: session enforcement happens at the HTTP
// layer, so everything here can be exercised with plain repository stubs.
package content

import (
	"context"
	"strings"
	"time"

	"github.com/jornaltgi/backend/internal/logging"
	"github.com/jornaltgi/backend/internal/models"
	"github.com/jornaltgi/backend/internal/repositories"
)

// VideoRepository captures the persistence operations required by the video service.
type VideoRepository interface {
	Insert(ctx context.Context, video models.Video) (int64, error)
	Find(ctx context.Context, id int64) (models.Video, error)
	ListPublished(ctx context.Context) ([]models.Video, error)
	ListAll(ctx context.Context) ([]models.Video, error)
	Update(ctx context.Context, video models.Video) error
	Delete(ctx context.Context, id int64) error
}

// VideoInput carries the fields accepted when creating a video.
type VideoInput struct {
	Title        string
	URL          string
	Description  string
	ThumbnailURL string
	IsPublished  *bool
}

// VideoPatch carries a partial update; nil fields keep their stored value.
type VideoPatch struct {
	Title        *string
	URL          *string
	Description  *string
	ThumbnailURL *string
	IsPublished  *bool
}

// VideoService implements CRUD over videos with publish-state filtering.
type VideoService struct {
	repo VideoRepository

	// NowFunc allows tests to control creation timestamps. Defaults to time.Now.
	NowFunc func() time.Time
}

// NewVideoService constructs a video service over the provided repository.
func NewVideoService(repo VideoRepository) *VideoService {
	if repo == nil {
		panic("content: video repository must not be nil")
	}
	return &VideoService{repo: repo}
}

// ListPublished returns published videos, newest first.
func (s *VideoService) ListPublished(ctx context.Context) ([]models.Video, error) {
	return s.repo.ListPublished(ctx)
}

// ListAll returns every video including unpublished drafts, newest first.
func (s *VideoService) ListAll(ctx context.Context) ([]models.Video, error) {
	return s.repo.ListAll(ctx)
}

// Get returns a video by id regardless of publish state.
func (s *VideoService) Get(ctx context.Context, id int64) (models.Video, error) {
	return s.repo.Find(ctx, id)
}

// GetPublished returns a video by id, treating unpublished rows as absent so
// draft existence is not leaked to unauthenticated callers.
func (s *VideoService) GetPublished(ctx context.Context, id int64) (models.Video, error) {
	video, err := s.repo.Find(ctx, id)
	if err != nil {
		return models.Video{}, err
	}
	if !video.IsPublished {
		return models.Video{}, repositories.ErrNotFound
	}
	return video, nil
}

// Create validates the input, applies defaults and stores a new video.
func (s *VideoService) Create(ctx context.Context, input VideoInput) (models.Video, error) {
	ctx, span := logging.StartSpan(ctx, "content.video.create")
	defer span.End()

	if strings.TrimSpace(input.Title) == "" {
		return models.Video{}, &ValidationError{Field: "title"}
	}
	if strings.TrimSpace(input.URL) == "" {
		return models.Video{}, &ValidationError{Field: "url"}
	}

	video := models.Video{
		Title:        input.Title,
		URL:          input.URL,
		Description:  input.Description,
		ThumbnailURL: input.ThumbnailURL,
		CreatedAt:    s.now(),
		IsPublished:  true,
	}
	if input.IsPublished != nil {
		video.IsPublished = *input.IsPublished
	}

	id, err := s.repo.Insert(ctx, video)
	if err != nil {
		return models.Video{}, err
	}

	video.ID = id
	return video, nil
}

// Update applies the non-nil fields of the patch to an existing video. An
// empty patch leaves the row untouched but still reports NotFound for absent ids.
func (s *VideoService) Update(ctx context.Context, id int64, patch VideoPatch) (models.Video, error) {
	ctx, span := logging.StartSpan(ctx, "content.video.update")
	defer span.End()

	video, err := s.repo.Find(ctx, id)
	if err != nil {
		return models.Video{}, err
	}

	if patch.Title != nil {
		video.Title = *patch.Title
	}
	if patch.URL != nil {
		video.URL = *patch.URL
	}
	if patch.Description != nil {
		video.Description = *patch.Description
	}
	if patch.ThumbnailURL != nil {
		video.ThumbnailURL = *patch.ThumbnailURL
	}
	if patch.IsPublished != nil {
		video.IsPublished = *patch.IsPublished
	}

	if err := s.repo.Update(ctx, video); err != nil {
		return models.Video{}, err
	}

	return video, nil
}

// Delete permanently removes a video.
func (s *VideoService) Delete(ctx context.Context, id int64) error {
	ctx, span := logging.StartSpan(ctx, "content.video.delete")
	defer span.End()

	return s.repo.Delete(ctx, id)
}

func (s *VideoService) now() time.Time {
	if s.NowFunc != nil {
		return s.NowFunc().UTC()
	}
	return time.Now().UTC()
}
