package handlers

import (
	"context"

	"github.com/jornaltgi/backend/internal/auth"
	"github.com/jornaltgi/backend/internal/content"
	"github.com/jornaltgi/backend/internal/models"
)

// SessionService issues, verifies and revokes session tokens.
type SessionService interface {
	Login(ctx context.Context, username, password string) (auth.Session, error)
	Check(ctx context.Context, token string) (string, bool)
	Logout(ctx context.Context, token string)
}

// SessionChecker is the read-only view of SessionService needed to gate routes.
type SessionChecker interface {
	Check(ctx context.Context, token string) (string, bool)
}

// VideoService captures the content operations required by the video handlers.
type VideoService interface {
	ListPublished(ctx context.Context) ([]models.Video, error)
	ListAll(ctx context.Context) ([]models.Video, error)
	Get(ctx context.Context, id int64) (models.Video, error)
	GetPublished(ctx context.Context, id int64) (models.Video, error)
	Create(ctx context.Context, input content.VideoInput) (models.Video, error)
	Update(ctx context.Context, id int64, patch content.VideoPatch) (models.Video, error)
	Delete(ctx context.Context, id int64) error
}

// ArticleService captures the content operations required by the article handlers.
type ArticleService interface {
	ListPublished(ctx context.Context) ([]models.Article, error)
	ListAll(ctx context.Context) ([]models.Article, error)
	Get(ctx context.Context, id int64) (models.Article, error)
	GetPublished(ctx context.Context, id int64) (models.Article, error)
	Create(ctx context.Context, input content.ArticleInput) (models.Article, error)
	Update(ctx context.Context, id int64, patch content.ArticlePatch) (models.Article, error)
	Delete(ctx context.Context, id int64) error
}
