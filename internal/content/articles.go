package content

import (
	"context"
	"strings"
	"time"

	"github.com/jornaltgi/backend/internal/logging"
	"github.com/jornaltgi/backend/internal/models"
	"github.com/jornaltgi/backend/internal/repositories"
)

// ArticleRepository captures the persistence operations required by the article service.
type ArticleRepository interface {
	Insert(ctx context.Context, article models.Article) (int64, error)
	Find(ctx context.Context, id int64) (models.Article, error)
	ListPublished(ctx context.Context) ([]models.Article, error)
	ListAll(ctx context.Context) ([]models.Article, error)
	Update(ctx context.Context, article models.Article) error
	Delete(ctx context.Context, id int64) error
}

// ArticleInput carries the fields accepted when creating an article.
type ArticleInput struct {
	Title       string
	Summary     string
	Content     string
	IsPublished *bool
}

// ArticlePatch carries a partial update; nil fields keep their stored value.
type ArticlePatch struct {
	Title       *string
	Summary     *string
	Content     *string
	IsPublished *bool
}

// ArticleService implements CRUD over articles with publish-state filtering.
type ArticleService struct {
	repo ArticleRepository

	NowFunc func() time.Time
}

// NewArticleService constructs an article service over the provided repository.
func NewArticleService(repo ArticleRepository) *ArticleService {
	if repo == nil {
		panic("content: article repository must not be nil")
	}
	return &ArticleService{repo: repo}
}

// ListPublished returns published articles, newest first.
func (s *ArticleService) ListPublished(ctx context.Context) ([]models.Article, error) {
	return s.repo.ListPublished(ctx)
}

// ListAll returns every article including unpublished drafts, newest first.
func (s *ArticleService) ListAll(ctx context.Context) ([]models.Article, error) {
	return s.repo.ListAll(ctx)
}

// Get returns an article by id regardless of publish state.
func (s *ArticleService) Get(ctx context.Context, id int64) (models.Article, error) {
	return s.repo.Find(ctx, id)
}

// GetPublished returns an article by id, treating unpublished rows as absent.
func (s *ArticleService) GetPublished(ctx context.Context, id int64) (models.Article, error) {
	article, err := s.repo.Find(ctx, id)
	if err != nil {
		return models.Article{}, err
	}
	if !article.IsPublished {
		return models.Article{}, repositories.ErrNotFound
	}
	return article, nil
}

// Create validates the input, applies defaults and stores a new article.
func (s *ArticleService) Create(ctx context.Context, input ArticleInput) (models.Article, error) {
	ctx, span := logging.StartSpan(ctx, "content.article.create")
	defer span.End()

	if strings.TrimSpace(input.Title) == "" {
		return models.Article{}, &ValidationError{Field: "title"}
	}
	if strings.TrimSpace(input.Content) == "" {
		return models.Article{}, &ValidationError{Field: "content"}
	}

	article := models.Article{
		Title:       input.Title,
		Summary:     input.Summary,
		Content:     input.Content,
		CreatedAt:   s.now(),
		IsPublished: true,
	}
	if input.IsPublished != nil {
		article.IsPublished = *input.IsPublished
	}

	id, err := s.repo.Insert(ctx, article)
	if err != nil {
		return models.Article{}, err
	}

	article.ID = id
	return article, nil
}

// Update applies the non-nil fields of the patch to an existing article.
func (s *ArticleService) Update(ctx context.Context, id int64, patch ArticlePatch) (models.Article, error) {
	ctx, span := logging.StartSpan(ctx, "content.article.update")
	defer span.End()

	article, err := s.repo.Find(ctx, id)
	if err != nil {
		return models.Article{}, err
	}

	if patch.Title != nil {
		article.Title = *patch.Title
	}
	if patch.Summary != nil {
		article.Summary = *patch.Summary
	}
	if patch.Content != nil {
		article.Content = *patch.Content
	}
	if patch.IsPublished != nil {
		article.IsPublished = *patch.IsPublished
	}

	if err := s.repo.Update(ctx, article); err != nil {
		return models.Article{}, err
	}

	return article, nil
}

// Delete permanently removes an article.
func (s *ArticleService) Delete(ctx context.Context, id int64) error {
	ctx, span := logging.StartSpan(ctx, "content.article.delete")
	defer span.End()

	return s.repo.Delete(ctx, id)
}

func (s *ArticleService) now() time.Time {
	if s.NowFunc != nil {
		return s.NowFunc().UTC()
	}
	return time.Now().UTC()
}
