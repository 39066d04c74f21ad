package content

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/jornaltgi/backend/internal/models"
	"github.com/jornaltgi/backend/internal/repositories"
)

type memArticleRepo struct {
	nextID   int64
	articles map[int64]models.Article
}

func newMemArticleRepo() *memArticleRepo {
	return &memArticleRepo{articles: make(map[int64]models.Article)}
}

func (r *memArticleRepo) Insert(_ context.Context, article models.Article) (int64, error) {
	r.nextID++
	article.ID = r.nextID
	r.articles[article.ID] = article
	return article.ID, nil
}

func (r *memArticleRepo) Find(_ context.Context, id int64) (models.Article, error) {
	article, ok := r.articles[id]
	if !ok {
		return models.Article{}, repositories.ErrNotFound
	}
	return article, nil
}

func (r *memArticleRepo) ListPublished(ctx context.Context) ([]models.Article, error) {
	all, _ := r.ListAll(ctx)
	var out []models.Article
	for _, a := range all {
		if a.IsPublished {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memArticleRepo) ListAll(_ context.Context) ([]models.Article, error) {
	var out []models.Article
	for _, a := range r.articles {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *memArticleRepo) Update(_ context.Context, article models.Article) error {
	if _, ok := r.articles[article.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.articles[article.ID] = article
	return nil
}

func (r *memArticleRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.articles[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.articles, id)
	return nil
}

func TestArticleServiceCreateValidation(t *testing.T) {
	service := NewArticleService(newMemArticleRepo())

	if _, err := service.Create(context.Background(), ArticleInput{Content: "body"}); err == nil {
		t.Fatal("expected validation error for missing title")
	}

	_, err := service.Create(context.Background(), ArticleInput{Title: "T"})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "content" {
		t.Fatalf("expected content validation error got %v", err)
	}

	article, err := service.Create(context.Background(), ArticleInput{Title: "T", Content: "body"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !article.IsPublished || article.ID == 0 {
		t.Fatalf("unexpected defaults: %+v", article)
	}
	if article.Summary != "" {
		t.Fatalf("expected empty summary default, got %q", article.Summary)
	}
}

func TestArticleServicePublishFiltering(t *testing.T) {
	service := NewArticleService(newMemArticleRepo())
	ctx := context.Background()

	published := false
	draft, err := service.Create(ctx, ArticleInput{Title: "Draft", Content: "c", IsPublished: &published})
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}

	if _, err := service.GetPublished(ctx, draft.ID); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("expected draft hidden from public get, got %v", err)
	}

	publicList, err := service.ListPublished(ctx)
	if err != nil {
		t.Fatalf("list published: %v", err)
	}
	if len(publicList) != 0 {
		t.Fatalf("expected no published articles, got %d", len(publicList))
	}

	adminList, err := service.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(adminList) != 1 {
		t.Fatalf("expected draft in admin listing, got %d entries", len(adminList))
	}
}

func TestArticleServiceUpdatePartial(t *testing.T) {
	service := NewArticleService(newMemArticleRepo())
	ctx := context.Background()

	article, err := service.Create(ctx, ArticleInput{Title: "T", Summary: "s", Content: "body"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	summary := "new summary"
	updated, err := service.Update(ctx, article.ID, ArticlePatch{Summary: &summary})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Summary != "new summary" {
		t.Fatalf("expected summary to change, got %q", updated.Summary)
	}
	if updated.Title != article.Title || updated.Content != article.Content {
		t.Fatalf("expected other fields untouched: %+v", updated)
	}
}
