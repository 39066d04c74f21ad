package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/jornaltgi/backend/internal/auth"
	"github.com/jornaltgi/backend/internal/content"
	"github.com/jornaltgi/backend/internal/models"
	"github.com/jornaltgi/backend/internal/repositories"
)

const testToken = "test-session-token"

type sessionServiceStub struct {
	valid map[string]string
}

func (s sessionServiceStub) Login(context.Context, string, string) (auth.Session, error) {
	return auth.Session{}, auth.ErrInvalidCredentials
}

func (s sessionServiceStub) Check(_ context.Context, token string) (string, bool) {
	username, ok := s.valid[token]
	return username, ok
}

func (s sessionServiceStub) Logout(_ context.Context, token string) {
	delete(s.valid, token)
}

type videoRepoStub struct {
	nextID int64
	videos map[int64]models.Video
}

func (r *videoRepoStub) Insert(_ context.Context, video models.Video) (int64, error) {
	r.nextID++
	video.ID = r.nextID
	r.videos[video.ID] = video
	return video.ID, nil
}

func (r *videoRepoStub) Find(_ context.Context, id int64) (models.Video, error) {
	video, ok := r.videos[id]
	if !ok {
		return models.Video{}, repositories.ErrNotFound
	}
	return video, nil
}

func (r *videoRepoStub) ListPublished(ctx context.Context) ([]models.Video, error) {
	all, _ := r.ListAll(ctx)
	var out []models.Video
	for _, v := range all {
		if v.IsPublished {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *videoRepoStub) ListAll(_ context.Context) ([]models.Video, error) {
	var out []models.Video
	for _, v := range r.videos {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *videoRepoStub) Update(_ context.Context, video models.Video) error {
	if _, ok := r.videos[video.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.videos[video.ID] = video
	return nil
}

func (r *videoRepoStub) Delete(_ context.Context, id int64) error {
	if _, ok := r.videos[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.videos, id)
	return nil
}

type articleRepoStub struct {
	nextID   int64
	articles map[int64]models.Article
}

func (r *articleRepoStub) Insert(_ context.Context, article models.Article) (int64, error) {
	r.nextID++
	article.ID = r.nextID
	r.articles[article.ID] = article
	return article.ID, nil
}

func (r *articleRepoStub) Find(_ context.Context, id int64) (models.Article, error) {
	article, ok := r.articles[id]
	if !ok {
		return models.Article{}, repositories.ErrNotFound
	}
	return article, nil
}

func (r *articleRepoStub) ListPublished(ctx context.Context) ([]models.Article, error) {
	all, _ := r.ListAll(ctx)
	var out []models.Article
	for _, a := range all {
		if a.IsPublished {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *articleRepoStub) ListAll(_ context.Context) ([]models.Article, error) {
	var out []models.Article
	for _, a := range r.articles {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *articleRepoStub) Update(_ context.Context, article models.Article) error {
	if _, ok := r.articles[article.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.articles[article.ID] = article
	return nil
}

func (r *articleRepoStub) Delete(_ context.Context, id int64) error {
	if _, ok := r.articles[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.articles, id)
	return nil
}

// newAPIMux wires the full route table over in-memory repositories and a
// session stub, exercising routing and auth gating exactly as in production.
func newAPIMux(t *testing.T) (*http.ServeMux, *videoRepoStub, *articleRepoStub) {
	t.Helper()

	videoRepo := &videoRepoStub{videos: make(map[int64]models.Video)}
	articleRepo := &articleRepoStub{articles: make(map[int64]models.Article)}

	mux := http.NewServeMux()
	RegisterRoutes(mux, Dependencies{
		Sessions: sessionServiceStub{valid: map[string]string{testToken: "RecordUpload"}},
		Videos:   content.NewVideoService(videoRepo),
		Articles: content.NewArticleService(articleRepo),
	})

	return mux, videoRepo, articleRepo
}

func seedVideo(repo *videoRepoStub, title string, published bool) models.Video {
	video := models.Video{
		Title:       title,
		URL:         "https://example.com/" + title,
		CreatedAt:   time.Now().UTC(),
		IsPublished: published,
	}
	id, _ := repo.Insert(context.Background(), video)
	video.ID = id
	return video
}

func TestVideoRoutesPublicListing(t *testing.T) {
	mux, repo, _ := newAPIMux(t)
	seedVideo(repo, "live", true)
	draft := seedVideo(repo, "draft", false)

	req := httptest.NewRequest(http.MethodGet, "/api/videos", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 got %d", rec.Code)
	}

	var videos []models.Video
	if err := json.NewDecoder(rec.Body).Decode(&videos); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(videos) != 1 {
		t.Fatalf("expected 1 published video got %d", len(videos))
	}
	for _, v := range videos {
		if v.ID == draft.ID {
			t.Fatal("public listing leaked an unpublished video")
		}
	}
}

func TestVideoRoutesPublicListingEmpty(t *testing.T) {
	mux, _, _ := newAPIMux(t)

	req := httptest.NewRequest(http.MethodGet, "/api/videos", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("expected empty JSON array, got %q", body)
	}
}

func TestVideoRoutesPublicGet(t *testing.T) {
	mux, repo, _ := newAPIMux(t)
	seedVideo(repo, "live", true)
	seedVideo(repo, "draft", false)

	cases := []struct {
		name   string
		path   string
		status int
	}{
		{"published", "/api/videos/1", http.StatusOK},
		{"unpublished", "/api/videos/2", http.StatusNotFound},
		{"absent", "/api/videos/99", http.StatusNotFound},
		{"non-numeric", "/api/videos/abc", http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Fatalf("expected status %d got %d", tc.status, rec.Code)
			}
		})
	}
}

func TestVideoRoutesAdminListingIncludesDrafts(t *testing.T) {
	mux, repo, _ := newAPIMux(t)
	seedVideo(repo, "live", true)
	seedVideo(repo, "draft", false)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/videos", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/videos", nil)
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 got %d", rec.Code)
	}

	var videos []models.Video
	if err := json.NewDecoder(rec.Body).Decode(&videos); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(videos) != 2 {
		t.Fatalf("expected both videos in admin listing got %d", len(videos))
	}
}

func TestVideoRoutesCreateRequiresSession(t *testing.T) {
	mux, repo, _ := newAPIMux(t)

	body, _ := json.Marshal(map[string]string{"title": "A", "url": "u", "description": "d"})
	req := httptest.NewRequest(http.MethodPost, "/api/videos", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", rec.Code)
	}
	if len(repo.videos) != 0 {
		t.Fatal("expected nothing to be stored")
	}
}

func TestVideoRoutesCreate(t *testing.T) {
	mux, _, _ := newAPIMux(t)
	before := time.Now().UTC()

	body, _ := json.Marshal(map[string]string{"title": "A", "url": "u", "description": "d"})
	req := httptest.NewRequest(http.MethodPost, "/api/videos", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201 got %d: %s", rec.Code, rec.Body.String())
	}

	var video models.Video
	if err := json.NewDecoder(rec.Body).Decode(&video); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if video.ID == 0 {
		t.Fatal("expected generated id")
	}
	if !video.IsPublished {
		t.Fatal("expected is_published to default to true")
	}
	if video.CreatedAt.Before(before) {
		t.Fatalf("expected created_at at/after request start, got %v", video.CreatedAt)
	}
}

func TestVideoRoutesCreateValidation(t *testing.T) {
	mux, _, _ := newAPIMux(t)

	body, _ := json.Marshal(map[string]string{"title": "A"})
	req := httptest.NewRequest(http.MethodPost, "/api/videos", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 got %d", rec.Code)
	}
}

func TestVideoRoutesUpdatePartial(t *testing.T) {
	mux, repo, _ := newAPIMux(t)
	video := seedVideo(repo, "original", true)

	body, _ := json.Marshal(map[string]string{"title": "renamed"})
	req := httptest.NewRequest(http.MethodPut, "/api/videos/1", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 got %d", rec.Code)
	}

	var updated models.Video
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.Title != "renamed" {
		t.Fatalf("expected title to change got %q", updated.Title)
	}
	if updated.URL != video.URL || updated.IsPublished != video.IsPublished {
		t.Fatalf("expected other fields untouched: %+v", updated)
	}

	req = httptest.NewRequest(http.MethodPut, "/api/videos/99", bytes.NewReader([]byte(`{"title":"x"}`)))
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for absent id got %d", rec.Code)
	}
}

func TestVideoRoutesDelete(t *testing.T) {
	mux, repo, _ := newAPIMux(t)
	seedVideo(repo, "doomed", true)

	req := httptest.NewRequest(http.MethodDelete, "/api/videos/1", nil)
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204 got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/videos/1", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/videos/1", nil)
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete got %d", rec.Code)
	}
}
