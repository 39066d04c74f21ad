package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jornaltgi/backend/internal/db"
	"github.com/jornaltgi/backend/internal/models"
)

// PostgresUserRepository provides PostgreSQL-backed persistence for the
// administrative account.
type PostgresUserRepository struct {
	pool db.Pool
}

// NewPostgresUserRepository constructs a user repository backed by PostgreSQL.
func NewPostgresUserRepository(pool db.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// Create persists a new user record.
func (r *PostgresUserRepository) Create(ctx context.Context, user models.User) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO users (username, password_hash, created_at, updated_at)
        VALUES ($1, $2, $3, $4)
    `, user.Username, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrConflict
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// FindByUsername fetches a user by their username.
func (r *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        SELECT id, username, password_hash, created_at, updated_at
        FROM users
        WHERE username = $1
    `, username)

	var user models.User
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("select user by username: %w", err)
	}

	return user, nil
}

// PostgresVideoRepository provides PostgreSQL-backed persistence for videos.
type PostgresVideoRepository struct {
	pool db.Pool
}

// NewPostgresVideoRepository constructs a video repository backed by PostgreSQL.
func NewPostgresVideoRepository(pool db.Pool) *PostgresVideoRepository {
	return &PostgresVideoRepository{pool: pool}
}

// Insert stores a new video and returns its generated id.
func (r *PostgresVideoRepository) Insert(ctx context.Context, video models.Video) (int64, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var id int64
	err = conn.QueryRow(ctx, `
        INSERT INTO videos (title, url, description, thumbnail_url, created_at, is_published)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `, video.Title, video.URL, video.Description, video.ThumbnailURL, video.CreatedAt, video.IsPublished).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert video: %w", err)
	}

	return id, nil
}

// Find fetches a single video by id regardless of publish state.
func (r *PostgresVideoRepository) Find(ctx context.Context, id int64) (models.Video, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Video{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        SELECT id, title, url, description, thumbnail_url, created_at, is_published
        FROM videos
        WHERE id = $1
    `, id)

	var video models.Video
	if err := row.Scan(&video.ID, &video.Title, &video.URL, &video.Description, &video.ThumbnailURL, &video.CreatedAt, &video.IsPublished); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Video{}, ErrNotFound
		}
		return models.Video{}, fmt.Errorf("select video: %w", err)
	}

	return video, nil
}

// ListPublished returns published videos, newest first.
func (r *PostgresVideoRepository) ListPublished(ctx context.Context) ([]models.Video, error) {
	return r.list(ctx, `
        SELECT id, title, url, description, thumbnail_url, created_at, is_published
        FROM videos
        WHERE is_published
        ORDER BY created_at DESC, id DESC
    `)
}

// ListAll returns every video regardless of publish state, newest first.
func (r *PostgresVideoRepository) ListAll(ctx context.Context) ([]models.Video, error) {
	return r.list(ctx, `
        SELECT id, title, url, description, thumbnail_url, created_at, is_published
        FROM videos
        ORDER BY created_at DESC, id DESC
    `)
}

func (r *PostgresVideoRepository) list(ctx context.Context, query string) ([]models.Video, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query videos: %w", err)
	}
	defer rows.Close()

	var videos []models.Video
	for rows.Next() {
		var video models.Video
		if err := rows.Scan(&video.ID, &video.Title, &video.URL, &video.Description, &video.ThumbnailURL, &video.CreatedAt, &video.IsPublished); err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate videos: %w", err)
	}

	return videos, nil
}

// Update overwrites an existing video row.
func (r *PostgresVideoRepository) Update(ctx context.Context, video models.Video) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        UPDATE videos
        SET title = $2, url = $3, description = $4, thumbnail_url = $5, is_published = $6
        WHERE id = $1
    `, video.ID, video.Title, video.URL, video.Description, video.ThumbnailURL, video.IsPublished)
	if err != nil {
		return fmt.Errorf("update video: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete permanently removes a video row.
func (r *PostgresVideoRepository) Delete(ctx context.Context, id int64) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        DELETE FROM videos
        WHERE id = $1
    `, id)
	if err != nil {
		return fmt.Errorf("delete video: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Count returns the total number of video rows.
func (r *PostgresVideoRepository) Count(ctx context.Context) (int64, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var count int64
	if err := conn.QueryRow(ctx, `SELECT COUNT(*) FROM videos`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count videos: %w", err)
	}

	return count, nil
}

// PostgresArticleRepository provides PostgreSQL-backed persistence for articles.
type PostgresArticleRepository struct {
	pool db.Pool
}

// NewPostgresArticleRepository constructs an article repository backed by PostgreSQL.
func NewPostgresArticleRepository(pool db.Pool) *PostgresArticleRepository {
	return &PostgresArticleRepository{pool: pool}
}

// Insert stores a new article and returns its generated id.
func (r *PostgresArticleRepository) Insert(ctx context.Context, article models.Article) (int64, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var id int64
	err = conn.QueryRow(ctx, `
        INSERT INTO articles (title, summary, content, created_at, is_published)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `, article.Title, article.Summary, article.Content, article.CreatedAt, article.IsPublished).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert article: %w", err)
	}

	return id, nil
}

// Find fetches a single article by id regardless of publish state.
func (r *PostgresArticleRepository) Find(ctx context.Context, id int64) (models.Article, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Article{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        SELECT id, title, summary, content, created_at, is_published
        FROM articles
        WHERE id = $1
    `, id)

	var article models.Article
	if err := row.Scan(&article.ID, &article.Title, &article.Summary, &article.Content, &article.CreatedAt, &article.IsPublished); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Article{}, ErrNotFound
		}
		return models.Article{}, fmt.Errorf("select article: %w", err)
	}

	return article, nil
}

// ListPublished returns published articles, newest first.
func (r *PostgresArticleRepository) ListPublished(ctx context.Context) ([]models.Article, error) {
	return r.list(ctx, `
        SELECT id, title, summary, content, created_at, is_published
        FROM articles
        WHERE is_published
        ORDER BY created_at DESC, id DESC
    `)
}

// ListAll returns every article regardless of publish state, newest first.
func (r *PostgresArticleRepository) ListAll(ctx context.Context) ([]models.Article, error) {
	return r.list(ctx, `
        SELECT id, title, summary, content, created_at, is_published
        FROM articles
        ORDER BY created_at DESC, id DESC
    `)
}

func (r *PostgresArticleRepository) list(ctx context.Context, query string) ([]models.Article, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	var articles []models.Article
	for rows.Next() {
		var article models.Article
		if err := rows.Scan(&article.ID, &article.Title, &article.Summary, &article.Content, &article.CreatedAt, &article.IsPublished); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate articles: %w", err)
	}

	return articles, nil
}

// Update overwrites an existing article row.
func (r *PostgresArticleRepository) Update(ctx context.Context, article models.Article) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        UPDATE articles
        SET title = $2, summary = $3, content = $4, is_published = $5
        WHERE id = $1
    `, article.ID, article.Title, article.Summary, article.Content, article.IsPublished)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete permanently removes an article row.
func (r *PostgresArticleRepository) Delete(ctx context.Context, id int64) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        DELETE FROM articles
        WHERE id = $1
    `, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Count returns the total number of article rows.
func (r *PostgresArticleRepository) Count(ctx context.Context) (int64, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var count int64
	if err := conn.QueryRow(ctx, `SELECT COUNT(*) FROM articles`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}

	return count, nil
}
