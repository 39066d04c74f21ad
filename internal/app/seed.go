package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jornaltgi/backend/internal/config"
	"github.com/jornaltgi/backend/internal/db"
	"github.com/jornaltgi/backend/internal/models"
	"github.com/jornaltgi/backend/internal/repositories"
)

// bootstrapDefaults makes a fresh database usable: it creates the single
// administrative account if absent and inserts one sample video and article
// when the content tables are empty.
func bootstrapDefaults(ctx context.Context, pool db.Pool, cfg config.Config, logger *slog.Logger) error {
	now := time.Now().UTC()

	users := repositories.NewPostgresUserRepository(pool)
	if _, err := users.FindByUsername(ctx, cfg.AdminUsername); err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("look up admin user: %w", err)
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}

		err = users.Create(ctx, models.User{
			Username:     cfg.AdminUsername,
			PasswordHash: string(hashed),
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil && !errors.Is(err, repositories.ErrConflict) {
			return fmt.Errorf("create admin user: %w", err)
		}
		logger.Info("created admin user", "username", cfg.AdminUsername)
	}

	videos := repositories.NewPostgresVideoRepository(pool)
	count, err := videos.Count(ctx)
	if err != nil {
		return fmt.Errorf("count videos: %w", err)
	}
	if count == 0 {
		_, err := videos.Insert(ctx, models.Video{
			Title:        "Welcome to Jornal TGI",
			URL:          "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			Description:  "A sample video demonstrating the Jornal TGI content management system.",
			ThumbnailURL: "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg",
			CreatedAt:    now,
			IsPublished:  true,
		})
		if err != nil {
			return fmt.Errorf("insert sample video: %w", err)
		}
		logger.Info("created sample video")
	}

	articles := repositories.NewPostgresArticleRepository(pool)
	count, err = articles.Count(ctx)
	if err != nil {
		return fmt.Errorf("count articles: %w", err)
	}
	if count == 0 {
		_, err := articles.Insert(ctx, models.Article{
			Title:       "Sample Article",
			Summary:     "A short summary of the sample article.",
			Content:     "This is the full body of the sample article. Replace it with real reporting from the admin panel.",
			CreatedAt:   now,
			IsPublished: true,
		})
		if err != nil {
			return fmt.Errorf("insert sample article: %w", err)
		}
		logger.Info("created sample article")
	}

	return nil
}

func runSeed(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("expected seed name (e.g. dev)")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	seedDir := cfg.SeedDir
	if !filepath.IsAbs(seedDir) {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("determine working directory: %w", err)
		}
		seedDir = filepath.Join(wd, seedDir)
	}

	seedName := args[0]
	if !strings.HasSuffix(seedName, ".sql") {
		seedName = fmt.Sprintf("%s_seed.sql", seedName)
	}

	seedPath := filepath.Join(seedDir, seedName)
	contents, err := os.ReadFile(seedPath)
	if err != nil {
		return fmt.Errorf("read seed %s: %w", seedName, err)
	}

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, string(contents)); err != nil {
		return fmt.Errorf("apply seed %s: %w", seedName, err)
	}

	fmt.Printf("applied seed %s\n", seedName)
	return nil
}
