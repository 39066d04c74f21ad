package app

import (
	"time"

	"github.com/jornaltgi/backend/internal/auth"
	"github.com/jornaltgi/backend/internal/config"
	"github.com/jornaltgi/backend/internal/content"
	"github.com/jornaltgi/backend/internal/db"
	"github.com/jornaltgi/backend/internal/handlers"
	"github.com/jornaltgi/backend/internal/middleware"
	"github.com/jornaltgi/backend/internal/repositories"
)

// buildDependencies wires together concrete implementations used by the HTTP handlers.
func buildDependencies(pool db.Pool, cfg config.Config) handlers.Dependencies {
	users := repositories.NewPostgresUserRepository(pool)

	var sessionStore auth.SessionStore
	if cfg.SessionBackend == "postgres" {
		sessionStore = repositories.NewPostgresSessionStore(pool)
	} else {
		// Default: in-memory sessions, invalidated by a process restart.
		sessionStore = auth.NewInMemorySessionStore()
	}

	return handlers.Dependencies{
		Sessions:     auth.NewManager(cfg.SessionTTL, users, sessionStore),
		Videos:       content.NewVideoService(repositories.NewPostgresVideoRepository(pool)),
		Articles:     content.NewArticleService(repositories.NewPostgresArticleRepository(pool)),
		LoginLimiter: middleware.NewIPRateLimiter(10, time.Minute, 5, 10*time.Minute),
	}
}
