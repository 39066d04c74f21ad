package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jornaltgi/backend/internal/config"
)

type fakePool struct{}

func (fakePool) Acquire(context.Context) (*pgxpool.Conn, error) {
	return nil, errors.New("not implemented")
}

func (fakePool) Close() {}

func TestBuildDependencies(t *testing.T) {
	cfg := config.Config{SessionTTL: time.Hour}

	deps := buildDependencies(fakePool{}, cfg)

	if deps.Sessions == nil {
		t.Fatal("expected session service to be configured")
	}
	if deps.Videos == nil {
		t.Fatal("expected video service to be configured")
	}
	if deps.Articles == nil {
		t.Fatal("expected article service to be configured")
	}
	if deps.LoginLimiter == nil {
		t.Fatal("expected login rate limiter to be configured")
	}
}

func TestBuildDependenciesPostgresSessions(t *testing.T) {
	cfg := config.Config{SessionTTL: time.Hour, SessionBackend: "postgres"}

	deps := buildDependencies(fakePool{}, cfg)
	if deps.Sessions == nil {
		t.Fatal("expected session service to be configured")
	}
}
