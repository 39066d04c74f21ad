package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jornaltgi/backend/internal/auth"
	"github.com/jornaltgi/backend/internal/models"
)

type singleUserSource struct {
	user models.User
}

func (s singleUserSource) FindByUsername(_ context.Context, username string) (models.User, error) {
	if username != s.user.Username {
		return models.User{}, errors.New("not found")
	}
	return s.user, nil
}

type denyAllLimiter struct{}

func (denyAllLimiter) Allow(string) bool { return false }

func newTestManager(t *testing.T) *auth.Manager {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	source := singleUserSource{user: models.User{ID: 1, Username: "RecordUpload", PasswordHash: string(hashed)}}
	return auth.NewManager(time.Hour, source, auth.NewInMemorySessionStore())
}

func doLogin(t *testing.T, handler AuthHandler, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Login(rec, req)
	return rec
}

func TestAuthHandlerLogin(t *testing.T) {
	handler := AuthHandler{Sessions: newTestManager(t)}

	rec := doLogin(t, handler, "RecordUpload", "letmein")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d", http.StatusOK, rec.Code)
	}

	var resp loginResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.SessionID == "" {
		t.Fatalf("expected successful login with session id, got %+v", resp)
	}
	if resp.User.Username != "RecordUpload" {
		t.Fatalf("unexpected user payload: %+v", resp.User)
	}

	second := doLogin(t, handler, "RecordUpload", "letmein")
	var again loginResponse
	if err := json.NewDecoder(second.Body).Decode(&again); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if again.SessionID == resp.SessionID {
		t.Fatal("expected each login to issue a fresh token")
	}
}

func TestAuthHandlerLoginRejectsBadCredentials(t *testing.T) {
	handler := AuthHandler{Sessions: newTestManager(t)}

	rec := doLogin(t, handler, "RecordUpload", "wrong")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d got %d", http.StatusUnauthorized, rec.Code)
	}

	rec = doLogin(t, handler, "intruder", "letmein")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestAuthHandlerLoginBadPayloads(t *testing.T) {
	handler := AuthHandler{Sessions: newTestManager(t)}

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.Login(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d got %d", http.StatusBadRequest, rec.Code)
	}

	rec = doLogin(t, handler, "", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestAuthHandlerLoginRateLimited(t *testing.T) {
	handler := AuthHandler{Sessions: newTestManager(t), Limiter: denyAllLimiter{}}

	rec := doLogin(t, handler, "RecordUpload", "letmein")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status %d got %d", http.StatusTooManyRequests, rec.Code)
	}
}

func TestAuthHandlerCheckAuthLifecycle(t *testing.T) {
	handler := AuthHandler{Sessions: newTestManager(t)}

	rec := doLogin(t, handler, "RecordUpload", "letmein")
	var login loginResponse
	if err := json.NewDecoder(rec.Body).Decode(&login); err != nil {
		t.Fatalf("decode login: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/check-auth?session_id="+login.SessionID, nil)
	rec = httptest.NewRecorder()
	handler.CheckAuth(rec, req)

	var check checkAuthResponse
	if err := json.NewDecoder(rec.Body).Decode(&check); err != nil {
		t.Fatalf("decode check-auth: %v", err)
	}
	if !check.Authenticated || check.User == nil || check.User.Username != "RecordUpload" {
		t.Fatalf("expected authenticated session, got %+v", check)
	}

	body, _ := json.Marshal(logoutRequest{SessionID: login.SessionID})
	req = httptest.NewRequest(http.MethodPost, "/api/logout", bytes.NewReader(body))
	rec = httptest.NewRecorder()
	handler.Logout(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected logout status %d got %d", http.StatusOK, rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/check-auth?session_id="+login.SessionID, nil)
	rec = httptest.NewRecorder()
	handler.CheckAuth(rec, req)

	check = checkAuthResponse{}
	if err := json.NewDecoder(rec.Body).Decode(&check); err != nil {
		t.Fatalf("decode check-auth: %v", err)
	}
	if check.Authenticated || check.User != nil {
		t.Fatalf("expected unauthenticated after logout, got %+v", check)
	}
}

func TestAuthHandlerCheckAuthMissingToken(t *testing.T) {
	handler := AuthHandler{Sessions: newTestManager(t)}

	req := httptest.NewRequest(http.MethodGet, "/api/check-auth", nil)
	rec := httptest.NewRecorder()
	handler.CheckAuth(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("check-auth must never error, got %d", rec.Code)
	}

	var check checkAuthResponse
	if err := json.NewDecoder(rec.Body).Decode(&check); err != nil {
		t.Fatalf("decode check-auth: %v", err)
	}
	if check.Authenticated {
		t.Fatal("expected unauthenticated for missing token")
	}
}

func TestAuthHandlerLogoutUnknownToken(t *testing.T) {
	handler := AuthHandler{Sessions: newTestManager(t)}

	body, _ := json.Marshal(logoutRequest{SessionID: "never-issued"})
	req := httptest.NewRequest(http.MethodPost, "/api/logout", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("logout must be idempotent, got %d", rec.Code)
	}
}
