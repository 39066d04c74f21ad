package handlers

import "net/http"

// RegisterRoutes wires HTTP handlers into the provided ServeMux. Mutating
// content routes and the admin listings are gated behind an active session;
// the content services themselves stay auth-agnostic.
func RegisterRoutes(mux *http.ServeMux, deps Dependencies) {
	health := HealthHandler{}
	auth := AuthHandler{Sessions: deps.Sessions, Limiter: deps.LoginLimiter}
	videos := VideoHandler{Videos: deps.Videos}
	articles := ArticleHandler{Articles: deps.Articles}

	mux.HandleFunc("GET /{$}", Root)
	mux.HandleFunc("GET /healthz", health.Handle)

	mux.HandleFunc("POST /api/login", auth.Login)
	mux.HandleFunc("GET /api/check-auth", auth.CheckAuth)
	mux.HandleFunc("POST /api/logout", auth.Logout)

	mux.HandleFunc("GET /api/videos", videos.List)
	mux.HandleFunc("GET /api/videos/{id}", videos.Get)
	mux.HandleFunc("POST /api/videos", RequireSession(deps.Sessions, videos.Create))
	mux.HandleFunc("PUT /api/videos/{id}", RequireSession(deps.Sessions, videos.Update))
	mux.HandleFunc("DELETE /api/videos/{id}", RequireSession(deps.Sessions, videos.Delete))
	mux.HandleFunc("GET /api/admin/videos", RequireSession(deps.Sessions, videos.ListAdmin))

	mux.HandleFunc("GET /api/articles", articles.List)
	mux.HandleFunc("GET /api/articles/{id}", articles.Get)
	mux.HandleFunc("POST /api/articles", RequireSession(deps.Sessions, articles.Create))
	mux.HandleFunc("PUT /api/articles/{id}", RequireSession(deps.Sessions, articles.Update))
	mux.HandleFunc("DELETE /api/articles/{id}", RequireSession(deps.Sessions, articles.Delete))
	mux.HandleFunc("GET /api/admin/articles", RequireSession(deps.Sessions, articles.ListAdmin))
}

// Root responds with a small service banner for the API root.
func Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(r.Context(), w, http.StatusOK, map[string]string{
		"message": "Jornal TGI API",
		"status":  "running",
	})
}

// Dependencies aggregates collaborators required by HTTP handlers.
type Dependencies struct {
	Sessions     SessionService
	Videos       VideoService
	Articles     ArticleService
	LoginLimiter RateLimiter
}
