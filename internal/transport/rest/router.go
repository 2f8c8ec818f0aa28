package rest

import (
	"net/http"

	"github.com/adumedia/website-backend/internal/transport/middleware"
)

// RouterDeps carries everything the router mounts.
type RouterDeps struct {
	Public  *PublicHandler
	Admin   *AdminHandler
	Webhook *WebhookHandler
	Health  *HealthHandler
	SPA     http.Handler

	// RequireAdmin guards every admin route except login.
	RequireAdmin middleware.Middleware
	// LoginLimit rate-limits the password endpoint.
	LoginLimit middleware.Middleware
}

// NewRouter mounts all routes. Method-qualified patterns give 405s for
// free; unknown /api paths answer JSON 404 while everything else falls
// through to the SPA.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	// Public surface.
	mux.HandleFunc("GET /api/editions", deps.Public.ListEditions)
	mux.HandleFunc("GET /api/editions/today", deps.Public.TodayEdition)
	mux.HandleFunc("GET /api/editions/latest", deps.Public.LatestEdition)
	mux.HandleFunc("GET /api/editions/{date}", deps.Public.EditionByDate)
	mux.HandleFunc("GET /api/articles/{id}", deps.Public.Article)
	mux.HandleFunc("GET /api/sitemap.xml", deps.Public.Sitemap)
	mux.HandleFunc("GET /api/robots.txt", deps.Public.Robots)
	mux.HandleFunc("GET /api/health", deps.Health.Health)

	// Admin surface. Login stays outside the token gate.
	mux.Handle("POST /api/admin/login", deps.LoginLimit(http.HandlerFunc(deps.Admin.Login)))

	admin := deps.RequireAdmin
	mux.Handle("GET /api/admin/me", admin(http.HandlerFunc(deps.Admin.Me)))
	mux.Handle("GET /api/admin/stats", admin(http.HandlerFunc(deps.Admin.Stats)))
	mux.Handle("GET /api/admin/editions", admin(http.HandlerFunc(deps.Admin.ListEditions)))
	mux.Handle("GET /api/admin/editions/{id}", admin(http.HandlerFunc(deps.Admin.Edition)))
	mux.Handle("PATCH /api/admin/editions/{id}", admin(http.HandlerFunc(deps.Admin.UpdateEdition)))
	mux.Handle("DELETE /api/admin/editions/{id}/articles/{article_id}", admin(http.HandlerFunc(deps.Admin.RemoveArticle)))
	mux.Handle("GET /api/admin/articles", admin(http.HandlerFunc(deps.Admin.SearchArticles)))
	mux.Handle("GET /api/admin/articles/{id}", admin(http.HandlerFunc(deps.Admin.Article)))
	mux.Handle("PATCH /api/admin/articles/{id}", admin(http.HandlerFunc(deps.Admin.UpdateArticle)))
	mux.Handle("DELETE /api/admin/articles/{id}", admin(http.HandlerFunc(deps.Admin.DeleteArticle)))

	// Webhook surface.
	mux.HandleFunc("POST /api/webhook/edition-published", deps.Webhook.EditionPublished)
	mux.HandleFunc("POST /api/webhook/article-updated", deps.Webhook.ArticleUpdated)
	mux.HandleFunc("GET /api/webhook/health", deps.Webhook.Health)

	// Unmatched /api paths are JSON 404s, never SPA fallbacks.
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})

	// Everything else is the SPA.
	mux.Handle("/", deps.SPA)

	return mux
}
