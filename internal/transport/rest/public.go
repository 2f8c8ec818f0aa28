package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adumedia/website-backend/internal/domain"
	"github.com/adumedia/website-backend/internal/service/content"
)

// publicContentService defines the minimal interface needed by PublicHandler.
type publicContentService interface {
	ListEditions(ctx context.Context, limit, offset int, typ *domain.EditionType) (content.EditionPage, error)
	TodayEdition(ctx context.Context) (content.EditionDetail, error)
	LatestEdition(ctx context.Context) (content.EditionDetail, error)
	EditionByDate(ctx context.Context, date time.Time) (content.EditionDetail, error)
	ArticleByID(ctx context.Context, id uuid.UUID) (domain.Article, error)
}

// PublicHandler serves the unauthenticated website endpoints.
type PublicHandler struct {
	svc          publicContentService
	assetBaseURL string
	siteURL      string
	log          *slog.Logger
}

// NewPublicHandler creates a PublicHandler.
func NewPublicHandler(svc publicContentService, assetBaseURL, siteURL string, logger *slog.Logger) *PublicHandler {
	return &PublicHandler{
		svc:          svc,
		assetBaseURL: assetBaseURL,
		siteURL:      strings.TrimRight(siteURL, "/"),
		log:          logger.With("handler", "public"),
	}
}

type editionListResponse struct {
	Editions []editionView `json:"editions"`
	Total    int           `json:"total"`
	HasMore  bool          `json:"has_more"`
}

// ListEditions handles GET /api/editions.
func (h *PublicHandler) ListEditions(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePage(r)

	var typ *domain.EditionType
	if raw := r.URL.Query().Get("type"); raw != "" {
		parsed, err := domain.ParseEditionType(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid edition type. Use daily, weekend or weekly")
			return
		}
		typ = &parsed
	}

	page, err := h.svc.ListEditions(r.Context(), limit, offset, typ)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	views := make([]editionView, 0, len(page.Editions))
	for _, e := range page.Editions {
		views = append(views, transformEdition(e, nil, true, h.assetBaseURL))
	}

	writeJSON(w, http.StatusOK, editionListResponse{
		Editions: views,
		Total:    len(views),
		HasMore:  page.HasMore,
	})
}

// TodayEdition handles GET /api/editions/today. Falls back to the most
// recent edition when today has none.
func (h *PublicHandler) TodayEdition(w http.ResponseWriter, r *http.Request) {
	detail, err := h.svc.TodayEdition(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "No editions found")
			return
		}
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, transformEdition(detail.Edition, detail.Articles, true, h.assetBaseURL))
}

// LatestEdition handles GET /api/editions/latest.
func (h *PublicHandler) LatestEdition(w http.ResponseWriter, r *http.Request) {
	detail, err := h.svc.LatestEdition(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "No editions found")
			return
		}
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, transformEdition(detail.Edition, detail.Articles, true, h.assetBaseURL))
}

// EditionByDate handles GET /api/editions/{date}.
func (h *PublicHandler) EditionByDate(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("date")

	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
		return
	}

	detail, err := h.svc.EditionByDate(r.Context(), date)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "No edition for "+raw)
			return
		}
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, transformEdition(detail.Edition, detail.Articles, true, h.assetBaseURL))
}

// Article handles GET /api/articles/{id}. Serves the full-size image.
func (h *PublicHandler) Article(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Article not found")
		return
	}

	article, err := h.svc.ArticleByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Article not found")
			return
		}
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, transformArticle(article, false, h.assetBaseURL))
}

// sitemapCap bounds how many edition URLs the sitemap lists.
const sitemapCap = 100

// Sitemap handles GET /api/sitemap.xml.
func (h *PublicHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.ListEditions(r.Context(), sitemapCap, 0, nil)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")

	writeURL := func(loc, changefreq, priority string) {
		fmt.Fprintf(&b, "  <url><loc>%s</loc><changefreq>%s</changefreq><priority>%s</priority></url>\n",
			loc, changefreq, priority)
	}

	writeURL(h.siteURL+"/", "daily", "1.0")
	writeURL(h.siteURL+"/archive", "daily", "0.8")
	writeURL(h.siteURL+"/about", "monthly", "0.5")
	for _, e := range page.Editions {
		writeURL(h.siteURL+"/digest/"+e.Date.Format("2006-01-02"), "never", "0.7")
	}

	b.WriteString("</urlset>\n")

	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(b.String())) //nolint:errcheck
}

// Robots handles GET /api/robots.txt.
func (h *PublicHandler) Robots(w http.ResponseWriter, r *http.Request) {
	content := fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s/api/sitemap.xml\n", h.siteURL)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(content)) //nolint:errcheck
}

func (h *PublicHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
