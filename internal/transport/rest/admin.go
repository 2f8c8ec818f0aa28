package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/adumedia/website-backend/internal/domain"
	authsvc "github.com/adumedia/website-backend/internal/service/auth"
	"github.com/adumedia/website-backend/internal/service/content"
	"github.com/adumedia/website-backend/pkg/ctxutil"
)

// adminAuthService defines what the admin handler needs for login.
type adminAuthService interface {
	Login(ctx context.Context, password string) (authsvc.Session, error)
}

// adminContentService defines the content operations behind the admin surface.
type adminContentService interface {
	AdminEditions(ctx context.Context, limit, offset int) ([]domain.Edition, error)
	EditionByID(ctx context.Context, id uuid.UUID) (content.EditionDetail, error)
	UpdateEdition(ctx context.Context, id uuid.UUID, patch content.EditionPatch) error
	RemoveArticleFromEdition(ctx context.Context, editionID, articleID uuid.UUID) error
	SearchArticles(ctx context.Context, query string, limit, offset int) (content.ArticlePage, error)
	ArticleDetail(ctx context.Context, id uuid.UUID) (content.ArticleDetail, error)
	UpdateArticle(ctx context.Context, id uuid.UUID, patch content.ArticlePatch) error
	DeleteArticle(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (content.Stats, error)
}

// AdminHandler serves the token-gated dashboard endpoints. Everything
// except Login runs behind the auth middleware.
type AdminHandler struct {
	auth         adminAuthService
	content      adminContentService
	assetBaseURL string
	log          *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(auth adminAuthService, content adminContentService, assetBaseURL string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		auth:         auth,
		content:      content,
		assetBaseURL: assetBaseURL,
		log:          logger.With("handler", "admin"),
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Login handles POST /api/admin/login.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := h.auth.Login(r.Context(), req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "Invalid password")
			return
		}
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: session.AccessToken,
		TokenType:   "bearer",
		ExpiresIn:   session.ExpiresIn,
	})
}

type userInfoResponse struct {
	Role            string    `json:"role"`
	AuthenticatedAt time.Time `json:"authenticated_at"`
}

// Me handles GET /api/admin/me. Reaching it at all means the token was
// valid; the claims come from the auth middleware.
func (h *AdminHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := ctxutil.AdminClaimsFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	writeJSON(w, http.StatusOK, userInfoResponse{
		Role:            claims.Role,
		AuthenticatedAt: claims.IssuedAt,
	})
}

type statsResponse struct {
	TotalEditions          int           `json:"total_editions"`
	TotalArticlesPublished int           `json:"total_articles_published"`
	TotalProjects          int           `json:"total_projects"`
	RecentEditions         []editionView `json:"recent_editions"`
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.content.Stats(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	recent := make([]editionView, 0, len(stats.RecentEditions))
	for _, e := range stats.RecentEditions {
		recent = append(recent, transformEdition(e, nil, false, h.assetBaseURL))
	}

	writeJSON(w, http.StatusOK, statsResponse{
		TotalEditions:          stats.TotalEditions,
		TotalArticlesPublished: stats.TotalPublishedArticles,
		TotalProjects:          stats.TotalProjects,
		RecentEditions:         recent,
	})
}

type adminEditionListResponse struct {
	Editions []editionView `json:"editions"`
	Total    int           `json:"total"`
}

// ListEditions handles GET /api/admin/editions. Plain page, no has-more
// probing on the dashboard.
func (h *AdminHandler) ListEditions(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePage(r)

	editions, err := h.content.AdminEditions(r.Context(), limit, offset)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	views := make([]editionView, 0, len(editions))
	for _, e := range editions {
		views = append(views, transformEdition(e, nil, false, h.assetBaseURL))
	}

	writeJSON(w, http.StatusOK, adminEditionListResponse{Editions: views, Total: len(views)})
}

// Edition handles GET /api/admin/editions/{id}. Full detail with
// full-size images.
func (h *AdminHandler) Edition(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Edition not found")
		return
	}

	detail, err := h.content.EditionByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Edition not found")
			return
		}
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, transformEdition(detail.Edition, detail.Articles, false, h.assetBaseURL))
}

type editionUpdateRequest struct {
	EditionSummary *string      `json:"edition_summary"`
	ArticleIDs     *[]uuid.UUID `json:"article_ids"`
}

// UpdateEdition handles PATCH /api/admin/editions/{id}.
func (h *AdminHandler) UpdateEdition(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Edition not found")
		return
	}

	var req editionUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err = h.content.UpdateEdition(r.Context(), id, content.EditionPatch{
		Summary:    req.EditionSummary,
		ArticleIDs: req.ArticleIDs,
	})
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Edition not found")
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "No updates provided")
	case err != nil:
		h.log.ErrorContext(r.Context(), "edition update failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Update failed")
	default:
		writeJSON(w, http.StatusOK, map[string]string{"message": "Edition updated", "id": id.String()})
	}
}

// RemoveArticle handles DELETE /api/admin/editions/{id}/articles/{article_id}.
func (h *AdminHandler) RemoveArticle(w http.ResponseWriter, r *http.Request) {
	editionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Edition or article not found")
		return
	}
	articleID, err := uuid.Parse(r.PathValue("article_id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Edition or article not found")
		return
	}

	err = h.content.RemoveArticleFromEdition(r.Context(), editionID, articleID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Edition or article not found")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "Edition was modified concurrently, retry")
	case err != nil:
		h.handleError(w, r, err)
	default:
		writeJSON(w, http.StatusOK, map[string]string{"message": "Article removed from edition"})
	}
}

type articleSearchResponse struct {
	Articles []articleView `json:"articles"`
	Query    string        `json:"query"`
	Total    int           `json:"total"`
	HasMore  bool          `json:"has_more"`
}

// SearchArticles handles GET /api/admin/articles.
func (h *AdminHandler) SearchArticles(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "Search query required")
		return
	}

	limit, offset := parsePage(r)

	page, err := h.content.SearchArticles(r.Context(), query, limit, offset)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	views := make([]articleView, 0, len(page.Articles))
	for _, a := range page.Articles {
		views = append(views, transformArticle(a, true, h.assetBaseURL))
	}

	writeJSON(w, http.StatusOK, articleSearchResponse{
		Articles: views,
		Query:    query,
		Total:    len(views),
		HasMore:  page.HasMore,
	})
}

// adminArticleView extends the public article shape with editorial fields
// and the linked project, when one exists.
type adminArticleView struct {
	articleView

	Status      string    `json:"status"`
	FetchDate   time.Time `json:"fetch_date"`
	ProjectID   *string   `json:"project_id"`
	EditorNotes string    `json:"editor_notes"`
	ProjectName *string   `json:"project_name,omitempty"`
	Architect   *string   `json:"architect,omitempty"`
	Location    *string   `json:"location,omitempty"`
}

// Article handles GET /api/admin/articles/{id}.
func (h *AdminHandler) Article(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Article not found")
		return
	}

	detail, err := h.content.ArticleDetail(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Article not found")
			return
		}
		h.handleError(w, r, err)
		return
	}

	a := detail.Article
	view := adminArticleView{
		articleView: transformArticle(a, false, h.assetBaseURL),
		Status:      string(a.Status),
		FetchDate:   a.FetchDate,
	}
	if a.ProjectID != nil {
		s := a.ProjectID.String()
		view.ProjectID = &s
	}
	if a.EditorNotes != nil {
		view.EditorNotes = *a.EditorNotes
	}
	if p := detail.Project; p != nil {
		view.ProjectName = &p.Name
		view.Architect = p.Architect
		view.Location = p.Location
	}

	writeJSON(w, http.StatusOK, view)
}

type articleUpdateRequest struct {
	AISummary   *string   `json:"ai_summary"`
	EditorNotes *string   `json:"editor_notes"`
	Category    *string   `json:"category"`
	Tags        *[]string `json:"tags"`
}

// UpdateArticle handles PATCH /api/admin/articles/{id}.
func (h *AdminHandler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Article not found")
		return
	}

	var req articleUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err = h.content.UpdateArticle(r.Context(), id, content.ArticlePatch{
		AISummary:   req.AISummary,
		EditorNotes: req.EditorNotes,
		Category:    req.Category,
		Tags:        req.Tags,
	})
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Article not found")
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "No updates provided")
	case err != nil:
		h.log.ErrorContext(r.Context(), "article update failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Update failed")
	default:
		writeJSON(w, http.StatusOK, map[string]string{"message": "Article updated", "id": id.String()})
	}
}

// DeleteArticle handles DELETE /api/admin/articles/{id}. Soft delete.
func (h *AdminHandler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Article not found")
		return
	}

	err = h.content.DeleteArticle(r.Context(), id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Article not found")
	case err != nil:
		h.log.ErrorContext(r.Context(), "article delete failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Delete failed")
	default:
		writeJSON(w, http.StatusOK, map[string]string{"message": "Article deleted", "id": id.String()})
	}
}

func (h *AdminHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "Conflict")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
