package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adumedia/website-backend/internal/domain"
	authsvc "github.com/adumedia/website-backend/internal/service/auth"
	"github.com/adumedia/website-backend/internal/service/content"
)

type adminAuthStub struct {
	login func(password string) (authsvc.Session, error)
}

func (s *adminAuthStub) Login(_ context.Context, password string) (authsvc.Session, error) {
	return s.login(password)
}

type adminContentStub struct {
	adminEditions            func(limit, offset int) ([]domain.Edition, error)
	editionByID              func(id uuid.UUID) (content.EditionDetail, error)
	updateEdition            func(id uuid.UUID, patch content.EditionPatch) error
	removeArticleFromEdition func(editionID, articleID uuid.UUID) error
	searchArticles           func(query string, limit, offset int) (content.ArticlePage, error)
	articleDetail            func(id uuid.UUID) (content.ArticleDetail, error)
	updateArticle            func(id uuid.UUID, patch content.ArticlePatch) error
	deleteArticle            func(id uuid.UUID) error
	stats                    func() (content.Stats, error)
}

func (s *adminContentStub) AdminEditions(_ context.Context, limit, offset int) ([]domain.Edition, error) {
	return s.adminEditions(limit, offset)
}
func (s *adminContentStub) EditionByID(_ context.Context, id uuid.UUID) (content.EditionDetail, error) {
	return s.editionByID(id)
}
func (s *adminContentStub) UpdateEdition(_ context.Context, id uuid.UUID, patch content.EditionPatch) error {
	return s.updateEdition(id, patch)
}
func (s *adminContentStub) RemoveArticleFromEdition(_ context.Context, editionID, articleID uuid.UUID) error {
	return s.removeArticleFromEdition(editionID, articleID)
}
func (s *adminContentStub) SearchArticles(_ context.Context, query string, limit, offset int) (content.ArticlePage, error) {
	return s.searchArticles(query, limit, offset)
}
func (s *adminContentStub) ArticleDetail(_ context.Context, id uuid.UUID) (content.ArticleDetail, error) {
	return s.articleDetail(id)
}
func (s *adminContentStub) UpdateArticle(_ context.Context, id uuid.UUID, patch content.ArticlePatch) error {
	return s.updateArticle(id, patch)
}
func (s *adminContentStub) DeleteArticle(_ context.Context, id uuid.UUID) error {
	return s.deleteArticle(id)
}
func (s *adminContentStub) Stats(context.Context) (content.Stats, error) {
	return s.stats()
}

func newAdminHandler(auth *adminAuthStub, svc *adminContentStub) *AdminHandler {
	return NewAdminHandler(auth, svc, "https://assets.adu.media", testLogger())
}

func TestAdminLogin(t *testing.T) {
	t.Parallel()

	t.Run("valid password", func(t *testing.T) {
		t.Parallel()

		auth := &adminAuthStub{
			login: func(password string) (authsvc.Session, error) {
				assert.Equal(t, "secret", password)
				return authsvc.Session{AccessToken: "tok", ExpiresIn: 86400}, nil
			},
		}
		h := newAdminHandler(auth, &adminContentStub{})

		req := httptest.NewRequest("POST", "/api/admin/login", strings.NewReader(`{"password":"secret"}`))
		rec := httptest.NewRecorder()

		h.Login(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"access_token":"tok","token_type":"bearer","expires_in":86400}`, rec.Body.String())
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()

		auth := &adminAuthStub{
			login: func(string) (authsvc.Session, error) {
				return authsvc.Session{}, domain.ErrUnauthorized
			},
		}
		h := newAdminHandler(auth, &adminContentStub{})

		req := httptest.NewRequest("POST", "/api/admin/login", strings.NewReader(`{"password":"nope"}`))
		rec := httptest.NewRecorder()

		h.Login(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"detail":"Invalid password"}`, rec.Body.String())
	})

	t.Run("bad body", func(t *testing.T) {
		t.Parallel()

		h := newAdminHandler(&adminAuthStub{}, &adminContentStub{})

		req := httptest.NewRequest("POST", "/api/admin/login", strings.NewReader("{"))
		rec := httptest.NewRecorder()

		h.Login(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAdminStats(t *testing.T) {
	t.Parallel()

	svc := &adminContentStub{
		stats: func() (content.Stats, error) {
			return content.Stats{
				TotalEditions:          10,
				TotalPublishedArticles: 250,
				TotalProjects:          4,
				RecentEditions:         []domain.Edition{{ID: uuid.New(), Date: time.Now()}},
			}, nil
		},
	}
	h := newAdminHandler(&adminAuthStub{}, svc)

	rec := httptest.NewRecorder()
	h.Stats(rec, httptest.NewRequest("GET", "/api/admin/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		TotalEditions          int              `json:"total_editions"`
		TotalArticlesPublished int              `json:"total_articles_published"`
		TotalProjects          int              `json:"total_projects"`
		RecentEditions         []map[string]any `json:"recent_editions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 10, resp.TotalEditions)
	assert.Equal(t, 250, resp.TotalArticlesPublished)
	assert.Equal(t, 4, resp.TotalProjects)
	assert.Len(t, resp.RecentEditions, 1)
}

func TestAdminListEditions_NoProbe(t *testing.T) {
	t.Parallel()

	svc := &adminContentStub{
		adminEditions: func(limit, offset int) ([]domain.Edition, error) {
			assert.Equal(t, 20, limit, "admin listing fetches exactly the page")
			return []domain.Edition{{ID: uuid.New(), Date: time.Now()}}, nil
		},
	}
	h := newAdminHandler(&adminAuthStub{}, svc)

	rec := httptest.NewRecorder()
	h.ListEditions(rec, httptest.NewRequest("GET", "/api/admin/editions", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "has_more")
}

func TestAdminUpdateEdition(t *testing.T) {
	t.Parallel()

	id := uuid.New()

	request := func(body string) *http.Request {
		req := httptest.NewRequest("PATCH", "/api/admin/editions/"+id.String(), strings.NewReader(body))
		req.SetPathValue("id", id.String())
		return req
	}

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		svc := &adminContentStub{
			updateEdition: func(gotID uuid.UUID, patch content.EditionPatch) error {
				assert.Equal(t, id, gotID)
				require.NotNil(t, patch.Summary)
				assert.Equal(t, "new summary", *patch.Summary)
				return nil
			},
		}
		rec := httptest.NewRecorder()
		newAdminHandler(&adminAuthStub{}, svc).UpdateEdition(rec, request(`{"edition_summary":"new summary"}`))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, fmt.Sprintf(`{"message":"Edition updated","id":%q}`, id), rec.Body.String())
	})

	t.Run("empty patch", func(t *testing.T) {
		t.Parallel()

		svc := &adminContentStub{
			updateEdition: func(uuid.UUID, content.EditionPatch) error {
				return domain.ErrValidation
			},
		}
		rec := httptest.NewRecorder()
		newAdminHandler(&adminAuthStub{}, svc).UpdateEdition(rec, request(`{}`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"detail":"No updates provided"}`, rec.Body.String())
	})

	t.Run("absent edition", func(t *testing.T) {
		t.Parallel()

		svc := &adminContentStub{
			updateEdition: func(uuid.UUID, content.EditionPatch) error {
				return domain.ErrNotFound
			},
		}
		rec := httptest.NewRecorder()
		newAdminHandler(&adminAuthStub{}, svc).UpdateEdition(rec, request(`{"edition_summary":"x"}`))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"detail":"Edition not found"}`, rec.Body.String())
	})

	t.Run("write failure is a 500", func(t *testing.T) {
		t.Parallel()

		svc := &adminContentStub{
			updateEdition: func(uuid.UUID, content.EditionPatch) error {
				return fmt.Errorf("write returned no record")
			},
		}
		rec := httptest.NewRecorder()
		newAdminHandler(&adminAuthStub{}, svc).UpdateEdition(rec, request(`{"edition_summary":"x"}`))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"detail":"Update failed"}`, rec.Body.String())
	})
}

func TestAdminRemoveArticle(t *testing.T) {
	t.Parallel()

	editionID, articleID := uuid.New(), uuid.New()

	request := func() *http.Request {
		req := httptest.NewRequest("DELETE",
			fmt.Sprintf("/api/admin/editions/%s/articles/%s", editionID, articleID), nil)
		req.SetPathValue("id", editionID.String())
		req.SetPathValue("article_id", articleID.String())
		return req
	}

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		svc := &adminContentStub{
			removeArticleFromEdition: func(e, a uuid.UUID) error {
				assert.Equal(t, editionID, e)
				assert.Equal(t, articleID, a)
				return nil
			},
		}
		rec := httptest.NewRecorder()
		newAdminHandler(&adminAuthStub{}, svc).RemoveArticle(rec, request())

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"Article removed from edition"}`, rec.Body.String())
	})

	t.Run("absent reference", func(t *testing.T) {
		t.Parallel()

		svc := &adminContentStub{
			removeArticleFromEdition: func(uuid.UUID, uuid.UUID) error {
				return domain.ErrNotFound
			},
		}
		rec := httptest.NewRecorder()
		newAdminHandler(&adminAuthStub{}, svc).RemoveArticle(rec, request())

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"detail":"Edition or article not found"}`, rec.Body.String())
	})

	t.Run("concurrent modification", func(t *testing.T) {
		t.Parallel()

		svc := &adminContentStub{
			removeArticleFromEdition: func(uuid.UUID, uuid.UUID) error {
				return domain.ErrConflict
			},
		}
		rec := httptest.NewRecorder()
		newAdminHandler(&adminAuthStub{}, svc).RemoveArticle(rec, request())

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestAdminSearchArticles(t *testing.T) {
	t.Parallel()

	t.Run("missing query is a 400", func(t *testing.T) {
		t.Parallel()

		h := newAdminHandler(&adminAuthStub{}, &adminContentStub{})
		rec := httptest.NewRecorder()

		h.SearchArticles(rec, httptest.NewRequest("GET", "/api/admin/articles", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"detail":"Search query required"}`, rec.Body.String())
	})

	t.Run("results echo the query and use thumbnails", func(t *testing.T) {
		t.Parallel()

		thumb := "t.jpg"
		svc := &adminContentStub{
			searchArticles: func(query string, limit, offset int) (content.ArticlePage, error) {
				assert.Equal(t, "prefab", query)
				return content.ArticlePage{
					Articles: []domain.Article{{ID: uuid.New(), OriginalTitle: "a", ImageThumbKey: &thumb}},
				}, nil
			},
		}
		rec := httptest.NewRecorder()
		newAdminHandler(&adminAuthStub{}, svc).SearchArticles(rec,
			httptest.NewRequest("GET", "/api/admin/articles?q=prefab", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"query":"prefab"`)
		assert.Contains(t, rec.Body.String(), "https://assets.adu.media/t.jpg")
	})
}

func TestAdminArticle_Detail(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	projectID := uuid.New()
	notes := "check the source"
	architect := "Studio North"

	svc := &adminContentStub{
		articleDetail: func(got uuid.UUID) (content.ArticleDetail, error) {
			assert.Equal(t, id, got)
			return content.ArticleDetail{
				Article: domain.Article{
					ID:            id,
					OriginalTitle: "t",
					Status:        domain.ArticlePublished,
					FetchDate:     time.Now(),
					ProjectID:     &projectID,
					EditorNotes:   &notes,
				},
				Project: &domain.Project{ID: projectID, Name: "Casa Norte", Architect: &architect},
			}, nil
		},
	}

	req := httptest.NewRequest("GET", "/api/admin/articles/"+id.String(), nil)
	req.SetPathValue("id", id.String())
	rec := httptest.NewRecorder()

	newAdminHandler(&adminAuthStub{}, svc).Article(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "published", resp["status"])
	assert.Equal(t, projectID.String(), resp["project_id"])
	assert.Equal(t, "check the source", resp["editor_notes"])
	assert.Equal(t, "Casa Norte", resp["project_name"])
	assert.Equal(t, "Studio North", resp["architect"])
}

func TestAdminDeleteArticle(t *testing.T) {
	t.Parallel()

	id := uuid.New()

	request := func() *http.Request {
		req := httptest.NewRequest("DELETE", "/api/admin/articles/"+id.String(), nil)
		req.SetPathValue("id", id.String())
		return req
	}

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		svc := &adminContentStub{
			deleteArticle: func(got uuid.UUID) error {
				assert.Equal(t, id, got)
				return nil
			},
		}
		rec := httptest.NewRecorder()
		newAdminHandler(&adminAuthStub{}, svc).DeleteArticle(rec, request())

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, fmt.Sprintf(`{"message":"Article deleted","id":%q}`, id), rec.Body.String())
	})

	t.Run("absent article", func(t *testing.T) {
		t.Parallel()

		svc := &adminContentStub{
			deleteArticle: func(uuid.UUID) error { return domain.ErrNotFound },
		}
		rec := httptest.NewRecorder()
		newAdminHandler(&adminAuthStub{}, svc).DeleteArticle(rec, request())

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
