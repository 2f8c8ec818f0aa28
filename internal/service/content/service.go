// Package content implements the edition/article/stats use cases on top
// of the repositories. Handlers talk to this package only.
package content

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/adumedia/website-backend/internal/domain"
)

// editionRepo is the subset of the edition repository the service needs.
type editionRepo interface {
	List(ctx context.Context, limit, offset int, typ *domain.EditionType) ([]domain.Edition, error)
	GetByDate(ctx context.Context, date time.Time) (domain.Edition, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Edition, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (domain.Edition, error)
	UpdateArticleList(ctx context.Context, id uuid.UUID, prev, next []uuid.UUID) error
	Count(ctx context.Context) (int, error)
}

type articleRepo interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Article, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Article, error)
	Search(ctx context.Context, query string, limit, offset int) ([]domain.Article, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (domain.Article, error)
	SoftDelete(ctx context.Context, id uuid.UUID) (bool, error)
	CountPublished(ctx context.Context) (int, error)
}

type projectRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Project, error)
	Count(ctx context.Context) (int, error)
}

// Service bundles the content use cases.
type Service struct {
	editions editionRepo
	articles articleRepo
	projects projectRepo
	now      func() time.Time
}

// New creates a content service.
func New(editions editionRepo, articles articleRepo, projects projectRepo) *Service {
	return &Service{
		editions: editions,
		articles: articles,
		projects: projects,
		now:      time.Now,
	}
}

// EditionPage is one page of editions with a has-more flag derived from
// an over-fetch probe, not from a count query.
type EditionPage struct {
	Editions []domain.Edition
	HasMore  bool
}

// EditionDetail is an edition together with its articles in list order.
type EditionDetail struct {
	Edition  domain.Edition
	Articles []domain.Article
}

// ArticlePage is one page of search results.
type ArticlePage struct {
	Articles []domain.Article
	HasMore  bool
}

// ArticleDetail is an article with its linked project, when one is set.
type ArticleDetail struct {
	Article domain.Article
	Project *domain.Project
}

// Stats is the admin dashboard aggregate.
type Stats struct {
	TotalEditions          int
	TotalPublishedArticles int
	TotalProjects          int
	RecentEditions         []domain.Edition
}

// EditionPatch carries the editor-updatable edition fields. Nil means
// "leave unchanged"; a patch with every field nil is a validation error.
type EditionPatch struct {
	Summary    *string
	ArticleIDs *[]uuid.UUID
}

// ArticlePatch carries the editor-updatable article fields.
type ArticlePatch struct {
	AISummary   *string
	EditorNotes *string
	Category    *string
	Tags        *[]string
}

// ListEditions returns a page of editions. The page is fetched with one
// extra record: a full over-fetch means more pages exist.
func (s *Service) ListEditions(ctx context.Context, limit, offset int, typ *domain.EditionType) (EditionPage, error) {
	editions, err := s.editions.List(ctx, limit+1, offset, typ)
	if err != nil {
		return EditionPage{}, err
	}

	editions, hasMore := probe(editions, limit)

	return EditionPage{Editions: editions, HasMore: hasMore}, nil
}

// AdminEditions returns a plain slice for the admin dashboard listing.
// No over-fetch probe here.
func (s *Service) AdminEditions(ctx context.Context, limit, offset int) ([]domain.Edition, error) {
	return s.editions.List(ctx, limit, offset, nil)
}

// TodayEdition returns today's edition, falling back to the most recent
// one when today has none. ErrNotFound only when the store is empty.
func (s *Service) TodayEdition(ctx context.Context) (EditionDetail, error) {
	today := s.now().UTC().Truncate(24 * time.Hour)

	edition, err := s.editions.GetByDate(ctx, today)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return s.LatestEdition(ctx)
	case err != nil:
		return EditionDetail{}, err
	}

	return s.withArticles(ctx, edition)
}

// LatestEdition returns the most recent edition with its articles.
func (s *Service) LatestEdition(ctx context.Context) (EditionDetail, error) {
	editions, err := s.editions.List(ctx, 1, 0, nil)
	if err != nil {
		return EditionDetail{}, err
	}
	if len(editions) == 0 {
		return EditionDetail{}, fmt.Errorf("latest edition: %w", domain.ErrNotFound)
	}

	return s.withArticles(ctx, editions[0])
}

// EditionByDate returns the edition for a calendar date with its articles.
func (s *Service) EditionByDate(ctx context.Context, date time.Time) (EditionDetail, error) {
	edition, err := s.editions.GetByDate(ctx, date)
	if err != nil {
		return EditionDetail{}, err
	}

	return s.withArticles(ctx, edition)
}

// EditionByID returns an edition by id with its articles.
func (s *Service) EditionByID(ctx context.Context, id uuid.UUID) (EditionDetail, error) {
	edition, err := s.editions.GetByID(ctx, id)
	if err != nil {
		return EditionDetail{}, err
	}

	return s.withArticles(ctx, edition)
}

// UpdateEdition applies an editor patch. When the article-id list is
// replaced, the selected count is recomputed from it so the two never
// drift apart.
func (s *Service) UpdateEdition(ctx context.Context, id uuid.UUID, patch EditionPatch) error {
	if _, err := s.editions.GetByID(ctx, id); err != nil {
		return err
	}

	fields := map[string]any{}
	if patch.Summary != nil {
		fields["edition_summary"] = *patch.Summary
	}
	if patch.ArticleIDs != nil {
		fields["article_ids"] = *patch.ArticleIDs
		fields["articles_selected"] = len(*patch.ArticleIDs)
	}
	if len(fields) == 0 {
		return fmt.Errorf("edition %s: %w: empty patch", id, domain.ErrValidation)
	}

	_, err := s.editions.Update(ctx, id, fields)
	return err
}

// RemoveArticleFromEdition drops the first occurrence of articleID from
// the edition's list. ErrNotFound when the edition is absent or the
// article is not referenced; ErrConflict when the list changed between
// read and write-back.
func (s *Service) RemoveArticleFromEdition(ctx context.Context, editionID, articleID uuid.UUID) error {
	edition, err := s.editions.GetByID(ctx, editionID)
	if err != nil {
		return err
	}

	next, removed := removeFirst(edition.ArticleIDs, articleID)
	if !removed {
		return fmt.Errorf("article %s not in edition %s: %w", articleID, editionID, domain.ErrNotFound)
	}

	return s.editions.UpdateArticleList(ctx, editionID, edition.ArticleIDs, next)
}

// SearchArticles returns a page of articles matching the title query.
func (s *Service) SearchArticles(ctx context.Context, query string, limit, offset int) (ArticlePage, error) {
	articles, err := s.articles.Search(ctx, query, limit+1, offset)
	if err != nil {
		return ArticlePage{}, err
	}

	articles, hasMore := probe(articles, limit)

	return ArticlePage{Articles: articles, HasMore: hasMore}, nil
}

// ArticleByID returns a single article.
func (s *Service) ArticleByID(ctx context.Context, id uuid.UUID) (domain.Article, error) {
	return s.articles.GetByID(ctx, id)
}

// ArticleDetail returns an article with its linked project resolved.
// A dangling project reference yields a nil project, not an error.
func (s *Service) ArticleDetail(ctx context.Context, id uuid.UUID) (ArticleDetail, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return ArticleDetail{}, err
	}

	detail := ArticleDetail{Article: article}
	if article.ProjectID != nil {
		project, err := s.projects.GetByID(ctx, *article.ProjectID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			// dangling reference, serve the article without it
		case err != nil:
			return ArticleDetail{}, err
		default:
			detail.Project = &project
		}
	}

	return detail, nil
}

// UpdateArticle applies an editor patch to an article.
func (s *Service) UpdateArticle(ctx context.Context, id uuid.UUID, patch ArticlePatch) error {
	if _, err := s.articles.GetByID(ctx, id); err != nil {
		return err
	}

	fields := map[string]any{}
	if patch.AISummary != nil {
		fields["ai_summary"] = *patch.AISummary
	}
	if patch.EditorNotes != nil {
		fields["editor_notes"] = *patch.EditorNotes
	}
	if patch.Category != nil {
		fields["ai_category"] = *patch.Category
	}
	if patch.Tags != nil {
		fields["ai_tags"] = *patch.Tags
	}
	if len(fields) == 0 {
		return fmt.Errorf("article %s: %w: empty patch", id, domain.ErrValidation)
	}

	_, err := s.articles.Update(ctx, id, fields)
	return err
}

// DeleteArticle archives an article. The record stays in the store.
func (s *Service) DeleteArticle(ctx context.Context, id uuid.UUID) error {
	if _, err := s.articles.GetByID(ctx, id); err != nil {
		return err
	}

	ok, err := s.articles.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("archive article %s: no rows updated", id)
	}

	return nil
}

// Stats collects the admin dashboard counters and the five most recent
// editions.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	totalEditions, err := s.editions.Count(ctx)
	if err != nil {
		return Stats{}, err
	}

	totalArticles, err := s.articles.CountPublished(ctx)
	if err != nil {
		return Stats{}, err
	}

	totalProjects, err := s.projects.Count(ctx)
	if err != nil {
		return Stats{}, err
	}

	recent, err := s.editions.List(ctx, 5, 0, nil)
	if err != nil {
		return Stats{}, err
	}

	return Stats{
		TotalEditions:          totalEditions,
		TotalPublishedArticles: totalArticles,
		TotalProjects:          totalProjects,
		RecentEditions:         recent,
	}, nil
}

func (s *Service) withArticles(ctx context.Context, edition domain.Edition) (EditionDetail, error) {
	articles, err := s.articles.GetByIDs(ctx, edition.ArticleIDs)
	if err != nil {
		return EditionDetail{}, err
	}

	return EditionDetail{Edition: edition, Articles: articles}, nil
}

// probe truncates a limit+1 over-fetch back to the page size and reports
// whether the extra record was present.
func probe[T any](items []T, limit int) ([]T, bool) {
	if len(items) > limit {
		return items[:limit], true
	}
	return items, false
}

// removeFirst returns a copy of ids without the first occurrence of id.
func removeFirst(ids []uuid.UUID, id uuid.UUID) ([]uuid.UUID, bool) {
	for i, v := range ids {
		if v == id {
			next := make([]uuid.UUID, 0, len(ids)-1)
			next = append(next, ids[:i]...)
			next = append(next, ids[i+1:]...)
			return next, true
		}
	}
	return ids, false
}
