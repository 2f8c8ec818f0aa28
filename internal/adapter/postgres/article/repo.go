// Package article implements the Article repository using PostgreSQL.
package article

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adumedia/website-backend/internal/adapter/postgres"
	"github.com/adumedia/website-backend/internal/domain"
)

// articleColumns is the fixed select list; scanArticle depends on its order.
var articleColumns = []string{
	"id", "original_title", "ai_headline", "headline_translations",
	"source_id", "source_name", "article_url", "original_published",
	"ai_summary", "ai_summary_translations",
	"image_key", "image_full_key", "image_thumb_key",
	"ai_tags", "ai_category", "status", "fetch_date", "created_at",
	"project_id", "editor_notes",
}

// protectedColumns can never be touched by a partial update.
// article_url is immutable identity: the ingestion pipeline dedupes on it.
var protectedColumns = map[string]struct{}{
	"id":          {},
	"created_at":  {},
	"article_url": {},
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides article persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new article repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var getByIDsSQL = `
SELECT ` + strings.Join(articleColumns, ", ") + `
FROM all_articles
WHERE id = ANY($1::uuid[])`

// GetByIDs batch-fetches articles and returns them in the caller-supplied
// id order, not store order. Ids with no matching record are silently
// dropped from the result.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Article, error) {
	if len(ids) == 0 {
		return []domain.Article{}, nil
	}

	rows, err := r.pool.Query(ctx, getByIDsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("get articles by ids: %w", err)
	}
	defer rows.Close()

	articles, err := scanArticles(rows)
	if err != nil {
		return nil, fmt.Errorf("get articles by ids: %w", err)
	}

	return reorderByIDs(ids, articles), nil
}

var getByIDSQL = `
SELECT ` + strings.Join(articleColumns, ", ") + `
FROM all_articles
WHERE id = $1`

// GetByID returns an article by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Article, error) {
	row := r.pool.QueryRow(ctx, getByIDSQL, id)

	a, err := scanArticle(row)
	if err != nil {
		return domain.Article{}, postgres.MapError(err, "article", id)
	}

	return a, nil
}

// Search returns articles whose original title contains the query
// (case-insensitive), ordered by fetch date descending.
func (r *Repo) Search(ctx context.Context, query string, limit, offset int) ([]domain.Article, error) {
	sql, args, err := psql.Select(articleColumns...).
		From("all_articles").
		Where(sq.ILike{"original_title": "%" + query + "%"}).
		OrderBy("fetch_date DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search articles query: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}
	defer rows.Close()

	articles, err := scanArticles(rows)
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}

	return articles, nil
}

// Update applies a partial update after stripping protected columns
// (id, created_at, article_url). Returns the updated record, or
// domain.ErrNotFound when no row matched.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (domain.Article, error) {
	fields = stripProtected(fields)
	if len(fields) == 0 {
		return domain.Article{}, fmt.Errorf("article %s: %w: no updatable fields", id, domain.ErrValidation)
	}

	query, args, err := psql.Update("all_articles").
		SetMap(fields).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(articleColumns, ", ")).
		ToSql()
	if err != nil {
		return domain.Article{}, fmt.Errorf("build update article query: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	a, err := scanArticle(row)
	if err != nil {
		return domain.Article{}, postgres.MapError(err, "article", id)
	}

	return a, nil
}

const softDeleteSQL = `
UPDATE all_articles
SET status = 'archived'
WHERE id = $1`

// SoftDelete flips the article status to archived. The record is retained.
// Returns whether a row was actually updated.
func (r *Repo) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, softDeleteSQL, id)
	if err != nil {
		return false, postgres.MapError(err, "article", id)
	}

	return tag.RowsAffected() > 0, nil
}

// CountPublished returns the number of articles with published status.
func (r *Repo) CountPublished(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM all_articles WHERE status = 'published'`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count published articles: %w", err)
	}

	return count, nil
}

// stripProtected returns a copy of fields without protected columns.
func stripProtected(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if _, protected := protectedColumns[k]; protected {
			continue
		}
		out[k] = v
	}
	return out
}

// reorderByIDs re-projects store-ordered records into the caller's id
// order via an id -> record mapping. Unknown ids are dropped.
func reorderByIDs(ids []uuid.UUID, articles []domain.Article) []domain.Article {
	byID := make(map[uuid.UUID]domain.Article, len(articles))
	for _, a := range articles {
		byID[a.ID] = a
	}

	ordered := make([]domain.Article, 0, len(ids))
	for _, id := range ids {
		if a, ok := byID[id]; ok {
			ordered = append(ordered, a)
		}
	}

	return ordered
}

// scanArticle scans a single article row (QueryRow or rows.Next cursor).
func scanArticle(row pgx.Row) (domain.Article, error) {
	var (
		a      domain.Article
		status string
	)

	if err := row.Scan(
		&a.ID, &a.OriginalTitle, &a.AIHeadline, &a.HeadlineTranslations,
		&a.SourceID, &a.SourceName, &a.URL, &a.PublishedAt,
		&a.AISummary, &a.AISummaryTranslations,
		&a.ImageKey, &a.ImageFullKey, &a.ImageThumbKey,
		&a.Tags, &a.Category, &status, &a.FetchDate, &a.CreatedAt,
		&a.ProjectID, &a.EditorNotes,
	); err != nil {
		return domain.Article{}, err
	}

	a.Status = domain.ArticleStatus(status)

	return a, nil
}

// scanArticles scans multiple rows into a domain.Article slice.
func scanArticles(rows pgx.Rows) ([]domain.Article, error) {
	var articles []domain.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if articles == nil {
		articles = []domain.Article{}
	}

	return articles, nil
}
