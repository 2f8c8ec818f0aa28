// Package edition implements the Edition repository using PostgreSQL.
// Fixed lookups use raw SQL; dynamic queries (filtered listing, partial
// updates) are built with squirrel.
package edition

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adumedia/website-backend/internal/adapter/postgres"
	"github.com/adumedia/website-backend/internal/domain"
)

// editionColumns is the fixed select list; scanEdition depends on its order.
var editionColumns = []string{
	"id", "edition_type", "edition_date", "article_ids",
	"articles_selected", "edition_summary", "created_at",
}

// protectedColumns can never be touched by a partial update. Attempts to
// modify them are stripped silently, not rejected.
var protectedColumns = map[string]struct{}{
	"id":         {},
	"created_at": {},
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides edition persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new edition repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// List returns editions ordered by date descending (creation time as a
// stable tiebreak). typ filters by exact edition type when non-nil.
// An empty result is not an error.
func (r *Repo) List(ctx context.Context, limit, offset int, typ *domain.EditionType) ([]domain.Edition, error) {
	builder := psql.Select(editionColumns...).
		From("editions").
		OrderBy("edition_date DESC", "created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	if typ != nil {
		builder = builder.Where(sq.Eq{"edition_type": string(*typ)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list editions query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list editions: %w", err)
	}
	defer rows.Close()

	editions, err := scanEditions(rows)
	if err != nil {
		return nil, fmt.Errorf("list editions: %w", err)
	}

	return editions, nil
}

const getByDateSQL = `
SELECT id, edition_type, edition_date, article_ids,
       articles_selected, edition_summary, created_at
FROM editions
WHERE edition_date = $1
ORDER BY created_at DESC
LIMIT 1`

// GetByDate returns the edition for a calendar date.
// When several editions share the date, the most recently created wins.
func (r *Repo) GetByDate(ctx context.Context, date time.Time) (domain.Edition, error) {
	row := r.pool.QueryRow(ctx, getByDateSQL, date)

	e, err := scanEdition(row)
	if err != nil {
		return domain.Edition{}, postgres.MapError(err, "edition", date.Format("2006-01-02"))
	}

	return e, nil
}

const getByIDSQL = `
SELECT id, edition_type, edition_date, article_ids,
       articles_selected, edition_summary, created_at
FROM editions
WHERE id = $1`

// GetByID returns an edition by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Edition, error) {
	row := r.pool.QueryRow(ctx, getByIDSQL, id)

	e, err := scanEdition(row)
	if err != nil {
		return domain.Edition{}, postgres.MapError(err, "edition", id)
	}

	return e, nil
}

// Update applies a partial update after stripping protected columns.
// Returns the updated record, or domain.ErrNotFound when no row matched.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (domain.Edition, error) {
	fields = stripProtected(fields)
	if len(fields) == 0 {
		return domain.Edition{}, fmt.Errorf("edition %s: %w: no updatable fields", id, domain.ErrValidation)
	}

	query, args, err := psql.Update("editions").
		SetMap(fields).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(editionColumns, ", ")).
		ToSql()
	if err != nil {
		return domain.Edition{}, fmt.Errorf("build update edition query: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	e, err := scanEdition(row)
	if err != nil {
		return domain.Edition{}, postgres.MapError(err, "edition", id)
	}

	return e, nil
}

const updateArticleListSQL = `
UPDATE editions
SET article_ids = $1, articles_selected = $2
WHERE id = $3 AND article_ids = $4`

// UpdateArticleList writes back a modified article-id list with a
// recomputed count. The WHERE clause carries the previously read list as
// an equality precondition so a concurrent writer cannot be silently
// overwritten: if the stored list changed since the read, zero rows match
// and domain.ErrConflict is returned.
func (r *Repo) UpdateArticleList(ctx context.Context, id uuid.UUID, prev, next []uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, updateArticleListSQL, next, len(next), id, prev)
	if err != nil {
		return postgres.MapError(err, "edition", id)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("edition %s: article list changed concurrently: %w", id, domain.ErrConflict)
	}

	return nil
}

// Count returns the total number of editions.
func (r *Repo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM editions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count editions: %w", err)
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

// scanEdition scans a single edition row (QueryRow or rows.Next cursor).
func scanEdition(row pgx.Row) (domain.Edition, error) {
	var (
		e          domain.Edition
		typ        string
		articleIDs []uuid.UUID
	)

	if err := row.Scan(&e.ID, &typ, &e.Date, &articleIDs,
		&e.ArticlesSelected, &e.Summary, &e.CreatedAt); err != nil {
		return domain.Edition{}, err
	}

	e.Type = domain.EditionType(typ)
	e.ArticleIDs = articleIDs

	return e, nil
}

// scanEditions scans multiple rows into a domain.Edition slice.
func scanEditions(rows pgx.Rows) ([]domain.Edition, error) {
	var editions []domain.Edition
	for rows.Next() {
		e, err := scanEdition(rows)
		if err != nil {
			return nil, err
		}
		editions = append(editions, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if editions == nil {
		editions = []domain.Edition{}
	}

	return editions, nil
}
