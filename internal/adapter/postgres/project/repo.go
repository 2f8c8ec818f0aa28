// Package project implements the read-only Project repository.
package project

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adumedia/website-backend/internal/adapter/postgres"
	"github.com/adumedia/website-backend/internal/domain"
)

// Repo provides project lookups backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new project repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getByIDSQL = `
SELECT id, name, architect, location, created_at
FROM projects
WHERE id = $1`

// GetByID returns a project by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Project, error) {
	var p domain.Project
	err := r.pool.QueryRow(ctx, getByIDSQL, id).
		Scan(&p.ID, &p.Name, &p.Architect, &p.Location, &p.CreatedAt)
	if err != nil {
		return domain.Project{}, postgres.MapError(err, "project", id)
	}

	return p, nil
}

// Count returns the total number of projects.
func (r *Repo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM projects`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}

	return count, nil
}
