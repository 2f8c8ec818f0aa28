package domain

import (
	"time"

	"github.com/google/uuid"
)

// Project holds architecture-project metadata an article may link to.
// Read-only here: lookups by id only.
type Project struct {
	ID        uuid.UUID
	Name      string
	Architect *string
	Location  *string
	CreatedAt time.Time
}
