package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EditionType distinguishes the digest cadence of an edition.
type EditionType string

const (
	EditionDaily   EditionType = "daily"
	EditionWeekend EditionType = "weekend"
	EditionWeekly  EditionType = "weekly"
)

// ParseEditionType validates a raw type string from user input.
func ParseEditionType(s string) (EditionType, error) {
	switch EditionType(s) {
	case EditionDaily, EditionWeekend, EditionWeekly:
		return EditionType(s), nil
	}
	return "", fmt.Errorf("%w: unknown edition type %q", ErrValidation, s)
}

// Edition is a dated digest bundling a curated ordered set of articles.
// Editions are created by the external ingestion pipeline; this system
// only reads them and updates the editor-owned fields.
//
// ArticlesSelected should equal len(ArticleIDs). The store does not
// enforce this; whoever appends or removes ids maintains the count.
type Edition struct {
	ID               uuid.UUID
	Type             EditionType
	Date             time.Time // calendar date, not unique per type
	ArticleIDs       []uuid.UUID
	ArticlesSelected int
	Summary          *string
	CreatedAt        time.Time
}
