package domain

import (
	"time"

	"github.com/google/uuid"
)

// ArticleStatus is the lifecycle state of an ingested article.
// Values other than the constants below may appear in the store
// (the ingestion pipeline owns the full set).
type ArticleStatus string

const (
	ArticlePublished ArticleStatus = "published"
	ArticleArchived  ArticleStatus = "archived"
)

// Article is one ingested content item with AI-derived metadata.
// URL is treated as immutable identity and is never updated here.
type Article struct {
	ID            uuid.UUID
	OriginalTitle string

	// AIHeadline, when present, is preferred over OriginalTitle in
	// API responses.
	AIHeadline           *string
	HeadlineTranslations map[string]string // language code -> headline

	SourceID    string
	SourceName  string
	URL         string
	PublishedAt *time.Time

	AISummary             *string
	AISummaryTranslations map[string]string

	// Image references are object keys under the public asset base URL.
	// ImageKey is the legacy single-variant field kept for older rows.
	ImageKey      *string
	ImageFullKey  *string
	ImageThumbKey *string

	Tags     []string
	Category *string

	Status    ArticleStatus
	FetchDate time.Time
	CreatedAt time.Time

	ProjectID   *uuid.UUID
	EditorNotes *string
}
