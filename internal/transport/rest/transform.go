package rest

import (
	"fmt"
	"strings"
	"time"

	"github.com/adumedia/website-backend/internal/domain"
)

// articleView is the wire shape of an article. Public and admin surfaces
// share it; the admin detail view extends it with adminArticleView.
type articleView struct {
	ID                    string            `json:"id"`
	Title                 string            `json:"title"`
	SourceID              string            `json:"source_id"`
	SourceName            string            `json:"source_name"`
	URL                   string            `json:"url"`
	PublishedDate         *time.Time        `json:"published_date"`
	AISummary             string            `json:"ai_summary"`
	ImageURL              *string           `json:"image_url,omitempty"`
	Tags                  []string          `json:"tags"`
	Category              string            `json:"category"`
	HeadlineTranslations  map[string]string `json:"headline_translations"`
	AISummaryTranslations map[string]string `json:"ai_summary_translations"`
}

// editionView is the wire shape of an edition. Articles and
// EditionSummary are present only in detail views; their absence (not
// emptiness) is what distinguishes a summary row from a detail payload.
type editionView struct {
	ID             string         `json:"id"`
	EditionType    string         `json:"edition_type"`
	EditionDate    string         `json:"edition_date"`
	ArticleCount   int            `json:"article_count"`
	DateFormatted  string         `json:"date_formatted"`
	DayOfWeek      string         `json:"day_of_week"`
	Articles       *[]articleView `json:"articles,omitempty"`
	EditionSummary *string        `json:"edition_summary,omitempty"`
}

// transformArticle maps a stored article to its wire shape. The AI
// headline wins over the original title when present. The image URL is
// built from the thumbnail, full-size or legacy key (in that preference
// order, honoring useThumbnail) and is omitted entirely unless both a
// key and the asset base URL exist.
func transformArticle(a domain.Article, useThumbnail bool, assetBaseURL string) articleView {
	view := articleView{
		ID:                    a.ID.String(),
		Title:                 a.OriginalTitle,
		SourceID:              a.SourceID,
		SourceName:            a.SourceName,
		URL:                   a.URL,
		PublishedDate:         a.PublishedAt,
		Tags:                  []string{},
		HeadlineTranslations:  map[string]string{},
		AISummaryTranslations: map[string]string{},
	}

	if a.AIHeadline != nil && *a.AIHeadline != "" {
		view.Title = *a.AIHeadline
	}
	if a.AISummary != nil {
		view.AISummary = *a.AISummary
	}
	if a.Category != nil {
		view.Category = *a.Category
	}
	if len(a.Tags) > 0 {
		view.Tags = a.Tags
	}
	if len(a.HeadlineTranslations) > 0 {
		view.HeadlineTranslations = a.HeadlineTranslations
	}
	if len(a.AISummaryTranslations) > 0 {
		view.AISummaryTranslations = a.AISummaryTranslations
	}

	if url := imageURL(a, useThumbnail, assetBaseURL); url != "" {
		view.ImageURL = &url
	}

	return view
}

// transformEdition maps a stored edition to its wire shape. A non-nil
// articles slice switches the view to detail mode: transformed articles
// and the edition summary are attached. Article count comes from the
// stored selected counter, never from len(articles).
func transformEdition(e domain.Edition, articles []domain.Article, useThumbnails bool, assetBaseURL string) editionView {
	view := editionView{
		ID:            e.ID.String(),
		EditionType:   string(e.Type),
		EditionDate:   e.Date.Format("2006-01-02"),
		ArticleCount:  e.ArticlesSelected,
		DateFormatted: formatDate(e.Date),
		DayOfWeek:     e.Date.Format("Monday"),
	}

	if articles != nil {
		views := make([]articleView, 0, len(articles))
		for _, a := range articles {
			views = append(views, transformArticle(a, useThumbnails, assetBaseURL))
		}
		view.Articles = &views

		summary := ""
		if e.Summary != nil {
			summary = *e.Summary
		}
		view.EditionSummary = &summary
	}

	return view
}

// formatDate renders "30 January 2026" with no leading zero on the day.
func formatDate(d time.Time) string {
	return fmt.Sprintf("%d %s %d", d.Day(), d.Month(), d.Year())
}

// imageURL picks the best image key for the requested size and joins it
// with the asset base. Empty when no key or no base is configured.
func imageURL(a domain.Article, useThumbnail bool, assetBaseURL string) string {
	key := ""
	switch {
	case useThumbnail && a.ImageThumbKey != nil && *a.ImageThumbKey != "":
		key = *a.ImageThumbKey
	case a.ImageFullKey != nil && *a.ImageFullKey != "":
		key = *a.ImageFullKey
	case a.ImageKey != nil && *a.ImageKey != "":
		key = *a.ImageKey
	}

	if key == "" || assetBaseURL == "" {
		return ""
	}

	return strings.TrimRight(assetBaseURL, "/") + "/" + strings.TrimLeft(key, "/")
}
