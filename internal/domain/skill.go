package domain

import (
	"context"
	"strings"
	"time"
)

// Skill is a global directory entry, deduplicated by normalized name. Rows are
// created on first use and never deleted; popularity only increases.
type Skill struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	NormalizedName string    `json:"normalized_name"`
	AltLabels      []string  `json:"alt_labels,omitempty"`
	SourceURI      string    `json:"source_uri,omitempty"`
	Popularity     int64     `json:"popularity"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type SkillSuggestion struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SkillImportRow is one record of a tabular skill seed (ESCO export).
type SkillImportRow struct {
	Name      string
	AltLabels []string
	SourceURI string
}

// NormalizeSkillName folds a display name to its canonical form: lowercase
// with internal whitespace collapsed. Two names with the same normalized form
// are the same skill.
func NormalizeSkillName(value string) string {
	return strings.Join(strings.Fields(strings.ToLower(value)), " ")
}

type SkillDirectoryRepository interface {
	// RegisterOrBump creates the skill with popularity=1, or atomically
	// increments popularity when the normalized name already exists.
	RegisterOrBump(ctx context.Context, displayName string) (int64, error)
	// Suggest matches by prefix for single-character queries and by substring
	// otherwise, ordered by popularity desc then name asc.
	Suggest(ctx context.Context, normalizedQuery string, limit int) ([]SkillSuggestion, error)
	// BulkImport inserts rows, skipping normalized-name collisions.
	BulkImport(ctx context.Context, rows []SkillImportRow) (int64, error)
}

// SuggestionCache is the short-TTL key-value store for suggest results.
// A nil slice with nil error means cache miss.
type SuggestionCache interface {
	Get(ctx context.Context, key string) ([]SkillSuggestion, error)
	Set(ctx context.Context, key string, value []SkillSuggestion, ttl time.Duration) error
}

type SkillUsecase interface {
	Suggest(ctx context.Context, rawQuery string, limit int) ([]SkillSuggestion, error)
}
