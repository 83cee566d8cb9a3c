package postgres

import (
	"context"
	"fmt"

	"go-jobportal-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type skillDirectoryRepository struct {
	db *pgxpool.Pool
}

func NewSkillDirectoryRepository(db *pgxpool.Pool) domain.SkillDirectoryRepository {
	return &skillDirectoryRepository{db: db}
}

// RegisterOrBump is a single upsert so the popularity increment happens at the
// storage layer and cannot lose updates under concurrent requests.
func (r *skillDirectoryRepository) RegisterOrBump(ctx context.Context, displayName string) (int64, error) {
	normalized := domain.NormalizeSkillName(displayName)
	if normalized == "" {
		return 0, fmt.Errorf("skill name is empty after normalization")
	}

	query := `
		INSERT INTO skills (name, normalized_name, popularity, created_at, updated_at)
		VALUES ($1, $2, 1, NOW(), NOW())
		ON CONFLICT (normalized_name)
		DO UPDATE SET popularity = skills.popularity + 1, updated_at = NOW()
		RETURNING id`

	var id int64
	if err := r.db.QueryRow(ctx, query, displayName, normalized).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to register skill %q: %w", displayName, err)
	}
	return id, nil
}

func (r *skillDirectoryRepository) Suggest(ctx context.Context, normalizedQuery string, limit int) ([]domain.SkillSuggestion, error) {
	// Single-character queries match by prefix only; a one-letter substring
	// scan would sweep most of the table.
	pattern := "%" + normalizedQuery + "%"
	if len([]rune(normalizedQuery)) == 1 {
		pattern = normalizedQuery + "%"
	}

	query := `
		SELECT id, name FROM skills
		WHERE normalized_name LIKE $1
		ORDER BY popularity DESC, name ASC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	suggestions := []domain.SkillSuggestion{}
	for rows.Next() {
		var s domain.SkillSuggestion
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		suggestions = append(suggestions, s)
	}
	return suggestions, rows.Err()
}

// BulkImport inserts seed rows in batches, silently skipping rows whose
// normalized name already exists.
func (r *skillDirectoryRepository) BulkImport(ctx context.Context, importRows []domain.SkillImportRow) (int64, error) {
	query := `
		INSERT INTO skills (name, normalized_name, alt_labels, source_uri, popularity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 0, NOW(), NOW())
		ON CONFLICT (normalized_name) DO NOTHING`

	var processed int64
	for _, row := range importRows {
		normalized := domain.NormalizeSkillName(row.Name)
		if normalized == "" {
			continue
		}
		_, err := r.db.Exec(ctx, query, row.Name, normalized, pq.Array(row.AltLabels), row.SourceURI)
		if err != nil {
			return processed, fmt.Errorf("failed to import skill %q: %w", row.Name, err)
		}
		processed++
	}
	return processed, nil
}
