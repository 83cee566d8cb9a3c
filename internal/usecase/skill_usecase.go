package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/apperror"
)

const (
	defaultSuggestLimit = 10
	maxSuggestLimit     = 20
)

type skillUsecase struct {
	repo  domain.SkillDirectoryRepository
	cache domain.SuggestionCache
	ttl   time.Duration
}

func NewSkillUsecase(repo domain.SkillDirectoryRepository, cache domain.SuggestionCache, ttl time.Duration) domain.SkillUsecase {
	return &skillUsecase{repo: repo, cache: cache, ttl: ttl}
}

// Suggest serves typeahead skill suggestions. Results are cached per
// normalized query and limit; cache failures degrade to the directory query.
func (u *skillUsecase) Suggest(ctx context.Context, rawQuery string, limit int) ([]domain.SkillSuggestion, error) {
	query := domain.NormalizeSkillName(rawQuery)
	if query == "" {
		return []domain.SkillSuggestion{}, nil
	}
	if limit <= 0 {
		limit = defaultSuggestLimit
	}
	if limit > maxSuggestLimit {
		limit = maxSuggestLimit
	}

	key := fmt.Sprintf("skills:suggest:%s:%d", query, limit)
	if cached, err := u.cache.Get(ctx, key); err != nil {
		slog.Debug("skill suggest cache read failed", "error", err)
	} else if cached != nil {
		return cached, nil
	}

	suggestions, err := u.repo.Suggest(ctx, query, limit)
	if err != nil {
		return nil, apperror.Internal("SKILL_SUGGEST_ERROR", "Unable to fetch skill suggestions.", err)
	}
	if suggestions == nil {
		suggestions = []domain.SkillSuggestion{}
	}
	if err := u.cache.Set(ctx, key, suggestions, u.ttl); err != nil {
		slog.Debug("skill suggest cache write failed", "error", err)
	}
	return suggestions, nil
}
