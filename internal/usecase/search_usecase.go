package usecase

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/apperror"
)

const (
	defaultSearchPageSize = 20
	maxSearchPageSize     = 50
)

type searchUsecase struct {
	repo    domain.SearchRepository
	storage domain.FileStorage
}

func NewSearchUsecase(repo domain.SearchRepository, storage domain.FileStorage) domain.SearchUsecase {
	return &searchUsecase{repo: repo, storage: storage}
}

// Search runs the employer candidate search. Clauses are OR-combined on top
// of the searchable/active base filter; a request with no recognized inputs
// returns an empty result without hitting the database.
func (u *searchUsecase) Search(ctx context.Context, params domain.SearchParams) (*domain.SearchResult, error) {
	if !params.HasInputs() {
		return &domain.SearchResult{Count: 0, Results: []domain.SearchResultItem{}}, nil
	}

	filter := parseSearchParams(params)
	aggregates, err := u.repo.FindSearchable(ctx, filter)
	if err != nil {
		return nil, apperror.Internal("CANDIDATE_SEARCH_ERROR", "Unable to search candidates.", err)
	}

	// profiles flagged searchable but since fallen below the completion
	// threshold are filtered here rather than trusted from the flag
	items := make([]domain.SearchResultItem, 0, len(aggregates))
	for i := range aggregates {
		agg := &aggregates[i]
		percent, _ := domain.CalculateCompletion(agg)
		if percent < domain.MinSearchableCompletion {
			continue
		}
		items = append(items, searchItem(agg))
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = defaultSearchPageSize
	}
	if pageSize > maxSearchPageSize {
		pageSize = maxSearchPageSize
	}
	start := (page - 1) * pageSize
	if start > len(items) {
		start = len(items)
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	return &domain.SearchResult{Count: len(items), Results: items[start:end]}, nil
}

func (u *searchUsecase) GetCandidateDetail(ctx context.Context, candidateID uuid.UUID) (*domain.SearchResultItem, error) {
	agg, err := u.aggregate(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	item := searchItem(agg)
	return &item, nil
}

func (u *searchUsecase) GetCandidateProfile(ctx context.Context, employerOrgID *uuid.UUID, candidateID uuid.UUID) (*domain.EmployerProfileView, error) {
	agg, err := u.aggregate(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	if employerOrgID != nil {
		ownerOrg, err := u.repo.OwnerOrganization(ctx, agg.Profile.ID)
		if err != nil {
			return nil, apperror.Internal("CANDIDATE_PROFILE_ERROR", "Unable to fetch candidate profile.", err)
		}
		if ownerOrg != nil && *ownerOrg != *employerOrgID {
			return nil, apperror.Forbidden("Not authorized.")
		}
	}

	view := domain.ProfileView{
		CandidateProfile: agg.Profile,
		LastUpdated:      agg.Profile.UpdatedAt,
	}
	if agg.Profile.ResumeKey != "" {
		view.ResumeURL = u.storage.URL(agg.Profile.ResumeKey)
		parts := strings.Split(agg.Profile.ResumeKey, "/")
		view.ResumeFilename = parts[len(parts)-1]
	}
	if agg.Profile.PhotoKey != "" {
		view.PhotoURL = u.storage.URL(agg.Profile.PhotoKey)
	}

	return &domain.EmployerProfileView{
		Profile:                  view,
		Skills:                   agg.Skills,
		Employments:              agg.Employments,
		Educations:               agg.Educations,
		Projects:                 agg.Projects,
		ProfileCompletionPercent: sectionCompletion(agg),
		LastUpdated:              agg.Profile.UpdatedAt,
	}, nil
}

func (u *searchUsecase) aggregate(ctx context.Context, candidateID uuid.UUID) (*domain.ProfileAggregate, error) {
	agg, err := u.repo.FindByProfileID(ctx, candidateID)
	if err != nil {
		return nil, apperror.Internal("CANDIDATE_PROFILE_ERROR", "Unable to fetch candidate profile.", err)
	}
	if agg == nil {
		return nil, apperror.NotFound("CANDIDATE_NOT_FOUND", "Candidate not found.")
	}
	return agg, nil
}

// sectionCompletion is the employer-facing score: seven equally weighted
// sections, rounded to the nearest percent.
func sectionCompletion(a *domain.ProfileAggregate) int {
	sections := []bool{
		a.Profile.FullName != "" && a.Profile.Email != "" && a.Profile.Phone != "" && a.Profile.Location != "",
		a.Profile.Summary != "",
		len(a.Skills) > 0,
		len(a.Employments) > 0,
		len(a.Educations) > 0,
		len(a.Projects) > 0,
		a.Profile.ResumeKey != "",
	}
	completed := 0
	for _, filled := range sections {
		if filled {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(len(sections)) * 100))
}

func searchItem(a *domain.ProfileAggregate) domain.SearchResultItem {
	skills := make([]string, 0, len(a.Skills))
	for _, s := range a.Skills {
		skills = append(skills, s.Name)
	}
	years := float64(a.Profile.TotalExperienceYears)
	months := float64(a.Profile.TotalExperienceMonths)
	experience := math.Round((years+months/12)*10) / 10

	return domain.SearchResultItem{
		ID:              a.Profile.ID,
		FullName:        a.Profile.FullName,
		Email:           a.Profile.Email,
		Phone:           a.Profile.Phone,
		Location:        a.Profile.Location,
		Skills:          skills,
		Summary:         a.Profile.Summary,
		LastUpdated:     a.Profile.UpdatedAt,
		TotalExperience: experience,
	}
}

// parseSearchParams converts raw query values into typed clauses. Numeric
// values that fail to parse drop their clause silently.
func parseSearchParams(p domain.SearchParams) domain.SearchFilter {
	f := domain.SearchFilter{
		Keywords:     strings.TrimSpace(p.Keywords),
		Location:     strings.TrimSpace(p.Location),
		City:         strings.TrimSpace(p.City),
		State:        strings.TrimSpace(p.State),
		Country:      strings.TrimSpace(p.Country),
		WorkStatus:   strings.TrimSpace(p.WorkStatus),
		Availability: strings.TrimSpace(p.AvailabilityToJoin),
		Education:    strings.TrimSpace(p.Education),
	}

	if v := strings.TrimSpace(p.ExpMin); v != "" {
		if years, err := strconv.ParseFloat(v, 64); err == nil {
			months := int(years * 12)
			f.ExpMinMonths = &months
		}
	}
	if v := strings.TrimSpace(p.ExpMax); v != "" {
		if years, err := strconv.ParseFloat(v, 64); err == nil {
			months := int(years * 12)
			f.ExpMaxMonths = &months
		}
	}
	for _, raw := range strings.Split(p.Skills, ",") {
		if name := strings.TrimSpace(raw); name != "" {
			f.SkillNames = append(f.SkillNames, name)
		}
	}
	for _, raw := range strings.Split(p.SkillIDs, ",") {
		if v := strings.TrimSpace(raw); v != "" {
			if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
				f.SkillIDs = append(f.SkillIDs, id)
			}
		}
	}
	if v := strings.TrimSpace(p.UpdatedWithin); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			since := time.Now().AddDate(0, 0, -days)
			f.UpdatedSince = &since
		}
	}
	if v := strings.TrimSpace(p.SalaryMin); v != "" {
		if amount, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.SalaryMin = &amount
		}
	}
	if v := strings.TrimSpace(p.SalaryMax); v != "" {
		if amount, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.SalaryMax = &amount
		}
	}
	if v := strings.TrimSpace(p.NoticePeriod); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			f.NoticeMaxDays = &days
		}
	}
	return f
}
