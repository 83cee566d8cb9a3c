package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SearchParams carries the raw query parameters of employer search. All are
// optional strings; parse failures on numeric values drop the clause, they
// never error.
type SearchParams struct {
	Keywords           string
	Location           string
	City               string
	State              string
	Country            string
	ExpMin             string
	ExpMax             string
	Skills             string // comma list of skill names
	SkillIDs           string // comma list of directory ids
	UpdatedWithin      string // day count
	SalaryMin          string
	SalaryMax          string
	NoticePeriod       string
	WorkStatus         string
	AvailabilityToJoin string
	Education          string
	Page               int
	PageSize           int
}

// HasInputs reports whether any recognized parameter carries a non-blank
// value. Zero inputs short-circuit to an empty result set: there is no
// browse-all mode.
func (p SearchParams) HasInputs() bool {
	fields := []string{
		p.Keywords, p.Location, p.City, p.State, p.Country,
		p.ExpMin, p.ExpMax, p.Skills, p.SkillIDs, p.UpdatedWithin,
		p.SalaryMin, p.SalaryMax, p.NoticePeriod, p.WorkStatus,
		p.AvailabilityToJoin, p.Education,
	}
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return true
		}
	}
	return false
}

// SearchFilter is the parsed form handed to the repository. Each present
// clause is combined with the others by logical OR on top of the base filter
// (searchable profile, active owner).
type SearchFilter struct {
	Keywords      string
	Location      string
	City          string
	State         string
	Country       string
	ExpMinMonths  *int
	ExpMaxMonths  *int
	SkillNames    []string
	SkillIDs      []int64
	UpdatedSince  *time.Time
	SalaryMin     *int64
	SalaryMax     *int64
	NoticeMaxDays *int
	WorkStatus    string
	Availability  string
	Education     string
}

type SearchResultItem struct {
	ID              uuid.UUID `json:"id"`
	FullName        string    `json:"full_name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Location        string    `json:"location"`
	Skills          []string  `json:"skills"`
	Summary         string    `json:"summary"`
	LastUpdated     time.Time `json:"last_updated"`
	TotalExperience float64   `json:"total_experience"`
}

type SearchResult struct {
	Count   int                `json:"count"`
	Results []SearchResultItem `json:"results"`
}

// EmployerProfileView is the org-scoped full profile view; its completion
// percentage uses the employer-facing seven-section formula.
type EmployerProfileView struct {
	Profile                  ProfileView           `json:"profile"`
	Skills                   []CandidateSkill      `json:"skills"`
	Employments              []CandidateEmployment `json:"employments"`
	Educations               []CandidateEducation  `json:"educations"`
	Projects                 []CandidateProject    `json:"projects"`
	ProfileCompletionPercent int                   `json:"profile_completion_percent"`
	LastUpdated              time.Time             `json:"last_updated"`
}

type SearchRepository interface {
	// FindSearchable returns deduplicated aggregates of searchable profiles
	// owned by active users, matching any of the filter's clauses.
	FindSearchable(ctx context.Context, filter SearchFilter) ([]ProfileAggregate, error)
	// FindByProfileID loads one aggregate regardless of searchable state.
	FindByProfileID(ctx context.Context, profileID uuid.UUID) (*ProfileAggregate, error)
	// OwnerOrganization resolves the owning user's organization for the
	// cross-organization access check.
	OwnerOrganization(ctx context.Context, profileID uuid.UUID) (*uuid.UUID, error)
}

type SearchUsecase interface {
	Search(ctx context.Context, params SearchParams) (*SearchResult, error)
	GetCandidateDetail(ctx context.Context, candidateID uuid.UUID) (*SearchResultItem, error)
	GetCandidateProfile(ctx context.Context, employerOrgID *uuid.UUID, candidateID uuid.UUID) (*EmployerProfileView, error)
}
