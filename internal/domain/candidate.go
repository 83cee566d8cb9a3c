package domain

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

type WorkStatus string

const (
	WorkStatusFresher     WorkStatus = "FRESHER"
	WorkStatusExperienced WorkStatus = "EXPERIENCED"
)

const (
	ProjectStatusInProgress = "IN_PROGRESS"
	ProjectStatusFinished   = "FINISHED"
)

// Enumerated sets for profile fields. Empty is always accepted; these guard
// the non-empty values only.
var (
	AvailabilityOptions = []string{"15_DAYS_OR_LESS", "1_MONTH", "2_MONTHS", "3_MONTHS", "MORE_THAN_3_MONTHS"}
	GenderOptions       = []string{"MALE", "FEMALE", "OTHER"}
	MaritalOptions      = []string{"SINGLE", "MARRIED", "DIVORCED", "WIDOWED"}
	CurrencyOptions     = []string{"INR", "USD"}
)

func InChoices(value string, choices []string) bool {
	if value == "" {
		return true
	}
	for _, c := range choices {
		if value == c {
			return true
		}
	}
	return false
}

// CandidateProfile is one-per-candidate identity. Resume and photo fields
// hold object-storage keys, not URLs.
type CandidateProfile struct {
	ID                       uuid.UUID `json:"id"`
	UserID                   uuid.UUID `json:"-"`
	FullName                 string    `json:"full_name"`
	Email                    string    `json:"email"`
	Phone                    string    `json:"phone"`
	Location                 string    `json:"location"`
	LocationCountry          string    `json:"location_country"`
	Summary                  string    `json:"summary"`
	WorkStatus               string    `json:"work_status"`
	AvailabilityToJoin       string    `json:"availability_to_join"`
	TotalExperienceYears     int       `json:"total_experience_years"`
	TotalExperienceMonths    int       `json:"total_experience_months"`
	Gender                   string    `json:"gender"`
	Dob                      *string   `json:"dob"`
	CurrentCity              string    `json:"current_city"`
	CurrentState             string    `json:"current_state"`
	Country                  string    `json:"country"`
	Nationality              string    `json:"nationality"`
	MaritalStatus            string    `json:"marital_status"`
	WorkAuthorizationCountry string    `json:"work_authorization_country"`
	SalaryCurrency           string    `json:"salary_currency"`
	NoticePeriodDays         *int      `json:"notice_period_days"`
	ExpectedSalary           *int64    `json:"expected_salary"`
	ResumeKey                string    `json:"-"`
	PhotoKey                 string    `json:"-"`
	IsSearchable             bool      `json:"is_searchable"`
	UpdatedAt                time.Time `json:"-"`
	CreatedAt                time.Time `json:"-"`
}

type CandidateSkill struct {
	ID        uuid.UUID `json:"id"`
	ProfileID uuid.UUID `json:"-"`
	Name      string    `json:"name"`
}

// CandidateEmployment dates travel as YYYY-MM-DD strings on the wire.
type CandidateEmployment struct {
	ID          uuid.UUID `json:"id"`
	ProfileID   uuid.UUID `json:"-"`
	Company     string    `json:"company"`
	Title       string    `json:"title"`
	StartDate   string    `json:"start_date"`
	EndDate     *string   `json:"end_date"`
	IsCurrent   bool      `json:"is_current"`
	Description string    `json:"description"`
}

type CandidateEducation struct {
	ID              uuid.UUID `json:"id"`
	ProfileID       uuid.UUID `json:"-"`
	Degree          string    `json:"degree"`
	Institution     string    `json:"institution"`
	CourseType      string    `json:"course_type"`
	StartYear       int       `json:"start_year"`
	EndYear         int       `json:"end_year"`
	MarksPercentage *float64  `json:"marks_percentage"`
}

type CandidateProject struct {
	ID              uuid.UUID `json:"id"`
	ProfileID       uuid.UUID `json:"-"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Link            string    `json:"link"`
	Status          string    `json:"status"`
	WorkedFromYear  *int      `json:"worked_from_year"`
	WorkedFromMonth *int      `json:"worked_from_month"`
	WorkedTillYear  *int      `json:"worked_till_year"`
	WorkedTillMonth *int      `json:"worked_till_month"`
}

// ProfileAggregate is the profile plus its child collections, the consistency
// unit for touch/update and the completion engine's input.
type ProfileAggregate struct {
	Profile     CandidateProfile
	Skills      []CandidateSkill
	Employments []CandidateEmployment
	Educations  []CandidateEducation
	Projects    []CandidateProject
}

// ===== Patch payloads (partial updates: merge -> validate -> persist) =====

type RegisterInput struct {
	FullName string `json:"full_name" validate:"required,max=200,valid_name"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,valid_phone"`
	Location string `json:"location" validate:"omitempty,max=200"`
	Subject  string `json:"-"` // external auth subject, set by the handler
}

type BasicDetailsPatch struct {
	WorkStatus            *string `json:"work_status"`
	AvailabilityToJoin    *string `json:"availability_to_join"`
	Location              *string `json:"location"`
	LocationCountry       *string `json:"location_country"`
	CurrentCity           *string `json:"current_city"`
	CurrentState          *string `json:"current_state"`
	Country               *string `json:"country"`
	Phone                 *string `json:"phone"`
	Email                 *string `json:"email"`
	TotalExperienceYears  *int    `json:"total_experience_years"`
	TotalExperienceMonths *int    `json:"total_experience_months"`
}

type PersonalDetailsPatch struct {
	Gender                   *string `json:"gender"`
	Dob                      *string `json:"dob"`
	MaritalStatus            *string `json:"marital_status"`
	SalaryCurrency           *string `json:"salary_currency"`
	CurrentCity              *string `json:"current_city"`
	CurrentState             *string `json:"current_state"`
	Country                  *string `json:"country"`
	Nationality              *string `json:"nationality"`
	WorkAuthorizationCountry *string `json:"work_authorization_country"`
	AvailabilityToJoin       *string `json:"availability_to_join"`
	Location                 *string `json:"location"`
	TotalExperienceYears     *int    `json:"total_experience_years"`
	TotalExperienceMonths    *int    `json:"total_experience_months"`
	NoticePeriodDays         *int    `json:"notice_period_days"`
	ExpectedSalary           *int64  `json:"expected_salary"`
}

// ProfilePatch covers the full editable field set for the general PATCH.
type ProfilePatch struct {
	FullName              *string `json:"full_name"`
	Email                 *string `json:"email"`
	Phone                 *string `json:"phone"`
	Location              *string `json:"location"`
	Summary               *string `json:"summary"`
	WorkStatus            *string `json:"work_status"`
	AvailabilityToJoin    *string `json:"availability_to_join"`
	TotalExperienceYears  *int    `json:"total_experience_years"`
	TotalExperienceMonths *int    `json:"total_experience_months"`
	NoticePeriodDays      *int    `json:"notice_period_days"`
	ExpectedSalary        *int64  `json:"expected_salary"`
	IsSearchable          *bool   `json:"is_searchable"`
}

type EmploymentPatch struct {
	Company     *string `json:"company"`
	Title       *string `json:"title"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	IsCurrent   *bool   `json:"is_current"`
	Description *string `json:"description"`
}

type EducationPatch struct {
	Degree          *string  `json:"degree"`
	Institution     *string  `json:"institution"`
	CourseType      *string  `json:"course_type"`
	StartYear       *int     `json:"start_year"`
	EndYear         *int     `json:"end_year"`
	MarksPercentage *float64 `json:"marks_percentage"`
}

type ProjectPatch struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	Link            *string `json:"link"`
	Status          *string `json:"status"`
	WorkedFromYear  *int    `json:"worked_from_year"`
	WorkedFromMonth *int    `json:"worked_from_month"`
	WorkedTillYear  *int    `json:"worked_till_year"`
	WorkedTillMonth *int    `json:"worked_till_month"`
}

// ===== Response views =====

// ProfileView is the wire shape of a profile inside the envelope, with file
// keys resolved to URLs.
type ProfileView struct {
	CandidateProfile
	ResumeURL      string    `json:"resume_url"`
	ResumeFilename string    `json:"resume_filename"`
	PhotoURL       string    `json:"photo_url"`
	LastUpdated    time.Time `json:"last_updated"`
}

// ProfileEnvelope is returned by every mutating operation that touches the
// aggregate, fully rebuilt from fresh state.
type ProfileEnvelope struct {
	Profile                  ProfileView           `json:"profile"`
	Skills                   []CandidateSkill      `json:"skills"`
	Employments              []CandidateEmployment `json:"employments"`
	Educations               []CandidateEducation  `json:"educations"`
	Projects                 []CandidateProject    `json:"projects"`
	ProfileCompletionPercent int                   `json:"profile_completion_percent"`
	MissingDetails           []MissingDetail       `json:"missing_details"`
	MissingCount             int                   `json:"missing_count"`
	LastUpdated              time.Time             `json:"last_updated"`
}

type PersonalDetailsView struct {
	Gender                   string  `json:"gender"`
	Dob                      *string `json:"dob"`
	MaritalStatus            string  `json:"marital_status"`
	SalaryCurrency           string  `json:"salary_currency"`
	CurrentCity              string  `json:"current_city"`
	CurrentState             string  `json:"current_state"`
	Country                  string  `json:"country"`
	Nationality              string  `json:"nationality"`
	WorkAuthorizationCountry string  `json:"work_authorization_country"`
	AvailabilityToJoin       string  `json:"availability_to_join"`
	Location                 string  `json:"location"`
	TotalExperienceYears     int     `json:"total_experience_years"`
	TotalExperienceMonths    int     `json:"total_experience_months"`
	NoticePeriodDays         *int    `json:"notice_period_days"`
	ExpectedSalary           *int64  `json:"expected_salary"`
}

// ===== Ports =====

// FileStorage is the object-storage collaborator. Keys are opaque references.
type FileStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

type CandidateRepository interface {
	CreateWithUser(ctx context.Context, user *User, profile *CandidateProfile) error

	GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*CandidateProfile, error)
	GetAggregateByUserID(ctx context.Context, userID uuid.UUID) (*ProfileAggregate, error)
	GetAggregateByProfileID(ctx context.Context, profileID uuid.UUID) (*ProfileAggregate, error)

	// UpdateProfile persists the merged editable field set and bumps updated_at.
	UpdateProfile(ctx context.Context, profile *CandidateProfile) error
	SetSearchable(ctx context.Context, profileID uuid.UUID, searchable bool) error
	// Touch bumps updated_at; every child mutation routes through it.
	Touch(ctx context.Context, profileID uuid.UUID) error
	UpdateResumeKey(ctx context.Context, profileID uuid.UUID, key string) error
	UpdatePhotoKey(ctx context.Context, profileID uuid.UUID, key string) error

	ListSkills(ctx context.Context, profileID uuid.UUID) ([]CandidateSkill, error)
	AddSkill(ctx context.Context, skill *CandidateSkill) error
	DeleteSkill(ctx context.Context, profileID, skillID uuid.UUID) (bool, error)
	// ReplaceSkills applies a bulk-replace diff atomically and touches the profile.
	ReplaceSkills(ctx context.Context, profileID uuid.UUID, deleteIDs []uuid.UUID, create []CandidateSkill) error

	CreateEmployment(ctx context.Context, e *CandidateEmployment) error
	GetEmployment(ctx context.Context, profileID, id uuid.UUID) (*CandidateEmployment, error)
	UpdateEmployment(ctx context.Context, e *CandidateEmployment) error
	DeleteEmployment(ctx context.Context, profileID, id uuid.UUID) (bool, error)

	CreateEducation(ctx context.Context, e *CandidateEducation) error
	GetEducation(ctx context.Context, profileID, id uuid.UUID) (*CandidateEducation, error)
	UpdateEducation(ctx context.Context, e *CandidateEducation) error
	DeleteEducation(ctx context.Context, profileID, id uuid.UUID) (bool, error)

	CreateProject(ctx context.Context, p *CandidateProject) error
	GetProject(ctx context.Context, profileID, id uuid.UUID) (*CandidateProject, error)
	UpdateProject(ctx context.Context, p *CandidateProject) error
	DeleteProject(ctx context.Context, profileID, id uuid.UUID) (bool, error)
}

type CandidateUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*ProfileEnvelope, error)

	GetOverview(ctx context.Context, userID uuid.UUID) (*ProfileEnvelope, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, patch ProfilePatch) (*ProfileEnvelope, error)
	UpdateBasicDetails(ctx context.Context, userID uuid.UUID, patch BasicDetailsPatch) (*ProfileEnvelope, error)
	GetPersonalDetails(ctx context.Context, userID uuid.UUID) (*PersonalDetailsView, error)
	UpdatePersonalDetails(ctx context.Context, userID uuid.UUID, patch PersonalDetailsPatch) (*PersonalDetailsView, error)

	AddSkill(ctx context.Context, userID uuid.UUID, name string) (*CandidateSkill, error)
	DeleteSkill(ctx context.Context, userID, skillID uuid.UUID) error
	ReplaceSkills(ctx context.Context, userID uuid.UUID, names []string) ([]CandidateSkill, error)

	CreateEmployment(ctx context.Context, userID uuid.UUID, patch EmploymentPatch) (*CandidateEmployment, error)
	UpdateEmployment(ctx context.Context, userID, id uuid.UUID, patch EmploymentPatch) (*CandidateEmployment, error)
	DeleteEmployment(ctx context.Context, userID, id uuid.UUID) error

	CreateEducation(ctx context.Context, userID uuid.UUID, patch EducationPatch) (*CandidateEducation, error)
	UpdateEducation(ctx context.Context, userID, id uuid.UUID, patch EducationPatch) (*CandidateEducation, error)
	DeleteEducation(ctx context.Context, userID, id uuid.UUID) error

	CreateProject(ctx context.Context, userID uuid.UUID, patch ProjectPatch) (*CandidateProject, error)
	UpdateProject(ctx context.Context, userID, id uuid.UUID, patch ProjectPatch) (*CandidateProject, error)
	DeleteProject(ctx context.Context, userID, id uuid.UUID) error

	UploadResume(ctx context.Context, userID uuid.UUID, filename string, data []byte) (*ProfileEnvelope, error)
	DeleteResume(ctx context.Context, userID uuid.UUID) (*ProfileEnvelope, error)
	UploadPhoto(ctx context.Context, userID uuid.UUID, filename, contentType string, data []byte) (string, error)
}
