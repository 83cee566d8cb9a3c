package usecase_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/internal/usecase"
	"go-jobportal-backend/pkg/apperror"
	"go-jobportal-backend/pkg/validation"
)

// ===== Mocks =====

type MockCandidateRepo struct {
	mock.Mock
}

func (m *MockCandidateRepo) CreateWithUser(ctx context.Context, user *domain.User, profile *domain.CandidateProfile) error {
	return m.Called(ctx, user, profile).Error(0)
}

func (m *MockCandidateRepo) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*domain.CandidateProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateProfile), args.Error(1)
}

func (m *MockCandidateRepo) GetAggregateByUserID(ctx context.Context, userID uuid.UUID) (*domain.ProfileAggregate, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfileAggregate), args.Error(1)
}

func (m *MockCandidateRepo) GetAggregateByProfileID(ctx context.Context, profileID uuid.UUID) (*domain.ProfileAggregate, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfileAggregate), args.Error(1)
}

func (m *MockCandidateRepo) UpdateProfile(ctx context.Context, profile *domain.CandidateProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockCandidateRepo) SetSearchable(ctx context.Context, profileID uuid.UUID, searchable bool) error {
	return m.Called(ctx, profileID, searchable).Error(0)
}

func (m *MockCandidateRepo) Touch(ctx context.Context, profileID uuid.UUID) error {
	return m.Called(ctx, profileID).Error(0)
}

func (m *MockCandidateRepo) UpdateResumeKey(ctx context.Context, profileID uuid.UUID, key string) error {
	return m.Called(ctx, profileID, key).Error(0)
}

func (m *MockCandidateRepo) UpdatePhotoKey(ctx context.Context, profileID uuid.UUID, key string) error {
	return m.Called(ctx, profileID, key).Error(0)
}

func (m *MockCandidateRepo) ListSkills(ctx context.Context, profileID uuid.UUID) ([]domain.CandidateSkill, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CandidateSkill), args.Error(1)
}

func (m *MockCandidateRepo) AddSkill(ctx context.Context, skill *domain.CandidateSkill) error {
	return m.Called(ctx, skill).Error(0)
}

func (m *MockCandidateRepo) DeleteSkill(ctx context.Context, profileID, skillID uuid.UUID) (bool, error) {
	args := m.Called(ctx, profileID, skillID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCandidateRepo) ReplaceSkills(ctx context.Context, profileID uuid.UUID, deleteIDs []uuid.UUID, create []domain.CandidateSkill) error {
	return m.Called(ctx, profileID, deleteIDs, create).Error(0)
}

func (m *MockCandidateRepo) CreateEmployment(ctx context.Context, e *domain.CandidateEmployment) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockCandidateRepo) GetEmployment(ctx context.Context, profileID, id uuid.UUID) (*domain.CandidateEmployment, error) {
	args := m.Called(ctx, profileID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateEmployment), args.Error(1)
}

func (m *MockCandidateRepo) UpdateEmployment(ctx context.Context, e *domain.CandidateEmployment) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockCandidateRepo) DeleteEmployment(ctx context.Context, profileID, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, profileID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCandidateRepo) CreateEducation(ctx context.Context, e *domain.CandidateEducation) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockCandidateRepo) GetEducation(ctx context.Context, profileID, id uuid.UUID) (*domain.CandidateEducation, error) {
	args := m.Called(ctx, profileID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateEducation), args.Error(1)
}

func (m *MockCandidateRepo) UpdateEducation(ctx context.Context, e *domain.CandidateEducation) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockCandidateRepo) DeleteEducation(ctx context.Context, profileID, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, profileID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCandidateRepo) CreateProject(ctx context.Context, p *domain.CandidateProject) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockCandidateRepo) GetProject(ctx context.Context, profileID, id uuid.UUID) (*domain.CandidateProject, error) {
	args := m.Called(ctx, profileID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateProject), args.Error(1)
}

func (m *MockCandidateRepo) UpdateProject(ctx context.Context, p *domain.CandidateProject) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockCandidateRepo) DeleteProject(ctx context.Context, profileID, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, profileID, id)
	return args.Bool(0), args.Error(1)
}

type MockSkillRepo struct {
	mock.Mock
}

func (m *MockSkillRepo) RegisterOrBump(ctx context.Context, displayName string) (int64, error) {
	args := m.Called(ctx, displayName)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSkillRepo) Suggest(ctx context.Context, normalizedQuery string, limit int) ([]domain.SkillSuggestion, error) {
	args := m.Called(ctx, normalizedQuery, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SkillSuggestion), args.Error(1)
}

func (m *MockSkillRepo) BulkImport(ctx context.Context, rows []domain.SkillImportRow) (int64, error) {
	args := m.Called(ctx, rows)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockSearchRepo struct {
	mock.Mock
}

func (m *MockSearchRepo) FindSearchable(ctx context.Context, filter domain.SearchFilter) ([]domain.ProfileAggregate, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProfileAggregate), args.Error(1)
}

func (m *MockSearchRepo) FindByProfileID(ctx context.Context, profileID uuid.UUID) (*domain.ProfileAggregate, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfileAggregate), args.Error(1)
}

func (m *MockSearchRepo) OwnerOrganization(ctx context.Context, profileID uuid.UUID) (*uuid.UUID, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*uuid.UUID), args.Error(1)
}

type MockSuggestionCache struct {
	mock.Mock
}

func (m *MockSuggestionCache) Get(ctx context.Context, key string) ([]domain.SkillSuggestion, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SkillSuggestion), args.Error(1)
}

func (m *MockSuggestionCache) Set(ctx context.Context, key string, value []domain.SkillSuggestion, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

// fakeStorage is a stub FileStorage; tests only need deterministic URLs.
type fakeStorage struct{}

func (fakeStorage) Upload(ctx context.Context, key, contentType string, body io.Reader) error {
	return nil
}
func (fakeStorage) Delete(ctx context.Context, key string) error { return nil }
func (fakeStorage) URL(key string) string {
	if key == "" {
		return ""
	}
	return "https://files.test/" + key
}

// ===== Helpers =====

func newValidator() *validator.Validate {
	v := validator.New()
	validation.RegisterValidators(v)
	return v
}

func completeProfile(userID uuid.UUID) *domain.CandidateProfile {
	return &domain.CandidateProfile{
		ID:                   uuid.New(),
		UserID:               userID,
		FullName:             "Asha Verma",
		Email:                "asha@example.com",
		Phone:                "+919900112233",
		Location:             "Bengaluru",
		Summary:              "Backend engineer",
		WorkStatus:           string(domain.WorkStatusExperienced),
		AvailabilityToJoin:   "1_MONTH",
		TotalExperienceYears: 4,
	}
}

func completeAggregate(p *domain.CandidateProfile) *domain.ProfileAggregate {
	prof := *p
	prof.ResumeKey = "resumes/x/cv.pdf"
	return &domain.ProfileAggregate{
		Profile:     prof,
		Skills:      []domain.CandidateSkill{{ID: uuid.New(), Name: "Go"}},
		Employments: []domain.CandidateEmployment{{ID: uuid.New(), Company: "Acme", Title: "Engineer", StartDate: "2020-01-01"}},
		Educations:  []domain.CandidateEducation{{ID: uuid.New(), Degree: "B.Tech", Institution: "IIT", StartYear: 2012, EndYear: 2016}},
		Projects:    []domain.CandidateProject{{ID: uuid.New(), Title: "Search"}},
	}
}

func appErrorOf(t *testing.T, err error) *apperror.AppError {
	t.Helper()
	var appErr *apperror.AppError
	assert.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	return appErr
}

// ===== Basic details =====

func TestUpdateBasicDetails(t *testing.T) {
	userID := uuid.New()

	t.Run("experienced without years is rejected", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		repo.On("GetProfileByUserID", mock.Anything, userID).Return(completeProfile(userID), nil)

		uc := usecase.NewCandidateUsecase(repo, new(MockSkillRepo), new(MockUserRepo), fakeStorage{}, newValidator())
		status := string(domain.WorkStatusExperienced)
		years := 0
		_, err := uc.UpdateBasicDetails(context.Background(), userID, domain.BasicDetailsPatch{
			WorkStatus:           &status,
			TotalExperienceYears: &years,
		})

		appErr := appErrorOf(t, err)
		assert.Equal(t, "BASIC_DETAILS_INVALID_PAYLOAD", appErr.Code)
		assert.Equal(t, "Select your total experience", appErr.Fields["total_experience_years"])
		repo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything)
	})

	t.Run("fresher forces experience to zero", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		profile := completeProfile(userID)
		repo.On("GetProfileByUserID", mock.Anything, userID).Return(profile, nil)
		repo.On("UpdateProfile", mock.Anything, mock.MatchedBy(func(p *domain.CandidateProfile) bool {
			return p.WorkStatus == string(domain.WorkStatusFresher) &&
				p.TotalExperienceYears == 0 && p.TotalExperienceMonths == 0
		})).Return(nil)
		repo.On("GetAggregateByUserID", mock.Anything, userID).Return(completeAggregate(profile), nil)

		uc := usecase.NewCandidateUsecase(repo, new(MockSkillRepo), new(MockUserRepo), fakeStorage{}, newValidator())
		status := string(domain.WorkStatusFresher)
		_, err := uc.UpdateBasicDetails(context.Background(), userID, domain.BasicDetailsPatch{WorkStatus: &status})

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("blank work status on a blank profile is required", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		repo.On("GetProfileByUserID", mock.Anything, userID).
			Return(&domain.CandidateProfile{ID: uuid.New(), UserID: userID}, nil)

		uc := usecase.NewCandidateUsecase(repo, new(MockSkillRepo), new(MockUserRepo), fakeStorage{}, newValidator())
		_, err := uc.UpdateBasicDetails(context.Background(), userID, domain.BasicDetailsPatch{})

		appErr := appErrorOf(t, err)
		assert.Equal(t, "This field is required.", appErr.Fields["work_status"])
	})

	t.Run("missing profile reports 404", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		repo.On("GetProfileByUserID", mock.Anything, userID).Return(nil, nil)

		uc := usecase.NewCandidateUsecase(repo, new(MockSkillRepo), new(MockUserRepo), fakeStorage{}, newValidator())
		_, err := uc.UpdateBasicDetails(context.Background(), userID, domain.BasicDetailsPatch{})

		appErr := appErrorOf(t, err)
		assert.Equal(t, "PROFILE_NOT_FOUND", appErr.Code)
	})
}

// ===== Personal details =====

func TestUpdatePersonalDetails(t *testing.T) {
	userID := uuid.New()

	t.Run("future dob is rejected", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		repo.On("GetProfileByUserID", mock.Anything, userID).Return(completeProfile(userID), nil)

		uc := usecase.NewCandidateUsecase(repo, new(MockSkillRepo), new(MockUserRepo), fakeStorage{}, newValidator())
		dob := time.Now().AddDate(1, 0, 0).Format("2006-01-02")
		_, err := uc.UpdatePersonalDetails(context.Background(), userID, domain.PersonalDetailsPatch{Dob: &dob})

		appErr := appErrorOf(t, err)
		assert.Equal(t, "PERSONAL_DETAILS_INVALID_PAYLOAD", appErr.Code)
		assert.Equal(t, "Date of birth cannot be in the future.", appErr.Fields["dob"])
	})

	t.Run("malformed dob reports the format message", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		repo.On("GetProfileByUserID", mock.Anything, userID).Return(completeProfile(userID), nil)

		uc := usecase.NewCandidateUsecase(repo, new(MockSkillRepo), new(MockUserRepo), fakeStorage{}, newValidator())
		dob := "31-12-1990"
		_, err := uc.UpdatePersonalDetails(context.Background(), userID, domain.PersonalDetailsPatch{Dob: &dob})

		appErr := appErrorOf(t, err)
		assert.Equal(t, "Date has wrong format. Use YYYY-MM-DD.", appErr.Fields["dob"])
	})

	t.Run("invalid gender is rejected", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		repo.On("GetProfileByUserID", mock.Anything, userID).Return(completeProfile(userID), nil)

		uc := usecase.NewCandidateUsecase(repo, new(MockSkillRepo), new(MockUserRepo), fakeStorage{}, newValidator())
		gender := "UNKNOWN"
		_, err := uc.UpdatePersonalDetails(context.Background(), userID, domain.PersonalDetailsPatch{Gender: &gender})

		appErr := appErrorOf(t, err)
		assert.Contains(t, appErr.Fields, "gender")
	})

	t.Run("valid patch persists and echoes the merged view", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		profile := completeProfile(userID)
		repo.On("GetProfileByUserID", mock.Anything, userID).Return(profile, nil)
		repo.On("UpdateProfile", mock.Anything, mock.Anything).Return(nil)
		repo.On("GetAggregateByUserID", mock.Anything, userID).Return(completeAggregate(profile), nil)

		uc := usecase.NewCandidateUsecase(repo, new(MockSkillRepo), new(MockUserRepo), fakeStorage{}, newValidator())
		gender := "FEMALE"
		city := "Pune"
		dob := "1994-06-15"
		view, err := uc.UpdatePersonalDetails(context.Background(), userID, domain.PersonalDetailsPatch{
			Gender:      &gender,
			CurrentCity: &city,
			Dob:         &dob,
		})

		assert.NoError(t, err)
		assert.Equal(t, "FEMALE", view.Gender)
		assert.Equal(t, "Pune", view.CurrentCity)
		if assert.NotNil(t, view.Dob) {
			assert.Equal(t, "1994-06-15", *view.Dob)
		}
	})
}

// ===== Visibility gate =====

func TestProfileVisibilityGate(t *testing.T) {
	userID := uuid.New()

	incomplete := func() *domain.CandidateProfile {
		return &domain.CandidateProfile{
			ID:       uuid.New(),
			UserID:   userID,
			FullName: "Ravi Kumar",
			Email:    "ravi@example.com",
		}
	}

	t.Run("explicit searchable request below the floor is rejected after save", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		profile := incomplete()
		repo.On("GetProfileByUserID", mock.Anything, userID).Return(profile, nil)
		repo.On("UpdateProfile", mock.Anything, mock.Anything).Return(nil)
		agg := &domain.ProfileAggregate{Profile: *profile}
		agg.Profile.IsSearchable = true
		repo.On("GetAggregateByUserID", mock.Anything, userID).Return(agg, nil)
		repo.On("SetSearchable", mock.Anything, profile.ID, false).Return(nil)

		uc := usecase.NewCandidateUsecase(repo, new(MockSkillRepo), new(MockUserRepo), fakeStorage{}, newValidator())
		searchable := true
		_, err := uc.UpdateProfile(context.Background(), userID, domain.ProfilePatch{IsSearchable: &searchable})

		appErr := appErrorOf(t, err)
		assert.Equal(t, "PROFILE_VISIBILITY_MIN_COMPLETION", appErr.Code)
		assert.Equal(t, 400, appErr.Status)
		repo.AssertCalled(t, "SetSearchable", mock.Anything, profile.ID, false)
	})

	t.Run("stale searchable flag is cleared silently when not requested", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		profile := incomplete()
		profile.IsSearchable = true
		repo.On("GetProfileByUserID", mock.Anything, userID).Return(profile, nil)
		repo.On("UpdateProfile", mock.Anything, mock.Anything).Return(nil)
		agg := &domain.ProfileAggregate{Profile: *profile}
		repo.On("GetAggregateByUserID", mock.Anything, userID).Return(agg, nil)
		repo.On("SetSearchable", mock.Anything, profile.ID, false).Return(nil)

		uc := usecase.NewCandidateUsecase(repo, new(MockSkillRepo), new(MockUserRepo), fakeStorage{}, newValidator())
		summary := "Just a short line"
		env, err := uc.UpdateProfile(context.Background(), userID, domain.ProfilePatch{Summary: &summary})

		assert.NoError(t, err)
		assert.False(t, env.Profile.IsSearchable)
	})

	t.Run("complete profile may turn searchable on", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		profile := completeProfile(userID)
		repo.On("GetProfileByUserID", mock.Anything, userID).Return(profile, nil)
		repo.On("UpdateProfile", mock.Anything, mock.Anything).Return(nil)
		agg := completeAggregate(profile)
		agg.Profile.IsSearchable = true
		repo.On("GetAggregateByUserID", mock.Anything, userID).Return(agg, nil)

		uc := usecase.NewCandidateUsecase(repo, new(MockSkillRepo), new(MockUserRepo), fakeStorage{}, newValidator())
		searchable := true
		env, err := uc.UpdateProfile(context.Background(), userID, domain.ProfilePatch{IsSearchable: &searchable})

		assert.NoError(t, err)
		assert.True(t, env.Profile.IsSearchable)
		repo.AssertNotCalled(t, "SetSearchable", mock.Anything, mock.Anything, mock.Anything)
	})
}

// ===== Sections =====

func TestProjectValidation(t *testing.T) {
	userID := uuid.New()

	newUC := func(repo *MockCandidateRepo) domain.CandidateUsecase {
		repo.On("GetProfileByUserID", mock.Anything, userID).Return(completeProfile(userID), nil)
		return usecase.NewCandidateUsecase(repo, new(MockSkillRepo), new(MockUserRepo), fakeStorage{}, newValidator())
	}

	intp := func(v int) *int { return &v }
	strp := func(v string) *string { return &v }

	t.Run("finished project with till before from is rejected", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		uc := newUC(repo)
		_, err := uc.CreateProject(context.Background(), userID, domain.ProjectPatch{
			Title:           strp("Portal"),
			Status:          strp(domain.ProjectStatusFinished),
			WorkedFromYear:  intp(2023),
			WorkedFromMonth: intp(6),
			WorkedTillYear:  intp(2023),
			WorkedTillMonth: intp(2),
		})

		appErr := appErrorOf(t, err)
		assert.Equal(t, "PROJECT_INVALID_PAYLOAD", appErr.Code)
		assert.Equal(t, "worked till must be after worked from.", appErr.Fields["worked_till"])
	})

	t.Run("in progress project needs worked from", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		uc := newUC(repo)
		_, err := uc.CreateProject(context.Background(), userID, domain.ProjectPatch{
			Title:  strp("Portal"),
			Status: strp(domain.ProjectStatusInProgress),
		})

		appErr := appErrorOf(t, err)
		assert.Contains(t, appErr.Fields, "worked_from")
	})

	t.Run("valid project is created and touches the profile", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		repo.On("CreateProject", mock.Anything, mock.Anything).Return(nil)
		repo.On("Touch", mock.Anything, mock.Anything).Return(nil)
		uc := newUC(repo)

		project, err := uc.CreateProject(context.Background(), userID, domain.ProjectPatch{
			Title:           strp("Portal"),
			Status:          strp(domain.ProjectStatusInProgress),
			WorkedFromYear:  intp(2024),
			WorkedFromMonth: intp(1),
		})

		assert.NoError(t, err)
		assert.Equal(t, "Portal", project.Title)
		repo.AssertExpectations(t)
	})
}

func TestEducationValidation(t *testing.T) {
	userID := uuid.New()
	repo := new(MockCandidateRepo)
	repo.On("GetProfileByUserID", mock.Anything, userID).Return(completeProfile(userID), nil)
	uc := usecase.NewCandidateUsecase(repo, new(MockSkillRepo), new(MockUserRepo), fakeStorage{}, newValidator())

	strp := func(v string) *string { return &v }
	intp := func(v int) *int { return &v }
	floatp := func(v float64) *float64 { return &v }

	t.Run("end year before start year", func(t *testing.T) {
		_, err := uc.CreateEducation(context.Background(), userID, domain.EducationPatch{
			Degree:      strp("B.Tech"),
			Institution: strp("IIT"),
			StartYear:   intp(2020),
			EndYear:     intp(2016),
		})
		appErr := appErrorOf(t, err)
		assert.Contains(t, appErr.Fields, "end_year")
	})

	t.Run("marks out of range", func(t *testing.T) {
		_, err := uc.CreateEducation(context.Background(), userID, domain.EducationPatch{
			Degree:          strp("B.Tech"),
			Institution:     strp("IIT"),
			StartYear:       intp(2012),
			EndYear:         intp(2016),
			MarksPercentage: floatp(120),
		})
		appErr := appErrorOf(t, err)
		assert.Contains(t, appErr.Fields, "marks_percentage")
	})
}

// ===== Skills =====

func TestReplaceSkills(t *testing.T) {
	userID := uuid.New()
	profile := completeProfile(userID)

	goID := uuid.New()
	sqlID := uuid.New()
	existing := []domain.CandidateSkill{
		{ID: goID, ProfileID: profile.ID, Name: "Go"},
		{ID: sqlID, ProfileID: profile.ID, Name: "SQL"},
	}

	t.Run("diff keeps kept names, deletes missing, creates new once", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		skillRepo := new(MockSkillRepo)
		repo.On("GetProfileByUserID", mock.Anything, userID).Return(profile, nil)
		repo.On("ListSkills", mock.Anything, profile.ID).Return(existing, nil).Once()
		repo.On("ReplaceSkills", mock.Anything, profile.ID,
			mock.MatchedBy(func(ids []uuid.UUID) bool { return len(ids) == 1 && ids[0] == sqlID }),
			mock.MatchedBy(func(create []domain.CandidateSkill) bool {
				return len(create) == 1 && create[0].Name == "Python"
			}),
		).Return(nil)
		skillRepo.On("RegisterOrBump", mock.Anything, "Python").Return(int64(7), nil).Once()
		repo.On("ListSkills", mock.Anything, profile.ID).Return([]domain.CandidateSkill{
			{ID: goID, Name: "Go"},
			{ID: uuid.New(), Name: "Python"},
		}, nil).Once()

		uc := usecase.NewCandidateUsecase(repo, skillRepo, new(MockUserRepo), fakeStorage{}, newValidator())
		updated, err := uc.ReplaceSkills(context.Background(), userID, []string{"go", "Python", "  python  ", ""})

		assert.NoError(t, err)
		assert.Len(t, updated, 2)
		repo.AssertExpectations(t)
		skillRepo.AssertExpectations(t)
	})

	t.Run("same list twice is a no-op diff", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		skillRepo := new(MockSkillRepo)
		repo.On("GetProfileByUserID", mock.Anything, userID).Return(profile, nil)
		repo.On("ListSkills", mock.Anything, profile.ID).Return(existing, nil)
		repo.On("ReplaceSkills", mock.Anything, profile.ID,
			mock.MatchedBy(func(ids []uuid.UUID) bool { return len(ids) == 0 }),
			mock.MatchedBy(func(create []domain.CandidateSkill) bool { return len(create) == 0 }),
		).Return(nil)

		uc := usecase.NewCandidateUsecase(repo, skillRepo, new(MockUserRepo), fakeStorage{}, newValidator())
		_, err := uc.ReplaceSkills(context.Background(), userID, []string{"GO", "sql"})

		assert.NoError(t, err)
		skillRepo.AssertNotCalled(t, "RegisterOrBump", mock.Anything, mock.Anything)
	})
}

func TestAddSkill(t *testing.T) {
	userID := uuid.New()
	profile := completeProfile(userID)

	t.Run("blank name is rejected", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		repo.On("GetProfileByUserID", mock.Anything, userID).Return(profile, nil)
		uc := usecase.NewCandidateUsecase(repo, new(MockSkillRepo), new(MockUserRepo), fakeStorage{}, newValidator())

		_, err := uc.AddSkill(context.Background(), userID, "   ")
		appErr := appErrorOf(t, err)
		assert.Equal(t, "SKILL_INVALID_PAYLOAD", appErr.Code)
	})

	t.Run("creation bumps the directory and touches the profile", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		skillRepo := new(MockSkillRepo)
		repo.On("GetProfileByUserID", mock.Anything, userID).Return(profile, nil)
		repo.On("AddSkill", mock.Anything, mock.Anything).Return(nil)
		skillRepo.On("RegisterOrBump", mock.Anything, "Rust").Return(int64(3), nil)
		repo.On("Touch", mock.Anything, profile.ID).Return(nil)

		uc := usecase.NewCandidateUsecase(repo, skillRepo, new(MockUserRepo), fakeStorage{}, newValidator())
		skill, err := uc.AddSkill(context.Background(), userID, "Rust")

		assert.NoError(t, err)
		assert.Equal(t, "Rust", skill.Name)
		repo.AssertExpectations(t)
		skillRepo.AssertExpectations(t)
	})
}

// ===== Skill suggestions =====

func TestSkillSuggest(t *testing.T) {
	t.Run("blank query returns empty without repo call", func(t *testing.T) {
		repo := new(MockSkillRepo)
		cache := new(MockSuggestionCache)
		uc := usecase.NewSkillUsecase(repo, cache, time.Hour)

		got, err := uc.Suggest(context.Background(), "   ", 10)
		assert.NoError(t, err)
		assert.Empty(t, got)
		repo.AssertNotCalled(t, "Suggest", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("limit defaults and caps apply to the cache key", func(t *testing.T) {
		repo := new(MockSkillRepo)
		cache := new(MockSuggestionCache)
		uc := usecase.NewSkillUsecase(repo, cache, time.Hour)

		suggestions := []domain.SkillSuggestion{{ID: 1, Name: "go"}}
		cache.On("Get", mock.Anything, "skills:suggest:go:20").Return(nil, nil)
		repo.On("Suggest", mock.Anything, "go", 20).Return(suggestions, nil)
		cache.On("Set", mock.Anything, "skills:suggest:go:20", suggestions, time.Hour).Return(nil)

		got, err := uc.Suggest(context.Background(), "  GO ", 99)
		assert.NoError(t, err)
		assert.Equal(t, suggestions, got)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("cache hit skips the repository", func(t *testing.T) {
		repo := new(MockSkillRepo)
		cache := new(MockSuggestionCache)
		uc := usecase.NewSkillUsecase(repo, cache, time.Hour)

		cached := []domain.SkillSuggestion{{ID: 2, Name: "python"}}
		cache.On("Get", mock.Anything, "skills:suggest:python:10").Return(cached, nil)

		got, err := uc.Suggest(context.Background(), "Python", 0)
		assert.NoError(t, err)
		assert.Equal(t, cached, got)
		repo.AssertNotCalled(t, "Suggest", mock.Anything, mock.Anything, mock.Anything)
	})
}

// ===== Employer search =====

func TestSearch(t *testing.T) {
	t.Run("no inputs short-circuits to an empty result", func(t *testing.T) {
		repo := new(MockSearchRepo)
		uc := usecase.NewSearchUsecase(repo, fakeStorage{})

		result, err := uc.Search(context.Background(), domain.SearchParams{Page: 2, PageSize: 10})
		assert.NoError(t, err)
		assert.Equal(t, 0, result.Count)
		assert.Empty(t, result.Results)
		repo.AssertNotCalled(t, "FindSearchable", mock.Anything, mock.Anything)
	})

	t.Run("whitespace-only parameters short-circuit without a query", func(t *testing.T) {
		repo := new(MockSearchRepo)
		uc := usecase.NewSearchUsecase(repo, fakeStorage{})

		result, err := uc.Search(context.Background(), domain.SearchParams{
			Keywords: "   ",
			Location: " \t ",
		})
		assert.NoError(t, err)
		assert.Equal(t, 0, result.Count)
		assert.Empty(t, result.Results)
		repo.AssertNotCalled(t, "FindSearchable", mock.Anything, mock.Anything)
	})

	t.Run("profiles below the completion floor are filtered out", func(t *testing.T) {
		repo := new(MockSearchRepo)
		complete := completeAggregate(completeProfile(uuid.New()))
		incomplete := domain.ProfileAggregate{Profile: domain.CandidateProfile{
			ID: uuid.New(), FullName: "Thin Profile", Email: "thin@example.com",
		}}
		repo.On("FindSearchable", mock.Anything, mock.Anything).
			Return([]domain.ProfileAggregate{*complete, incomplete}, nil)

		uc := usecase.NewSearchUsecase(repo, fakeStorage{})
		result, err := uc.Search(context.Background(), domain.SearchParams{Keywords: "engineer"})

		assert.NoError(t, err)
		assert.Equal(t, 1, result.Count)
		assert.Equal(t, complete.Profile.ID, result.Results[0].ID)
	})

	t.Run("unparseable numerics drop their clause silently", func(t *testing.T) {
		repo := new(MockSearchRepo)
		repo.On("FindSearchable", mock.Anything, mock.MatchedBy(func(f domain.SearchFilter) bool {
			return f.ExpMinMonths == nil && f.SalaryMax == nil && f.Keywords == "go"
		})).Return([]domain.ProfileAggregate{}, nil)

		uc := usecase.NewSearchUsecase(repo, fakeStorage{})
		_, err := uc.Search(context.Background(), domain.SearchParams{
			Keywords:  "go",
			ExpMin:    "abc",
			SalaryMax: "lots",
		})

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("experience years convert to months", func(t *testing.T) {
		repo := new(MockSearchRepo)
		repo.On("FindSearchable", mock.Anything, mock.MatchedBy(func(f domain.SearchFilter) bool {
			return f.ExpMinMonths != nil && *f.ExpMinMonths == 30
		})).Return([]domain.ProfileAggregate{}, nil)

		uc := usecase.NewSearchUsecase(repo, fakeStorage{})
		_, err := uc.Search(context.Background(), domain.SearchParams{ExpMin: "2.5"})

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("pagination slices the completed result set", func(t *testing.T) {
		repo := new(MockSearchRepo)
		var aggs []domain.ProfileAggregate
		for i := 0; i < 5; i++ {
			aggs = append(aggs, *completeAggregate(completeProfile(uuid.New())))
		}
		repo.On("FindSearchable", mock.Anything, mock.Anything).Return(aggs, nil)

		uc := usecase.NewSearchUsecase(repo, fakeStorage{})
		result, err := uc.Search(context.Background(), domain.SearchParams{
			Keywords: "engineer", Page: 2, PageSize: 2,
		})

		assert.NoError(t, err)
		assert.Equal(t, 5, result.Count)
		assert.Len(t, result.Results, 2)
	})
}

func TestGetCandidateProfile(t *testing.T) {
	candidateID := uuid.New()

	t.Run("cross-organization access is denied", func(t *testing.T) {
		repo := new(MockSearchRepo)
		agg := completeAggregate(completeProfile(uuid.New()))
		agg.Profile.ID = candidateID
		ownerOrg := uuid.New()
		employerOrg := uuid.New()
		repo.On("FindByProfileID", mock.Anything, candidateID).Return(agg, nil)
		repo.On("OwnerOrganization", mock.Anything, candidateID).Return(&ownerOrg, nil)

		uc := usecase.NewSearchUsecase(repo, fakeStorage{})
		_, err := uc.GetCandidateProfile(context.Background(), &employerOrg, candidateID)

		appErr := appErrorOf(t, err)
		assert.Equal(t, 403, appErr.Status)
	})

	t.Run("matching organization sees the seven-section completion", func(t *testing.T) {
		repo := new(MockSearchRepo)
		agg := completeAggregate(completeProfile(uuid.New()))
		agg.Profile.ID = candidateID
		org := uuid.New()
		repo.On("FindByProfileID", mock.Anything, candidateID).Return(agg, nil)
		repo.On("OwnerOrganization", mock.Anything, candidateID).Return(&org, nil)

		uc := usecase.NewSearchUsecase(repo, fakeStorage{})
		view, err := uc.GetCandidateProfile(context.Background(), &org, candidateID)

		assert.NoError(t, err)
		assert.Equal(t, 100, view.ProfileCompletionPercent)
		assert.Equal(t, "https://files.test/resumes/x/cv.pdf", view.Profile.ResumeURL)
	})

	t.Run("unknown candidate reports 404", func(t *testing.T) {
		repo := new(MockSearchRepo)
		repo.On("FindByProfileID", mock.Anything, candidateID).Return(nil, nil)

		uc := usecase.NewSearchUsecase(repo, fakeStorage{})
		_, err := uc.GetCandidateProfile(context.Background(), nil, candidateID)

		appErr := appErrorOf(t, err)
		assert.Equal(t, "CANDIDATE_NOT_FOUND", appErr.Code)
	})
}

// ===== Registration =====

func TestRegister(t *testing.T) {
	t.Run("duplicate email is rejected", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		users := new(MockUserRepo)
		users.On("GetByEmail", mock.Anything, "taken@example.com").
			Return(&domain.User{ID: uuid.New(), Email: "taken@example.com"}, nil)

		uc := usecase.NewCandidateUsecase(repo, new(MockSkillRepo), users, fakeStorage{}, newValidator())
		_, err := uc.Register(context.Background(), domain.RegisterInput{
			FullName: "Asha Verma",
			Email:    "taken@example.com",
		})

		appErr := appErrorOf(t, err)
		assert.Equal(t, "REGISTER_INVALID_PAYLOAD", appErr.Code)
		assert.Equal(t, "Email already exists.", appErr.Fields["email"])
	})

	t.Run("invalid payload reports field errors", func(t *testing.T) {
		uc := usecase.NewCandidateUsecase(new(MockCandidateRepo), new(MockSkillRepo), new(MockUserRepo), fakeStorage{}, newValidator())
		_, err := uc.Register(context.Background(), domain.RegisterInput{Email: "not-an-email"})

		appErr := appErrorOf(t, err)
		assert.Contains(t, appErr.Fields, "full_name")
		assert.Contains(t, appErr.Fields, "email")
	})
}
