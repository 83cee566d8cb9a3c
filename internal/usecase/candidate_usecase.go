package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/apperror"
	"go-jobportal-backend/pkg/validation"
)

type candidateUsecase struct {
	repo      domain.CandidateRepository
	skillRepo domain.SkillDirectoryRepository
	userRepo  domain.UserRepository
	storage   domain.FileStorage
	validate  *validator.Validate
}

func NewCandidateUsecase(
	repo domain.CandidateRepository,
	skillRepo domain.SkillDirectoryRepository,
	userRepo domain.UserRepository,
	storage domain.FileStorage,
	validate *validator.Validate,
) domain.CandidateUsecase {
	return &candidateUsecase{
		repo:      repo,
		skillRepo: skillRepo,
		userRepo:  userRepo,
		storage:   storage,
		validate:  validate,
	}
}

// getProfile resolves the caller's profile or reports the canonical 404.
func (u *candidateUsecase) getProfile(ctx context.Context, userID uuid.UUID) (*domain.CandidateProfile, error) {
	profile, err := u.repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("PROFILE_FETCH_ERROR", "Unable to fetch profile.", err)
	}
	if profile == nil {
		return nil, apperror.NotFound("PROFILE_NOT_FOUND", "Profile not found.")
	}
	return profile, nil
}

func (u *candidateUsecase) profileView(p domain.CandidateProfile) domain.ProfileView {
	view := domain.ProfileView{
		CandidateProfile: p,
		LastUpdated:      p.UpdatedAt,
	}
	if p.ResumeKey != "" {
		view.ResumeURL = u.storage.URL(p.ResumeKey)
		parts := strings.Split(p.ResumeKey, "/")
		view.ResumeFilename = parts[len(parts)-1]
	}
	if p.PhotoKey != "" {
		view.PhotoURL = u.storage.URL(p.PhotoKey)
	}
	return view
}

func (u *candidateUsecase) envelope(a *domain.ProfileAggregate) *domain.ProfileEnvelope {
	percent, missing := domain.CalculateCompletion(a)
	return &domain.ProfileEnvelope{
		Profile:                  u.profileView(a.Profile),
		Skills:                   a.Skills,
		Employments:              a.Employments,
		Educations:               a.Educations,
		Projects:                 a.Projects,
		ProfileCompletionPercent: percent,
		MissingDetails:           missing,
		MissingCount:             len(missing),
		LastUpdated:              a.Profile.UpdatedAt,
	}
}

// loadEnvelope rebuilds the full response envelope from fresh state and
// applies the visibility floor: a searchable profile that has dropped below
// the completion threshold is force-cleared.
func (u *candidateUsecase) loadEnvelope(ctx context.Context, userID uuid.UUID) (*domain.ProfileEnvelope, error) {
	agg, err := u.repo.GetAggregateByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if agg == nil {
		return nil, apperror.NotFound("PROFILE_NOT_FOUND", "Profile not found.")
	}
	percent, _ := domain.CalculateCompletion(agg)
	if percent < domain.MinSearchableCompletion && agg.Profile.IsSearchable {
		if err := u.repo.SetSearchable(ctx, agg.Profile.ID, false); err != nil {
			return nil, err
		}
		agg.Profile.IsSearchable = false
	}
	return u.envelope(agg), nil
}

func (u *candidateUsecase) Register(ctx context.Context, input domain.RegisterInput) (*domain.ProfileEnvelope, error) {
	if err := u.validate.Struct(input); err != nil {
		return nil, apperror.Validation("REGISTER_INVALID_PAYLOAD", "Invalid registration payload.", validation.FieldErrors(err))
	}
	existing, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, apperror.Internal("REGISTER_ERROR", "Unable to register candidate.", err)
	}
	if existing != nil {
		return nil, apperror.Validation("REGISTER_INVALID_PAYLOAD", "Invalid registration payload.",
			map[string]string{"email": "Email already exists."})
	}

	user := &domain.User{
		ID:       uuid.New(),
		Email:    input.Email,
		FullName: input.FullName,
		Phone:    input.Phone,
		Role:     domain.RoleCandidate,
		IsActive: true,
	}
	profile := &domain.CandidateProfile{
		ID:       uuid.New(),
		UserID:   user.ID,
		FullName: input.FullName,
		Email:    input.Email,
		Phone:    input.Phone,
		Location: input.Location,
	}
	if err := u.repo.CreateWithUser(ctx, user, profile); err != nil {
		return nil, apperror.Internal("REGISTER_ERROR", "Unable to register candidate.", err)
	}

	env, err := u.loadEnvelope(ctx, user.ID)
	if err != nil {
		return nil, apperror.Internal("PROFILE_RESPONSE_ERROR", "Profile saved but response failed.", err)
	}
	return env, nil
}

func (u *candidateUsecase) GetOverview(ctx context.Context, userID uuid.UUID) (*domain.ProfileEnvelope, error) {
	env, err := u.loadEnvelope(ctx, userID)
	if err != nil {
		if appErr, ok := err.(*apperror.AppError); ok {
			return nil, appErr
		}
		return nil, apperror.Internal("PROFILE_FETCH_ERROR", "Unable to fetch profile.", err)
	}
	return env, nil
}

func (u *candidateUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, patch domain.ProfilePatch) (*domain.ProfileEnvelope, error) {
	profile, err := u.getProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := *profile
	applyString(&merged.FullName, patch.FullName)
	applyString(&merged.Email, patch.Email)
	applyString(&merged.Phone, patch.Phone)
	applyString(&merged.Location, patch.Location)
	applyString(&merged.Summary, patch.Summary)
	applyString(&merged.WorkStatus, patch.WorkStatus)
	applyString(&merged.AvailabilityToJoin, patch.AvailabilityToJoin)
	applyInt(&merged.TotalExperienceYears, patch.TotalExperienceYears)
	applyInt(&merged.TotalExperienceMonths, patch.TotalExperienceMonths)
	if patch.NoticePeriodDays != nil {
		merged.NoticePeriodDays = patch.NoticePeriodDays
	}
	if patch.ExpectedSalary != nil {
		merged.ExpectedSalary = patch.ExpectedSalary
	}
	visibilityRequested := patch.IsSearchable != nil && *patch.IsSearchable
	if patch.IsSearchable != nil {
		merged.IsSearchable = *patch.IsSearchable
	}

	fields := map[string]string{}
	if strings.TrimSpace(merged.FullName) == "" {
		fields["full_name"] = "This field may not be blank."
	}
	if merged.Email == "" {
		fields["email"] = "This field may not be blank."
	} else if err := u.validate.Var(merged.Email, "email"); err != nil {
		fields["email"] = "Enter a valid email address."
	}
	if merged.Phone != "" {
		if err := u.validate.Var(merged.Phone, "valid_phone"); err != nil {
			fields["phone"] = "Enter a valid phone number."
		}
	}
	if merged.WorkStatus != "" && merged.WorkStatus != string(domain.WorkStatusFresher) && merged.WorkStatus != string(domain.WorkStatusExperienced) {
		fields["work_status"] = "Select a valid choice."
	}
	if !domain.InChoices(merged.AvailabilityToJoin, domain.AvailabilityOptions) {
		fields["availability_to_join"] = "Select a valid choice."
	}
	validateExperience(&fields, merged.TotalExperienceYears, merged.TotalExperienceMonths)
	validateAmounts(&fields, merged.NoticePeriodDays, merged.ExpectedSalary)
	if len(fields) > 0 {
		return nil, apperror.Validation("PROFILE_INVALID_PAYLOAD", "Invalid profile payload.", fields)
	}

	if err := u.repo.UpdateProfile(ctx, &merged); err != nil {
		return nil, apperror.Internal("PROFILE_UPDATE_ERROR", "Unable to update profile.", err)
	}

	agg, err := u.repo.GetAggregateByUserID(ctx, userID)
	if err != nil || agg == nil {
		return nil, apperror.Internal("PROFILE_RESPONSE_ERROR", "Profile saved but response failed.", err)
	}
	percent, _ := domain.CalculateCompletion(agg)
	if percent < domain.MinSearchableCompletion && agg.Profile.IsSearchable {
		if err := u.repo.SetSearchable(ctx, agg.Profile.ID, false); err != nil {
			return nil, apperror.Internal("PROFILE_RESPONSE_ERROR", "Profile saved but response failed.", err)
		}
		agg.Profile.IsSearchable = false
		if visibilityRequested {
			return nil, apperror.New(400, "PROFILE_VISIBILITY_MIN_COMPLETION",
				"Complete at least 60% of your profile to enable visibility.")
		}
	}
	return u.envelope(agg), nil
}

func (u *candidateUsecase) UpdateBasicDetails(ctx context.Context, userID uuid.UUID, patch domain.BasicDetailsPatch) (*domain.ProfileEnvelope, error) {
	profile, err := u.getProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := *profile
	applyString(&merged.WorkStatus, patch.WorkStatus)
	applyString(&merged.AvailabilityToJoin, patch.AvailabilityToJoin)
	applyString(&merged.Location, patch.Location)
	applyString(&merged.LocationCountry, patch.LocationCountry)
	applyString(&merged.CurrentCity, patch.CurrentCity)
	applyString(&merged.CurrentState, patch.CurrentState)
	applyString(&merged.Country, patch.Country)
	applyString(&merged.Phone, patch.Phone)
	applyString(&merged.Email, patch.Email)
	applyInt(&merged.TotalExperienceYears, patch.TotalExperienceYears)
	applyInt(&merged.TotalExperienceMonths, patch.TotalExperienceMonths)

	fields := map[string]string{}
	switch merged.WorkStatus {
	case "":
		fields["work_status"] = "This field is required."
	case string(domain.WorkStatusFresher):
		merged.TotalExperienceYears = 0
		merged.TotalExperienceMonths = 0
	case string(domain.WorkStatusExperienced):
		if merged.TotalExperienceYears < 1 {
			fields["total_experience_years"] = "Select your total experience"
		}
	default:
		fields["work_status"] = "Select a valid choice."
	}
	if !domain.InChoices(merged.AvailabilityToJoin, domain.AvailabilityOptions) {
		fields["availability_to_join"] = "Select a valid choice."
	}
	if merged.Email != "" {
		if err := u.validate.Var(merged.Email, "email"); err != nil {
			fields["email"] = "Enter a valid email address."
		}
	}
	if merged.Phone != "" {
		if err := u.validate.Var(merged.Phone, "valid_phone"); err != nil {
			fields["phone"] = "Enter a valid phone number."
		}
	}
	validateExperience(&fields, merged.TotalExperienceYears, merged.TotalExperienceMonths)
	if len(fields) > 0 {
		return nil, apperror.Validation("BASIC_DETAILS_INVALID_PAYLOAD", "Invalid basic details payload.", fields)
	}

	if err := u.repo.UpdateProfile(ctx, &merged); err != nil {
		return nil, apperror.Internal("BASIC_DETAILS_ERROR", "Unable to update basic details.", err)
	}
	env, err := u.loadEnvelope(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("BASIC_DETAILS_ERROR", "Unable to update basic details.", err)
	}
	return env, nil
}

func (u *candidateUsecase) GetPersonalDetails(ctx context.Context, userID uuid.UUID) (*domain.PersonalDetailsView, error) {
	profile, err := u.getProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return personalDetailsView(profile), nil
}

func (u *candidateUsecase) UpdatePersonalDetails(ctx context.Context, userID uuid.UUID, patch domain.PersonalDetailsPatch) (*domain.PersonalDetailsView, error) {
	profile, err := u.getProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := *profile
	applyString(&merged.Gender, patch.Gender)
	applyString(&merged.MaritalStatus, patch.MaritalStatus)
	applyString(&merged.SalaryCurrency, patch.SalaryCurrency)
	applyString(&merged.CurrentCity, patch.CurrentCity)
	applyString(&merged.CurrentState, patch.CurrentState)
	applyString(&merged.Country, patch.Country)
	applyString(&merged.Nationality, patch.Nationality)
	applyString(&merged.WorkAuthorizationCountry, patch.WorkAuthorizationCountry)
	applyString(&merged.AvailabilityToJoin, patch.AvailabilityToJoin)
	applyString(&merged.Location, patch.Location)
	applyInt(&merged.TotalExperienceYears, patch.TotalExperienceYears)
	applyInt(&merged.TotalExperienceMonths, patch.TotalExperienceMonths)
	if patch.Dob != nil {
		if *patch.Dob == "" {
			merged.Dob = nil
		} else {
			dob := *patch.Dob
			merged.Dob = &dob
		}
	}
	if patch.NoticePeriodDays != nil {
		merged.NoticePeriodDays = patch.NoticePeriodDays
	}
	if patch.ExpectedSalary != nil {
		merged.ExpectedSalary = patch.ExpectedSalary
	}

	fields := map[string]string{}
	if !domain.InChoices(merged.Gender, domain.GenderOptions) {
		fields["gender"] = "Select a valid choice."
	}
	if !domain.InChoices(merged.MaritalStatus, domain.MaritalOptions) {
		fields["marital_status"] = "Select a valid choice."
	}
	if !domain.InChoices(merged.SalaryCurrency, domain.CurrencyOptions) {
		fields["salary_currency"] = "Select a valid choice."
	}
	if !domain.InChoices(merged.AvailabilityToJoin, domain.AvailabilityOptions) {
		fields["availability_to_join"] = "Select a valid choice."
	}
	if merged.Dob != nil {
		if _, err := time.Parse("2006-01-02", *merged.Dob); err != nil {
			fields["dob"] = "Date has wrong format. Use YYYY-MM-DD."
		} else if err := u.validate.Var(*merged.Dob, "not_future_date"); err != nil {
			fields["dob"] = "Date of birth cannot be in the future."
		}
	}
	validateExperience(&fields, merged.TotalExperienceYears, merged.TotalExperienceMonths)
	validateAmounts(&fields, merged.NoticePeriodDays, merged.ExpectedSalary)
	if len(fields) > 0 {
		return nil, apperror.Validation("PERSONAL_DETAILS_INVALID_PAYLOAD", "Invalid personal details payload.", fields)
	}

	if err := u.repo.UpdateProfile(ctx, &merged); err != nil {
		return nil, apperror.Internal("PERSONAL_DETAILS_ERROR", "Unable to update personal details.", err)
	}
	// contact fields may have been blanked out; re-run the visibility floor
	if _, err := u.loadEnvelope(ctx, userID); err != nil {
		return nil, apperror.Internal("PERSONAL_DETAILS_ERROR", "Unable to update personal details.", err)
	}
	return personalDetailsView(&merged), nil
}

func personalDetailsView(p *domain.CandidateProfile) *domain.PersonalDetailsView {
	return &domain.PersonalDetailsView{
		Gender:                   p.Gender,
		Dob:                      p.Dob,
		MaritalStatus:            p.MaritalStatus,
		SalaryCurrency:           p.SalaryCurrency,
		CurrentCity:              p.CurrentCity,
		CurrentState:             p.CurrentState,
		Country:                  p.Country,
		Nationality:              p.Nationality,
		WorkAuthorizationCountry: p.WorkAuthorizationCountry,
		AvailabilityToJoin:       p.AvailabilityToJoin,
		Location:                 p.Location,
		TotalExperienceYears:     p.TotalExperienceYears,
		TotalExperienceMonths:    p.TotalExperienceMonths,
		NoticePeriodDays:         p.NoticePeriodDays,
		ExpectedSalary:           p.ExpectedSalary,
	}
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func applyInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func validateExperience(fields *map[string]string, years, months int) {
	if years < 0 || years > 60 {
		(*fields)["total_experience_years"] = "Ensure this value is between 0 and 60."
	}
	if months < 0 || months > 11 {
		(*fields)["total_experience_months"] = "Ensure this value is between 0 and 11."
	}
}

func validateAmounts(fields *map[string]string, noticeDays *int, salary *int64) {
	if noticeDays != nil && *noticeDays < 0 {
		(*fields)["notice_period_days"] = "Ensure this value is greater than or equal to 0."
	}
	if salary != nil && *salary < 0 {
		(*fields)["expected_salary"] = "Ensure this value is greater than or equal to 0."
	}
}

