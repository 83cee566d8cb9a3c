package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/apperror"
)

func (u *candidateUsecase) AddSkill(ctx context.Context, userID uuid.UUID, name string) (*domain.CandidateSkill, error) {
	profile, err := u.getProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.Validation("SKILL_INVALID_PAYLOAD", "Invalid skill payload.",
			map[string]string{"name": "This field is required."})
	}

	skill := &domain.CandidateSkill{
		ID:        uuid.New(),
		ProfileID: profile.ID,
		Name:      name,
	}
	if err := u.repo.AddSkill(ctx, skill); err != nil {
		return nil, apperror.Internal("SKILL_CREATE_ERROR", "Unable to add skill.", err)
	}
	if domain.NormalizeSkillName(name) != "" {
		if _, err := u.skillRepo.RegisterOrBump(ctx, name); err != nil {
			return nil, apperror.Internal("SKILL_CREATE_ERROR", "Unable to add skill.", err)
		}
	}
	if err := u.repo.Touch(ctx, profile.ID); err != nil {
		return nil, apperror.Internal("SKILL_CREATE_ERROR", "Unable to add skill.", err)
	}
	return skill, nil
}

func (u *candidateUsecase) DeleteSkill(ctx context.Context, userID, skillID uuid.UUID) error {
	profile, err := u.getProfile(ctx, userID)
	if err != nil {
		return err
	}
	found, err := u.repo.DeleteSkill(ctx, profile.ID, skillID)
	if err != nil {
		return apperror.Internal("SKILL_DELETE_ERROR", "Unable to delete skill.", err)
	}
	if !found {
		return apperror.NotFound("SKILL_NOT_FOUND", "Skill not found.")
	}
	if err := u.repo.Touch(ctx, profile.ID); err != nil {
		return apperror.Internal("SKILL_DELETE_ERROR", "Unable to delete skill.", err)
	}
	return nil
}

// ReplaceSkills diffs the desired list against the stored one by normalized
// name: unchanged rows keep their ids, missing names are deleted, new names
// are created. Duplicate names in the input collapse to their first
// occurrence.
func (u *candidateUsecase) ReplaceSkills(ctx context.Context, userID uuid.UUID, names []string) ([]domain.CandidateSkill, error) {
	profile, err := u.getProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	desired := make([]string, 0, len(names))
	seen := map[string]bool{}
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		norm := domain.NormalizeSkillName(name)
		if norm == "" || seen[norm] {
			continue
		}
		seen[norm] = true
		desired = append(desired, name)
	}

	existing, err := u.repo.ListSkills(ctx, profile.ID)
	if err != nil {
		return nil, apperror.Internal("SKILL_BULK_ERROR", "Unable to update skills.", err)
	}
	current := map[string]domain.CandidateSkill{}
	for _, s := range existing {
		norm := domain.NormalizeSkillName(s.Name)
		if _, dup := current[norm]; !dup {
			current[norm] = s
		}
	}

	var create []domain.CandidateSkill
	keep := map[string]bool{}
	for _, name := range desired {
		norm := domain.NormalizeSkillName(name)
		keep[norm] = true
		if _, ok := current[norm]; !ok {
			create = append(create, domain.CandidateSkill{
				ID:        uuid.New(),
				ProfileID: profile.ID,
				Name:      name,
			})
		}
	}
	var deleteIDs []uuid.UUID
	for _, s := range existing {
		if !keep[domain.NormalizeSkillName(s.Name)] {
			deleteIDs = append(deleteIDs, s.ID)
		}
	}

	if err := u.repo.ReplaceSkills(ctx, profile.ID, deleteIDs, create); err != nil {
		return nil, apperror.Internal("SKILL_BULK_ERROR", "Unable to update skills.", err)
	}
	for _, s := range create {
		if _, err := u.skillRepo.RegisterOrBump(ctx, s.Name); err != nil {
			return nil, apperror.Internal("SKILL_BULK_ERROR", "Unable to update skills.", err)
		}
	}

	updated, err := u.repo.ListSkills(ctx, profile.ID)
	if err != nil {
		return nil, apperror.Internal("SKILL_BULK_ERROR", "Unable to update skills.", err)
	}
	return updated, nil
}

// ===== Employment =====

func validateEmployment(e *domain.CandidateEmployment) map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(e.Company) == "" {
		fields["company"] = "This field is required."
	}
	if strings.TrimSpace(e.Title) == "" {
		fields["title"] = "This field is required."
	}
	if e.StartDate == "" {
		fields["start_date"] = "This field is required."
	} else if _, err := time.Parse("2006-01-02", e.StartDate); err != nil {
		fields["start_date"] = "Date has wrong format. Use YYYY-MM-DD."
	}
	if e.EndDate != nil && *e.EndDate != "" {
		if _, err := time.Parse("2006-01-02", *e.EndDate); err != nil {
			fields["end_date"] = "Date has wrong format. Use YYYY-MM-DD."
		}
	}
	return fields
}

func (u *candidateUsecase) CreateEmployment(ctx context.Context, userID uuid.UUID, patch domain.EmploymentPatch) (*domain.CandidateEmployment, error) {
	profile, err := u.getProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	e := domain.CandidateEmployment{ID: uuid.New(), ProfileID: profile.ID}
	mergeEmployment(&e, patch)
	if fields := validateEmployment(&e); len(fields) > 0 {
		return nil, apperror.Validation("EMPLOYMENT_INVALID_PAYLOAD", "Invalid employment payload.", fields)
	}
	if err := u.repo.CreateEmployment(ctx, &e); err != nil {
		return nil, apperror.Internal("EMPLOYMENT_CREATE_ERROR", "Unable to add employment.", err)
	}
	if err := u.repo.Touch(ctx, profile.ID); err != nil {
		return nil, apperror.Internal("EMPLOYMENT_CREATE_ERROR", "Unable to add employment.", err)
	}
	return &e, nil
}

func (u *candidateUsecase) UpdateEmployment(ctx context.Context, userID, id uuid.UUID, patch domain.EmploymentPatch) (*domain.CandidateEmployment, error) {
	profile, err := u.getProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	e, err := u.repo.GetEmployment(ctx, profile.ID, id)
	if err != nil {
		return nil, apperror.Internal("EMPLOYMENT_UPDATE_ERROR", "Unable to update employment.", err)
	}
	if e == nil {
		return nil, apperror.NotFound("EMPLOYMENT_NOT_FOUND", "Employment not found.")
	}
	mergeEmployment(e, patch)
	if fields := validateEmployment(e); len(fields) > 0 {
		return nil, apperror.Validation("EMPLOYMENT_INVALID_PAYLOAD", "Invalid employment payload.", fields)
	}
	if err := u.repo.UpdateEmployment(ctx, e); err != nil {
		return nil, apperror.Internal("EMPLOYMENT_UPDATE_ERROR", "Unable to update employment.", err)
	}
	if err := u.repo.Touch(ctx, profile.ID); err != nil {
		return nil, apperror.Internal("EMPLOYMENT_UPDATE_ERROR", "Unable to update employment.", err)
	}
	return e, nil
}

func (u *candidateUsecase) DeleteEmployment(ctx context.Context, userID, id uuid.UUID) error {
	return u.deleteSection(ctx, userID, id, "EMPLOYMENT", u.repo.DeleteEmployment)
}

func mergeEmployment(e *domain.CandidateEmployment, patch domain.EmploymentPatch) {
	applyString(&e.Company, patch.Company)
	applyString(&e.Title, patch.Title)
	applyString(&e.StartDate, patch.StartDate)
	if patch.EndDate != nil {
		if *patch.EndDate == "" {
			e.EndDate = nil
		} else {
			end := *patch.EndDate
			e.EndDate = &end
		}
	}
	if patch.IsCurrent != nil {
		e.IsCurrent = *patch.IsCurrent
	}
	applyString(&e.Description, patch.Description)
}

// ===== Education =====

func validateEducation(e *domain.CandidateEducation) map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(e.Degree) == "" {
		fields["degree"] = "This field is required."
	}
	if strings.TrimSpace(e.Institution) == "" {
		fields["institution"] = "This field is required."
	}
	if e.StartYear == 0 {
		fields["start_year"] = "This field is required."
	}
	if e.EndYear == 0 {
		fields["end_year"] = "This field is required."
	}
	if e.StartYear != 0 && e.EndYear != 0 && e.EndYear < e.StartYear {
		fields["end_year"] = "End year cannot be before start year."
	}
	if e.MarksPercentage != nil && (*e.MarksPercentage < 0 || *e.MarksPercentage > 100) {
		fields["marks_percentage"] = "Ensure this value is between 0 and 100."
	}
	return fields
}

func (u *candidateUsecase) CreateEducation(ctx context.Context, userID uuid.UUID, patch domain.EducationPatch) (*domain.CandidateEducation, error) {
	profile, err := u.getProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	e := domain.CandidateEducation{ID: uuid.New(), ProfileID: profile.ID}
	mergeEducation(&e, patch)
	if fields := validateEducation(&e); len(fields) > 0 {
		return nil, apperror.Validation("EDUCATION_INVALID_PAYLOAD", "Invalid education payload.", fields)
	}
	if err := u.repo.CreateEducation(ctx, &e); err != nil {
		return nil, apperror.Internal("EDUCATION_CREATE_ERROR", "Unable to add education.", err)
	}
	if err := u.repo.Touch(ctx, profile.ID); err != nil {
		return nil, apperror.Internal("EDUCATION_CREATE_ERROR", "Unable to add education.", err)
	}
	return &e, nil
}

func (u *candidateUsecase) UpdateEducation(ctx context.Context, userID, id uuid.UUID, patch domain.EducationPatch) (*domain.CandidateEducation, error) {
	profile, err := u.getProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	e, err := u.repo.GetEducation(ctx, profile.ID, id)
	if err != nil {
		return nil, apperror.Internal("EDUCATION_UPDATE_ERROR", "Unable to update education.", err)
	}
	if e == nil {
		return nil, apperror.NotFound("EDUCATION_NOT_FOUND", "Education not found.")
	}
	mergeEducation(e, patch)
	if fields := validateEducation(e); len(fields) > 0 {
		return nil, apperror.Validation("EDUCATION_INVALID_PAYLOAD", "Invalid education payload.", fields)
	}
	if err := u.repo.UpdateEducation(ctx, e); err != nil {
		return nil, apperror.Internal("EDUCATION_UPDATE_ERROR", "Unable to update education.", err)
	}
	if err := u.repo.Touch(ctx, profile.ID); err != nil {
		return nil, apperror.Internal("EDUCATION_UPDATE_ERROR", "Unable to update education.", err)
	}
	return e, nil
}

func (u *candidateUsecase) DeleteEducation(ctx context.Context, userID, id uuid.UUID) error {
	return u.deleteSection(ctx, userID, id, "EDUCATION", u.repo.DeleteEducation)
}

func mergeEducation(e *domain.CandidateEducation, patch domain.EducationPatch) {
	applyString(&e.Degree, patch.Degree)
	applyString(&e.Institution, patch.Institution)
	applyString(&e.CourseType, patch.CourseType)
	applyInt(&e.StartYear, patch.StartYear)
	applyInt(&e.EndYear, patch.EndYear)
	if patch.MarksPercentage != nil {
		e.MarksPercentage = patch.MarksPercentage
	}
}

// ===== Projects =====

func validateProject(p *domain.CandidateProject) map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(p.Title) == "" {
		fields["title"] = "This field is required."
	}
	if p.Status != "" && p.Status != domain.ProjectStatusInProgress && p.Status != domain.ProjectStatusFinished {
		fields["status"] = "Select a valid choice."
	}
	validMonth := func(m *int) bool { return m == nil || (*m >= 1 && *m <= 12) }
	if !validMonth(p.WorkedFromMonth) {
		fields["worked_from_month"] = "Ensure this value is between 1 and 12."
	}
	if !validMonth(p.WorkedTillMonth) {
		fields["worked_till_month"] = "Ensure this value is between 1 and 12."
	}
	if len(fields) > 0 {
		return fields
	}

	if p.Status != "" {
		if p.WorkedFromYear == nil || p.WorkedFromMonth == nil {
			fields["worked_from"] = "Worked from is required."
			return fields
		}
		if p.Status == domain.ProjectStatusFinished {
			if p.WorkedTillYear == nil || p.WorkedTillMonth == nil {
				fields["worked_till"] = "Worked till is required."
				return fields
			}
			from := *p.WorkedFromYear*12 + *p.WorkedFromMonth
			till := *p.WorkedTillYear*12 + *p.WorkedTillMonth
			if till < from {
				fields["worked_till"] = "worked till must be after worked from."
			}
		}
	}
	return fields
}

func (u *candidateUsecase) CreateProject(ctx context.Context, userID uuid.UUID, patch domain.ProjectPatch) (*domain.CandidateProject, error) {
	profile, err := u.getProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	p := domain.CandidateProject{ID: uuid.New(), ProfileID: profile.ID}
	mergeProject(&p, patch)
	if fields := validateProject(&p); len(fields) > 0 {
		return nil, apperror.Validation("PROJECT_INVALID_PAYLOAD", "Invalid project payload.", fields)
	}
	if err := u.repo.CreateProject(ctx, &p); err != nil {
		return nil, apperror.Internal("PROJECT_CREATE_ERROR", "Unable to add project.", err)
	}
	if err := u.repo.Touch(ctx, profile.ID); err != nil {
		return nil, apperror.Internal("PROJECT_CREATE_ERROR", "Unable to add project.", err)
	}
	return &p, nil
}

func (u *candidateUsecase) UpdateProject(ctx context.Context, userID, id uuid.UUID, patch domain.ProjectPatch) (*domain.CandidateProject, error) {
	profile, err := u.getProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	p, err := u.repo.GetProject(ctx, profile.ID, id)
	if err != nil {
		return nil, apperror.Internal("PROJECT_UPDATE_ERROR", "Unable to update project.", err)
	}
	if p == nil {
		return nil, apperror.NotFound("PROJECT_NOT_FOUND", "Project not found.")
	}
	mergeProject(p, patch)
	if fields := validateProject(p); len(fields) > 0 {
		return nil, apperror.Validation("PROJECT_INVALID_PAYLOAD", "Invalid project payload.", fields)
	}
	if err := u.repo.UpdateProject(ctx, p); err != nil {
		return nil, apperror.Internal("PROJECT_UPDATE_ERROR", "Unable to update project.", err)
	}
	if err := u.repo.Touch(ctx, profile.ID); err != nil {
		return nil, apperror.Internal("PROJECT_UPDATE_ERROR", "Unable to update project.", err)
	}
	return p, nil
}

func (u *candidateUsecase) DeleteProject(ctx context.Context, userID, id uuid.UUID) error {
	return u.deleteSection(ctx, userID, id, "PROJECT", u.repo.DeleteProject)
}

func mergeProject(p *domain.CandidateProject, patch domain.ProjectPatch) {
	applyString(&p.Title, patch.Title)
	applyString(&p.Description, patch.Description)
	applyString(&p.Link, patch.Link)
	applyString(&p.Status, patch.Status)
	if patch.WorkedFromYear != nil {
		p.WorkedFromYear = patch.WorkedFromYear
	}
	if patch.WorkedFromMonth != nil {
		p.WorkedFromMonth = patch.WorkedFromMonth
	}
	if patch.WorkedTillYear != nil {
		p.WorkedTillYear = patch.WorkedTillYear
	}
	if patch.WorkedTillMonth != nil {
		p.WorkedTillMonth = patch.WorkedTillMonth
	}
}

// deleteSection shares the delete-then-touch flow of the three child
// collections. The section name feeds the error codes and messages.
func (u *candidateUsecase) deleteSection(
	ctx context.Context,
	userID, id uuid.UUID,
	section string,
	del func(ctx context.Context, profileID, id uuid.UUID) (bool, error),
) error {
	profile, err := u.getProfile(ctx, userID)
	if err != nil {
		return err
	}
	found, err := del(ctx, profile.ID, id)
	if err != nil {
		return apperror.Internal(section+"_DELETE_ERROR", "Unable to delete "+strings.ToLower(section)+".", err)
	}
	if !found {
		name := strings.ToLower(section)
		return apperror.NotFound(section+"_NOT_FOUND", strings.ToUpper(name[:1])+name[1:]+" not found.")
	}
	if err := u.repo.Touch(ctx, profile.ID); err != nil {
		return apperror.Internal(section+"_DELETE_ERROR", "Unable to delete "+strings.ToLower(section)+".", err)
	}
	return nil
}
