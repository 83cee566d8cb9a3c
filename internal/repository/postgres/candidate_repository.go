package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-jobportal-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type candidateRepository struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepository{db: db}
}

const profileColumns = `
	id, user_id, full_name, email, COALESCE(phone, ''), COALESCE(location, ''),
	COALESCE(location_country, ''), COALESCE(summary, ''), COALESCE(work_status, ''),
	COALESCE(availability_to_join, ''), total_experience_years, total_experience_months,
	COALESCE(gender, ''), dob, COALESCE(current_city, ''), COALESCE(current_state, ''),
	COALESCE(country, ''), COALESCE(nationality, ''), COALESCE(marital_status, ''),
	COALESCE(work_authorization_country, ''), COALESCE(salary_currency, ''),
	notice_period_days, expected_salary, COALESCE(resume_key, ''), COALESCE(photo_key, ''),
	is_searchable, updated_at, created_at`

func scanProfile(row pgx.Row) (*domain.CandidateProfile, error) {
	var p domain.CandidateProfile
	var dob *time.Time
	err := row.Scan(
		&p.ID, &p.UserID, &p.FullName, &p.Email, &p.Phone, &p.Location,
		&p.LocationCountry, &p.Summary, &p.WorkStatus,
		&p.AvailabilityToJoin, &p.TotalExperienceYears, &p.TotalExperienceMonths,
		&p.Gender, &dob, &p.CurrentCity, &p.CurrentState,
		&p.Country, &p.Nationality, &p.MaritalStatus,
		&p.WorkAuthorizationCountry, &p.SalaryCurrency,
		&p.NoticePeriodDays, &p.ExpectedSalary, &p.ResumeKey, &p.PhotoKey,
		&p.IsSearchable, &p.UpdatedAt, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if dob != nil {
		d := dob.Format("2006-01-02")
		p.Dob = &d
	}
	return &p, nil
}

func parseDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateWithUser creates the user row and the empty candidate profile in one
// transaction: registration is all-or-nothing.
func (r *candidateRepository) CreateWithUser(ctx context.Context, user *domain.User, profile *domain.CandidateProfile) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	userQuery := `
		INSERT INTO users (id, email, full_name, phone, role, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, NOW())`
	if _, err := tx.Exec(ctx, userQuery, user.ID, user.Email, user.FullName, user.Phone, user.Role); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	profileQuery := `
		INSERT INTO candidate_profiles (
			id, user_id, full_name, email, phone, location, location_country,
			summary, salary_currency, is_searchable, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, '', 'INR', FALSE, NOW(), NOW())`
	_, err = tx.Exec(ctx, profileQuery,
		profile.ID, user.ID, profile.FullName, profile.Email, profile.Phone,
		profile.Location, profile.LocationCountry,
	)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *candidateRepository) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*domain.CandidateProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM candidate_profiles WHERE user_id = $1`
	p, err := scanProfile(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (r *candidateRepository) getProfileByID(ctx context.Context, profileID uuid.UUID) (*domain.CandidateProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM candidate_profiles WHERE id = $1`
	p, err := scanProfile(r.db.QueryRow(ctx, query, profileID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (r *candidateRepository) GetAggregateByUserID(ctx context.Context, userID uuid.UUID) (*domain.ProfileAggregate, error) {
	profile, err := r.GetProfileByUserID(ctx, userID)
	if err != nil || profile == nil {
		return nil, err
	}
	return r.loadChildren(ctx, profile)
}

func (r *candidateRepository) GetAggregateByProfileID(ctx context.Context, profileID uuid.UUID) (*domain.ProfileAggregate, error) {
	profile, err := r.getProfileByID(ctx, profileID)
	if err != nil || profile == nil {
		return nil, err
	}
	return r.loadChildren(ctx, profile)
}

func (r *candidateRepository) loadChildren(ctx context.Context, profile *domain.CandidateProfile) (*domain.ProfileAggregate, error) {
	agg := &domain.ProfileAggregate{
		Profile:     *profile,
		Skills:      []domain.CandidateSkill{},
		Employments: []domain.CandidateEmployment{},
		Educations:  []domain.CandidateEducation{},
		Projects:    []domain.CandidateProject{},
	}

	skills, err := r.ListSkills(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch skills: %w", err)
	}
	agg.Skills = skills

	empQuery := `
		SELECT id, profile_id, company, title, start_date, end_date, is_current, COALESCE(description, '')
		FROM candidate_employments WHERE profile_id = $1 ORDER BY start_date DESC`
	rows, err := r.db.Query(ctx, empQuery, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employments: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var e domain.CandidateEmployment
		var startDate time.Time
		var endDate *time.Time
		if err := rows.Scan(&e.ID, &e.ProfileID, &e.Company, &e.Title, &startDate, &endDate, &e.IsCurrent, &e.Description); err != nil {
			return nil, err
		}
		e.StartDate = startDate.Format("2006-01-02")
		if endDate != nil {
			ed := endDate.Format("2006-01-02")
			e.EndDate = &ed
		}
		agg.Employments = append(agg.Employments, e)
	}
	rows.Close()

	eduQuery := `
		SELECT id, profile_id, degree, institution, COALESCE(course_type, ''), start_year, end_year, marks_percentage
		FROM candidate_educations WHERE profile_id = $1 ORDER BY end_year DESC, start_year DESC`
	eduRows, err := r.db.Query(ctx, eduQuery, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch educations: %w", err)
	}
	defer eduRows.Close()
	for eduRows.Next() {
		var e domain.CandidateEducation
		if err := eduRows.Scan(&e.ID, &e.ProfileID, &e.Degree, &e.Institution, &e.CourseType, &e.StartYear, &e.EndYear, &e.MarksPercentage); err != nil {
			return nil, err
		}
		agg.Educations = append(agg.Educations, e)
	}
	eduRows.Close()

	projQuery := `
		SELECT id, profile_id, title, COALESCE(description, ''), COALESCE(link, ''), COALESCE(status, ''),
		       worked_from_year, worked_from_month, worked_till_year, worked_till_month
		FROM candidate_projects WHERE profile_id = $1 ORDER BY title`
	projRows, err := r.db.Query(ctx, projQuery, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}
	defer projRows.Close()
	for projRows.Next() {
		var p domain.CandidateProject
		if err := projRows.Scan(&p.ID, &p.ProfileID, &p.Title, &p.Description, &p.Link, &p.Status,
			&p.WorkedFromYear, &p.WorkedFromMonth, &p.WorkedTillYear, &p.WorkedTillMonth); err != nil {
			return nil, err
		}
		agg.Projects = append(agg.Projects, p)
	}

	return agg, projRows.Err()
}

func (r *candidateRepository) UpdateProfile(ctx context.Context, profile *domain.CandidateProfile) error {
	dob, err := parseDate(profile.Dob)
	if err != nil {
		return fmt.Errorf("invalid dob: %w", err)
	}

	query := `
		UPDATE candidate_profiles SET
			full_name = $1, email = $2, phone = $3, location = $4, location_country = $5,
			summary = $6, work_status = $7, availability_to_join = $8,
			total_experience_years = $9, total_experience_months = $10,
			gender = $11, dob = $12, current_city = $13, current_state = $14,
			country = $15, nationality = $16, marital_status = $17,
			work_authorization_country = $18, salary_currency = $19,
			notice_period_days = $20, expected_salary = $21, is_searchable = $22,
			updated_at = NOW()
		WHERE id = $23`

	cmdTag, err := r.db.Exec(ctx, query,
		profile.FullName, profile.Email, profile.Phone, profile.Location, profile.LocationCountry,
		profile.Summary, profile.WorkStatus, profile.AvailabilityToJoin,
		profile.TotalExperienceYears, profile.TotalExperienceMonths,
		profile.Gender, dob, profile.CurrentCity, profile.CurrentState,
		profile.Country, profile.Nationality, profile.MaritalStatus,
		profile.WorkAuthorizationCountry, profile.SalaryCurrency,
		profile.NoticePeriodDays, profile.ExpectedSalary, profile.IsSearchable,
		profile.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *candidateRepository) SetSearchable(ctx context.Context, profileID uuid.UUID, searchable bool) error {
	_, err := r.db.Exec(ctx,
		`UPDATE candidate_profiles SET is_searchable = $1 WHERE id = $2`,
		searchable, profileID,
	)
	return err
}

func (r *candidateRepository) Touch(ctx context.Context, profileID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`UPDATE candidate_profiles SET updated_at = NOW() WHERE id = $1`,
		profileID,
	)
	return err
}

func (r *candidateRepository) UpdateResumeKey(ctx context.Context, profileID uuid.UUID, key string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE candidate_profiles SET resume_key = $1, updated_at = NOW() WHERE id = $2`,
		key, profileID,
	)
	return err
}

func (r *candidateRepository) UpdatePhotoKey(ctx context.Context, profileID uuid.UUID, key string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE candidate_profiles SET photo_key = $1, updated_at = NOW() WHERE id = $2`,
		key, profileID,
	)
	return err
}
