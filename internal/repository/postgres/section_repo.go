package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-jobportal-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Child-collection operations of candidateRepository. Every mutation bumps the
// parent profile's updated_at, since it drives both completion recency and the
// search "updated within" filter.

func (r *candidateRepository) ListSkills(ctx context.Context, profileID uuid.UUID) ([]domain.CandidateSkill, error) {
	query := `SELECT id, profile_id, name FROM candidate_skills WHERE profile_id = $1 ORDER BY name`
	rows, err := r.db.Query(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	skills := []domain.CandidateSkill{}
	for rows.Next() {
		var s domain.CandidateSkill
		if err := rows.Scan(&s.ID, &s.ProfileID, &s.Name); err != nil {
			return nil, err
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}

func (r *candidateRepository) AddSkill(ctx context.Context, skill *domain.CandidateSkill) error {
	skill.ID = uuid.New()
	_, err := r.db.Exec(ctx,
		`INSERT INTO candidate_skills (id, profile_id, name) VALUES ($1, $2, $3)`,
		skill.ID, skill.ProfileID, skill.Name,
	)
	return err
}

func (r *candidateRepository) DeleteSkill(ctx context.Context, profileID, skillID uuid.UUID) (bool, error) {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM candidate_skills WHERE id = $1 AND profile_id = $2`,
		skillID, profileID,
	)
	if err != nil {
		return false, err
	}
	return cmdTag.RowsAffected() > 0, nil
}

// ReplaceSkills applies the bulk-replace diff in one transaction, touching
// the profile as part of it.
func (r *candidateRepository) ReplaceSkills(ctx context.Context, profileID uuid.UUID, deleteIDs []uuid.UUID, create []domain.CandidateSkill) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if len(deleteIDs) > 0 {
		_, err = tx.Exec(ctx,
			`DELETE FROM candidate_skills WHERE profile_id = $1 AND id = ANY($2)`,
			profileID, deleteIDs,
		)
		if err != nil {
			return fmt.Errorf("failed to delete skills: %w", err)
		}
	}

	for i := range create {
		create[i].ID = uuid.New()
		create[i].ProfileID = profileID
		_, err = tx.Exec(ctx,
			`INSERT INTO candidate_skills (id, profile_id, name) VALUES ($1, $2, $3)`,
			create[i].ID, profileID, create[i].Name,
		)
		if err != nil {
			return fmt.Errorf("failed to insert skill %q: %w", create[i].Name, err)
		}
	}

	_, err = tx.Exec(ctx, `UPDATE candidate_profiles SET updated_at = NOW() WHERE id = $1`, profileID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *candidateRepository) CreateEmployment(ctx context.Context, e *domain.CandidateEmployment) error {
	start, err := parseDate(&e.StartDate)
	if err != nil || start == nil {
		return fmt.Errorf("invalid start_date: %v", err)
	}
	end, err := parseDate(e.EndDate)
	if err != nil {
		return fmt.Errorf("invalid end_date: %w", err)
	}

	e.ID = uuid.New()
	query := `
		INSERT INTO candidate_employments (id, profile_id, company, title, start_date, end_date, is_current, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.db.Exec(ctx, query, e.ID, e.ProfileID, e.Company, e.Title, start, end, e.IsCurrent, e.Description)
	return err
}

func (r *candidateRepository) GetEmployment(ctx context.Context, profileID, id uuid.UUID) (*domain.CandidateEmployment, error) {
	query := `
		SELECT id, profile_id, company, title, start_date, end_date, is_current, COALESCE(description, '')
		FROM candidate_employments WHERE id = $1 AND profile_id = $2`

	var e domain.CandidateEmployment
	var startDate time.Time
	var endDate *time.Time
	err := r.db.QueryRow(ctx, query, id, profileID).Scan(
		&e.ID, &e.ProfileID, &e.Company, &e.Title, &startDate, &endDate, &e.IsCurrent, &e.Description,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	e.StartDate = startDate.Format("2006-01-02")
	if endDate != nil {
		ed := endDate.Format("2006-01-02")
		e.EndDate = &ed
	}
	return &e, nil
}

func (r *candidateRepository) UpdateEmployment(ctx context.Context, e *domain.CandidateEmployment) error {
	start, err := parseDate(&e.StartDate)
	if err != nil || start == nil {
		return fmt.Errorf("invalid start_date: %v", err)
	}
	end, err := parseDate(e.EndDate)
	if err != nil {
		return fmt.Errorf("invalid end_date: %w", err)
	}

	query := `
		UPDATE candidate_employments
		SET company = $1, title = $2, start_date = $3, end_date = $4, is_current = $5, description = $6
		WHERE id = $7 AND profile_id = $8`
	_, err = r.db.Exec(ctx, query, e.Company, e.Title, start, end, e.IsCurrent, e.Description, e.ID, e.ProfileID)
	return err
}

func (r *candidateRepository) DeleteEmployment(ctx context.Context, profileID, id uuid.UUID) (bool, error) {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM candidate_employments WHERE id = $1 AND profile_id = $2`,
		id, profileID,
	)
	if err != nil {
		return false, err
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *candidateRepository) CreateEducation(ctx context.Context, e *domain.CandidateEducation) error {
	e.ID = uuid.New()
	query := `
		INSERT INTO candidate_educations (id, profile_id, degree, institution, course_type, start_year, end_year, marks_percentage)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query, e.ID, e.ProfileID, e.Degree, e.Institution, e.CourseType, e.StartYear, e.EndYear, e.MarksPercentage)
	return err
}

func (r *candidateRepository) GetEducation(ctx context.Context, profileID, id uuid.UUID) (*domain.CandidateEducation, error) {
	query := `
		SELECT id, profile_id, degree, institution, COALESCE(course_type, ''), start_year, end_year, marks_percentage
		FROM candidate_educations WHERE id = $1 AND profile_id = $2`

	var e domain.CandidateEducation
	err := r.db.QueryRow(ctx, query, id, profileID).Scan(
		&e.ID, &e.ProfileID, &e.Degree, &e.Institution, &e.CourseType, &e.StartYear, &e.EndYear, &e.MarksPercentage,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *candidateRepository) UpdateEducation(ctx context.Context, e *domain.CandidateEducation) error {
	query := `
		UPDATE candidate_educations
		SET degree = $1, institution = $2, course_type = $3, start_year = $4, end_year = $5, marks_percentage = $6
		WHERE id = $7 AND profile_id = $8`
	_, err := r.db.Exec(ctx, query, e.Degree, e.Institution, e.CourseType, e.StartYear, e.EndYear, e.MarksPercentage, e.ID, e.ProfileID)
	return err
}

func (r *candidateRepository) DeleteEducation(ctx context.Context, profileID, id uuid.UUID) (bool, error) {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM candidate_educations WHERE id = $1 AND profile_id = $2`,
		id, profileID,
	)
	if err != nil {
		return false, err
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *candidateRepository) CreateProject(ctx context.Context, p *domain.CandidateProject) error {
	p.ID = uuid.New()
	query := `
		INSERT INTO candidate_projects (id, profile_id, title, description, link, status,
			worked_from_year, worked_from_month, worked_till_year, worked_till_month)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(ctx, query, p.ID, p.ProfileID, p.Title, p.Description, p.Link, p.Status,
		p.WorkedFromYear, p.WorkedFromMonth, p.WorkedTillYear, p.WorkedTillMonth)
	return err
}

func (r *candidateRepository) GetProject(ctx context.Context, profileID, id uuid.UUID) (*domain.CandidateProject, error) {
	query := `
		SELECT id, profile_id, title, COALESCE(description, ''), COALESCE(link, ''), COALESCE(status, ''),
		       worked_from_year, worked_from_month, worked_till_year, worked_till_month
		FROM candidate_projects WHERE id = $1 AND profile_id = $2`

	var p domain.CandidateProject
	err := r.db.QueryRow(ctx, query, id, profileID).Scan(
		&p.ID, &p.ProfileID, &p.Title, &p.Description, &p.Link, &p.Status,
		&p.WorkedFromYear, &p.WorkedFromMonth, &p.WorkedTillYear, &p.WorkedTillMonth,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *candidateRepository) UpdateProject(ctx context.Context, p *domain.CandidateProject) error {
	query := `
		UPDATE candidate_projects
		SET title = $1, description = $2, link = $3, status = $4,
			worked_from_year = $5, worked_from_month = $6, worked_till_year = $7, worked_till_month = $8
		WHERE id = $9 AND profile_id = $10`
	_, err := r.db.Exec(ctx, query, p.Title, p.Description, p.Link, p.Status,
		p.WorkedFromYear, p.WorkedFromMonth, p.WorkedTillYear, p.WorkedTillMonth, p.ID, p.ProfileID)
	return err
}

func (r *candidateRepository) DeleteProject(ctx context.Context, profileID, id uuid.UUID) (bool, error) {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM candidate_projects WHERE id = $1 AND profile_id = $2`,
		id, profileID,
	)
	if err != nil {
		return false, err
	}
	return cmdTag.RowsAffected() > 0, nil
}
