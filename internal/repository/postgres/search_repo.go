package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-jobportal-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type searchRepository struct {
	db *pgxpool.Pool
}

func NewSearchRepository(db *pgxpool.Pool) domain.SearchRepository {
	return &searchRepository{db: db}
}

const searchProfileColumns = `
	p.id, p.user_id, p.full_name, p.email, COALESCE(p.phone, ''), COALESCE(p.location, ''),
	COALESCE(p.location_country, ''), COALESCE(p.summary, ''), COALESCE(p.work_status, ''),
	COALESCE(p.availability_to_join, ''), p.total_experience_years, p.total_experience_months,
	COALESCE(p.gender, ''), p.dob, COALESCE(p.current_city, ''), COALESCE(p.current_state, ''),
	COALESCE(p.country, ''), COALESCE(p.nationality, ''), COALESCE(p.marital_status, ''),
	COALESCE(p.work_authorization_country, ''), COALESCE(p.salary_currency, ''),
	p.notice_period_days, p.expected_salary, COALESCE(p.resume_key, ''), COALESCE(p.photo_key, ''),
	p.is_searchable, p.updated_at, p.created_at`

// clauseBuilder accumulates the OR-combined filter clauses with positional args.
type clauseBuilder struct {
	clauses []string
	args    []interface{}
}

// arg registers a query argument and returns its placeholder.
func (b *clauseBuilder) arg(v interface{}) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *clauseBuilder) add(clause string) {
	b.clauses = append(b.clauses, clause)
}

// FindSearchable builds one dynamic query: base filter (searchable flag, active
// owner) AND the disjunction of every supplied clause. All supplied criteria
// are OR-combined, matching the long-standing search behavior.
func (r *searchRepository) FindSearchable(ctx context.Context, f domain.SearchFilter) ([]domain.ProfileAggregate, error) {
	b := &clauseBuilder{}

	if f.Keywords != "" {
		pattern := "%" + f.Keywords + "%"
		b.add(fmt.Sprintf(`(p.full_name ILIKE %s OR p.summary ILIKE %s OR EXISTS (
			SELECT 1 FROM candidate_skills cs WHERE cs.profile_id = p.id AND cs.name ILIKE %s))`,
			b.arg(pattern), b.arg(pattern), b.arg(pattern)))
	}
	if f.Location != "" {
		pattern := "%" + f.Location + "%"
		b.add(fmt.Sprintf(`(p.location ILIKE %s OR p.current_city ILIKE %s OR p.current_state ILIKE %s OR p.country ILIKE %s)`,
			b.arg(pattern), b.arg(pattern), b.arg(pattern), b.arg(pattern)))
	}
	if f.City != "" {
		b.add(fmt.Sprintf(`p.current_city ILIKE %s`, b.arg("%"+f.City+"%")))
	}
	if f.State != "" {
		b.add(fmt.Sprintf(`p.current_state ILIKE %s`, b.arg("%"+f.State+"%")))
	}
	if f.Country != "" {
		b.add(fmt.Sprintf(`p.country ILIKE %s`, b.arg("%"+f.Country+"%")))
	}
	if f.ExpMinMonths != nil {
		b.add(fmt.Sprintf(`(p.total_experience_years * 12 + p.total_experience_months) >= %s`, b.arg(*f.ExpMinMonths)))
	}
	if f.ExpMaxMonths != nil {
		b.add(fmt.Sprintf(`(p.total_experience_years * 12 + p.total_experience_months) <= %s`, b.arg(*f.ExpMaxMonths)))
	}
	for _, name := range f.SkillNames {
		b.add(fmt.Sprintf(`EXISTS (SELECT 1 FROM candidate_skills cs WHERE cs.profile_id = p.id AND cs.name ILIKE %s)`,
			b.arg("%"+name+"%")))
	}
	if len(f.SkillIDs) > 0 {
		b.add(fmt.Sprintf(`EXISTS (
			SELECT 1 FROM candidate_skills cs
			WHERE cs.profile_id = p.id
			  AND LOWER(cs.name) IN (SELECT LOWER(s.name) FROM skills s WHERE s.id = ANY(%s)))`,
			b.arg(f.SkillIDs)))
	}
	if f.UpdatedSince != nil {
		b.add(fmt.Sprintf(`p.updated_at >= %s`, b.arg(*f.UpdatedSince)))
	}
	if f.SalaryMin != nil {
		b.add(fmt.Sprintf(`p.expected_salary >= %s`, b.arg(*f.SalaryMin)))
	}
	if f.SalaryMax != nil {
		b.add(fmt.Sprintf(`p.expected_salary <= %s`, b.arg(*f.SalaryMax)))
	}
	if f.NoticeMaxDays != nil {
		b.add(fmt.Sprintf(`p.notice_period_days <= %s`, b.arg(*f.NoticeMaxDays)))
	}
	if f.WorkStatus != "" {
		b.add(fmt.Sprintf(`p.work_status = %s`, b.arg(f.WorkStatus)))
	}
	if f.Availability != "" {
		b.add(fmt.Sprintf(`p.availability_to_join = %s`, b.arg(f.Availability)))
	}
	if f.Education != "" {
		b.add(fmt.Sprintf(`EXISTS (SELECT 1 FROM candidate_educations ce WHERE ce.profile_id = p.id AND ce.degree = %s)`,
			b.arg(f.Education)))
	}

	query := `
		SELECT ` + searchProfileColumns + `
		FROM candidate_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.is_searchable = TRUE AND u.is_active = TRUE`
	if len(b.clauses) > 0 {
		query += " AND (" + strings.Join(b.clauses, " OR ") + ")"
	}
	query += " ORDER BY p.updated_at DESC"

	rows, err := r.db.Query(ctx, query, b.args...)
	if err != nil {
		return nil, fmt.Errorf("search query failed: %w", err)
	}
	defer rows.Close()

	var profiles []domain.CandidateProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	return r.loadAggregates(ctx, profiles)
}

func (r *searchRepository) FindByProfileID(ctx context.Context, profileID uuid.UUID) (*domain.ProfileAggregate, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+searchProfileColumns+`
		FROM candidate_profiles p
		WHERE p.id = $1`, profileID)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	aggregates, err := r.loadAggregates(ctx, []domain.CandidateProfile{*p})
	if err != nil {
		return nil, err
	}
	return &aggregates[0], nil
}

// loadAggregates batch-loads the child collections of every matched profile
// with one query per collection.
func (r *searchRepository) loadAggregates(ctx context.Context, profiles []domain.CandidateProfile) ([]domain.ProfileAggregate, error) {
	aggregates := make([]domain.ProfileAggregate, len(profiles))
	if len(profiles) == 0 {
		return aggregates, nil
	}

	index := make(map[uuid.UUID]int, len(profiles))
	ids := make([]uuid.UUID, len(profiles))
	for i, p := range profiles {
		aggregates[i] = domain.ProfileAggregate{
			Profile:     p,
			Skills:      []domain.CandidateSkill{},
			Employments: []domain.CandidateEmployment{},
			Educations:  []domain.CandidateEducation{},
			Projects:    []domain.CandidateProject{},
		}
		index[p.ID] = i
		ids[i] = p.ID
	}

	skillRows, err := r.db.Query(ctx,
		`SELECT id, profile_id, name FROM candidate_skills WHERE profile_id = ANY($1) ORDER BY name`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch skills: %w", err)
	}
	defer skillRows.Close()
	for skillRows.Next() {
		var s domain.CandidateSkill
		if err := skillRows.Scan(&s.ID, &s.ProfileID, &s.Name); err != nil {
			return nil, err
		}
		i := index[s.ProfileID]
		aggregates[i].Skills = append(aggregates[i].Skills, s)
	}
	skillRows.Close()

	empRows, err := r.db.Query(ctx,
		`SELECT id, profile_id, company, title, start_date, end_date, is_current, COALESCE(description, '')
		 FROM candidate_employments WHERE profile_id = ANY($1) ORDER BY start_date DESC`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employments: %w", err)
	}
	defer empRows.Close()
	for empRows.Next() {
		var e domain.CandidateEmployment
		var startDate time.Time
		var endDate *time.Time
		if err := empRows.Scan(&e.ID, &e.ProfileID, &e.Company, &e.Title, &startDate, &endDate, &e.IsCurrent, &e.Description); err != nil {
			return nil, err
		}
		e.StartDate = startDate.Format("2006-01-02")
		if endDate != nil {
			ed := endDate.Format("2006-01-02")
			e.EndDate = &ed
		}
		i := index[e.ProfileID]
		aggregates[i].Employments = append(aggregates[i].Employments, e)
	}
	empRows.Close()

	eduRows, err := r.db.Query(ctx,
		`SELECT id, profile_id, degree, institution, COALESCE(course_type, ''), start_year, end_year, marks_percentage
		 FROM candidate_educations WHERE profile_id = ANY($1) ORDER BY end_year DESC`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch educations: %w", err)
	}
	defer eduRows.Close()
	for eduRows.Next() {
		var e domain.CandidateEducation
		if err := eduRows.Scan(&e.ID, &e.ProfileID, &e.Degree, &e.Institution, &e.CourseType, &e.StartYear, &e.EndYear, &e.MarksPercentage); err != nil {
			return nil, err
		}
		i := index[e.ProfileID]
		aggregates[i].Educations = append(aggregates[i].Educations, e)
	}
	eduRows.Close()

	projRows, err := r.db.Query(ctx,
		`SELECT id, profile_id, title, COALESCE(description, ''), COALESCE(link, ''), COALESCE(status, ''),
		        worked_from_year, worked_from_month, worked_till_year, worked_till_month
		 FROM candidate_projects WHERE profile_id = ANY($1) ORDER BY title`, ids)
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
		i := index[p.ProfileID]
		aggregates[i].Projects = append(aggregates[i].Projects, p)
	}

	return aggregates, projRows.Err()
}

func (r *searchRepository) OwnerOrganization(ctx context.Context, profileID uuid.UUID) (*uuid.UUID, error) {
	var orgID *uuid.UUID
	err := r.db.QueryRow(ctx,
		`SELECT u.organization_id FROM candidate_profiles p JOIN users u ON u.id = p.user_id WHERE p.id = $1`,
		profileID,
	).Scan(&orgID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return orgID, nil
}
