package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prashikshan/backend/internal/app/models"
	"github.com/prashikshan/backend/internal/app/models/dto"
	"github.com/prashikshan/backend/internal/pkg/logger"
)

// InternshipRepository handles the internships and applications tables
type InternshipRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewInternshipRepository creates a new InternshipRepository
func NewInternshipRepository(db *pgxpool.Pool) *InternshipRepository {
	return &InternshipRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a posting and returns it with its generated fields.
// An empty college list is stored as {0}, meaning open to all colleges.
func (r *InternshipRepository) Create(ctx context.Context, in *models.Internship) (*models.Internship, error) {
	collegeIDs := in.CollegeIDs
	if len(collegeIDs) == 0 {
		collegeIDs = []int64{0}
	}

	sql, args, err := r.sb.Insert("internships").
		Columns("employer_id", "title", "work_mode", "location", "internship_type", "duration",
			"stipend_type", "stipend_amount", "skills", "openings", "start_date", "application_deadline",
			"description", "perks", "eligibility", "requirements", "status", "college_ids").
		Values(in.EmployerID, in.Title, in.WorkMode, in.Location, in.InternshipType, in.Duration,
			in.StipendType, in.StipendAmount, in.Skills, in.Openings, in.StartDate, in.ApplicationDeadline,
			in.Description, in.Perks, in.Eligibility, in.Requirements, in.Status, collegeIDs).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert internship query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&in.ID, &in.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("employerID", in.EmployerID).Msg("Error inserting internship")
		return nil, fmt.Errorf("error inserting internship: %w", err)
	}
	in.CollegeIDs = collegeIDs
	return in, nil
}

func internshipDest(in *models.Internship) []interface{} {
	return []interface{}{
		&in.ID, &in.EmployerID, &in.Title, &in.WorkMode, &in.Location, &in.InternshipType, &in.Duration,
		&in.StipendType, &in.StipendAmount, &in.Skills, &in.Openings, &in.StartDate, &in.ApplicationDeadline,
		&in.Description, &in.Perks, &in.Eligibility, &in.Requirements, &in.Status, &in.CollegeIDs, &in.CreatedAt,
	}
}

func internshipColumns(prefix string) []string {
	cols := []string{
		"id", "employer_id", "title", "work_mode", "location", "internship_type", "duration",
		"stipend_type", "stipend_amount", "skills", "openings", "start_date", "application_deadline",
		"description", "perks", "eligibility", "requirements", "status", "college_ids", "created_at",
	}
	if prefix == "" {
		return cols
	}
	prefixed := make([]string, len(cols))
	for i, c := range cols {
		prefixed[i] = prefix + "." + c
	}
	return prefixed
}

// ListActive lists active postings joined with the posting company's name,
// newest first.
func (r *InternshipRepository) ListActive(ctx context.Context) ([]*models.Internship, error) {
	columns := append(internshipColumns("i"), "e.company_name")
	sql, args, err := r.sb.Select(columns...).
		From("internships i").
		LeftJoin("employer e ON e.id = i.employer_id").
		Where(squirrel.Eq{"i.status": "Active"}).
		OrderBy("i.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build internship list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing internships")
		return nil, fmt.Errorf("error listing internships: %w", err)
	}
	defer rows.Close()

	var internships []*models.Internship
	for rows.Next() {
		in := &models.Internship{}
		dest := append(internshipDest(in), &in.CompanyName)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("error scanning internship row: %w", err)
		}
		internships = append(internships, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating internship rows: %w", err)
	}
	return internships, nil
}

// ListByEmployer lists an employer's postings with their application counts
func (r *InternshipRepository) ListByEmployer(ctx context.Context, employerID int64) ([]*models.Internship, error) {
	columns := append(internshipColumns("i"), "COUNT(a.id)")
	sql, args, err := r.sb.Select(columns...).
		From("internships i").
		LeftJoin("applications a ON a.job_id = i.id").
		Where(squirrel.Eq{"i.employer_id": employerID}).
		GroupBy(internshipColumns("i")...).
		OrderBy("i.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build employer internship query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("employerID", employerID).Msg("Error listing employer internships")
		return nil, fmt.Errorf("error listing employer internships: %w", err)
	}
	defer rows.Close()

	var internships []*models.Internship
	for rows.Next() {
		in := &models.Internship{}
		dest := append(internshipDest(in), &in.ApplicationCount)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("error scanning internship row: %w", err)
		}
		internships = append(internships, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating internship rows: %w", err)
	}
	return internships, nil
}

// ListEligible lists active postings open to a student's college, meaning
// postings whose college list contains the college id or the 0 wildcard.
func (r *InternshipRepository) ListEligible(ctx context.Context, collegeID int64) ([]*models.Internship, error) {
	columns := append(internshipColumns("i"), "e.company_name")
	sql, args, err := r.sb.Select(columns...).
		From("internships i").
		LeftJoin("employer e ON e.id = i.employer_id").
		Where(squirrel.And{
			squirrel.Eq{"i.status": "Active"},
			squirrel.Expr("(i.college_ids @> ARRAY[?]::bigint[] OR i.college_ids @> ARRAY[0]::bigint[])", collegeID),
		}).
		OrderBy("i.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build eligible internship query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("collegeID", collegeID).Msg("Error listing eligible internships")
		return nil, fmt.Errorf("error listing eligible internships: %w", err)
	}
	defer rows.Close()

	var internships []*models.Internship
	for rows.Next() {
		in := &models.Internship{}
		dest := append(internshipDest(in), &in.CompanyName)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("error scanning internship row: %w", err)
		}
		internships = append(internships, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating internship rows: %w", err)
	}
	return internships, nil
}

// ApplicationSummary returns a student's application counters
func (r *InternshipRepository) ApplicationSummary(ctx context.Context, studentID int64) (total, active, completed int64, err error) {
	const sql = `SELECT
		(SELECT COUNT(*) FROM applications WHERE student_id = $1),
		(SELECT COUNT(*) FROM applications WHERE student_id = $1 AND job_status = 'ongoing'),
		(SELECT COUNT(*) FROM applications WHERE student_id = $1 AND job_status = 'completed')`

	err = r.db.QueryRow(ctx, sql, studentID).Scan(&total, &active, &completed)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error computing application summary")
		return 0, 0, 0, fmt.Errorf("error computing application summary: %w", err)
	}
	return total, active, completed, nil
}

// ApplicationDetails lists a student's applications joined with the posting
func (r *InternshipRepository) ApplicationDetails(ctx context.Context, studentID int64) ([]*dto.ApplicationDetail, error) {
	sql, args, err := r.sb.Select(
		"a.id", "a.job_status", "i.id", "i.title", "e.company_name",
		"i.location", "i.work_mode", "i.stipend_amount", "i.duration").
		From("applications a").
		Join("internships i ON i.id = a.job_id").
		LeftJoin("employer e ON e.id = i.employer_id").
		Where(squirrel.Eq{"a.student_id": studentID}).
		OrderBy("a.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build application details query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error listing application details")
		return nil, fmt.Errorf("error listing application details: %w", err)
	}
	defer rows.Close()

	var details []*dto.ApplicationDetail
	for rows.Next() {
		d := &dto.ApplicationDetail{}
		err := rows.Scan(
			&d.ApplicationID, &d.JobStatus, &d.JobID, &d.Title, &d.CompanyName,
			&d.Location, &d.WorkMode, &d.Stipend, &d.Duration)
		if err != nil {
			return nil, fmt.Errorf("error scanning application row: %w", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating application rows: %w", err)
	}
	return details, nil
}
