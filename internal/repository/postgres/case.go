package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"casahub-backend/internal/domain"
	"casahub-backend/internal/repository"
)

type caseRepository struct {
	db *sql.DB
}

func NewCaseRepository(db *sql.DB) repository.CaseRepository {
	return &caseRepository{db: db}
}

const caseColumns = `id, org_id, case_number, child_initials, court_docket, assigned_user_id, status, summary, opened_on, closed_on, created_on, updated_on`

func scanCase(row interface{ Scan(...interface{}) error }, c *domain.CasaCase) error {
	return row.Scan(&c.ID, &c.OrgID, &c.CaseNumber, &c.ChildInitials, &c.CourtDocket, &c.AssignedUserID,
		&c.Status, &c.Summary, &c.OpenedOn, &c.ClosedOn, &c.CreatedOn, &c.UpdatedOn)
}

func (r *caseRepository) Create(ctx context.Context, c *domain.CasaCase) error {
	query := `INSERT INTO cases (org_id, case_number, child_initials, court_docket, assigned_user_id, status, summary, opened_on, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, c.OrgID, c.CaseNumber, c.ChildInitials, c.CourtDocket,
		c.AssignedUserID, c.Status, c.Summary, c.OpenedOn, now, now).Scan(&c.ID)
}

func (r *caseRepository) GetByID(ctx context.Context, id int32) (*domain.CasaCase, error) {
	c := &domain.CasaCase{}
	query := `SELECT ` + caseColumns + ` FROM cases WHERE id = $1`
	if err := scanCase(r.db.QueryRowContext(ctx, query, id), c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *caseRepository) Update(ctx context.Context, c *domain.CasaCase) error {
	query := `UPDATE cases SET assigned_user_id=$1, status=$2, summary=$3, closed_on=$4, updated_on=$5 WHERE id=$6`
	_, err := r.db.ExecContext(ctx, query, c.AssignedUserID, c.Status, c.Summary, c.ClosedOn, time.Now(), c.ID)
	return err
}

func (r *caseRepository) ListByOrg(ctx context.Context, orgID int32, status domain.CaseStatus, page, pageSize int32) ([]domain.CasaCase, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + caseColumns + ` FROM cases WHERE org_id = $1`

	args := []interface{}{orgID}
	argIdx := 2
	if status != "" {
		query += " AND status = $2"
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY updated_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var cases []domain.CasaCase
	for rows.Next() {
		var c domain.CasaCase
		if err := scanCase(rows, &c); err != nil {
			return nil, 0, err
		}
		cases = append(cases, c)
	}
	return cases, count, rows.Err()
}

func (r *caseRepository) ListByAssignee(ctx context.Context, userID, orgID int32, page, pageSize int32) ([]domain.CasaCase, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	countQuery := `SELECT count(*) FROM cases WHERE assigned_user_id = $1 AND org_id = $2`
	if err := r.db.QueryRowContext(ctx, countQuery, userID, orgID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + caseColumns + ` FROM cases WHERE assigned_user_id = $1 AND org_id = $2 ORDER BY updated_on DESC LIMIT $3 OFFSET $4`
	rows, err := r.db.QueryContext(ctx, query, userID, orgID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var cases []domain.CasaCase
	for rows.Next() {
		var c domain.CasaCase
		if err := scanCase(rows, &c); err != nil {
			return nil, 0, err
		}
		cases = append(cases, c)
	}
	return cases, count, rows.Err()
}

func (r *caseRepository) CreateContactLog(ctx context.Context, l *domain.ContactLog) error {
	query := `INSERT INTO contact_logs (case_id, org_id, author_id, contact_type, contact_date, notes, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return r.db.QueryRowContext(ctx, query, l.CaseID, l.OrgID, l.AuthorID, l.ContactType, l.ContactDate,
		l.Notes, time.Now()).Scan(&l.ID)
}

func (r *caseRepository) ListContactLogs(ctx context.Context, caseID int32, page, pageSize int32) ([]domain.ContactLog, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	countQuery := `SELECT count(*) FROM contact_logs WHERE case_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, caseID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, case_id, org_id, author_id, contact_type, contact_date, notes, created_on
	          FROM contact_logs WHERE case_id = $1 ORDER BY contact_date DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, caseID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var logs []domain.ContactLog
	for rows.Next() {
		var l domain.ContactLog
		if err := rows.Scan(&l.ID, &l.CaseID, &l.OrgID, &l.AuthorID, &l.ContactType, &l.ContactDate, &l.Notes, &l.CreatedOn); err != nil {
			return nil, 0, err
		}
		logs = append(logs, l)
	}
	return logs, count, rows.Err()
}

func (r *caseRepository) CreateHearing(ctx context.Context, h *domain.Hearing) error {
	query := `INSERT INTO hearings (case_id, org_id, hearing_date, hearing_type, location, notes, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return r.db.QueryRowContext(ctx, query, h.CaseID, h.OrgID, h.HearingDate, h.HearingType, h.Location,
		h.Notes, time.Now()).Scan(&h.ID)
}

func (r *caseRepository) ListHearingsByCase(ctx context.Context, caseID int32) ([]domain.Hearing, error) {
	query := `SELECT id, case_id, org_id, hearing_date, hearing_type, location, notes, created_on
	          FROM hearings WHERE case_id = $1 ORDER BY hearing_date DESC`
	rows, err := r.db.QueryContext(ctx, query, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hearings []domain.Hearing
	for rows.Next() {
		var h domain.Hearing
		if err := rows.Scan(&h.ID, &h.CaseID, &h.OrgID, &h.HearingDate, &h.HearingType, &h.Location, &h.Notes, &h.CreatedOn); err != nil {
			return nil, err
		}
		hearings = append(hearings, h)
	}
	return hearings, rows.Err()
}

func (r *caseRepository) ListUpcomingHearings(ctx context.Context, withinDays int32) ([]domain.Hearing, error) {
	query := `SELECT id, case_id, org_id, hearing_date, hearing_type, location, notes, created_on
	          FROM hearings WHERE hearing_date >= $1 AND hearing_date <= $2 ORDER BY hearing_date ASC`
	now := time.Now()
	rows, err := r.db.QueryContext(ctx, query, now.Format("2006-01-02"), now.AddDate(0, 0, int(withinDays)).Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hearings []domain.Hearing
	for rows.Next() {
		var h domain.Hearing
		if err := rows.Scan(&h.ID, &h.CaseID, &h.OrgID, &h.HearingDate, &h.HearingType, &h.Location, &h.Notes, &h.CreatedOn); err != nil {
			return nil, err
		}
		hearings = append(hearings, h)
	}
	return hearings, rows.Err()
}
