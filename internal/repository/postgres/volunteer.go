package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"casahub-backend/internal/domain"
	"casahub-backend/internal/repository"
)

type volunteerRepository struct {
	db *sql.DB
}

func NewVolunteerRepository(db *sql.DB) repository.VolunteerRepository {
	return &volunteerRepository{db: db}
}

const candidateColumns = `id, org_id, name, email, phone_number, address, references_note, pipeline_status, training_complete, rejection_reason, user_id, created_on, updated_on`

func scanCandidate(row interface{ Scan(...interface{}) error }, c *domain.VolunteerCandidate) error {
	return row.Scan(&c.ID, &c.OrgID, &c.Name, &c.Email, &c.PhoneNumber, &c.Address, &c.References,
		&c.PipelineStatus, &c.TrainingComplete, &c.RejectionReason, &c.UserID, &c.CreatedOn, &c.UpdatedOn)
}

func (r *volunteerRepository) Create(ctx context.Context, c *domain.VolunteerCandidate) error {
	query := `INSERT INTO volunteer_candidates (org_id, name, email, phone_number, address, references_note, pipeline_status, training_complete, rejection_reason, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, c.OrgID, c.Name, c.Email, c.PhoneNumber, c.Address, c.References,
		c.PipelineStatus, c.TrainingComplete, c.RejectionReason, now, now).Scan(&c.ID)
}

func (r *volunteerRepository) GetByID(ctx context.Context, id int32) (*domain.VolunteerCandidate, error) {
	c := &domain.VolunteerCandidate{}
	query := `SELECT ` + candidateColumns + ` FROM volunteer_candidates WHERE id = $1`
	if err := scanCandidate(r.db.QueryRowContext(ctx, query, id), c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *volunteerRepository) UpdateStatus(ctx context.Context, id int32, from, to domain.PipelineStatus, reason string) error {
	var res sql.Result
	var err error
	if reason != "" {
		query := `UPDATE volunteer_candidates SET pipeline_status=$1, rejection_reason=$2, updated_on=$3 WHERE id=$4 AND pipeline_status=$5`
		res, err = r.db.ExecContext(ctx, query, to, reason, time.Now(), id, from)
	} else {
		query := `UPDATE volunteer_candidates SET pipeline_status=$1, updated_on=$2 WHERE id=$3 AND pipeline_status=$4`
		res, err = r.db.ExecContext(ctx, query, to, time.Now(), id, from)
	}
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrStaleStatus
	}
	return nil
}

func (r *volunteerRepository) SetTrainingComplete(ctx context.Context, id int32) error {
	query := `UPDATE volunteer_candidates SET training_complete=TRUE, updated_on=$1 WHERE id=$2 AND pipeline_status=$3`
	res, err := r.db.ExecContext(ctx, query, time.Now(), id, domain.PipelineStatusTraining)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrStaleStatus
	}
	return nil
}

// Activate creates the volunteer's user account and membership and flips the
// candidate to active in one transaction. If the candidate's status moved
// away from training in the meantime, the whole transaction rolls back and
// no account is left behind.
func (r *volunteerRepository) Activate(ctx context.Context, cand *domain.VolunteerCandidate, user *domain.User, m *domain.Membership) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	userQuery := `INSERT INTO users (email, username, phone_number, password_hash, name, super_admin, must_reset_password, created_on, updated_on)
	              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	if err := tx.QueryRowContext(ctx, userQuery, user.Email, user.Username, user.PhoneNumber, user.PasswordHash,
		user.Name, user.SuperAdmin, user.MustResetPass, now, now).Scan(&user.ID); err != nil {
		return fmt.Errorf("failed to create user account: %w", err)
	}

	memberQuery := `INSERT INTO memberships (user_id, org_id, role, status, joined_on) VALUES ($1, $2, $3, $4, $5)`
	if _, err := tx.ExecContext(ctx, memberQuery, user.ID, m.OrgID, m.Role, m.Status, now); err != nil {
		return fmt.Errorf("failed to create membership: %w", err)
	}

	candQuery := `UPDATE volunteer_candidates SET pipeline_status=$1, user_id=$2, updated_on=$3 WHERE id=$4 AND pipeline_status=$5`
	res, err := tx.ExecContext(ctx, candQuery, domain.PipelineStatusActive, user.ID, now, cand.ID, domain.PipelineStatusTraining)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrStaleStatus
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	m.UserID = user.ID
	cand.PipelineStatus = domain.PipelineStatusActive
	cand.UserID = &user.ID
	return nil
}

func (r *volunteerRepository) ListByOrg(ctx context.Context, orgID int32, status domain.PipelineStatus, page, pageSize int32) ([]domain.VolunteerCandidate, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + candidateColumns + ` FROM volunteer_candidates WHERE org_id = $1`

	args := []interface{}{orgID}
	argIdx := 2
	if status != "" {
		query += " AND pipeline_status = $2"
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

	var candidates []domain.VolunteerCandidate
	for rows.Next() {
		var c domain.VolunteerCandidate
		if err := scanCandidate(rows, &c); err != nil {
			return nil, 0, err
		}
		candidates = append(candidates, c)
	}
	return candidates, count, rows.Err()
}

func (r *volunteerRepository) ListAllByOrg(ctx context.Context, orgID int32) ([]domain.VolunteerCandidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM volunteer_candidates WHERE org_id = $1 ORDER BY updated_on DESC`
	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []domain.VolunteerCandidate
	for rows.Next() {
		var c domain.VolunteerCandidate
		if err := scanCandidate(rows, &c); err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

func (r *volunteerRepository) ListStale(ctx context.Context, statuses []domain.PipelineStatus, olderThanDays int32) ([]domain.VolunteerCandidate, error) {
	if len(statuses) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(statuses))
	args := []interface{}{time.Now().AddDate(0, 0, -int(olderThanDays))}
	for i, s := range statuses {
		placeholders[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, s)
	}

	query := `SELECT ` + candidateColumns + ` FROM volunteer_candidates
	          WHERE updated_on < $1 AND pipeline_status IN (` + strings.Join(placeholders, ", ") + `) ORDER BY updated_on ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []domain.VolunteerCandidate
	for rows.Next() {
		var c domain.VolunteerCandidate
		if err := scanCandidate(rows, &c); err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}
