package postgres

import (
	"context"
	"database/sql"
	"time"

	"casahub-backend/internal/domain"
	"casahub-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, username, phone_number, password_hash, name, super_admin, must_reset_password, created_on, updated_on`

func scanUser(row interface{ Scan(...interface{}) error }, u *domain.User) error {
	return row.Scan(&u.ID, &u.Email, &u.Username, &u.PhoneNumber, &u.PasswordHash, &u.Name,
		&u.SuperAdmin, &u.MustResetPass, &u.CreatedOn, &u.UpdatedOn)
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (email, username, phone_number, password_hash, name, super_admin, must_reset_password, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, u.Email, u.Username, u.PhoneNumber, u.PasswordHash, u.Name,
		u.SuperAdmin, u.MustResetPass, now, now).Scan(&u.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if err := scanUser(r.db.QueryRowContext(ctx, query, id), u); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	if err := scanUser(r.db.QueryRowContext(ctx, query, email), u); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET email=$1, phone_number=$2, name=$3, updated_on=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, u.Email, u.PhoneNumber, u.Name, time.Now(), u.ID)
	return err
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID int32, passwordHash string, mustReset bool) error {
	query := `UPDATE users SET password_hash=$1, must_reset_password=$2, updated_on=$3 WHERE id=$4`
	_, err := r.db.ExecContext(ctx, query, passwordHash, mustReset, time.Now(), userID)
	return err
}

func (r *userRepository) AddMembership(ctx context.Context, m *domain.Membership) error {
	query := `INSERT INTO memberships (user_id, org_id, role, status, joined_on) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, m.UserID, m.OrgID, m.Role, m.Status, time.Now())
	return err
}

func (r *userRepository) GetMembership(ctx context.Context, userID, orgID int32) (*domain.Membership, error) {
	m := &domain.Membership{}
	query := `SELECT user_id, org_id, role, status, joined_on FROM memberships WHERE user_id = $1 AND org_id = $2`
	err := r.db.QueryRowContext(ctx, query, userID, orgID).Scan(&m.UserID, &m.OrgID, &m.Role, &m.Status, &m.JoinedOn)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *userRepository) ListMemberships(ctx context.Context, userID int32) ([]domain.Membership, error) {
	query := `SELECT user_id, org_id, role, status, joined_on FROM memberships WHERE user_id = $1 ORDER BY joined_on`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memberships []domain.Membership
	for rows.Next() {
		var m domain.Membership
		if err := rows.Scan(&m.UserID, &m.OrgID, &m.Role, &m.Status, &m.JoinedOn); err != nil {
			return nil, err
		}
		memberships = append(memberships, m)
	}
	return memberships, rows.Err()
}

func (r *userRepository) ListMembersByOrg(ctx context.Context, orgID int32) ([]domain.User, []domain.Membership, error) {
	query := `SELECT u.id, u.email, u.username, u.phone_number, u.password_hash, u.name, u.super_admin, u.must_reset_password, u.created_on, u.updated_on,
	                 m.user_id, m.org_id, m.role, m.status, m.joined_on
	          FROM users u JOIN memberships m ON m.user_id = u.id
	          WHERE m.org_id = $1 ORDER BY u.name`
	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var users []domain.User
	var memberships []domain.Membership
	for rows.Next() {
		var u domain.User
		var m domain.Membership
		if err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.PhoneNumber, &u.PasswordHash, &u.Name,
			&u.SuperAdmin, &u.MustResetPass, &u.CreatedOn, &u.UpdatedOn,
			&m.UserID, &m.OrgID, &m.Role, &m.Status, &m.JoinedOn); err != nil {
			return nil, nil, err
		}
		users = append(users, u)
		memberships = append(memberships, m)
	}
	return users, memberships, rows.Err()
}

func (r *userRepository) ListAdminsByOrg(ctx context.Context, orgID int32) ([]domain.User, error) {
	query := `SELECT u.id, u.email, u.username, u.phone_number, u.password_hash, u.name, u.super_admin, u.must_reset_password, u.created_on, u.updated_on
	          FROM users u JOIN memberships m ON m.user_id = u.id
	          WHERE m.org_id = $1 AND m.role IN ($2, $3) AND m.status = $4`
	rows, err := r.db.QueryContext(ctx, query, orgID, domain.MembershipRoleAdmin, domain.MembershipRoleSupervisor, domain.MembershipStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := scanUser(rows, &u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
