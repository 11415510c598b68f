package postgres

import (
	"context"
	"database/sql"
	"time"

	"casahub-backend/internal/domain"
	"casahub-backend/internal/repository"
)

type organizationRepository struct {
	db *sql.DB
}

func NewOrganizationRepository(db *sql.DB) repository.OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	query := `INSERT INTO organizations (name, description, address, county, admin_phone_number, admin_email, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return r.db.QueryRowContext(ctx, query, org.Name, org.Description, org.Address, org.County,
		org.AdminPhoneNumber, org.AdminEmail, time.Now()).Scan(&org.ID)
}

func (r *organizationRepository) GetByID(ctx context.Context, id int32) (*domain.Organization, error) {
	org := &domain.Organization{}
	query := `SELECT o.id, o.name, o.description, o.address, o.county, o.admin_phone_number, o.admin_email, o.created_on,
	                 (SELECT count(*) FROM memberships m WHERE m.org_id = o.id AND m.status = 'ACTIVE') as member_count
	          FROM organizations o WHERE o.id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&org.ID, &org.Name, &org.Description, &org.Address,
		&org.County, &org.AdminPhoneNumber, &org.AdminEmail, &org.CreatedOn, &org.MemberCount)
	if err != nil {
		return nil, err
	}
	return org, nil
}

func (r *organizationRepository) List(ctx context.Context) ([]domain.Organization, error) {
	query := `SELECT id, name, description, address, county, admin_phone_number, admin_email, created_on FROM organizations ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []domain.Organization
	for rows.Next() {
		var org domain.Organization
		if err := rows.Scan(&org.ID, &org.Name, &org.Description, &org.Address, &org.County,
			&org.AdminPhoneNumber, &org.AdminEmail, &org.CreatedOn); err != nil {
			return nil, err
		}
		orgs = append(orgs, org)
	}
	return orgs, rows.Err()
}

func (r *organizationRepository) Update(ctx context.Context, org *domain.Organization) error {
	query := `UPDATE organizations SET name=$1, description=$2, address=$3, county=$4, admin_phone_number=$5, admin_email=$6 WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query, org.Name, org.Description, org.Address, org.County,
		org.AdminPhoneNumber, org.AdminEmail, org.ID)
	return err
}
