package postgres

import (
	"context"
	"database/sql"
	"time"

	"casahub-backend/internal/domain"
	"casahub-backend/internal/repository"
)

type documentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) repository.DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, d *domain.CandidateDocument) error {
	query := `INSERT INTO candidate_documents (candidate_id, org_id, uploaded_by, file_name, content_type, storage_key, file_size, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	return r.db.QueryRowContext(ctx, query, d.CandidateID, d.OrgID, d.UploadedBy, d.FileName, d.ContentType,
		d.StorageKey, d.FileSize, d.Status, time.Now()).Scan(&d.ID)
}

func (r *documentRepository) GetByID(ctx context.Context, id int32) (*domain.CandidateDocument, error) {
	d := &domain.CandidateDocument{}
	query := `SELECT id, candidate_id, org_id, uploaded_by, file_name, content_type, storage_key, file_size, status, created_on
	          FROM candidate_documents WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&d.ID, &d.CandidateID, &d.OrgID, &d.UploadedBy,
		&d.FileName, &d.ContentType, &d.StorageKey, &d.FileSize, &d.Status, &d.CreatedOn)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *documentRepository) Confirm(ctx context.Context, id int32, fileSize int64) error {
	query := `UPDATE candidate_documents SET status = $1, file_size = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, domain.DocumentStatusConfirmed, fileSize, id)
	return err
}

func (r *documentRepository) ListByCandidate(ctx context.Context, candidateID int32) ([]domain.CandidateDocument, error) {
	query := `SELECT id, candidate_id, org_id, uploaded_by, file_name, content_type, storage_key, file_size, status, created_on
	          FROM candidate_documents WHERE candidate_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []domain.CandidateDocument
	for rows.Next() {
		var d domain.CandidateDocument
		if err := rows.Scan(&d.ID, &d.CandidateID, &d.OrgID, &d.UploadedBy, &d.FileName, &d.ContentType,
			&d.StorageKey, &d.FileSize, &d.Status, &d.CreatedOn); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
