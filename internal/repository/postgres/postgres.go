package postgres

import (
	"database/sql"

	"casahub-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.OrganizationRepository
	repository.VolunteerRepository
	repository.AuditLogRepository
	repository.CaseRepository
	repository.NotificationRepository
	repository.DocumentRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		OrganizationRepository: NewOrganizationRepository(db),
		VolunteerRepository:    NewVolunteerRepository(db),
		AuditLogRepository:     NewAuditLogRepository(db),
		CaseRepository:         NewCaseRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		DocumentRepository:     NewDocumentRepository(db),
	}
}
