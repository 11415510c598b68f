package repository

import (
	"context"
	"errors"

	"casahub-backend/internal/domain"
)

// ErrStaleStatus is returned by compare-and-swap status updates when the
// candidate's stored status no longer matches the expected source status.
var ErrStaleStatus = errors.New("candidate status changed since it was read")

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, userID int32, passwordHash string, mustReset bool) error

	AddMembership(ctx context.Context, m *domain.Membership) error
	GetMembership(ctx context.Context, userID, orgID int32) (*domain.Membership, error)
	ListMemberships(ctx context.Context, userID int32) ([]domain.Membership, error)
	ListMembersByOrg(ctx context.Context, orgID int32) ([]domain.User, []domain.Membership, error)
	ListAdminsByOrg(ctx context.Context, orgID int32) ([]domain.User, error)
}

type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) error
	GetByID(ctx context.Context, id int32) (*domain.Organization, error)
	List(ctx context.Context) ([]domain.Organization, error)
	Update(ctx context.Context, org *domain.Organization) error
}

type VolunteerRepository interface {
	Create(ctx context.Context, cand *domain.VolunteerCandidate) error
	GetByID(ctx context.Context, id int32) (*domain.VolunteerCandidate, error)

	// UpdateStatus performs a compare-and-swap update of pipeline_status.
	// It returns ErrStaleStatus when the stored status does not equal from.
	UpdateStatus(ctx context.Context, id int32, from, to domain.PipelineStatus, reason string) error

	// SetTrainingComplete flips the training flag while the candidate stays
	// in the training stage. CAS semantics as UpdateStatus.
	SetTrainingComplete(ctx context.Context, id int32) error

	// Activate creates the user account, its org membership and moves the
	// candidate from training to active in a single database transaction.
	Activate(ctx context.Context, cand *domain.VolunteerCandidate, user *domain.User, m *domain.Membership) error

	ListByOrg(ctx context.Context, orgID int32, status domain.PipelineStatus, page, pageSize int32) ([]domain.VolunteerCandidate, int32, error)
	ListAllByOrg(ctx context.Context, orgID int32) ([]domain.VolunteerCandidate, error)
	ListStale(ctx context.Context, statuses []domain.PipelineStatus, olderThanDays int32) ([]domain.VolunteerCandidate, error)
}

// AuditLogRepository is append-only by contract: entries are immutable and
// the interface deliberately exposes no update or delete.
type AuditLogRepository interface {
	Append(ctx context.Context, entry *domain.AuditLogEntry) error
	List(ctx context.Context, filter domain.AuditLogFilter, page, pageSize int32) ([]domain.AuditLogEntry, int32, error)

	// ForEach streams every entry matching the filter, newest first,
	// without materializing the full result set.
	ForEach(ctx context.Context, filter domain.AuditLogFilter, fn func(*domain.AuditLogEntry) error) error
}

type CaseRepository interface {
	Create(ctx context.Context, c *domain.CasaCase) error
	GetByID(ctx context.Context, id int32) (*domain.CasaCase, error)
	Update(ctx context.Context, c *domain.CasaCase) error
	ListByOrg(ctx context.Context, orgID int32, status domain.CaseStatus, page, pageSize int32) ([]domain.CasaCase, int32, error)
	ListByAssignee(ctx context.Context, userID, orgID int32, page, pageSize int32) ([]domain.CasaCase, int32, error)

	CreateContactLog(ctx context.Context, log *domain.ContactLog) error
	ListContactLogs(ctx context.Context, caseID int32, page, pageSize int32) ([]domain.ContactLog, int32, error)

	CreateHearing(ctx context.Context, h *domain.Hearing) error
	ListHearingsByCase(ctx context.Context, caseID int32) ([]domain.Hearing, error)
	ListUpcomingHearings(ctx context.Context, withinDays int32) ([]domain.Hearing, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}

type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.CandidateDocument) error
	GetByID(ctx context.Context, id int32) (*domain.CandidateDocument, error)
	Confirm(ctx context.Context, id int32, fileSize int64) error
	ListByCandidate(ctx context.Context, candidateID int32) ([]domain.CandidateDocument, error)
}
