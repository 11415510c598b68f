package service

import (
	"context"
	"io"

	"casahub-backend/internal/domain"
)

// Actor identifies the authenticated caller of a service operation,
// together with the request attributes recorded in audit entries.
// Authorization happens here in the services, never in presentation code.
type Actor struct {
	UserID     int32
	Email      string
	OrgID      int32
	Role       domain.MembershipRole
	SuperAdmin bool
	IPAddress  string
	UserAgent  string
	RequestURI string
}

type AuthService interface {
	Login(ctx context.Context, email, password string, meta RequestMeta) (*domain.User, *domain.Membership, string, string, error) // user, membership, access, refresh
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
	ChangePassword(ctx context.Context, userID int32, oldPassword, newPassword string) error
}

// RequestMeta carries transport attributes of an unauthenticated request,
// used for audit recording before an Actor exists.
type RequestMeta struct {
	IPAddress  string
	UserAgent  string
	RequestURI string
}

type PipelineService interface {
	SubmitApplication(ctx context.Context, cand *domain.VolunteerCandidate) error
	ApplyAction(ctx context.Context, actor Actor, candidateID int32, action domain.PipelineAction, reason string) (*domain.PipelineActionResult, error)
	GetPipelineBoard(ctx context.Context, actor Actor) (*domain.PipelineBoard, error)
	ListCandidates(ctx context.Context, actor Actor, status domain.PipelineStatus, page, pageSize int32) ([]domain.VolunteerCandidate, int32, error)
	GetCandidate(ctx context.Context, actor Actor, candidateID int32) (*domain.VolunteerCandidate, error)
}

type AuditService interface {
	GetTenantLogs(ctx context.Context, actor Actor, filter domain.AuditLogFilter, page, pageSize int32) (*domain.AuditLogPage, error)
	GetPlatformLogs(ctx context.Context, actor Actor, filter domain.AuditLogFilter, page, pageSize int32) (*domain.AuditLogPage, error)
	ExportTenantLogs(ctx context.Context, actor Actor, filter domain.AuditLogFilter, w io.Writer) error
	ExportPlatformLogs(ctx context.Context, actor Actor, filter domain.AuditLogFilter, w io.Writer) error
}

// AuditRecorder is the append side of the audit log, used by the other
// services. Recording is best-effort: failures are logged, never returned.
type AuditRecorder interface {
	Record(ctx context.Context, entry *domain.AuditLogEntry)
}

type CaseService interface {
	CreateCase(ctx context.Context, actor Actor, c *domain.CasaCase) error
	GetCase(ctx context.Context, actor Actor, caseID int32) (*domain.CasaCase, error)
	CloseCase(ctx context.Context, actor Actor, caseID int32, summary string) (*domain.CasaCase, error)
	AssignCase(ctx context.Context, actor Actor, caseID, volunteerUserID int32) (*domain.CasaCase, error)
	ListCases(ctx context.Context, actor Actor, status domain.CaseStatus, page, pageSize int32) ([]domain.CasaCase, int32, error)

	AddContactLog(ctx context.Context, actor Actor, log *domain.ContactLog) error
	ListContactLogs(ctx context.Context, actor Actor, caseID int32, page, pageSize int32) ([]domain.ContactLog, int32, error)

	ScheduleHearing(ctx context.Context, actor Actor, h *domain.Hearing) error
	ListHearings(ctx context.Context, actor Actor, caseID int32) ([]domain.Hearing, error)
}

type OrganizationService interface {
	ListOrganizations(ctx context.Context) ([]domain.Organization, error)
	GetOrganization(ctx context.Context, id int32) (*domain.Organization, error)
	CreateOrganization(ctx context.Context, actor Actor, org *domain.Organization) error
}

type UserService interface {
	GetUserProfile(ctx context.Context, userID int32) (*domain.User, []domain.Membership, error)
	UpdateProfile(ctx context.Context, userID int32, name, email, phone string) error
	ListMembers(ctx context.Context, actor Actor) ([]domain.User, []domain.Membership, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type DocumentService interface {
	RequestUpload(ctx context.Context, actor Actor, candidateID int32, fileName, contentType string) (*domain.CandidateDocument, string, error) // doc, uploadURL
	ConfirmUpload(ctx context.Context, actor Actor, documentID int32, fileSize int64) (*domain.CandidateDocument, error)
	GetDownloadURL(ctx context.Context, actor Actor, documentID int32) (string, error)
	ListDocuments(ctx context.Context, actor Actor, candidateID int32) ([]domain.CandidateDocument, error)
}

type EmailService interface {
	SendWelcomeEmail(ctx context.Context, email, name, orgName, username, tempPassword string) error
	SendRejectionNotification(ctx context.Context, email, name, orgName, reason string) error
	SendStalePipelineReminder(ctx context.Context, adminEmail, orgName string, candidateNames []string) error
	SendHearingReminder(ctx context.Context, email, caseNumber, hearingDate, location string) error
}
