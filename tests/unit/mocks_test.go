package unit

import (
	"context"

	"github.com/stretchr/testify/mock"

	"casahub-backend/internal/domain"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) UpdatePassword(ctx context.Context, userID int32, passwordHash string, mustReset bool) error {
	args := m.Called(ctx, userID, passwordHash, mustReset)
	return args.Error(0)
}
func (m *MockUserRepo) AddMembership(ctx context.Context, membership *domain.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}
func (m *MockUserRepo) GetMembership(ctx context.Context, userID, orgID int32) (*domain.Membership, error) {
	args := m.Called(ctx, userID, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}
func (m *MockUserRepo) ListMemberships(ctx context.Context, userID int32) ([]domain.Membership, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Membership), args.Error(1)
}
func (m *MockUserRepo) ListMembersByOrg(ctx context.Context, orgID int32) ([]domain.User, []domain.Membership, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.User), args.Get(1).([]domain.Membership), args.Error(2)
}
func (m *MockUserRepo) ListAdminsByOrg(ctx context.Context, orgID int32) ([]domain.User, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockOrganizationRepo
type MockOrganizationRepo struct {
	mock.Mock
}

func (m *MockOrganizationRepo) Create(ctx context.Context, org *domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}
func (m *MockOrganizationRepo) GetByID(ctx context.Context, id int32) (*domain.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}
func (m *MockOrganizationRepo) List(ctx context.Context) ([]domain.Organization, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Organization), args.Error(1)
}
func (m *MockOrganizationRepo) Update(ctx context.Context, org *domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

// MockVolunteerRepo
type MockVolunteerRepo struct {
	mock.Mock
}

func (m *MockVolunteerRepo) Create(ctx context.Context, cand *domain.VolunteerCandidate) error {
	args := m.Called(ctx, cand)
	return args.Error(0)
}
func (m *MockVolunteerRepo) GetByID(ctx context.Context, id int32) (*domain.VolunteerCandidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VolunteerCandidate), args.Error(1)
}
func (m *MockVolunteerRepo) UpdateStatus(ctx context.Context, id int32, from, to domain.PipelineStatus, reason string) error {
	args := m.Called(ctx, id, from, to, reason)
	return args.Error(0)
}
func (m *MockVolunteerRepo) SetTrainingComplete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockVolunteerRepo) Activate(ctx context.Context, cand *domain.VolunteerCandidate, user *domain.User, membership *domain.Membership) error {
	args := m.Called(ctx, cand, user, membership)
	return args.Error(0)
}
func (m *MockVolunteerRepo) ListByOrg(ctx context.Context, orgID int32, status domain.PipelineStatus, page, pageSize int32) ([]domain.VolunteerCandidate, int32, error) {
	args := m.Called(ctx, orgID, status, page, pageSize)
	return args.Get(0).([]domain.VolunteerCandidate), args.Get(1).(int32), args.Error(2)
}
func (m *MockVolunteerRepo) ListAllByOrg(ctx context.Context, orgID int32) ([]domain.VolunteerCandidate, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.VolunteerCandidate), args.Error(1)
}
func (m *MockVolunteerRepo) ListStale(ctx context.Context, statuses []domain.PipelineStatus, olderThanDays int32) ([]domain.VolunteerCandidate, error) {
	args := m.Called(ctx, statuses, olderThanDays)
	return args.Get(0).([]domain.VolunteerCandidate), args.Error(1)
}

// MockAuditLogRepo
type MockAuditLogRepo struct {
	mock.Mock
}

func (m *MockAuditLogRepo) Append(ctx context.Context, entry *domain.AuditLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockAuditLogRepo) List(ctx context.Context, filter domain.AuditLogFilter, page, pageSize int32) ([]domain.AuditLogEntry, int32, error) {
	args := m.Called(ctx, filter, page, pageSize)
	return args.Get(0).([]domain.AuditLogEntry), args.Get(1).(int32), args.Error(2)
}
func (m *MockAuditLogRepo) ForEach(ctx context.Context, filter domain.AuditLogFilter, fn func(*domain.AuditLogEntry) error) error {
	args := m.Called(ctx, filter, fn)
	return args.Error(0)
}

// MockCaseRepo
type MockCaseRepo struct {
	mock.Mock
}

func (m *MockCaseRepo) Create(ctx context.Context, c *domain.CasaCase) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCaseRepo) GetByID(ctx context.Context, id int32) (*domain.CasaCase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CasaCase), args.Error(1)
}
func (m *MockCaseRepo) Update(ctx context.Context, c *domain.CasaCase) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCaseRepo) ListByOrg(ctx context.Context, orgID int32, status domain.CaseStatus, page, pageSize int32) ([]domain.CasaCase, int32, error) {
	args := m.Called(ctx, orgID, status, page, pageSize)
	return args.Get(0).([]domain.CasaCase), args.Get(1).(int32), args.Error(2)
}
func (m *MockCaseRepo) ListByAssignee(ctx context.Context, userID, orgID int32, page, pageSize int32) ([]domain.CasaCase, int32, error) {
	args := m.Called(ctx, userID, orgID, page, pageSize)
	return args.Get(0).([]domain.CasaCase), args.Get(1).(int32), args.Error(2)
}
func (m *MockCaseRepo) CreateContactLog(ctx context.Context, log *domain.ContactLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}
func (m *MockCaseRepo) ListContactLogs(ctx context.Context, caseID int32, page, pageSize int32) ([]domain.ContactLog, int32, error) {
	args := m.Called(ctx, caseID, page, pageSize)
	return args.Get(0).([]domain.ContactLog), args.Get(1).(int32), args.Error(2)
}
func (m *MockCaseRepo) CreateHearing(ctx context.Context, h *domain.Hearing) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}
func (m *MockCaseRepo) ListHearingsByCase(ctx context.Context, caseID int32) ([]domain.Hearing, error) {
	args := m.Called(ctx, caseID)
	return args.Get(0).([]domain.Hearing), args.Error(1)
}
func (m *MockCaseRepo) ListUpcomingHearings(ctx context.Context, withinDays int32) ([]domain.Hearing, error) {
	args := m.Called(ctx, withinDays)
	return args.Get(0).([]domain.Hearing), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockDocumentRepo
type MockDocumentRepo struct {
	mock.Mock
}

func (m *MockDocumentRepo) Create(ctx context.Context, doc *domain.CandidateDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}
func (m *MockDocumentRepo) GetByID(ctx context.Context, id int32) (*domain.CandidateDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateDocument), args.Error(1)
}
func (m *MockDocumentRepo) Confirm(ctx context.Context, id int32, fileSize int64) error {
	args := m.Called(ctx, id, fileSize)
	return args.Error(0)
}
func (m *MockDocumentRepo) ListByCandidate(ctx context.Context, candidateID int32) ([]domain.CandidateDocument, error) {
	args := m.Called(ctx, candidateID)
	return args.Get(0).([]domain.CandidateDocument), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendWelcomeEmail(ctx context.Context, email, name, orgName, username, tempPassword string) error {
	args := m.Called(ctx, email, name, orgName, username, tempPassword)
	return args.Error(0)
}
func (m *MockEmailService) SendRejectionNotification(ctx context.Context, email, name, orgName, reason string) error {
	args := m.Called(ctx, email, name, orgName, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendStalePipelineReminder(ctx context.Context, adminEmail, orgName string, candidateNames []string) error {
	args := m.Called(ctx, adminEmail, orgName, candidateNames)
	return args.Error(0)
}
func (m *MockEmailService) SendHearingReminder(ctx context.Context, email, caseNumber, hearingDate, location string) error {
	args := m.Called(ctx, email, caseNumber, hearingDate, location)
	return args.Error(0)
}

// MockAuditRecorder
type MockAuditRecorder struct {
	mock.Mock
}

func (m *MockAuditRecorder) Record(ctx context.Context, entry *domain.AuditLogEntry) {
	m.Called(ctx, entry)
}
