package handlers

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"casahub-backend/internal/domain"
	"casahub-backend/internal/service"
)

// MockAuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string, meta service.RequestMeta) (*domain.User, *domain.Membership, string, string, error) {
	args := m.Called(ctx, email, password, meta)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	var membership *domain.Membership
	if args.Get(1) != nil {
		membership = args.Get(1).(*domain.Membership)
	}
	return user, membership, args.String(2), args.String(3), args.Error(4)
}
func (m *MockAuthService) RefreshToken(ctx context.Context, refresh string) (string, string, error) {
	args := m.Called(ctx, refresh)
	return args.String(0), args.String(1), args.Error(2)
}
func (m *MockAuthService) ChangePassword(ctx context.Context, userID int32, oldPassword, newPassword string) error {
	args := m.Called(ctx, userID, oldPassword, newPassword)
	return args.Error(0)
}

// MockPipelineService
type MockPipelineService struct {
	mock.Mock
}

func (m *MockPipelineService) SubmitApplication(ctx context.Context, cand *domain.VolunteerCandidate) error {
	args := m.Called(ctx, cand)
	return args.Error(0)
}
func (m *MockPipelineService) ApplyAction(ctx context.Context, actor service.Actor, candidateID int32, action domain.PipelineAction, reason string) (*domain.PipelineActionResult, error) {
	args := m.Called(ctx, actor, candidateID, action, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PipelineActionResult), args.Error(1)
}
func (m *MockPipelineService) GetPipelineBoard(ctx context.Context, actor service.Actor) (*domain.PipelineBoard, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PipelineBoard), args.Error(1)
}
func (m *MockPipelineService) ListCandidates(ctx context.Context, actor service.Actor, status domain.PipelineStatus, page, pageSize int32) ([]domain.VolunteerCandidate, int32, error) {
	args := m.Called(ctx, actor, status, page, pageSize)
	return args.Get(0).([]domain.VolunteerCandidate), args.Get(1).(int32), args.Error(2)
}
func (m *MockPipelineService) GetCandidate(ctx context.Context, actor service.Actor, candidateID int32) (*domain.VolunteerCandidate, error) {
	args := m.Called(ctx, actor, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VolunteerCandidate), args.Error(1)
}

// MockAuditService
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) GetTenantLogs(ctx context.Context, actor service.Actor, filter domain.AuditLogFilter, page, pageSize int32) (*domain.AuditLogPage, error) {
	args := m.Called(ctx, actor, filter, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditLogPage), args.Error(1)
}
func (m *MockAuditService) GetPlatformLogs(ctx context.Context, actor service.Actor, filter domain.AuditLogFilter, page, pageSize int32) (*domain.AuditLogPage, error) {
	args := m.Called(ctx, actor, filter, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditLogPage), args.Error(1)
}
func (m *MockAuditService) ExportTenantLogs(ctx context.Context, actor service.Actor, filter domain.AuditLogFilter, w io.Writer) error {
	args := m.Called(ctx, actor, filter, w)
	return args.Error(0)
}
func (m *MockAuditService) ExportPlatformLogs(ctx context.Context, actor service.Actor, filter domain.AuditLogFilter, w io.Writer) error {
	args := m.Called(ctx, actor, filter, w)
	return args.Error(0)
}

// MockCaseService
type MockCaseService struct {
	mock.Mock
}

func (m *MockCaseService) CreateCase(ctx context.Context, actor service.Actor, c *domain.CasaCase) error {
	args := m.Called(ctx, actor, c)
	return args.Error(0)
}
func (m *MockCaseService) GetCase(ctx context.Context, actor service.Actor, caseID int32) (*domain.CasaCase, error) {
	args := m.Called(ctx, actor, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CasaCase), args.Error(1)
}
func (m *MockCaseService) CloseCase(ctx context.Context, actor service.Actor, caseID int32, summary string) (*domain.CasaCase, error) {
	args := m.Called(ctx, actor, caseID, summary)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CasaCase), args.Error(1)
}
func (m *MockCaseService) AssignCase(ctx context.Context, actor service.Actor, caseID, volunteerUserID int32) (*domain.CasaCase, error) {
	args := m.Called(ctx, actor, caseID, volunteerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CasaCase), args.Error(1)
}
func (m *MockCaseService) ListCases(ctx context.Context, actor service.Actor, status domain.CaseStatus, page, pageSize int32) ([]domain.CasaCase, int32, error) {
	args := m.Called(ctx, actor, status, page, pageSize)
	return args.Get(0).([]domain.CasaCase), args.Get(1).(int32), args.Error(2)
}
func (m *MockCaseService) AddContactLog(ctx context.Context, actor service.Actor, log *domain.ContactLog) error {
	args := m.Called(ctx, actor, log)
	return args.Error(0)
}
func (m *MockCaseService) ListContactLogs(ctx context.Context, actor service.Actor, caseID int32, page, pageSize int32) ([]domain.ContactLog, int32, error) {
	args := m.Called(ctx, actor, caseID, page, pageSize)
	return args.Get(0).([]domain.ContactLog), args.Get(1).(int32), args.Error(2)
}
func (m *MockCaseService) ScheduleHearing(ctx context.Context, actor service.Actor, h *domain.Hearing) error {
	args := m.Called(ctx, actor, h)
	return args.Error(0)
}
func (m *MockCaseService) ListHearings(ctx context.Context, actor service.Actor, caseID int32) ([]domain.Hearing, error) {
	args := m.Called(ctx, actor, caseID)
	return args.Get(0).([]domain.Hearing), args.Error(1)
}

// MockOrganizationService
type MockOrganizationService struct {
	mock.Mock
}

func (m *MockOrganizationService) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Organization), args.Error(1)
}
func (m *MockOrganizationService) GetOrganization(ctx context.Context, id int32) (*domain.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}
func (m *MockOrganizationService) CreateOrganization(ctx context.Context, actor service.Actor, org *domain.Organization) error {
	args := m.Called(ctx, actor, org)
	return args.Error(0)
}

// MockUserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserProfile(ctx context.Context, userID int32) (*domain.User, []domain.Membership, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Get(1).([]domain.Membership), args.Error(2)
}
func (m *MockUserService) UpdateProfile(ctx context.Context, userID int32, name, email, phone string) error {
	args := m.Called(ctx, userID, name, email, phone)
	return args.Error(0)
}
func (m *MockUserService) ListMembers(ctx context.Context, actor service.Actor) ([]domain.User, []domain.Membership, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).([]domain.User), args.Get(1).([]domain.Membership), args.Error(2)
}

// MockNotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationService) MarkAsRead(ctx context.Context, userID, notificationID int32) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

// MockDocumentService
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) RequestUpload(ctx context.Context, actor service.Actor, candidateID int32, fileName, contentType string) (*domain.CandidateDocument, string, error) {
	args := m.Called(ctx, actor, candidateID, fileName, contentType)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*domain.CandidateDocument), args.String(1), args.Error(2)
}
func (m *MockDocumentService) ConfirmUpload(ctx context.Context, actor service.Actor, documentID int32, fileSize int64) (*domain.CandidateDocument, error) {
	args := m.Called(ctx, actor, documentID, fileSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateDocument), args.Error(1)
}
func (m *MockDocumentService) GetDownloadURL(ctx context.Context, actor service.Actor, documentID int32) (string, error) {
	args := m.Called(ctx, actor, documentID)
	return args.String(0), args.Error(1)
}
func (m *MockDocumentService) ListDocuments(ctx context.Context, actor service.Actor, candidateID int32) ([]domain.CandidateDocument, error) {
	args := m.Called(ctx, actor, candidateID)
	return args.Get(0).([]domain.CandidateDocument), args.Error(1)
}

// MockStorage
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) GenerateUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error) {
	args := m.Called(ctx, key, contentType, expiresIn)
	return args.String(0), args.Error(1)
}
func (m *MockStorage) GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	args := m.Called(ctx, key, expiresIn)
	return args.String(0), args.Error(1)
}
func (m *MockStorage) FileExists(ctx context.Context, key string) (bool, int64, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}
func (m *MockStorage) DeleteFile(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
func (m *MockStorage) RedeemUploadToken(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}
func (m *MockStorage) RedeemDownloadToken(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}
func (m *MockStorage) SaveFile(key string, reader io.Reader) error {
	args := m.Called(key, reader)
	return args.Error(0)
}
func (m *MockStorage) ReadFile(key string) (io.ReadCloser, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}
