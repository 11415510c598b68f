package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"casahub-backend/internal/domain"
	"casahub-backend/internal/repository"
)

type caseService struct {
	caseRepo repository.CaseRepository
	userRepo repository.UserRepository
	noteRepo repository.NotificationRepository
	recorder AuditRecorder
}

func NewCaseService(caseRepo repository.CaseRepository, userRepo repository.UserRepository, noteRepo repository.NotificationRepository, recorder AuditRecorder) CaseService {
	return &caseService{
		caseRepo: caseRepo,
		userRepo: userRepo,
		noteRepo: noteRepo,
		recorder: recorder,
	}
}

func (s *caseService) CreateCase(ctx context.Context, actor Actor, c *domain.CasaCase) error {
	if !actor.SuperAdmin && !actor.Role.CanManagePipeline() {
		return ErrForbidden
	}
	c.OrgID = actor.OrgID
	c.Status = domain.CaseStatusOpen
	if c.OpenedOn == "" {
		c.OpenedOn = time.Now().UTC().Format("2006-01-02")
	}
	if err := s.caseRepo.Create(ctx, c); err != nil {
		return err
	}

	s.recordCase(ctx, actor, c, ActionCaseCreated, nil)
	return nil
}

func (s *caseService) GetCase(ctx context.Context, actor Actor, caseID int32) (*domain.CasaCase, error) {
	c, err := s.getAuthorized(ctx, actor, caseID)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *caseService) CloseCase(ctx context.Context, actor Actor, caseID int32, summary string) (*domain.CasaCase, error) {
	if !actor.SuperAdmin && !actor.Role.CanManagePipeline() {
		return nil, ErrForbidden
	}
	c, err := s.getAuthorized(ctx, actor, caseID)
	if err != nil {
		return nil, err
	}
	if c.Status == domain.CaseStatusClosed {
		return c, nil
	}

	closedOn := time.Now().UTC().Format("2006-01-02")
	c.Status = domain.CaseStatusClosed
	c.ClosedOn = &closedOn
	if summary != "" {
		c.Summary = summary
	}
	if err := s.caseRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	s.recordCase(ctx, actor, c, ActionCaseClosed, map[string]string{"status": string(domain.CaseStatusOpen)})
	return c, nil
}

func (s *caseService) AssignCase(ctx context.Context, actor Actor, caseID, volunteerUserID int32) (*domain.CasaCase, error) {
	if !actor.SuperAdmin && !actor.Role.CanManagePipeline() {
		return nil, ErrForbidden
	}
	c, err := s.getAuthorized(ctx, actor, caseID)
	if err != nil {
		return nil, err
	}

	// The assignee must be an active member of the case's organization.
	m, err := s.userRepo.GetMembership(ctx, volunteerUserID, c.OrgID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if m.Status != domain.MembershipStatusActive {
		return nil, ErrForbidden
	}

	var old map[string]string
	if c.AssignedUserID != nil {
		old = map[string]string{"assigned_user_id": fmt.Sprintf("%d", *c.AssignedUserID)}
	}
	c.AssignedUserID = &volunteerUserID
	if err := s.caseRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	_ = s.noteRepo.Create(ctx, &domain.Notification{
		UserID:  volunteerUserID,
		OrgID:   c.OrgID,
		Title:   "Case assigned",
		Message: fmt.Sprintf("You have been assigned to case %s.", c.CaseNumber),
		Attributes: map[string]string{
			"case_id": fmt.Sprintf("%d", c.ID),
		},
	})

	s.recordCase(ctx, actor, c, ActionCaseAssigned, old)
	return c, nil
}

func (s *caseService) ListCases(ctx context.Context, actor Actor, status domain.CaseStatus, page, pageSize int32) ([]domain.CasaCase, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 25
	}
	// Volunteers only see their own caseload.
	if !actor.SuperAdmin && actor.Role == domain.MembershipRoleVolunteer {
		return s.caseRepo.ListByAssignee(ctx, actor.UserID, actor.OrgID, page, pageSize)
	}
	return s.caseRepo.ListByOrg(ctx, actor.OrgID, status, page, pageSize)
}

func (s *caseService) AddContactLog(ctx context.Context, actor Actor, log *domain.ContactLog) error {
	c, err := s.getAuthorized(ctx, actor, log.CaseID)
	if err != nil {
		return err
	}
	log.OrgID = c.OrgID
	log.AuthorID = actor.UserID
	if log.ContactDate == "" {
		log.ContactDate = time.Now().UTC().Format("2006-01-02")
	}
	return s.caseRepo.CreateContactLog(ctx, log)
}

func (s *caseService) ListContactLogs(ctx context.Context, actor Actor, caseID int32, page, pageSize int32) ([]domain.ContactLog, int32, error) {
	if _, err := s.getAuthorized(ctx, actor, caseID); err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 25
	}
	return s.caseRepo.ListContactLogs(ctx, caseID, page, pageSize)
}

func (s *caseService) ScheduleHearing(ctx context.Context, actor Actor, h *domain.Hearing) error {
	if !actor.SuperAdmin && !actor.Role.CanManagePipeline() {
		return ErrForbidden
	}
	c, err := s.getAuthorized(ctx, actor, h.CaseID)
	if err != nil {
		return err
	}
	h.OrgID = c.OrgID
	return s.caseRepo.CreateHearing(ctx, h)
}

func (s *caseService) ListHearings(ctx context.Context, actor Actor, caseID int32) ([]domain.Hearing, error) {
	if _, err := s.getAuthorized(ctx, actor, caseID); err != nil {
		return nil, err
	}
	return s.caseRepo.ListHearingsByCase(ctx, caseID)
}

// getAuthorized loads a case and checks the actor may see it. Volunteers
// are limited to cases assigned to them.
func (s *caseService) getAuthorized(ctx context.Context, actor Actor, caseID int32) (*domain.CasaCase, error) {
	c, err := s.caseRepo.GetByID(ctx, caseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if actor.SuperAdmin {
		return c, nil
	}
	if c.OrgID != actor.OrgID {
		return nil, ErrForbidden
	}
	if actor.Role == domain.MembershipRoleVolunteer {
		if c.AssignedUserID == nil || *c.AssignedUserID != actor.UserID {
			return nil, ErrForbidden
		}
	}
	return c, nil
}

func (s *caseService) recordCase(ctx context.Context, actor Actor, c *domain.CasaCase, action string, oldValues map[string]string) {
	orgID := c.OrgID
	entry := &domain.AuditLogEntry{
		OrgID:              &orgID,
		ActorEmail:         actor.Email,
		ActorRole:          string(actor.Role),
		Action:             action,
		ActionType:         ActionTypeCaseManagement,
		ResourceType:       "case",
		ResourceIdentifier: c.CaseNumber,
		Status:             domain.AuditStatusSuccess,
		Severity:           domain.AuditSeverityInfo,
		OldValues:          oldValues,
		IPAddress:          actor.IPAddress,
		UserAgent:          actor.UserAgent,
		RequestURI:         actor.RequestURI,
	}
	switch action {
	case ActionCaseClosed:
		entry.NewValues = map[string]string{"status": string(domain.CaseStatusClosed)}
	case ActionCaseAssigned:
		if c.AssignedUserID != nil {
			entry.NewValues = map[string]string{"assigned_user_id": fmt.Sprintf("%d", *c.AssignedUserID)}
		}
	}
	s.recorder.Record(ctx, entry)
}
