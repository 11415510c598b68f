package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"casahub-backend/internal/domain"
	"casahub-backend/internal/logger"
	"casahub-backend/internal/repository"
)

// pipelineTransition describes one legal edge of the onboarding workflow.
type pipelineTransition struct {
	from           domain.PipelineStatus
	to             domain.PipelineStatus
	requiresReason bool
}

// pipelineTransitions is the authoritative transition table. Any action
// applied from a status other than its listed source fails with
// ErrInvalidTransition and leaves the candidate untouched.
var pipelineTransitions = map[domain.PipelineAction]pipelineTransition{
	domain.PipelineActionStartBackgroundCheck:   {from: domain.PipelineStatusApplied, to: domain.PipelineStatusBackgroundCheck},
	domain.PipelineActionRejectApplication:      {from: domain.PipelineStatusApplied, to: domain.PipelineStatusRejected, requiresReason: true},
	domain.PipelineActionApproveBackgroundCheck: {from: domain.PipelineStatusBackgroundCheck, to: domain.PipelineStatusTraining},
	domain.PipelineActionFailBackgroundCheck:    {from: domain.PipelineStatusBackgroundCheck, to: domain.PipelineStatusRejected, requiresReason: true},
	// complete_training stays in training; the candidate waits for final approval.
	domain.PipelineActionCompleteTraining: {from: domain.PipelineStatusTraining, to: domain.PipelineStatusTraining},
	domain.PipelineActionApproveVolunteer: {from: domain.PipelineStatusTraining, to: domain.PipelineStatusActive},
}

type pipelineService struct {
	volunteerRepo repository.VolunteerRepository
	orgRepo       repository.OrganizationRepository
	userRepo      repository.UserRepository
	noteRepo      repository.NotificationRepository
	emailSvc      EmailService
	recorder      AuditRecorder
}

func NewPipelineService(
	volunteerRepo repository.VolunteerRepository,
	orgRepo repository.OrganizationRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	recorder AuditRecorder,
) PipelineService {
	return &pipelineService{
		volunteerRepo: volunteerRepo,
		orgRepo:       orgRepo,
		userRepo:      userRepo,
		noteRepo:      noteRepo,
		emailSvc:      emailSvc,
		recorder:      recorder,
	}
}

func (s *pipelineService) SubmitApplication(ctx context.Context, cand *domain.VolunteerCandidate) error {
	cand.PipelineStatus = domain.PipelineStatusApplied
	cand.TrainingComplete = false
	cand.RejectionReason = ""
	if err := s.volunteerRepo.Create(ctx, cand); err != nil {
		return err
	}

	// Notify org admins about the new application
	admins, err := s.userRepo.ListAdminsByOrg(ctx, cand.OrgID)
	if err != nil {
		logger.Warn("Failed to list admins for application notification", "org_id", cand.OrgID, "error", err)
		return nil
	}
	for _, admin := range admins {
		notif := &domain.Notification{
			UserID:  admin.ID,
			OrgID:   cand.OrgID,
			Title:   "New Volunteer Application",
			Message: fmt.Sprintf("%s applied to become a volunteer", cand.Name),
			Attributes: map[string]string{
				"type":         "VOLUNTEER_APPLIED",
				"candidate_id": fmt.Sprintf("%d", cand.ID),
			},
		}
		_ = s.noteRepo.Create(ctx, notif)
	}
	return nil
}

func (s *pipelineService) ApplyAction(ctx context.Context, actor Actor, candidateID int32, action domain.PipelineAction, reason string) (*domain.PipelineActionResult, error) {
	cand, err := s.volunteerRepo.GetByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.authorize(actor, cand); err != nil {
		s.recordTransition(ctx, actor, cand, action, domain.AuditStatusDenied, domain.AuditSeverityWarning, nil, nil)
		return nil, err
	}

	tr, known := pipelineTransitions[action]
	if !known || cand.PipelineStatus != tr.from {
		s.recordTransition(ctx, actor, cand, action, domain.AuditStatusFailure, domain.AuditSeverityWarning, nil, nil)
		return nil, ErrInvalidTransition
	}

	reason = strings.TrimSpace(reason)
	if tr.requiresReason && reason == "" {
		return nil, ErrMissingReason
	}

	result := &domain.PipelineActionResult{Status: tr.to}

	switch action {
	case domain.PipelineActionCompleteTraining:
		if err := s.volunteerRepo.SetTrainingComplete(ctx, candidateID); err != nil {
			if errors.Is(err, repository.ErrStaleStatus) {
				return nil, ErrInvalidTransition
			}
			return nil, err
		}
		cand.TrainingComplete = true

	case domain.PipelineActionApproveVolunteer:
		if err := s.activate(ctx, cand, result); err != nil {
			return nil, err
		}

	default:
		// rejection_reason is populated only on rejecting transitions; a
		// reason supplied with any other action is discarded.
		storedReason := ""
		if tr.to == domain.PipelineStatusRejected {
			storedReason = reason
		}
		if err := s.volunteerRepo.UpdateStatus(ctx, candidateID, tr.from, tr.to, storedReason); err != nil {
			// A lost compare-and-swap means another transition won the race.
			if errors.Is(err, repository.ErrStaleStatus) {
				return nil, ErrInvalidTransition
			}
			return nil, err
		}
		if tr.to == domain.PipelineStatusRejected {
			s.notifyRejection(ctx, cand, reason)
		}
	}

	s.recordTransition(ctx, actor, cand, action, domain.AuditStatusSuccess, domain.AuditSeverityInfo,
		map[string]string{"pipeline_status": string(tr.from)},
		map[string]string{"pipeline_status": string(tr.to)})

	return result, nil
}

func (s *pipelineService) authorize(actor Actor, cand *domain.VolunteerCandidate) error {
	if actor.SuperAdmin {
		return nil
	}
	if cand.OrgID != actor.OrgID {
		return ErrForbidden
	}
	if !actor.Role.CanManagePipeline() {
		return ErrForbidden
	}
	return nil
}

// activate performs the approve_volunteer side effect: account creation with
// generated credentials, atomically with the status flip. The welcome email
// is best-effort and never fails the transition.
func (s *pipelineService) activate(ctx context.Context, cand *domain.VolunteerCandidate, result *domain.PipelineActionResult) error {
	tempPassword := generateTemporaryPassword()
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &domain.User{
		Email:         cand.Email,
		Username:      generateUsername(cand),
		PhoneNumber:   cand.PhoneNumber,
		PasswordHash:  string(hash),
		Name:          cand.Name,
		MustResetPass: true,
	}
	membership := &domain.Membership{
		OrgID:  cand.OrgID,
		Role:   domain.MembershipRoleVolunteer,
		Status: domain.MembershipStatusActive,
	}

	if err := s.volunteerRepo.Activate(ctx, cand, user, membership); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return ErrInvalidTransition
		}
		return err
	}

	result.UserCreated = true
	result.Username = user.Username
	result.TemporaryPassword = tempPassword

	org, err := s.orgRepo.GetByID(ctx, cand.OrgID)
	orgName := ""
	if err == nil {
		orgName = org.Name
	}
	if err := s.emailSvc.SendWelcomeEmail(ctx, cand.Email, cand.Name, orgName, user.Username, tempPassword); err != nil {
		logger.Warn("Welcome email delivery failed", "candidate_id", cand.ID, "error", err)
	} else {
		result.WelcomeEmailSent = true
	}
	return nil
}

func (s *pipelineService) notifyRejection(ctx context.Context, cand *domain.VolunteerCandidate, reason string) {
	org, err := s.orgRepo.GetByID(ctx, cand.OrgID)
	orgName := ""
	if err == nil {
		orgName = org.Name
	}
	if err := s.emailSvc.SendRejectionNotification(ctx, cand.Email, cand.Name, orgName, reason); err != nil {
		logger.Warn("Rejection email delivery failed", "candidate_id", cand.ID, "error", err)
	}
}

func (s *pipelineService) recordTransition(ctx context.Context, actor Actor, cand *domain.VolunteerCandidate, action domain.PipelineAction, status domain.AuditStatus, severity domain.AuditSeverity, oldValues, newValues map[string]string) {
	orgID := cand.OrgID
	s.recorder.Record(ctx, &domain.AuditLogEntry{
		OrgID:              &orgID,
		ActorEmail:         actor.Email,
		ActorRole:          string(actor.Role),
		Action:             string(action),
		ActionType:         ActionTypePipeline,
		ResourceType:       "volunteer_candidate",
		ResourceIdentifier: fmt.Sprintf("%d", cand.ID),
		Status:             status,
		Severity:           severity,
		IPAddress:          actor.IPAddress,
		UserAgent:          actor.UserAgent,
		RequestURI:         actor.RequestURI,
		OldValues:          oldValues,
		NewValues:          newValues,
	})
}

func (s *pipelineService) GetPipelineBoard(ctx context.Context, actor Actor) (*domain.PipelineBoard, error) {
	if !actor.SuperAdmin && !actor.Role.CanManagePipeline() {
		return nil, ErrForbidden
	}

	candidates, err := s.volunteerRepo.ListAllByOrg(ctx, actor.OrgID)
	if err != nil {
		return nil, err
	}

	board := &domain.PipelineBoard{}
	for _, c := range candidates {
		switch c.PipelineStatus {
		case domain.PipelineStatusApplied:
			board.Applied = append(board.Applied, c)
		case domain.PipelineStatusBackgroundCheck:
			board.BackgroundCheck = append(board.BackgroundCheck, c)
		case domain.PipelineStatusTraining:
			board.Training = append(board.Training, c)
		case domain.PipelineStatusActive:
			board.Active = append(board.Active, c)
		case domain.PipelineStatusRejected:
			board.Rejected = append(board.Rejected, c)
		}
	}
	return board, nil
}

func (s *pipelineService) ListCandidates(ctx context.Context, actor Actor, status domain.PipelineStatus, page, pageSize int32) ([]domain.VolunteerCandidate, int32, error) {
	if !actor.SuperAdmin && !actor.Role.CanManagePipeline() {
		return nil, 0, ErrForbidden
	}
	return s.volunteerRepo.ListByOrg(ctx, actor.OrgID, status, page, pageSize)
}

func (s *pipelineService) GetCandidate(ctx context.Context, actor Actor, candidateID int32) (*domain.VolunteerCandidate, error) {
	cand, err := s.volunteerRepo.GetByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.authorize(actor, cand); err != nil {
		return nil, err
	}
	return cand, nil
}

// generateUsername derives a login name from the candidate's email local
// part; the numeric suffix keeps it unique across candidates.
func generateUsername(cand *domain.VolunteerCandidate) string {
	local := cand.Email
	if at := strings.Index(local, "@"); at > 0 {
		local = local[:at]
	}
	local = strings.ToLower(strings.ReplaceAll(local, ".", "_"))
	return fmt.Sprintf("%s_%d", local, cand.ID)
}

func generateTemporaryPassword() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
}
