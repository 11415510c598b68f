package service

import (
	"context"
	"database/sql"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"casahub-backend/internal/domain"
	"casahub-backend/internal/repository"
	"casahub-backend/internal/security"
)

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
	recorder AuditRecorder
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager, recorder AuditRecorder) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		recorder: recorder,
	}
}

func (s *authService) Login(ctx context.Context, email, password string, meta RequestMeta) (*domain.User, *domain.Membership, string, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.recordLogin(ctx, email, meta, domain.AuditStatusFailure)
			return nil, nil, "", "", ErrInvalidCredentials
		}
		return nil, nil, "", "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.recordLogin(ctx, email, meta, domain.AuditStatusFailure)
		return nil, nil, "", "", ErrInvalidCredentials
	}

	// A user works in at most one organization; platform super-admins may
	// carry no membership at all.
	var membership *domain.Membership
	memberships, err := s.userRepo.ListMemberships(ctx, user.ID)
	if err != nil {
		return nil, nil, "", "", err
	}
	if len(memberships) > 0 {
		membership = &memberships[0]
	}
	if membership == nil && !user.SuperAdmin {
		s.recordLogin(ctx, email, meta, domain.AuditStatusDenied)
		return nil, nil, "", "", ErrForbidden
	}

	var orgID int32
	var role domain.MembershipRole
	if membership != nil {
		orgID = membership.OrgID
		role = membership.Role
	}

	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email, orgID, role, user.SuperAdmin)
	if err != nil {
		return nil, nil, "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, nil, "", "", err
	}

	s.recordLogin(ctx, email, meta, domain.AuditStatusSuccess)
	return user, membership, access, refresh, nil
}

func (s *authService) RefreshToken(ctx context.Context, refresh string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refresh)
	if err != nil {
		return "", "", ErrForbidden
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", ErrForbidden
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", ErrForbidden
		}
		return "", "", err
	}

	var orgID int32
	var role domain.MembershipRole
	memberships, err := s.userRepo.ListMemberships(ctx, user.ID)
	if err != nil {
		return "", "", err
	}
	if len(memberships) > 0 {
		orgID = memberships[0].OrgID
		role = memberships[0].Role
	}

	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email, orgID, role, user.SuperAdmin)
	if err != nil {
		return "", "", err
	}
	newRefresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	return access, newRefresh, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID int32, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, string(hash), false); err != nil {
		return err
	}

	s.recorder.Record(ctx, &domain.AuditLogEntry{
		ActorEmail:         user.Email,
		Action:             ActionPasswordChanged,
		ActionType:         ActionTypeAuthentication,
		ResourceType:       "user",
		ResourceIdentifier: user.Email,
		Status:             domain.AuditStatusSuccess,
		Severity:           domain.AuditSeverityInfo,
	})
	return nil
}

func (s *authService) recordLogin(ctx context.Context, email string, meta RequestMeta, status domain.AuditStatus) {
	action := ActionLoginSuccess
	severity := domain.AuditSeverityInfo
	if status != domain.AuditStatusSuccess {
		action = ActionLoginFailed
		severity = domain.AuditSeverityWarning
	}
	s.recorder.Record(ctx, &domain.AuditLogEntry{
		ActorEmail:         email,
		Action:             action,
		ActionType:         ActionTypeAuthentication,
		ResourceType:       "user",
		ResourceIdentifier: email,
		Status:             status,
		Severity:           severity,
		IPAddress:          meta.IPAddress,
		UserAgent:          meta.UserAgent,
		RequestURI:         meta.RequestURI,
	})
}
