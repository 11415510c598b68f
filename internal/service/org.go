package service

import (
	"context"
	"database/sql"
	"errors"

	"casahub-backend/internal/domain"
	"casahub-backend/internal/repository"
)

type organizationService struct {
	orgRepo  repository.OrganizationRepository
	recorder AuditRecorder
}

func NewOrganizationService(orgRepo repository.OrganizationRepository, recorder AuditRecorder) OrganizationService {
	return &organizationService{orgRepo: orgRepo, recorder: recorder}
}

func (s *organizationService) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	return s.orgRepo.List(ctx)
}

func (s *organizationService) GetOrganization(ctx context.Context, id int32) (*domain.Organization, error) {
	org, err := s.orgRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return org, nil
}

// CreateOrganization is platform-level provisioning, super-admin only.
func (s *organizationService) CreateOrganization(ctx context.Context, actor Actor, org *domain.Organization) error {
	if !actor.SuperAdmin {
		return ErrForbidden
	}
	if err := s.orgRepo.Create(ctx, org); err != nil {
		return err
	}

	// Provisioning is a platform event, recorded without an org scope.
	s.recorder.Record(ctx, &domain.AuditLogEntry{
		ActorEmail:         actor.Email,
		Action:             ActionOrgCreated,
		ActionType:         ActionTypeAdministration,
		ResourceType:       "organization",
		ResourceIdentifier: org.Name,
		Status:             domain.AuditStatusSuccess,
		Severity:           domain.AuditSeverityInfo,
		IPAddress:          actor.IPAddress,
		UserAgent:          actor.UserAgent,
		RequestURI:         actor.RequestURI,
	})
	return nil
}
