package service

import (
	"context"
	"database/sql"
	"errors"

	"casahub-backend/internal/domain"
	"casahub-backend/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetUserProfile(ctx context.Context, userID int32) (*domain.User, []domain.Membership, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	memberships, err := s.userRepo.ListMemberships(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return user, memberships, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int32, name, email, phone string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if name != "" {
		user.Name = name
	}
	if email != "" {
		user.Email = email
	}
	if phone != "" {
		user.PhoneNumber = phone
	}
	return s.userRepo.Update(ctx, user)
}

func (s *userService) ListMembers(ctx context.Context, actor Actor) ([]domain.User, []domain.Membership, error) {
	if !actor.SuperAdmin && !actor.Role.CanManagePipeline() {
		return nil, nil, ErrForbidden
	}
	return s.userRepo.ListMembersByOrg(ctx, actor.OrgID)
}
