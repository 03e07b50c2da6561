package service

import (
	"context"

	"codemmunity/internal/models"
	"codemmunity/internal/repository"
)

const maxUserNameLen = 100

type UserService struct {
	userRepo repository.UserRepository
}

type UpsertUserInput struct {
	ID   string
	Name string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UpsertUser registers the member or renames an already registered one.
// The identifier comes from the external identity provider and is never
// generated here.
func (s *UserService) UpsertUser(ctx context.Context, in UpsertUserInput) (*models.User, error) {
	if in.ID == "" {
		return nil, models.NewValidationError("user_id is required")
	}
	if in.Name == "" {
		return nil, models.NewValidationError("user_name is required")
	}
	if len(in.Name) > maxUserNameLen {
		return nil, models.NewValidationError("user_name too long (max 100 characters)")
	}

	user := &models.User{ID: in.ID, Name: in.Name}
	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, err
	}

	return s.userRepo.GetByID(ctx, in.ID)
}

func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, models.WrapRecordNotFound(err, "User", id)
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return models.WrapRecordNotFound(err, "User", id)
	}
	return nil
}
