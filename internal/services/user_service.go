package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"workboard/internal/models"
	"workboard/internal/repositories"
)

type UserService interface {
	Register(ctx context.Context, email, plainPassword string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateRefresh(ctx context.Context, id int64, token string, expiresAt time.Time) error
	GetUserByRefresh(ctx context.Context, token string) (*models.User, error)
}

type userService struct {
	repo        repositories.UserRepository
	authService *AuthService
}

func NewUserService(repo repositories.UserRepository, authService *AuthService) UserService {
	return &userService{repo: repo, authService: authService}
}

func (s *userService) Register(ctx context.Context, email, plainPassword string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if strings.TrimSpace(plainPassword) == "" {
		return nil, fmt.Errorf("password is required")
	}

	hashedPassword, err := s.authService.HashPassword(plainPassword)
	if err != nil {
		return nil, err
	}

	user := &models.User{Email: email, PasswordHash: hashedPassword}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *userService) UpdateRefresh(ctx context.Context, id int64, token string, expiresAt time.Time) error {
	return s.repo.UpdateRefresh(ctx, id, token, expiresAt)
}

func (s *userService) GetUserByRefresh(ctx context.Context, token string) (*models.User, error) {
	return s.repo.GetByRefresh(ctx, token)
}
