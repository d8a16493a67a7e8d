package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"ecostore-api/internal/model"
	"ecostore-api/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserService interface {
	// ValidateSession reports whether token is userID's current session token.
	ValidateSession(ctx context.Context, userID uint, token string) bool
	CreateUser(ctx context.Context, email, name string) (*model.User, error)
	IssueSessionToken(ctx context.Context, userID uint) (string, error)
}

type userServiceImpl struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

func NewUserService(
	userRepo repository.UserRepository,
	logger *zap.Logger,
) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *userServiceImpl) ValidateSession(ctx context.Context, userID uint, token string) bool {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("look up session user", zap.Uint("user_id", userID), zap.Error(err))
		}
		return false
	}

	if user.SessionToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(user.SessionToken), []byte(token)) == 1
}

func (s *userServiceImpl) CreateUser(ctx context.Context, email, name string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}

	user := &model.User{
		Email:        email,
		Name:         name,
		SessionToken: newSessionToken(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("store user: %w", err)
	}

	s.logger.Info("user created", zap.Uint("user_id", user.ID))
	return user, nil
}

func (s *userServiceImpl) IssueSessionToken(ctx context.Context, userID uint) (string, error) {
	token := newSessionToken()
	if err := s.userRepo.UpdateSessionToken(ctx, userID, token); err != nil {
		return "", fmt.Errorf("update session token: %w", err)
	}

	s.logger.Info("session token issued", zap.Uint("user_id", userID))
	return token, nil
}

func newSessionToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
