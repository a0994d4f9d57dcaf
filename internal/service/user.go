package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"go.uber.org/zap"

	"project-store/internal/auth"
	"project-store/internal/config"
	"project-store/internal/domain"
	"project-store/internal/models"
	"project-store/internal/repository"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserService struct {
	users  repository.UserRepository
	tokens *auth.Tokens
	logger *zap.Logger
}

func NewUserService(users repository.UserRepository, tokens *auth.Tokens, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{users: users, tokens: tokens, logger: logger.Named("users")}
}

func (s *UserService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	err := validation.ValidateStruct(req,
		validation.Field(&req.Username, validation.Required, validation.Length(1, config.MaxUsernameLength)),
		validation.Field(&req.Email, validation.Required, is.EmailFormat),
		validation.Field(&req.Password, validation.Required, validation.Length(8, 72)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{Username: req.Username, Email: req.Email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Login checks credentials and issues a session token. Unknown emails and
// wrong passwords produce the same error.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	invalid := &domain.UnauthorizedError{Message: "invalid email or password"}

	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, invalid
		}
		return "", nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", nil, invalid
	}

	token, err := s.tokens.Create(user.ID, user.Username)
	if err != nil {
		return "", nil, fmt.Errorf("create token: %w", err)
	}
	return token, user, nil
}
