package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kotoba-app/kotoba-api/internal/domain"
	"github.com/kotoba-app/kotoba-api/internal/platform/logger"
	"github.com/kotoba-app/kotoba-api/internal/store"
)

// UserService handles account registration and credential verification.
type UserService struct {
	users    store.UserStore
	hasher   PasswordHasher
	verifier PasswordVerifier
	jwt      JWTService
	logger   *slog.Logger
}

// NewUserService creates a new UserService.
// If logger is nil, a default logger will be used.
func NewUserService(
	users store.UserStore,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	jwt JWTService,
	logger *slog.Logger,
) *UserService {
	if users == nil {
		panic("user store cannot be nil")
	}
	if hasher == nil {
		panic("password hasher cannot be nil")
	}
	if verifier == nil {
		panic("password verifier cannot be nil")
	}
	if jwt == nil {
		panic("jwt service cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &UserService{
		users:    users,
		hasher:   hasher,
		verifier: verifier,
		jwt:      jwt,
		logger:   logger.With(slog.String("component", "user_service")),
	}
}

// Register creates a new account and returns the user with a fresh token.
// Returns store.ErrEmailExists when the email is already registered.
func (s *UserService) Register(
	ctx context.Context,
	email, password string,
) (*domain.User, string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := validatePassword(password); err != nil {
		return nil, "", err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := domain.NewUser(email, hash)
	if err != nil {
		return nil, "", err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Warn("registration attempted with existing email")
			return nil, "", store.ErrEmailExists
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()))
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.jwt.GenerateToken(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	return user, token, nil
}

// Login verifies the credentials and returns the user with a fresh token.
// Both an unknown email and a wrong password come back as
// ErrInvalidCredentials so the response does not leak which accounts exist.
func (s *UserService) Login(
	ctx context.Context,
	email, password string,
) (*domain.User, string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("login attempted with unknown email")
			return nil, "", ErrInvalidCredentials
		}
		log.Error("failed to look up user for login",
			slog.String("error", err.Error()))
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.verifier.Compare(user.PasswordHash, password); err != nil {
		log.Debug("login attempted with wrong password",
			slog.String("user_id", user.ID.String()))
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	log.Info("user logged in", slog.String("user_id", user.ID.String()))
	return user, token, nil
}
