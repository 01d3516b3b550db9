package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"perfumery/internal/models"
	"perfumery/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// SignUpInput carries the fields of the sign-up form. Passwords are limited
// to the 72 bytes bcrypt accepts.
type SignUpInput struct {
	Username        string `json:"username" form:"username" validate:"required,max=100"`
	Password        string `json:"password" form:"password" validate:"required,maxbytes=72"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
}

// SignInInput carries the fields of the sign-in form.
type SignInInput struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// AuthService handles registration and credential verification.
type AuthService struct {
	userRepo repositories.UserRepository
	hashCost int
}

// NewAuthService creates a new AuthService hashing with bcrypt.DefaultCost.
func NewAuthService(userRepo repositories.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hashCost: bcrypt.DefaultCost,
	}
}

// WithHashCost returns a copy of the service that hashes with cost.
func (s *AuthService) WithHashCost(cost int) *AuthService {
	cp := *s
	cp.hashCost = cost
	return &cp
}

// SignUp registers a new user and returns the identity to store in the
// session. A taken username yields ErrDuplicateUsername and a differing
// confirmation yields ErrPasswordMismatch; neither creates a user.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (models.Identity, error) {
	in.Username = strings.TrimSpace(in.Username)
	if err := validateStruct(in); err != nil {
		return models.Identity{}, err
	}

	existing, err := s.userRepo.GetByUsername(ctx, in.Username)
	switch {
	case err == nil && existing != nil:
		return models.Identity{}, ErrDuplicateUsername
	case err != nil && !errors.Is(err, repositories.ErrNotFound):
		return models.Identity{}, fmt.Errorf("failed to look up username: %w", err)
	}

	if in.Password != in.ConfirmPassword {
		return models.Identity{}, ErrPasswordMismatch
	}

	hash, err := HashPassword(in.Password, s.hashCost)
	if err != nil {
		return models.Identity{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Username: in.Username, Password: hash}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent sign-up for the same name
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return models.Identity{}, ErrDuplicateUsername
		}
		return models.Identity{}, fmt.Errorf("failed to register user: %w", err)
	}
	return models.IdentityOf(user), nil
}

// SignIn verifies the credentials and returns the identity to store in the
// session. Unknown usernames and wrong passwords both yield
// ErrInvalidCredentials.
func (s *AuthService) SignIn(ctx context.Context, in SignInInput) (models.Identity, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.Identity{}, ErrInvalidCredentials
		}
		return models.Identity{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := ComparePassword(in.Password, user.Password); err != nil {
		return models.Identity{}, ErrInvalidCredentials
	}
	return models.IdentityOf(user), nil
}

// ResolveIdentity checks a session identity against the stored users and
// returns it with the current username. The boolean is false when the user
// no longer exists.
func (s *AuthService) ResolveIdentity(ctx context.Context, id models.Identity) (models.Identity, bool, error) {
	user, err := s.userRepo.GetByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.Identity{}, false, nil
		}
		return models.Identity{}, false, fmt.Errorf("failed to resolve session user: %w", err)
	}
	return models.IdentityOf(user), true, nil
}
