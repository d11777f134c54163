package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mkoren/drivetrack/internal/auth"
	"github.com/mkoren/drivetrack/internal/domain"
	"github.com/mkoren/drivetrack/internal/repo"
)

// tokenTTL is how long a login token stays valid.
const tokenTTL = time.Hour

// minPasswordLen is the shortest password Register accepts.
const minPasswordLen = 6

// UserService implements registration, login, and user listing.
type UserService struct {
	users  repo.UserRepo
	secret []byte
}

// NewUserService constructs a UserService backed by the provided repo.
// secret is the HS256 signing key for login tokens.
func NewUserService(users repo.UserRepo, secret []byte) *UserService {
	return &UserService{users: users, secret: secret}
}

// Register validates the input, hashes the password with bcrypt, and
// persists the new user. Returns domain.ErrValidation for bad input and
// domain.ErrConflict when the email is already taken.
func (s *UserService) Register(ctx context.Context, firstName, lastName, email, password string) (domain.User, error) {
	if err := validateRegistration(firstName, lastName, email, password); err != nil {
		return domain.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Register: %w", err)
	}

	user := domain.User{
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Register: %w", err)
	}
	return created, nil
}

// Login verifies the credentials and returns a signed bearer token.
// Unknown email and wrong password both return domain.ErrUnauthorized so the
// response does not reveal which accounts exist.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("service.UserService.Login: %w", domain.ErrUnauthorized)
		}
		return "", fmt.Errorf("service.UserService.Login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("service.UserService.Login: %w", domain.ErrUnauthorized)
	}

	token, err := auth.Sign(s.secret, user.ID, tokenTTL)
	if err != nil {
		return "", fmt.Errorf("service.UserService.Login: %w", err)
	}
	return token, nil
}

// List returns all users. Always returns a non-nil slice so callers can
// safely range over it.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.UserService.List: %w", err)
	}
	if users == nil {
		return []domain.User{}, nil
	}
	return users, nil
}

// validateRegistration enforces the registration business rules.
func validateRegistration(firstName, lastName, email, password string) error {
	if strings.TrimSpace(firstName) == "" {
		return fmt.Errorf("%w: first name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(lastName) == "" {
		return fmt.Errorf("%w: last name is required", domain.ErrValidation)
	}
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return fmt.Errorf("%w: invalid email", domain.ErrValidation)
	}
	if len(password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLen)
	}
	return nil
}
