package account

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Suds666/IMG2TXT/internal/domain"
	"github.com/Suds666/IMG2TXT/internal/repository"
	"github.com/Suds666/IMG2TXT/pkg/crypto"
)

// Service errors surfaced to the HTTP layer.
var (
	ErrMissingFields      = errors.New("required fields missing")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// Service handles account workflows. Passwords are bcrypt-hashed on
// every write path and compared via bcrypt on login; raw password
// material never reaches the store.
type Service struct {
	users  repository.UserRepository
	logger *slog.Logger
}

// New constructs a Service.
func New(users repository.UserRepository, logger *slog.Logger) Service {
	return Service{users: users, logger: logger}
}

// Signup registers a new user. Duplicate usernames are rejected.
func (s Service) Signup(ctx context.Context, username, password, phone string) error {
	username = strings.TrimSpace(username)
	phone = strings.TrimSpace(phone)
	if username == "" || password == "" || phone == "" {
		return ErrMissingFields
	}

	if _, err := s.users.GetUserByUsername(ctx, username); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return err
	}
	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		PhoneNumber:  phone,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		// The pre-check races with concurrent signups; the unique
		// constraint is the authority.
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrUsernameTaken
		}
		return err
	}
	s.logger.Info("user registered", "user_id", user.ID)
	return nil
}

// Login authenticates a username/password pair.
func (s Service) Login(ctx context.Context, username, password string) error {
	user, err := s.users.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}
	if err := crypto.ComparePassword(user.PasswordHash, password); err != nil {
		return ErrInvalidCredentials
	}
	s.logger.Info("user logged in", "user_id", user.ID)
	return nil
}

// ResetPassword overwrites the password of the user matching both
// username and phone number.
func (s Service) ResetPassword(ctx context.Context, username, phone, newPassword string) error {
	username = strings.TrimSpace(username)
	phone = strings.TrimSpace(phone)
	if username == "" || phone == "" || newPassword == "" {
		return ErrMissingFields
	}

	user, err := s.users.GetUserByUsernameAndPhone(ctx, username, phone)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	hash, err := crypto.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdateUserPassword(ctx, user.ID, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	s.logger.Info("password reset", "user_id", user.ID)
	return nil
}
