package repository

import (
	"context"

	"github.com/Suds666/IMG2TXT/internal/domain"
)

// UserRepository persists user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByUsernameAndPhone(ctx context.Context, username, phone string) (*domain.User, error)
	UpdateUserPassword(ctx context.Context, userID string, passwordHash []byte) error
}

// ImageRepository persists OCR extraction records.
type ImageRepository interface {
	CreateImage(ctx context.Context, image *domain.ExtractedImage) error
}
