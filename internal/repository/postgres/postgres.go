package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Suds666/IMG2TXT/internal/domain"
	"github.com/Suds666/IMG2TXT/internal/repository"
)

// Repository implements persistence interfaces on PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// New constructs a Repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ensure Repository satisfies interfaces.
var (
	_ repository.UserRepository  = (*Repository)(nil)
	_ repository.ImageRepository = (*Repository)(nil)
)

// CreateUser inserts a user. A username collision surfaces as ErrDuplicate.
func (r *Repository) CreateUser(ctx context.Context, user *domain.User) error {
	const query = `INSERT INTO users (id, username, password_hash, phone_number, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, query, user.ID, user.Username, user.PasswordHash, user.PhoneNumber, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

// GetUserByUsername fetches a user by username.
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `SELECT id, username, password_hash, phone_number, created_at
		FROM users WHERE username = $1`
	row := r.pool.QueryRow(ctx, query, username)
	return scanUser(row)
}

// GetUserByUsernameAndPhone fetches a user matching both username and phone number.
func (r *Repository) GetUserByUsernameAndPhone(ctx context.Context, username, phone string) (*domain.User, error) {
	const query = `SELECT id, username, password_hash, phone_number, created_at
		FROM users WHERE username = $1 AND phone_number = $2`
	row := r.pool.QueryRow(ctx, query, username, phone)
	return scanUser(row)
}

// UpdateUserPassword overwrites the stored password hash.
func (r *Repository) UpdateUserPassword(ctx context.Context, userID string, passwordHash []byte) error {
	const query = `UPDATE users SET password_hash = $2 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, userID, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// CreateImage inserts an extraction record.
func (r *Repository) CreateImage(ctx context.Context, image *domain.ExtractedImage) error {
	const query = `INSERT INTO extracted_images (id, filename, extracted_text, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.pool.Exec(ctx, query, image.ID, image.Filename, image.ExtractedText, image.CreatedAt)
	return err
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.PhoneNumber, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
