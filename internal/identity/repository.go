package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the requested user does not exist or is soft-deleted.
var ErrNotFound = errors.New("user not found")

// ErrEmailTaken indicates a non-deleted user already holds the email.
var ErrEmailTaken = errors.New("email already registered")

// Repository persists users. Lookups never return soft-deleted records.
type Repository interface {
	Create(ctx context.Context, user User) error
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
	Update(ctx context.Context, user User) error
	SoftDelete(ctx context.Context, id string) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed identity repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, name, company_name, email, industry, country, phone_number, password_hash, is_deleted, created_at, updated_at`

// Create inserts a new user.
func (r *PostgresRepository) Create(ctx context.Context, user User) error {
	userID, err := uuid.Parse(user.ID)
	if err != nil {
		return err
	}
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = lower($1) AND NOT is_deleted)`, user.Email).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return ErrEmailTaken
	}
	_, err = r.db.Exec(ctx, `INSERT INTO users (`+userColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		userID, user.Name, user.CompanyName, strings.ToLower(user.Email), user.Industry,
		user.Country, user.PhoneNumber, user.PasswordHash, user.IsDeleted,
		user.CreatedAt.UTC(), user.UpdatedAt.UTC())
	return err
}

// FindByEmail fetches a non-deleted user by email, case-insensitively.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users
        WHERE lower(email) = lower($1) AND NOT is_deleted`, email)
	return scanUser(row)
}

// FindByID fetches a non-deleted user by identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return User{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users
        WHERE id = $1 AND NOT is_deleted`, userID)
	return scanUser(row)
}

// Update rewrites the mutable profile fields and the password hash.
func (r *PostgresRepository) Update(ctx context.Context, user User) error {
	userID, err := uuid.Parse(user.ID)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE users
        SET name = $1, company_name = $2, industry = $3, country = $4,
            phone_number = $5, password_hash = $6, updated_at = $7
        WHERE id = $8 AND NOT is_deleted`,
		user.Name, user.CompanyName, user.Industry, user.Country,
		user.PhoneNumber, user.PasswordHash, user.UpdatedAt.UTC(), userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDelete flags the user as deleted. The row remains for audit purposes.
func (r *PostgresRepository) SoftDelete(ctx context.Context, id string) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE users SET is_deleted = TRUE, updated_at = now()
        WHERE id = $1 AND NOT is_deleted`, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (User, error) {
	var (
		id        uuid.UUID
		createdAt time.Time
		updatedAt time.Time
		user      User
	)
	if err := row.Scan(&id, &user.Name, &user.CompanyName, &user.Email, &user.Industry,
		&user.Country, &user.PhoneNumber, &user.PasswordHash, &user.IsDeleted,
		&createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user.ID = id.String()
	user.CreatedAt = createdAt.UTC()
	user.UpdatedAt = updatedAt.UTC()
	return user, nil
}
