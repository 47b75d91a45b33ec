package project

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound indicates the project does not exist or is soft-deleted.
	ErrNotFound = errors.New("project not found")
	// ErrCodeTaken indicates the owner already has a project with the code.
	ErrCodeTaken = errors.New("project code already in use")
)

// Repository persists projects.
type Repository interface {
	Create(ctx context.Context, p Project) error
	Get(ctx context.Context, id string) (Project, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Project, error)
	Update(ctx context.Context, p Project) error
	SoftDelete(ctx context.Context, id string) error
}

// PostgresRepository stores projects in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const projectColumns = `id, owner_id, code, description, company_name, is_deleted, created_at, updated_at`

// Create inserts a project record.
func (r *PostgresRepository) Create(ctx context.Context, p Project) error {
	id, err := uuid.Parse(p.ID)
	if err != nil {
		return err
	}
	ownerID, err := uuid.Parse(p.OwnerID)
	if err != nil {
		return err
	}
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM projects
        WHERE owner_id = $1 AND code = $2 AND NOT is_deleted)`, ownerID, p.Code).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return ErrCodeTaken
	}
	_, err = r.db.Exec(ctx, `INSERT INTO projects (`+projectColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, ownerID, p.Code, p.Description, p.CompanyName, p.IsDeleted,
		p.CreatedAt.UTC(), p.UpdatedAt.UTC())
	return err
}

// Get fetches a non-deleted project by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Project, error) {
	projectID, err := uuid.Parse(id)
	if err != nil {
		return Project{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects
        WHERE id = $1 AND NOT is_deleted`, projectID)
	return scanProject(row)
}

// ListByOwner returns every non-deleted project owned by the user.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]Project, error) {
	uid, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, ErrNotFound
	}
	rows, err := r.db.Query(ctx, `SELECT `+projectColumns+` FROM projects
        WHERE owner_id = $1 AND NOT is_deleted ORDER BY created_at DESC`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// Update rewrites the mutable project fields.
func (r *PostgresRepository) Update(ctx context.Context, p Project) error {
	projectID, err := uuid.Parse(p.ID)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE projects
        SET code = $1, description = $2, company_name = $3, updated_at = $4
        WHERE id = $5 AND NOT is_deleted`,
		p.Code, p.Description, p.CompanyName, p.UpdatedAt.UTC(), projectID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDelete flags the project as deleted.
func (r *PostgresRepository) SoftDelete(ctx context.Context, id string) error {
	projectID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE projects SET is_deleted = TRUE, updated_at = now()
        WHERE id = $1 AND NOT is_deleted`, projectID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProject(row pgx.Row) (Project, error) {
	var (
		id        uuid.UUID
		ownerID   uuid.UUID
		createdAt time.Time
		updatedAt time.Time
		p         Project
	)
	if err := row.Scan(&id, &ownerID, &p.Code, &p.Description, &p.CompanyName,
		&p.IsDeleted, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Project{}, ErrNotFound
		}
		return Project{}, err
	}
	p.ID = id.String()
	p.OwnerID = ownerID.String()
	p.CreatedAt = createdAt.UTC()
	p.UpdatedAt = updatedAt.UTC()
	return p, nil
}
