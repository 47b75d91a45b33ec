package dimstd

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrComponentNotFound indicates the referenced component does not exist.
	ErrComponentNotFound = errors.New("component not found")
	// ErrStandardNotFound indicates the dimensional standard does not exist.
	ErrStandardNotFound = errors.New("dimensional standard not found")
)

// Repository persists dimensional standards, dim-std values and the schedule
// catalog.
type Repository interface {
	ComponentExists(ctx context.Context, id int) (bool, error)
	CreateStandard(ctx context.Context, std DimensionalStandard) error
	UpdateStandard(ctx context.Context, id, standard string) (DimensionalStandard, error)
	ListStandards(ctx context.Context) ([]DimensionalStandard, error)
	ListStandardsByComponent(ctx context.Context, componentID int) ([]DimensionalStandard, error)
	DeleteStandard(ctx context.Context, id string) error

	FindDimStds(ctx context.Context, gType, projectID string) ([]DimStd, error)
	UpsertDimStds(ctx context.Context, items []DimStd) error

	ListSchedules(ctx context.Context) ([]DefaultSchedule, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed dimstd repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ComponentExists reports whether the component id is known.
func (r *PostgresRepository) ComponentExists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM components WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

// CreateStandard inserts a dimensional standard record.
func (r *PostgresRepository) CreateStandard(ctx context.Context, std DimensionalStandard) error {
	id, err := uuid.Parse(std.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO dimensional_standards (id, component_id, standard, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)`, id, std.ComponentID, std.Standard, std.CreatedAt.UTC(), std.UpdatedAt.UTC())
	return err
}

// UpdateStandard rewrites the standard text and returns the updated row.
func (r *PostgresRepository) UpdateStandard(ctx context.Context, id, standard string) (DimensionalStandard, error) {
	stdID, err := uuid.Parse(id)
	if err != nil {
		return DimensionalStandard{}, ErrStandardNotFound
	}
	row := r.db.QueryRow(ctx, `UPDATE dimensional_standards
        SET standard = $1, updated_at = now()
        WHERE id = $2
        RETURNING id, component_id, standard, created_at, updated_at`, standard, stdID)
	std, err := scanStandard(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, ErrStandardNotFound) {
			return DimensionalStandard{}, ErrStandardNotFound
		}
		return DimensionalStandard{}, err
	}
	return std, nil
}

// ListStandards returns every dimensional standard.
func (r *PostgresRepository) ListStandards(ctx context.Context) ([]DimensionalStandard, error) {
	rows, err := r.db.Query(ctx, `SELECT id, component_id, standard, created_at, updated_at
        FROM dimensional_standards ORDER BY component_id, standard`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectStandards(rows)
}

// ListStandardsByComponent returns the standards for one component.
func (r *PostgresRepository) ListStandardsByComponent(ctx context.Context, componentID int) ([]DimensionalStandard, error) {
	rows, err := r.db.Query(ctx, `SELECT id, component_id, standard, created_at, updated_at
        FROM dimensional_standards WHERE component_id = $1 ORDER BY standard`, componentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectStandards(rows)
}

// DeleteStandard removes the dimensional standard.
func (r *PostgresRepository) DeleteStandard(ctx context.Context, id string) error {
	stdID, err := uuid.Parse(id)
	if err != nil {
		return ErrStandardNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM dimensional_standards WHERE id = $1`, stdID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrStandardNotFound
	}
	return nil
}

// FindDimStds returns dim-std rows for a g_type: the project's own rows plus
// the application defaults when a project id is given, defaults only
// otherwise.
func (r *PostgresRepository) FindDimStds(ctx context.Context, gType, projectID string) ([]DimStd, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if projectID == "" {
		rows, err = r.db.Query(ctx, `SELECT id, project_id, g_type, dim_std, created_at, updated_at
            FROM dim_stds WHERE g_type = $1 AND project_id IS NULL ORDER BY dim_std`, gType)
	} else {
		pid, perr := uuid.Parse(projectID)
		if perr != nil {
			return nil, perr
		}
		rows, err = r.db.Query(ctx, `SELECT id, project_id, g_type, dim_std, created_at, updated_at
            FROM dim_stds WHERE g_type = $1 AND (project_id = $2 OR project_id IS NULL)
            ORDER BY project_id NULLS LAST, dim_std`, gType, pid)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []DimStd
	for rows.Next() {
		d, err := scanDimStd(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

// UpsertDimStds inserts or refreshes the given rows inside one transaction.
func (r *PostgresRepository) UpsertDimStds(ctx context.Context, items []DimStd) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, item := range items {
		id, err := uuid.Parse(item.ID)
		if err != nil {
			return err
		}
		var pid any
		if item.ProjectID != "" {
			parsed, err := uuid.Parse(item.ProjectID)
			if err != nil {
				return err
			}
			pid = parsed
		}
		if _, err := tx.Exec(ctx, `INSERT INTO dim_stds (id, project_id, g_type, dim_std, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6)
            ON CONFLICT (coalesce(project_id, '00000000-0000-0000-0000-000000000000'::uuid), g_type, dim_std)
            DO UPDATE SET updated_at = EXCLUDED.updated_at`,
			id, pid, item.GType, item.DimStd, item.CreatedAt.UTC(), item.UpdatedAt.UTC()); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// ListSchedules returns the default schedule catalog.
func (r *PostgresRepository) ListSchedules(ctx context.Context) ([]DefaultSchedule, error) {
	rows, err := r.db.Query(ctx, `SELECT id, sch1_sch2, code, c_code, sch_desc, arrange_od
        FROM default_schedules ORDER BY arrange_od NULLS LAST`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []DefaultSchedule
	for rows.Next() {
		var (
			s  DefaultSchedule
			id uuid.UUID
		)
		if err := rows.Scan(&id, &s.Sch1Sch2, &s.Code, &s.CCode, &s.SchDesc, &s.ArrangeOD); err != nil {
			return nil, err
		}
		s.ID = id.String()
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

func collectStandards(rows pgx.Rows) ([]DimensionalStandard, error) {
	var standards []DimensionalStandard
	for rows.Next() {
		std, err := scanStandard(rows)
		if err != nil {
			return nil, err
		}
		standards = append(standards, std)
	}
	return standards, rows.Err()
}

func scanStandard(row pgx.Row) (DimensionalStandard, error) {
	var (
		std       DimensionalStandard
		id        uuid.UUID
		createdAt time.Time
		updatedAt time.Time
	)
	if err := row.Scan(&id, &std.ComponentID, &std.Standard, &createdAt, &updatedAt); err != nil {
		return DimensionalStandard{}, err
	}
	std.ID = id.String()
	std.CreatedAt = createdAt.UTC()
	std.UpdatedAt = updatedAt.UTC()
	return std, nil
}

func scanDimStd(row pgx.Row) (DimStd, error) {
	var (
		d         DimStd
		id        uuid.UUID
		pid       *uuid.UUID
		createdAt time.Time
		updatedAt time.Time
	)
	if err := row.Scan(&id, &pid, &d.GType, &d.DimStd, &createdAt, &updatedAt); err != nil {
		return DimStd{}, err
	}
	d.ID = id.String()
	if pid != nil {
		d.ProjectID = pid.String()
	}
	d.CreatedAt = createdAt.UTC()
	d.UpdatedAt = updatedAt.UTC()
	return d, nil
}
