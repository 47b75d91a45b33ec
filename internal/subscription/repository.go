package subscription

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrPlanNotFound indicates the referenced plan does not exist.
	ErrPlanNotFound = errors.New("plan not found")
	// ErrNotFound indicates the user has no subscription.
	ErrNotFound = errors.New("subscription not found")
)

// Repository persists plans and subscriptions.
type Repository interface {
	FindPlan(ctx context.Context, id int) (Plan, error)
	ListPlans(ctx context.Context) ([]Plan, error)
	Create(ctx context.Context, sub Subscription) error
	FindByUserID(ctx context.Context, userID string) (Subscription, error)
}

// PostgresRepository stores subscriptions in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// FindPlan fetches a plan by identifier.
func (r *PostgresRepository) FindPlan(ctx context.Context, id int) (Plan, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, description, price_cents FROM plans WHERE id = $1`, id)
	var p Plan
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Plan{}, ErrPlanNotFound
		}
		return Plan{}, err
	}
	return p, nil
}

// ListPlans returns every available plan ordered by price.
func (r *PostgresRepository) ListPlans(ctx context.Context) ([]Plan, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, description, price_cents FROM plans ORDER BY price_cents`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		var p Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// Create inserts a subscription record.
func (r *PostgresRepository) Create(ctx context.Context, sub Subscription) error {
	subID, err := uuid.Parse(sub.ID)
	if err != nil {
		return err
	}
	userID, err := uuid.Parse(sub.UserID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO subscriptions (id, user_id, plan_id, status, started_at)
        VALUES ($1, $2, $3, $4, $5)`, subID, userID, sub.PlanID, sub.Status, sub.StartedAt.UTC())
	return err
}

// FindByUserID returns the most recent subscription for a user.
func (r *PostgresRepository) FindByUserID(ctx context.Context, userID string) (Subscription, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return Subscription{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, user_id, plan_id, status, started_at FROM subscriptions
        WHERE user_id = $1 ORDER BY started_at DESC LIMIT 1`, uid)
	var (
		sub       Subscription
		id        uuid.UUID
		owner     uuid.UUID
		startedAt time.Time
	)
	if err := row.Scan(&id, &owner, &sub.PlanID, &sub.Status, &startedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Subscription{}, ErrNotFound
		}
		return Subscription{}, err
	}
	sub.ID = id.String()
	sub.UserID = owner.String()
	sub.StartedAt = startedAt.UTC()
	return sub, nil
}
