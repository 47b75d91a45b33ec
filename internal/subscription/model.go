package subscription

import "time"

const (
	// StatusActive marks the subscription currently in force for a user.
	StatusActive = "active"
)

// Plan is a billable tier users subscribe to at registration.
type Plan struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
}

// Subscription ties a user to a plan.
type Subscription struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	PlanID    int       `json:"plan_id"`
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

// Info is the subscription+plan projection returned alongside a login.
type Info struct {
	Subscription Subscription `json:"subscription"`
	Plan         Plan         `json:"plan"`
}
