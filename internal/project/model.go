package project

import "time"

// Project is an engineering project owned by a single user.
type Project struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	CompanyName string    `json:"company_name"`
	IsDeleted   bool      `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
