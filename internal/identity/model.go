package identity

import "time"

// User represents a registered account. PasswordHash never leaves the
// identity and auth packages; handlers render users through Redacted.
type User struct {
	ID           string
	Name         string
	CompanyName  string
	Email        string
	Industry     string
	Country      string
	PhoneNumber  string
	PasswordHash []byte
	IsDeleted    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RedactedUser is the externally visible projection of a User.
type RedactedUser struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CompanyName string    `json:"company_name"`
	Email       string    `json:"email"`
	Industry    string    `json:"industry"`
	Country     string    `json:"country"`
	PhoneNumber string    `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
}

// Redacted strips credential material from a user record.
func (u User) Redacted() RedactedUser {
	return RedactedUser{
		ID:          u.ID,
		Name:        u.Name,
		CompanyName: u.CompanyName,
		Email:       u.Email,
		Industry:    u.Industry,
		Country:     u.Country,
		PhoneNumber: u.PhoneNumber,
		CreatedAt:   u.CreatedAt,
	}
}
