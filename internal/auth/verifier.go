package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/pipespec/pipespec/internal/identity"
)

// Internal verification outcomes. Handlers must never echo these verbatim:
// ErrNoSuchUser and ErrBadCredentials render as one uniform message so the
// response cannot be used to enumerate accounts.
var (
	ErrNoSuchUser     = errors.New("no such user")
	ErrBadCredentials = errors.New("bad credentials")
	ErrLookupFailed   = errors.New("credential lookup failed")
)

// Verifier checks a plaintext password against the stored directory record.
type Verifier struct {
	repo identity.Repository
}

// NewVerifier builds a credential verifier over the user directory.
func NewVerifier(repo identity.Repository) *Verifier {
	return &Verifier{repo: repo}
}

// Verify looks up the non-deleted user for email and compares the password
// against the stored bcrypt hash. The directory is only read; a store failure
// is reported as ErrLookupFailed, distinct from an absent user.
func (v *Verifier) Verify(ctx context.Context, email, password string) (identity.User, error) {
	if email == "" || password == "" {
		return identity.User{}, ErrBadCredentials
	}

	user, err := v.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			return identity.User{}, ErrNoSuchUser
		}
		return identity.User{}, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return identity.User{}, ErrBadCredentials
	}

	return user, nil
}
