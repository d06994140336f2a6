package ports

import (
	"context"

	"github.com/shoply/catalog-system/internal/core/domain"
)

// AuthService issues and verifies bearer tokens and manages accounts.
type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (*domain.User, error)
	// Login authenticates by email and password and returns a signed token.
	// Unknown email and wrong password both surface as ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	IssueToken(userID string) (string, error)
	// VerifyToken checks signature and expiry and returns the bound user id.
	VerifyToken(token string) (string, error)
}
