package auth

import (
	"context"

	"github.com/mmynk/societyledger/internal/models"
)

// Authenticator verifies administrator credentials. The store holds a
// single role; any account that authenticates may manage the ledger.
type Authenticator interface {
	// Register creates an account with the given email and credential.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the credentials and returns the user.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks that a credential is acceptable before it is stored.
	ValidateCredential(credential string) error
}
