package auth

import (
	"context"

	"firebase.google.com/go/v4/auth"
)

// TokenVerifier is the slice of the Firebase Auth client the middleware and
// session handlers need. *auth.Client satisfies it; tests substitute fakes.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// ProfileUpdater is the slice used by the profile endpoint. *auth.Client
// satisfies it.
type ProfileUpdater interface {
	UpdateUser(ctx context.Context, uid string, user *auth.UserToUpdate) (*auth.UserRecord, error)
}
