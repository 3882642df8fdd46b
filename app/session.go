package app

import (
	"context"
	"time"
)

// Identity is what the client knows about the signed-in user.
type Identity struct {
	UserID    int
	Nickname  string
	ExpiresAt time.Time
}

// SignedIn reports whether the identity came from a usable token.
func (i Identity) SignedIn() bool { return i.UserID != 0 || i.Nickname != "" }

// Session exchanges credentials for an access token.
type Session interface {
	Login(ctx context.Context, email, password string) (string, error)
}
