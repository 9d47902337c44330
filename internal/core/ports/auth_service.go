package ports

import "context"

// Session describes an authenticated actor.
type Session struct {
	Token    string
	Role     string
	ClientID string // empty for admin
	Name     string
}

// AuthService validates login attempts and establishes a session.
type AuthService interface {
	// Login checks identifier/password against the admin credential first,
	// then against client records. On a client login the last-login
	// timestamp is stamped as a side effect. Failures return
	// domain.ErrInvalidCredentials with no state change.
	Login(ctx context.Context, identifier, password string) (*Session, error)
}
