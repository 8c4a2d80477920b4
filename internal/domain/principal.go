package domain

import "time"

// Principal is an authentication identity issued by the identity provider.
// Credentials stay inside the provider; the rest of the system only sees the
// id and email.
type Principal struct {
	ID        string
	Email     string
	CreatedAt time.Time
}

// Session is an active signed-in session for a principal.
type Session struct {
	Token     string
	Principal Principal
	ExpiresAt time.Time
}
