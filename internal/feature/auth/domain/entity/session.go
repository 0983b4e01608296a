package entity

import "time"

// Session is one refresh-token grant for a user. The ID doubles as the
// refresh token value handed to the client.
type Session struct {
	ID        string
	UserID    uint
	UserAgent string
	IPAddress string
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// IsExpired reports whether the session has passed its expiration time.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsRevoked reports whether the session was explicitly revoked.
func (s *Session) IsRevoked() bool {
	return s.RevokedAt != nil
}

// IsValid reports whether the session can still be exchanged for a new
// token pair.
func (s *Session) IsValid() bool {
	return !s.IsExpired() && !s.IsRevoked()
}
