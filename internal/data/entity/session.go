package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is a bearer token issued at register or login.
type Session struct {
	ID        int64      `db:"id"`
	UserID    int64      `db:"user_id"`
	Token     uuid.UUID  `db:"token"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
	CreatedAt time.Time  `db:"created_at"`
}

// IsActive reports whether the session still authenticates at now.
func (s *Session) IsActive(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
