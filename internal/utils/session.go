package utils

import (
	"time"

	"github.com/google/uuid"
)

// SessionData is the subset of a session row that middleware needs.
type SessionData struct {
	UserID    string
	ExpiresAt time.Time
}

func GenerateUUID() string {
	return uuid.NewString()
}
