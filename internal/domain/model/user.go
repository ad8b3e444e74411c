package model

import "time"

// User is an account keyed by its normalized username. Login auto-registers
// unknown usernames; there is no password in v1.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	RegisteredAt time.Time `json:"registered_at"`
	LastActiveAt time.Time `json:"last_active_at"`
}

func NewUser(id, username string) *User {
	now := time.Now()
	return &User{
		ID:           id,
		Username:     username,
		RegisteredAt: now,
		LastActiveAt: now,
	}
}
