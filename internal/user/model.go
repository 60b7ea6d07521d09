package user

import "time"

// User is the studio operator account. The app has no roles; signing in
// unlocks everything.
type User struct {
	ID           uint
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}
