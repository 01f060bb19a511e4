package user

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("user not found")

// User is an admin account. Accounts are provisioned offline (cmd/createadmin), never over HTTP.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	CreatedAt    time.Time `json:"createdAt"`
}
