package db

import (
	"context"
	"errors"
	"strings"

	"github.com/geocoder89/portfolio/internal/domain/user"
	"github.com/geocoder89/portfolio/internal/security"
)

// AdminAccounts is implemented by both the Postgres and the in-memory users repos.
type AdminAccounts interface {
	GetByUsername(ctx context.Context, username string) (user.User, error)
	Create(ctx context.Context, username, passwordHash string) (user.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

type SeedResult string

const (
	SeedSkipped   SeedResult = "skipped"
	SeedCreated   SeedResult = "created"
	SeedUpdated   SeedResult = "updated"
	SeedUnchanged SeedResult = "unchanged"
)

var ErrAdminCredentials = errors.New("admin username and password are required")

// EnsureAdminUser creates the admin account if it does not exist. With resetPassword
// an existing account gets its password replaced; otherwise it is left alone.
func EnsureAdminUser(ctx context.Context, users AdminAccounts, username, password string, resetPassword bool) (SeedResult, error) {
	username = strings.TrimSpace(username)

	if username == "" || password == "" {
		return SeedSkipped, ErrAdminCredentials
	}

	existing, err := users.GetByUsername(ctx, username)

	if err != nil && !errors.Is(err, user.ErrNotFound) {
		return SeedSkipped, err
	}

	found := err == nil

	if found && !resetPassword {
		return SeedUnchanged, nil
	}

	hash, err := security.HashPassword(password)

	if err != nil {
		return SeedSkipped, err
	}

	if found {
		err = users.UpdatePassword(ctx, existing.ID, hash)

		if err != nil {
			return SeedSkipped, err
		}

		return SeedUpdated, nil
	}

	_, err = users.Create(ctx, username, hash)

	if err != nil {
		return SeedSkipped, err
	}

	return SeedCreated, nil
}
