package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/geocoder89/portfolio/internal/content"
	"github.com/geocoder89/portfolio/internal/observability"
	"github.com/jackc/pgx/v5/pgconn"
)

// unreachable reports whether err means Postgres could not be reached or stopped answering,
// as opposed to the query itself being wrong.
func unreachable(err error) bool {
	if err == nil {
		return false
	}

	if pgconn.Timeout(err) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// class 08: connection exception; 57P01..03: server shutting down / not accepting
		return strings.HasPrefix(pgErr.Code, "08") ||
			pgErr.Code == "57P01" || pgErr.Code == "57P02" || pgErr.Code == "57P03"
	}

	switch observability.ClassifyDBErr(err) {
	case "connection", "timeout":
		return true
	}

	return false
}

// readErr wraps a failed read, marking connectivity failures with content.ErrStoreUnavailable.
func readErr(op string, err error) error {
	if unreachable(err) {
		return fmt.Errorf("%s: %w: %v", op, content.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
