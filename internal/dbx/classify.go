package dbx

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/dmitrijs2005/gophidentity/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the SQLSTATE Postgres reports for unique constraint
// and primary key collisions.
const pgUniqueViolation = "23505"

// Classify tags a storage error with the matching sentinel from package
// common. The driver error stays in the chain, so errors.As still finds
// *pgconn.PgError and friends. Unknown, context and already classified
// errors are returned untouched.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	// Deadlines and cancellation belong to the caller's context.
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, common.ErrorDuplicateKey) || errors.Is(err, common.ErrorStorageUnavailable) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %w", common.ErrorDuplicateKey, err)
	}

	if isConnectionError(err) {
		return fmt.Errorf("%w: %w", common.ErrorStorageUnavailable, err)
	}

	return err
}

func isConnectionError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
