package keystore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/pgkeystore/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
)

// integrityViolationClass is the SQLSTATE class for constraint failures
// (not_null_violation, unique_violation, check_violation, ...).
const integrityViolationClass = "23"

// wrapDBError tags integrity violations with common.ErrorConstraint and
// everything else as a plain db error. The driver error stays in the chain.
func wrapDBError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, integrityViolationClass) {
		return fmt.Errorf("%w: %w", common.ErrorConstraint, err)
	}
	return fmt.Errorf("db error: %w", err)
}
