package keystore

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/pgkeystore/internal/common"
	"github.com/dmitrijs2005/pgkeystore/internal/dbx"
)

// bootstrap creates the encrypted_keys table in the current schema unless it
// is already there. The lookup and the DDL run in one transaction.
func (s *KeyStore) bootstrap(ctx context.Context, b dbx.TxBeginner) error {
	return dbx.WithTx(ctx, b, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var exists bool
		if err := tx.QueryRowContext(ctx, tableExistsQuery, common.KeysTableName).Scan(&exists); err != nil {
			return fmt.Errorf("table lookup: %w", wrapDBError(err))
		}

		if exists {
			s.logger.Debug(ctx, "table present")
			return nil
		}

		if _, err := tx.ExecContext(ctx, createTableQuery); err != nil {
			return fmt.Errorf("table create: %w", wrapDBError(err))
		}
		s.logger.Info(ctx, "table created")

		return nil
	})
}
