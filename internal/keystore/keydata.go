package keystore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/pgkeystore/internal/common"
	"github.com/dmitrijs2005/pgkeystore/internal/models"
)

// GetKeyData returns the record stored for userID, or common.ErrorNotFound.
func (s *KeyStore) GetKeyData(ctx context.Context, userID string) (*models.EncryptedKeyRecord, error) {
	conn, err := s.handle()
	if err != nil {
		return nil, err
	}

	var row keyRow
	err = conn.QueryRowContext(ctx, selectKeyDataQuery, userID).Scan(row.scanArgs()...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, wrapDBError(err)
	}

	return row.toRecord(), nil
}

// AddKeyData stores rec for userID, overwriting the blob, salt and encrypter
// name of an existing row. It returns the record as written, with the
// server-assigned timestamps.
func (s *KeyStore) AddKeyData(ctx context.Context, userID string, rec *models.EncryptedKeyRecord) (*models.EncryptedKeyRecord, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: nil record", common.ErrorIncorrectRecord)
	}

	conn, err := s.handle()
	if err != nil {
		return nil, err
	}

	var row keyRow
	err = conn.QueryRowContext(ctx, upsertKeyDataQuery,
		userID, rec.KeysBlob, rec.Salt, rec.EncrypterName).Scan(row.scanArgs()...)
	if err != nil {
		return nil, wrapDBError(err)
	}

	return row.toRecord(), nil
}

// UpdateKeyData is AddKeyData under another name; both create or overwrite.
func (s *KeyStore) UpdateKeyData(ctx context.Context, userID string, rec *models.EncryptedKeyRecord) (*models.EncryptedKeyRecord, error) {
	return s.AddKeyData(ctx, userID, rec)
}

// RemoveKeyData deletes the row for userID. Removing a missing row succeeds.
func (s *KeyStore) RemoveKeyData(ctx context.Context, userID string) error {
	conn, err := s.handle()
	if err != nil {
		return err
	}

	if _, err := conn.ExecContext(ctx, deleteKeyDataQuery, userID); err != nil {
		return wrapDBError(err)
	}

	return nil
}

// IsDataExist reports whether a row is stored for userID.
func (s *KeyStore) IsDataExist(ctx context.Context, userID string) (bool, error) {
	conn, err := s.handle()
	if err != nil {
		return false, err
	}

	var exists bool
	if err := conn.QueryRowContext(ctx, keyDataExistsQuery, userID).Scan(&exists); err != nil {
		return false, wrapDBError(err)
	}

	return exists, nil
}
