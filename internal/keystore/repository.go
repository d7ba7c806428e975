package keystore

import (
	"context"

	"github.com/dmitrijs2005/pgkeystore/internal/models"
)

// Repository is the key-data access surface callers depend on.
type Repository interface {
	GetKeyData(ctx context.Context, userID string) (*models.EncryptedKeyRecord, error)
	AddKeyData(ctx context.Context, userID string, rec *models.EncryptedKeyRecord) (*models.EncryptedKeyRecord, error)
	UpdateKeyData(ctx context.Context, userID string, rec *models.EncryptedKeyRecord) (*models.EncryptedKeyRecord, error)
	RemoveKeyData(ctx context.Context, userID string) error
	IsDataExist(ctx context.Context, userID string) (bool, error)
}

var _ Repository = (*KeyStore)(nil)
