package keystore

import (
	"database/sql"
	"time"

	"github.com/dmitrijs2005/pgkeystore/internal/models"
)

// keyRow mirrors the columns returned by the select and upsert statements.
type keyRow struct {
	EncryptedKeysData []byte
	Salt              string
	EncrypterName     string
	CreatedAt         time.Time
	ModifiedAt        sql.NullTime
}

func (r *keyRow) scanArgs() []any {
	return []any{&r.EncryptedKeysData, &r.Salt, &r.EncrypterName, &r.CreatedAt, &r.ModifiedAt}
}

// toRecord maps a stored row to the domain record. A row that was never
// updated reports its creation time as the modification time.
func (r keyRow) toRecord() *models.EncryptedKeyRecord {
	modified := r.CreatedAt
	if r.ModifiedAt.Valid {
		modified = r.ModifiedAt.Time
	}

	blob := r.EncryptedKeysData
	if blob == nil {
		blob = []byte{}
	}

	return &models.EncryptedKeyRecord{
		EncrypterName: r.EncrypterName,
		Salt:          r.Salt,
		KeysBlob:      blob,
		CreationTime:  r.CreatedAt,
		ModifiedTime:  modified,
	}
}
