// Package models defines the domain types persisted by the key store.
package models

import "time"

// EncryptedKeyRecord is a user's encrypted key material plus the metadata a
// caller needs to decrypt it. The store treats EncrypterName, Salt and
// KeysBlob as opaque values.
type EncryptedKeyRecord struct {
	EncrypterName string
	Salt          string
	KeysBlob      []byte
	CreationTime  time.Time
	ModifiedTime  time.Time
}

// WasModified reports whether the record has been overwritten since it was
// first stored.
func (r *EncryptedKeyRecord) WasModified() bool {
	return r.ModifiedTime.After(r.CreationTime)
}
