package common

// KeysTableName is the table holding one encrypted key record per user.
const KeysTableName = "encrypted_keys"
