package keystore

const tableExistsQuery = `SELECT EXISTS(
	SELECT 1 FROM information_schema.tables
	WHERE table_schema = current_schema() AND table_name = $1
)`

const createTableQuery = `CREATE TABLE IF NOT EXISTS encrypted_keys (
	user_id text NOT NULL PRIMARY KEY,
	encrypted_keys_data bytea NOT NULL,
	salt text NOT NULL,
	encrypter_name text NOT NULL,
	created_at timestamp with time zone NOT NULL DEFAULT NOW(),
	modified_at timestamp with time zone
)`

const selectKeyDataQuery = `SELECT encrypted_keys_data, salt, encrypter_name, created_at, modified_at
	FROM encrypted_keys
	WHERE user_id = $1`

const upsertKeyDataQuery = `INSERT INTO encrypted_keys (user_id, encrypted_keys_data, salt, encrypter_name)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (user_id) DO UPDATE SET
		encrypted_keys_data = EXCLUDED.encrypted_keys_data,
		salt = EXCLUDED.salt,
		encrypter_name = EXCLUDED.encrypter_name,
		modified_at = NOW()
	RETURNING encrypted_keys_data, salt, encrypter_name, created_at, modified_at`

const deleteKeyDataQuery = `DELETE FROM encrypted_keys WHERE user_id = $1`

const keyDataExistsQuery = `SELECT EXISTS(SELECT 1 FROM encrypted_keys WHERE user_id = $1)`
