package db

import "database/sql"

// SchemaVersion is the version recorded for the schema below.
const SchemaVersion = 1

// SchemaSQL is the complete schema for skilltrack.
//
// The skill collection is stored as one serialized value per key, so the
// relational layout is a plain key-value table. Tests load this via
// GetSchemaSQL() rather than declaring their own tables.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS kv_store (
	key TEXT PRIMARY KEY,
	value BLOB NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER PRIMARY KEY,
	applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// InitSchema creates the database schema and records its version.
func InitSchema(db *sql.DB) error {
	if _, err := db.Exec(SchemaSQL); err != nil {
		return err
	}
	_, err := db.Exec("INSERT OR IGNORE INTO schema_version (version) VALUES (?)", SchemaVersion)
	return err
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
func GetSchemaSQL() string {
	return SchemaSQL
}
