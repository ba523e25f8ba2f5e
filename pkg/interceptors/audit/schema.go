package audit

// schemaVersion is the current database schema version.
const schemaVersion = 1

// schema contains the SQL statements to create the audit database schema.
const schema = `
-- Audit records table
CREATE TABLE IF NOT EXISTS audit (
    id TEXT PRIMARY KEY,
    time TIMESTAMP NOT NULL,
    method TEXT NOT NULL,
    owner TEXT,
    arg_count INTEGER NOT NULL,
    duration_ns INTEGER NOT NULL,
    outcome TEXT NOT NULL,
    error TEXT
);

-- Schema version table
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

-- Query indexes
CREATE INDEX IF NOT EXISTS idx_audit_time ON audit(time);
CREATE INDEX IF NOT EXISTS idx_audit_method ON audit(method);
CREATE INDEX IF NOT EXISTS idx_audit_outcome ON audit(outcome);
`

const insertSchemaVersion = `INSERT OR IGNORE INTO schema_version (version) VALUES (?)`

const getSchemaVersion = `SELECT version FROM schema_version ORDER BY version DESC LIMIT 1`
