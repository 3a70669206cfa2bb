package history

import (
	"database/sql"
	"time"
)

// Snapshot is one scan run's aggregate result.
type Snapshot struct {
	RunID            string
	CreatedAt        time.Time
	Files            int
	SyntaxInvalid    int
	ImportsInvalid   int
	StructureInvalid int
	Diagnostics      int
}

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	project_key TEXT NOT NULL,
	run_id TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	files INTEGER NOT NULL,
	syntax_invalid INTEGER NOT NULL,
	imports_invalid INTEGER NOT NULL,
	structure_invalid INTEGER NOT NULL,
	diagnostics INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_project_created
	ON snapshots(project_key, created_at DESC);
`

func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
