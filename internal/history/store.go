package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// Store persists one snapshot per scan run in a local sqlite database.
type Store struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

func Open(path string) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("history path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("history path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory %q: %w", dir, err)
		}
	}

	// busy_timeout + WAL reduce lock conflicts during watch-mode churn.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)", cleanPath)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite history %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite history %q: %w", cleanPath, err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize sqlite schema %q: %w", cleanPath, err)
	}

	return &Store{path: cleanPath, db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) SaveSnapshot(projectKey string, snapshot Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	projectKey = normalizeProjectKey(projectKey)
	createdAt := snapshot.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO snapshots
			(project_key, run_id, created_at, files, syntax_invalid, imports_invalid, structure_invalid, diagnostics)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		projectKey, snapshot.RunID, createdAt.Unix(),
		snapshot.Files, snapshot.SyntaxInvalid, snapshot.ImportsInvalid,
		snapshot.StructureInvalid, snapshot.Diagnostics,
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Recent returns up to n snapshots, newest first.
func (s *Store) Recent(projectKey string, n int) ([]Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n <= 0 {
		n = 10
	}
	rows, err := s.db.Query(`
		SELECT run_id, created_at, files, syntax_invalid, imports_invalid, structure_invalid, diagnostics
		FROM snapshots
		WHERE project_key = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`,
		normalizeProjectKey(projectKey), n,
	)
	if err != nil {
		return nil, fmt.Errorf("load snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var snap Snapshot
		var createdAt int64
		if err := rows.Scan(&snap.RunID, &createdAt, &snap.Files,
			&snap.SyntaxInvalid, &snap.ImportsInvalid, &snap.StructureInvalid,
			&snap.Diagnostics); err != nil {
			return nil, err
		}
		snap.CreatedAt = time.Unix(createdAt, 0)
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}

// Prune keeps only the newest keep snapshots per project.
func (s *Store) Prune(projectKey string, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keep <= 0 {
		return nil
	}
	_, err := s.db.Exec(`
		DELETE FROM snapshots
		WHERE project_key = ?
		AND id NOT IN (
			SELECT id FROM snapshots
			WHERE project_key = ?
			ORDER BY created_at DESC, id DESC
			LIMIT ?
		)`,
		normalizeProjectKey(projectKey), normalizeProjectKey(projectKey), keep,
	)
	if err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

func normalizeProjectKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "default"
	}
	return key
}
