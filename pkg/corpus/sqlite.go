package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3" // "sqlite3" driver
	_ "modernc.org/sqlite"          // "sqlite" driver
)

// Supported database/sql driver names.
const (
	DriverModernc = "sqlite"  // modernc.org/sqlite, pure Go
	DriverMattn   = "sqlite3" // github.com/mattn/go-sqlite3, cgo
)

// SQLiteConfig configures the SQLite corpus store.
type SQLiteConfig struct {
	// Path is the path to the SQLite database file.
	Path string

	// Driver selects the database/sql driver.
	// Default: "sqlite"
	Driver string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// CorpusInfo describes one imported corpus.
type CorpusInfo struct {
	Name       string
	Source     string
	ValueCount int
	ImportedAt time.Time
}

// SQLiteStore keeps corpora in a SQLite database.
// It implements Loader, so a definitions document can reference imported
// corpora with the same $name syntax used for corpus files.
type SQLiteStore struct {
	db        *sql.DB
	path      string
	closeOnce sync.Once

	loadStmt *sql.Stmt
	listStmt *sql.Stmt
}

// NewSQLiteStore opens (creating if needed) a corpus store at path with default settings.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	return NewSQLiteStoreWithConfig(SQLiteConfig{Path: path})
}

// NewSQLiteStoreWithConfig opens a corpus store with custom configuration.
func NewSQLiteStoreWithConfig(cfg SQLiteConfig) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}
	if cfg.Driver == "" {
		cfg.Driver = DriverModernc
	}
	if cfg.Driver != DriverModernc && cfg.Driver != DriverMattn {
		return nil, fmt.Errorf("unsupported sqlite driver %q (must be %q or %q)", cfg.Driver, DriverModernc, DriverMattn)
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	db, err := sql.Open(cfg.Driver, cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	store := &SQLiteStore{db: db, path: cfg.Path}

	if err := store.configure(cfg.BusyTimeout); err != nil {
		db.Close()
		return nil, err
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	if err := store.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}

	return store, nil
}

// configure applies connection pragmas. Both drivers accept them as statements.
func (s *SQLiteStore) configure(busyTimeout time.Duration) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		fmt.Sprintf("PRAGMA busy_timeout=%d", busyTimeout.Milliseconds()),
	}
	for _, p := range pragmas {
		if _, err := s.db.Exec(p); err != nil {
			return fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}
	return nil
}

func (s *SQLiteStore) initSchema() error {
	if _, err := s.db.Exec(Schema); err != nil {
		return err
	}
	_, err := s.db.Exec("INSERT OR IGNORE INTO schema_version (version) VALUES (?)", SchemaVersion)
	return err
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.loadStmt, err = s.db.Prepare(`
		SELECT value FROM corpus_values
		WHERE corpus = ?
		ORDER BY position
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare load statement: %w", err)
	}

	s.listStmt, err = s.db.Prepare(`
		SELECT name, COALESCE(source, ''), value_count, imported_at
		FROM corpora
		ORDER BY name
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare list statement: %w", err)
	}

	return nil
}

// Import stores values under name, replacing any corpus already stored under it.
// Values keep their order.
func (s *SQLiteStore) Import(ctx context.Context, name, source string, values []string) error {
	if name == "" {
		return fmt.Errorf("corpus name is empty")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM corpus_values WHERE corpus = ?", name); err != nil {
		return fmt.Errorf("failed to clear corpus %q: %w", name, err)
	}

	insert, err := tx.PrepareContext(ctx, "INSERT INTO corpus_values (corpus, position, value) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer insert.Close()

	for i, v := range values {
		if _, err := insert.ExecContext(ctx, name, i, v); err != nil {
			return fmt.Errorf("failed to insert value %d of corpus %q: %w", i, name, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO corpora (name, source, value_count, imported_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			source = excluded.source,
			value_count = excluded.value_count,
			imported_at = excluded.imported_at
	`, name, source, len(values), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to record corpus %q: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit corpus %q: %w", name, err)
	}
	return nil
}

// ImportFile reads a corpus file and imports its lines under name.
func (s *SQLiteStore) ImportFile(ctx context.Context, name, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read corpus file: %w", err)
	}
	values := SplitLines(string(data))
	if err := s.Import(ctx, name, path, values); err != nil {
		return 0, err
	}
	return len(values), nil
}

// Load returns the values of the named corpus in import order.
func (s *SQLiteStore) Load(name string) ([]string, error) {
	return s.LoadContext(context.Background(), name)
}

// LoadContext is Load with a caller-supplied context.
func (s *SQLiteStore) LoadContext(ctx context.Context, name string) ([]string, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM corpora WHERE name = ?", name).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q (looked in %s)", ErrNotFound, name, s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up corpus %q: %w", name, err)
	}

	rows, err := s.loadStmt.QueryContext(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus %q: %w", name, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan corpus %q: %w", name, err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// List returns every imported corpus ordered by name.
func (s *SQLiteStore) List(ctx context.Context) ([]CorpusInfo, error) {
	rows, err := s.listStmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list corpora: %w", err)
	}
	defer rows.Close()

	var infos []CorpusInfo
	for rows.Next() {
		var info CorpusInfo
		var importedAt int64
		if err := rows.Scan(&info.Name, &info.Source, &info.ValueCount, &importedAt); err != nil {
			return nil, fmt.Errorf("failed to scan corpus row: %w", err)
		}
		info.ImportedAt = time.Unix(importedAt, 0)
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// Delete removes the named corpus. Deleting an unknown corpus is not an error.
func (s *SQLiteStore) Delete(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM corpus_values WHERE corpus = ?", name); err != nil {
		return fmt.Errorf("failed to delete values of corpus %q: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM corpora WHERE name = ?", name); err != nil {
		return fmt.Errorf("failed to delete corpus %q: %w", name, err)
	}
	return tx.Commit()
}

// Ping verifies the database is reachable. It backs the corpus readiness check.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the prepared statements and the database.
func (s *SQLiteStore) Close() error {
	var err error
	s.closeOnce.Do(func() {
		if s.loadStmt != nil {
			s.loadStmt.Close()
		}
		if s.listStmt != nil {
			s.listStmt.Close()
		}
		err = s.db.Close()
	})
	return err
}
