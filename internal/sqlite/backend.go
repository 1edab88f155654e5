// Package sqlite implements the SQLite storage backend for Lifeline.
// The backend owns a single database handle with an explicit Attach/Detach
// lifecycle; all writes validate the proposed rows inside the open
// transaction and roll back fully on rejection.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/lifeline/pkg/types"
)

// DatabaseFileName is the SQLite file created inside DataDir.
const DatabaseFileName = "lifeline.db"

// Compile-time interface check: Backend must implement Planner.
var _ types.Planner = (*Backend)(nil)

// Backend implements the Planner interface backed by a single SQLite file.
// SQLite serializes writers, so concurrent mutations of the same hierarchy
// queue behind the active write transaction.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	rules    types.DurationRules
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach initializes the backend with the given configuration.
// Creates DataDir if it does not exist, opens the database file, applies
// the schema idempotently, seeds the duration rule table on first run, and
// upserts any rule overrides from the config.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("%w: creating data dir: %v", types.ErrStorageUnavailable, err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %v", types.ErrStorageUnavailable, dbPath, err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return err
	}

	if err := seedDurationRules(db, config.MinimumDurationByLayer); err != nil {
		db.Close()
		return fmt.Errorf("seeding duration rules: %w", err)
	}

	rules, err := loadDurationRules(db)
	if err != nil {
		db.Close()
		return fmt.Errorf("loading duration rules: %w", err)
	}

	b.db = db
	b.config = config
	b.rules = rules
	b.attached = true

	return nil
}

// Detach releases all resources held by the backend. After Detach, all
// operations return ErrDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil // idempotent
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return fmt.Errorf("%w: closing database: %v", types.ErrStorageUnavailable, err)
		}
		b.db = nil
	}

	b.attached = false
	b.rules = nil

	return nil
}

// Rules returns the duration rule table loaded at Attach.
func (b *Backend) Rules() (types.DurationRules, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrDetached
	}
	rules := make(types.DurationRules, len(b.rules))
	for layerNumber, minimum := range b.rules {
		rules[layerNumber] = minimum
	}
	return rules, nil
}

// RunInTransaction executes fn inside a single transaction. On a nil
// return the transaction commits; on any error the whole scope rolls back
// before the error is returned to the caller. Every multi-row operation
// composes from this primitive.
func (b *Backend) RunInTransaction(fn func(tx *sql.Tx) error) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.ErrDetached
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", types.ErrStorageUnavailable, err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing transaction: %v", types.ErrStorageUnavailable, err)
	}
	return nil
}

// applySchema executes all DDL statements. Each statement is idempotent,
// so re-applying against an existing database is a no-op.
func applySchema(db *sql.DB) error {
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("%w: applying schema: %v", types.ErrStorageUnavailable, err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("%w: applying indexes: %v", types.ErrStorageUnavailable, err)
		}
	}
	return nil
}

// generateUUID generates a new UUID v7 for entity IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
