// This file implements timeline persistence: validated inserts and
// updates, retrieval, listing, and cascading deletes.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mesh-intelligence/lifeline/pkg/types"
)

// handle returns the open database for read paths.
// Returns ErrDetached when the backend is not attached.
func (b *Backend) handle() (*sql.DB, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrDetached
	}
	return b.db, nil
}

// InsertTimeline validates and persists a timeline in one transaction.
// A caller-supplied TimelineID is kept; an empty one gets a UUID v7.
// Returns the persisted row, or the validator's typed error with nothing
// written.
func (b *Backend) InsertTimeline(t *types.Timeline) (*types.Timeline, error) {
	if t == nil {
		return nil, types.ErrInvalidData
	}
	if t.TimelineID == "" {
		t.TimelineID = generateUUID()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	err := b.RunInTransaction(func(tx *sql.Tx) error {
		if err := validateTimeline(t); err != nil {
			return err
		}
		return insertTimelineTx(tx, t)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// GetTimeline retrieves a timeline by ID.
// Returns ErrNotFound if no row exists.
func (b *Backend) GetTimeline(id string) (*types.Timeline, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	db, err := b.handle()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow(
		"SELECT timeline_id, user_name, start_age, end_age, end_goal, num_layers, created_at, updated_at FROM timelines WHERE timeline_id = ?",
		id,
	)
	t, err := hydrateTimeline(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting timeline %s: %w", id, err)
	}
	return t, nil
}

// UpdateTimeline validates and persists changes to an existing timeline.
// The ID never changes; CreatedAt is preserved and UpdatedAt is bumped.
// Returns ErrNotFound if the row does not exist.
func (b *Backend) UpdateTimeline(t *types.Timeline) (*types.Timeline, error) {
	if t == nil {
		return nil, types.ErrInvalidData
	}
	if t.TimelineID == "" {
		return nil, types.ErrInvalidID
	}

	err := b.RunInTransaction(func(tx *sql.Tx) error {
		existing, err := getTimelineTx(tx, t.TimelineID)
		if err != nil {
			return err
		}
		if err := validateTimeline(t); err != nil {
			return err
		}
		t.CreatedAt = existing.CreatedAt
		t.UpdatedAt = time.Now().UTC()

		_, err = tx.Exec(
			"UPDATE timelines SET user_name = ?, start_age = ?, end_age = ?, end_goal = ?, num_layers = ?, updated_at = ? WHERE timeline_id = ?",
			t.UserName, t.StartAge, t.EndAge, t.EndGoal, t.NumLayers,
			t.UpdatedAt.Format(time.RFC3339), t.TimelineID,
		)
		if err != nil {
			return fmt.Errorf("updating timeline: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTimeline removes a timeline and cascades to all of its layers and
// their blocks inside one transaction. No orphaned child rows survive.
// Returns ErrNotFound if the timeline does not exist.
func (b *Backend) DeleteTimeline(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}

	return b.RunInTransaction(func(tx *sql.Tx) error {
		if _, err := getTimelineTx(tx, id); err != nil {
			return err
		}

		// Cascade: blocks of owned layers, then layers, then the timeline.
		_, err := tx.Exec(
			"DELETE FROM blocks WHERE layer_id IN (SELECT layer_id FROM layers WHERE timeline_id = ?)",
			id,
		)
		if err != nil {
			return fmt.Errorf("deleting timeline blocks: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM layers WHERE timeline_id = ?", id); err != nil {
			return fmt.Errorf("deleting timeline layers: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM timelines WHERE timeline_id = ?", id); err != nil {
			return fmt.Errorf("deleting timeline: %w", err)
		}
		return nil
	})
}

// ListTimelines returns all timelines ordered by creation time.
func (b *Backend) ListTimelines() ([]*types.Timeline, error) {
	db, err := b.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(
		"SELECT timeline_id, user_name, start_age, end_age, end_goal, num_layers, created_at, updated_at FROM timelines ORDER BY created_at ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("listing timelines: %w", err)
	}
	defer rows.Close()

	timelines := []*types.Timeline{}
	for rows.Next() {
		t, err := hydrateTimeline(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("hydrating timeline: %w", err)
		}
		timelines = append(timelines, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating timelines: %w", err)
	}
	return timelines, nil
}

// insertTimelineTx writes a timeline row inside an open transaction.
func insertTimelineTx(tx *sql.Tx, t *types.Timeline) error {
	_, err := tx.Exec(
		"INSERT INTO timelines (timeline_id, user_name, start_age, end_age, end_goal, num_layers, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		t.TimelineID, t.UserName, t.StartAge, t.EndAge, t.EndGoal, t.NumLayers,
		t.CreatedAt.Format(time.RFC3339), t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting timeline: %w", err)
	}
	return nil
}

// getTimelineTx reads a timeline row inside an open transaction.
// Returns ErrNotFound if no row exists.
func getTimelineTx(tx *sql.Tx, id string) (*types.Timeline, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	row := tx.QueryRow(
		"SELECT timeline_id, user_name, start_age, end_age, end_goal, num_layers, created_at, updated_at FROM timelines WHERE timeline_id = ?",
		id,
	)
	t, err := hydrateTimeline(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting timeline %s: %w", id, err)
	}
	return t, nil
}

// hydrateTimeline converts a scanned row into a *types.Timeline. The scan
// argument works for both sql.Row and sql.Rows.
func hydrateTimeline(scan func(...any) error) (*types.Timeline, error) {
	var t types.Timeline
	var createdAt, updatedAt string
	if err := scan(&t.TimelineID, &t.UserName, &t.StartAge, &t.EndAge, &t.EndGoal, &t.NumLayers, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	t.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	t.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &t, nil
}
