// This file implements layer persistence: validated inserts (alone or
// together with blocks as one atomic unit), retrieval, listing, and
// cascading deletes.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mesh-intelligence/lifeline/pkg/types"
)

// InsertLayer validates and persists a layer in one transaction. The
// parent timeline is fetched inside the same transaction; a missing parent
// rejects with ErrNotFound and a range outside the parent's with
// ErrOutOfBounds. Nothing is written on rejection.
func (b *Backend) InsertLayer(l *types.Layer) (*types.Layer, error) {
	if l == nil {
		return nil, types.ErrInvalidData
	}
	if l.LayerID == "" {
		l.LayerID = generateUUID()
	}
	now := time.Now().UTC()
	l.CreatedAt = now
	l.UpdatedAt = now

	err := b.RunInTransaction(func(tx *sql.Tx) error {
		if err := validateLayer(tx, l); err != nil {
			return err
		}
		return insertLayerTx(tx, l)
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

// InsertLayerWithBlocks inserts a layer together with its blocks as one
// transactional unit. If the layer or any block fails validation, neither
// the layer nor any block is persisted.
func (b *Backend) InsertLayerWithBlocks(l *types.Layer, blocks []*types.Block) (*types.Layer, error) {
	if l == nil {
		return nil, types.ErrInvalidData
	}
	if l.LayerID == "" {
		l.LayerID = generateUUID()
	}
	now := time.Now().UTC()
	l.CreatedAt = now
	l.UpdatedAt = now

	rules, err := b.Rules()
	if err != nil {
		return nil, err
	}

	err = b.RunInTransaction(func(tx *sql.Tx) error {
		if err := validateLayer(tx, l); err != nil {
			return err
		}
		if err := insertLayerTx(tx, l); err != nil {
			return err
		}
		for _, blk := range blocks {
			if blk == nil {
				return types.ErrInvalidData
			}
			if blk.BlockID == "" {
				blk.BlockID = generateUUID()
			}
			blk.LayerID = l.LayerID
			blk.CreatedAt = now
			blk.UpdatedAt = now
			// The block validator sees the layer row written above.
			if err := validateBlock(tx, rules, blk); err != nil {
				return err
			}
			if err := insertBlockTx(tx, blk); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

// GetLayer retrieves a layer by ID.
// Returns ErrNotFound if no row exists.
func (b *Backend) GetLayer(id string) (*types.Layer, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	db, err := b.handle()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow(
		"SELECT layer_id, timeline_id, layer_number, title, start_age, end_age, created_at, updated_at FROM layers WHERE layer_id = ?",
		id,
	)
	l, err := hydrateLayer(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting layer %s: %w", id, err)
	}
	return l, nil
}

// DeleteLayer removes a layer and cascades to its blocks inside one
// transaction. Returns ErrNotFound if the layer does not exist.
func (b *Backend) DeleteLayer(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}

	return b.RunInTransaction(func(tx *sql.Tx) error {
		if _, err := getLayerTx(tx, id); err != nil {
			return err
		}
		if _, err := tx.Exec("DELETE FROM blocks WHERE layer_id = ?", id); err != nil {
			return fmt.Errorf("deleting layer blocks: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM layers WHERE layer_id = ?", id); err != nil {
			return fmt.Errorf("deleting layer: %w", err)
		}
		return nil
	})
}

// ListLayers returns a timeline's layers ordered by ordinal.
func (b *Backend) ListLayers(timelineID string) ([]*types.Layer, error) {
	if timelineID == "" {
		return nil, types.ErrInvalidID
	}
	db, err := b.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(
		"SELECT layer_id, timeline_id, layer_number, title, start_age, end_age, created_at, updated_at FROM layers WHERE timeline_id = ? ORDER BY layer_number ASC, created_at ASC",
		timelineID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing layers: %w", err)
	}
	defer rows.Close()

	layers := []*types.Layer{}
	for rows.Next() {
		l, err := hydrateLayer(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("hydrating layer: %w", err)
		}
		layers = append(layers, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating layers: %w", err)
	}
	return layers, nil
}

// insertLayerTx writes a layer row inside an open transaction.
func insertLayerTx(tx *sql.Tx, l *types.Layer) error {
	_, err := tx.Exec(
		"INSERT INTO layers (layer_id, timeline_id, layer_number, title, start_age, end_age, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		l.LayerID, l.TimelineID, l.LayerNumber, l.Title, l.StartAge, l.EndAge,
		l.CreatedAt.Format(time.RFC3339), l.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting layer: %w", err)
	}
	return nil
}

// getLayerTx reads a layer row inside an open transaction.
// Returns ErrNotFound if no row exists.
func getLayerTx(tx *sql.Tx, id string) (*types.Layer, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	row := tx.QueryRow(
		"SELECT layer_id, timeline_id, layer_number, title, start_age, end_age, created_at, updated_at FROM layers WHERE layer_id = ?",
		id,
	)
	l, err := hydrateLayer(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting layer %s: %w", id, err)
	}
	return l, nil
}

// hydrateLayer converts a scanned row into a *types.Layer.
func hydrateLayer(scan func(...any) error) (*types.Layer, error) {
	var l types.Layer
	var createdAt, updatedAt string
	if err := scan(&l.LayerID, &l.TimelineID, &l.LayerNumber, &l.Title, &l.StartAge, &l.EndAge, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	l.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	l.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &l, nil
}
