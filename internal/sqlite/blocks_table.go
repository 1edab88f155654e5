// This file implements block persistence: validated inserts against the
// duration rule table, retrieval, listing, and deletes.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mesh-intelligence/lifeline/pkg/types"
)

// InsertBlock validates and persists a block in one transaction. The
// owning layer is fetched inside the same transaction, the stored duration
// must agree with the age range, and the duration must meet the minimum
// for the block's tier. A rejected block leaves no partial row and does
// not disturb sibling rows already committed.
func (b *Backend) InsertBlock(blk *types.Block) (*types.Block, error) {
	if blk == nil {
		return nil, types.ErrInvalidData
	}
	if blk.BlockID == "" {
		blk.BlockID = generateUUID()
	}
	now := time.Now().UTC()
	blk.CreatedAt = now
	blk.UpdatedAt = now

	rules, err := b.Rules()
	if err != nil {
		return nil, err
	}

	err = b.RunInTransaction(func(tx *sql.Tx) error {
		if err := validateBlock(tx, rules, blk); err != nil {
			return err
		}
		return insertBlockTx(tx, blk)
	})
	if err != nil {
		return nil, err
	}
	return blk, nil
}

// GetBlock retrieves a block by ID.
// Returns ErrNotFound if no row exists.
func (b *Backend) GetBlock(id string) (*types.Block, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	db, err := b.handle()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow(
		"SELECT block_id, layer_id, layer_number, title, start_age, end_age, duration_years, created_at, updated_at FROM blocks WHERE block_id = ?",
		id,
	)
	blk, err := hydrateBlock(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting block %s: %w", id, err)
	}
	return blk, nil
}

// DeleteBlock removes a block.
// Returns ErrNotFound if the block does not exist.
func (b *Backend) DeleteBlock(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}

	return b.RunInTransaction(func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRow("SELECT 1 FROM blocks WHERE block_id = ?", id).Scan(&exists)
		if err != nil {
			if err == sql.ErrNoRows {
				return types.ErrNotFound
			}
			return fmt.Errorf("checking block existence: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM blocks WHERE block_id = ?", id); err != nil {
			return fmt.Errorf("deleting block: %w", err)
		}
		return nil
	})
}

// ListBlocks returns a layer's blocks in chronological order.
func (b *Backend) ListBlocks(layerID string) ([]*types.Block, error) {
	if layerID == "" {
		return nil, types.ErrInvalidID
	}
	db, err := b.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(
		"SELECT block_id, layer_id, layer_number, title, start_age, end_age, duration_years, created_at, updated_at FROM blocks WHERE layer_id = ? ORDER BY start_age ASC",
		layerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing blocks: %w", err)
	}
	defer rows.Close()

	blocks := []*types.Block{}
	for rows.Next() {
		blk, err := hydrateBlock(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("hydrating block: %w", err)
		}
		blocks = append(blocks, blk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating blocks: %w", err)
	}
	return blocks, nil
}

// insertBlockTx writes a block row inside an open transaction.
func insertBlockTx(tx *sql.Tx, blk *types.Block) error {
	_, err := tx.Exec(
		"INSERT INTO blocks (block_id, layer_id, layer_number, title, start_age, end_age, duration_years, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		blk.BlockID, blk.LayerID, blk.LayerNumber, blk.Title, blk.StartAge, blk.EndAge, blk.DurationYears,
		blk.CreatedAt.Format(time.RFC3339), blk.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting block: %w", err)
	}
	return nil
}

// hydrateBlock converts a scanned row into a *types.Block.
func hydrateBlock(scan func(...any) error) (*types.Block, error) {
	var blk types.Block
	var createdAt, updatedAt string
	if err := scan(&blk.BlockID, &blk.LayerID, &blk.LayerNumber, &blk.Title, &blk.StartAge, &blk.EndAge, &blk.DurationYears, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	blk.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	blk.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &blk, nil
}
