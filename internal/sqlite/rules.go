// This file seeds and loads the duration_rules table: the table-driven
// mapping from layer_number to the minimum years a block on that tier
// must span.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/lifeline/pkg/types"
)

// seedDurationRules populates the duration_rules table. On first run the
// default tiers are inserted; rule overrides from the config are then
// upserted so the table always reflects the effective rule set. Seeding
// runs in one transaction and is idempotent.
func seedDurationRules(db *sql.DB, overrides map[int]float64) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM duration_rules").Scan(&count); err != nil {
		return fmt.Errorf("counting duration rules: %w", err)
	}

	if count == 0 {
		for layerNumber, minimum := range types.DefaultDurationRules() {
			_, err := tx.Exec(
				"INSERT INTO duration_rules (layer_number, minimum_years) VALUES (?, ?)",
				layerNumber, minimum,
			)
			if err != nil {
				return fmt.Errorf("seeding rule for layer %d: %w", layerNumber, err)
			}
		}
	}

	for layerNumber, minimum := range overrides {
		_, err := tx.Exec(
			`INSERT INTO duration_rules (layer_number, minimum_years) VALUES (?, ?)
			 ON CONFLICT(layer_number) DO UPDATE SET minimum_years = excluded.minimum_years`,
			layerNumber, minimum,
		)
		if err != nil {
			return fmt.Errorf("overriding rule for layer %d: %w", layerNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed transaction: %w", err)
	}
	return nil
}

// loadDurationRules reads the full rule table into memory. The rules only
// change at Attach, so the validators read this snapshot.
func loadDurationRules(db *sql.DB) (types.DurationRules, error) {
	rows, err := db.Query("SELECT layer_number, minimum_years FROM duration_rules")
	if err != nil {
		return nil, fmt.Errorf("querying duration rules: %w", err)
	}
	defer rows.Close()

	rules := make(types.DurationRules)
	for rows.Next() {
		var layerNumber int
		var minimum float64
		if err := rows.Scan(&layerNumber, &minimum); err != nil {
			return nil, fmt.Errorf("scanning duration rule: %w", err)
		}
		rules[layerNumber] = minimum
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating duration rules: %w", err)
	}
	return rules, nil
}
