// Package sqlite implements the SQLite storage backend for Lifeline.
// This file holds the schema DDL applied idempotently on Attach.
package sqlite

// Schema DDL for all tables. Every statement is idempotent so Attach can
// re-apply the schema against an existing database file. Cascade deletes
// are issued explicitly inside delete transactions rather than through
// foreign-key actions, which in SQLite depend on a per-connection pragma.
const (
	createTimelines = `CREATE TABLE IF NOT EXISTS timelines (
    timeline_id TEXT PRIMARY KEY,
    user_name TEXT NOT NULL,
    start_age REAL NOT NULL,
    end_age REAL NOT NULL,
    end_goal TEXT NOT NULL DEFAULT '',
    num_layers INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createLayers = `CREATE TABLE IF NOT EXISTS layers (
    layer_id TEXT PRIMARY KEY,
    timeline_id TEXT NOT NULL,
    layer_number INTEGER NOT NULL,
    title TEXT NOT NULL DEFAULT '',
    start_age REAL NOT NULL,
    end_age REAL NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (timeline_id) REFERENCES timelines(timeline_id)
);`

	createBlocks = `CREATE TABLE IF NOT EXISTS blocks (
    block_id TEXT PRIMARY KEY,
    layer_id TEXT NOT NULL,
    layer_number INTEGER NOT NULL,
    title TEXT NOT NULL DEFAULT '',
    start_age REAL NOT NULL,
    end_age REAL NOT NULL,
    duration_years REAL NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (layer_id) REFERENCES layers(layer_id)
);`

	createDurationRules = `CREATE TABLE IF NOT EXISTS duration_rules (
    layer_number INTEGER PRIMARY KEY,
    minimum_years REAL NOT NULL
);`
)

// Index DDL for common queries.
const (
	idxLayersTimeline = `CREATE INDEX IF NOT EXISTS idx_layers_timeline ON layers(timeline_id);`
	idxLayersOrdinal  = `CREATE INDEX IF NOT EXISTS idx_layers_ordinal ON layers(timeline_id, layer_number);`
	idxBlocksLayer    = `CREATE INDEX IF NOT EXISTS idx_blocks_layer ON blocks(layer_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createTimelines,
	createLayers,
	createBlocks,
	createDurationRules,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxLayersTimeline,
	idxLayersOrdinal,
	idxBlocksLayer,
}
