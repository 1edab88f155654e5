package types

import "errors"

// Planner defines the interface for backend-agnostic access to the planning
// hierarchy. Callers attach to a backend, perform typed entity operations,
// and detach when done. Every insert validates the proposed row against the
// constraint set inside a transaction; on rejection nothing is written and
// the typed constraint error is returned.
type Planner interface {
	// Attach connects the Planner to the backend described by config.
	// Creates the DataDir if it does not exist and applies the schema
	// idempotently. Returns ErrAlreadyAttached if called while attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls
	// succeed. After Detach, operations return ErrDetached.
	Detach() error

	// Timeline operations.
	InsertTimeline(t *Timeline) (*Timeline, error)
	GetTimeline(id string) (*Timeline, error)
	UpdateTimeline(t *Timeline) (*Timeline, error)
	// DeleteTimeline removes the timeline and cascades to all of its
	// layers and their blocks.
	DeleteTimeline(id string) error
	ListTimelines() ([]*Timeline, error)

	// Layer operations.
	InsertLayer(l *Layer) (*Layer, error)
	GetLayer(id string) (*Layer, error)
	// DeleteLayer removes the layer and cascades to its blocks.
	DeleteLayer(id string) error
	ListLayers(timelineID string) ([]*Layer, error)

	// Block operations.
	InsertBlock(b *Block) (*Block, error)
	GetBlock(id string) (*Block, error)
	DeleteBlock(id string) error
	ListBlocks(layerID string) ([]*Block, error)

	// InsertLayerWithBlocks inserts a layer and its blocks as one atomic
	// unit. If any row fails validation, neither the layer nor any block
	// is persisted.
	InsertLayerWithBlocks(l *Layer, blocks []*Block) (*Layer, error)

	// SelfTest exercises the positive and negative constraint scenarios
	// against the live store using throwaway fixtures, cleans up after
	// itself, and reports per-check outcomes. Repeated runs leave the
	// store unchanged and report the same result absent external changes.
	SelfTest() (*SelfTestReport, error)
}

// Planner lifecycle errors.
var (
	ErrDetached        = errors.New("planner is detached")
	ErrAlreadyAttached = errors.New("planner is already attached")
)
