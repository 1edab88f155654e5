// Package integration tests the SQLite backend through the Planner
// interface: the full Attach → validated writes → Detach lifecycle,
// constraint rejections, cascade behavior, and the self-test.
package integration

import (
	"testing"

	"github.com/mesh-intelligence/lifeline/internal/sqlite"
	"github.com/mesh-intelligence/lifeline/pkg/types"
)

// newAttachedBackend creates a backend attached to a temp directory with
// the default rule table.
func newAttachedBackend(t *testing.T) *sqlite.Backend {
	t.Helper()
	b := sqlite.NewBackend()
	err := b.Attach(types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}
	t.Cleanup(func() { b.Detach() })
	return b
}
