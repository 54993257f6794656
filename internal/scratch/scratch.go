// internal/scratch/scratch.go

// Package scratch manages the run-scoped temporary tree that holds
// per-(community,taxon) simulator output before merging.
package scratch

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Dir is one run's scratch tree.
type Dir struct {
	Root string
	keep bool
}

// New creates <tempRoot>/<uuid> so concurrent runs sharing a temp root
// cannot collide. Callers resolve executables before calling this, so a
// missing binary never leaves an empty tree behind.
func New(tempRoot string, keep bool) (*Dir, error) {
	root := filepath.Join(tempRoot, uuid.New().String())
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrap(err, "create scratch dir")
	}
	return &Dir{Root: root, keep: keep}, nil
}

// Cleanup removes the run tree after a successful run. A failed run keeps
// its tree for post-mortem of the simulator output, as does keep-temp.
func (d *Dir) Cleanup(failed bool) error {
	if d.keep || failed {
		log.Infof("Keeping temp directory: %s", d.Root)
		return nil
	}
	log.Info("Removing temp directory...")
	if err := os.RemoveAll(d.Root); err != nil {
		return errors.Wrap(err, "remove scratch dir")
	}
	// Drop the shared parent too when this was its last run.
	_ = os.Remove(filepath.Dir(d.Root))
	return nil
}
