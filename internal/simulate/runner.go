// internal/simulate/runner.go
package simulate

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"simreads/internal/simerr"
)

// Result identifies the read files one invocation produced. Mate2 is set
// only when the simulator wrote paired mate files.
type Result struct {
	Community string
	Taxon     string
	Mate1     string
	Mate2     string
}

// Paired reports whether this result carries a second mate file.
func (r Result) Paired() bool { return r.Mate2 != "" }

// Runner executes one family's invocations inside a run-scoped scratch
// tree. It is safe for concurrent use.
type Runner struct {
	Fam     Family
	Scratch string        // run-scoped scratch root
	Timeout time.Duration // per invocation; 0 disables
}

// LookPath resolves the family executable. Called before any scratch
// directory exists so a missing binary leaves nothing behind.
func (f Family) LookPath() (string, error) {
	path, err := exec.LookPath(f.Exe)
	if err != nil {
		return "", &simerr.ExecutableNotFoundError{Name: f.Exe, Err: err}
	}
	return path, nil
}

// RunOne creates the task's scratch subdirectory, runs the simulator, and
// checks its declared outputs. Child stdout/stderr are captured; on a
// non-zero exit the stderr travels with the returned StageFailureError.
func (r *Runner) RunOne(ctx context.Context, t Task) (Result, error) {
	dir := filepath.Join(r.Scratch, t.Community, t.Taxon)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, errors.Wrap(err, "scratch dir")
	}
	prefix := filepath.Join(dir, r.Fam.Name)
	argv := r.Fam.Args(t, prefix)

	runCtx := ctx
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	log.Debugf("CMD: %s %s", r.Fam.Exe, strings.Join(argv, " "))
	cmd := exec.CommandContext(runCtx, r.Fam.Exe, argv...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		// A cancelled run reports the cancellation, not a stage failure.
		if ctx.Err() == context.Canceled {
			return Result{}, ctx.Err()
		}
		if runCtx.Err() == context.DeadlineExceeded {
			err = errors.Wrapf(err, "timed out after %s", r.Timeout)
		}
		return Result{}, &simerr.StageFailureError{
			Community: t.Community,
			Taxon:     t.Taxon,
			Stage:     r.Fam.Exe,
			Err:       err,
			Stderr:    stderr.String(),
		}
	}
	if s := strings.TrimSpace(stdout.String()); s != "" {
		log.Debugf("%s stdout: %s", r.Fam.Exe, s)
	}
	if s := strings.TrimSpace(stderr.String()); s != "" {
		log.Debugf("%s stderr: %s", r.Fam.Exe, s)
	}

	var want []string
	for _, files := range r.Fam.Outputs(prefix) {
		if allExist(files) {
			res := Result{Community: t.Community, Taxon: t.Taxon, Mate1: files[0]}
			if len(files) > 1 {
				res.Mate2 = files[1]
			}
			return res, nil
		}
		want = append(want, strings.Join(files, "+"))
	}
	return Result{}, &simerr.OutputMissingError{
		Community: t.Community,
		Taxon:     t.Taxon,
		Stage:     r.Fam.Exe,
		Want:      want,
	}
}

func allExist(paths []string) bool {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return false
		}
	}
	return true
}
