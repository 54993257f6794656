// internal/simulate/runner_test.go
package simulate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"simreads/internal/config"
	"simreads/internal/fastx"
	"simreads/internal/simerr"
)

func toyIllumina() config.Illumina {
	cfg := config.DefaultIllumina()
	cfg.Paired = true
	return cfg
}

// stubExe puts a shell script named name on PATH and returns its dir.
func stubExe(t *testing.T, name, body string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub executables need a POSIX shell")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func toyFamily(exe string) Family {
	return Family{
		Name:   "toy",
		Exe:    exe,
		Format: fastx.FASTQ,
		Args: func(task Task, prefix string) []string {
			return []string{prefix + ".fq"}
		},
		Outputs: func(prefix string) [][]string {
			return [][]string{{prefix + ".fq"}}
		},
	}
}

func TestRunOneSuccess(t *testing.T) {
	stubExe(t, "toysim", `printf '@r\nACGT\n+\nIIII\n' > "$1"`)
	r := &Runner{Fam: toyFamily("toysim"), Scratch: t.TempDir()}

	res, err := r.RunOne(context.Background(), task(1, 1))
	if err != nil {
		t.Fatalf("RunOne: %v", err)
	}
	if res.Community != "comm1" || res.Taxon != "Escherichia_coli" {
		t.Fatalf("result identifiers: %+v", res)
	}
	if res.Paired() {
		t.Fatalf("unexpected mate2: %+v", res)
	}
	if _, err := os.Stat(res.Mate1); err != nil {
		t.Fatalf("mate1 missing: %v", err)
	}
	if !strings.Contains(res.Mate1, filepath.Join("comm1", "Escherichia_coli")) {
		t.Fatalf("scratch layout: %s", res.Mate1)
	}
}

func TestRunOneNonZeroExit(t *testing.T) {
	stubExe(t, "toysim", `echo boom >&2; exit 2`)
	r := &Runner{Fam: toyFamily("toysim"), Scratch: t.TempDir()}

	_, err := r.RunOne(context.Background(), task(1, 1))
	var sf *simerr.StageFailureError
	if !errors.As(err, &sf) {
		t.Fatalf("got %v, want StageFailureError", err)
	}
	if !strings.Contains(sf.Stderr, "boom") {
		t.Fatalf("stderr not captured: %q", sf.Stderr)
	}
	if sf.Community != "comm1" || sf.Taxon != "Escherichia_coli" || sf.Stage != "toysim" {
		t.Fatalf("identifiers: %+v", sf)
	}
}

func TestRunOneMissingOutput(t *testing.T) {
	stubExe(t, "toysim", `exit 0`)
	r := &Runner{Fam: toyFamily("toysim"), Scratch: t.TempDir()}

	_, err := r.RunOne(context.Background(), task(1, 1))
	var om *simerr.OutputMissingError
	if !errors.As(err, &om) {
		t.Fatalf("got %v, want OutputMissingError", err)
	}
	if len(om.Want) != 1 || !strings.HasSuffix(om.Want[0], "toy.fq") {
		t.Fatalf("want = %v", om.Want)
	}
}

func TestRunOneTimeout(t *testing.T) {
	// exec keeps the sleep as the direct child so the kill closes its pipes.
	stubExe(t, "toysim", `exec sleep 5`)
	r := &Runner{Fam: toyFamily("toysim"), Scratch: t.TempDir(), Timeout: 50 * time.Millisecond}

	start := time.Now()
	_, err := r.RunOne(context.Background(), task(1, 1))
	if time.Since(start) > 3*time.Second {
		t.Fatal("timeout did not kill the child")
	}
	var sf *simerr.StageFailureError
	if !errors.As(err, &sf) {
		t.Fatalf("got %v, want StageFailureError", err)
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Fatalf("timeout not reported: %v", err)
	}
}

func TestLookPathMissing(t *testing.T) {
	fam := toyFamily("simreads-no-such-binary")
	_, err := fam.LookPath()
	var nf *simerr.ExecutableNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("got %v, want ExecutableNotFoundError", err)
	}
	if nf.Name != "simreads-no-such-binary" {
		t.Fatalf("name = %q", nf.Name)
	}
}

func TestIlluminaPairedFallbackToSingle(t *testing.T) {
	// Simulator ignores pairing and writes a single file: the unpaired
	// layout must be accepted.
	stubExe(t, "art_illumina", `
out=""
while [ $# -gt 1 ]; do
  if [ "$1" = "-o" ]; then out="$2"; fi
  shift
done
printf '@r\nACGT\n+\nIIII\n' > "${out}.fq"
`)
	cfg := toyIllumina()
	r := &Runner{Fam: IlluminaFamily(cfg), Scratch: t.TempDir()}
	res, err := r.RunOne(context.Background(), task(2, 0))
	if err != nil {
		t.Fatalf("RunOne: %v", err)
	}
	if res.Paired() || !strings.HasSuffix(res.Mate1, "illumina.fq") {
		t.Fatalf("result = %+v", res)
	}
}
