// internal/scratch/scratch_test.go
package scratch

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewCreatesUniqueRunDirs(t *testing.T) {
	root := filepath.Join(t.TempDir(), ".sim_reads")
	a, err := New(root, false)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	b, err := New(root, false)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if a.Root == b.Root {
		t.Fatalf("run dirs collide: %s", a.Root)
	}
	for _, d := range []*Dir{a, b} {
		if fi, err := os.Stat(d.Root); err != nil || !fi.IsDir() {
			t.Fatalf("run dir missing: %v", err)
		}
	}
}

func TestCleanupRemovesTreeAndEmptyParent(t *testing.T) {
	parent := filepath.Join(t.TempDir(), ".sim_reads")
	d, err := New(parent, false)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := os.WriteFile(filepath.Join(d.Root, "x.fq"), []byte("@r\nA\n+\nI\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := d.Cleanup(false); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if _, err := os.Stat(d.Root); !os.IsNotExist(err) {
		t.Fatalf("run dir survived cleanup: %v", err)
	}
	if _, err := os.Stat(parent); !os.IsNotExist(err) {
		t.Fatalf("empty parent survived cleanup: %v", err)
	}
}

func TestCleanupKeepsParentWithSiblings(t *testing.T) {
	parent := filepath.Join(t.TempDir(), ".sim_reads")
	d, _ := New(parent, false)
	sibling, _ := New(parent, false)
	if err := d.Cleanup(false); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if _, err := os.Stat(sibling.Root); err != nil {
		t.Fatalf("sibling run dir lost: %v", err)
	}
}

func TestCleanupKeepPolicies(t *testing.T) {
	parent := t.TempDir()

	failed, _ := New(parent, false)
	if err := failed.Cleanup(true); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if _, err := os.Stat(failed.Root); err != nil {
		t.Fatal("failed run tree must be kept for diagnosis")
	}

	kept, _ := New(parent, true)
	if err := kept.Cleanup(false); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if _, err := os.Stat(kept.Root); err != nil {
		t.Fatal("keep-temp run tree must be kept")
	}
}
