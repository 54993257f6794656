// internal/mergereads/merge_test.go
package mergereads

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simreads/internal/fastx"
	"simreads/internal/simulate"
)

func writeFastq(t *testing.T, dir, name string, n int) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	var data []byte
	for i := 0; i < n; i++ {
		data = append(data, []byte(fmt.Sprintf("@orig%d some desc\nACGT\n+\nIIII\n", i))...)
	}
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func writeFasta(t *testing.T, dir, name string, n int) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	var data []byte
	for i := 0; i < n; i++ {
		data = append(data, []byte(fmt.Sprintf(">orig%d\nACGTACGT\n", i))...)
	}
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func readIDs(t *testing.T, path string, format fastx.Format) []string {
	t.Helper()
	rc, err := fastx.Open(path)
	require.NoError(t, err)
	defer func() { _ = rc.Close() }()
	sc := fastx.NewScanner(format, rc)
	var ids []string
	for sc.Next() {
		ids = append(ids, sc.Seq().Name())
	}
	require.NoError(t, sc.Error())
	return ids
}

func noPartials(t *testing.T, root string) {
	t.Helper()
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		assert.NotEqual(t, ".partial", filepath.Ext(path), "staging file left behind: %s", path)
		return nil
	})
	require.NoError(t, err)
}

func TestMergeRenamesAndDeletesSources(t *testing.T) {
	tmp := t.TempDir()
	out := filepath.Join(t.TempDir(), "illumina")

	srcA := writeFastq(t, filepath.Join(tmp, "comm1", "taxA"), "illumina.fq", 2)
	srcB := writeFastq(t, filepath.Join(tmp, "comm1", "taxB"), "illumina.fq", 1)
	srcC := writeFastq(t, filepath.Join(tmp, "comm2", "taxA"), "illumina.fq", 1)

	results := []simulate.Result{
		{Community: "comm1", Taxon: "taxA", Mate1: srcA},
		{Community: "comm1", Taxon: "taxB", Mate1: srcB},
		{Community: "comm2", Taxon: "taxA", Mate1: srcC},
	}
	opt := Options{OutputDir: out, Format: fastx.FASTQ, Threads: 2}
	files, err := MergeAll(context.Background(), opt, []string{"comm1", "comm2"}, results)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(out, "comm1", "R1.fq"),
		filepath.Join(out, "comm2", "R1.fq"),
	}, files)

	ids := readIDs(t, files[0], fastx.FASTQ)
	assert.Equal(t, []string{"taxA__SEQ0", "taxA__SEQ1", "taxB__SEQ0"}, ids,
		"index must restart per source file")
	assert.Equal(t, []string{"taxA__SEQ0"}, readIDs(t, files[1], fastx.FASTQ))

	for _, src := range []string{srcA, srcB, srcC} {
		_, err := os.Stat(src)
		assert.True(t, os.IsNotExist(err), "source not deleted: %s", src)
	}
	noPartials(t, out)
}

func TestMergePairedWritesR2(t *testing.T) {
	tmp := t.TempDir()
	out := filepath.Join(t.TempDir(), "illumina")

	r1 := writeFastq(t, filepath.Join(tmp, "c", "tax"), "illumina1.fq", 2)
	r2 := writeFastq(t, filepath.Join(tmp, "c", "tax"), "illumina2.fq", 2)

	results := []simulate.Result{{Community: "c", Taxon: "tax", Mate1: r1, Mate2: r2}}
	files, err := MergeAll(context.Background(), Options{OutputDir: out, Format: fastx.FASTQ}, []string{"c"}, results)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(out, "c", "R2.fq"), files[1])
	assert.Equal(t, []string{"tax__SEQ0", "tax__SEQ1"}, readIDs(t, files[1], fastx.FASTQ))

	for _, src := range []string{r1, r2} {
		_, err := os.Stat(src)
		assert.True(t, os.IsNotExist(err))
	}
}

func TestMergeMixedPairingSkipsR2(t *testing.T) {
	tmp := t.TempDir()
	out := filepath.Join(t.TempDir(), "illumina")

	p1 := writeFastq(t, filepath.Join(tmp, "c", "taxA"), "illumina1.fq", 1)
	p2 := writeFastq(t, filepath.Join(tmp, "c", "taxA"), "illumina2.fq", 1)
	u1 := writeFastq(t, filepath.Join(tmp, "c", "taxB"), "illumina.fq", 1)

	results := []simulate.Result{
		{Community: "c", Taxon: "taxA", Mate1: p1, Mate2: p2},
		{Community: "c", Taxon: "taxB", Mate1: u1},
	}
	files, err := MergeAll(context.Background(), Options{OutputDir: out, Format: fastx.FASTQ}, []string{"c"}, results)
	require.NoError(t, err)
	require.Len(t, files, 1, "mixed pairing must not produce an R2")

	// The unconsumed mate file stays for scratch cleanup.
	_, err = os.Stat(p2)
	assert.NoError(t, err)
}

func TestMergeFailureIsTransactional(t *testing.T) {
	tmp := t.TempDir()
	out := filepath.Join(t.TempDir(), "illumina")

	good := writeFastq(t, filepath.Join(tmp, "c", "taxA"), "illumina.fq", 1)
	results := []simulate.Result{
		{Community: "c", Taxon: "taxA", Mate1: good},
		{Community: "c", Taxon: "taxB", Mate1: filepath.Join(tmp, "c", "taxB", "missing.fq")},
	}
	_, err := MergeAll(context.Background(), Options{OutputDir: out, Format: fastx.FASTQ}, []string{"c"}, results)
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(out, "c", "R1.fq"))
	assert.True(t, os.IsNotExist(statErr), "partial destination visible")
	_, statErr = os.Stat(good)
	assert.NoError(t, statErr, "sources must survive a failed merge")
	noPartials(t, out)
}

func TestMergeGzip(t *testing.T) {
	tmp := t.TempDir()
	out := filepath.Join(t.TempDir(), "pacbio")

	src := writeFastq(t, filepath.Join(tmp, "c", "tax"), "pacbio.fastq", 3)
	results := []simulate.Result{{Community: "c", Taxon: "tax", Mate1: src}}
	files, err := MergeAll(context.Background(), Options{OutputDir: out, Format: fastx.FASTQ, Gzip: true}, []string{"c"}, results)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(out, "c", "R1.fq.gz")}, files)
	assert.Len(t, readIDs(t, files[0], fastx.FASTQ), 3)
}

func TestMergeFasta(t *testing.T) {
	tmp := t.TempDir()
	out := filepath.Join(t.TempDir(), "nanopore")

	src := writeFasta(t, filepath.Join(tmp, "c", "tax"), "nanopore.fa", 2)
	results := []simulate.Result{{Community: "c", Taxon: "tax", Mate1: src}}
	files, err := MergeAll(context.Background(), Options{OutputDir: out, Format: fastx.FASTA}, []string{"c"}, results)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(out, "c", "R1.fa")}, files)
	assert.Equal(t, []string{"tax__SEQ0", "tax__SEQ1"}, readIDs(t, files[0], fastx.FASTA))
}
