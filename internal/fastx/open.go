// internal/fastx/open.go
package fastx

import (
	"compress/gzip"
	"io"
	"os"
	"strings"
)

// multiReadCloser closes multiple io.Closers when Close() is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open opens a sequence file transparently decompressing gzip input.
// Detection is by magic number (1F 8B) or .gz suffix, so mislabelled
// files still read correctly.
func Open(path string) (io.ReadCloser, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var sig [2]byte
	n, _ := fh.Read(sig[:])
	_, _ = fh.Seek(0, io.SeekStart)
	if (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, fh}}, nil
	}
	return fh, nil
}

// CreateFile is a write-side counterpart used for merged read files: it
// creates path and, when gzipped, interposes a gzip stream. Close flushes
// the compressor and syncs the file so a following rename is durable.
type CreateFile struct {
	f  *os.File
	gz *gzip.Writer
	w  io.Writer
}

func Create(path string, gzipped bool) (*CreateFile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	c := &CreateFile{f: f, w: f}
	if gzipped {
		c.gz = gzip.NewWriter(f)
		c.w = c.gz
	}
	return c, nil
}

func (c *CreateFile) Write(p []byte) (int, error) { return c.w.Write(p) }

func (c *CreateFile) Close() error {
	var err error
	if c.gz != nil {
		err = c.gz.Close()
	}
	if serr := c.f.Sync(); serr != nil && err == nil {
		err = serr
	}
	if cerr := c.f.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
