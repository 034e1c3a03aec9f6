package archive

import (
	"bufio"
	"context"
	"io"
	"math"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/hupe1980/arffconv/blobstore"
	"github.com/hupe1980/arffconv/resource"
)

// initialLineBuffer is the scanner's starting buffer; it grows up to the
// entry's size.
const initialLineBuffer = 64 * 1024

// Option configures an Archive.
type Option func(*options)

type options struct {
	rc *resource.Controller
}

// WithController rate-limits entry reads with the controller's IO budget.
func WithController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

// Archive is an opened zip archive.
type Archive struct {
	name   string
	zr     *zip.Reader
	rc     *resource.Controller
	closer io.Closer
}

// Open reads the central directory of the zip archive in blob.
// The caller keeps ownership of blob.
func Open(blob blobstore.Blob, name string, optFns ...Option) (*Archive, error) {
	opts := options{}
	for _, fn := range optFns {
		fn(&opts)
	}

	zr, err := zip.NewReader(blob, blob.Size())
	if err != nil {
		return nil, &EntryError{Archive: name, Err: err}
	}

	return &Archive{
		name: name,
		zr:   zr,
		rc:   opts.rc,
	}, nil
}

// OpenFrom opens the named blob in store and reads it as a zip archive.
// Close releases the blob.
func OpenFrom(ctx context.Context, store blobstore.BlobStore, name string, optFns ...Option) (*Archive, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, &EntryError{Archive: name, Err: err}
	}

	a, err := Open(blob, name, optFns...)
	if err != nil {
		_ = blob.Close()
		return nil, err
	}
	a.closer = blob
	return a, nil
}

// Name returns the archive name.
func (a *Archive) Name() string {
	return a.name
}

// Close releases the underlying blob if the archive owns it.
func (a *Archive) Close() error {
	if a.closer == nil {
		return nil
	}
	c := a.closer
	a.closer = nil
	return c.Close()
}

// Entries returns the non-directory entries whose names match m, in
// central-directory order.
func (a *Archive) Entries(m Matcher) []*Entry {
	var entries []*Entry
	for _, f := range a.zr.File {
		if strings.HasSuffix(f.Name, "/") {
			continue
		}
		if !m.Match(f.Name) {
			continue
		}
		entries = append(entries, &Entry{archive: a, file: f})
	}
	return entries
}

// Entry is one file inside an Archive.
type Entry struct {
	archive *Archive
	file    *zip.File
}

// Name returns the entry's full path inside the archive.
func (e *Entry) Name() string {
	return e.file.Name
}

// Size returns the uncompressed size recorded in the central directory.
func (e *Entry) Size() uint64 {
	return e.file.UncompressedSize64
}

// ScanLines calls fn for every line of the entry. Lines passed to fn before
// a read failure stay delivered. A non-nil error from fn stops the scan and
// is returned as is; read failures are returned as *EntryError.
func (e *Entry) ScanLines(ctx context.Context, fn func(line string) error) error {
	rc, err := e.file.Open()
	if err != nil {
		return e.wrap(err)
	}
	defer rc.Close()

	var r io.Reader = rc
	if e.archive.rc != nil {
		r = resource.NewRateLimitedReader(ctx, rc, e.archive.rc)
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, initialLineBuffer), lineLimit(e.Size()))
	sc.Split(scanLines)

	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return e.wrap(err)
		}
		if err := fn(sc.Text()); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return e.wrap(err)
	}
	return nil
}

// Lines returns all lines of the entry. On a read failure the lines read so
// far are returned together with the error.
func (e *Entry) Lines(ctx context.Context) ([]string, error) {
	var lines []string
	err := e.ScanLines(ctx, func(line string) error {
		lines = append(lines, line)
		return nil
	})
	return lines, err
}

// lineLimit bounds the scanner buffer so that a single line may span the
// whole entry. The zip reader rejects entries longer than their recorded size.
func lineLimit(size uint64) int {
	if size >= math.MaxInt-1 {
		return math.MaxInt
	}
	return max(int(size)+1, bufio.MaxScanTokenSize)
}

func (e *Entry) wrap(err error) error {
	return &EntryError{Archive: e.archive.name, Entry: e.file.Name, Err: err}
}

// scanLines is a bufio.SplitFunc that ends lines at "\n", "\r\n" or "\r".
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	for i, b := range data {
		switch b {
		case '\n':
			return i + 1, data[:i], nil
		case '\r':
			if i+1 < len(data) {
				if data[i+1] == '\n' {
					return i + 2, data[:i], nil
				}
				return i + 1, data[:i], nil
			}
			if !atEOF {
				// need one more byte to tell "\r" from "\r\n"
				return 0, nil, nil
			}
			return i + 1, data[:i], nil
		}
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
