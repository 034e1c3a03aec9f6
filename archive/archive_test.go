package archive

import (
	"bufio"
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/arffconv/blobstore"
	"github.com/hupe1980/arffconv/resource"
	"github.com/hupe1980/arffconv/testutil"
)

func openFixture(t *testing.T, data []byte, optFns ...Option) *Archive {
	t.Helper()

	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(context.Background(), "fixture.zip", data))

	a, err := OpenFrom(context.Background(), store, "fixture.zip", optFns...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func names(entries []*Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name()
	}
	return out
}

func TestArchive_Entries(t *testing.T) {
	data := testutil.BuildZip(t,
		testutil.ZipEntry{Name: "enron1/"},
		testutil.ZipEntry{Name: "enron1/spam/0002.spam.txt", Body: "b"},
		testutil.ZipEntry{Name: "enron1/ham/0001.ham.txt", Body: "a"},
		testutil.ZipEntry{Name: "enron1/Summary.txt", Body: "s"},
		testutil.ZipEntry{Name: "enron1/ham/0003.ham.txt", Body: "c"},
		testutil.ZipEntry{Name: "enron1/notes.md", Body: "n"},
	)
	a := openFixture(t, data)

	assert.Equal(t, "fixture.zip", a.Name())
	assert.Equal(t, []string{
		"enron1/spam/0002.spam.txt",
		"enron1/ham/0001.ham.txt",
		"enron1/Summary.txt",
		"enron1/ham/0003.ham.txt",
	}, names(a.Entries(TextEntries)))
	assert.Equal(t, []string{
		"enron1/ham/0001.ham.txt",
		"enron1/ham/0003.ham.txt",
	}, names(a.Entries(LabelEntries("ham"))))
	assert.Equal(t, []string{"enron1/spam/0002.spam.txt"}, names(a.Entries(LabelEntries("spam"))))
}

func TestEntry_Lines(t *testing.T) {
	data := testutil.BuildZip(t,
		testutil.ZipEntry{Name: "unix.ham.txt", Body: "buy now\nbuy cheap now\n"},
		testutil.ZipEntry{Name: "dos.ham.txt", Body: "a b\r\nc\r\n\r\nd"},
		testutil.ZipEntry{Name: "mac.ham.txt", Body: "x\ry\r"},
		testutil.ZipEntry{Name: "empty.ham.txt", Body: ""},
	)
	a := openFixture(t, data)
	entries := a.Entries(LabelEntries("ham"))
	require.Len(t, entries, 4)

	ctx := context.Background()
	want := [][]string{
		{"buy now", "buy cheap now"},
		{"a b", "c", "", "d"},
		{"x", "y"},
		nil,
	}
	for i, e := range entries {
		lines, err := e.Lines(ctx)
		require.NoError(t, err, e.Name())
		assert.Equal(t, want[i], lines, e.Name())
	}
	assert.Equal(t, uint64(len("buy now\nbuy cheap now\n")), entries[0].Size())
}

func TestEntry_ScanLines_LongCarriageReturnBoundary(t *testing.T) {
	// a "\r\n" pair straddling the scanner's initial buffer must still be
	// one terminator
	body := strings.Repeat("a", 64*1024-1) + "\r\nb\n"
	data := testutil.BuildZip(t, testutil.ZipEntry{Name: "long.spam.txt", Body: body})
	a := openFixture(t, data)

	lines, err := a.Entries(TextEntries)[0].Lines(context.Background())
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Len(t, lines[0], 64*1024-1)
	assert.Equal(t, "b", lines[1])
}

func TestEntry_ScanLines_LineSpanningWholeEntry(t *testing.T) {
	// no terminator at all: the only line is the whole entry
	body := strings.Repeat("spam ", 3<<20/5)
	data := testutil.BuildZip(t, testutil.ZipEntry{Name: "huge.spam.txt", Body: body})
	a := openFixture(t, data)

	lines, err := a.Entries(TextEntries)[0].Lines(context.Background())
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, body, lines[0])
}

func TestLineLimit(t *testing.T) {
	assert.Equal(t, bufio.MaxScanTokenSize, lineLimit(0))
	assert.Equal(t, bufio.MaxScanTokenSize, lineLimit(10))
	assert.Equal(t, 128<<20+1, lineLimit(128<<20))
	assert.Equal(t, math.MaxInt, lineLimit(math.MaxUint64))
}

func TestEntry_ScanLines_CorruptEntry(t *testing.T) {
	body := "first line\nsecond line\n"
	data := testutil.BuildZip(t,
		testutil.ZipEntry{Name: "bad.ham.txt", Body: body, Store: true},
		testutil.ZipEntry{Name: "good.ham.txt", Body: "fine\n"},
	)
	data = testutil.CorruptEntry(t, data, "bad.ham.txt", body)
	a := openFixture(t, data)
	entries := a.Entries(LabelEntries("ham"))
	require.Len(t, entries, 2)

	lines, err := entries[0].Lines(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, zip.ErrChecksum)

	var ee *EntryError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "fixture.zip", ee.Archive)
	assert.Equal(t, "bad.ham.txt", ee.Entry)
	assert.Contains(t, err.Error(), "entry bad.ham.txt")
	// content read before the checksum failure is kept
	assert.Equal(t, "first line", lines[0])

	lines, err = entries[1].Lines(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"fine"}, lines)
}

func TestEntry_ScanLines_CallbackError(t *testing.T) {
	data := testutil.BuildZip(t, testutil.ZipEntry{Name: "a.ham.txt", Body: "1\n2\n3\n"})
	a := openFixture(t, data)

	stop := errors.New("stop")
	var seen []string
	err := a.Entries(TextEntries)[0].ScanLines(context.Background(), func(line string) error {
		seen = append(seen, line)
		if line == "2" {
			return stop
		}
		return nil
	})
	assert.Same(t, stop, err)
	assert.Equal(t, []string{"1", "2"}, seen)
}

func TestEntry_ScanLines_Canceled(t *testing.T) {
	data := testutil.BuildZip(t, testutil.ZipEntry{Name: "a.ham.txt", Body: "1\n2\n"})
	a := openFixture(t, data)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Entries(TextEntries)[0].Lines(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEntry_ScanLines_RateLimited(t *testing.T) {
	rc := resource.NewController(resource.Config{IOLimitBytesPerSec: 1 << 20})
	data := testutil.BuildZip(t, testutil.ZipEntry{Name: "a.ham.txt", Body: "buy now\n"})
	a := openFixture(t, data, WithController(rc))

	lines, err := a.Entries(TextEntries)[0].Lines(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"buy now"}, lines)
}

func TestOpen_Errors(t *testing.T) {
	store := blobstore.NewMemoryStore()
	ctx := context.Background()

	_, err := OpenFrom(ctx, store, "missing.zip")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
	var ee *EntryError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "missing.zip", ee.Archive)
	assert.Empty(t, ee.Entry)

	require.NoError(t, store.Put(ctx, "garbage.zip", []byte("this is not a zip file")))
	_, err = OpenFrom(ctx, store, "garbage.zip")
	assert.ErrorIs(t, err, zip.ErrFormat)
	assert.Equal(t, "archive garbage.zip: "+zip.ErrFormat.Error(), err.Error())
}

func TestArchive_CloseTwice(t *testing.T) {
	a := openFixture(t, testutil.BuildZip(t, testutil.ZipEntry{Name: "a.txt", Body: "x"}))
	require.NoError(t, a.Close())
	require.NoError(t, a.Close())
}
