package testutil

import (
	"bytes"
	"io"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWords(t *testing.T) {
	rng := NewRNG(4711)

	words := rng.Words(100)
	assert.Len(t, words, 100)

	seen := make(map[string]bool)
	for _, w := range words {
		assert.False(t, seen[w], "duplicate word %q", w)
		seen[w] = true
	}

	assert.Equal(t, words, NewRNG(4711).Words(100))
}

func TestZipf(t *testing.T) {
	rng := NewRNG(1)
	for range 100 {
		v := rng.Zipf(10, 1.0)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 10)
	}
	assert.Equal(t, 0, rng.Zipf(1, 1.0))
}

func TestBuildZip(t *testing.T) {
	data := BuildZip(t,
		ZipEntry{Name: "ham/"},
		ZipEntry{Name: "ham/0001.ham.txt", Body: "buy now\n"},
		ZipEntry{Name: "spam/0001.spam.txt", Body: "buy cheap now\n", Store: true},
	)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 3)
	assert.Equal(t, "ham/", zr.File[0].Name)

	rc, err := zr.File[2].Open()
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "buy cheap now\n", string(body))
}

func TestCorruptEntry(t *testing.T) {
	data := BuildZip(t, ZipEntry{Name: "a.ham.txt", Body: "hello world\n", Store: true})
	bad := CorruptEntry(t, data, "a.ham.txt", "hello world\n")

	zr, err := zip.NewReader(bytes.NewReader(bad), int64(len(bad)))
	require.NoError(t, err)
	rc, err := zr.File[0].Open()
	require.NoError(t, err)
	_, err = io.ReadAll(rc)
	assert.ErrorIs(t, err, zip.ErrChecksum)
}

func TestExactCounts(t *testing.T) {
	assert.Equal(t, []int{2, 1, 0}, ExactCounts([]string{"a", "b", "c"}, []string{"a b a"}))
	assert.Equal(t, []int{1, 0}, ExactCounts([]string{"", "x"}, []string{""}))
	assert.Equal(t, []int{0, 0}, ExactCounts([]string{"a", "b"}, []string{"zzz"}))
}

func TestLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c", ""}, Lines("a\r\nb\rc\n\n"))
	assert.Nil(t, Lines(""))
	assert.Equal(t, []string{"x"}, Lines("x"))
}

func TestCorpus(t *testing.T) {
	rng := NewRNG(7)
	entries := rng.Corpus(rng.Words(50), 3, 2)
	require.Len(t, entries, 5)
	assert.Equal(t, "ham/0000.ham.txt", entries[0].Name)
	assert.Equal(t, "spam/0001.spam.txt", entries[4].Name)
}
