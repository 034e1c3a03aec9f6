package vocab

import (
	"context"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/arffconv/archive"
	"github.com/hupe1980/arffconv/blobstore"
	"github.com/hupe1980/arffconv/testutil"
)

func openFixture(t *testing.T, entries ...testutil.ZipEntry) *archive.Archive {
	t.Helper()
	return openData(t, testutil.BuildZip(t, entries...))
}

func openData(t *testing.T, data []byte) *archive.Archive {
	t.Helper()

	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(context.Background(), "train.zip", data))
	a, err := archive.OpenFrom(context.Background(), store, "train.zip")
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestBuilder(t *testing.T) {
	b := NewBuilder()
	b.AddLine("buy now")
	b.AddLine("buy cheap now")
	assert.Equal(t, 3, b.Len())

	v := b.Build()
	assert.Equal(t, []string{"buy", "now", "cheap"}, v.Words())
	assert.Equal(t, 3, v.Len())
	assert.Equal(t, "cheap", v.At(2))

	i, ok := v.Index("now")
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = v.Index("free")
	assert.False(t, ok)
}

func TestBuilder_EmptyTokens(t *testing.T) {
	b := NewBuilder()
	b.AddLine("a  b")
	b.AddLine("")
	b.AddLine(" ")

	v := b.Build()
	assert.Equal(t, []string{"a", "", "b"}, v.Words())

	i, ok := v.Index("")
	assert.True(t, ok)
	assert.Equal(t, 1, i)
}

func TestVocabulary_Immutable(t *testing.T) {
	v := New([]string{"x", "y", "x"})
	words := v.Words()
	words[0] = "mutated"
	assert.Equal(t, []string{"x", "y"}, v.Words())
}

func TestVocabulary_Nil(t *testing.T) {
	var v *Vocabulary
	assert.Equal(t, 0, v.Len())
	assert.Nil(t, v.Words())
	_, ok := v.Index("a")
	assert.False(t, ok)
}

func TestFromArchive(t *testing.T) {
	a := openFixture(t,
		testutil.ZipEntry{Name: "ham/0001.ham.txt", Body: "buy now\n"},
		testutil.ZipEntry{Name: "spam/0001.spam.txt", Body: "buy cheap now\n"},
		testutil.ZipEntry{Name: "README.md", Body: "ignored words\n"},
	)

	v, err := FromArchive(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, []string{"buy", "now", "cheap"}, v.Words())
}

func TestFromArchive_Deterministic(t *testing.T) {
	rng := testutil.NewRNG(42)
	words := rng.Words(200)
	entries := rng.Corpus(words, 15, 15)
	data := testutil.BuildZip(t, entries...)

	v1, err := FromArchive(context.Background(), openData(t, data))
	require.NoError(t, err)
	v2, err := FromArchive(context.Background(), openData(t, data))
	require.NoError(t, err)
	assert.Equal(t, v1.Words(), v2.Words())

	// every distinct token appears exactly once, in first-seen order
	var want []string
	seen := make(map[string]bool)
	for _, e := range entries {
		for _, line := range testutil.Lines(e.Body) {
			for _, tok := range archive.Split(line) {
				if !seen[tok] {
					seen[tok] = true
					want = append(want, tok)
				}
			}
		}
	}
	assert.Equal(t, want, v1.Words())
}

func TestFromArchive_PartialOnEntryFailure(t *testing.T) {
	body := "alpha beta\ngamma delta\n"
	data := testutil.BuildZip(t,
		testutil.ZipEntry{Name: "bad.ham.txt", Body: body, Store: true},
		testutil.ZipEntry{Name: "good.spam.txt", Body: "omega\n"},
	)
	data = testutil.CorruptEntry(t, data, "bad.ham.txt", body)

	v, err := FromArchive(context.Background(), openData(t, data))
	require.Error(t, err)
	assert.ErrorIs(t, err, zip.ErrChecksum)
	assert.True(t, strings.Contains(err.Error(), "bad.ham.txt"))

	words := v.Words()
	assert.Contains(t, words, "alpha")
	assert.Contains(t, words, "omega")
}

func TestFromArchive_Canceled(t *testing.T) {
	a := openFixture(t, testutil.ZipEntry{Name: "a.ham.txt", Body: "x\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v, err := FromArchive(ctx, a)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, v.Len())
}
