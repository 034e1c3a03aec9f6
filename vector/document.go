package vector

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
)

// Document is the count vector of one source document. It is immutable.
type Document struct {
	label   Label
	source  string
	counts  []int
	nonZero *roaring.Bitmap
}

// NewDocument returns a Document with a copy of counts.
// It returns an error if a count is negative.
func NewDocument(label Label, counts []int) (*Document, error) {
	c := make([]int, len(counts))
	nz := roaring.New()
	for i, n := range counts {
		if n < 0 {
			return nil, fmt.Errorf("vector: negative count %d at index %d", n, i)
		}
		c[i] = n
		if n > 0 {
			nz.Add(uint32(i))
		}
	}
	return &Document{label: label, counts: c, nonZero: nz}, nil
}

// Label returns the document's class.
func (d *Document) Label() Label {
	return d.label
}

// Source returns the archive entry the document was read from, if any.
func (d *Document) Source() string {
	return d.source
}

// Len returns the number of feature positions, the vocabulary size the
// document was built against.
func (d *Document) Len() int {
	return len(d.counts)
}

// Count returns the count at feature index i.
func (d *Document) Count(i int) int {
	return d.counts[i]
}

// Counts returns a copy of the dense counts.
func (d *Document) Counts() []int {
	out := make([]int, len(d.counts))
	copy(out, d.counts)
	return out
}

// NonZero returns the number of non-zero features.
func (d *Document) NonZero() int {
	return int(d.nonZero.GetCardinality())
}

// Each calls fn for every non-zero feature in ascending index order until
// fn returns false.
func (d *Document) Each(fn func(index, count int) bool) {
	d.nonZero.Iterate(func(x uint32) bool {
		return fn(int(x), d.counts[x])
	})
}
