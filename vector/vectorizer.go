package vector

import (
	"context"
	"errors"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/arffconv/archive"
	"github.com/hupe1980/arffconv/vocab"
)

// Vectorizer maps documents onto one vocabulary.
// It is safe for concurrent use.
type Vectorizer struct {
	vocab *vocab.Vocabulary
}

// New returns a Vectorizer over v.
func New(v *vocab.Vocabulary) *Vectorizer {
	return &Vectorizer{vocab: v}
}

// Size returns the vector length, the vocabulary size.
func (vz *Vectorizer) Size() int {
	return vz.vocab.Len()
}

// Vectorize counts the tokens of lines.
func (vz *Vectorizer) Vectorize(label Label, lines []string) *Document {
	c := vz.newCounter()
	for _, line := range lines {
		c.addLine(line)
	}
	return c.document(label, "")
}

// FromArchive returns one Document per entry of a matching label, in entry
// order.
//
// An entry whose read fails part way still yields a Document holding the
// counts of the lines read before the failure. The error joins one
// *archive.EntryError per failed entry.
func (vz *Vectorizer) FromArchive(ctx context.Context, a *archive.Archive, label Label) ([]*Document, error) {
	var (
		docs []*Document
		errs []error
	)

	for _, e := range a.Entries(archive.LabelEntries(label.String())) {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		c := vz.newCounter()
		err := e.ScanLines(ctx, func(line string) error {
			c.addLine(line)
			return nil
		})
		if err != nil {
			errs = append(errs, err)
		}
		docs = append(docs, c.document(label, e.Name()))
	}

	return docs, errors.Join(errs...)
}

type counter struct {
	vocab   *vocab.Vocabulary
	counts  []int
	nonZero *roaring.Bitmap
}

func (vz *Vectorizer) newCounter() *counter {
	return &counter{
		vocab:   vz.vocab,
		counts:  make([]int, vz.vocab.Len()),
		nonZero: roaring.New(),
	}
}

func (c *counter) addLine(line string) {
	for _, tok := range archive.Split(line) {
		i, ok := c.vocab.Index(tok)
		if !ok {
			continue
		}
		if c.counts[i] == 0 {
			c.nonZero.Add(uint32(i))
		}
		c.counts[i]++
	}
}

func (c *counter) document(label Label, source string) *Document {
	c.nonZero.RunOptimize()
	return &Document{
		label:   label,
		source:  source,
		counts:  c.counts,
		nonZero: c.nonZero,
	}
}
