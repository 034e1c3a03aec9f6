// Package vocab builds the ordered word dictionary of a training archive.
//
// A token's position in the Vocabulary is its feature index in every vector
// derived from it. Order is first occurrence across the archive's lines in
// entry order. Tokens are compared byte for byte; empty tokens produced by
// repeated spaces are ordinary entries.
package vocab

import (
	"context"
	"errors"

	"github.com/hupe1980/arffconv/archive"
)

// Vocabulary is an immutable ordered set of distinct tokens.
type Vocabulary struct {
	words []string
	index map[string]int
}

// New returns a Vocabulary over words, keeping the first occurrence of
// duplicates.
func New(words []string) *Vocabulary {
	b := NewBuilder()
	for _, w := range words {
		b.Add(w)
	}
	return b.Build()
}

// Len returns the number of tokens.
func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.words)
}

// At returns the token at index i.
func (v *Vocabulary) At(i int) string {
	return v.words[i]
}

// Index returns the feature index of token.
func (v *Vocabulary) Index(token string) (int, bool) {
	if v == nil {
		return 0, false
	}
	i, ok := v.index[token]
	return i, ok
}

// Words returns a copy of the tokens in index order.
func (v *Vocabulary) Words() []string {
	if v == nil {
		return nil
	}
	out := make([]string, len(v.words))
	copy(out, v.words)
	return out
}

// Builder accumulates tokens in first-seen order.
// A Builder is not safe for concurrent use.
type Builder struct {
	words []string
	index map[string]int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{index: make(map[string]int)}
}

// Add inserts token unless it is already present.
func (b *Builder) Add(token string) {
	if _, ok := b.index[token]; ok {
		return
	}
	b.index[token] = len(b.words)
	b.words = append(b.words, token)
}

// AddLine splits line on single spaces and adds every token.
func (b *Builder) AddLine(line string) {
	for _, tok := range archive.Split(line) {
		b.Add(tok)
	}
}

// Len returns the number of distinct tokens added so far.
func (b *Builder) Len() int {
	return len(b.words)
}

// Build returns the Vocabulary. The Builder must not be used afterwards.
func (b *Builder) Build() *Vocabulary {
	v := &Vocabulary{words: b.words, index: b.index}
	b.words, b.index = nil, nil
	return v
}

// FromArchive builds the vocabulary of every text entry in a.
//
// Entry failures do not stop the build: the returned vocabulary holds every
// line read before and after them, and the error joins one
// *archive.EntryError per failed entry.
func FromArchive(ctx context.Context, a *archive.Archive) (*Vocabulary, error) {
	b := NewBuilder()

	var errs []error
	for _, e := range a.Entries(archive.TextEntries) {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		err := e.ScanLines(ctx, func(line string) error {
			b.AddLine(line)
			return nil
		})
		if err != nil {
			errs = append(errs, err)
		}
	}

	return b.Build(), errors.Join(errs...)
}
