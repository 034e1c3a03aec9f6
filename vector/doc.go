// Package vector turns labeled documents into word-count vectors over a
// fixed vocabulary.
//
// A Document stores its dense counts together with a roaring bitmap of the
// non-zero positions, so sparse serializers walk only the populated
// features, in ascending index order. Tokens missing from the vocabulary
// are dropped; vectorizing never grows the vocabulary.
//
//	vz := vector.New(vocabulary)
//	ham, err := vz.FromArchive(ctx, train, vector.Ham)
package vector
