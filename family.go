package arffconv

import (
	"context"
	"strings"

	"github.com/hupe1980/arffconv/blobstore"
)

const (
	trainSuffix = "_train"
	testSuffix  = "_test"
	zipExt      = ".zip"
)

// Family is a train/test pair of archives sharing one vocabulary.
// Train and Test are relation names; the archives are "<relation>.zip"
// in the input store and the outputs "<relation>.arff".
type Family struct {
	Name  string `json:"name" yaml:"name"`
	Train string `json:"train" yaml:"train"`
	Test  string `json:"test" yaml:"test"`
}

// NewFamily returns the family name with relations "<name>_train" and
// "<name>_test".
func NewFamily(name string) Family {
	return Family{
		Name:  name,
		Train: name + trainSuffix,
		Test:  name + testSuffix,
	}
}

// DefaultFamilies returns the three dataset families converted when no
// others are given: enron1, enron4 and hw2.
func DefaultFamilies() []Family {
	return []Family{
		NewFamily("enron1"),
		NewFamily("enron4"),
		NewFamily("hw2"),
	}
}

// DiscoverFamilies lists store and returns a Family for every
// "<name>_train.zip" that has a matching "<name>_test.zip", sorted by name.
func DiscoverFamilies(ctx context.Context, store blobstore.BlobStore) ([]Family, error) {
	names, err := store.List(ctx, "")
	if err != nil {
		return nil, err
	}

	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}

	var families []Family
	for _, n := range names {
		base, ok := strings.CutSuffix(n, trainSuffix+zipExt)
		if !ok || base == "" {
			continue
		}
		if present[base+testSuffix+zipExt] {
			families = append(families, NewFamily(base))
		}
	}
	return families, nil
}

func archiveName(relation string) string {
	return relation + zipExt
}
