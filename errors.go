package arffconv

import (
	"errors"
	"fmt"

	"github.com/hupe1980/arffconv/archive"
)

var (
	// ErrNoFamilies is returned by Run when there is nothing to convert.
	ErrNoFamilies = errors.New("no dataset families")

	// ErrNilStore is returned by New when a store is missing.
	ErrNilStore = errors.New("store must not be nil")
)

// Stage names a step of the per-family pipeline.
type Stage string

const (
	StageOpen       Stage = "open"
	StageVocabulary Stage = "vocabulary"
	StageVectorize  Stage = "vectorize"
	StageWrite      Stage = "write"
	StageSidecar    Stage = "sidecar"
)

// StageError reports the failure of one pipeline stage.
//
// The original underlying error can be accessed via errors.Unwrap.
type StageError struct {
	Family   string
	Relation string
	Stage    Stage
	Err      error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", e.Family, e.Relation, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Failure is one logged-and-skipped problem of a conversion run.
type Failure struct {
	Family   string `json:"family"`
	Relation string `json:"relation"`
	Stage    Stage  `json:"stage"`
	Archive  string `json:"archive,omitempty"`
	Entry    string `json:"entry,omitempty"`
	Message  string `json:"error"`
	Err      error  `json:"-"`
}

// failures flattens err, which may be an errors.Join of entry errors, into
// one Failure per leaf.
func failures(family, relation string, stage Stage, err error) []Failure {
	if err == nil {
		return nil
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []Failure
		for _, e := range joined.Unwrap() {
			out = append(out, failures(family, relation, stage, e)...)
		}
		return out
	}

	f := Failure{
		Family:   family,
		Relation: relation,
		Stage:    stage,
		Message:  err.Error(),
		Err:      err,
	}
	var ee *archive.EntryError
	if errors.As(err, &ee) {
		f.Archive = ee.Archive
		f.Entry = ee.Entry
	}
	return []Failure{f}
}
