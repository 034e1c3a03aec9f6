package arffconv

import (
	"errors"
	"time"
)

// SplitResult describes one written (or attempted) ARFF output. Name is
// the output blob name including any compression suffix; CRC32C is the
// checksum of the stored bytes.
type SplitResult struct {
	Relation string `json:"relation"`
	Name     string `json:"name"`
	Ham      int    `json:"ham"`
	Spam     int    `json:"spam"`
	Bytes    int    `json:"bytes"`
	CRC32C   string `json:"crc32c,omitempty"`
	Written  bool   `json:"written"`
}

// Result describes the conversion of one family.
type Result struct {
	Family         Family        `json:"family"`
	VocabularySize int           `json:"vocabulary_size"`
	Train          SplitResult   `json:"train"`
	Test           SplitResult   `json:"test"`
	Sidecar        string        `json:"sidecar,omitempty"`
	Failures       []Failure     `json:"failures,omitempty"`
	Duration       time.Duration `json:"duration"`
}

// Report collects the results of a Run in family order.
type Report struct {
	Results []*Result `json:"results"`
}

// Failures returns every failure of the run, in the order they occurred
// within each family.
func (r *Report) Failures() []Failure {
	var out []Failure
	for _, res := range r.Results {
		if res == nil {
			continue
		}
		out = append(out, res.Failures...)
	}
	return out
}

// Failed reports whether any failure was collected.
func (r *Report) Failed() bool {
	return len(r.Failures()) > 0
}

// Err joins the errors of all failures, or returns nil.
func (r *Report) Err() error {
	var errs []error
	for _, f := range r.Failures() {
		errs = append(errs, f.Err)
	}
	return errors.Join(errs...)
}
