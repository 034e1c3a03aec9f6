package archive

import "fmt"

// EntryError reports a failure to open an archive or to read one of its
// entries.
type EntryError struct {
	Archive string
	// Entry is empty when the archive itself could not be opened.
	Entry string
	Err   error
}

func (e *EntryError) Error() string {
	if e.Entry == "" {
		return fmt.Sprintf("archive %s: %v", e.Archive, e.Err)
	}
	return fmt.Sprintf("archive %s: entry %s: %v", e.Archive, e.Entry, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}
