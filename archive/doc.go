// Package archive reads labeled text documents out of zip archives.
//
// An Archive is opened over a blobstore.Blob, so the same code reads from a
// local memory-mapped file, an in-memory fixture, or a remote object store.
// Entries are selected with a Matcher, a full-string regular expression over
// the entry name, and streamed line by line:
//
//	a, err := archive.OpenFrom(ctx, store, "enron1_train.zip")
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//
//	for _, e := range a.Entries(archive.LabelEntries("ham")) {
//	    err := e.ScanLines(ctx, func(line string) error {
//	        tokens := archive.Split(line)
//	        ...
//	    })
//	}
//
// Line terminators are "\n", "\r\n" and "\r". Line bytes are passed through
// undecoded.
package archive
