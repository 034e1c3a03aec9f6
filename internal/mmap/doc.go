// Package mmap maps archive files read-only into memory.
//
// Zip archives are read twice per entry (central directory, then local header
// and payload) and the training archive of a family is opened once per
// pipeline stage. Mapping the file turns those reads into page-cache hits.
//
//	m, err := mmap.Open("dataset/ZipFiles/enron1_train.zip")
//	if err != nil { ... }
//	defer m.Close()
//
//	zr, err := zip.NewReader(m, int64(m.Size()))
//
// Empty files are represented by a Mapping with no data; ReadAt returns
// io.EOF immediately.
package mmap
