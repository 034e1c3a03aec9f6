// Package testutil provides testing utilities for arffconv.
//
// This package is intended for use in tests only.
// It provides helpers for building zip fixtures, generating random
// ham/spam corpora, and computing reference count vectors.
//
// # Zip Fixtures
//
//	blob := testutil.BuildZip(t,
//	    testutil.ZipEntry{Name: "ham/0001.ham.txt", Body: "buy now\n"},
//	    testutil.ZipEntry{Name: "spam/0001.spam.txt", Body: "buy cheap now\n"},
//	)
//
// # Random Corpora
//
//	rng := testutil.NewRNG(seed)
//	words := rng.Words(500)
//	entries := rng.Corpus(words, 20, 20)   // 20 ham and 20 spam documents
//
// # Reference Vectors (Ground Truth)
//
//	counts := testutil.ExactCounts(vocabulary, lines)
package testutil
