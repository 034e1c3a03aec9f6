// Package hash computes the CRC32-Castagnoli checksums recorded for every
// written output, so a report can be checked against the stored files.
package hash
