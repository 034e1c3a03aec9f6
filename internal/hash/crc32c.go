package hash

import (
	"fmt"
	"hash/crc32"
)

var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// CRC32C computes the CRC32-Castagnoli checksum of data.
func CRC32C(data []byte) uint32 {
	return crc32.Checksum(data, crc32cTable)
}

// Hex formats a checksum as eight lowercase hex digits.
func Hex(sum uint32) string {
	return fmt.Sprintf("%08x", sum)
}
