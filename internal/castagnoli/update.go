package castagnoli

import (
	"encoding/binary"
	"unsafe"
)

// Checksum returns the CRC-32C of p using the process-wide table.
func Checksum(p []byte) uint32 {
	return Update(0, p)
}

// Update extends the finished checksum crc with p using the process-wide
// table. Passing the result of a previous call as crc continues that
// checksum as if both inputs were one buffer.
func Update(crc uint32, p []byte) uint32 {
	return UpdateTable(crc, defaultTable(), p)
}

// UpdateTable is Update with an explicit table.
func UpdateTable(seed uint32, tab *Table, p []byte) uint32 {
	if len(p) == 0 {
		return seed
	}

	// Widened so the lane shifts below never touch sign or width limits.
	crc := uint64(seed) ^ 0xFFFFFFFF

	// Fold single bytes until p starts on an 8-byte boundary.
	for len(p) > 0 && uintptr(unsafe.Pointer(unsafe.SliceData(p)))&7 != 0 {
		crc = uint64(tab[0][byte(crc)^p[0]]) ^ (crc >> 8)
		p = p[1:]
	}

	// The word is decoded little-endian, so lane k is always input byte k
	// whatever the host byte order.
	for len(p) >= 8 {
		crc ^= binary.LittleEndian.Uint64(p)
		crc = uint64(tab[7][byte(crc)] ^
			tab[6][byte(crc>>8)] ^
			tab[5][byte(crc>>16)] ^
			tab[4][byte(crc>>24)] ^
			tab[3][byte(crc>>32)] ^
			tab[2][byte(crc>>40)] ^
			tab[1][byte(crc>>48)] ^
			tab[0][byte(crc>>56)])
		p = p[8:]
	}

	for _, b := range p {
		crc = uint64(tab[0][byte(crc)^b]) ^ (crc >> 8)
	}

	return uint32(crc ^ 0xFFFFFFFF)
}
