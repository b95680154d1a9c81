// Package castagnoli implements the portable slicing-by-8 CRC-32C engine.
package castagnoli

import "sync"

// Polynomial is the Castagnoli polynomial 0x1EDC6F41 in reversed bit order.
const Polynomial = 0x82F63B78

// Table is the slicing-by-8 lookup table. Row 0 is the classic byte-wise
// table; row j folds a byte that sits j positions further from the end of
// an 8-byte word.
type Table [8][256]uint32

// MakeTable builds a fresh table from Polynomial.
func MakeTable() *Table {
	t := new(Table)

	for i := 0; i < 256; i++ {
		crc := uint32(i)
		for j := 0; j < 8; j++ {
			if crc&1 == 1 {
				crc = (crc >> 1) ^ Polynomial
			} else {
				crc >>= 1
			}
		}
		t[0][i] = crc
	}

	for i := 0; i < 256; i++ {
		crc := t[0][i]
		for j := 1; j < 8; j++ {
			crc = t[0][crc&0xFF] ^ (crc >> 8)
			t[j][i] = crc
		}
	}

	return t
}

// defaultTable is built on first use and only read afterwards.
var defaultTable = sync.OnceValue(MakeTable)

// Default returns a copy of the process-wide table.
func Default() *Table {
	t := *defaultTable()
	return &t
}
