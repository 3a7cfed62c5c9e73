package board

// Rank is the exponent stored in a cell. Zero means the cell is empty.
type Rank uint8

// Empty reports whether the cell holds no tile.
func (r Rank) Empty() bool {
	return r == 0
}

// Value returns the displayed tile value, 2^(r-1). A fresh tile shows 1.
func (r Rank) Value() int {
	if r == 0 {
		return 0
	}
	return 1 << (r - 1)
}

// ClassicValue returns 2^r, so a fresh tile shows 2.
func (r Rank) ClassicValue() int {
	if r == 0 {
		return 0
	}
	return 1 << r
}
