package main

type Cell int

const (
	CellEmpty Cell = iota
	CellWhiteMan
	CellWhiteKing
	CellBlackMan
	CellBlackKing
)

// Board is an N×N grid of cells. White sits on the high-y ranks and moves
// toward y=0, Black sits on the low-y ranks and moves toward y=size-1.
// Pieces live on dark squares only ((x+y)%2 != 0).
type Board struct {
	size  int
	cells []Cell
}

func NewBoard(size, startingRows int) Board {
	b := Board{}
	b.Reset(size, startingRows)
	return b
}

func (b *Board) Reset(size, startingRows int) {
	b.size = size
	b.cells = make([]Cell, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x+y)%2 == 0 {
				continue
			}
			if y < startingRows {
				b.cells[y*size+x] = CellBlackMan
			} else if y >= size-startingRows {
				b.cells[y*size+x] = CellWhiteMan
			}
		}
	}
}

// At returns CellEmpty for out-of-range coordinates so ray walks and
// neighbor probes never need their own bounds checks.
func (b Board) At(x, y int) Cell {
	if !b.InBounds(x, y) {
		return CellEmpty
	}
	return b.cells[y*b.size+x]
}

// Set ignores out-of-range coordinates.
func (b *Board) Set(x, y int, value Cell) {
	if !b.InBounds(x, y) {
		return
	}
	b.cells[y*b.size+x] = value
}

func (b Board) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.size && y < b.size
}

func (b Board) Size() int {
	return b.size
}

func (b Board) Clone() Board {
	clone := Board{size: b.size}
	clone.cells = make([]Cell, len(b.cells))
	copy(clone.cells, b.cells)
	return clone
}

func (b Board) CountPieces(player PlayerColor) int {
	count := 0
	for _, cell := range b.cells {
		if cell.BelongsTo(player) {
			count++
		}
	}
	return count
}

func (c Cell) IsWhite() bool {
	return c == CellWhiteMan || c == CellWhiteKing
}

func (c Cell) IsBlack() bool {
	return c == CellBlackMan || c == CellBlackKing
}

func (c Cell) IsKing() bool {
	return c == CellWhiteKing || c == CellBlackKing
}

func (c Cell) BelongsTo(player PlayerColor) bool {
	if player == PlayerWhite {
		return c.IsWhite()
	}
	return c.IsBlack()
}

func (c Cell) String() string {
	switch c {
	case CellWhiteMan:
		return "WhiteMan"
	case CellWhiteKing:
		return "WhiteKing"
	case CellBlackMan:
		return "BlackMan"
	case CellBlackKing:
		return "BlackKing"
	default:
		return "Empty"
	}
}
