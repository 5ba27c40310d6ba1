package main

// diagonals in a stable order; dy<0 is toward White's far rank.
var diagonals = [4][2]int{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}

type Rules struct {
	settings GameSettings
}

func NewRules(settings GameSettings) Rules {
	return Rules{settings: settings}
}

// LegalMoves enumerates every move for the piece at (x,y); empty when the
// cell holds no piece. Men step forward only but capture in all four
// diagonals. Kings fly: any number of empty cells along a ray, and any empty
// landing cell past the first enemy piece on the ray.
func (r Rules) LegalMoves(board Board, x, y int) []Move {
	cell := board.At(x, y)
	if cell == CellEmpty {
		return nil
	}
	if cell.IsKing() {
		return r.kingMoves(board, x, y, cell)
	}
	return r.manMoves(board, x, y, cell)
}

func (r Rules) manMoves(board Board, x, y int, cell Cell) []Move {
	moves := make([]Move, 0, 4)
	forward := r.forwardDir(playerOf(cell))
	for _, d := range diagonals {
		if d[1] != forward {
			continue
		}
		tx, ty := x+d[0], y+d[1]
		if board.InBounds(tx, ty) && board.At(tx, ty) == CellEmpty {
			moves = append(moves, Move{X: tx, Y: ty})
		}
	}
	for _, d := range diagonals {
		mx, my := x+d[0], y+d[1]
		lx, ly := x+2*d[0], y+2*d[1]
		if !board.InBounds(lx, ly) {
			continue
		}
		if isEnemy(board.At(mx, my), cell) && board.At(lx, ly) == CellEmpty {
			moves = append(moves, Move{X: lx, Y: ly, Capture: true, CapturedX: mx, CapturedY: my})
		}
	}
	return moves
}

func (r Rules) kingMoves(board Board, x, y int, cell Cell) []Move {
	moves := make([]Move, 0, 8)
	for _, d := range diagonals {
		capturedX, capturedY := -1, -1
		seenEnemy := false
		cx, cy := x+d[0], y+d[1]
		for board.InBounds(cx, cy) {
			target := board.At(cx, cy)
			if target == CellEmpty {
				if seenEnemy {
					moves = append(moves, Move{X: cx, Y: cy, Capture: true, CapturedX: capturedX, CapturedY: capturedY})
				} else {
					moves = append(moves, Move{X: cx, Y: cy})
				}
			} else if !seenEnemy && isEnemy(target, cell) {
				seenEnemy = true
				capturedX, capturedY = cx, cy
			} else {
				// own piece, or a second piece behind the capture target
				break
			}
			cx += d[0]
			cy += d[1]
		}
	}
	return moves
}

// HasCaptureMoves reports whether the piece at (x,y) has at least one
// capture, without materializing the move list.
func (r Rules) HasCaptureMoves(board Board, x, y int) bool {
	cell := board.At(x, y)
	if cell == CellEmpty {
		return false
	}
	if cell.IsKing() {
		for _, d := range diagonals {
			seenEnemy := false
			cx, cy := x+d[0], y+d[1]
			for board.InBounds(cx, cy) {
				target := board.At(cx, cy)
				if target == CellEmpty {
					if seenEnemy {
						return true
					}
				} else if !seenEnemy && isEnemy(target, cell) {
					seenEnemy = true
				} else {
					break
				}
				cx += d[0]
				cy += d[1]
			}
		}
		return false
	}
	for _, d := range diagonals {
		mx, my := x+d[0], y+d[1]
		lx, ly := x+2*d[0], y+2*d[1]
		if board.InBounds(lx, ly) && isEnemy(board.At(mx, my), cell) && board.At(lx, ly) == CellEmpty {
			return true
		}
	}
	return false
}

// HasAnyCaptureMoves scans the whole board for player, short-circuiting on
// the first capture found. This drives the forced-capture rule.
func (r Rules) HasAnyCaptureMoves(board Board, player PlayerColor) bool {
	size := board.Size()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if board.At(x, y).BelongsTo(player) && r.HasCaptureMoves(board, x, y) {
				return true
			}
		}
	}
	return false
}

func (r Rules) HasAnyMoves(board Board, player PlayerColor) bool {
	size := board.Size()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if board.At(x, y).BelongsTo(player) && len(r.LegalMoves(board, x, y)) > 0 {
				return true
			}
		}
	}
	return false
}

// CountLegalMoves is the mobility term used by the static evaluation.
func (r Rules) CountLegalMoves(board Board, player PlayerColor) int {
	size := board.Size()
	count := 0
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if board.At(x, y).BelongsTo(player) {
				count += len(r.LegalMoves(board, x, y))
			}
		}
	}
	return count
}

func (r Rules) forwardDir(player PlayerColor) int {
	if player == PlayerWhite {
		return -1
	}
	return 1
}

func (r Rules) promotionRank(player PlayerColor) int {
	if player == PlayerWhite {
		return 0
	}
	return r.settings.BoardSize - 1
}

func playerOf(cell Cell) PlayerColor {
	if cell.IsWhite() {
		return PlayerWhite
	}
	return PlayerBlack
}

func isEnemy(target, cell Cell) bool {
	if target == CellEmpty {
		return false
	}
	return target.IsWhite() != cell.IsWhite()
}

func promotedCell(cell Cell) Cell {
	switch cell {
	case CellWhiteMan:
		return CellWhiteKing
	case CellBlackMan:
		return CellBlackKing
	default:
		return cell
	}
}

func filterCaptures(moves []Move) []Move {
	captures := moves[:0:0]
	for _, move := range moves {
		if move.Capture {
			captures = append(captures, move)
		}
	}
	return captures
}
