package chess

// Direction offsets for piece movement.
var (
	knightOffsets = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs  = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs  = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

// pseudoLegalMoves returns every destination the piece on from may move to
// according to its movement pattern and blocking rules, without regard to
// whether the move exposes its own king.
//
// In attack-probe mode the same-color destination filter is skipped: the
// probe only asks whether the piece can reach a square, not whether it could
// legally land there as a capture.
func pseudoLegalMoves(b *Board, from Square, attackProbe bool) []Square {
	p := b.At(from)
	if p.IsEmpty() {
		return nil
	}

	switch p.Type {
	case Pawn:
		return pawnMoves(b, from, p.Color, attackProbe)
	case Knight:
		return offsetMoves(b, from, p.Color, knightOffsets, attackProbe)
	case Bishop:
		return slidingMoves(b, from, p.Color, diagonalDirs, attackProbe)
	case Rook:
		return slidingMoves(b, from, p.Color, straightDirs, attackProbe)
	case Queen:
		dirs := append(append([][2]int{}, diagonalDirs...), straightDirs...)
		return slidingMoves(b, from, p.Color, dirs, attackProbe)
	case King:
		return offsetMoves(b, from, p.Color, kingOffsets, attackProbe)
	}
	return nil
}

// canOccupy reports whether mover may end a move on a square holding target.
func canOccupy(target Piece, mover Color, attackProbe bool) bool {
	return target.IsEmpty() || target.Color != mover || attackProbe
}

func pawnMoves(b *Board, from Square, color Color, attackProbe bool) []Square {
	var moves []Square
	dir := pawnDirection(color)

	one := Square{File: from.File, Rank: from.Rank + dir}
	if one.InBounds() && b.At(one).IsEmpty() {
		moves = append(moves, one)
		two := Square{File: from.File, Rank: from.Rank + 2*dir}
		if from.Rank == pawnHomeRank(color) && two.InBounds() && b.At(two).IsEmpty() {
			moves = append(moves, two)
		}
	}

	for _, df := range []int{-1, 1} {
		diag := Square{File: from.File + df, Rank: from.Rank + dir}
		if !diag.InBounds() {
			continue
		}
		target := b.At(diag)
		if target.IsEmpty() {
			continue
		}
		if target.Color != color || attackProbe {
			moves = append(moves, diag)
		}
	}
	return moves
}

func offsetMoves(b *Board, from Square, color Color, offsets [][2]int, attackProbe bool) []Square {
	var moves []Square
	for _, off := range offsets {
		to := Square{File: from.File + off[0], Rank: from.Rank + off[1]}
		if to.InBounds() && canOccupy(b.At(to), color, attackProbe) {
			moves = append(moves, to)
		}
	}
	return moves
}

func slidingMoves(b *Board, from Square, color Color, dirs [][2]int, attackProbe bool) []Square {
	var moves []Square
	for _, dir := range dirs {
		to := Square{File: from.File + dir[0], Rank: from.Rank + dir[1]}
		for to.InBounds() {
			target := b.At(to)
			if target.IsEmpty() {
				moves = append(moves, to)
				to = Square{File: to.File + dir[0], Rank: to.Rank + dir[1]}
				continue
			}
			if target.Color != color || attackProbe {
				moves = append(moves, to)
			}
			break
		}
	}
	return moves
}
