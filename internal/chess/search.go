package chess

// Material weights in centipawns, indexed by PieceType.
var pieceValues = [7]int{0, 100, 320, 330, 500, 900, 20000}

// materialScore sums piece values over the board, white counted positive and
// black negative. Position, mobility and king safety are ignored.
func materialScore(b *Board) int {
	score := 0
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			p := b[f][r]
			if p.IsEmpty() {
				continue
			}
			if p.Color == White {
				score += pieceValues[p.Type]
			} else {
				score -= pieceValues[p.Type]
			}
		}
	}
	return score
}

// SearchMove picks a move for the side to move by two-ply minimax over
// material, with no pruning: for each candidate move, the opponent is
// credited with its best reply, and the candidate whose worst case is least
// bad is chosen. Ties go to the earlier-enumerated move, so repeated searches
// of the same position return the same move. The second return is false when
// the side to move has no legal move.
func (e *Engine) SearchMove() (Move, bool) {
	return searchMove(&e.board, e.turn)
}

func searchMove(b *Board, side Color) (Move, bool) {
	moves := legalMoves(b, side)
	if len(moves) == 0 {
		return Move{}, false
	}

	opponent := side.Opposite()
	var best Move
	haveBest := false
	bestScore := 0

	for _, m := range moves {
		child := applyOnCopy(*b, m)

		replies := legalMoves(&child, opponent)
		var score int
		if len(replies) == 0 {
			// Opponent has no reply; score the position as it stands,
			// with no bonus even if it is a mate.
			score = materialScore(&child)
		} else {
			for i, r := range replies {
				leaf := applyOnCopy(child, r)
				s := materialScore(&leaf)
				if i == 0 || betterFor(opponent, s, score) {
					score = s
				}
			}
		}

		if !haveBest || betterFor(side, score, bestScore) {
			best = m
			bestScore = score
			haveBest = true
		}
	}
	return best, true
}

// betterFor reports whether score a is strictly better than b from color's
// point of view on the white-positive scale.
func betterFor(c Color, a, b int) bool {
	if c == White {
		return a > b
	}
	return a < b
}
