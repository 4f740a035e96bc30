package chess

// isKingAttacked reports whether color's king is attacked by any opposing
// piece. A board with no king of the queried color is treated as attacked —
// a defensive default for malformed state, not a modeled game rule.
func isKingAttacked(b *Board, color Color) bool {
	kingSq, ok := b.findKing(color)
	if !ok {
		return true
	}

	opponent := color.Opposite()
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			from := Square{File: f, Rank: r}
			p := b.At(from)
			if p.IsEmpty() || p.Color != opponent {
				continue
			}
			for _, to := range pseudoLegalMoves(b, from, true) {
				if to == kingSq {
					return true
				}
			}
		}
	}
	return false
}

// applyOnCopy simulates m on a copy of b: the piece is relocated, the source
// cleared, and a pawn landing on its promotion rank is retyped to queen so
// check detection accounts for the post-promotion piece. The input board is
// never touched.
func applyOnCopy(b Board, m Move) Board {
	p := b.At(m.From)
	b.set(m.To, p)
	b.clear(m.From)
	if p.Type == Pawn && m.To.Rank == promotionRank(p.Color) {
		b.set(m.To, Piece{Type: Queen, Color: p.Color})
	}
	return b
}

// isLegal reports whether m is a legal move for mover on b: a piece of that
// color sits on the source square, the destination is among its pseudo-legal
// moves, and simulating the move does not leave mover's own king attacked.
func isLegal(b *Board, m Move, mover Color) bool {
	if !m.From.InBounds() || !m.To.InBounds() {
		return false
	}
	p := b.At(m.From)
	if p.IsEmpty() || p.Color != mover {
		return false
	}

	found := false
	for _, to := range pseudoLegalMoves(b, m.From, false) {
		if to == m.To {
			found = true
			break
		}
	}
	if !found {
		return false
	}

	next := applyOnCopy(*b, m)
	return !isKingAttacked(&next, mover)
}

// legalMoves enumerates every legal move for color, scanning squares a1..h8
// rank by rank. The order is fixed so downstream consumers (the search's
// tie-breaking in particular) are deterministic.
func legalMoves(b *Board, color Color) []Move {
	var moves []Move
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			from := Square{File: f, Rank: r}
			p := b.At(from)
			if p.IsEmpty() || p.Color != color {
				continue
			}
			for _, to := range pseudoLegalMoves(b, from, false) {
				m := Move{From: from, To: to}
				next := applyOnCopy(*b, m)
				if !isKingAttacked(&next, color) {
					moves = append(moves, m)
				}
			}
		}
	}
	return moves
}
