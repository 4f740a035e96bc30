package chess

import "strings"

// Board maps every square to an optional piece. It is a plain value type:
// assigning a Board copies the whole position, which is what simulation
// relies on — a copy never aliases the live board.
type Board [8][8]Piece

// backRank is the major-piece ordering on each side's first rank.
var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns a board with all pieces on their standard initial squares.
func NewBoard() Board {
	var b Board
	for f := 0; f < 8; f++ {
		b[f][0] = Piece{Type: backRank[f], Color: White}
		b[f][1] = Piece{Type: Pawn, Color: White}
		b[f][6] = Piece{Type: Pawn, Color: Black}
		b[f][7] = Piece{Type: backRank[f], Color: Black}
	}
	return b
}

// At returns the piece on sq, or NoPiece when sq is empty or out of bounds.
func (b *Board) At(sq Square) Piece {
	if !sq.InBounds() {
		return NoPiece
	}
	return b[sq.File][sq.Rank]
}

func (b *Board) set(sq Square, p Piece) {
	b[sq.File][sq.Rank] = p
}

func (b *Board) clear(sq Square) {
	b[sq.File][sq.Rank] = NoPiece
}

// findKing locates color's king. The second return is false when no such
// king exists on the board.
func (b *Board) findKing(color Color) (Square, bool) {
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			p := b[f][r]
			if p.Type == King && p.Color == color {
				return Square{File: f, Rank: r}, true
			}
		}
	}
	return Square{}, false
}

// pawnDirection is +1 rank for white, -1 for black.
func pawnDirection(c Color) int {
	if c == White {
		return 1
	}
	return -1
}

// pawnHomeRank is the rank a pawn starts on, from which it may advance two.
func pawnHomeRank(c Color) int {
	if c == White {
		return 1
	}
	return 6
}

// promotionRank is the farthest rank in a pawn's direction of travel.
func promotionRank(c Color) int {
	if c == White {
		return 7
	}
	return 0
}

// String draws the board as ASCII, white at the bottom. Debugging aid only.
func (b *Board) String() string {
	glyphs := map[PieceType]string{
		Pawn: "p", Knight: "n", Bishop: "b", Rook: "r", Queen: "q", King: "k",
	}
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		sb.WriteByte('1' + byte(r))
		for f := 0; f < 8; f++ {
			sb.WriteByte(' ')
			p := b[f][r]
			switch {
			case p.IsEmpty():
				sb.WriteByte('.')
			case p.Color == White:
				sb.WriteString(strings.ToUpper(glyphs[p.Type]))
			default:
				sb.WriteString(glyphs[p.Type])
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
