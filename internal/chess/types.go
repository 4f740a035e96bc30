package chess

import "fmt"

// Color identifies one of the two sides.
type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceType is a closed set of piece kinds. None marks an empty square.
type PieceType uint8

const (
	None PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var pieceNames = [...]string{"none", "pawn", "knight", "bishop", "rook", "queen", "king"}

func (t PieceType) String() string {
	if int(t) < len(pieceNames) {
		return pieceNames[t]
	}
	return "none"
}

// Piece is a piece type paired with its color. Pieces have no identity
// beyond type, color and the square they currently occupy.
type Piece struct {
	Type  PieceType
	Color Color
}

// NoPiece is the empty-square value.
var NoPiece = Piece{}

func (p Piece) IsEmpty() bool {
	return p.Type == None
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "empty"
	}
	return fmt.Sprintf("%s %s", p.Color, p.Type)
}

// Square is a board coordinate: file and rank, both in [0, 8).
type Square struct {
	File int
	Rank int
}

func (s Square) InBounds() bool {
	return s.File >= 0 && s.File < 8 && s.Rank >= 0 && s.Rank < 8
}

func (s Square) String() string {
	if !s.InBounds() {
		return fmt.Sprintf("(%d,%d)", s.File, s.Rank)
	}
	return fmt.Sprintf("%c%c", 'a'+s.File, '1'+s.Rank)
}

// ParseSquare converts algebraic notation ("e4") to a Square.
func ParseSquare(v string) (Square, bool) {
	if len(v) != 2 || v[0] < 'a' || v[0] > 'h' || v[1] < '1' || v[1] > '8' {
		return Square{}, false
	}
	return Square{File: int(v[0] - 'a'), Rank: int(v[1] - '1')}, true
}

// Move is an ordered pair of squares. Capture and promotion are derived
// from board contents at apply time, never stored on the move itself.
type Move struct {
	From Square
	To   Square
}

func (m Move) String() string {
	return m.From.String() + m.To.String()
}

// HistoryEntry records an applied move so it can be reversed.
type HistoryEntry struct {
	Move     Move
	Captured Piece // NoPiece when the move was quiet
	Mover    Color
}

// Phase is the lifecycle state of a game.
type Phase uint8

const (
	InProgress Phase = iota
	Checkmate
	Stalemate
)

func (p Phase) String() string {
	switch p {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	default:
		return "in_progress"
	}
}
