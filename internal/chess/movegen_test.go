package chess

import (
	"sort"
	"testing"
)

func destinations(b *Board, from Square, probe bool) map[string]bool {
	out := map[string]bool{}
	for _, to := range pseudoLegalMoves(b, from, probe) {
		out[to.String()] = true
	}
	return out
}

func sorted(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func TestPawnMoves(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Board)
		from  string
		want  []string
	}{
		{
			name:  "white pawn from home rank",
			setup: func(b *Board) { *b = NewBoard() },
			from:  "e2",
			want:  []string{"e3", "e4"},
		},
		{
			name:  "black pawn from home rank",
			setup: func(b *Board) { *b = NewBoard() },
			from:  "d7",
			want:  []string{"d5", "d6"},
		},
		{
			name: "double push blocked on the far square",
			setup: func(b *Board) {
				*b = NewBoard()
				b.set(Square{4, 3}, Piece{Type: Knight, Color: Black})
			},
			from: "e2",
			want: []string{"e3"},
		},
		{
			name: "single push blocked blocks both",
			setup: func(b *Board) {
				*b = NewBoard()
				b.set(Square{4, 2}, Piece{Type: Knight, Color: Black})
			},
			from: "e2",
			want: []string{},
		},
		{
			name: "diagonal captures only opposing pieces",
			setup: func(b *Board) {
				b.set(Square{4, 3}, Piece{Type: Pawn, Color: White})   // e4
				b.set(Square{3, 4}, Piece{Type: Pawn, Color: Black})   // d5
				b.set(Square{5, 4}, Piece{Type: Knight, Color: White}) // f5
			},
			from: "e4",
			want: []string{"d5", "e5"},
		},
		{
			name: "no advance off the mid-board home rank",
			setup: func(b *Board) {
				b.set(Square{4, 3}, Piece{Type: Pawn, Color: White}) // e4, past home
			},
			from: "e4",
			want: []string{"e5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Board
			tt.setup(&b)
			from, _ := ParseSquare(tt.from)
			got := sorted(destinations(&b, from, false))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestKnightMoves(t *testing.T) {
	var b Board
	b.set(Square{3, 3}, Piece{Type: Knight, Color: White}) // d4
	b.set(Square{2, 5}, Piece{Type: Pawn, Color: White})   // c6, own
	b.set(Square{4, 5}, Piece{Type: Pawn, Color: Black})   // e6, capture

	got := destinations(&b, Square{3, 3}, false)
	if got["c6"] {
		t.Error("knight must not land on its own pawn")
	}
	if !got["e6"] {
		t.Error("knight should capture the opposing pawn on e6")
	}
	if len(got) != 7 {
		t.Errorf("expected 7 destinations, got %d: %v", len(got), sorted(got))
	}

	corner := Board{}
	corner.set(Square{0, 0}, Piece{Type: Knight, Color: White})
	if got := destinations(&corner, Square{0, 0}, false); len(got) != 2 {
		t.Errorf("cornered knight should have 2 destinations, got %v", sorted(got))
	}
}

func TestSlidingMoves(t *testing.T) {
	var b Board
	b.set(Square{3, 3}, Piece{Type: Rook, Color: White})  // d4
	b.set(Square{3, 6}, Piece{Type: Pawn, Color: Black})  // d7, capture then stop
	b.set(Square{1, 3}, Piece{Type: Pawn, Color: White})  // b4, blocks before it

	got := destinations(&b, Square{3, 3}, false)
	if !got["d7"] {
		t.Error("rook should include the capture square d7")
	}
	if got["d8"] {
		t.Error("rook must stop after capturing on d7")
	}
	if !got["c4"] {
		t.Error("rook should reach c4")
	}
	if got["b4"] || got["a4"] {
		t.Error("rook must stop before its own pawn on b4")
	}
	if !got["h4"] || !got["d1"] {
		t.Error("rook should run to the board edge on open lines")
	}
}

func TestQueenCombinesRookAndBishop(t *testing.T) {
	var b Board
	b.set(Square{3, 3}, Piece{Type: Queen, Color: White}) // d4

	got := destinations(&b, Square{3, 3}, false)
	for _, want := range []string{"d8", "d1", "a4", "h4", "a1", "h8", "a7", "g1"} {
		if !got[want] {
			t.Errorf("queen on an empty board should reach %s", want)
		}
	}
	if len(got) != 27 {
		t.Errorf("queen on d4 of an empty board has 27 destinations, got %d", len(got))
	}
}

func TestKingMoves(t *testing.T) {
	var b Board
	b.set(Square{4, 0}, Piece{Type: King, Color: White})   // e1
	b.set(Square{3, 0}, Piece{Type: Queen, Color: White})  // d1, own
	b.set(Square{5, 1}, Piece{Type: Pawn, Color: Black})   // f2, capture

	got := destinations(&b, Square{4, 0}, false)
	if got["d1"] {
		t.Error("king must not land on its own queen")
	}
	if !got["f2"] {
		t.Error("king should capture the pawn on f2")
	}
	if len(got) != 4 {
		t.Errorf("expected destinations d2,e2,f1,f2, got %v", sorted(got))
	}
}

// Attack-probe mode skips the same-color destination filter: a probe asks
// whether a square can be reached, not whether landing there is a legal
// capture.
func TestAttackProbeSkipsSelfColorFilter(t *testing.T) {
	var b Board
	b.set(Square{3, 3}, Piece{Type: Rook, Color: White})  // d4
	b.set(Square{3, 5}, Piece{Type: Pawn, Color: White})  // d6, own piece

	normal := destinations(&b, Square{3, 3}, false)
	probe := destinations(&b, Square{3, 3}, true)

	if normal["d6"] {
		t.Error("normal generation must exclude the own-piece square")
	}
	if !probe["d6"] {
		t.Error("probe generation must include the own-piece square")
	}
	if probe["d7"] {
		t.Error("probe generation still stops at the blocking piece")
	}
}

func TestEmptySquareGeneratesNothing(t *testing.T) {
	b := NewBoard()
	if moves := pseudoLegalMoves(&b, Square{4, 4}, false); moves != nil {
		t.Errorf("expected no moves from an empty square, got %v", moves)
	}
}

// A piece pinned against its own king has no legal moves off the pin line.
func TestPinnedPieceFiltered(t *testing.T) {
	var b Board
	b.set(Square{4, 0}, Piece{Type: King, Color: White})   // e1
	b.set(Square{4, 3}, Piece{Type: Knight, Color: White}) // e4, pinned
	b.set(Square{4, 7}, Piece{Type: Rook, Color: Black})   // e8
	b.set(Square{0, 7}, Piece{Type: King, Color: Black})   // a8

	for _, m := range legalMoves(&b, White) {
		if m.From == (Square{4, 3}) {
			t.Errorf("pinned knight must have no legal move, found %s", m)
		}
	}
}
