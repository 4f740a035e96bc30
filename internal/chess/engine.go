package chess

// AutomatedColor is the side the built-in opponent plays when enabled. It is
// fixed to the second-moving color.
const AutomatedColor = Black

// Engine owns all mutable game state: the board, the turn, the move history
// and the captured-piece lists. Nothing outside the engine mutates these;
// callers submit candidate moves and read state back through its methods.
//
// The engine itself is not safe for concurrent use. A caller exposing it
// across goroutines must serialize all calls through a single owner.
type Engine struct {
	board    Board
	turn     Color
	history  []HistoryEntry
	captured [2][]PieceType // indexed by the capturing Color
	phase    Phase
	loser    Color // meaningful only when phase == Checkmate
	auto     bool
}

// NewEngine returns an engine set up for a fresh game.
func NewEngine() *Engine {
	e := &Engine{}
	e.NewGame()
	return e
}

// NewGame resets the board to the standard initial setup, clears history and
// captures, and hands the move to white. The automated-opponent toggle is
// left as-is.
func (e *Engine) NewGame() {
	e.board = NewBoard()
	e.turn = White
	e.history = e.history[:0]
	e.captured[White] = e.captured[White][:0]
	e.captured[Black] = e.captured[Black][:0]
	e.phase = InProgress
}

// AttemptMove validates and, when legal, applies a move for the side to move.
// It returns false — with no state change — for out-of-range coordinates,
// illegal moves, or moves submitted after the game has ended.
func (e *Engine) AttemptMove(from, to Square) bool {
	if e.phase != InProgress {
		return false
	}
	m := Move{From: from, To: to}
	if !isLegal(&e.board, m, e.turn) {
		return false
	}
	e.applyMove(m)
	return true
}

// applyMove applies a move already known to be legal for the side to move:
// record history, bank any capture, relocate (promoting a pawn on its last
// rank to a queen), flip the turn and classify the new position.
func (e *Engine) applyMove(m Move) {
	captured := e.board.At(m.To)
	e.history = append(e.history, HistoryEntry{Move: m, Captured: captured, Mover: e.turn})
	if !captured.IsEmpty() {
		e.captured[e.turn] = append(e.captured[e.turn], captured.Type)
	}

	p := e.board.At(m.From)
	e.board.set(m.To, p)
	e.board.clear(m.From)
	if p.Type == Pawn && m.To.Rank == promotionRank(p.Color) {
		e.board.set(m.To, Piece{Type: Queen, Color: p.Color})
	}

	e.turn = e.turn.Opposite()
	e.evaluateGameState()
}

// Undo reverses the most recent move. It returns false when there is nothing
// to undo. A promoted queen stays a queen: promotions are not reversed. The
// game phase is reset to in-progress unconditionally, even if the restored
// position is itself dead — callers that depend on phase correctness after
// an undo must re-validate.
func (e *Engine) Undo() bool {
	if len(e.history) == 0 {
		return false
	}
	entry := e.history[len(e.history)-1]
	e.history = e.history[:len(e.history)-1]

	e.board.set(entry.Move.From, e.board.At(entry.Move.To))
	e.board.set(entry.Move.To, entry.Captured)
	if !entry.Captured.IsEmpty() {
		taken := e.captured[entry.Mover]
		e.captured[entry.Mover] = taken[:len(taken)-1]
	}

	e.turn = entry.Mover
	e.phase = InProgress
	return true
}

// evaluateGameState classifies the position for the side to move: no legal
// moves means checkmate when the king is attacked, stalemate otherwise.
func (e *Engine) evaluateGameState() {
	if len(legalMoves(&e.board, e.turn)) > 0 {
		e.phase = InProgress
		return
	}
	if isKingAttacked(&e.board, e.turn) {
		e.phase = Checkmate
		e.loser = e.turn
	} else {
		e.phase = Stalemate
	}
}

// SetAutomatedOpponent toggles whether the second color's moves come from the
// built-in search instead of external input.
func (e *Engine) SetAutomatedOpponent(enabled bool) {
	e.auto = enabled
}

// AutomatedOpponent reports whether the built-in opponent is enabled.
func (e *Engine) AutomatedOpponent() bool {
	return e.auto
}

// AutomatedTurn reports whether the built-in opponent should produce the next
// move: it is enabled, the game continues, and it is the automated side's turn.
func (e *Engine) AutomatedTurn() bool {
	return e.auto && e.phase == InProgress && e.turn == AutomatedColor
}

// Turn returns the color to move.
func (e *Engine) Turn() Color {
	return e.turn
}

// Phase returns the game phase and, for checkmate, the mated side.
func (e *Engine) Phase() (Phase, Color) {
	return e.phase, e.loser
}

// PieceAt returns the piece on sq, or NoPiece for an empty or out-of-range
// square.
func (e *Engine) PieceAt(sq Square) Piece {
	return e.board.At(sq)
}

// Snapshot returns a value copy of the board for read-only consumers.
func (e *Engine) Snapshot() Board {
	return e.board
}

// Captured returns the ordered list of piece types captured by color.
func (e *Engine) Captured(color Color) []PieceType {
	out := make([]PieceType, len(e.captured[color]))
	copy(out, e.captured[color])
	return out
}

// MoveCount returns the number of applied moves still on the history stack.
func (e *Engine) MoveCount() int {
	return len(e.history)
}

// LastMove returns the most recently applied move, if any.
func (e *Engine) LastMove() (Move, bool) {
	if len(e.history) == 0 {
		return Move{}, false
	}
	return e.history[len(e.history)-1].Move, true
}

// InCheck reports whether the side to move is currently in check.
func (e *Engine) InCheck() bool {
	return isKingAttacked(&e.board, e.turn)
}

// LegalMoves returns every legal move for the side to move, in the fixed
// enumeration order.
func (e *Engine) LegalMoves() []Move {
	return legalMoves(&e.board, e.turn)
}
