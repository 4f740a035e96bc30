package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/tmccall/shallowblue/internal/chess"
)

// Terminal front end for the engine: human plays white, the built-in
// opponent answers as black unless disabled.
func main() {
	var noOpponent bool
	flag.BoolVar(&noOpponent, "no-opponent", false, "Disable the automated opponent (two humans at one terminal)")
	flag.Parse()

	engine := chess.NewEngine()
	engine.SetAutomatedOpponent(!noOpponent)

	fmt.Println("shallowblue - enter moves like e2e4; 'help' lists commands")
	printBoard(engine)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("%s> ", engine.Turn())
		if !scanner.Scan() {
			return
		}
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))

		switch line {
		case "":
			continue
		case "quit", "exit":
			return
		case "help":
			printHelp()
			continue
		case "board":
			printBoard(engine)
			continue
		case "new":
			engine.NewGame()
			printBoard(engine)
			continue
		case "undo":
			if !engine.Undo() {
				fmt.Println("nothing to undo")
				continue
			}
			// Drop the automated reply as well so it is the human's turn again.
			if engine.AutomatedOpponent() && engine.Turn() == chess.AutomatedColor {
				engine.Undo()
			}
			printBoard(engine)
			continue
		case "moves":
			for _, m := range engine.LegalMoves() {
				fmt.Printf("%s ", m)
			}
			fmt.Println()
			continue
		}

		from, to, ok := parseMove(line)
		if !ok {
			fmt.Println("could not read that; moves look like e2e4")
			continue
		}
		if !engine.AttemptMove(from, to) {
			fmt.Println("illegal move")
			continue
		}

		if engine.AutomatedTurn() {
			if reply, ok := engine.SearchMove(); ok {
				engine.AttemptMove(reply.From, reply.To)
				fmt.Printf("reply: %s\n", reply)
			}
		}

		printBoard(engine)
		if done := printOutcome(engine); done {
			fmt.Println("'new' starts another game, 'quit' exits")
		}
	}
}

func parseMove(line string) (from, to chess.Square, ok bool) {
	line = strings.ReplaceAll(line, " ", "")
	line = strings.ReplaceAll(line, "-", "")
	if len(line) != 4 {
		return chess.Square{}, chess.Square{}, false
	}
	from, okFrom := chess.ParseSquare(line[:2])
	to, okTo := chess.ParseSquare(line[2:])
	return from, to, okFrom && okTo
}

func printBoard(e *chess.Engine) {
	board := e.Snapshot()
	fmt.Println(board.String())
	if e.InCheck() {
		if phase, _ := e.Phase(); phase == chess.InProgress {
			fmt.Printf("%s is in check\n", e.Turn())
		}
	}
}

func printOutcome(e *chess.Engine) bool {
	switch phase, loser := e.Phase(); phase {
	case chess.Checkmate:
		fmt.Printf("checkmate, %s loses\n", loser)
		return true
	case chess.Stalemate:
		fmt.Println("stalemate")
		return true
	}
	return false
}

func printHelp() {
	fmt.Println(`commands:
  e2e4          move the piece on e2 to e4
  moves         list every legal move
  undo          take back the last move pair
  board         reprint the board
  new           start a fresh game
  quit          leave`)
}
