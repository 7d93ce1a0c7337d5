// internal/tictactoe/wish.go

// Package tictactoe implements the tic-tac-toe rules for the session pool:
// wish parsing ("Xs"/"Os"), action parsing, and a 3x3 engine with win and
// draw detection. Turn order is owned entirely by the engine.
package tictactoe

import (
	"fmt"

	"github.com/oop-opg/chessmate/internal/models"
)

// Sign is a player's side on the board.
type Sign int

const (
	X Sign = iota
	O
)

func (s Sign) String() string {
	if s == X {
		return "Xs"
	}
	return "Os"
}

// Wish is a request to play a specific side. Opposite signs match.
type Wish struct {
	Sign Sign
}

func (w Wish) Matches(other models.Wish) bool {
	o, ok := other.(Wish)
	return ok && o.Sign != w.Sign
}

// MovesFirst reports whether this side opens the game. Xs always move first.
func (w Wish) MovesFirst() bool {
	return w.Sign == X
}

func (w Wish) String() string {
	return w.Sign.String()
}

func parseWish(s string) (models.Wish, error) {
	switch s {
	case "Xs":
		return Wish{Sign: X}, nil
	case "Os":
		return Wish{Sign: O}, nil
	default:
		return nil, fmt.Errorf("invalid tic-tac-toe wish %q", s)
	}
}
