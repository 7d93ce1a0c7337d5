// internal/tictactoe/action.go
package tictactoe

import (
	"fmt"
	"strconv"

	"github.com/oop-opg/chessmate/internal/models"
	"github.com/oop-opg/chessmate/internal/protocol"
)

// Move places the mover's sign at a board cell. Columns and rows count from
// zero in the top-left corner.
type Move struct {
	Col int
	Row int
}

func (m Move) String() string {
	return fmt.Sprintf("%d,%d", m.Col, m.Row)
}

// Command is a non-move game action.
type Command int

const (
	Surrender Command = iota
	ProposeDraw
	ApplyDraw
)

func (c Command) String() string {
	switch c {
	case Surrender:
		return "surrender"
	case ProposeDraw:
		return "propose_draw"
	default:
		return "apply_draw"
	}
}

// parseAction parses the wire action syntax:
//
//	"move:0,1"
//	"action:surrender"
//	"action:propose_draw"
//	"action:apply_draw"
func parseAction(s string) (models.Action, error) {
	attrs, err := protocol.ParseAttrs(s, ':', 2)
	if err != nil {
		return nil, fmt.Errorf("invalid_action: %w", err)
	}
	switch attrs[0] {
	case "action":
		switch attrs[1] {
		case "surrender":
			return Surrender, nil
		case "propose_draw":
			return ProposeDraw, nil
		case "apply_draw":
			return ApplyDraw, nil
		}
		return nil, fmt.Errorf("invalid_action: unknown command %q", attrs[1])
	case "move":
		pos, err := protocol.ParseAttrs(attrs[1], ',', 2)
		if err != nil {
			return nil, fmt.Errorf("invalid_move: %w", err)
		}
		col, errC := strconv.Atoi(pos[0])
		row, errR := strconv.Atoi(pos[1])
		if errC != nil || errR != nil {
			return nil, fmt.Errorf("invalid_move: non-numeric position %q", attrs[1])
		}
		return Move{Col: col, Row: row}, nil
	default:
		return nil, fmt.Errorf("invalid_action: unknown kind %q", attrs[0])
	}
}
