// internal/chess/chess.go

// Package chess plugs chess into the session pool. It carries the full
// matchmaking surface (color wishes, turn order, surrender and draw flow)
// but performs no move-legality validation: moves are relayed to both
// clients as accepted actions and legality is left to the frontends. A real
// legality engine can replace relayEngine without touching the pool.
package chess

import (
	"fmt"
	"regexp"

	"github.com/oop-opg/chessmate/internal/engine"
	"github.com/oop-opg/chessmate/internal/models"
	"github.com/oop-opg/chessmate/internal/protocol"
)

// Color is a player's side. White opens.
type Color int

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Wish is a request to play a specific color. Opposite colors match.
type Wish struct {
	Color Color
}

func (w Wish) Matches(other models.Wish) bool {
	o, ok := other.(Wish)
	return ok && o.Color != w.Color
}

func (w Wish) MovesFirst() bool { return w.Color == White }

func (w Wish) String() string { return w.Color.String() }

// Move relays a piece move between two squares in coordinate notation,
// e.g. "e2,e4" on the wire as "move:e2,e4".
type Move struct {
	From string
	To   string
}

func (m Move) String() string {
	return m.From + "," + m.To
}

// Command is a non-move game action, sharing the wire names used by the
// tic-tac-toe rules.
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

var squareRe = regexp.MustCompile(`^[a-h][1-8]$`)

// relayEngine enforces participation and turn order only.
type relayEngine struct {
	users models.Users
	turn  models.UserID

	drawOffer   bool
	drawOfferBy models.UserID
}

func (e *relayEngine) React(user models.UserID, action models.Action) models.ActionResult {
	if !e.users.Contains(user) {
		return models.Impossible()
	}
	switch a := action.(type) {
	case Move:
		if user != e.turn {
			return models.Impossible()
		}
		e.drawOffer = false
		e.turn = e.users.Other(user)
		return models.Accepted(a)
	case Command:
		switch a {
		case Surrender:
			return models.WinOf(e.users.Other(user))
		case ProposeDraw:
			e.drawOffer = true
			e.drawOfferBy = user
			return models.Accepted(a)
		case ApplyDraw:
			if !e.drawOffer || e.drawOfferBy == user {
				return models.Impossible()
			}
			return models.Draw()
		}
	}
	return models.Impossible()
}

// Rules is the chess game descriptor registered under "chess".
type Rules struct{}

func (Rules) Name() string { return "chess" }

func (Rules) ParseWish(s string) (models.Wish, error) {
	switch s {
	case "white":
		return Wish{Color: White}, nil
	case "black":
		return Wish{Color: Black}, nil
	default:
		return nil, fmt.Errorf("invalid chess wish %q", s)
	}
}

func (Rules) ParseAction(s string) (models.Action, error) {
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
		sq, err := protocol.ParseAttrs(attrs[1], ',', 2)
		if err != nil {
			return nil, fmt.Errorf("invalid_move: %w", err)
		}
		if !squareRe.MatchString(sq[0]) || !squareRe.MatchString(sq[1]) {
			return nil, fmt.Errorf("invalid_move: bad square in %q", attrs[1])
		}
		return Move{From: sq[0], To: sq[1]}, nil
	default:
		return nil, fmt.Errorf("invalid_action: unknown kind %q", attrs[0])
	}
}

func (Rules) NewEngine(users models.Users) engine.Engine {
	return &relayEngine{users: users, turn: users.First}
}

func init() {
	engine.Register(Rules{})
}
