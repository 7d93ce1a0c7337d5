// internal/tictactoe/engine.go
package tictactoe

import (
	"github.com/oop-opg/chessmate/internal/engine"
	"github.com/oop-opg/chessmate/internal/models"
)

type pane int

const (
	empty pane = iota
	paneX
	paneO
)

// winLines enumerates every row, column and diagonal by board index
// (index = row*3 + col).
var winLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
	{0, 4, 8}, {2, 4, 6}, // diagonals
}

// tttEngine is the per-session game state. users.First plays X and opens.
// Not safe for concurrent use; the session pool serializes calls.
type tttEngine struct {
	users models.Users
	turn  models.UserID
	board [9]pane
	moves int

	// drawOfferBy is the user with an open draw proposal, if drawOffer.
	drawOffer   bool
	drawOfferBy models.UserID
}

func newEngine(users models.Users) *tttEngine {
	return &tttEngine{
		users: users,
		turn:  users.First,
	}
}

func (e *tttEngine) React(user models.UserID, action models.Action) models.ActionResult {
	if !e.users.Contains(user) {
		return models.Impossible()
	}
	switch a := action.(type) {
	case Move:
		return e.reactMove(user, a)
	case Command:
		return e.reactCommand(user, a)
	default:
		return models.Impossible()
	}
}

func (e *tttEngine) reactMove(user models.UserID, m Move) models.ActionResult {
	if user != e.turn {
		return models.Impossible()
	}
	if m.Col < 0 || m.Col > 2 || m.Row < 0 || m.Row > 2 {
		return models.Impossible()
	}
	idx := m.Row*3 + m.Col
	if e.board[idx] != empty {
		return models.Impossible()
	}

	e.board[idx] = e.signOf(user)
	e.moves++
	// A move supersedes any pending draw proposal.
	e.drawOffer = false

	if e.hasLine(e.board[idx]) {
		return models.WinOf(user)
	}
	if e.moves == 9 {
		return models.Draw()
	}
	e.turn = e.users.Other(user)
	return models.Accepted(m)
}

func (e *tttEngine) reactCommand(user models.UserID, c Command) models.ActionResult {
	switch c {
	case Surrender:
		return models.WinOf(e.users.Other(user))
	case ProposeDraw:
		e.drawOffer = true
		e.drawOfferBy = user
		return models.Accepted(c)
	case ApplyDraw:
		if !e.drawOffer || e.drawOfferBy == user {
			return models.Impossible()
		}
		return models.Draw()
	default:
		return models.Impossible()
	}
}

func (e *tttEngine) signOf(user models.UserID) pane {
	if user == e.users.First {
		return paneX
	}
	return paneO
}

func (e *tttEngine) hasLine(p pane) bool {
	for _, line := range winLines {
		if e.board[line[0]] == p && e.board[line[1]] == p && e.board[line[2]] == p {
			return true
		}
	}
	return false
}

// Rules is the tic-tac-toe game descriptor registered with the engine
// registry under "tic_tac_toe".
type Rules struct{}

func (Rules) Name() string { return "tic_tac_toe" }

func (Rules) ParseWish(s string) (models.Wish, error) { return parseWish(s) }

func (Rules) ParseAction(s string) (models.Action, error) { return parseAction(s) }

func (Rules) NewEngine(users models.Users) engine.Engine { return newEngine(users) }

func init() {
	engine.Register(Rules{})
}
