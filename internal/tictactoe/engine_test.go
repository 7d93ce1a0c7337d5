// internal/tictactoe/engine_test.go
package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oop-opg/chessmate/internal/models"
)

var testUsers = models.Users{First: 1, Second: 2}

func TestParseWish(t *testing.T) {
	w, err := Rules{}.ParseWish("Xs")
	require.NoError(t, err)
	assert.True(t, w.MovesFirst())

	o, err := Rules{}.ParseWish("Os")
	require.NoError(t, err)
	assert.False(t, o.MovesFirst())

	assert.True(t, w.Matches(o))
	assert.True(t, o.Matches(w))
	assert.False(t, w.Matches(w))

	_, err = Rules{}.ParseWish("Zs")
	assert.Error(t, err)
}

func TestParseAction(t *testing.T) {
	a, err := Rules{}.ParseAction("move:0,1")
	require.NoError(t, err)
	assert.Equal(t, Move{Col: 0, Row: 1}, a)
	assert.Equal(t, "0,1", a.String())

	a, err = Rules{}.ParseAction("action:surrender")
	require.NoError(t, err)
	assert.Equal(t, Surrender, a)

	for _, bad := range []string{"move:0", "move:a,b", "action:dance", "jump:0,0", "move:"} {
		_, err := Rules{}.ParseAction(bad)
		assert.Error(t, err, "expected %q to fail", bad)
	}
}

func TestFirstUserOpensAsX(t *testing.T) {
	e := newEngine(testUsers)

	// Second mover cannot open.
	res := e.React(2, Move{Col: 0, Row: 0})
	assert.Equal(t, models.ResultImpossible, res.Kind)

	res = e.React(1, Move{Col: 0, Row: 0})
	assert.Equal(t, models.ResultAction, res.Kind)
}

func TestTurnAlternation(t *testing.T) {
	e := newEngine(testUsers)

	res := e.React(1, Move{Col: 0, Row: 0})
	require.Equal(t, models.ResultAction, res.Kind)

	// Consecutive move by the same player is rejected and changes nothing.
	res = e.React(1, Move{Col: 1, Row: 0})
	assert.Equal(t, models.ResultImpossible, res.Kind)

	res = e.React(2, Move{Col: 1, Row: 0})
	assert.Equal(t, models.ResultAction, res.Kind)
}

func TestOccupiedCellRejected(t *testing.T) {
	e := newEngine(testUsers)

	require.Equal(t, models.ResultAction, e.React(1, Move{Col: 1, Row: 1}).Kind)
	res := e.React(2, Move{Col: 1, Row: 1})
	assert.Equal(t, models.ResultImpossible, res.Kind)

	// Rejection did not consume player 2's turn.
	res = e.React(2, Move{Col: 2, Row: 1})
	assert.Equal(t, models.ResultAction, res.Kind)
}

func TestOutOfBoundsRejected(t *testing.T) {
	e := newEngine(testUsers)
	assert.Equal(t, models.ResultImpossible, e.React(1, Move{Col: 3, Row: 0}).Kind)
	assert.Equal(t, models.ResultImpossible, e.React(1, Move{Col: 0, Row: -1}).Kind)
}

func TestRowWin(t *testing.T) {
	e := newEngine(testUsers)

	// X takes the top row while O plays the middle row.
	require.Equal(t, models.ResultAction, e.React(1, Move{Col: 0, Row: 0}).Kind)
	require.Equal(t, models.ResultAction, e.React(2, Move{Col: 0, Row: 1}).Kind)
	require.Equal(t, models.ResultAction, e.React(1, Move{Col: 1, Row: 0}).Kind)
	require.Equal(t, models.ResultAction, e.React(2, Move{Col: 1, Row: 1}).Kind)

	res := e.React(1, Move{Col: 2, Row: 0})
	require.Equal(t, models.ResultWin, res.Kind)
	assert.Equal(t, models.UserID(1), res.Winner)
	assert.True(t, res.Terminal())
	assert.Equal(t, "win_of/1", res.String())
}

func TestDiagonalWin(t *testing.T) {
	e := newEngine(testUsers)

	require.Equal(t, models.ResultAction, e.React(1, Move{Col: 0, Row: 0}).Kind)
	require.Equal(t, models.ResultAction, e.React(2, Move{Col: 1, Row: 0}).Kind)
	require.Equal(t, models.ResultAction, e.React(1, Move{Col: 1, Row: 1}).Kind)
	require.Equal(t, models.ResultAction, e.React(2, Move{Col: 2, Row: 0}).Kind)

	res := e.React(1, Move{Col: 2, Row: 2})
	require.Equal(t, models.ResultWin, res.Kind)
	assert.Equal(t, models.UserID(1), res.Winner)
}

func TestFullBoardDraw(t *testing.T) {
	e := newEngine(testUsers)

	// X X O
	// O O X
	// X O X  — no line for either side.
	seq := []struct {
		user models.UserID
		m    Move
	}{
		{1, Move{0, 0}}, {2, Move{2, 0}},
		{1, Move{1, 0}}, {2, Move{0, 1}},
		{1, Move{2, 1}}, {2, Move{1, 1}},
		{1, Move{0, 2}}, {2, Move{1, 2}},
	}
	for _, s := range seq {
		require.Equal(t, models.ResultAction, e.React(s.user, s.m).Kind, "move %v by %d", s.m, s.user)
	}

	res := e.React(1, Move{2, 2})
	assert.Equal(t, models.ResultDraw, res.Kind)
	assert.True(t, res.Terminal())
	assert.Equal(t, "draw", res.String())
}

func TestSurrender(t *testing.T) {
	e := newEngine(testUsers)

	// Surrender is legal even off-turn.
	res := e.React(2, Surrender)
	require.Equal(t, models.ResultWin, res.Kind)
	assert.Equal(t, models.UserID(1), res.Winner)
}

func TestDrawProposal(t *testing.T) {
	e := newEngine(testUsers)

	// Accepting a draw nobody proposed is impossible.
	assert.Equal(t, models.ResultImpossible, e.React(2, ApplyDraw).Kind)

	require.Equal(t, models.ResultAction, e.React(1, ProposeDraw).Kind)

	// The proposer cannot accept their own offer.
	assert.Equal(t, models.ResultImpossible, e.React(1, ApplyDraw).Kind)

	res := e.React(2, ApplyDraw)
	assert.Equal(t, models.ResultDraw, res.Kind)
}

func TestMoveClearsDrawOffer(t *testing.T) {
	e := newEngine(testUsers)

	require.Equal(t, models.ResultAction, e.React(2, ProposeDraw).Kind)
	require.Equal(t, models.ResultAction, e.React(1, Move{Col: 0, Row: 0}).Kind)

	assert.Equal(t, models.ResultImpossible, e.React(1, ApplyDraw).Kind)
}

func TestStrangerRejected(t *testing.T) {
	e := newEngine(testUsers)
	assert.Equal(t, models.ResultImpossible, e.React(99, Move{Col: 0, Row: 0}).Kind)
	assert.Equal(t, models.ResultImpossible, e.React(99, Surrender).Kind)
}
