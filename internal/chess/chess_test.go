// internal/chess/chess_test.go
package chess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oop-opg/chessmate/internal/models"
)

var testUsers = models.Users{First: 10, Second: 11}

func TestWishMatching(t *testing.T) {
	white, err := Rules{}.ParseWish("white")
	require.NoError(t, err)
	black, err := Rules{}.ParseWish("black")
	require.NoError(t, err)

	assert.True(t, white.Matches(black))
	assert.False(t, black.Matches(black))
	assert.True(t, white.MovesFirst())
	assert.False(t, black.MovesFirst())

	_, err = Rules{}.ParseWish("green")
	assert.Error(t, err)
}

func TestParseMove(t *testing.T) {
	a, err := Rules{}.ParseAction("move:e2,e4")
	require.NoError(t, err)
	assert.Equal(t, Move{From: "e2", To: "e4"}, a)
	assert.Equal(t, "e2,e4", a.String())

	for _, bad := range []string{"move:e2", "move:z9,e4", "move:e2,e44"} {
		_, err := Rules{}.ParseAction(bad)
		assert.Error(t, err, bad)
	}
}

func TestRelayAlternatesTurns(t *testing.T) {
	e := Rules{}.NewEngine(testUsers)

	res := e.React(10, Move{From: "e2", To: "e4"})
	require.Equal(t, models.ResultAction, res.Kind)

	assert.Equal(t, models.ResultImpossible, e.React(10, Move{From: "d2", To: "d4"}).Kind)

	res = e.React(11, Move{From: "e7", To: "e5"})
	assert.Equal(t, models.ResultAction, res.Kind)
}

func TestSurrenderAndDraw(t *testing.T) {
	e := Rules{}.NewEngine(testUsers)

	res := e.React(11, Surrender)
	require.Equal(t, models.ResultWin, res.Kind)
	assert.Equal(t, models.UserID(10), res.Winner)

	e = Rules{}.NewEngine(testUsers)
	require.Equal(t, models.ResultAction, e.React(10, ProposeDraw).Kind)
	assert.Equal(t, models.ResultImpossible, e.React(10, ApplyDraw).Kind)
	assert.Equal(t, models.ResultDraw, e.React(11, ApplyDraw).Kind)
}
