// internal/protocol/query_test.go
package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oop-opg/chessmate/internal/models"
)

func TestParseQuery(t *testing.T) {
	cmd, attrs, err := ParseQuery("/find?Xs")
	require.NoError(t, err)
	assert.Equal(t, "/find", cmd)
	assert.Equal(t, "Xs", attrs)
}

func TestParseQueryKeepsLaterSeparators(t *testing.T) {
	cmd, attrs, err := ParseQuery("/action?3:move:0,1")
	require.NoError(t, err)
	assert.Equal(t, "/action", cmd)
	assert.Equal(t, "3:move:0,1", attrs)
}

func TestParseQueryNotAQuery(t *testing.T) {
	_, _, err := ParseQuery("somestr")
	assert.ErrorIs(t, err, ErrEmptyAttrs)
}

func TestParseQueryEmptyQuery(t *testing.T) {
	_, _, err := ParseQuery("?somestr")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestParseQueryEmptyAttrs(t *testing.T) {
	_, _, err := ParseQuery("/find?")
	assert.ErrorIs(t, err, ErrEmptyAttrs)
}

func TestParseAttrs(t *testing.T) {
	attrs, err := ParseAttrs("3:move:0,1", ':', 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "move:0,1"}, attrs)
}

func TestParseAttrsTooFew(t *testing.T) {
	_, err := ParseAttrs("surrender", ':', 2)
	assert.Error(t, err)
}

func TestParseAttrsEmptyField(t *testing.T) {
	_, err := ParseAttrs(":surrender", ':', 2)
	assert.Error(t, err)
}

func TestEventRendering(t *testing.T) {
	assert.Equal(t, "/event/new_game/1", NewGameEvent(1))
	assert.Equal(t, "/event/fight/7", FightEvent(7))
	assert.Equal(t, "/error/undefined_command", ErrorEvent("undefined_command"))

	win := models.WinOf(4)
	assert.Equal(t, "/event/action/2/4/win_of/4", ActionEvent(2, 4, win))
}
