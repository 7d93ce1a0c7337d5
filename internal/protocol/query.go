// internal/protocol/query.go

// Package protocol implements the text command framing spoken over the
// persistent connection: "<verb>?<attrs>" inbound, "/event/..." and
// "/error/..." frames outbound.
package protocol

import (
	"errors"
	"fmt"
	"strings"

	"github.com/oop-opg/chessmate/internal/models"
)

var (
	ErrEmptyQuery = errors.New("empty query")
	ErrEmptyAttrs = errors.New("empty attrs")
)

// Inbound command verbs.
const (
	CmdFind   = "/find"
	CmdJoin   = "/join"
	CmdAction = "/action"
)

// ParseQuery splits a raw frame like "/find?Xs" into its verb and attrs.
// The attrs part may itself contain '?'; only the first one splits.
func ParseQuery(src string) (cmd, attrs string, err error) {
	cmd, attrs, found := strings.Cut(src, "?")
	if cmd == "" {
		return "", "", ErrEmptyQuery
	}
	if !found || attrs == "" {
		return "", "", ErrEmptyAttrs
	}
	return cmd, attrs, nil
}

// ParseAttrs splits src on sep into exactly n non-empty fields, e.g.
// "3:move:0,1" with sep ':' and n 2 yields ["3", "move:0,1"].
func ParseAttrs(src string, sep rune, n int) ([]string, error) {
	parts := strings.SplitN(src, string(sep), n)
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d fields separated by %q in %q", n, sep, src)
	}
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("empty field in %q", src)
		}
	}
	return parts, nil
}

// NewGameEvent is the pairing notification: it tells the client which
// session it was paired into. It does not mean the opponent is attached yet.
func NewGameEvent(sid models.SessionID) string {
	return "/event/new_game/" + sid.String()
}

// FightEvent signals that both players have attached and play may begin.
func FightEvent(sid models.SessionID) string {
	return "/event/fight/" + sid.String()
}

// ActionEvent reports the outcome of an action by actor in session sid.
func ActionEvent(sid models.SessionID, actor models.UserID, result models.ActionResult) string {
	return fmt.Sprintf("/event/action/%s/%s/%s", sid, actor, result)
}

// ErrorEvent renders a protocol-level error frame, e.g.
// ErrorEvent("undefined_command") -> "/error/undefined_command".
func ErrorEvent(kind string) string {
	return "/error/" + kind
}
