// internal/engine/engine.go

// Package engine defines the capability surface the session pool requires
// from a game implementation. The pool is a pure dispatcher: whose turn it
// is and whether a move is legal are decided here, never in the pool.
package engine

import "github.com/oop-opg/chessmate/internal/models"

// Engine holds the evolving state of a single game. Implementations are not
// safe for concurrent use; the session pool serializes all calls per session.
type Engine interface {
	// React applies the action on behalf of user and returns the outcome.
	// React must be called exactly once per accepted client action: a
	// retry with the same action may double-apply.
	React(user models.UserID, action models.Action) models.ActionResult
}

// Rules describes one playable game type: how to parse its wishes and
// actions off the wire, and how to construct a fresh engine for a pair of
// users. users.First holds the opening turn.
type Rules interface {
	Name() string
	ParseWish(s string) (models.Wish, error)
	ParseAction(s string) (models.Action, error)
	NewEngine(users models.Users) Engine
}
