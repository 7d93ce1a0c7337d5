// internal/models/action.go
package models

// Action is a game action submitted by a client, parsed by the relevant
// rules implementation. Its String form is what gets echoed back to clients
// inside /event/action frames.
type Action interface {
	String() string
}

// ResultKind classifies the outcome of applying an action.
type ResultKind int

const (
	// ResultAction means the action was legal and applied; the echoed
	// action is in ActionResult.Action.
	ResultAction ResultKind = iota
	// ResultWin means the action ended the game with a winner.
	ResultWin
	// ResultDraw means the action ended the game in a draw.
	ResultDraw
	// ResultImpossible means the action was rejected: wrong turn, illegal
	// move, or otherwise not applicable in the current engine state.
	ResultImpossible
)

// ActionResult is the outcome of a client's game action, broadcast to all
// session participants so both sides replay the exact same event stream.
type ActionResult struct {
	Kind   ResultKind
	Winner UserID // set when Kind == ResultWin
	Action Action // set when Kind == ResultAction
}

// Accepted wraps a legal, applied action.
func Accepted(a Action) ActionResult {
	return ActionResult{Kind: ResultAction, Action: a}
}

// WinOf marks the game won by winner.
func WinOf(winner UserID) ActionResult {
	return ActionResult{Kind: ResultWin, Winner: winner}
}

// Draw marks the game drawn.
func Draw() ActionResult {
	return ActionResult{Kind: ResultDraw}
}

// Impossible rejects the action.
func Impossible() ActionResult {
	return ActionResult{Kind: ResultImpossible}
}

// Terminal reports whether the session is over after this result.
func (r ActionResult) Terminal() bool {
	return r.Kind == ResultWin || r.Kind == ResultDraw
}

func (r ActionResult) String() string {
	switch r.Kind {
	case ResultWin:
		return "win_of/" + r.Winner.String()
	case ResultDraw:
		return "draw"
	case ResultImpossible:
		return "impossible_action"
	default:
		if r.Action == nil {
			return "impossible_action"
		}
		return r.Action.String()
	}
}
