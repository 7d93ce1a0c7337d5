// internal/models/wish.go
package models

// Wish is a matchmaking criterion supplied by a waiting client. Concrete
// games provide their own wish types (tic-tac-toe signs, chess colors).
type Wish interface {
	// Matches reports whether the holder of this wish can be paired with
	// the holder of other. The predicate is not reflexive: a wish for
	// "Xs" matches a wish for "Os", never another "Xs".
	Matches(other Wish) bool

	// MovesFirst reports whether this wish claims the opening turn
	// (Xs in tic-tac-toe, white in chess). The Lobby uses it to order
	// the user pair handed to the session pool.
	MovesFirst() bool

	String() string
}

// Ticket is a waiting client's wish plus bookkeeping, held by the Lobby for
// its lifetime. Rating is snapshotted at submission time.
type Ticket struct {
	UserID UserID
	Wish   Wish
	Rating int
}
