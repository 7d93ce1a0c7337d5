// internal/models/users.go
package models

// Users is the ordered pair of participants in a session. First holds the
// opening turn.
type Users struct {
	First  UserID
	Second UserID
}

func (u Users) Contains(id UserID) bool {
	return u.First == id || u.Second == id
}

// Other returns the participant that is not id. The caller must have
// checked Contains first; for a non-participant the result is meaningless.
func (u Users) Other(id UserID) UserID {
	if id == u.First {
		return u.Second
	}
	return u.First
}
