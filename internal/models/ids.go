// internal/models/ids.go
package models

import "strconv"

// UserID identifies a connected player. IDs are opaque, monotonically
// increasing integers handed out by whatever fronts the server (the demo
// client simply picks one); the core never derives meaning from them.
type UserID uint64

// SessionID identifies a paired game session. SessionIDs are allocated by
// the Lobby's counter and are never reused. Overflow is not handled; a
// uint64 outlives any realistic session count.
type SessionID uint64

func (u UserID) String() string {
	return strconv.FormatUint(uint64(u), 10)
}

func (s SessionID) String() string {
	return strconv.FormatUint(uint64(s), 10)
}

// ParseUserID parses the decimal user id used in session URLs.
func ParseUserID(s string) (UserID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	return UserID(v), err
}

// ParseSessionID parses the decimal session id used in /join and /action.
func ParseSessionID(s string) (SessionID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	return SessionID(v), err
}
