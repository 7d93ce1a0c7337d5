// internal/lobby/lobby.go

// Package lobby pairs waiting tickets into game sessions. The Lobby owns the
// waiting set and the session-id counter exclusively; callers serialize all
// access (in the server it is driven by a single actor goroutine), so no
// locking happens here.
package lobby

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oop-opg/chessmate/internal/models"
)

// ErrDuplicateTicket is returned when a user submits a ticket while already
// waiting. Resubmission is rejected rather than silently replacing the old
// ticket, so the client always knows which wish is actually queued.
var ErrDuplicateTicket = errors.New("lobby: user already has a waiting ticket")

// PairObserver is notified once, when its ticket is paired into a session.
type PairObserver interface {
	NotifyPair(sid models.SessionID)
}

// StartGameFunc hands a freshly paired session off to the session layer.
// users.First holds the opening turn.
type StartGameFunc func(sid models.SessionID, users models.Users)

type waitingEntry struct {
	ticket   models.Ticket
	observer PairObserver
}

// Lobby matches compatible waiting tickets and allocates session ids.
type Lobby struct {
	tickets map[models.UserID]waitingEntry
	counter models.SessionID

	// ratingGap is the maximum allowed absolute rating difference between
	// paired tickets. Zero disables rating gating entirely.
	ratingGap int

	onStart StartGameFunc
	log     logrus.FieldLogger
}

// New creates an empty lobby. onStart must not be nil.
func New(log logrus.FieldLogger, onStart StartGameFunc, ratingGap int) *Lobby {
	return &Lobby{
		tickets:   make(map[models.UserID]waitingEntry),
		ratingGap: ratingGap,
		onStart:   onStart,
		log:       log,
	}
}

// AddTicket submits a wish for user. If a compatible ticket is already
// waiting, both players are notified of the new session id and the pair is
// handed to the session layer; otherwise the ticket joins the waiting set.
//
// The scan takes the first compatible ticket in map order; no FIFO fairness
// is guaranteed.
func (l *Lobby) AddTicket(userID models.UserID, wish models.Wish, rating int, observer PairObserver) error {
	if _, waiting := l.tickets[userID]; waiting {
		l.log.WithField("user_id", userID).Warn("duplicate ticket rejected")
		return ErrDuplicateTicket
	}
	l.log.WithFields(logrus.Fields{
		"user_id": userID,
		"wish":    wish.String(),
		"rating":  rating,
	}).Debug("got wish")

	for otherID, entry := range l.tickets {
		// Cannot happen while the single-ticket invariant holds, but a
		// self-pairing would corrupt the session, so check anyway.
		if otherID == userID {
			continue
		}
		if !entry.ticket.Wish.Matches(wish) {
			continue
		}
		if l.ratingGap > 0 && abs(entry.ticket.Rating-rating) >= l.ratingGap {
			continue
		}

		delete(l.tickets, otherID)
		sid := l.nextSessionID()
		l.log.WithFields(logrus.Fields{
			"session_id": sid,
			"user_a":     otherID,
			"user_b":     userID,
		}).Info("found pair")

		users := orderUsers(entry.ticket, models.Ticket{UserID: userID, Wish: wish, Rating: rating})
		l.onStart(sid, users)
		entry.observer.NotifyPair(sid)
		observer.NotifyPair(sid)
		return nil
	}

	l.tickets[userID] = waitingEntry{
		ticket:   models.Ticket{UserID: userID, Wish: wish, Rating: rating},
		observer: observer,
	}
	return nil
}

// RemoveTicket withdraws user's waiting ticket, if any. Called when a
// waiting client disconnects so its dead observer never gets paired.
func (l *Lobby) RemoveTicket(userID models.UserID) {
	if _, waiting := l.tickets[userID]; waiting {
		delete(l.tickets, userID)
		l.log.WithField("user_id", userID).Debug("ticket withdrawn")
	}
}

// Waiting returns the number of tickets currently queued.
func (l *Lobby) Waiting() int {
	return len(l.tickets)
}

// nextSessionID allocates the next session id. Ids start at 1 and are never
// reused.
func (l *Lobby) nextSessionID() models.SessionID {
	l.counter++
	return l.counter
}

// orderUsers puts the player whose wish claims the opening turn first.
// Matching wishes are complementary, so exactly one of them does.
func orderUsers(a, b models.Ticket) models.Users {
	if b.Wish.MovesFirst() {
		return models.Users{First: b.UserID, Second: a.UserID}
	}
	return models.Users{First: a.UserID, Second: b.UserID}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
