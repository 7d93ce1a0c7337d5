// internal/lobby/lobby_test.go
package lobby

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oop-opg/chessmate/internal/models"
	"github.com/oop-opg/chessmate/internal/tictactoe"
)

// pairRecorder collects pairing notifications instead of sending them over
// a connection.
type pairRecorder struct {
	sessions []models.SessionID
}

func (r *pairRecorder) NotifyPair(sid models.SessionID) {
	r.sessions = append(r.sessions, sid)
}

// startRecorder collects session handoffs.
type startRecorder struct {
	sids  []models.SessionID
	users []models.Users
}

func (r *startRecorder) start(sid models.SessionID, users models.Users) {
	r.sids = append(r.sids, sid)
	r.users = append(r.users, users)
}

func testLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func xs() models.Wish {
	w, _ := tictactoe.Rules{}.ParseWish("Xs")
	return w
}

func os() models.Wish {
	w, _ := tictactoe.Rules{}.ParseWish("Os")
	return w
}

func TestPairingEitherOrder(t *testing.T) {
	cases := []struct {
		name          string
		first, second models.Wish
	}{
		{"xs_then_os", xs(), os()},
		{"os_then_xs", os(), xs()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			starts := &startRecorder{}
			l := New(testLogger(), starts.start, 0)

			obsA, obsB := &pairRecorder{}, &pairRecorder{}

			require.NoError(t, l.AddTicket(1, tc.first, 1000, obsA))
			assert.Equal(t, 1, l.Waiting())
			require.NoError(t, l.AddTicket(2, tc.second, 1000, obsB))

			// Exactly one pairing event each, carrying the same session id.
			require.Len(t, obsA.sessions, 1)
			require.Len(t, obsB.sessions, 1)
			assert.Equal(t, obsA.sessions[0], obsB.sessions[0])
			assert.Equal(t, models.SessionID(1), obsA.sessions[0])

			// Matched ticket left the waiting set; the new one never entered.
			assert.Equal(t, 0, l.Waiting())

			require.Len(t, starts.sids, 1)
			assert.Equal(t, models.SessionID(1), starts.sids[0])
		})
	}
}

func TestOpeningTurnOrdering(t *testing.T) {
	starts := &startRecorder{}
	l := New(testLogger(), starts.start, 0)

	// The Os player waits; the Xs player arrives second but must be First.
	require.NoError(t, l.AddTicket(5, os(), 1000, &pairRecorder{}))
	require.NoError(t, l.AddTicket(6, xs(), 1000, &pairRecorder{}))

	require.Len(t, starts.users, 1)
	assert.Equal(t, models.Users{First: 6, Second: 5}, starts.users[0])
}

func TestSessionIDsNeverReused(t *testing.T) {
	starts := &startRecorder{}
	l := New(testLogger(), starts.start, 0)

	for i := 0; i < 3; i++ {
		uid := models.UserID(i * 2)
		require.NoError(t, l.AddTicket(uid, xs(), 1000, &pairRecorder{}))
		require.NoError(t, l.AddTicket(uid+1, os(), 1000, &pairRecorder{}))
	}
	assert.Equal(t, []models.SessionID{1, 2, 3}, starts.sids)
}

func TestDuplicateTicketRejected(t *testing.T) {
	l := New(testLogger(), (&startRecorder{}).start, 0)

	obs := &pairRecorder{}
	require.NoError(t, l.AddTicket(1, xs(), 1000, obs))
	err := l.AddTicket(1, os(), 1000, obs)
	assert.ErrorIs(t, err, ErrDuplicateTicket)

	// The original ticket is untouched.
	assert.Equal(t, 1, l.Waiting())
	assert.Empty(t, obs.sessions)
}

func TestNoSelfMatch(t *testing.T) {
	starts := &startRecorder{}
	l := New(testLogger(), starts.start, 0)

	obs := &pairRecorder{}
	require.NoError(t, l.AddTicket(1, xs(), 1000, obs))
	// A second wish from the same user is rejected, so it can never land
	// on its own waiting ticket.
	assert.ErrorIs(t, l.AddTicket(1, os(), 1000, obs), ErrDuplicateTicket)
	assert.Empty(t, starts.sids)
	assert.Empty(t, obs.sessions)
}

func TestIncompatibleWishesWait(t *testing.T) {
	starts := &startRecorder{}
	l := New(testLogger(), starts.start, 0)

	require.NoError(t, l.AddTicket(1, xs(), 1000, &pairRecorder{}))
	require.NoError(t, l.AddTicket(2, xs(), 1000, &pairRecorder{}))

	assert.Equal(t, 2, l.Waiting())
	assert.Empty(t, starts.sids)
}

func TestRatingGap(t *testing.T) {
	starts := &startRecorder{}
	l := New(testLogger(), starts.start, 20)

	require.NoError(t, l.AddTicket(1, xs(), 1000, &pairRecorder{}))

	// 25 points apart: too far with a gap of 20.
	require.NoError(t, l.AddTicket(2, os(), 1025, &pairRecorder{}))
	assert.Equal(t, 2, l.Waiting())
	assert.Empty(t, starts.sids)

	// 10 points apart: pairs with the waiting Xs ticket.
	obs := &pairRecorder{}
	require.NoError(t, l.AddTicket(3, os(), 1010, obs))
	require.Len(t, starts.sids, 1)
	assert.Equal(t, models.Users{First: 1, Second: 3}, starts.users[0])
	assert.Len(t, obs.sessions, 1)
}

func TestRatingGapDisabled(t *testing.T) {
	starts := &startRecorder{}
	l := New(testLogger(), starts.start, 0)

	require.NoError(t, l.AddTicket(1, xs(), 0, &pairRecorder{}))
	require.NoError(t, l.AddTicket(2, os(), 9999, &pairRecorder{}))
	assert.Len(t, starts.sids, 1)
}

func TestRemoveTicket(t *testing.T) {
	starts := &startRecorder{}
	l := New(testLogger(), starts.start, 0)

	obs := &pairRecorder{}
	require.NoError(t, l.AddTicket(1, xs(), 1000, obs))
	l.RemoveTicket(1)
	assert.Equal(t, 0, l.Waiting())

	// The withdrawn ticket can no longer pair.
	require.NoError(t, l.AddTicket(2, os(), 1000, &pairRecorder{}))
	assert.Empty(t, starts.sids)
	assert.Empty(t, obs.sessions)

	// Removing an absent ticket is a no-op.
	l.RemoveTicket(42)
}
