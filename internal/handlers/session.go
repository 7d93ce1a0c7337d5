// internal/handlers/session.go
package handlers

import (
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/oop-opg/chessmate/internal/models"
	"github.com/oop-opg/chessmate/internal/protocol"
)

// playerSession is one client's presence on the server: the observer handle
// the Lobby and the Pool notify, backed by a buffered outbound frame channel
// drained by the connection's write pump.
//
// All notifications are fire-and-forget. A slow or gone client overflows
// the buffer and loses frames with a log line; it never stalls an actor.
type playerSession struct {
	userID models.UserID
	connID uuid.UUID

	out    chan string
	logger log.FieldLogger
}

func newPlayerSession(userID models.UserID, logger log.FieldLogger) *playerSession {
	connID := uuid.New()
	return &playerSession{
		userID: userID,
		connID: connID,
		out:    make(chan string, 32),
		logger: logger.WithFields(log.Fields{"user_id": userID, "conn_id": connID}),
	}
}

// send pushes a frame onto the outbound channel non-blockingly.
func (s *playerSession) send(frame string) {
	select {
	case s.out <- frame:
	default:
		s.logger.WithField("frame", frame).Warn("outbound channel full, frame dropped")
	}
}

// NotifyPair implements lobby.PairObserver.
func (s *playerSession) NotifyPair(sid models.SessionID) {
	s.send(protocol.NewGameEvent(sid))
}

// NotifyMatchStart implements the fight-start half of game.GameObserver.
func (s *playerSession) NotifyMatchStart(sid models.SessionID) {
	s.send(protocol.FightEvent(sid))
}

// NotifyActionResult implements the action half of game.GameObserver.
func (s *playerSession) NotifyActionResult(actor models.UserID, sid models.SessionID, result models.ActionResult) {
	s.send(protocol.ActionEvent(sid, actor, result))
}
