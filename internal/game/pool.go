// internal/game/pool.go

// Package game owns the live game sessions. The Pool gates play until both
// players have attached, dispatches validated actions to the rules engine
// and fans the outcomes out to the registered observers. Like the lobby, a
// Pool is exclusively owned by a single actor goroutine and does no locking
// of its own; sessions are fully independent of each other.
package game

import (
	"github.com/sirupsen/logrus"

	"github.com/oop-opg/chessmate/internal/engine"
	"github.com/oop-opg/chessmate/internal/models"
)

// GameObserver is a participant's notification sink for one session.
type GameObserver interface {
	// NotifyMatchStart fires once, when both players have attached and
	// play may begin. This is a separate event from the pairing
	// notification: pairing says who, match start says it is really on.
	NotifyMatchStart(sid models.SessionID)

	// NotifyActionResult fires once per delivered action outcome.
	NotifyActionResult(actor models.UserID, sid models.SessionID, result models.ActionResult)
}

// ActionRecorder receives every broadcast action outcome, best-effort. It
// backs the external event feeds (Redis action queue, NATS subjects) and
// must never block game processing.
type ActionRecorder interface {
	RecordAction(sid models.SessionID, actor models.UserID, result models.ActionResult)
}

type phase int

const (
	phaseAwaitingPlayers phase = iota
	phaseActive
	phaseFinished
)

type session struct {
	id     models.SessionID
	users  models.Users
	engine engine.Engine

	// observers holds at most one sink per participant: index 0 for
	// users.First, index 1 for users.Second.
	observers [2]GameObserver
	phase     phase
}

func (s *session) observerIndex(userID models.UserID) int {
	if userID == s.users.First {
		return 0
	}
	return 1
}

func (s *session) ready() bool {
	return s.observers[0] != nil && s.observers[1] != nil
}

// Pool tracks every session of one game type.
type Pool struct {
	rules    engine.Rules
	sessions map[models.SessionID]*session
	recorder ActionRecorder // may be nil
	log      logrus.FieldLogger
}

// NewPool creates an empty pool for the given game type. recorder may be
// nil when no external action feed is configured.
func NewPool(log logrus.FieldLogger, rules engine.Rules, recorder ActionRecorder) *Pool {
	return &Pool{
		rules:    rules,
		sessions: make(map[models.SessionID]*session),
		recorder: recorder,
		log:      log,
	}
}

// NewGame registers a freshly paired session and constructs its engine. The
// session starts in the awaiting-players phase. A duplicate session id means
// the lobby double-notified; that is a coordination bug, logged and ignored
// so the existing session is never corrupted.
func (p *Pool) NewGame(sid models.SessionID, users models.Users) {
	if _, exists := p.sessions[sid]; exists {
		p.log.WithField("session_id", sid).Error("new_game called with a session id that already exists")
		return
	}
	p.sessions[sid] = &session{
		id:     sid,
		users:  users,
		engine: p.rules.NewEngine(users),
	}
	p.log.WithFields(logrus.Fields{
		"session_id": sid,
		"first":      users.First,
		"second":     users.Second,
	}).Info("session created, awaiting players")
}

// EnterGame attaches userID's observer to the session. Rejections are
// log-only: unknown session, user not a participant, or an observer already
// registered for that user (no hot-reconnect; the old handle is never
// silently orphaned). Once both observers are present the session becomes
// active and both sides get the match-start signal.
func (p *Pool) EnterGame(sid models.SessionID, userID models.UserID, observer GameObserver) {
	s, ok := p.sessions[sid]
	if !ok {
		p.log.WithFields(logrus.Fields{"session_id": sid, "user_id": userID}).
			Warn("enter_game on unknown session")
		return
	}
	if !s.users.Contains(userID) {
		p.log.WithFields(logrus.Fields{"session_id": sid, "user_id": userID}).
			Warn("enter_game by a user that is not a participant")
		return
	}
	idx := s.observerIndex(userID)
	if s.observers[idx] != nil {
		p.log.WithFields(logrus.Fields{"session_id": sid, "user_id": userID}).
			Warn("enter_game with observer already registered")
		return
	}
	s.observers[idx] = observer

	if s.ready() && s.phase == phaseAwaitingPlayers {
		s.phase = phaseActive
		p.log.WithField("session_id", sid).Info("both players attached, fight begins")
		for _, o := range s.observers {
			o.NotifyMatchStart(sid)
		}
	}
}

// DoAction applies userID's action to the session. The pool only checks
// that the session is active and that userID is a participant; whose turn
// it is and whether the move is legal are the engine's calls alone.
//
// Rejected actions (ImpossibleAction) go back to the acting player only;
// every other outcome is broadcast to both observers so the clients stay in
// sync off a single event stream. A Win or Draw outcome finishes the
// session: later actions are rejected here without reaching the engine and
// produce no notifications.
func (p *Pool) DoAction(sid models.SessionID, userID models.UserID, action models.Action) {
	s, ok := p.sessions[sid]
	if !ok {
		p.log.WithFields(logrus.Fields{"session_id": sid, "user_id": userID}).
			Warn("do_game_action on unknown session")
		return
	}
	if s.phase != phaseActive {
		p.log.WithFields(logrus.Fields{
			"session_id": sid,
			"user_id":    userID,
			"phase":      s.phase,
		}).Warn("do_game_action on a session that is not active")
		return
	}
	if !s.users.Contains(userID) {
		p.log.WithFields(logrus.Fields{"session_id": sid, "user_id": userID}).
			Warn("do_game_action by a user that is not a participant")
		return
	}

	result := s.engine.React(userID, action)
	p.log.WithFields(logrus.Fields{
		"session_id": sid,
		"user_id":    userID,
		"result":     result.String(),
	}).Debug("engine reacted")

	if result.Kind == models.ResultImpossible {
		s.observers[s.observerIndex(userID)].NotifyActionResult(userID, sid, result)
		return
	}

	for _, o := range s.observers {
		o.NotifyActionResult(userID, sid, result)
	}
	if p.recorder != nil {
		p.recorder.RecordAction(sid, userID, result)
	}
	if result.Terminal() {
		s.phase = phaseFinished
		p.log.WithField("session_id", sid).Info("session finished")
	}
}

// Delete removes a session outright. Finished sessions are retained for
// final-result delivery; an external reaper decides when to call this.
func (p *Pool) Delete(sid models.SessionID) {
	delete(p.sessions, sid)
}

// Len returns the number of tracked sessions, finished ones included.
func (p *Pool) Len() int {
	return len(p.sessions)
}
