// internal/handlers/game_server.go
package handlers

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/oop-opg/chessmate/internal/engine"
	"github.com/oop-opg/chessmate/internal/events"
	"github.com/oop-opg/chessmate/internal/game"
	"github.com/oop-opg/chessmate/internal/lobby"
	"github.com/oop-opg/chessmate/internal/models"
)

// Mailbox depth per component actor. Senders block when a mailbox is full,
// which back-pressures the connection read loops rather than dropping
// commands.
const mailboxSize = 256

// lobbyMsg and poolMsg are the typed mailbox messages for the two actors.
type lobbyMsg interface{ isLobbyMsg() }
type poolMsg interface{ isPoolMsg() }

type findPairMsg struct {
	userID   models.UserID
	wish     models.Wish
	rating   int
	observer lobby.PairObserver
}

func (findPairMsg) isLobbyMsg() {}

type removeTicketMsg struct {
	userID models.UserID
}

func (removeTicketMsg) isLobbyMsg() {}

type newGameMsg struct {
	sid   models.SessionID
	users models.Users
}

func (newGameMsg) isPoolMsg() {}

type joinGameMsg struct {
	sid      models.SessionID
	userID   models.UserID
	observer game.GameObserver
}

func (joinGameMsg) isPoolMsg() {}

type doActionMsg struct {
	sid    models.SessionID
	userID models.UserID
	action models.Action
}

func (doActionMsg) isPoolMsg() {}

type deleteSessionMsg struct {
	sid models.SessionID
}

func (deleteSessionMsg) isPoolMsg() {}

// GameServer glues the per-connection sessions to the Lobby and the session
// Pool. Each of those components is driven by its own actor goroutine that
// processes one mailbox message at a time, so all state mutation inside a
// component is serialized: messages from a single connection are handled in
// send order, and two actions for the same session can never interleave.
type GameServer struct {
	Rules engine.Rules

	lobby   *lobby.Lobby
	pool    *game.Pool
	ratings RatingProvider
	events  *events.Publisher

	lobbyCh chan lobbyMsg
	poolCh  chan poolMsg

	logger log.FieldLogger
}

// NewGameServer wires a lobby and a session pool for one game type.
// ratings must not be nil (use StaticRatings when no database is
// configured); pub and recorder may be nil.
func NewGameServer(logger log.FieldLogger, rules engine.Rules, ratings RatingProvider, pub *events.Publisher, recorder game.ActionRecorder, ratingGap int) *GameServer {
	gs := &GameServer{
		Rules:   rules,
		ratings: ratings,
		events:  pub,
		lobbyCh: make(chan lobbyMsg, mailboxSize),
		poolCh:  make(chan poolMsg, mailboxSize),
		logger:  logger,
	}
	// The handoff posts to the pool mailbox before the pairing
	// notifications reach either client, so a /join can never observe a
	// missing session.
	gs.lobby = lobby.New(logger, gs.startGame, ratingGap)
	gs.pool = game.NewPool(logger, rules, recorder)
	return gs
}

// startGame is the Lobby's StartGameFunc. It runs on the lobby actor.
func (gs *GameServer) startGame(sid models.SessionID, users models.Users) {
	gs.poolCh <- newGameMsg{sid: sid, users: users}
	gs.events.PublishPair(sid, users)
}

// Run starts the two component actors. They exit when ctx is cancelled.
func (gs *GameServer) Run(ctx context.Context) {
	go gs.lobbyLoop(ctx)
	go gs.poolLoop(ctx)
}

func (gs *GameServer) lobbyLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-gs.lobbyCh:
			switch m := msg.(type) {
			case findPairMsg:
				// Pairing rejections are deliberately log-only: the
				// protocol has no ticket-level error frame.
				_ = gs.lobby.AddTicket(m.userID, m.wish, m.rating, m.observer)
			case removeTicketMsg:
				gs.lobby.RemoveTicket(m.userID)
			}
		}
	}
}

func (gs *GameServer) poolLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-gs.poolCh:
			switch m := msg.(type) {
			case newGameMsg:
				gs.pool.NewGame(m.sid, m.users)
				gs.events.PublishSession(m.sid, "awaiting_players")
			case joinGameMsg:
				gs.pool.EnterGame(m.sid, m.userID, m.observer)
			case doActionMsg:
				gs.pool.DoAction(m.sid, m.userID, m.action)
			case deleteSessionMsg:
				gs.pool.Delete(m.sid)
			}
		}
	}
}

// FindPair submits a matchmaking ticket. The rating snapshot is taken here,
// on the caller's goroutine, so the lobby actor never blocks on I/O.
func (gs *GameServer) FindPair(ctx context.Context, userID models.UserID, wish models.Wish, observer lobby.PairObserver) {
	rating := gs.ratings.Rating(ctx, userID)
	gs.lobbyCh <- findPairMsg{userID: userID, wish: wish, rating: rating, observer: observer}
}

// Leave withdraws userID's waiting ticket, if any. Called on disconnect.
func (gs *GameServer) Leave(userID models.UserID) {
	gs.lobbyCh <- removeTicketMsg{userID: userID}
}

// JoinGame attaches the observer as userID's participant handle in session sid.
func (gs *GameServer) JoinGame(sid models.SessionID, userID models.UserID, observer game.GameObserver) {
	gs.poolCh <- joinGameMsg{sid: sid, userID: userID, observer: observer}
}

// DoAction routes a parsed game action to the session pool.
func (gs *GameServer) DoAction(sid models.SessionID, userID models.UserID, action models.Action) {
	gs.poolCh <- doActionMsg{sid: sid, userID: userID, action: action}
}

// DeleteSession removes a session from the pool. Exposed for reaper tooling.
func (gs *GameServer) DeleteSession(sid models.SessionID) {
	gs.poolCh <- deleteSessionMsg{sid: sid}
}
