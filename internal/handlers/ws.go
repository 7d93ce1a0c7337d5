// internal/handlers/ws.go
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/oop-opg/chessmate/internal/middleware"
	"github.com/oop-opg/chessmate/internal/models"
	"github.com/oop-opg/chessmate/internal/protocol"
)

// SessionPath returns the WebSocket route for a game server, e.g.
// "/api/tic_tac_toe/new_session/".
func SessionPath(gs *GameServer) string {
	return "/api/" + gs.Rules.Name() + "/new_session/"
}

// WSHandler upgrades the HTTP connection to WebSocket for one player
// session. The URL carries the user id: /api/{game}/new_session/{user_id}.
// It starts the write pump, then reads text command frames until the client
// goes away, withdrawing any waiting ticket on exit.
func WSHandler(logger *logrus.Logger, gs *GameServer) http.HandlerFunc {
	prefix := SessionPath(gs)
	return func(w http.ResponseWriter, r *http.Request) {
		idPart := strings.TrimPrefix(r.URL.Path, prefix)
		if idPart == "" || strings.Contains(idPart, "/") {
			http.Error(w, "Missing user_id in path ("+prefix+"{user_id})", http.StatusBadRequest)
			return
		}
		userID, err := models.ParseUserID(idPart)
		if err != nil {
			http.Error(w, "Invalid user_id format", http.StatusBadRequest)
			return
		}

		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"}, // Adjust for production security.
		})
		if err != nil {
			logger.Warnf("WebSocket accept error for user %s: %v", userID, err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "Internal server error during handler exit.")
		middleware.LogWebSocketConnect(logger, r.RemoteAddr, r.URL.Path)

		session := newPlayerSession(userID, logger)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		go writePump(ctx, c, session, logger)
		readErr := readCommands(ctx, c, gs, session)

		// A dropped connection abandons the ticket; live sessions keep
		// their (now dead) observer handle, reconnect is not supported.
		gs.Leave(userID)
		middleware.LogWebSocketDisconnect(logger, r.RemoteAddr, r.URL.Path, readErr)
		c.Close(websocket.StatusNormalClosure, "")
	}
}

// writePump forwards queued outbound frames to the socket until ctx ends.
func writePump(ctx context.Context, c *websocket.Conn, session *playerSession, logger *logrus.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case frame := <-session.out:
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := c.Write(writeCtx, websocket.MessageText, []byte(frame))
			cancel()
			if err != nil {
				logger.Warnf("Failed to write frame to user %s: %v", session.userID, err)
				// Delivery is best-effort; the read loop notices the
				// broken connection and tears the session down.
			}
		}
	}
}

// readCommands reads and dispatches client command frames until the
// connection closes or ctx is cancelled. Returns a non-nil error only for
// abnormal closures.
func readCommands(ctx context.Context, c *websocket.Conn, gs *GameServer, session *playerSession) error {
	for {
		msgType, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				return nil
			}
			if strings.Contains(err.Error(), "context canceled") {
				return nil
			}
			return err
		}
		if msgType != websocket.MessageText {
			session.logger.Warnf("non-text message type %d ignored", msgType)
			session.send(protocol.ErrorEvent("unimplemented_transport_format"))
			continue
		}
		dispatchCommand(ctx, gs, session, string(data))
	}
}

// dispatchCommand parses one inbound frame and routes it to the lobby or
// the pool. Protocol errors go straight back to the sender; domain-level
// rejections surface later as events (or log lines) from the actors.
func dispatchCommand(ctx context.Context, gs *GameServer, session *playerSession, raw string) {
	cmd, attrs, err := protocol.ParseQuery(raw)
	if err != nil {
		session.logger.WithError(err).Debugf("unparseable frame %q", raw)
		session.send(protocol.ErrorEvent("invalid_query"))
		return
	}

	switch cmd {
	case protocol.CmdFind:
		wish, err := gs.Rules.ParseWish(attrs)
		if err != nil {
			session.send(protocol.ErrorEvent("invalid_wish"))
			return
		}
		gs.FindPair(ctx, session.userID, wish, session)

	case protocol.CmdJoin:
		sid, err := models.ParseSessionID(attrs)
		if err != nil {
			session.send(protocol.ErrorEvent("invalid_session_id"))
			return
		}
		gs.JoinGame(sid, session.userID, session)

	case protocol.CmdAction:
		parts, err := protocol.ParseAttrs(attrs, ':', 2)
		if err != nil {
			session.send(protocol.ErrorEvent("invalid_action"))
			return
		}
		sid, err := models.ParseSessionID(parts[0])
		if err != nil {
			session.send(protocol.ErrorEvent("invalid_session_id"))
			return
		}
		action, err := gs.Rules.ParseAction(parts[1])
		if err != nil {
			session.send(protocol.ErrorEvent("invalid_action"))
			return
		}
		gs.DoAction(sid, session.userID, action)

	default:
		session.send(protocol.ErrorEvent("undefined_command"))
	}
}
