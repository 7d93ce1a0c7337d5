// internal/handlers/feed.go
package handlers

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/oop-opg/chessmate/internal/cache"
	"github.com/oop-opg/chessmate/internal/events"
	"github.com/oop-opg/chessmate/internal/models"
)

// ActionFeed implements game.ActionRecorder by mirroring broadcast action
// outcomes to the configured external feeds: the Redis action queue and the
// NATS session-lifecycle subject. Both are best-effort; the Redis push runs
// on its own goroutine so the pool actor never waits on the network.
type ActionFeed struct {
	UseRedis bool
	Events   *events.Publisher // may be nil
	Logger   log.FieldLogger
}

func (f *ActionFeed) RecordAction(sid models.SessionID, actor models.UserID, result models.ActionResult) {
	if f.UseRedis {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := cache.PushAction(ctx, sid, actor, result); err != nil {
				f.Logger.WithError(err).WithField("session_id", sid).
					Warn("failed to push action record")
			}
		}()
	}
	if result.Terminal() {
		f.Events.PublishSession(sid, "finished")
	}
}
