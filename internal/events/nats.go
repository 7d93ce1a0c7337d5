// internal/events/nats.go

// Package events publishes matchmaking and session-lifecycle events to NATS
// subjects for external consumers. Publishing is strictly best-effort: a
// missing or failing broker never affects pairing or play.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"github.com/oop-opg/chessmate/internal/models"
)

// Subjects published by the server.
const (
	SubjectPairs    = "chessmate.pairs"
	SubjectSessions = "chessmate.sessions"
)

// PairEvent announces a fresh pairing.
type PairEvent struct {
	SessionID uint64 `json:"session_id"`
	First     uint64 `json:"first"`
	Second    uint64 `json:"second"`
	Timestamp int64  `json:"timestamp"`
}

// SessionEvent announces a session lifecycle change ("started", "finished").
type SessionEvent struct {
	SessionID uint64 `json:"session_id"`
	Phase     string `json:"phase"`
	Timestamp int64  `json:"timestamp"`
}

// Publisher wraps a NATS connection. A nil *Publisher is valid and drops
// everything, so callers never need to branch on whether NATS is configured.
type Publisher struct {
	nc  *nats.Conn
	log logrus.FieldLogger
}

// Connect dials the NATS server at url.
func Connect(url string, log logrus.FieldLogger) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("chessmate-server"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}
	return &Publisher{nc: nc, log: log}, nil
}

// Close drains the connection.
func (p *Publisher) Close() {
	if p == nil || p.nc == nil {
		return
	}
	if err := p.nc.Drain(); err != nil {
		p.log.WithError(err).Warn("error draining NATS connection")
	}
}

// PublishPair emits a PairEvent on chessmate.pairs.
func (p *Publisher) PublishPair(sid models.SessionID, users models.Users) {
	if p == nil {
		return
	}
	p.publish(SubjectPairs, PairEvent{
		SessionID: uint64(sid),
		First:     uint64(users.First),
		Second:    uint64(users.Second),
		Timestamp: time.Now().UnixMilli(),
	})
}

// PublishSession emits a SessionEvent on chessmate.sessions.
func (p *Publisher) PublishSession(sid models.SessionID, phase string) {
	if p == nil {
		return
	}
	p.publish(SubjectSessions, SessionEvent{
		SessionID: uint64(sid),
		Phase:     phase,
		Timestamp: time.Now().UnixMilli(),
	})
}

func (p *Publisher) publish(subject string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		p.log.WithError(err).WithField("subject", subject).Error("failed to marshal event")
		return
	}
	if err := p.nc.Publish(subject, data); err != nil {
		p.log.WithError(err).WithField("subject", subject).Warn("failed to publish event")
	}
}
