// internal/handlers/ratings.go
package handlers

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/oop-opg/chessmate/internal/database"
	"github.com/oop-opg/chessmate/internal/models"
)

// RatingProvider supplies the rating snapshot stored in a ticket.
type RatingProvider interface {
	Rating(ctx context.Context, userID models.UserID) int
}

// StaticRatings gives every player the same rating, effectively disabling
// rating-based gating even when a gap threshold is configured.
type StaticRatings int

func (r StaticRatings) Rating(context.Context, models.UserID) int {
	return int(r)
}

// DBRatings reads ratings from Postgres, falling back to the default on
// lookup failure so a database hiccup never blocks matchmaking.
type DBRatings struct {
	Logger log.FieldLogger
}

func (r DBRatings) Rating(ctx context.Context, userID models.UserID) int {
	rating, err := database.GetUserRating(ctx, userID)
	if err != nil {
		r.Logger.WithError(err).WithField("user_id", userID).
			Warn("rating lookup failed, using default")
		return database.DefaultRating
	}
	return rating
}
