// internal/database/rating.go
package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oop-opg/chessmate/internal/models"
)

// DefaultRating is assumed for players with no stored rating. It matches
// the seed rating the matchmaker uses when the database is disabled.
const DefaultRating = 1000

// GetUserRating returns the stored matchmaking rating for a user. Unknown
// users get DefaultRating rather than an error, so fresh players can queue
// immediately.
func GetUserRating(ctx context.Context, userID models.UserID) (int, error) {
	q := `SELECT rating FROM users WHERE id = $1`
	var rating int
	err := DB.QueryRow(ctx, q, uint64(userID)).Scan(&rating)
	if errors.Is(err, pgx.ErrNoRows) {
		return DefaultRating, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to fetch rating for user %s: %w", userID, err)
	}
	return rating, nil
}

// UpsertUserRating stores a rating, creating the user row if needed. Used
// by seeding tooling; the server itself never writes ratings.
func UpsertUserRating(ctx context.Context, userID models.UserID, rating int) error {
	q := `
		INSERT INTO users (id, rating) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET rating = EXCLUDED.rating
	`
	return pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, q, uint64(userID), rating)
		return err
	})
}
