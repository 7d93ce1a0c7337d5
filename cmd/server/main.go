// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/oop-opg/chessmate/internal/cache"
	"github.com/oop-opg/chessmate/internal/database"
	"github.com/oop-opg/chessmate/internal/engine"
	"github.com/oop-opg/chessmate/internal/events"
	"github.com/oop-opg/chessmate/internal/game"
	"github.com/oop-opg/chessmate/internal/handlers"
	"github.com/oop-opg/chessmate/internal/middleware"

	// Playable game types register themselves with the engine registry.
	_ "github.com/oop-opg/chessmate/internal/chess"
	_ "github.com/oop-opg/chessmate/internal/tictactoe"
)

func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gameType := getEnv("GAME_TYPE", "tic_tac_toe")
	rules, ok := engine.Lookup(gameType)
	if !ok {
		log.Fatalf("unknown GAME_TYPE %q, registered: %v", gameType, engine.Names())
	}

	// Rating snapshots come from Postgres when configured, otherwise every
	// player queues at the default rating.
	var ratings handlers.RatingProvider = handlers.StaticRatings(database.DefaultRating)
	if os.Getenv("DATABASE_URL") != "" {
		if err := database.Connect(ctx); err != nil {
			log.Fatalf("database connect failed: %v", err)
		}
		defer database.Close()
		ratings = handlers.DBRatings{Logger: logger}
		logger.Info("rating lookups enabled via Postgres")
	}

	// Optional external feeds.
	var pub *events.Publisher
	if natsURL := os.Getenv("NATS_URL"); natsURL != "" {
		var err error
		pub, err = events.Connect(natsURL, logger)
		if err != nil {
			log.Fatalf("NATS connect failed: %v", err)
		}
		defer pub.Close()
		logger.Infof("publishing events to NATS at %s", natsURL)
	}

	var recorder game.ActionRecorder
	useRedis := os.Getenv("REDIS_ADDR") != ""
	if useRedis {
		if err := cache.Connect(ctx); err != nil {
			log.Fatalf("redis connect failed: %v", err)
		}
		logger.Info("action feed enabled via Redis")
	}
	if useRedis || pub != nil {
		recorder = &handlers.ActionFeed{UseRedis: useRedis, Events: pub, Logger: logger}
	}

	ratingGap := getEnvInt("RATING_GAP", 0)
	gs := handlers.NewGameServer(logger, rules, ratings, pub, recorder, ratingGap)
	gs.Run(ctx)

	mux := http.NewServeMux()
	mux.Handle(handlers.SessionPath(gs), middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.WSHandler(logger, gs),
	)))

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Infof("Serving %s sessions on %s%s", rules.Name(), addr, handlers.SessionPath(gs))
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
