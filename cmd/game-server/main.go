package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/viper"

	"github.com/cheildo/arcane-duel-backend/internal/analytics"
	"github.com/cheildo/arcane-duel-backend/internal/auth"
	"github.com/cheildo/arcane-duel-backend/internal/catalog"
	"github.com/cheildo/arcane-duel-backend/internal/chat"
	"github.com/cheildo/arcane-duel-backend/internal/game"
	"github.com/cheildo/arcane-duel-backend/internal/pkg/database"
	"github.com/cheildo/arcane-duel-backend/internal/pkg/kafka"
	"github.com/cheildo/arcane-duel-backend/internal/pkg/redis"
	"github.com/cheildo/arcane-duel-backend/internal/transport"
)

func main() {
	// --- Configuration Loading ---
	viper.SetConfigName("game-server")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs/development")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		slog.Error("Failed to read configuration file", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Card Catalog ---
	// The catalog comes from Postgres when configured, otherwise from the
	// compiled-in card set.
	var source catalog.Source = catalog.NewStaticSource()
	if connStr := viper.GetString("database.url"); connStr != "" {
		db, err := database.NewPostgresDB(connStr)
		if err != nil {
			slog.Error("Failed to connect to Postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		source = catalog.NewPostgresSource(db)
		slog.Info("Card catalog source: postgres")
	} else {
		slog.Info("Card catalog source: built-in")
	}
	defs, err := source.Load(ctx)
	if err != nil {
		slog.Error("Failed to load card catalog", "error", err)
		os.Exit(1)
	}
	slog.Info("Card catalog loaded", "cards", len(defs))

	// --- Chat History (Redis when configured) ---
	history := chat.NewMemoryHistory(viper.GetInt("chat.keep_lines"))
	if addr := viper.GetString("redis.addr"); addr != "" {
		rdb, err := redis.NewClient(redis.Config{
			Addr:     addr,
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		})
		if err != nil {
			slog.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		history = chat.NewRedisHistory(rdb, viper.GetString("chat.history_key"), viper.GetInt("chat.keep_lines"))
		slog.Info("Redis connection successful.")
	}

	// --- Match Analytics (Kafka when configured) ---
	var recorder game.Recorder = game.NopRecorder{}
	if brokers := viper.GetStringSlice("kafka.brokers"); len(brokers) > 0 {
		producer := kafka.NewProducer(brokers, viper.GetString("kafka.match_topic"))
		publisher := analytics.NewPublisher(producer)
		defer publisher.Close()
		recorder = publisher
		slog.Info("Kafka match event publisher enabled", "brokers", brokers)
	}

	// --- Dependency Injection ---
	registry := transport.NewRegistry()
	engine := game.NewEngine(game.Config{
		TurnDuration: time.Duration(viper.GetInt("game.turn_seconds")) * time.Second,
		TickInterval: time.Duration(viper.GetInt("game.tick_millis")) * time.Millisecond,
		DeckSize:     viper.GetInt("game.deck_size"),
		OpeningHand:  viper.GetInt("game.opening_hand"),
	}, defs, registry, recorder)

	tokens := auth.NewTokenService(auth.Config{
		JWTSecret:     viper.GetString("auth.jwt_secret"),
		TokenDuration: time.Duration(viper.GetInt("auth.token_ttl_minutes")) * time.Minute,
	})
	chatSvc := chat.NewService(engine, registry, history)
	wsHandler := transport.NewWebsocketHandler(engine, registry, chatSvc, tokens)
	authHandler := auth.NewHTTPHandler(tokens)
	chatHandler := chat.NewHTTPHandler(chatSvc, tokens)

	// --- Start Engine Loop ---
	go engine.Run(ctx)

	// --- HTTP Router and Middleware Setup ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		rooms, players := engine.Stats()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"rooms": rooms, "players": players})
	})
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/guest", authHandler.HandleGuest)
		r.Get("/chat/recent", chatHandler.HandleRecent)
	})
	r.Handle("/ws", wsHandler)

	slog.Info("All routes initialized.")

	// --- HTTP Server Initialization and Graceful Shutdown ---
	httpPort := viper.GetString("http_server.port")
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", httpPort),
		Handler: r,
	}

	go func() {
		slog.Info("Game server starting...", "port", httpPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Could not start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down game server...")
	cancel() // Stop the engine loop.

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown:", "error", err)
	}

	slog.Info("Game server stopped.")
}
