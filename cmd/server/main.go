package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"komal-chat/internal/config"
	"komal-chat/internal/database"
	"komal-chat/internal/handlers"
	"komal-chat/internal/repository"
	"komal-chat/internal/router"
	"komal-chat/internal/services"
	"komal-chat/internal/websocket"
	"komal-chat/web"
)

func main() {
	log.Println("🚀 Starting Komal chat server...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Printf("✓ Environment variables loaded (%s)", cfg.Env)

	// ──── Step 2: Open Message Store ────
	store, err := openMessageStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ Message store initialization failed: %v", err)
	}

	// ──── Step 3: Redis (optional) ────
	var redisClients *database.RedisClients
	if cfg.RedisURL != "" {
		redisClients, err = database.NewRedisClients(cfg.RedisURL)
		if err != nil {
			log.Fatalf("✗ Redis connection failed: %v", err)
		}
		defer redisClients.Close()
		log.Println("✓ Redis connected")
	}

	// ──── Step 4: Initialize Gemini Client ────
	gateway, err := services.NewGeminiGateway(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, cfg.PersonaPrompt)
	if err != nil {
		log.Fatalf("✗ Gemini client initialization failed: %v", err)
	}
	defer gateway.Close()
	if gateway.Configured() {
		log.Printf("✓ Gemini client initialized (%s)", cfg.GeminiModel)
	} else {
		log.Println("✗ GEMINI_API_KEY not set: /chat will report a configuration error")
	}

	// ──── Step 5: Live Events ────
	var events services.Publisher
	var wsHub *websocket.Hub
	if redisClients != nil {
		wsHub = websocket.NewHub(redisClients.Subscriber, services.EventsChannel)
		events = services.NewRedisPublisher(redisClients.Publisher, services.EventsChannel)
	} else {
		wsHub = websocket.NewHub(nil, "")
		events = wsHub
	}
	hubCtx, stopHub := context.WithCancel(context.Background())
	go wsHub.Run(hubCtx)
	log.Println("✓ WebSocket hub started")

	// ──── Initialize Services & Handlers ────
	chatService := services.NewChatService(gateway, store, events)

	chatHandler := handlers.NewChatHandler(chatService)
	messageHandler := handlers.NewMessageHandler(store, events)
	pageHandler, err := handlers.NewPageHandler(store, web.Templates(), cfg.PersonaName)
	if err != nil {
		log.Fatalf("✗ Template parsing failed: %v", err)
	}

	// ──── Step 6: Start HTTP Server ────
	r := router.New(chatHandler, messageHandler, pageHandler, wsHub, web.Static())

	// No WriteTimeout: the Gemini call has no deadline.
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Printf("HTTP shutdown error: %v", err)
		}
		stopHub()
		wsHub.Close()
		if err := store.Close(ctx); err != nil {
			log.Printf("Message store close error: %v", err)
		}
	}()

	log.Printf("✓ Komal server running at http://localhost:%s", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
	<-shutdownDone
}

// openMessageStore builds the store handle for the URL's backend. An
// unreachable database is logged, not fatal: reads degrade to empty history
// and chat replies are still served.
func openMessageStore(url string) (repository.MessageStore, error) {
	driver, err := database.DriverFor(url)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch driver {
	case database.DriverMongo:
		client, dbName, err := database.NewMongoClient(url)
		if err != nil {
			return nil, err
		}
		repo := repository.NewMongoMessageRepo(client, dbName)
		if err := client.Ping(ctx, nil); err != nil {
			log.Printf("✗ MongoDB connection failed: %v", err)
		} else if err := repo.EnsureIndexes(ctx); err != nil {
			log.Printf("✗ MongoDB index creation failed: %v", err)
		} else {
			log.Printf("✓ MongoDB connected (database %q)", dbName)
		}
		return repo, nil

	case database.DriverPostgres:
		pool, err := database.NewPostgresPool(url)
		if err != nil {
			return nil, err
		}
		repo := repository.NewMessageRepo(pool, func(ctx context.Context) error {
			return database.RunMigrations(ctx, pool)
		})
		if err := pool.Ping(ctx); err != nil {
			log.Printf("✗ PostgreSQL connection failed, migrations deferred to first use: %v", err)
		} else if err := repo.EnsureSchema(ctx); err != nil {
			log.Printf("✗ Database migration failed, retrying on first use: %v", err)
		} else {
			log.Println("✓ PostgreSQL connected, migrations applied")
		}
		return repo, nil

	default:
		return nil, fmt.Errorf("no message store for driver %q", driver)
	}
}
