package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"komal-chat/internal/handlers"
	"komal-chat/internal/websocket"
)

func New(
	chatHandler *handlers.ChatHandler,
	messageHandler *handlers.MessageHandler,
	pageHandler *handlers.PageHandler,
	wsHub *websocket.Hub,
	static fs.FS,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", handlers.Health)

	// ──── Page + assets ────
	r.Get("/", pageHandler.Index)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	// ──── Chat ────
	r.Post("/chat", chatHandler.Chat)

	// ──── History / admin ────
	r.Route("/messages", func(r chi.Router) {
		r.Get("/", messageHandler.List)
		r.Delete("/", messageHandler.Clear)
		r.Delete("/{id}", messageHandler.Delete)
	})

	// ──── Live events ────
	r.Get("/ws", wsHub.HandleWebSocket)

	return r
}
