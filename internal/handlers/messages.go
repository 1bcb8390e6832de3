package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"komal-chat/internal/models"
	"komal-chat/internal/services"
)

type messageRepository interface {
	ListRecent(ctx context.Context, limit int) ([]*models.Message, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type MessageHandler struct {
	messageRepo messageRepository
	events      services.Publisher
}

func NewMessageHandler(messageRepo messageRepository, events services.Publisher) *MessageHandler {
	return &MessageHandler{
		messageRepo: messageRepo,
		events:      events,
	}
}

func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HistoryResponse{Messages: loadHistory(r.Context(), h.messageRepo)})
}

func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("Message id is required"))
		return
	}

	deleted, err := h.messageRepo.DeleteByID(r.Context(), id)
	if err != nil {
		log.Printf("Failed to delete message %s: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, errorResp("Failed to delete message"))
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, errorResp("Message not found"))
		return
	}

	h.publish(r.Context(), models.Event{Type: models.EventMessageDeleted, Payload: models.DeletedEvent{ID: id}})
	writeJSON(w, http.StatusOK, models.OKResponse{OK: true})
}

func (h *MessageHandler) Clear(w http.ResponseWriter, r *http.Request) {
	count, err := h.messageRepo.DeleteAll(r.Context())
	if err != nil {
		log.Printf("Failed to clear messages: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("Failed to clear messages"))
		return
	}

	h.publish(r.Context(), models.Event{Type: models.EventMessagesCleared, Payload: models.ClearedEvent{DeletedCount: count}})
	writeJSON(w, http.StatusOK, models.OKResponse{OK: true, DeletedCount: &count})
}

func (h *MessageHandler) publish(ctx context.Context, event models.Event) {
	if h.events != nil {
		h.events.Publish(ctx, event)
	}
}

type historyReader interface {
	ListRecent(ctx context.Context, limit int) ([]*models.Message, error)
}

// loadHistory never fails: a store error yields an empty history so the UI
// still renders.
func loadHistory(ctx context.Context, repo historyReader) []*models.Message {
	msgs, err := repo.ListRecent(ctx, models.DefaultHistoryLimit)
	if err != nil {
		log.Printf("WARNING: failed to load history: %v", err)
		return []*models.Message{}
	}
	if msgs == nil {
		return []*models.Message{}
	}
	return msgs
}
