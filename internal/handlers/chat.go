package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"komal-chat/internal/models"
	"komal-chat/internal/services"
)

// Client-facing strings for the chat endpoint.
const (
	msgRequired       = "Message is required."
	msgMissingKey     = "GEMINI_API_KEY missing in .env"
	replyMissingKey   = "Set GEMINI_API_KEY and restart."
	msgUpstreamFailed = "Gemini error"
	replySnag         = "Hmm, I hit a snag. Try again in a moment."
)

type chatService interface {
	Chat(ctx context.Context, message string) (*services.ChatResult, error)
}

type ChatHandler struct {
	chatService chatService
}

func NewChatHandler(chatService chatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	message, err := readMessage(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Invalid request body"))
		return
	}

	result, err := h.chatService.Chat(r.Context(), message)
	if err != nil {
		handleChatError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{
		Reply:       result.Reply,
		UserID:      result.UserID,
		AssistantID: result.AssistantID,
	})
}

// readMessage accepts JSON bodies and plain HTML form posts.
func readMessage(r *http.Request) (string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return "", err
		}
		return r.PostForm.Get("message"), nil
	}

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", err
	}
	return req.Message, nil
}

func handleChatError(w http.ResponseWriter, err error) {
	var (
		validationErr *models.ValidationError
		configErr     *models.ConfigurationError
	)

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResp(msgRequired))
	case errors.As(err, &configErr):
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: msgMissingKey, Reply: replyMissingKey})
	default:
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: msgUpstreamFailed, Reply: replySnag})
	}
}
