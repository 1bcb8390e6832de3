package services

import (
	"context"
	"log"
	"strings"

	"komal-chat/internal/models"
)

// ReplyGenerator is the AI side of a chat exchange.
type ReplyGenerator interface {
	Configured() bool
	GenerateReply(ctx context.Context, userText string) (string, error)
}

type turnWriter interface {
	Insert(ctx context.Context, role models.Role, text string) (*models.Message, error)
}

// ChatResult carries the reply and the ids of the turns that were saved.
// An empty id means that turn failed to persist.
type ChatResult struct {
	Reply       string
	UserID      string
	AssistantID string
}

// ChatService runs one user submission through validation, the AI gateway
// and best-effort persistence.
type ChatService struct {
	gateway ReplyGenerator
	store   turnWriter
	events  Publisher
}

func NewChatService(gateway ReplyGenerator, store turnWriter, events Publisher) *ChatService {
	return &ChatService{
		gateway: gateway,
		store:   store,
		events:  events,
	}
}

// Chat returns a *models.ValidationError for blank input, a
// *models.ConfigurationError when no API key is set and a
// *models.UpstreamError when the AI call fails. Store failures never
// surface here. Once validated, the exchange runs to completion even if the
// caller's context is cancelled.
func (s *ChatService) Chat(ctx context.Context, message string) (*ChatResult, error) {
	text := strings.TrimSpace(message)
	if text == "" {
		return nil, &models.ValidationError{Field: "message", Message: "Message is required."}
	}

	if !s.gateway.Configured() {
		return nil, &models.ConfigurationError{Setting: "GEMINI_API_KEY"}
	}

	ctx = context.WithoutCancel(ctx)

	result := &ChatResult{}
	result.UserID = s.saveTurn(ctx, models.RoleUser, text)

	reply, err := s.gateway.GenerateReply(ctx, text)
	if err != nil {
		log.Printf("Gemini error: %v", err)
		return nil, err
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		reply = FallbackReply
	}

	result.Reply = reply
	result.AssistantID = s.saveTurn(ctx, models.RoleAssistant, reply)
	return result, nil
}

// saveTurn persists one turn and returns its id, or "" after logging the failure.
func (s *ChatService) saveTurn(ctx context.Context, role models.Role, text string) string {
	msg, err := s.store.Insert(ctx, role, text)
	if err != nil {
		switch role {
		case models.RoleUser:
			log.Printf("WARNING: failed to save user message: %v", err)
		case models.RoleAssistant:
			log.Printf("WARNING: failed to save assistant reply: %v", err)
		}
		return ""
	}

	if s.events != nil {
		s.events.Publish(ctx, models.Event{Type: models.EventMessageCreated, Payload: msg})
	}
	return msg.ID
}
