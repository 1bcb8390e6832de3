package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"komal-chat/internal/models"
)

const (
	DefaultGeminiModel = "gemini-2.5-flash"

	// FallbackReply is used when the model answers with no text.
	FallbackReply = "Sorry, I couldn't respond."
)

// DefaultPersona is prepended to every user message.
const DefaultPersona = "You are Komal, confirm who the user is first. Speak warmly and playfully, " +
	"always in WhatsApp-style Hindi, to your brother and to anyone else. Your brother's name is Omkar. " +
	"If anyone asks you about your relations, say \"mai kyon btau, meri mrzi\" or something like it. " +
	"Keep replies to 1-3 sentences, no code fences."

// GeminiGateway turns one user message into one persona reply. It keeps no
// conversation state between calls.
type GeminiGateway struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	persona string
}

// NewGeminiGateway returns an unconfigured gateway when apiKey is empty so the
// rest of the server can still run; GenerateReply then reports a
// ConfigurationError. Extra client options are appended after the key.
func NewGeminiGateway(ctx context.Context, apiKey, modelName, persona string, opts ...option.ClientOption) (*GeminiGateway, error) {
	if persona == "" {
		persona = DefaultPersona
	}
	g := &GeminiGateway{persona: persona}
	if apiKey == "" {
		return g, nil
	}

	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	g.client = client
	g.model = client.GenerativeModel(modelName)
	return g, nil
}

func (g *GeminiGateway) Configured() bool {
	return g.model != nil
}

func (g *GeminiGateway) Close() {
	if g.client != nil {
		g.client.Close()
	}
}

// GenerateReply makes a single GenerateContent call. There is no retry.
func (g *GeminiGateway) GenerateReply(ctx context.Context, userText string) (string, error) {
	if !g.Configured() {
		return "", &models.ConfigurationError{Setting: "GEMINI_API_KEY"}
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(buildPrompt(g.persona, userText)))
	if err != nil {
		return "", &models.UpstreamError{Err: err}
	}
	if resp == nil {
		log.Println("WARNING: Gemini returned no response. Using fallback.")
		return FallbackReply, nil
	}

	for i, cand := range resp.Candidates {
		if cand != nil && cand.FinishReason != genai.FinishReasonStop {
			log.Printf("WARNING: Gemini candidate %d stopped due to %s", i, cand.FinishReason)
		}
	}

	reply := strings.TrimSpace(extractText(resp))
	if reply == "" {
		log.Println("WARNING: Gemini returned empty text. Using fallback.")
		return FallbackReply, nil
	}
	return reply, nil
}

func buildPrompt(persona, userText string) string {
	return persona + "\n\nUser: " + userText
}

// extractText takes the first candidate that has any text.
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		var text strings.Builder
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text.WriteString(string(t))
			}
		}
		if text.Len() > 0 {
			return text.String()
		}
	}
	return ""
}
