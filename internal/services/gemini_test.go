package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"komal-chat/internal/models"
)

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt("You are Komal.", "hello")

	if !strings.HasPrefix(prompt, "You are Komal.") {
		t.Fatalf("expected persona first, got %q", prompt)
	}
	if !strings.HasSuffix(prompt, "\n\nUser: hello") {
		t.Fatalf("expected user text last, got %q", prompt)
	}
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name     string
		resp     *genai.GenerateContentResponse
		expected string
	}{
		{"nil response", nil, ""},
		{"no candidates", &genai.GenerateContentResponse{}, ""},
		{
			"joins text parts",
			&genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("hi "), genai.Text("there")}}},
			}},
			"hi there",
		},
		{
			"skips empty candidates",
			&genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				nil,
				{Content: nil},
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("second")}}},
			}},
			"second",
		},
		{
			"ignores non-text parts",
			&genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "image/png"}, genai.Text("ok")}}},
			}},
			"ok",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractText(tc.resp); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestGeminiGateway_WithoutAPIKey(t *testing.T) {
	g, err := NewGeminiGateway(context.Background(), "", "", "")
	if err != nil {
		t.Fatalf("expected unconfigured gateway, got error %v", err)
	}
	defer g.Close()

	if g.Configured() {
		t.Fatalf("expected gateway without key to be unconfigured")
	}
	if g.persona != DefaultPersona {
		t.Errorf("expected default persona when none given")
	}

	_, err = g.GenerateReply(context.Background(), "hello")
	var cfgErr *models.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if cfgErr.Setting != "GEMINI_API_KEY" {
		t.Errorf("unexpected setting %q", cfgErr.Setting)
	}
}

func newTestGateway(t *testing.T, handler http.HandlerFunc) *GeminiGateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	g, err := NewGeminiGateway(context.Background(), "test-key", "gemini-test", "You are Komal.",
		option.WithEndpoint(srv.URL),
		option.WithHTTPClient(srv.Client()),
	)
	if err != nil {
		t.Fatalf("failed to build gateway: %v", err)
	}
	t.Cleanup(g.Close)
	return g
}

func TestGeminiGateway_GenerateReply(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantReply string
		wantErr   bool
		wantLog   string
	}{
		{
			name:    "upstream failure",
			status:  http.StatusInternalServerError,
			body:    `{"error":{"code":500,"message":"boom","status":"INTERNAL"}}`,
			wantErr: true,
		},
		{
			name:      "no candidates falls back",
			status:    http.StatusOK,
			body:      `{"candidates":[]}`,
			wantReply: FallbackReply,
			wantLog:   "empty text",
		},
		{
			name:      "text reply is trimmed",
			status:    http.StatusOK,
			body:      `{"candidates":[{"content":{"role":"model","parts":[{"text":"  hi there \n"}]},"finishReason":"STOP"}]}`,
			wantReply: "hi there",
		},
		{
			name:      "truncated reply is logged",
			status:    http.StatusOK,
			body:      `{"candidates":[{"content":{"role":"model","parts":[{"text":"hi"}]},"finishReason":"MAX_TOKENS"}]}`,
			wantReply: "hi",
			wantLog:   "candidate 0 stopped",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotPath, gotBody string
			g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
				raw, _ := io.ReadAll(r.Body)
				gotPath, gotBody = r.URL.Path, string(raw)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				io.WriteString(w, tc.body)
			})

			var logs bytes.Buffer
			log.SetOutput(&logs)
			defer log.SetOutput(os.Stderr)

			reply, err := g.GenerateReply(context.Background(), "hello")

			if !strings.HasSuffix(gotPath, "models/gemini-test:generateContent") {
				t.Errorf("unexpected request path %q", gotPath)
			}
			if !strings.Contains(gotBody, "You are Komal.") || !strings.Contains(gotBody, "User: hello") {
				t.Errorf("prompt not sent, body %s", gotBody)
			}

			if tc.wantErr {
				var upErr *models.UpstreamError
				if !errors.As(err, &upErr) {
					t.Fatalf("expected UpstreamError, got %v", err)
				}
				if upErr.Unwrap() == nil {
					t.Errorf("expected wrapped cause")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if reply != tc.wantReply {
				t.Errorf("expected reply %q, got %q", tc.wantReply, reply)
			}
			if tc.wantLog != "" && !strings.Contains(logs.String(), tc.wantLog) {
				t.Errorf("expected log containing %q, got %q", tc.wantLog, logs.String())
			}
		})
	}
}
