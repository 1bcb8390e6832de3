package models

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the reply from the persona. The ids are set only for
// turns that were actually saved.
type ChatResponse struct {
	Reply       string `json:"reply"`
	UserID      string `json:"userId,omitempty"`
	AssistantID string `json:"assistantId,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Reply string `json:"reply,omitempty"`
}

type OKResponse struct {
	OK           bool   `json:"ok"`
	DeletedCount *int64 `json:"deletedCount,omitempty"`
}

type HistoryResponse struct {
	Messages []*Message `json:"messages"`
}
