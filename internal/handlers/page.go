package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"komal-chat/internal/models"
)

type PageHandler struct {
	messageRepo historyReader
	tmpl        *template.Template
	persona     string
}

// NewPageHandler parses templates/*.html from fsys.
func NewPageHandler(messageRepo historyReader, fsys fs.FS, personaName string) (*PageHandler, error) {
	h := &PageHandler{messageRepo: messageRepo, persona: personaName}

	tmpl, err := template.New("").Funcs(template.FuncMap{
		"speaker": h.speaker,
	}).ParseFS(fsys, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	h.tmpl = tmpl
	return h, nil
}

type indexData struct {
	Persona string
	History []*models.Message
}

func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	data := indexData{
		Persona: h.persona,
		History: loadHistory(r.Context(), h.messageRepo),
	}

	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "index.html", data); err != nil {
		log.Printf("Failed to render index: %v", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

func (h *PageHandler) speaker(role models.Role) string {
	switch role {
	case models.RoleUser:
		return "You"
	case models.RoleAssistant:
		return h.persona
	default:
		return string(role)
	}
}
