package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"komal-chat/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

func errorResp(message string) models.ErrorResponse {
	return models.ErrorResponse{Error: message}
}

// Health answers liveness probes.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.OKResponse{OK: true})
}
