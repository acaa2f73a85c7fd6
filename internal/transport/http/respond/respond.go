package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Message is the error envelope every non-2xx response carries.
type Message struct {
	Message string `json:"message"`
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"Internal server error"}`))

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(data); err != nil {
		slog.Error("Failed to write response", "error", err)
	}
}

// Error writes the standard {"message": ...} error body.
func Error(w http.ResponseWriter, code int, message string) {
	JSON(w, code, Message{Message: message})
}
