// File: internal/handlers/message_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/iyunix/go-counsel/internal/services"
)

type MessageHandler struct {
	messageService *services.MessageService
}

func NewMessageHandler(ms *services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: ms}
}

type sendMessageRequest struct {
	CaseID  string `json:"case_id"`
	Sender  string `json:"sender"`
	Content string `json:"content"`
}

// SendMessage appends a chat entry to a case. The sender role comes from the
// request body and is trusted as-is; see MessageService.Append.
func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.messageService.Append(r.Context(), req.CaseID, req.Sender, req.Content); err != nil {
		writeError(w, "Could not send message", statusFor(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}
