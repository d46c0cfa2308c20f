package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/raushankrgupta/virtual-closet/assistant"
	"github.com/raushankrgupta/virtual-closet/closet"
	"github.com/raushankrgupta/virtual-closet/utils"
)

type MessageRequest struct {
	Text string `json:"text"`
}

type AssistantResponse struct {
	Transcript []assistant.Message `json:"transcript"`
	Busy       bool                `json:"busy"`
}

type MessageResponse struct {
	Reply      assistant.Message   `json:"reply"`
	Transcript []assistant.Message `json:"transcript"`
	Closet     closet.Snapshot     `json:"closet"`
}

func (h *Handler) GetAssistantHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, AssistantResponse{
		Transcript: h.assistant.Transcript(),
		Busy:       h.assistant.Busy(),
	})
}

// SendMessageHandler posts a chat message and returns the reply together
// with the closet, which shows the recommended outfit when one was named.
func (h *Handler) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(&logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Assistant API]")

	var req MessageRequest
	if err := decodeBody(r, &req); err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}

	reply, err := h.assistant.Send(r.Context(), req.Text)
	switch {
	case errors.Is(err, assistant.ErrEmptyMessage):
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, assistant.ErrBusy):
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusConflict)
		return
	case respondGatewayError(w, &logMessageBuilder, err):
		return
	case err != nil:
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.RespondJSON(w, http.StatusOK, MessageResponse{
		Reply:      reply,
		Transcript: h.assistant.Transcript(),
		Closet:     h.snapshot(r.Context()),
	})
}

// ResetAssistantHandler starts a new conversation.
func (h *Handler) ResetAssistantHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(&logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Assistant Reset API]")

	if err := h.assistant.Reset(); err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusConflict)
		return
	}
	utils.RespondJSON(w, http.StatusOK, AssistantResponse{
		Transcript: h.assistant.Transcript(),
		Busy:       h.assistant.Busy(),
	})
}
