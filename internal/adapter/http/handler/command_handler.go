package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mfcastro/contas/internal/adapter/command"
	"github.com/mfcastro/contas/internal/adapter/http/dto"
)

// CommandHandler exposes the command surface over HTTP.
type CommandHandler struct {
	dispatcher *command.Dispatcher
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(dispatcher *command.Dispatcher) *CommandHandler {
	return &CommandHandler{dispatcher: dispatcher}
}

// Invoke decodes a command request, dispatches it, and writes either the
// result payload or the {kind, message} failure.
func (h *CommandHandler) Invoke(w http.ResponseWriter, r *http.Request) {
	var req dto.CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, command.Failure{
			Kind:    command.KindMalformedRequest,
			Message: "invalid request body",
		})

		return
	}

	result, failure := h.dispatcher.Dispatch(r.Context(), req.Command, command.Args(req.Args))
	if failure != nil {
		writeJSON(w, failureStatus(failure.Kind), failure)
		return
	}

	writeJSON(w, http.StatusOK, dto.CommandResponse{Result: result})
}

func failureStatus(kind string) int {
	switch kind {
	case command.KindNotFound:
		return http.StatusNotFound
	case command.KindValidation, command.KindMalformedRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
