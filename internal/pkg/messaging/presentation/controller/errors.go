package controller

import (
	"errors"
	"net/http"

	"github.com/Gauthier1607/squadzone/internal/pkg/messaging/application/usecase"
	messaging "github.com/Gauthier1607/squadzone/internal/pkg/messaging/domain"
)

// statusForError maps use-case failures onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, messaging.ErrConversationNotFound):
		return http.StatusNotFound
	case errors.Is(err, messaging.ErrNotParticipant):
		return http.StatusForbidden
	case errors.Is(err, messaging.ErrConversationAlreadyOpen):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrPersistence):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
