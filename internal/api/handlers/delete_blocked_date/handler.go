package delete_blocked_date

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	blockedDates "github.com/m04kA/SMC-AvailabilityService/internal/service/blocked_dates"
)

const (
	msgInvalidMentorID = "некорректный ID ментора"
	msgInvalidID       = "некорректный ID блокировки"
	msgUnauthorized    = "пользователь не определен"
	msgForbidden       = "доступ запрещен"
	msgNotFound        = "блокировка не найдена"
)

type Handler struct {
	service BlockedDatesService
	logger  Logger
}

func NewHandler(service BlockedDatesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/mentors/{mentorId}/blocked-dates/{blockedDateId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	mentorID, err := handlers.PathID(r, "mentorId")
	if err != nil {
		h.logger.Warn("DELETE /mentors/{id}/blocked-dates/{id} - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	id, err := handlers.PathID(r, "blockedDateId")
	if err != nil {
		h.logger.Warn("DELETE /mentors/{id}/blocked-dates/{id} - Invalid blocked date ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	if err := h.service.Delete(r.Context(), mentorID, id, userID); err != nil {
		switch {
		case errors.Is(err, blockedDates.ErrBlockedDateNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, blockedDates.ErrAccessDenied):
			h.logger.Warn("DELETE /mentors/{id}/blocked-dates/{id} - Access denied: mentor_id=%d, user_id=%d", mentorID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /mentors/{id}/blocked-dates/{id} - Failed to delete: mentor_id=%d, id=%d, error=%v",
				mentorID, id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /mentors/{id}/blocked-dates/{id} - Blocked date removed: mentor_id=%d, id=%d", mentorID, id)
	w.WriteHeader(http.StatusNoContent)
}
