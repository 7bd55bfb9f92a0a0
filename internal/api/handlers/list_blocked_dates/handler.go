package list_blocked_dates

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	blockedDates "github.com/m04kA/SMC-AvailabilityService/internal/service/blocked_dates"
)

const (
	msgInvalidMentorID = "некорректный ID ментора"
	msgInvalidParams   = "некорректные параметры запроса, ожидается YYYY-MM-DD"
	msgInvalidRange    = "дата окончания раньше даты начала"
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

// Handle GET /api/v1/mentors/{mentorId}/blocked-dates
// Query params: from, to (опционально, YYYY-MM-DD)
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	mentorID, err := handlers.PathID(r, "mentorId")
	if err != nil {
		h.logger.Warn("GET /mentors/{id}/blocked-dates - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(mentorID, query.Get("from"), query.Get("to"))
	if err != nil {
		h.logger.Warn("GET /mentors/{id}/blocked-dates - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, blockedDates.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidRange)
			return
		}
		h.logger.Error("GET /mentors/{id}/blocked-dates - Failed to list blocked dates: mentor_id=%d, error=%v",
			mentorID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /mentors/{id}/blocked-dates - Blocked dates retrieved: mentor_id=%d, count=%d",
		mentorID, len(result.BlockedDates))
	handlers.RespondJSON(w, http.StatusOK, result)
}
