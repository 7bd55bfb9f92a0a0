package create_blocked_date

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	blockedDates "github.com/m04kA/SMC-AvailabilityService/internal/service/blocked_dates"
)

const (
	msgInvalidMentorID    = "некорректный ID ментора"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgUnauthorized       = "пользователь не определен"
	msgForbidden          = "доступ запрещен"
	msgAlreadyBlocked     = "дата уже заблокирована"
	msgDateInPast         = "нельзя заблокировать прошедшую дату"
	msgInvalidData        = "некорректные данные"
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

// Handle POST /api/v1/mentors/{mentorId}/blocked-dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	mentorID, err := handlers.PathID(r, "mentorId")
	if err != nil {
		h.logger.Warn("POST /mentors/{id}/blocked-dates - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBlockedDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /mentors/{id}/blocked-dates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(userID, mentorID)
	if err != nil {
		h.logger.Warn("POST /mentors/{id}/blocked-dates - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, blockedDates.ErrAccessDenied):
			h.logger.Warn("POST /mentors/{id}/blocked-dates - Access denied: mentor_id=%d, user_id=%d", mentorID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, blockedDates.ErrDateAlreadyBlocked):
			handlers.RespondConflict(w, msgAlreadyBlocked)

		case errors.Is(err, blockedDates.ErrDateInPast):
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, blockedDates.ErrInvalidInput):
			h.logger.Warn("POST /mentors/{id}/blocked-dates - Invalid data: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /mentors/{id}/blocked-dates - Failed to block date: mentor_id=%d, error=%v",
				mentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /mentors/{id}/blocked-dates - Date blocked: mentor_id=%d, id=%d, date=%s",
		mentorID, result.ID, result.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
