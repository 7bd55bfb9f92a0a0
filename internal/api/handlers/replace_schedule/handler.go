package replace_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule/models"
	replaceSchedule "github.com/m04kA/SMC-AvailabilityService/internal/usecase/replace_schedule"
)

const (
	msgInvalidMentorID    = "некорректный ID ментора"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "пользователь не определен"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	useCase ReplaceScheduleUseCase
	logger  Logger
}

func NewHandler(useCase ReplaceScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/mentors/{mentorId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	mentorID, err := handlers.PathID(r, "mentorId")
	if err != nil {
		h.logger.Warn("PUT /mentors/{id}/schedule - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req ReplaceScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /mentors/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	week, err := req.ToWeek()
	if err != nil {
		h.logger.Warn("PUT /mentors/{id}/schedule - Invalid week: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), &replaceSchedule.Request{
		UserID:   userID,
		MentorID: mentorID,
		Week:     week,
	})
	if err != nil {
		switch {
		case availability.IsValidationError(err):
			h.logger.Warn("PUT /mentors/{id}/schedule - Rejected: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondValidationError(w, err)

		case errors.Is(err, replaceSchedule.ErrAccessDenied):
			h.logger.Warn("PUT /mentors/{id}/schedule - Access denied: mentor_id=%d, user_id=%d", mentorID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, replaceSchedule.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /mentors/{id}/schedule - Failed to replace schedule: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /mentors/{id}/schedule - Schedule replaced: mentor_id=%d", mentorID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomain(result))
}
