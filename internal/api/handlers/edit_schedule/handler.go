package edit_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule/models"
	editSchedule "github.com/m04kA/SMC-AvailabilityService/internal/usecase/edit_schedule"
)

const (
	msgInvalidMentorID    = "некорректный ID ментора"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "пользователь не определен"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	useCase EditScheduleUseCase
	logger  Logger
}

func NewHandler(useCase EditScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/mentors/{mentorId}/schedule/edits
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	mentorID, err := handlers.PathID(r, "mentorId")
	if err != nil {
		h.logger.Warn("POST /mentors/{id}/schedule/edits - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req EditRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /mentors/{id}/schedule/edits - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	edit, err := req.ToEdit()
	if err != nil {
		h.logger.Warn("POST /mentors/{id}/schedule/edits - Invalid edit: %v", err)
		if availability.IsValidationError(err) {
			handlers.RespondValidationError(w, err)
			return
		}
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), &editSchedule.Request{
		UserID:   userID,
		MentorID: mentorID,
		Edit:     edit,
	})
	if err != nil {
		switch {
		case availability.IsValidationError(err):
			h.logger.Warn("POST /mentors/{id}/schedule/edits - Rejected: mentor_id=%d, op=%s, error=%v",
				mentorID, edit.Op, err)
			handlers.RespondValidationError(w, err)

		case errors.Is(err, editSchedule.ErrAccessDenied):
			h.logger.Warn("POST /mentors/{id}/schedule/edits - Access denied: mentor_id=%d, user_id=%d", mentorID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /mentors/{id}/schedule/edits - Failed to edit schedule: mentor_id=%d, error=%v",
				mentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	resp := EditResponse{Schedule: models.FromDomain(result.Schedule)}
	if result.Added != nil {
		resp.Added = &models.SlotDTO{
			Start:           result.Added.Start,
			End:             result.Added.End,
			Available:       result.Added.Available,
			DurationMinutes: result.Added.Duration(),
		}
	}

	h.logger.Info("POST /mentors/{id}/schedule/edits - Edit applied: mentor_id=%d, op=%s", mentorID, edit.Op)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
