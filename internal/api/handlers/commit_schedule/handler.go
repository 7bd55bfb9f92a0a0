package commit_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule/models"
	commitSchedule "github.com/m04kA/SMC-AvailabilityService/internal/usecase/commit_schedule"
)

const (
	msgInvalidMentorID = "некорректный ID ментора"
	msgUnauthorized    = "пользователь не определен"
	msgForbidden       = "доступ запрещен"
)

type Handler struct {
	useCase CommitScheduleUseCase
	logger  Logger
}

func NewHandler(useCase CommitScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/mentors/{mentorId}/schedule/commit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	mentorID, err := handlers.PathID(r, "mentorId")
	if err != nil {
		h.logger.Warn("POST /mentors/{id}/schedule/commit - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &commitSchedule.Request{
		UserID:   userID,
		MentorID: mentorID,
	})
	if err != nil {
		switch {
		case availability.IsValidationError(err):
			h.logger.Warn("POST /mentors/{id}/schedule/commit - Rejected: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondValidationError(w, err)

		case errors.Is(err, commitSchedule.ErrAccessDenied):
			h.logger.Warn("POST /mentors/{id}/schedule/commit - Access denied: mentor_id=%d, user_id=%d", mentorID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /mentors/{id}/schedule/commit - Failed to commit schedule: mentor_id=%d, error=%v",
				mentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /mentors/{id}/schedule/commit - Schedule committed: mentor_id=%d", mentorID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomain(result))
}
