package get_schedule_config

import (
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
)

const (
	msgInvalidMentorID = "некорректный ID ментора"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/mentors/{mentorId}/schedule/config
// Публичный endpoint - без авторизации.
// Если ментор не настраивал правила, возвращаются значения по умолчанию (isDefault=true)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	mentorID, err := handlers.PathID(r, "mentorId")
	if err != nil {
		h.logger.Warn("GET /mentors/{id}/schedule/config - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	result, err := h.service.Get(r.Context(), mentorID)
	if err != nil {
		h.logger.Error("GET /mentors/{id}/schedule/config - Failed to get config: mentor_id=%d, error=%v",
			mentorID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /mentors/{id}/schedule/config - Config retrieved: mentor_id=%d, default=%t",
		mentorID, result.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, result)
}
