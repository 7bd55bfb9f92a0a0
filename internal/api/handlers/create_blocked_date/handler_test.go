package create_blocked_date_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/create_blocked_date"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	blockedDates "github.com/m04kA/SMC-AvailabilityService/internal/service/blocked_dates"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/blocked_dates/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

type serviceMock struct {
	mock.Mock
}

func (m *serviceMock) Create(ctx context.Context, req *models.CreateRequest) (*models.BlockedDateResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.BlockedDateResponse)
	return resp, args.Error(1)
}

func serve(svc *serviceMock, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/mentors/{mentorId}/blocked-dates",
		create_blocked_date.NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/mentors/5/blocked-dates", strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), 5))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	t.Parallel()

	svc := &serviceMock{}
	svc.On("Create", mock.Anything, &models.CreateRequest{
		UserID:   5,
		MentorID: 5,
		Date:     time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC),
		Reason:   "vacation",
	}).Return(&models.BlockedDateResponse{ID: 1, MentorID: 5, Date: "2026-12-31", Reason: "vacation"}, nil)

	rec := serve(svc, `{"date":"2026-12-31","reason":"vacation"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"date":"2026-12-31"`)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	t.Parallel()

	for name, tc := range map[string]struct {
		body   string
		svcErr error
		want   int
	}{
		"bad date":      {body: `{"date":"31.12.2026"}`, want: http.StatusBadRequest},
		"already":       {body: `{"date":"2026-12-31"}`, svcErr: blockedDates.ErrDateAlreadyBlocked, want: http.StatusConflict},
		"in past":       {body: `{"date":"2026-01-01"}`, svcErr: blockedDates.ErrDateInPast, want: http.StatusBadRequest},
		"long reason":   {body: `{"date":"2026-12-31"}`, svcErr: blockedDates.ErrInvalidInput, want: http.StatusBadRequest},
		"access denied": {body: `{"date":"2026-12-31"}`, svcErr: blockedDates.ErrAccessDenied, want: http.StatusForbidden},
		"internal":      {body: `{"date":"2026-12-31"}`, svcErr: blockedDates.ErrInternal, want: http.StatusInternalServerError},
	} {
		svc := &serviceMock{}
		svc.On("Create", mock.Anything, mock.Anything).Return(nil, tc.svcErr)

		rec := serve(svc, tc.body)
		assert.Equal(t, tc.want, rec.Code, name)
	}
}
