package userservice_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/userservice"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

func newServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/users/42", r.URL.Path)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGetUser(t *testing.T) {
	t.Parallel()

	srv := newServer(t, http.StatusOK, `{"id":42,"name":"Anna","role":"mentor","is_active":true}`)
	client := userservice.NewClient(srv.URL, time.Second, logger.NewNop())

	user, err := client.GetUser(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	assert.True(t, user.IsMentor())
}

func TestGetUser_NotFound(t *testing.T) {
	t.Parallel()

	srv := newServer(t, http.StatusNotFound, `{"code":404,"message":"not found"}`)
	client := userservice.NewClient(srv.URL, time.Second, logger.NewNop())

	_, err := client.GetUserWithGracefulDegradation(context.Background(), 42)
	assert.ErrorIs(t, err, userservice.ErrUserNotFound)
}

func TestGetUser_Degraded(t *testing.T) {
	t.Parallel()

	srv := newServer(t, http.StatusBadGateway, `upstream down`)
	client := userservice.NewClient(srv.URL, time.Second, logger.NewNop())

	_, err := client.GetUser(context.Background(), 42)
	assert.ErrorIs(t, err, userservice.ErrInvalidResponse)

	_, err = client.GetUserWithGracefulDegradation(context.Background(), 42)
	assert.ErrorIs(t, err, userservice.ErrServiceDegraded)
}

func TestUser_IsMentor(t *testing.T) {
	t.Parallel()

	assert.False(t, (&userservice.User{Role: userservice.RoleMentee, IsActive: true}).IsMentor())
	assert.False(t, (&userservice.User{Role: userservice.RoleMentor, IsActive: false}).IsMentor())
}
