package access_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/userservice"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/access"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

type usersMock struct {
	mock.Mock
}

func (m *usersMock) GetUserWithGracefulDegradation(ctx context.Context, userID int64) (*userservice.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*userservice.User)
	return user, args.Error(1)
}

func TestCheckOwner(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for name, tc := range map[string]struct {
		user *userservice.User
		err  error
		want error
	}{
		"mentor":    {user: &userservice.User{ID: 5, Role: userservice.RoleMentor, IsActive: true}},
		"mentee":    {user: &userservice.User{ID: 5, Role: userservice.RoleMentee, IsActive: true}, want: access.ErrNotMentor},
		"inactive":  {user: &userservice.User{ID: 5, Role: userservice.RoleMentor}, want: access.ErrNotMentor},
		"not found": {err: userservice.ErrUserNotFound, want: access.ErrNotMentor},
		"degraded":  {err: fmt.Errorf("%w: timeout", userservice.ErrServiceDegraded)},
	} {
		users := &usersMock{}
		users.On("GetUserWithGracefulDegradation", ctx, int64(5)).Return(tc.user, tc.err)

		err := access.NewChecker(users, logger.NewNop()).CheckOwner(ctx, 5, 5)
		if tc.want == nil {
			assert.NoError(t, err, name)
		} else {
			assert.ErrorIs(t, err, tc.want, name)
		}
	}
}

func TestCheckOwner_OtherMentor(t *testing.T) {
	t.Parallel()

	users := &usersMock{}
	err := access.NewChecker(users, logger.NewNop()).CheckOwner(context.Background(), 5, 6)
	assert.ErrorIs(t, err, access.ErrAccessDenied)
	users.AssertNotCalled(t, "GetUserWithGracefulDegradation", mock.Anything, mock.Anything)
}

func TestCheckOwner_NoUserService(t *testing.T) {
	t.Parallel()

	assert.NoError(t, access.NewChecker(nil, logger.NewNop()).CheckOwner(context.Background(), 5, 5))
}
