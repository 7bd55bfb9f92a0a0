package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/userservice"
)

// Checker проверяет, что пользователь управляет расписанием ментора.
// Пользователь должен совпадать с ментором и иметь роль mentor в UserService.
type Checker struct {
	users  UserServiceClient
	logger Logger
}

// NewChecker создает проверку доступа. users может быть nil,
// тогда роль не проверяется (UserService не настроен).
func NewChecker(users UserServiceClient, logger Logger) *Checker {
	return &Checker{users: users, logger: logger}
}

// CheckOwner возвращает ErrAccessDenied или ErrNotMentor
func (c *Checker) CheckOwner(ctx context.Context, userID, mentorID int64) error {
	if userID != mentorID {
		c.logger.Warn("CheckOwner: user=%d tried to manage schedule of mentor=%d", userID, mentorID)
		return ErrAccessDenied
	}

	if c.users == nil {
		return nil
	}

	user, err := c.users.GetUserWithGracefulDegradation(ctx, userID)
	switch {
	case err == nil:
		if !user.IsMentor() {
			c.logger.Warn("CheckOwner: user=%d has role=%s, active=%t", userID, user.Role, user.IsActive)
			return ErrNotMentor
		}
		return nil
	case errors.Is(err, userservice.ErrUserNotFound):
		return ErrNotMentor
	case errors.Is(err, userservice.ErrServiceDegraded):
		// владение уже подтверждено совпадением ID, роль проверить нельзя
		c.logger.Warn("CheckOwner: role of user=%d not verified: %v", userID, err)
		return nil
	default:
		return fmt.Errorf("CheckOwner: %w", err)
	}
}
