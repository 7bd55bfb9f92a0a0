package access

import "errors"

var (
	// ErrAccessDenied возвращается, если пользователь пытается изменить чужое расписание
	ErrAccessDenied = errors.New("access denied")

	// ErrNotMentor возвращается, если у пользователя нет роли ментора
	ErrNotMentor = errors.New("user is not a mentor")
)
