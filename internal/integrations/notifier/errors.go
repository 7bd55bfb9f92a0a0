package notifier

import "errors"

var (
	// ErrConnect возвращается, если не удалось подключиться к NATS
	ErrConnect = errors.New("notifier: failed to connect to nats")

	// ErrPublish возвращается при ошибке публикации события
	ErrPublish = errors.New("notifier: failed to publish event")
)
