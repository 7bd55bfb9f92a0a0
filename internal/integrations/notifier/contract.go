package notifier

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Conn часть *nats.Conn, которую использует Notifier
type Conn interface {
	Publish(subj string, data []byte) error
	Close()
}
