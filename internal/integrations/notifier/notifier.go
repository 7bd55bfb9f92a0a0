package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// Notifier публикует события расписаний в NATS.
// Нулевой conn означает, что события отключены: Publish* ничего не делает.
type Notifier struct {
	conn    Conn
	subject string
	log     Logger
	now     func() time.Time
}

// Connect подключается к NATS с бесконечным переподключением
func Connect(url, subject string, log Logger) (*Notifier, error) {
	conn, err := nats.Connect(url,
		nats.Name("availability-service"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.Timeout(5*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("NATS disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("NATS reconnected to %s", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	return New(conn, subject, log), nil
}

// New создает Notifier поверх готового соединения
func New(conn Conn, subject string, log Logger) *Notifier {
	return &Notifier{
		conn:    conn,
		subject: subject,
		log:     log,
		now:     time.Now,
	}
}

// Disabled Notifier без соединения
func Disabled(log Logger) *Notifier {
	return &Notifier{log: log, now: time.Now}
}

// PublishScheduleCommitted публикует событие о фиксации расписания ментора
func (n *Notifier) PublishScheduleCommitted(ctx context.Context, event ScheduleCommitted) error {
	if n.conn == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	data, err := json.Marshal(message{
		EventType: EventScheduleCommitted,
		Payload:   event,
		Timestamp: n.now().UTC(),
		MessageID: uuid.NewString(),
	})
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrPublish, err)
	}

	if err := n.conn.Publish(n.subject, data); err != nil {
		return fmt.Errorf("%w: subject=%s: %v", ErrPublish, n.subject, err)
	}

	n.log.Info("Published %s for mentor_id=%d to %s", EventScheduleCommitted, event.MentorID, n.subject)
	return nil
}

// Close закрывает соединение с NATS
func (n *Notifier) Close() {
	if n.conn != nil {
		n.conn.Close()
	}
}
