// Package cache кэширует зафиксированные расписания менторов в Redis.
// При недоступности Redis сервис продолжает работать напрямую с БД.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

const (
	// DefaultTTL время жизни расписания в кэше
	DefaultTTL = 5 * time.Minute

	// DefaultRetryAfter через сколько кэш снова пробует Redis после ошибки
	DefaultRetryAfter = 30 * time.Second

	// KeySchedule префикс ключа расписания, + mentor_id
	KeySchedule = "availability:schedule:"

	// KeyGeneration префикс счетчика инвалидаций расписания, + mentor_id
	KeyGeneration = "availability:schedule-gen:"

	// GenerationTTL время жизни счетчика, заметно больше TTL расписания
	GenerationTTL = 24 * time.Hour
)

var errStaleGeneration = errors.New("schedule generation changed")

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Recorder учет попаданий в кэш (pkg/metrics)
type Recorder interface {
	RecordCacheLookup(hit bool)
}

type nopRecorder struct{}

func (nopRecorder) RecordCacheLookup(bool) {}

// Config параметры подключения
type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Cache кэш расписаний с отключением при ошибках Redis
type Cache struct {
	client     *redis.Client
	ttl        time.Duration
	retryAfter time.Duration
	log        Logger
	metrics    Recorder
	now        func() time.Time

	mu            sync.RWMutex
	disabledUntil time.Time
}

// cachedSchedule формат расписания в Redis
type cachedSchedule struct {
	MentorID    int64                 `json:"mentor_id"`
	Status      domain.ScheduleStatus `json:"status"`
	CommittedAt *time.Time            `json:"committed_at,omitempty"`
	UpdatedAt   time.Time             `json:"updated_at"`
	Week        *domain.WeekSchedule  `json:"week"`
}

// New подключается к Redis. Если Redis не отвечает, кэш создается выключенным
// и периодически пробует подключиться снова.
func New(cfg Config, log Logger, metrics Recorder) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	c := NewWithClient(client, cfg.TTL, log, metrics)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis cache unavailable at %s, running without caching: %v", cfg.Addr, err)
		c.disable()
		return c
	}

	log.Info("Redis cache initialized (addr=%s, ttl=%s)", cfg.Addr, c.ttl)
	return c
}

// NewWithClient создает кэш поверх готового клиента
func NewWithClient(client *redis.Client, ttl time.Duration, log Logger, metrics Recorder) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &Cache{
		client:     client,
		ttl:        ttl,
		retryAfter: DefaultRetryAfter,
		log:        log,
		metrics:    metrics,
		now:        time.Now,
	}
}

// Close закрывает соединение с Redis
func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// IsAvailable true, если кэш сейчас обращается к Redis
func (c *Cache) IsAvailable() bool {
	if c == nil || c.client == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.now().Before(c.disabledUntil)
}

func (c *Cache) disable() {
	c.mu.Lock()
	c.disabledUntil = c.now().Add(c.retryAfter)
	c.mu.Unlock()
}

func (c *Cache) handleError(err error, operation string) {
	if err == nil || errors.Is(err, redis.Nil) {
		return
	}
	c.log.Warn("cache %s failed, disabling cache for %s: %v", operation, c.retryAfter, err)
	c.disable()
}

func scheduleKey(mentorID int64) string {
	return fmt.Sprintf("%s%d", KeySchedule, mentorID)
}

func generationKey(mentorID int64) string {
	return fmt.Sprintf("%s%d", KeyGeneration, mentorID)
}

// parseGeneration разбирает значение ключа поколения из MGET/GET, отсутствие ключа = 0
func parseGeneration(v interface{}) int64 {
	str, ok := v.(string)
	if !ok {
		return 0
	}
	gen, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return 0
	}
	return gen
}

// GetSchedule возвращает расписание из кэша. Ошибки Redis считаются промахом.
// При промахе возвращает текущее поколение ключа: его нужно передать в SetSchedule
// после чтения из БД.
func (c *Cache) GetSchedule(ctx context.Context, mentorID int64) (*domain.MentorSchedule, int64, bool) {
	if !c.IsAvailable() {
		return nil, 0, false
	}

	values, err := c.client.MGet(ctx, scheduleKey(mentorID), generationKey(mentorID)).Result()
	if err != nil || len(values) != 2 {
		c.handleError(err, "get")
		c.metrics.RecordCacheLookup(false)
		return nil, 0, false
	}
	gen := parseGeneration(values[1])

	data, ok := values[0].(string)
	if !ok {
		c.metrics.RecordCacheLookup(false)
		return nil, gen, false
	}

	var cached cachedSchedule
	if err := json.Unmarshal([]byte(data), &cached); err != nil || cached.Week == nil {
		c.log.Warn("cache: dropping malformed schedule for mentor_id=%d", mentorID)
		c.Invalidate(ctx, mentorID)
		c.metrics.RecordCacheLookup(false)
		return nil, gen + 1, false
	}

	c.metrics.RecordCacheLookup(true)
	return &domain.MentorSchedule{
		MentorID:    cached.MentorID,
		Week:        cached.Week,
		Status:      cached.Status,
		CommittedAt: cached.CommittedAt,
		UpdatedAt:   cached.UpdatedAt,
	}, gen, true
}

// SetSchedule сохраняет расписание с TTL, если с момента чтения (generation из GetSchedule)
// расписание никто не инвалидировал. Иначе запись пропускается.
func (c *Cache) SetSchedule(ctx context.Context, schedule *domain.MentorSchedule, generation int64) {
	if !c.IsAvailable() || schedule == nil {
		return
	}

	data, err := json.Marshal(cachedSchedule{
		MentorID:    schedule.MentorID,
		Status:      schedule.Status,
		CommittedAt: schedule.CommittedAt,
		UpdatedAt:   schedule.UpdatedAt,
		Week:        schedule.Week,
	})
	if err != nil {
		c.log.Warn("cache: marshal schedule for mentor_id=%d: %v", schedule.MentorID, err)
		return
	}

	genKey := generationKey(schedule.MentorID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if parseGeneration(current) != generation {
			return errStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, scheduleKey(schedule.MentorID), data, c.ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleGeneration), errors.Is(err, redis.TxFailedErr):
		c.log.Info("cache: skip stale schedule for mentor_id=%d", schedule.MentorID)
	default:
		c.handleError(err, "set")
	}
}

// Invalidate удаляет расписание ментора из кэша и сдвигает поколение,
// чтобы параллельные читатели не вернули в кэш старую версию
func (c *Cache) Invalidate(ctx context.Context, mentorID int64) {
	if !c.IsAvailable() {
		return
	}
	genKey := generationKey(mentorID)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, scheduleKey(mentorID))
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, GenerationTTL)
		return nil
	})
	if err != nil {
		c.handleError(err, "delete")
	}
}
