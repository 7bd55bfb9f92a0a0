package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/config"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db"
port = 5433
user = "mentor"
password = "secret"
dbname = "availability"

[logs]
level = "debug"

[schedule]
buffer_minutes = 10
max_slots_per_day = 4
min_session_minutes = 30
business_start = "08:00"
business_end = "20:30"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.Equal(t, "host=db port=5433 user=mentor password=secret dbname=availability sslmode=disable", cfg.Database.DSN())

	assert.Equal(t, 10, cfg.Schedule.BufferMinutes)
	assert.Equal(t, 4, cfg.Schedule.MaxSlotsPerDay)
	assert.Equal(t, 30, cfg.Schedule.MinSessionMinutes)
	assert.Equal(t, types.MustParseTimeOfDay("08:00"), cfg.Schedule.BusinessStart)
	assert.Equal(t, types.MustParseTimeOfDay("20:30"), cfg.Schedule.BusinessEnd)

	// значения по умолчанию
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 120, cfg.Schedule.MinNoticeMinutes)
	assert.Equal(t, 90, cfg.Schedule.MaxAdvanceDays)
	assert.Equal(t, "schedule.committed", cfg.Events.Subject)
}

func TestLoad_ExampleFile(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(filepath.Join("..", "..", "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.Schedule.BufferMinutes)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = config.Load(writeConfig(t, `[server`))
	assert.Error(t, err)

	_, err = config.Load(writeConfig(t, `
[schedule]
business_start = "9am"
`))
	assert.Error(t, err)

	_, err = config.Load(writeConfig(t, `
[schedule]
business_start = "21:00"
business_end = "09:00"
`))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = config.Load(writeConfig(t, `
[cache]
enabled = true
addr = ""
`))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
