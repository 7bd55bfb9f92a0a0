package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

const yamlWeek = `
days:
  Monday:
    slots:
      - {start: "11:00", end: "12:00"}
      - {start: "09:00", end: "10:00", available: false}
  Friday:
    active: false
`

func TestParseWeek_YAML(t *testing.T) {
	week, err := parseWeek([]byte(yamlWeek))
	require.NoError(t, err)

	monday := week.Day(domain.Monday)
	assert.True(t, monday.Active)
	require.Len(t, monday.Slots, 2)
	assert.Equal(t, types.MustParseTimeOfDay("09:00"), monday.Slots[0].Start)
	assert.False(t, monday.Slots[0].Available)
	assert.True(t, monday.Slots[1].Available)

	assert.False(t, week.Day(domain.Friday).Active)
	assert.False(t, week.Day(domain.Sunday).Active)
	assert.Empty(t, week.Day(domain.Sunday).Slots)
}

func TestParseWeek_JSON(t *testing.T) {
	week, err := parseWeek([]byte(`{"days": {"Tuesday": {"active": true, "slots": [{"start": "10:00", "end": "11:30"}]}}}`))
	require.NoError(t, err)
	assert.Equal(t, 1, week.TotalSlots())
	assert.Equal(t, 90, week.Day(domain.Tuesday).Slots[0].Duration())
}

func TestParseWeek_Malformed(t *testing.T) {
	_, err := parseWeek([]byte("days:\n  Funday:\n    active: true\n"))
	assert.ErrorIs(t, err, errMalformedWeek)

	_, err = parseWeek([]byte("days: ["))
	assert.ErrorIs(t, err, errMalformedWeek)
}

func TestCheckWeek(t *testing.T) {
	cfg := domain.DefaultScheduleConfig()
	cfg.BufferMinutes = 15

	overlapping, err := parseWeek([]byte(`
days:
  Monday:
    slots:
      - {start: "09:00", end: "10:00"}
      - {start: "10:10", end: "11:00"}
`))
	require.NoError(t, err)
	assert.ErrorIs(t, checkWeek(overlapping, cfg, false), availability.ErrSlotOverlap)

	empty, err := parseWeek([]byte("days:\n  Monday:\n    active: true\n"))
	require.NoError(t, err)
	assert.NoError(t, checkWeek(empty, cfg, false))
	assert.ErrorIs(t, checkWeek(empty, cfg, true), availability.ErrEmptyActiveDay)
}
