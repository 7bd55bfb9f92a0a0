package availability_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

func TestApply_Sequence(t *testing.T) {
	cfg := cfgWith(15, 5, 45)
	week := domain.NewWeekSchedule()

	edits := []availability.Edit{
		{Op: availability.OpAdd, Day: domain.Wednesday},
		{Op: availability.OpAdd, Day: domain.Wednesday},
		{Op: availability.OpUpdate, Day: domain.Wednesday, Slot: 1, Field: availability.FieldEnd, Value: tod("11:30")},
		{Op: availability.OpMove, Day: domain.Wednesday, Slot: 0, Start: tod("13:00"), End: tod("14:00")},
		{Op: availability.OpSetAvailable, Day: domain.Wednesday, Slot: 0, Available: false},
		{Op: availability.OpToggle, Day: domain.Sunday},
	}
	for _, e := range edits {
		require.NoError(t, availability.Apply(week, cfg, e), e.Op)
	}

	wed := week.Day(domain.Wednesday)
	assert.Equal(t, []domain.Slot{
		{Start: tod("10:15"), End: tod("11:30"), Available: false},
		{Start: tod("13:00"), End: tod("14:00"), Available: true},
	}, wed.Slots)
	assert.False(t, week.Day(domain.Sunday).Active)

	require.NoError(t, availability.Apply(week, cfg, availability.Edit{Op: availability.OpRemove, Day: domain.Wednesday, Slot: 1}))
	assert.Len(t, wed.Slots, 1)
}

func TestApply_UnknownOp(t *testing.T) {
	week := domain.NewWeekSchedule()
	err := availability.Apply(week, domain.DefaultScheduleConfig(), availability.Edit{Op: "rename"})
	assert.ErrorIs(t, err, availability.ErrUnknownEdit)
	assert.Equal(t, availability.KindUnknownEdit, availability.Kind(err))
	assert.Equal(t, domain.NewWeekSchedule(), week)
}
