package availability_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

func fullWeek() *domain.WeekSchedule {
	w := domain.NewWeekSchedule()
	for _, d := range domain.AllDays() {
		w.Days[d].Slots = []domain.Slot{slot("09:00", "10:00")}
	}
	return w
}

func TestValidateFullSchedule(t *testing.T) {
	t.Parallel()

	require.NoError(t, availability.ValidateFullSchedule(fullWeek()))

	w := fullWeek()
	w.Days[domain.Tuesday].Slots = nil
	w.Days[domain.Friday].Slots = nil

	err := availability.ValidateFullSchedule(w)
	require.ErrorIs(t, err, availability.ErrEmptyActiveDay)

	var empty *availability.EmptyDayError
	require.True(t, errors.As(err, &empty))
	assert.Equal(t, domain.Tuesday, empty.Day)
	assert.Contains(t, err.Error(), "Tuesday")
}

func TestValidateFullSchedule_InactiveDaysMayBeEmpty(t *testing.T) {
	t.Parallel()

	w := domain.NewWeekSchedule()
	for _, d := range domain.AllDays() {
		require.NoError(t, availability.ToggleDayActive(w, d))
	}
	require.NoError(t, availability.ValidateFullSchedule(w))

	require.NoError(t, availability.ToggleDayActive(w, domain.Sunday))
	err := availability.ValidateFullSchedule(w)
	assert.ErrorIs(t, err, availability.ErrEmptyActiveDay)
	assert.Contains(t, err.Error(), "Sunday")
}

func TestValidateWeek(t *testing.T) {
	t.Parallel()

	cfg := cfgWith(15, 2, 45)

	require.NoError(t, availability.ValidateWeek(fullWeek(), cfg))

	for name, tc := range map[string]struct {
		slots []domain.Slot
		want  error
	}{
		"capacity": {
			slots: []domain.Slot{slot("09:00", "10:00"), slot("11:00", "12:00"), slot("13:00", "14:00")},
			want:  availability.ErrCapacityExceeded,
		},
		"range": {
			slots: []domain.Slot{slot("12:00", "11:00")},
			want:  availability.ErrInvalidRange,
		},
		"duration": {
			slots: []domain.Slot{slot("12:00", "12:30")},
			want:  availability.ErrDurationTooShort,
		},
		"hours": {
			slots: []domain.Slot{slot("08:00", "09:00")},
			want:  availability.ErrOutsideBusinessHours,
		},
		"overlap unsorted": {
			slots: []domain.Slot{slot("12:00", "13:00"), slot("11:00", "12:10")},
			want:  availability.ErrSlotOverlap,
		},
	} {
		w := fullWeek()
		w.Days[domain.Wednesday].Slots = tc.slots
		err := availability.ValidateWeek(w, cfg)
		require.ErrorIs(t, err, tc.want, name)
		assert.Contains(t, err.Error(), "Wednesday", name)
	}
}

func TestValidateWeek_MislabelledDay(t *testing.T) {
	t.Parallel()

	w := fullWeek()
	w.Days[domain.Monday].Day = domain.Friday
	assert.ErrorIs(t, availability.ValidateWeek(w, domain.DefaultScheduleConfig()), domain.ErrInvalidDay)

	availability.Normalize(w)
	assert.NoError(t, availability.ValidateWeek(w, domain.DefaultScheduleConfig()))
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	w := &domain.WeekSchedule{}
	w.Days[domain.Monday].Slots = []domain.Slot{slot("13:00", "14:00"), slot("09:00", "10:00")}

	availability.Normalize(w)

	assert.Equal(t, []domain.Slot{slot("09:00", "10:00"), slot("13:00", "14:00")}, w.Days[domain.Monday].Slots)
	for _, d := range domain.AllDays() {
		assert.Equal(t, d, w.Days[d].Day)
		assert.NotNil(t, w.Days[d].Slots)
	}
}

func TestKind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", availability.Kind(nil))
	assert.Equal(t, "", availability.Kind(errors.New("boom")))
	assert.Equal(t, availability.KindSlotOverlap, availability.Kind(&availability.OverlapError{}))
	assert.Equal(t, availability.KindEmptyActiveDay, availability.Kind(&availability.EmptyDayError{Day: domain.Monday}))
	assert.Equal(t, availability.KindInvalidConfig, availability.Kind(domain.ErrInvalidConfig))
	assert.Equal(t, availability.KindUnknownEdit, availability.Kind(availability.ErrUnknownEdit))
}

// Sequences of random-looking edits never break the sorted and no-overlap invariants
func TestInvariantsHoldAcrossEdits(t *testing.T) {
	t.Parallel()

	cfg := cfgWith(10, 5, 45)
	w := domain.NewWeekSchedule()

	edits := []availability.Edit{
		{Op: availability.OpAdd, Day: domain.Monday},
		{Op: availability.OpAdd, Day: domain.Monday},
		{Op: availability.OpAdd, Day: domain.Monday},
		{Op: availability.OpMove, Day: domain.Monday, Slot: 0, Start: tod("18:00"), End: tod("19:00")},
		{Op: availability.OpUpdate, Day: domain.Monday, Slot: 0, Field: availability.FieldStart, Value: tod("09:00")},
		{Op: availability.OpMove, Day: domain.Monday, Slot: 2, Start: tod("10:05"), End: tod("11:00")},
		{Op: availability.OpAdd, Day: domain.Monday},
		{Op: availability.OpRemove, Day: domain.Monday, Slot: 1},
		{Op: availability.OpAdd, Day: domain.Monday},
		{Op: availability.OpUpdate, Day: domain.Monday, Slot: 1, Field: availability.FieldEnd, Value: tod("12:30")},
		{Op: availability.OpToggle, Day: domain.Monday},
		{Op: availability.OpAdd, Day: domain.Monday},
	}

	for _, e := range edits {
		_ = availability.Apply(w, cfg, e)
		assertSortedAndDisjoint(t, w, cfg.BufferMinutes)
		assert.LessOrEqual(t, len(w.Days[domain.Monday].Slots), cfg.MaxSlotsPerDay)
		require.NoError(t, availability.ValidateWeek(w, cfg))
	}
}
