package domain

import "time"

// BlockedDate removes a specific calendar date from a mentor's availability
// regardless of the weekly pattern
type BlockedDate struct {
	ID        int64
	MentorID  int64
	Date      time.Time // только дата, время 00:00 UTC
	Reason    string
	CreatedAt time.Time
}

// Covers returns true if the blocked date falls on the given day
func (b *BlockedDate) Covers(date time.Time) bool {
	y1, m1, d1 := b.Date.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateOnly отбрасывает время, оставляя дату в UTC
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
