package commit_schedule

// Request модель запроса на фиксацию расписания
type Request struct {
	UserID   int64
	MentorID int64
}
