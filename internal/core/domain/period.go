package domain

import "time"

// MaxPeriodsPerUser caps how many periods a single user may own at any time.
const MaxPeriodsPerUser = 4

// Period is a user-defined, date-bounded container for tasks.
type Period struct {
	ID        string
	UserID    string
	Title     string
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
