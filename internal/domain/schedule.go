package domain

import (
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/pkg/types"
)

// WorkingHours describes a clinic's working window for one weekday.
// When IsWorkingDay is false the start and end times are ignored.
type WorkingHours struct {
	Weekday      time.Weekday
	StartTime    types.TimeString
	EndTime      types.TimeString
	IsWorkingDay bool
}

// WeeklySchedule maps every weekday to its working window
type WeeklySchedule map[time.Weekday]WorkingHours

// WindowFor returns the working window for the given date's weekday
func (s WeeklySchedule) WindowFor(date time.Time) WorkingHours {
	if wh, ok := s[date.Weekday()]; ok {
		return wh
	}
	return WorkingHours{Weekday: date.Weekday(), IsWorkingDay: false}
}

// DefaultWeeklySchedule returns the built-in schedule used for clinics
// without custom configuration: Monday-Friday 08:00-18:00,
// Saturday 08:00-14:00, Sunday closed.
// A fresh value is returned on every call so callers cannot mutate shared state.
func DefaultWeeklySchedule() WeeklySchedule {
	schedule := WeeklySchedule{}

	for day := time.Monday; day <= time.Friday; day++ {
		schedule[day] = WorkingHours{
			Weekday:      day,
			StartTime:    "08:00",
			EndTime:      "18:00",
			IsWorkingDay: true,
		}
	}

	schedule[time.Saturday] = WorkingHours{
		Weekday:      time.Saturday,
		StartTime:    "08:00",
		EndTime:      "14:00",
		IsWorkingDay: true,
	}
	schedule[time.Sunday] = WorkingHours{
		Weekday:      time.Sunday,
		IsWorkingDay: false,
	}

	return schedule
}

// Holiday describes a clinic closure. Recurring holidays are stored as "MM-DD"
// and match that month-day every year; one-off holidays are stored as
// "YYYY-MM-DD" and match the exact calendar date.
type Holiday struct {
	Date        string
	Name        string
	IsRecurring bool
}

// Matches reports whether the holiday falls on the given date
func (h Holiday) Matches(date time.Time) bool {
	if h.IsRecurring {
		return h.Date == date.Format(MonthDayFormat)
	}
	return h.Date == date.Format(DateFormat)
}

// NationalHolidays returns the built-in recurring national holiday set.
// Clinic-specific holidays are always additive to this list, never a replacement.
// A fresh slice is returned on every call so callers cannot mutate shared state.
func NationalHolidays() []Holiday {
	return []Holiday{
		{Date: "01-01", Name: "New Year's Day", IsRecurring: true},
		{Date: "05-01", Name: "International Workers' Day", IsRecurring: true},
		{Date: "05-09", Name: "Victory Day", IsRecurring: true},
		{Date: "06-12", Name: "Russia Day", IsRecurring: true},
		{Date: "11-04", Name: "Unity Day", IsRecurring: true},
		{Date: "12-25", Name: "Christmas Day", IsRecurring: true},
	}
}
