package domain

// Time format constants
const (
	TimeFormat     = "15:04"      // HH:MM
	DateFormat     = "2006-01-02" // YYYY-MM-DD
	MonthDayFormat = "01-02"      // MM-DD, recurring holidays
)

// Business validation constants
const (
	// ShortNoticeWindowMinutes - запись меньше чем за это время до начала
	// приема помечается предупреждением, но не блокируется
	ShortNoticeWindowMinutes = 120

	// RecommendedSlotStepMinutes - шаг рекомендованных длительностей приема
	RecommendedSlotStepMinutes = 15

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// InactiveStatuses список статусов, не занимающих временной слот.
// Используется при поиске пересечений записей.
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusNoShow,
}

// ActiveStatuses список статусов, занимающих временной слот
var ActiveStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}
