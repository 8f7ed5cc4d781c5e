package schedule

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("schedule: invalid input data")

	// ErrInvalidSchedule возвращается при некорректном недельном расписании
	ErrInvalidSchedule = errors.New("schedule: invalid weekly schedule")

	// ErrInvalidHoliday возвращается при некорректном описании праздника
	ErrInvalidHoliday = errors.New("schedule: invalid holiday")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule: internal error")
)
