package validate_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/types"
)

// validateRequest валидирует структурную корректность запроса.
// Это жесткие ошибки входа (ErrInvalidInput), а не нарушения бизнес-правил.
func validateRequest(req *Request) error {
	if req.PatientID <= 0 {
		return fmt.Errorf("%w: patientID must be positive", ErrInvalidInput)
	}

	if req.PractitionerID <= 0 {
		return fmt.Errorf("%w: practitionerID must be positive", ErrInvalidInput)
	}

	if req.ClinicID <= 0 {
		return fmt.Errorf("%w: clinicID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// checkTimes проверяет формат времен, порядок начала и конца
// и согласованность заявленной длительности с интервалом.
// Возвращает true, если времена пригодны для зависимых проверок
// (рабочие часы, пересечения).
func checkTimes(req *Request, result *domain.ValidationResult) bool {
	timesOK := true

	if err := req.StartTime.Validate(); err != nil {
		result.AddError(domain.KindInvalidTimeFormat, "invalid start time %q: expected HH:MM", req.StartTime.String())
		timesOK = false
	}

	if err := req.EndTime.Validate(); err != nil {
		result.AddError(domain.KindInvalidTimeFormat, "invalid end time %q: expected HH:MM", req.EndTime.String())
		timesOK = false
	}

	if !timesOK {
		return false
	}

	// Начало должно быть строго раньше конца
	if !req.StartTime.IsBefore(req.EndTime) {
		result.AddError(domain.KindInvalidTimeSequence,
			"start time %s must be strictly before end time %s", req.StartTime.String(), req.EndTime.String())
		return false
	}

	// Заявленная длительность должна совпадать с интервалом
	startMinutes, err := req.StartTime.Minutes()
	if err != nil {
		result.AddError(domain.KindInvalidTimeFormat, "invalid start time %q", req.StartTime.String())
		return false
	}
	endMinutes, err := req.EndTime.Minutes()
	if err != nil {
		result.AddError(domain.KindInvalidTimeFormat, "invalid end time %q", req.EndTime.String())
		return false
	}

	intervalMinutes := endMinutes - startMinutes
	if req.DurationMinutes != intervalMinutes {
		result.AddError(domain.KindInvalidDuration,
			"duration %d minutes does not match interval %s-%s (%d minutes)",
			req.DurationMinutes, req.StartTime.String(), req.EndTime.String(), intervalMinutes)
	}

	return true
}

// checkDate проверяет, что прием назначен строго в будущем.
// Прием, начинающийся менее чем за ShortNoticeWindowMinutes до начала,
// допустим, но помечается предупреждением.
func checkDate(req *Request, now time.Time, result *domain.ValidationResult) {
	startAt := appointmentStart(req.Date, req.StartTime)
	if startAt.IsZero() {
		// Формат времени уже зафиксирован как ошибка в checkTimes
		return
	}

	if !startAt.After(now) {
		result.AddError(domain.KindPastDate,
			"appointment start %s %s is not in the future", req.Date.Format(domain.DateFormat), req.StartTime.String())
		return
	}

	if startAt.Sub(now) < time.Duration(domain.ShortNoticeWindowMinutes)*time.Minute {
		result.AddWarning("appointment starts in less than %d hours", domain.ShortNoticeWindowMinutes/60)
	}
}

// appointmentStart собирает дату и время начала в один момент времени.
// При некорректном времени возвращает нулевое значение.
func appointmentStart(date time.Time, startTime types.TimeString) time.Time {
	minutes, err := startTime.Minutes()
	if err != nil {
		return time.Time{}
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return day.Add(time.Duration(minutes) * time.Minute)
}
