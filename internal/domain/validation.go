package domain

import "fmt"

// ErrorKind is a stable machine-readable identifier of a validation failure.
// Callers branch on the kind; the message is for humans.
type ErrorKind string

const (
	KindInvalidTimeFormat        ErrorKind = "invalid_time_format"
	KindInvalidTimeSequence      ErrorKind = "invalid_time_sequence"
	KindInvalidDuration          ErrorKind = "invalid_duration"
	KindPastDate                 ErrorKind = "past_date"
	KindDurationOutOfRange       ErrorKind = "duration_out_of_range"
	KindOutsideWorkingHours      ErrorKind = "outside_working_hours"
	KindNonWorkingDay            ErrorKind = "non_working_day"
	KindHoliday                  ErrorKind = "holiday"
	KindPractitionerNotInClinic  ErrorKind = "practitioner_not_in_clinic"
	KindPractitionerInactive     ErrorKind = "practitioner_inactive"
	KindPractitionerUnavailable  ErrorKind = "practitioner_unavailable"
	KindSchedulingConflict       ErrorKind = "scheduling_conflict"
	KindDirectoryUnavailable     ErrorKind = "directory_unavailable"
	KindScheduleUnavailable      ErrorKind = "schedule_unavailable"
	KindConflictCheckUnavailable ErrorKind = "conflict_check_unavailable"
)

// ValidationError is one hard violation found while validating a candidate appointment
type ValidationError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// ConflictKind distinguishes who is double-booked
type ConflictKind string

const (
	ConflictPractitionerBusy ConflictKind = "practitioner_busy"
	ConflictPatientBusy      ConflictKind = "patient_busy"
)

// Conflict is one overlap between a candidate and an existing appointment
type Conflict struct {
	Kind          ConflictKind `json:"kind"`
	AppointmentID int64        `json:"appointmentId"`
}

// ValidationResult aggregates all violations and advisories found for one candidate.
// Warnings never affect validity.
type ValidationResult struct {
	Errors    []ValidationError
	Warnings  []string
	Conflicts []Conflict
}

// NewValidationResult returns an empty (valid) result
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		Errors:    []ValidationError{},
		Warnings:  []string{},
		Conflicts: []Conflict{},
	}
}

// IsValid returns true iff no hard errors were recorded
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// AddError records a hard violation
func (r *ValidationResult) AddError(kind ErrorKind, format string, v ...interface{}) {
	r.Errors = append(r.Errors, ValidationError{Kind: kind, Message: fmt.Sprintf(format, v...)})
}

// AddWarning records an advisory that does not affect validity
func (r *ValidationResult) AddWarning(format string, v ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, v...))
}

// AddConflict records a scheduling conflict as a hard error
func (r *ValidationResult) AddConflict(c Conflict) {
	r.Conflicts = append(r.Conflicts, c)
	switch c.Kind {
	case ConflictPractitionerBusy:
		r.AddError(KindSchedulingConflict, "practitioner is busy: overlaps appointment id=%d", c.AppointmentID)
	case ConflictPatientBusy:
		r.AddError(KindSchedulingConflict, "patient is busy: overlaps appointment id=%d", c.AppointmentID)
	}
}

// Merge appends the errors, warnings and conflicts of other into r
func (r *ValidationResult) Merge(other *ValidationResult) {
	if other == nil {
		return
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Conflicts = append(r.Conflicts, other.Conflicts...)
}

// HasKind reports whether at least one error of the given kind was recorded
func (r *ValidationResult) HasKind(kind ErrorKind) bool {
	for _, e := range r.Errors {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
