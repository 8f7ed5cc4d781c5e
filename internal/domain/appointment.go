package domain

import (
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled  AppointmentStatus = "scheduled"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusNoShow     AppointmentStatus = "no_show"
)

// Appointment represents a clinic appointment in the system
type Appointment struct {
	ID              int64
	PatientID       int64
	PractitionerID  int64
	ClinicID        int64
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	ProcedureType   ProcedureType
	Status          AppointmentStatus

	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies its time slot.
// Cancelled and no-show appointments do not participate in conflict scanning.
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled && a.Status != StatusNoShow
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusScheduled || a.Status == StatusConfirmed
}

// CanTransitionTo reports whether the status progression allows moving to target.
// The progression is scheduled -> confirmed -> in_progress -> completed, with
// cancellation allowed before the visit starts and no_show from confirmed.
func (a *Appointment) CanTransitionTo(target AppointmentStatus) bool {
	switch a.Status {
	case StatusScheduled:
		return target == StatusConfirmed || target == StatusCancelled
	case StatusConfirmed:
		return target == StatusInProgress || target == StatusCancelled || target == StatusNoShow
	case StatusInProgress:
		return target == StatusCompleted
	default:
		return false
	}
}

// ClinicAppointmentsFilter filter for fetching a clinic's appointments
type ClinicAppointmentsFilter struct {
	ClinicID        int64              // Required
	PractitionerID  *int64             // Optional practitioner filter
	PatientID       *int64             // Optional patient filter
	StartDate       *time.Time         // Optional period start
	EndDate         *time.Time         // Optional period end
	Status          *AppointmentStatus // Optional status filter
	IncludeInactive bool               // Include cancelled and no-show appointments
}
