package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/types"
)

// Request модель запроса на создание приема
type Request struct {
	PatientID       int64                // ID пациента
	PractitionerID  int64                // ID врача
	ClinicID        int64                // ID клиники
	Date            time.Time            // Дата приема (без времени)
	StartTime       types.TimeString     // Время начала (например, "10:00")
	EndTime         types.TimeString     // Время окончания (например, "11:00")
	DurationMinutes int                  // Длительность в минутах
	ProcedureType   domain.ProcedureType // Тип процедуры
	Notes           *string              // Дополнительные заметки (опционально)
}

// Response модель ответа на создание приема.
// При нарушениях Appointment == nil, а детали лежат в Validation -
// вызывающая сторона различает отказ по правилам (400) и конфликт (409).
type Response struct {
	Appointment *AppointmentData         `json:"appointment,omitempty"`
	IsValid     bool                     `json:"is_valid"`
	Errors      []domain.ValidationError `json:"errors"`
	Warnings    []string                 `json:"warnings"`
	Conflicts   []domain.Conflict        `json:"conflicts,omitempty"`
}

// AppointmentData данные созданного приема
type AppointmentData struct {
	ID              int64            `json:"id"`
	PatientID       int64            `json:"patient_id"`
	PractitionerID  int64            `json:"practitioner_id"`
	ClinicID        int64            `json:"clinic_id"`
	Date            time.Time        `json:"date"`
	StartTime       types.TimeString `json:"start_time"`
	EndTime         types.TimeString `json:"end_time"`
	DurationMinutes int              `json:"duration_minutes"`
	ProcedureType   string           `json:"procedure_type"`
	Status          string           `json:"status"`
	Notes           *string          `json:"notes,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// toRejectedResponse собирает ответ об отказе из результата валидации
func toRejectedResponse(result *domain.ValidationResult) *Response {
	return &Response{
		IsValid:   false,
		Errors:    result.Errors,
		Warnings:  result.Warnings,
		Conflicts: result.Conflicts,
	}
}

// toCreatedResponse собирает ответ с созданным приемом
func toCreatedResponse(appointment *domain.Appointment, result *domain.ValidationResult) *Response {
	return &Response{
		Appointment: &AppointmentData{
			ID:              appointment.ID,
			PatientID:       appointment.PatientID,
			PractitionerID:  appointment.PractitionerID,
			ClinicID:        appointment.ClinicID,
			Date:            appointment.Date,
			StartTime:       appointment.StartTime,
			EndTime:         appointment.EndTime,
			DurationMinutes: appointment.DurationMinutes,
			ProcedureType:   string(appointment.ProcedureType),
			Status:          string(appointment.Status),
			Notes:           appointment.Notes,
			CreatedAt:       appointment.CreatedAt,
			UpdatedAt:       appointment.UpdatedAt,
		},
		IsValid:   true,
		Errors:    result.Errors,
		Warnings:  result.Warnings,
		Conflicts: result.Conflicts,
	}
}
