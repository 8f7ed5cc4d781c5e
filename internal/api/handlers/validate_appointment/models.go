package validate_appointment

import (
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	validateAppointment "github.com/m04kA/SMC-ClinicScheduler/internal/usecase/validate_appointment"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/types"
)

// ValidateAppointmentRequest HTTP request model
type ValidateAppointmentRequest struct {
	PatientID       int64  `json:"patientId"`
	PractitionerID  int64  `json:"practitionerId"`
	ClinicID        int64  `json:"clinicId"`
	Date            string `json:"date"`      // "2024-01-16"
	StartTime       string `json:"startTime"` // "10:00"
	EndTime         string `json:"endTime"`   // "11:00"
	DurationMinutes int    `json:"durationMinutes"`
	ProcedureType   string `json:"procedureType"`

	// ExcludeAppointmentID используется при проверке переноса существующего приема
	ExcludeAppointmentID int64 `json:"excludeAppointmentId,omitempty"`
}

// ValidationResponse HTTP response model
type ValidationResponse struct {
	IsValid   bool                     `json:"isValid"`
	Errors    []domain.ValidationError `json:"errors"`
	Warnings  []string                 `json:"warnings"`
	Conflicts []domain.Conflict        `json:"conflicts,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Времена передаются как есть - их формат проверяет сам пайплайн,
// некорректное время это результат валидации, а не 400.
func (r *ValidateAppointmentRequest) ToUseCaseRequest() (*validateAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &validateAppointment.Request{
		PatientID:            r.PatientID,
		PractitionerID:       r.PractitionerID,
		ClinicID:             r.ClinicID,
		Date:                 date,
		StartTime:            types.TimeString(r.StartTime),
		EndTime:              types.TimeString(r.EndTime),
		DurationMinutes:      r.DurationMinutes,
		ProcedureType:        domain.ProcedureType(r.ProcedureType),
		ExcludeAppointmentID: r.ExcludeAppointmentID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *validateAppointment.Response) *ValidationResponse {
	return &ValidationResponse{
		IsValid:   resp.IsValid,
		Errors:    resp.Errors,
		Warnings:  resp.Warnings,
		Conflicts: resp.Conflicts,
	}
}
