package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	createAppointment "github.com/m04kA/SMC-ClinicScheduler/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	PatientID       int64   `json:"patientId"`
	PractitionerID  int64   `json:"practitionerId"`
	ClinicID        int64   `json:"clinicId"`
	Date            string  `json:"date"`      // "2024-01-16"
	StartTime       string  `json:"startTime"` // "10:00"
	EndTime         string  `json:"endTime"`   // "11:00"
	DurationMinutes int     `json:"durationMinutes"`
	ProcedureType   string  `json:"procedureType"`
	Notes           *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model созданного приема
type AppointmentResponse struct {
	ID              int64    `json:"id"`
	PatientID       int64    `json:"patientId"`
	PractitionerID  int64    `json:"practitionerId"`
	ClinicID        int64    `json:"clinicId"`
	Date            string   `json:"date"`
	StartTime       string   `json:"startTime"`
	EndTime         string   `json:"endTime"`
	DurationMinutes int      `json:"durationMinutes"`
	ProcedureType   string   `json:"procedureType"`
	Status          string   `json:"status"`
	Notes           *string  `json:"notes,omitempty"`
	Warnings        []string `json:"warnings,omitempty"`
	CreatedAt       string   `json:"createdAt"`
	UpdatedAt       string   `json:"updatedAt"`
}

// RejectionResponse HTTP response model отказа по правилам или конфликту
type RejectionResponse struct {
	IsValid   bool                     `json:"isValid"`
	Errors    []domain.ValidationError `json:"errors"`
	Warnings  []string                 `json:"warnings"`
	Conflicts []domain.Conflict        `json:"conflicts,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		PatientID:       r.PatientID,
		PractitionerID:  r.PractitionerID,
		ClinicID:        r.ClinicID,
		Date:            date,
		StartTime:       types.TimeString(r.StartTime),
		EndTime:         types.TimeString(r.EndTime),
		DurationMinutes: r.DurationMinutes,
		ProcedureType:   domain.ProcedureType(r.ProcedureType),
		Notes:           r.Notes,
	}, nil
}

// FromCreatedResponse конвертирует успешный ответ use case в HTTP response
func FromCreatedResponse(resp *createAppointment.Response) *AppointmentResponse {
	a := resp.Appointment
	return &AppointmentResponse{
		ID:              a.ID,
		PatientID:       a.PatientID,
		PractitionerID:  a.PractitionerID,
		ClinicID:        a.ClinicID,
		Date:            a.Date.Format(domain.DateFormat),
		StartTime:       a.StartTime.String(),
		EndTime:         a.EndTime.String(),
		DurationMinutes: a.DurationMinutes,
		ProcedureType:   a.ProcedureType,
		Status:          a.Status,
		Notes:           a.Notes,
		Warnings:        resp.Warnings,
		CreatedAt:       a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       a.UpdatedAt.Format(time.RFC3339),
	}
}

// FromRejectedResponse конвертирует отказ use case в HTTP response
func FromRejectedResponse(resp *createAppointment.Response) *RejectionResponse {
	return &RejectionResponse{
		IsValid:   false,
		Errors:    resp.Errors,
		Warnings:  resp.Warnings,
		Conflicts: resp.Conflicts,
	}
}
