package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// CancelAppointmentRequest запрос на отмену приема
type CancelAppointmentRequest struct {
	RequesterID        int64  `json:"requesterId"`
	IsStaff            bool   `json:"-"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса приема
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// GetPatientAppointmentsRequest запрос на получение приемов пациента
type GetPatientAppointmentsRequest struct {
	PatientID int64   `json:"patientId"`
	Status    *string `json:"status,omitempty"`
}

// GetClinicAppointmentsRequest запрос на получение приемов клиники
type GetClinicAppointmentsRequest struct {
	ClinicID        int64      `json:"clinicId"`
	PractitionerID  *int64     `json:"practitionerId,omitempty"`  // Фильтр по врачу (опционально)
	PatientID       *int64     `json:"patientId,omitempty"`       // Фильтр по пациенту (опционально)
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отмененные приемы и неявки
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetClinicAppointmentsRequest) ToDomainFilter() (domain.ClinicAppointmentsFilter, error) {
	filter := domain.ClinicAppointmentsFilter{
		ClinicID:        r.ClinicID,
		PractitionerID:  r.PractitionerID,
		PatientID:       r.PatientID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными приема
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	PatientID       int64  `json:"patientId"`
	PractitionerID  int64  `json:"practitionerId"`
	ClinicID        int64  `json:"clinicId"`
	Date            string `json:"date"`      // "2024-01-16"
	StartTime       string `json:"startTime"` // "10:00"
	EndTime         string `json:"endTime"`   // "11:00"
	DurationMinutes int    `json:"durationMinutes"`
	ProcedureType   string `json:"procedureType"`
	Status          string `json:"status"`

	Notes              *string `json:"notes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком приемов
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		PatientID:          a.PatientID,
		PractitionerID:     a.PractitionerID,
		ClinicID:           a.ClinicID,
		Date:               a.Date.Format(domain.DateFormat),
		StartTime:          a.StartTime.String(),
		EndTime:            a.EndTime.String(),
		DurationMinutes:    a.DurationMinutes,
		ProcedureType:      string(a.ProcedureType),
		Status:             string(a.Status),
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	if a.CancelledAt != nil {
		cancelledAt := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	list := make([]AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		list = append(list, *FromDomainAppointment(a))
	}
	return &AppointmentListResponse{Appointments: list}
}

// ToDomainAppointmentStatus конвертирует строку в domain статус
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	switch domain.AppointmentStatus(status) {
	case domain.StatusScheduled:
		return domain.StatusScheduled, nil
	case domain.StatusConfirmed:
		return domain.StatusConfirmed, nil
	case domain.StatusInProgress:
		return domain.StatusInProgress, nil
	case domain.StatusCompleted:
		return domain.StatusCompleted, nil
	case domain.StatusCancelled:
		return domain.StatusCancelled, nil
	case domain.StatusNoShow:
		return domain.StatusNoShow, nil
	default:
		return "", ErrInvalidStatus
	}
}
