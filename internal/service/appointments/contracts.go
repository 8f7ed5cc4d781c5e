package appointments

import (
	"context"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// AppointmentRepository интерфейс репозитория приемов
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByPatientID(ctx context.Context, patientID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
	GetByClinicWithFilter(ctx context.Context, filter domain.ClinicAppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id int64, status domain.AppointmentStatus, reason string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
