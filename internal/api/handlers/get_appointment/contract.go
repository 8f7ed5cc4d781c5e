package get_appointment

import (
	"context"

	"github.com/m04kA/SMC-ClinicScheduler/internal/service/appointments/models"
)

type AppointmentsService interface {
	GetByID(ctx context.Context, id int64, requesterID int64, isStaff bool) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
