package get_clinic_schedule

import (
	"context"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

type ScheduleService interface {
	GetWeeklySchedule(ctx context.Context, clinicID int64) (domain.WeeklySchedule, []domain.Holiday, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
