package update_clinic_schedule

import (
	"context"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

type ScheduleService interface {
	UpdateWorkingHours(ctx context.Context, clinicID int64, hours []domain.WorkingHours) error
	AddHoliday(ctx context.Context, clinicID int64, holiday domain.Holiday) error
	GetWeeklySchedule(ctx context.Context, clinicID int64) (domain.WeeklySchedule, []domain.Holiday, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
