package update_clinic_schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/types"
)

// DayScheduleRequest расписание одного дня недели в запросе
type DayScheduleRequest struct {
	Weekday      string `json:"weekday"`
	StartTime    string `json:"startTime,omitempty"`
	EndTime      string `json:"endTime,omitempty"`
	IsWorkingDay bool   `json:"isWorkingDay"`
}

// HolidayRequest праздник/закрытие клиники в запросе
type HolidayRequest struct {
	Date        string `json:"date"`
	Name        string `json:"name"`
	IsRecurring bool   `json:"isRecurring"`
}

// UpdateScheduleRequest HTTP request model обновления расписания.
// WorkingHours заменяет недельное расписание целиком,
// Holidays добавляются к уже настроенным.
type UpdateScheduleRequest struct {
	WorkingHours []DayScheduleRequest `json:"workingHours"`
	Holidays     []HolidayRequest     `json:"holidays,omitempty"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ToDomainWorkingHours конвертирует запрос в доменные рабочие часы
func (r *UpdateScheduleRequest) ToDomainWorkingHours() ([]domain.WorkingHours, error) {
	hours := make([]domain.WorkingHours, 0, len(r.WorkingHours))

	for _, day := range r.WorkingHours {
		weekday, ok := weekdayNames[strings.ToLower(day.Weekday)]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", day.Weekday)
		}

		hours = append(hours, domain.WorkingHours{
			Weekday:      weekday,
			StartTime:    types.TimeString(day.StartTime),
			EndTime:      types.TimeString(day.EndTime),
			IsWorkingDay: day.IsWorkingDay,
		})
	}

	return hours, nil
}

// ToDomainHolidays конвертирует праздники запроса в доменные
func (r *UpdateScheduleRequest) ToDomainHolidays() []domain.Holiday {
	holidays := make([]domain.Holiday, 0, len(r.Holidays))
	for _, h := range r.Holidays {
		holidays = append(holidays, domain.Holiday{
			Date:        h.Date,
			Name:        h.Name,
			IsRecurring: h.IsRecurring,
		})
	}
	return holidays
}
