package get_clinic_schedule

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// DaySchedule расписание одного дня недели
type DaySchedule struct {
	Weekday      string `json:"weekday"`
	StartTime    string `json:"startTime,omitempty"`
	EndTime      string `json:"endTime,omitempty"`
	IsWorkingDay bool   `json:"isWorkingDay"`
}

// HolidayResponse праздник/закрытие клиники
type HolidayResponse struct {
	Date        string `json:"date"`
	Name        string `json:"name"`
	IsRecurring bool   `json:"isRecurring"`
}

// ScheduleResponse HTTP response model расписания клиники
type ScheduleResponse struct {
	ClinicID int64             `json:"clinicId"`
	Days     []DaySchedule     `json:"days"`
	Holidays []HolidayResponse `json:"holidays"`
}

// FromDomain конвертирует расписание и праздники в HTTP response.
// Дни недели отдаются в стабильном порядке, начиная с понедельника.
func FromDomain(clinicID int64, weekly domain.WeeklySchedule, holidays []domain.Holiday) *ScheduleResponse {
	order := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}

	days := make([]DaySchedule, 0, len(order))
	for _, weekday := range order {
		wh, ok := weekly[weekday]
		if !ok {
			days = append(days, DaySchedule{Weekday: weekday.String(), IsWorkingDay: false})
			continue
		}

		day := DaySchedule{Weekday: weekday.String(), IsWorkingDay: wh.IsWorkingDay}
		if wh.IsWorkingDay {
			day.StartTime = wh.StartTime.String()
			day.EndTime = wh.EndTime.String()
		}
		days = append(days, day)
	}

	holidayList := make([]HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		holidayList = append(holidayList, HolidayResponse{
			Date:        h.Date,
			Name:        h.Name,
			IsRecurring: h.IsRecurring,
		})
	}
	sort.Slice(holidayList, func(i, j int) bool {
		return holidayList[i].Date < holidayList[j].Date
	})

	return &ScheduleResponse{
		ClinicID: clinicID,
		Days:     days,
		Holidays: holidayList,
	}
}
