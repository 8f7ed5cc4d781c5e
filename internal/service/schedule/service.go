package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/types"
)

// Service - календарь рабочих часов и праздников клиник.
// Дефолтное расписание и встроенный список национальных праздников
// передаются при создании как неизменяемые значения, а не читаются
// из глобального состояния - так проверки детерминированы в тестах.
type Service struct {
	repo             ScheduleRepository
	defaultSchedule  domain.WeeklySchedule
	nationalHolidays []domain.Holiday
	logger           Logger
}

// NewService создает сервис расписаний клиник
func NewService(
	repo ScheduleRepository,
	defaultSchedule domain.WeeklySchedule,
	nationalHolidays []domain.Holiday,
	logger Logger,
) *Service {
	return &Service{
		repo:             repo,
		defaultSchedule:  defaultSchedule,
		nationalHolidays: nationalHolidays,
		logger:           logger,
	}
}

// WindowFor возвращает рабочее окно клиники на дату.
// Если у клиники нет собственного расписания, используется дефолтное.
func (s *Service) WindowFor(ctx context.Context, clinicID int64, date time.Time) (domain.WorkingHours, error) {
	hours, err := s.repo.GetWorkingHours(ctx, clinicID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrNotConfigured) {
			s.logger.Info("WindowFor: clinic id=%d has no custom schedule, using defaults", clinicID)
			return s.defaultSchedule.WindowFor(date), nil
		}
		return domain.WorkingHours{}, fmt.Errorf("%w: WindowFor - repository error: %v", ErrInternal, err)
	}

	if len(hours) == 0 {
		return s.defaultSchedule.WindowFor(date), nil
	}

	weekday := date.Weekday()
	for _, wh := range hours {
		if wh.Weekday == weekday {
			return wh, nil
		}
	}

	// День недели не настроен - клиника в этот день закрыта.
	return domain.WorkingHours{Weekday: weekday, IsWorkingDay: false}, nil
}

// ValidateWorkingHours проверяет, что интервал кандидата попадает в рабочее
// окно клиники. Нерабочий день - ошибка независимо от запрошенного времени.
// Ошибка чтения расписания фиксируется как жесткая ошибка (fail-closed).
func (s *Service) ValidateWorkingHours(
	ctx context.Context,
	clinicID int64,
	date time.Time,
	startTime, endTime types.TimeString,
) *domain.ValidationResult {
	result := domain.NewValidationResult()

	window, err := s.WindowFor(ctx, clinicID, date)
	if err != nil {
		s.logger.Error("ValidateWorkingHours: failed to get window for clinic id=%d: %v", clinicID, err)
		result.AddError(domain.KindScheduleUnavailable, "working hours for clinic %d are unavailable", clinicID)
		return result
	}

	if !window.IsWorkingDay {
		result.AddError(domain.KindNonWorkingDay,
			"clinic %d does not work on %s (%s)", clinicID, date.Weekday(), date.Format(domain.DateFormat))
		return result
	}

	// Границы окна включительные: прием может начинаться в момент открытия
	// и заканчиваться в момент закрытия.
	startOK, err := startTime.InRange(window.StartTime, window.EndTime)
	if err != nil {
		result.AddError(domain.KindInvalidTimeFormat, "invalid start time %q", startTime.String())
		return result
	}
	endOK, err := endTime.InRange(window.StartTime, window.EndTime)
	if err != nil {
		result.AddError(domain.KindInvalidTimeFormat, "invalid end time %q", endTime.String())
		return result
	}

	if !startOK || !endOK {
		result.AddError(domain.KindOutsideWorkingHours,
			"appointment %s-%s is outside working hours %s-%s",
			startTime.String(), endTime.String(), window.StartTime.String(), window.EndTime.String())
	}

	return result
}

// CheckHoliday проверяет дату по праздникам клиники и встроенному
// национальному списку. Праздники клиники аддитивны к национальным.
//
// Ошибка чтения праздников деградирует до предупреждения (fail-open):
// пропущенный праздник - неудобство, а не угроза безопасности,
// поэтому поток записи не блокируется.
func (s *Service) CheckHoliday(ctx context.Context, clinicID int64, date time.Time) *domain.ValidationResult {
	result := domain.NewValidationResult()

	custom, err := s.repo.GetHolidays(ctx, clinicID)
	if err != nil {
		s.logger.Error("CheckHoliday: failed to get holidays for clinic id=%d: %v", clinicID, err)
		result.AddWarning("holiday calendar unavailable")
		custom = nil
	}

	// Сначала праздники клиники, затем национальные.
	for _, holiday := range custom {
		if holiday.Matches(date) {
			result.AddError(domain.KindHoliday,
				"clinic %d is closed on %s: %s", clinicID, date.Format(domain.DateFormat), holiday.Name)
			return result
		}
	}

	for _, holiday := range s.nationalHolidays {
		if holiday.Matches(date) {
			result.AddError(domain.KindHoliday,
				"clinic %d is closed on %s: %s", clinicID, date.Format(domain.DateFormat), holiday.Name)
			return result
		}
	}

	return result
}

// GetWeeklySchedule возвращает недельное расписание клиники и её праздники.
// Для клиники без собственного расписания возвращается дефолтное.
func (s *Service) GetWeeklySchedule(ctx context.Context, clinicID int64) (domain.WeeklySchedule, []domain.Holiday, error) {
	if clinicID <= 0 {
		return nil, nil, fmt.Errorf("%w: clinicID must be positive", ErrInvalidInput)
	}

	weekly := domain.WeeklySchedule{}

	hours, err := s.repo.GetWorkingHours(ctx, clinicID)
	switch {
	case errors.Is(err, scheduleRepo.ErrNotConfigured):
		weekly = s.defaultSchedule
	case err != nil:
		s.logger.Error("GetWeeklySchedule: repository error for clinic id=%d: %v", clinicID, err)
		return nil, nil, fmt.Errorf("%w: GetWeeklySchedule - repository error: %v", ErrInternal, err)
	case len(hours) == 0:
		weekly = s.defaultSchedule
	default:
		for _, wh := range hours {
			weekly[wh.Weekday] = wh
		}
	}

	holidays, err := s.repo.GetHolidays(ctx, clinicID)
	if err != nil {
		s.logger.Error("GetWeeklySchedule: failed to get holidays for clinic id=%d: %v", clinicID, err)
		return nil, nil, fmt.Errorf("%w: GetWeeklySchedule - repository error: %v", ErrInternal, err)
	}

	return weekly, holidays, nil
}

// UpdateWorkingHours заменяет недельное расписание клиники целиком
func (s *Service) UpdateWorkingHours(ctx context.Context, clinicID int64, hours []domain.WorkingHours) error {
	if clinicID <= 0 {
		return fmt.Errorf("%w: clinicID must be positive", ErrInvalidInput)
	}

	if err := validateWeeklyHours(hours); err != nil {
		s.logger.Warn("UpdateWorkingHours: validation failed for clinic id=%d: %v", clinicID, err)
		return err
	}

	if err := s.repo.ReplaceWorkingHours(ctx, clinicID, hours); err != nil {
		s.logger.Error("UpdateWorkingHours: repository error for clinic id=%d: %v", clinicID, err)
		return fmt.Errorf("%w: UpdateWorkingHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateWorkingHours: schedule replaced for clinic id=%d", clinicID)
	return nil
}

// AddHoliday добавляет праздник/закрытие клиники
func (s *Service) AddHoliday(ctx context.Context, clinicID int64, holiday domain.Holiday) error {
	if clinicID <= 0 {
		return fmt.Errorf("%w: clinicID must be positive", ErrInvalidInput)
	}

	if err := validateHoliday(holiday); err != nil {
		s.logger.Warn("AddHoliday: validation failed for clinic id=%d: %v", clinicID, err)
		return err
	}

	if err := s.repo.AddHoliday(ctx, clinicID, holiday); err != nil {
		s.logger.Error("AddHoliday: repository error for clinic id=%d: %v", clinicID, err)
		return fmt.Errorf("%w: AddHoliday - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddHoliday: holiday %q added for clinic id=%d", holiday.Name, clinicID)
	return nil
}

// validateWeeklyHours проверяет недельное расписание:
// каждый день недели встречается не более одного раза,
// у рабочих дней корректные времена и начало строго раньше конца.
func validateWeeklyHours(hours []domain.WorkingHours) error {
	seen := map[time.Weekday]bool{}

	for _, wh := range hours {
		if wh.Weekday < time.Sunday || wh.Weekday > time.Saturday {
			return fmt.Errorf("%w: unknown weekday %d", ErrInvalidSchedule, wh.Weekday)
		}
		if seen[wh.Weekday] {
			return fmt.Errorf("%w: duplicate entry for %s", ErrInvalidSchedule, wh.Weekday)
		}
		seen[wh.Weekday] = true

		if !wh.IsWorkingDay {
			continue
		}

		if err := wh.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: %s start time: %v", ErrInvalidSchedule, wh.Weekday, err)
		}
		if err := wh.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: %s end time: %v", ErrInvalidSchedule, wh.Weekday, err)
		}
		if !wh.StartTime.IsBefore(wh.EndTime) {
			return fmt.Errorf("%w: %s start must be before end", ErrInvalidSchedule, wh.Weekday)
		}
	}

	return nil
}

// validateHoliday проверяет описание праздника по формату даты:
// MM-DD для повторяющихся, YYYY-MM-DD для разовых.
func validateHoliday(holiday domain.Holiday) error {
	if holiday.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidHoliday)
	}

	format := domain.DateFormat
	if holiday.IsRecurring {
		format = domain.MonthDayFormat
	}

	if _, err := time.Parse(format, holiday.Date); err != nil {
		return fmt.Errorf("%w: date %q does not match format %q", ErrInvalidHoliday, holiday.Date, format)
	}

	return nil
}
