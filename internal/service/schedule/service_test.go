package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/schedule"
)

type fakeRepo struct {
	hours       []domain.WorkingHours
	hoursErr    error
	holidays    []domain.Holiday
	holidaysErr error

	replaced []domain.WorkingHours
	added    []domain.Holiday
}

func (f *fakeRepo) GetWorkingHours(_ context.Context, _ int64) ([]domain.WorkingHours, error) {
	if f.hoursErr != nil {
		return nil, f.hoursErr
	}
	return f.hours, nil
}

func (f *fakeRepo) GetHolidays(_ context.Context, _ int64) ([]domain.Holiday, error) {
	if f.holidaysErr != nil {
		return nil, f.holidaysErr
	}
	return f.holidays, nil
}

func (f *fakeRepo) ReplaceWorkingHours(_ context.Context, _ int64, hours []domain.WorkingHours) error {
	f.replaced = hours
	return nil
}

func (f *fakeRepo) AddHoliday(_ context.Context, _ int64, holiday domain.Holiday) error {
	f.added = append(f.added, holiday)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService(repo ScheduleRepository) *Service {
	return NewService(repo, domain.DefaultWeeklySchedule(), domain.NationalHolidays(), nopLogger{})
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(domain.DateFormat, s)
	require.NoError(t, err)
	return d
}

func TestValidateWorkingHours_DefaultScheduleFallback(t *testing.T) {
	// Клиника без собственного расписания должна вести себя так же,
	// как клиника с явно настроенным дефолтным расписанием.
	unconfigured := newService(&fakeRepo{hoursErr: scheduleRepo.ErrNotConfigured})

	var explicit []domain.WorkingHours
	for _, wh := range domain.DefaultWeeklySchedule() {
		explicit = append(explicit, wh)
	}
	configured := newService(&fakeRepo{hours: explicit})

	monday := date(t, "2024-01-15")

	for name, svc := range map[string]*Service{"unconfigured": unconfigured, "configured": configured} {
		result := svc.ValidateWorkingHours(context.Background(), 1, monday, "10:00", "11:00")
		assert.True(t, result.IsValid(), name)

		result = svc.ValidateWorkingHours(context.Background(), 1, monday, "07:30", "08:30")
		require.False(t, result.IsValid(), name)
		assert.True(t, result.HasKind(domain.KindOutsideWorkingHours), name)
	}
}

func TestValidateWorkingHours_OutsideWindow(t *testing.T) {
	svc := newService(&fakeRepo{hoursErr: scheduleRepo.ErrNotConfigured})
	monday := date(t, "2024-01-15")

	// Начало до открытия.
	result := svc.ValidateWorkingHours(context.Background(), 1, monday, "07:30", "08:30")
	require.False(t, result.IsValid())
	assert.True(t, result.HasKind(domain.KindOutsideWorkingHours))

	// Конец после закрытия.
	result = svc.ValidateWorkingHours(context.Background(), 1, monday, "17:30", "18:30")
	require.False(t, result.IsValid())
	assert.True(t, result.HasKind(domain.KindOutsideWorkingHours))
}

func TestValidateWorkingHours_InclusiveBounds(t *testing.T) {
	svc := newService(&fakeRepo{hoursErr: scheduleRepo.ErrNotConfigured})
	monday := date(t, "2024-01-15")

	// Прием может начинаться в момент открытия и заканчиваться в момент закрытия.
	result := svc.ValidateWorkingHours(context.Background(), 1, monday, "08:00", "09:00")
	assert.True(t, result.IsValid())

	result = svc.ValidateWorkingHours(context.Background(), 1, monday, "17:00", "18:00")
	assert.True(t, result.IsValid())
}

func TestValidateWorkingHours_NonWorkingDay(t *testing.T) {
	svc := newService(&fakeRepo{hoursErr: scheduleRepo.ErrNotConfigured})
	sunday := date(t, "2024-01-14")

	// Время здесь не важно - день нерабочий.
	result := svc.ValidateWorkingHours(context.Background(), 1, sunday, "10:00", "11:00")
	require.False(t, result.IsValid())
	assert.True(t, result.HasKind(domain.KindNonWorkingDay))
}

func TestValidateWorkingHours_SaturdayShortDay(t *testing.T) {
	svc := newService(&fakeRepo{hoursErr: scheduleRepo.ErrNotConfigured})
	saturday := date(t, "2024-01-13")

	result := svc.ValidateWorkingHours(context.Background(), 1, saturday, "13:00", "14:00")
	assert.True(t, result.IsValid())

	result = svc.ValidateWorkingHours(context.Background(), 1, saturday, "14:00", "15:00")
	require.False(t, result.IsValid())
	assert.True(t, result.HasKind(domain.KindOutsideWorkingHours))
}

func TestValidateWorkingHours_RepositoryFailureIsFailClosed(t *testing.T) {
	svc := newService(&fakeRepo{hoursErr: errors.New("connection refused")})
	monday := date(t, "2024-01-15")

	result := svc.ValidateWorkingHours(context.Background(), 1, monday, "10:00", "11:00")
	require.False(t, result.IsValid())
	assert.True(t, result.HasKind(domain.KindScheduleUnavailable))
}

func TestCheckHoliday_RecurringNationalHoliday(t *testing.T) {
	svc := newService(&fakeRepo{})

	// Повторяющийся праздник 12-25 блокирует 25 декабря любого года.
	for _, day := range []string{"2024-12-25", "2025-12-25", "2030-12-25"} {
		result := svc.CheckHoliday(context.Background(), 1, date(t, day))
		require.False(t, result.IsValid(), day)
		assert.True(t, result.HasKind(domain.KindHoliday), day)
		assert.Contains(t, result.Errors[0].Message, "Christmas", day)
	}

	result := svc.CheckHoliday(context.Background(), 1, date(t, "2024-12-24"))
	assert.True(t, result.IsValid())
}

func TestCheckHoliday_ClinicHolidaysAreAdditive(t *testing.T) {
	svc := newService(&fakeRepo{
		holidays: []domain.Holiday{
			{Date: "2024-03-18", Name: "Renovation", IsRecurring: false},
			{Date: "06-01", Name: "Clinic Foundation Day", IsRecurring: true},
		},
	})

	// Разовое закрытие клиники действует только в указанную дату.
	result := svc.CheckHoliday(context.Background(), 1, date(t, "2024-03-18"))
	require.False(t, result.IsValid())
	assert.Contains(t, result.Errors[0].Message, "Renovation")

	result = svc.CheckHoliday(context.Background(), 1, date(t, "2025-03-18"))
	assert.True(t, result.IsValid())

	// Повторяющийся праздник клиники действует каждый год.
	result = svc.CheckHoliday(context.Background(), 1, date(t, "2026-06-01"))
	require.False(t, result.IsValid())

	// Национальный список продолжает действовать.
	result = svc.CheckHoliday(context.Background(), 1, date(t, "2024-12-25"))
	require.False(t, result.IsValid())
}

func TestCheckHoliday_RepositoryFailureIsFailOpen(t *testing.T) {
	svc := newService(&fakeRepo{holidaysErr: errors.New("connection refused")})

	result := svc.CheckHoliday(context.Background(), 1, date(t, "2024-01-16"))
	assert.True(t, result.IsValid())
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "holiday calendar unavailable")
}

func TestCheckHoliday_FailOpenStillChecksNationalList(t *testing.T) {
	svc := newService(&fakeRepo{holidaysErr: errors.New("connection refused")})

	// Встроенный список не зависит от хранилища и продолжает работать.
	result := svc.CheckHoliday(context.Background(), 1, date(t, "2024-12-25"))
	require.False(t, result.IsValid())
	assert.True(t, result.HasKind(domain.KindHoliday))
	assert.Contains(t, result.Warnings[0], "holiday calendar unavailable")
}

func TestUpdateWorkingHours_Validation(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo)

	err := svc.UpdateWorkingHours(context.Background(), 1, []domain.WorkingHours{
		{Weekday: time.Monday, StartTime: "09:00", EndTime: "17:00", IsWorkingDay: true},
		{Weekday: time.Monday, StartTime: "09:00", EndTime: "17:00", IsWorkingDay: true},
	})
	assert.ErrorIs(t, err, ErrInvalidSchedule)

	err = svc.UpdateWorkingHours(context.Background(), 1, []domain.WorkingHours{
		{Weekday: time.Monday, StartTime: "17:00", EndTime: "09:00", IsWorkingDay: true},
	})
	assert.ErrorIs(t, err, ErrInvalidSchedule)

	err = svc.UpdateWorkingHours(context.Background(), 1, []domain.WorkingHours{
		{Weekday: time.Monday, StartTime: "09:00", EndTime: "17:00", IsWorkingDay: true},
		{Weekday: time.Sunday, IsWorkingDay: false},
	})
	require.NoError(t, err)
	assert.Len(t, repo.replaced, 2)
}

func TestAddHoliday_Validation(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo)

	err := svc.AddHoliday(context.Background(), 1, domain.Holiday{Date: "12-25", IsRecurring: true})
	assert.ErrorIs(t, err, ErrInvalidHoliday)

	err = svc.AddHoliday(context.Background(), 1, domain.Holiday{Date: "2024-13-40", Name: "Bad", IsRecurring: false})
	assert.ErrorIs(t, err, ErrInvalidHoliday)

	err = svc.AddHoliday(context.Background(), 1, domain.Holiday{Date: "03-08", Name: "Women's Day", IsRecurring: true})
	require.NoError(t, err)
	assert.Len(t, repo.added, 1)
}
