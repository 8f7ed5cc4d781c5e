package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/psqlbuilder"
)

// Repository репозиторий для работы с расписаниями клиник
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWorkingHours получает настроенные рабочие часы клиники.
// Если для клиники не настроено ни одного дня, возвращает ErrNotConfigured -
// сервис в этом случае использует дефолтное расписание.
func (r *Repository) GetWorkingHours(ctx context.Context, clinicID int64) ([]domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"weekday",
		"start_time",
		"end_time",
		"is_working_day",
	).
		From("clinic_working_hours").
		Where(squirrel.Eq{"clinic_id": clinicID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkingHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkingHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	hours := make([]domain.WorkingHours, 0)
	for rows.Next() {
		var wh domain.WorkingHours
		var weekday int

		if err := rows.Scan(&weekday, &wh.StartTime, &wh.EndTime, &wh.IsWorkingDay); err != nil {
			return nil, fmt.Errorf("%w: GetWorkingHours - scan row: %v", ErrScanRow, err)
		}

		wh.Weekday = time.Weekday(weekday)
		hours = append(hours, wh)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWorkingHours - rows error: %v", ErrScanRow, err)
	}

	if len(hours) == 0 {
		return nil, ErrNotConfigured
	}

	return hours, nil
}

// GetHolidays получает праздники/закрытия клиники
func (r *Repository) GetHolidays(ctx context.Context, clinicID int64) ([]domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"holiday_date",
		"name",
		"is_recurring",
	).
		From("clinic_holidays").
		Where(squirrel.Eq{"clinic_id": clinicID}).
		OrderBy("holiday_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetHolidays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetHolidays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	holidays := make([]domain.Holiday, 0)
	for rows.Next() {
		var h domain.Holiday

		if err := rows.Scan(&h.Date, &h.Name, &h.IsRecurring); err != nil {
			return nil, fmt.Errorf("%w: GetHolidays - scan row: %v", ErrScanRow, err)
		}

		holidays = append(holidays, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetHolidays - rows error: %v", ErrScanRow, err)
	}

	return holidays, nil
}

// ReplaceWorkingHours заменяет недельное расписание клиники целиком:
// удаляет существующие записи и вставляет новые
func (r *Repository) ReplaceWorkingHours(ctx context.Context, clinicID int64, hours []domain.WorkingHours) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("clinic_working_hours").
		Where(squirrel.Eq{"clinic_id": clinicID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceWorkingHours - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceWorkingHours - execute delete: %v", ErrExecQuery, err)
	}

	if len(hours) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("clinic_working_hours").
		Columns("clinic_id", "weekday", "start_time", "end_time", "is_working_day")

	for _, wh := range hours {
		var start, end interface{}
		if wh.IsWorkingDay {
			start = wh.StartTime
			end = wh.EndTime
		}
		insertBuilder = insertBuilder.Values(clinicID, int(wh.Weekday), start, end, wh.IsWorkingDay)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWorkingHours - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceWorkingHours - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// AddHoliday добавляет праздник/закрытие клиники
func (r *Repository) AddHoliday(ctx context.Context, clinicID int64, holiday domain.Holiday) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("clinic_holidays").
		Columns("clinic_id", "holiday_date", "name", "is_recurring").
		Values(clinicID, holiday.Date, holiday.Name, holiday.IsRecurring).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AddHoliday - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: AddHoliday - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
