package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/psqlbuilder"
)

// Repository репозиторий для работы с приемами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория приемов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый прием.
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Иначе выполняет обычный запрос без транзакции.
//
// Транзакция обязательна при создании приема с повторной проверкой
// пересечений - иначе возможна гонка между двумя параллельными записями.
func (r *Repository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"patient_id",
			"practitioner_id",
			"clinic_id",
			"appointment_date",
			"start_time",
			"end_time",
			"duration_minutes",
			"procedure_type",
			"status",
			"notes",
		).
		Values(
			appointment.PatientID,
			appointment.PractitionerID,
			appointment.ClinicID,
			appointment.Date,
			appointment.StartTime,
			appointment.EndTime,
			appointment.DurationMinutes,
			appointment.ProcedureType,
			appointment.Status,
			appointment.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appointment.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return appointment, nil
}

// GetByID получает прием по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectAppointmentColumns().
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var appointment domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appointment.ID,
		&appointment.PatientID,
		&appointment.PractitionerID,
		&appointment.ClinicID,
		&appointment.Date,
		&appointment.StartTime,
		&appointment.EndTime,
		&appointment.DurationMinutes,
		&appointment.ProcedureType,
		&appointment.Status,
		&appointment.Notes,
		&appointment.CancellationReason,
		&appointment.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return &appointment, nil
}

// GetByPatientID получает список приемов пациента
// Опционально фильтрует по статусу
func (r *Repository) GetByPatientID(ctx context.Context, patientID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectAppointmentColumns().
		Where(squirrel.Eq{"patient_id": patientID}).
		OrderBy("appointment_date DESC, start_time DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPatientID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPatientID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// GetByClinicWithFilter получает приемы клиники с гибкой фильтрацией.
// Поддерживает фильтрацию по:
// - Врачу (PractitionerID) - опционально
// - Пациенту (PatientID) - опционально
// - Периоду (StartDate, EndDate) - опционально
// - Статусу (Status) - опционально
// - Включению неактивных приемов (IncludeInactive)
//
// Внутри транзакции при запросе на конкретную дату добавляет FOR UPDATE -
// так повторная проверка пересечений при создании приема блокирует
// конкурирующие записи до коммита.
func (r *Repository) GetByClinicWithFilter(ctx context.Context, filter domain.ClinicAppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectAppointmentColumns().
		Where(squirrel.Eq{"clinic_id": filter.ClinicID})

	if filter.PractitionerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"practitioner_id": *filter.PractitionerID})
	}

	if filter.PatientID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"patient_id": *filter.PatientID})
	}

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"appointment_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"appointment_date": *filter.EndDate})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Если не указан конкретный статус и не нужны неактивные - исключаем их
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	singleDay := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)

	// Для конкретной даты сортируем по времени начала, для периода - сначала новые
	if singleDay {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("appointment_date DESC, start_time DESC")
	}

	// Если используется транзакция, добавляем FOR UPDATE для блокировки
	// (только для конкретной даты - для usecase создания приема)
	if dbmetrics.IsInTransaction(ctx) && singleDay {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClinicWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClinicWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// GetOverlapCandidates получает активные приемы врача и пациента на дату.
// Используется детектором пересечений: выборка покрывает обе стороны
// конфликта (занятость врача и занятость пациента) одним запросом.
func (r *Repository) GetOverlapCandidates(ctx context.Context, practitionerID, patientID int64, date time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
	for i, s := range domain.InactiveStatuses {
		inactiveStatusStrings[i] = string(s)
	}

	selectBuilder := selectAppointmentColumns().
		Where(squirrel.Eq{"appointment_date": date}).
		Where(squirrel.Or{
			squirrel.Eq{"practitioner_id": practitionerID},
			squirrel.Eq{"patient_id": patientID},
		}).
		Where(squirrel.NotEq{"status": inactiveStatusStrings}).
		OrderBy("start_time ASC")

	// Внутри транзакции блокируем кандидатов до коммита
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlapCandidates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlapCandidates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// UpdateStatus обновляет статус приема
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// Cancel отменяет прием с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.AppointmentStatus, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// selectAppointmentColumns возвращает builder с полным набором колонок приема
func selectAppointmentColumns() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"patient_id",
		"practitioner_id",
		"clinic_id",
		"appointment_date",
		"start_time",
		"end_time",
		"duration_minutes",
		"procedure_type",
		"status",
		"notes",
		"cancellation_reason",
		"cancelled_at",
		"created_at",
		"updated_at",
	).From("appointments")
}

// scanAppointments сканирует результаты запроса в слайс приемов
func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		var appointment domain.Appointment
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&appointment.ID,
			&appointment.PatientID,
			&appointment.PractitionerID,
			&appointment.ClinicID,
			&appointment.Date,
			&appointment.StartTime,
			&appointment.EndTime,
			&appointment.DurationMinutes,
			&appointment.ProcedureType,
			&appointment.Status,
			&appointment.Notes,
			&appointment.CancellationReason,
			&appointment.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}

		appointment.CreatedAt = createdAt.Time
		appointment.UpdatedAt = updatedAt.Time

		appointments = append(appointments, &appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
