package schedule

import "errors"

var (
	// ErrNotConfigured возвращается, когда у клиники нет собственного расписания
	ErrNotConfigured = errors.New("schedule.repository: clinic schedule not configured")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
