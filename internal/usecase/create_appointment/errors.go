package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")

	// errValidationFailed внутренняя ошибка для отката транзакции,
	// когда повторная проверка под блокировкой нашла нарушения
	errValidationFailed = errors.New("create_appointment: validation failed inside transaction")
)
