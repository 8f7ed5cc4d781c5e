package practitionerservice

import "errors"

var (
	// ErrPractitionerNotFound возвращается, когда врач не найден в справочнике
	ErrPractitionerNotFound = errors.New("practitioner not found")

	// ErrNoOverride возвращается, когда у врача нет переопределения доступности на дату
	ErrNoOverride = errors.New("practitioner has no availability override for date")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("practitionerservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("practitionerservice client: invalid response")

	// ErrServiceUnavailable возвращается при недоступности справочника врачей.
	// Справочник - источник истины о принадлежности врача клинике,
	// поэтому недоступность блокирует проверку (fail-closed), а не деградирует.
	ErrServiceUnavailable = errors.New("practitionerservice unavailable")
)
