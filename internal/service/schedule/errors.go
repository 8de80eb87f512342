package schedule

import "errors"

var (
	// ErrBlockNotFound возвращается, когда блокировка не найдена или принадлежит другому барберу
	ErrBlockNotFound = errors.New("block not found")

	// ErrInvalidTimeRange возвращается, когда конец интервала не позже начала
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
