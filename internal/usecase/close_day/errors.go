package close_day

import "errors"

var (
	// ErrInvalidDate возвращается при попытке закрыть день в прошлом
	ErrInvalidDate = errors.New("close_day: invalid date")

	// ErrConcurrencyConflict возвращается, когда сериализуемая транзакция не смогла
	// завершиться из-за параллельной операции над тем же днем
	ErrConcurrencyConflict = errors.New("close_day: concurrent conflict, please retry")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("close_day: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("close_day: internal error")
)
