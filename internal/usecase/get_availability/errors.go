package get_availability

import "errors"

var (
	// ErrBarberNotFound возвращается, когда барбер не найден
	ErrBarberNotFound = errors.New("barber not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или принадлежит другому барберу
	ErrServiceNotFound = errors.New("service not found")

	// ErrBookingsDisabled возвращается, когда тариф барбера не позволяет онлайн-бронирование
	ErrBookingsDisabled = errors.New("online bookings are not enabled for this barber")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("invalid availability date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
