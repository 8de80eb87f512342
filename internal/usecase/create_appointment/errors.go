package create_appointment

import "errors"

var (
	// ErrBarberNotFound возвращается, когда барбер не найден
	ErrBarberNotFound = errors.New("create_appointment: barber not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrBookingsDisabled возвращается, когда тариф барбера не позволяет онлайн-бронирование
	ErrBookingsDisabled = errors.New("create_appointment: online bookings are not enabled for this barber")

	// ErrNonWorkingDay возвращается, когда запись попадает на нерабочий день
	ErrNonWorkingDay = errors.New("create_appointment: barber is not working on this day")

	// ErrOutsideWorkingHours возвращается, когда запись не помещается в рабочее окно дня
	ErrOutsideWorkingHours = errors.New("create_appointment: appointment is outside working hours")

	// ErrSlotTaken возвращается, когда интервал пересекает запись, перерыв или блокировку
	ErrSlotTaken = errors.New("create_appointment: slot is already taken")

	// ErrConcurrencyConflict возвращается, когда сериализуемая транзакция не смогла завершиться
	// из-за параллельного бронирования; клиенту имеет смысл повторить запрос
	ErrConcurrencyConflict = errors.New("create_appointment: concurrent booking conflict, please retry")

	// ErrTooLateToBook возвращается при нарушении минимального времени до начала записи
	ErrTooLateToBook = errors.New("create_appointment: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
