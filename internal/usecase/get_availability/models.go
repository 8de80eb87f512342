package get_availability

import (
	"time"

	"github.com/google/uuid"

	"github.com/n1kprav/BRB-BookingService/internal/domain"
	"github.com/n1kprav/BRB-BookingService/pkg/types"
)

// ReasonNonWorkingDay причина пустого ответа для нерабочего дня
const ReasonNonWorkingDay = "non_working_day"

// Request модель запроса доступных слотов
type Request struct {
	BarberID  uuid.UUID      // ID барбера
	ServiceID int64          // ID услуги
	Date      time.Time      // Запрошенная дата (полночь UTC)
	Location  *time.Location // Часовой пояс для отображения меток слотов (nil = UTC)
}

// Options настройки генерации слотов
type Options struct {
	StepMinutes        int // Шаг сетки слотов
	MinLeadTimeMinutes int // Минимальное время до начала записи
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date         time.Time // Дата, на которую запрашивались слоты
	BarberID     uuid.UUID // ID барбера
	ServiceID    int64     // ID услуги
	IsWorkingDay bool      // Рабочий ли день по недельному расписанию
	Reason       string    // Причина пустого ответа (только для нерабочего дня)
	Slots        []Slot    // Список доступных слотов
}

// Slot модель доступного слота
type Slot struct {
	StartTime       types.TimeString // Метка начала в часовом поясе запроса ("10:00")
	StartsAt        time.Time        // Момент начала в UTC
	DurationMinutes int              // Длительность услуги в минутах
}

// normalize подставляет дефолты вместо незаполненных настроек
func (o Options) normalize() Options {
	if o.StepMinutes <= 0 {
		o.StepMinutes = domain.DefaultStepMinutes
	}
	if o.MinLeadTimeMinutes < 0 {
		o.MinLeadTimeMinutes = domain.DefaultMinLeadTimeMinutes
	}
	return o
}
