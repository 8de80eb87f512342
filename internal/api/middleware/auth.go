package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/n1kprav/BRB-BookingService/internal/api/handlers"
)

// HeaderBarberID заголовок аутентификации защищенных маршрутов
// Сервис живет за API gateway, который уже проверил токен и проставил заголовок
const HeaderBarberID = "X-Barber-ID"

const (
	msgMissingBarberID = "отсутствует заголовок X-Barber-ID"
	msgInvalidBarberID = "некорректный формат X-Barber-ID, ожидается UUID"
)

type contextKey string

const barberIDKey contextKey = "barberID"

// Auth проверяет наличие и формат заголовка X-Barber-ID
// и кладет ID барбера в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderBarberID)
		if raw == "" {
			handlers.RespondUnauthorized(w, msgMissingBarberID)
			return
		}

		barberID, err := uuid.Parse(raw)
		if err != nil {
			handlers.RespondUnauthorized(w, msgInvalidBarberID)
			return
		}

		ctx := context.WithValue(r.Context(), barberIDKey, barberID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// BarberID достает ID барбера из контекста запроса
// Второй результат false означает, что запрос не прошел через Auth
func BarberID(ctx context.Context) (uuid.UUID, bool) {
	barberID, ok := ctx.Value(barberIDKey).(uuid.UUID)
	return barberID, ok
}
