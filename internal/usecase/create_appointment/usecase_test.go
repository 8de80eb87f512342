package create_appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n1kprav/BRB-BookingService/internal/domain"
	"github.com/n1kprav/BRB-BookingService/internal/integrations/catalogservice"
	"github.com/n1kprav/BRB-BookingService/internal/integrations/clientservice"
	"github.com/n1kprav/BRB-BookingService/internal/integrations/notifyservice"
	"github.com/n1kprav/BRB-BookingService/pkg/txmanager"
	"github.com/n1kprav/BRB-BookingService/pkg/types"
)

// memAppointmentRepo потокобезопасный in-memory репозиторий записей
type memAppointmentRepo struct {
	mu           sync.Mutex
	appointments []*domain.Appointment
	nextID       int64
}

func (r *memAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	created := *appt
	created.ID = r.nextID
	created.CreatedAt = time.Now().UTC()
	created.UpdatedAt = created.CreatedAt
	r.appointments = append(r.appointments, &created)
	return &created, nil
}

func (r *memAppointmentRepo) GetByBarberAndRange(_ context.Context, barberID uuid.UUID, from, to time.Time, includeInactive bool) ([]*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rng := domain.Interval{Start: from, End: to}
	var out []*domain.Appointment
	for _, a := range r.appointments {
		if a.BarberID != barberID {
			continue
		}
		if !includeInactive && !a.IsActive() {
			continue
		}
		if a.Interval().Overlaps(rng) {
			out = append(out, a)
		}
	}
	return out, nil
}

// fakeScheduleRepo расписание по дням недели
type fakeScheduleRepo struct {
	byWeekday map[int]*domain.WeeklySchedule
	err       error
}

func (f *fakeScheduleRepo) GetByBarberAndWeekday(_ context.Context, _ uuid.UUID, dayOfWeek int) (*domain.WeeklySchedule, error) {
	if f.err != nil {
		return nil, f.err
	}
	sched, ok := f.byWeekday[dayOfWeek]
	if !ok {
		// Незаполненный день трактуется выше как нерабочий
		return &domain.WeeklySchedule{DayOfWeek: dayOfWeek, IsWorkDay: false}, nil
	}
	return sched, nil
}

type fakeBlockRepo struct {
	blocks []*domain.ScheduleBlock
}

func (f *fakeBlockRepo) GetOverlappingRange(_ context.Context, _ uuid.UUID, from, to time.Time) ([]*domain.ScheduleBlock, error) {
	rng := domain.Interval{Start: from, End: to}
	var out []*domain.ScheduleBlock
	for _, b := range f.blocks {
		if b.Interval().Overlaps(rng) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeCatalogClient struct {
	service    *catalogservice.Service
	serviceErr error
	allowed    bool
	allowedErr error
}

func (f *fakeCatalogClient) GetService(_ context.Context, _ int64) (*catalogservice.Service, error) {
	return f.service, f.serviceErr
}

func (f *fakeCatalogClient) CanAcceptOnlineBookings(_ context.Context, _ uuid.UUID) (bool, error) {
	return f.allowed, f.allowedErr
}

type fakeClientClient struct {
	client *clientservice.Client
	err    error
}

func (f *fakeClientClient) ResolveOrCreate(_ context.Context, barberID uuid.UUID, name, phone string, _ *string) (*clientservice.Client, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.client != nil {
		return f.client, nil
	}
	return &clientservice.Client{ID: 42, BarberID: barberID, Name: name, Phone: phone}, nil
}

type fakeNotifyClient struct {
	mu     sync.Mutex
	events []notifyservice.AppointmentCreatedEvent
	err    error
}

func (f *fakeNotifyClient) AppointmentCreated(_ context.Context, event notifyservice.AppointmentCreatedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return f.err
}

// fakeTxManager эмулирует взаимное исключение сериализуемых транзакций
type fakeTxManager struct {
	mu  sync.Mutex
	err error
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func tsPtr(s string) *types.TimeString {
	ts := types.TimeString(s)
	return &ts
}

type ucDeps struct {
	appointments *memAppointmentRepo
	schedule     *fakeScheduleRepo
	blocks       *fakeBlockRepo
	catalog      *fakeCatalogClient
	clients      *fakeClientClient
	notify       *fakeNotifyClient
	txManager    *fakeTxManager
}

func newTestUseCase(deps ucDeps, now time.Time) *UseCase {
	if deps.appointments == nil {
		deps.appointments = &memAppointmentRepo{}
	}
	if deps.schedule == nil {
		deps.schedule = &fakeScheduleRepo{}
	}
	if deps.blocks == nil {
		deps.blocks = &fakeBlockRepo{}
	}
	if deps.catalog == nil {
		deps.catalog = &fakeCatalogClient{allowed: true}
	}
	if deps.clients == nil {
		deps.clients = &fakeClientClient{}
	}
	if deps.notify == nil {
		deps.notify = &fakeNotifyClient{}
	}
	if deps.txManager == nil {
		deps.txManager = &fakeTxManager{}
	}

	uc := NewUseCase(
		deps.appointments,
		deps.schedule,
		deps.blocks,
		deps.catalog,
		deps.clients,
		deps.notify,
		deps.txManager,
		Options{MinLeadTimeMinutes: 15},
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func haircut(barberID uuid.UUID) *catalogservice.Service {
	return &catalogservice.Service{
		ID:              7,
		BarberID:        barberID,
		Name:            "Стрижка",
		Price:           1500,
		DurationMinutes: 60,
		IsActive:        true,
	}
}

// wednesdaySchedule рабочая среда 09:00-17:00 с перерывом 12:00-13:00
func wednesdaySchedule(barberID uuid.UUID) *fakeScheduleRepo {
	return &fakeScheduleRepo{byWeekday: map[int]*domain.WeeklySchedule{
		3: {
			BarberID:   barberID,
			DayOfWeek:  3,
			IsWorkDay:  true,
			StartTime:  "09:00",
			EndTime:    "17:00",
			BreakStart: tsPtr("12:00"),
			BreakEnd:   tsPtr("13:00"),
		},
	}}
}

func validRequest(barberID uuid.UUID, startsAt time.Time) *Request {
	return &Request{
		BarberID:    barberID,
		ServiceID:   7,
		StartsAt:    startsAt,
		ClientName:  "Иван",
		ClientPhone: "+79990001122",
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	barberID := uuid.New()
	// 2025-10-15 - среда
	now := time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC)
	startsAt := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)

	notify := &fakeNotifyClient{}
	uc := newTestUseCase(ucDeps{
		schedule: wednesdaySchedule(barberID),
		catalog:  &fakeCatalogClient{allowed: true, service: haircut(barberID)},
		notify:   notify,
	}, now)

	resp, err := uc.Execute(context.Background(), validRequest(barberID, startsAt))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, domain.AppointmentStatus(resp.Status))
	assert.Equal(t, startsAt, resp.StartsAt)
	// Цена и длительность заморожены из каталога на момент создания
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, 1500.0, resp.ServicePrice)
	assert.Equal(t, "Стрижка", resp.ServiceName)
	assert.Equal(t, int64(42), resp.ClientID)
	assert.Equal(t, "Иван", resp.ClientName)

	// Уведомление отправлено после коммита
	require.Len(t, notify.events, 1)
	assert.Equal(t, resp.ID, notify.events[0].AppointmentID)
	assert.Equal(t, barberID, notify.events[0].BarberID)
}

func TestUseCase_Execute_NotificationFailureDoesNotFail(t *testing.T) {
	barberID := uuid.New()
	now := time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC)

	uc := newTestUseCase(ucDeps{
		schedule: wednesdaySchedule(barberID),
		catalog:  &fakeCatalogClient{allowed: true, service: haircut(barberID)},
		notify:   &fakeNotifyClient{err: assert.AnError},
	}, now)

	resp, err := uc.Execute(context.Background(), validRequest(barberID, time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
}

func TestUseCase_Execute_SlotTaken(t *testing.T) {
	barberID := uuid.New()
	now := time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC)

	repo := &memAppointmentRepo{}
	uc := newTestUseCase(ucDeps{
		appointments: repo,
		schedule:     wednesdaySchedule(barberID),
		catalog:      &fakeCatalogClient{allowed: true, service: haircut(barberID)},
	}, now)

	// Первая запись занимает 10:00-11:00
	_, err := uc.Execute(context.Background(), validRequest(barberID, time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	// Частичное пересечение 10:30-11:30 отклоняется
	_, err = uc.Execute(context.Background(), validRequest(barberID, time.Date(2025, 10, 15, 10, 30, 0, 0, time.UTC)))
	assert.ErrorIs(t, err, ErrSlotTaken)

	// Стык 11:00-12:00 допустим - интервалы полуоткрытые
	_, err = uc.Execute(context.Background(), validRequest(barberID, time.Date(2025, 10, 15, 11, 0, 0, 0, time.UTC)))
	assert.NoError(t, err)
}

func TestUseCase_Execute_CancelledAppointmentDoesNotBlock(t *testing.T) {
	barberID := uuid.New()
	now := time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC)

	repo := &memAppointmentRepo{}
	repo.appointments = append(repo.appointments, &domain.Appointment{
		ID:              1,
		BarberID:        barberID,
		StartsAt:        time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Status:          domain.StatusCancelled,
	})
	repo.nextID = 1

	uc := newTestUseCase(ucDeps{
		appointments: repo,
		schedule:     wednesdaySchedule(barberID),
		catalog:      &fakeCatalogClient{allowed: true, service: haircut(barberID)},
	}, now)

	_, err := uc.Execute(context.Background(), validRequest(barberID, time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)))
	assert.NoError(t, err)
}

func TestUseCase_Execute_BreakOverlap(t *testing.T) {
	barberID := uuid.New()
	now := time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC)

	uc := newTestUseCase(ucDeps{
		schedule: wednesdaySchedule(barberID),
		catalog:  &fakeCatalogClient{allowed: true, service: haircut(barberID)},
	}, now)

	// 11:30-12:30 пересекает перерыв 12:00-13:00
	_, err := uc.Execute(context.Background(), validRequest(barberID, time.Date(2025, 10, 15, 11, 30, 0, 0, time.UTC)))
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestUseCase_Execute_BlockOverlap(t *testing.T) {
	barberID := uuid.New()
	now := time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC)

	uc := newTestUseCase(ucDeps{
		schedule: wednesdaySchedule(barberID),
		catalog:  &fakeCatalogClient{allowed: true, service: haircut(barberID)},
		blocks: &fakeBlockRepo{blocks: []*domain.ScheduleBlock{{
			ID:       1,
			BarberID: barberID,
			StartsAt: time.Date(2025, 10, 15, 14, 0, 0, 0, time.UTC),
			EndsAt:   time.Date(2025, 10, 15, 15, 0, 0, 0, time.UTC),
		}}},
	}, now)

	_, err := uc.Execute(context.Background(), validRequest(barberID, time.Date(2025, 10, 15, 14, 30, 0, 0, time.UTC)))
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestUseCase_Execute_NonWorkingDay(t *testing.T) {
	barberID := uuid.New()
	now := time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC)

	uc := newTestUseCase(ucDeps{
		// Четверг не сконфигурирован, среда тоже пустая
		schedule: &fakeScheduleRepo{byWeekday: map[int]*domain.WeeklySchedule{}},
		catalog:  &fakeCatalogClient{allowed: true, service: haircut(barberID)},
	}, now)

	_, err := uc.Execute(context.Background(), validRequest(barberID, time.Date(2025, 10, 16, 10, 0, 0, 0, time.UTC)))
	assert.ErrorIs(t, err, ErrNonWorkingDay)
}

func TestUseCase_Execute_OutsideWorkingHours(t *testing.T) {
	barberID := uuid.New()
	now := time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC)

	uc := newTestUseCase(ucDeps{
		schedule: wednesdaySchedule(barberID),
		catalog:  &fakeCatalogClient{allowed: true, service: haircut(barberID)},
	}, now)

	// 16:30-17:30 вылезает за конец рабочего окна
	_, err := uc.Execute(context.Background(), validRequest(barberID, time.Date(2025, 10, 15, 16, 30, 0, 0, time.UTC)))
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestUseCase_Execute_OvernightShiftFromPreviousDay(t *testing.T) {
	barberID := uuid.New()
	now := time.Date(2025, 10, 14, 20, 0, 0, 0, time.UTC)

	// Вторник 18:00-02:00; среда не сконфигурирована
	uc := newTestUseCase(ucDeps{
		schedule: &fakeScheduleRepo{byWeekday: map[int]*domain.WeeklySchedule{
			2: {
				BarberID:  barberID,
				DayOfWeek: 2,
				IsWorkDay: true,
				StartTime: "18:00",
				EndTime:   "02:00",
			},
		}},
		catalog: &fakeCatalogClient{allowed: true, service: haircut(barberID)},
	}, now)

	// Запись на 01:00 среды попадает в окно смены вторника
	resp, err := uc.Execute(context.Background(), validRequest(barberID, time.Date(2025, 10, 15, 1, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 15, 1, 0, 0, 0, time.UTC), resp.StartsAt)
}

func TestUseCase_Execute_TooLateToBook(t *testing.T) {
	barberID := uuid.New()
	// 09:50 + 15 минут буфера > 10:00
	now := time.Date(2025, 10, 15, 9, 50, 0, 0, time.UTC)

	uc := newTestUseCase(ucDeps{
		schedule: wednesdaySchedule(barberID),
		catalog:  &fakeCatalogClient{allowed: true, service: haircut(barberID)},
	}, now)

	_, err := uc.Execute(context.Background(), validRequest(barberID, time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)))
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestUseCase_Execute_BookingsDisabled(t *testing.T) {
	barberID := uuid.New()
	now := time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC)

	uc := newTestUseCase(ucDeps{
		catalog: &fakeCatalogClient{allowed: false},
	}, now)

	_, err := uc.Execute(context.Background(), validRequest(barberID, time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)))
	assert.ErrorIs(t, err, ErrBookingsDisabled)
}

func TestUseCase_Execute_ForeignServiceRejected(t *testing.T) {
	barberID := uuid.New()
	now := time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC)

	uc := newTestUseCase(ucDeps{
		catalog: &fakeCatalogClient{allowed: true, service: haircut(uuid.New())},
	}, now)

	_, err := uc.Execute(context.Background(), validRequest(barberID, time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)))
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestUseCase_Execute_SerializationConflict(t *testing.T) {
	barberID := uuid.New()
	now := time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC)

	uc := newTestUseCase(ucDeps{
		schedule:  wednesdaySchedule(barberID),
		catalog:   &fakeCatalogClient{allowed: true, service: haircut(barberID)},
		txManager: &fakeTxManager{err: txmanager.ErrSerialization},
	}, now)

	_, err := uc.Execute(context.Background(), validRequest(barberID, time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)))
	assert.ErrorIs(t, err, ErrConcurrencyConflict)
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	barberID := uuid.New()
	now := time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC)
	startsAt := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)

	uc := newTestUseCase(ucDeps{}, now)

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "nil barber", req: &Request{ServiceID: 7, StartsAt: startsAt, ClientName: "Иван", ClientPhone: "+79990001122"}},
		{name: "zero service", req: &Request{BarberID: barberID, StartsAt: startsAt, ClientName: "Иван", ClientPhone: "+79990001122"}},
		{name: "empty name", req: &Request{BarberID: barberID, ServiceID: 7, StartsAt: startsAt, ClientPhone: "+79990001122"}},
		{name: "empty phone", req: &Request{BarberID: barberID, ServiceID: 7, StartsAt: startsAt, ClientName: "Иван"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

// Два параллельных запроса на один интервал: при взаимном исключении
// транзакций ровно один должен выиграть слот
func TestUseCase_Execute_ConcurrentSameSlot(t *testing.T) {
	barberID := uuid.New()
	now := time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC)
	startsAt := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)

	repo := &memAppointmentRepo{}
	uc := newTestUseCase(ucDeps{
		appointments: repo,
		schedule:     wednesdaySchedule(barberID),
		catalog:      &fakeCatalogClient{allowed: true, service: haircut(barberID)},
	}, now)

	const attempts = 8
	errs := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), validRequest(barberID, startsAt))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, rejected int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		default:
			require.ErrorIs(t, err, ErrSlotTaken)
			rejected++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, rejected)

	appointments, err := repo.GetByBarberAndRange(context.Background(), barberID, startsAt, startsAt.Add(time.Hour), false)
	require.NoError(t, err)
	assert.Len(t, appointments, 1)
}
