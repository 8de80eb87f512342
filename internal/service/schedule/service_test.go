package schedule

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n1kprav/BRB-BookingService/internal/domain"
	blockRepo "github.com/n1kprav/BRB-BookingService/internal/infra/storage/block"
	"github.com/n1kprav/BRB-BookingService/internal/service/schedule/models"
	"github.com/n1kprav/BRB-BookingService/pkg/ptr"
)

type fakeScheduleRepo struct {
	byWeekday map[int]*domain.WeeklySchedule
	nextID    int64
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{byWeekday: make(map[int]*domain.WeeklySchedule)}
}

func (r *fakeScheduleRepo) Upsert(_ context.Context, sched *domain.WeeklySchedule) (*domain.WeeklySchedule, error) {
	stored := *sched
	if existing, ok := r.byWeekday[sched.DayOfWeek]; ok {
		stored.ID = existing.ID
	} else {
		r.nextID++
		stored.ID = r.nextID
	}
	r.byWeekday[sched.DayOfWeek] = &stored
	return &stored, nil
}

func (r *fakeScheduleRepo) GetAllByBarber(_ context.Context, barberID uuid.UUID) ([]*domain.WeeklySchedule, error) {
	var out []*domain.WeeklySchedule
	for _, sched := range r.byWeekday {
		if sched.BarberID == barberID {
			out = append(out, sched)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DayOfWeek < out[j].DayOfWeek })
	return out, nil
}

type fakeBlockRepo struct {
	byID   map[int64]*domain.ScheduleBlock
	nextID int64
}

func newFakeBlockRepo() *fakeBlockRepo {
	return &fakeBlockRepo{byID: make(map[int64]*domain.ScheduleBlock)}
}

func (r *fakeBlockRepo) Create(_ context.Context, blk *domain.ScheduleBlock) (*domain.ScheduleBlock, error) {
	r.nextID++
	created := *blk
	created.ID = r.nextID
	created.CreatedAt = time.Now().UTC()
	r.byID[created.ID] = &created
	return &created, nil
}

func (r *fakeBlockRepo) GetActualByBarber(_ context.Context, barberID uuid.UUID, now time.Time) ([]*domain.ScheduleBlock, error) {
	var out []*domain.ScheduleBlock
	for _, blk := range r.byID {
		if blk.BarberID != barberID || blk.IsExpired(now) {
			continue
		}
		out = append(out, blk)
	}
	return out, nil
}

func (r *fakeBlockRepo) Delete(_ context.Context, id int64, barberID uuid.UUID) error {
	blk, ok := r.byID[id]
	if !ok || blk.BarberID != barberID {
		return blockRepo.ErrBlockNotFound
	}
	delete(r.byID, id)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
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

func newTestService(schedRepo *fakeScheduleRepo, blkRepo *fakeBlockRepo, now time.Time) *Service {
	svc := NewService(schedRepo, blkRepo, fakeTxManager{}, nopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: now}
	return svc
}

func TestService_UpdateSchedule(t *testing.T) {
	barberID := uuid.New()
	svc := newTestService(newFakeScheduleRepo(), newFakeBlockRepo(), time.Now())

	resp, err := svc.UpdateSchedule(context.Background(), barberID, &models.UpdateScheduleRequest{
		Days: []models.DaySchedule{
			{DayOfWeek: 0, IsWorkDay: false},
			{DayOfWeek: 3, IsWorkDay: true, StartTime: "09:00", EndTime: "17:00", BreakStart: ptr.Ptr("12:00"), BreakEnd: ptr.Ptr("13:00")},
			// Ночная смена допустима
			{DayOfWeek: 5, IsWorkDay: true, StartTime: "18:00", EndTime: "02:00"},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Days, 3)
	assert.Equal(t, barberID, resp.BarberID)

	wed := resp.Days[1]
	assert.Equal(t, 3, wed.DayOfWeek)
	assert.True(t, wed.IsWorkDay)
	assert.Equal(t, "09:00", wed.StartTime)
	require.NotNil(t, wed.BreakStart)
	assert.Equal(t, "12:00", *wed.BreakStart)

	fri := resp.Days[2]
	assert.Equal(t, "18:00", fri.StartTime)
	assert.Equal(t, "02:00", fri.EndTime)
}

func TestService_UpdateSchedule_Invalid(t *testing.T) {
	barberID := uuid.New()
	svc := newTestService(newFakeScheduleRepo(), newFakeBlockRepo(), time.Now())

	tests := []struct {
		name string
		req  *models.UpdateScheduleRequest
	}{
		{name: "empty days", req: &models.UpdateScheduleRequest{}},
		{
			name: "day of week out of range",
			req: &models.UpdateScheduleRequest{Days: []models.DaySchedule{
				{DayOfWeek: 7, IsWorkDay: true, StartTime: "09:00", EndTime: "17:00"},
			}},
		},
		{
			name: "bad time format",
			req: &models.UpdateScheduleRequest{Days: []models.DaySchedule{
				{DayOfWeek: 1, IsWorkDay: true, StartTime: "25:00", EndTime: "17:00"},
			}},
		},
		{
			name: "break start without break end",
			req: &models.UpdateScheduleRequest{Days: []models.DaySchedule{
				{DayOfWeek: 1, IsWorkDay: true, StartTime: "09:00", EndTime: "17:00", BreakStart: ptr.Ptr("12:00")},
			}},
		},
		{
			name: "duplicate day of week",
			req: &models.UpdateScheduleRequest{Days: []models.DaySchedule{
				{DayOfWeek: 1, IsWorkDay: true, StartTime: "09:00", EndTime: "17:00"},
				{DayOfWeek: 1, IsWorkDay: false},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateSchedule(context.Background(), barberID, tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_UpdateSchedule_NonWorkingDaySkipsTimeChecks(t *testing.T) {
	barberID := uuid.New()
	svc := newTestService(newFakeScheduleRepo(), newFakeBlockRepo(), time.Now())

	// Для нерабочего дня времена не проверяются
	_, err := svc.UpdateSchedule(context.Background(), barberID, &models.UpdateScheduleRequest{
		Days: []models.DaySchedule{{DayOfWeek: 0, IsWorkDay: false, StartTime: "garbage"}},
	})
	assert.NoError(t, err)
}

func TestService_CreateBlock(t *testing.T) {
	barberID := uuid.New()
	now := time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeScheduleRepo(), newFakeBlockRepo(), now)

	resp, err := svc.CreateBlock(context.Background(), barberID, &models.CreateBlockRequest{
		StartsAt: time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC),
		Reason:   "отпуск",
	})
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, barberID, resp.BarberID)
	assert.Equal(t, "отпуск", resp.Reason)
}

func TestService_CreateBlock_InvalidRange(t *testing.T) {
	barberID := uuid.New()
	svc := newTestService(newFakeScheduleRepo(), newFakeBlockRepo(), time.Now())

	startsAt := time.Date(2025, 10, 20, 10, 0, 0, 0, time.UTC)

	_, err := svc.CreateBlock(context.Background(), barberID, &models.CreateBlockRequest{
		StartsAt: startsAt,
		EndsAt:   startsAt,
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = svc.CreateBlock(context.Background(), barberID, &models.CreateBlockRequest{
		StartsAt: startsAt,
		EndsAt:   startsAt.Add(-time.Hour),
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = svc.CreateBlock(context.Background(), barberID, &models.CreateBlockRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetBlocks_SkipsExpired(t *testing.T) {
	barberID := uuid.New()
	now := time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC)

	blkRepo := newFakeBlockRepo()
	svc := newTestService(newFakeScheduleRepo(), blkRepo, now)

	// Уже закончившаяся блокировка
	_, err := blkRepo.Create(context.Background(), &domain.ScheduleBlock{
		BarberID: barberID,
		StartsAt: now.Add(-48 * time.Hour),
		EndsAt:   now.Add(-24 * time.Hour),
	})
	require.NoError(t, err)

	// Действующая
	_, err = blkRepo.Create(context.Background(), &domain.ScheduleBlock{
		BarberID: barberID,
		StartsAt: now.Add(-time.Hour),
		EndsAt:   now.Add(time.Hour),
	})
	require.NoError(t, err)

	resp, err := svc.GetBlocks(context.Background(), barberID)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
}

func TestService_DeleteBlock(t *testing.T) {
	barberID := uuid.New()
	stranger := uuid.New()
	now := time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC)

	blkRepo := newFakeBlockRepo()
	svc := newTestService(newFakeScheduleRepo(), blkRepo, now)

	created, err := blkRepo.Create(context.Background(), &domain.ScheduleBlock{
		BarberID: barberID,
		StartsAt: now,
		EndsAt:   now.Add(time.Hour),
	})
	require.NoError(t, err)

	// Чужая блокировка выглядит как несуществующая
	err = svc.DeleteBlock(context.Background(), stranger, created.ID)
	assert.ErrorIs(t, err, ErrBlockNotFound)

	require.NoError(t, svc.DeleteBlock(context.Background(), barberID, created.ID))

	err = svc.DeleteBlock(context.Background(), barberID, created.ID)
	assert.ErrorIs(t, err, ErrBlockNotFound)
}
