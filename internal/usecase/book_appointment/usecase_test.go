package book_appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	eventRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/event"
	scheduleRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/mailer"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// --- фейки контрактов ---

// fakeEventStore хранит занятые интервалы и воспроизводит exclusion
// constraint: создание пересекающегося события отклоняется.
// Конкурентный доступ сериализуется фейковым transaction manager
type fakeEventStore struct {
	events []domain.CalendarEvent
	err    error
}

func (f *fakeEventStore) QueryOverlapping(_ context.Context, resourceID int64, window domain.TimeInterval) ([]domain.TimeInterval, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.TimeInterval, 0)
	for _, e := range f.events {
		if e.ResourceID == resourceID && e.Interval().Overlaps(window) {
			out = append(out, e.Interval())
		}
	}
	return out, nil
}

func (f *fakeEventStore) Create(_ context.Context, event *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	iv := event.Interval()
	for _, e := range f.events {
		if e.ResourceID == event.ResourceID && e.Interval().Overlaps(iv) {
			return nil, eventRepo.ErrIntervalTaken
		}
	}
	event.ID = int64(len(f.events) + 1)
	f.events = append(f.events, *event)
	return event, nil
}

type fakeBookingRepo struct {
	created []domain.Booking
	err     error
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	booking.ID = int64(len(f.created) + 1)
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	f.created = append(f.created, *booking)
	return booking, nil
}

type fakeScheduleRepo struct {
	schedules map[int64]*domain.Schedule
	byName    map[string]*domain.Schedule
	templates map[int][]domain.SlotTemplate
}

func (f *fakeScheduleRepo) Resolve(_ context.Context, selector string) (*domain.Schedule, error) {
	if s, ok := f.byName[selector]; ok {
		return s, nil
	}
	return nil, scheduleRepo.ErrScheduleNotFound
}

func (f *fakeScheduleRepo) GetByID(_ context.Context, id int64) (*domain.Schedule, error) {
	if s, ok := f.schedules[id]; ok {
		return s, nil
	}
	return nil, scheduleRepo.ErrScheduleNotFound
}

func (f *fakeScheduleRepo) TemplatesFor(_ context.Context, _ int64, weekday int) ([]domain.SlotTemplate, error) {
	return f.templates[weekday], nil
}

type fakeContactRepo struct {
	nextID int64
	mu     sync.Mutex
}

func (f *fakeContactRepo) LookupOrCreate(_ context.Context, name string, email, phone *string) (*domain.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	return &domain.Contact{ID: f.nextID, Name: name, Email: email, Phone: phone}, nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []mailer.BookingNotification
}

func (f *fakeNotifier) SendBookingConfirmed(n mailer.BookingNotification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, n)
	return nil
}

func (f *fakeNotifier) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// fakeTxManager сериализует критические секции мьютексом, воспроизводя
// линеаризацию конкурирующих сериализуемых транзакций
type fakeTxManager struct {
	mu sync.Mutex
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- хелперы ---

var testNow = time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

func utc(hour, min int) time.Time {
	return time.Date(2026, 1, 15, hour, min, 0, 0, time.UTC) // четверг
}

func iso(t time.Time) string {
	return t.Format(time.RFC3339)
}

func testSchedule() *domain.Schedule {
	return &domain.Schedule{ID: 1, Name: "Dr. Ivanova", Timezone: "UTC", Active: true}
}

type fixture struct {
	events    *fakeEventStore
	bookings  *fakeBookingRepo
	schedules *fakeScheduleRepo
	contacts  *fakeContactRepo
	notifier  *fakeNotifier
	uc        *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		events:   &fakeEventStore{},
		bookings: &fakeBookingRepo{},
		schedules: &fakeScheduleRepo{
			schedules: map[int64]*domain.Schedule{1: testSchedule()},
			byName:    map[string]*domain.Schedule{"Dr. Ivanova": testSchedule()},
			templates: map[int][]domain.SlotTemplate{},
		},
		contacts: &fakeContactRepo{},
		notifier: &fakeNotifier{},
	}
	f.uc = NewUseCase(f.events, f.bookings, f.schedules, f.contacts, f.notifier, &fakeTxManager{}, 1, nopLogger{})
	f.uc.timeProvider = &fixedTimeProvider{now: testNow}
	return f
}

func bookRequest() *Request {
	return &Request{
		Selector:    "Dr. Ivanova",
		SlotStart:   iso(utc(10, 0)),
		SlotEnd:     iso(utc(11, 0)),
		CallerName:  "Ivan Petrov",
		CallerEmail: ptr.Ptr("ivan@example.com"),
	}
}

// --- тесты ---

func TestExecute_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), bookRequest())
	require.NoError(t, err)

	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", resp.BookingID.String())
	assert.Equal(t, int64(1), resp.ResourceID)
	assert.False(t, resp.ResourceDefaulted)
	assert.Equal(t, utc(10, 0), resp.FinalStart)
	assert.Equal(t, utc(11, 0), resp.FinalEnd)

	// Бронирование и событие календаря созданы согласованно
	require.Len(t, f.bookings.created, 1)
	require.Len(t, f.events.events, 1)
	created := f.bookings.created[0]
	assert.Equal(t, domain.StatusConfirmed, created.Status)
	assert.Equal(t, "Dr. Ivanova", created.ScheduleName)
	assert.Equal(t, "Ivan Petrov", created.ContactName)
	require.NotNil(t, f.events.events[0].BookingID)
	assert.Equal(t, created.ID, *f.events.events[0].BookingID)

	// Уведомление отправляется асинхронно после фиксации
	assert.Eventually(t, func() bool { return f.notifier.sentCount() == 1 },
		time.Second, 10*time.Millisecond)
}

func TestExecute_SlotValidation(t *testing.T) {
	f := newFixture()

	t.Run("missing bounds", func(t *testing.T) {
		req := bookRequest()
		req.SlotEnd = ""
		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidSlot)
	})

	t.Run("malformed bound", func(t *testing.T) {
		req := bookRequest()
		req.SlotStart = "2026-01-15 10:00"
		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidSlot)
	})

	t.Run("inverted interval", func(t *testing.T) {
		req := bookRequest()
		req.SlotStart = iso(utc(11, 0))
		req.SlotEnd = iso(utc(10, 0))
		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidSlot)
	})

	t.Run("slot entirely in the past", func(t *testing.T) {
		req := bookRequest()
		req.SlotStart = "2026-01-05T10:00:00Z"
		req.SlotEnd = "2026-01-05T11:00:00Z"
		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidSlot)
	})

	t.Run("notes too long", func(t *testing.T) {
		long := string(make([]byte, domain.MaxNotesLength+1))
		req := bookRequest()
		req.Notes = &long
		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestExecute_SlotConflict(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), bookRequest())
	require.NoError(t, err)

	// Пересекающийся слот отклоняется, состояние не меняется
	req := bookRequest()
	req.SlotStart = iso(utc(10, 30))
	req.SlotEnd = iso(utc(11, 30))

	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Len(t, f.bookings.created, 1)
	assert.Len(t, f.events.events, 1)
}

func TestExecute_TouchingSlotsDoNotConflict(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), bookRequest())
	require.NoError(t, err)

	req := bookRequest()
	req.SlotStart = iso(utc(11, 0))
	req.SlotEnd = iso(utc(12, 0))

	_, err = f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, f.events.events, 2)
}

func TestExecute_TemplateMatching(t *testing.T) {
	templates := []domain.SlotTemplate{
		{ID: 1, ScheduleID: 1, Weekday: 4, StartMinutes: 10 * 60, EndMinutes: 11 * 60, Zone: "UTC"},
		{ID: 2, ScheduleID: 1, Weekday: 4, StartMinutes: 13 * 60, EndMinutes: 14 * 60, Zone: "UTC"},
	}

	t.Run("exact template slot accepted", func(t *testing.T) {
		f := newFixture()
		f.schedules.templates[4] = templates

		_, err := f.uc.Execute(context.Background(), bookRequest())
		assert.NoError(t, err)
	})

	t.Run("arbitrary slot rejected in template mode", func(t *testing.T) {
		f := newFixture()
		f.schedules.templates[4] = templates

		req := bookRequest()
		req.SlotStart = iso(utc(10, 30))
		req.SlotEnd = iso(utc(11, 30))

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrSlotNotOffered)
		assert.Empty(t, f.bookings.created)
	})

	t.Run("slot matching template width but wrong offset rejected", func(t *testing.T) {
		f := newFixture()
		f.schedules.templates[4] = templates

		req := bookRequest()
		req.SlotStart = iso(utc(11, 0))
		req.SlotEnd = iso(utc(12, 0))

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrSlotNotOffered)
	})

	t.Run("no templates on weekday means any slot bookable", func(t *testing.T) {
		f := newFixture()
		f.schedules.templates[1] = templates // только понедельник

		req := bookRequest()
		req.SlotStart = iso(utc(16, 45))
		req.SlotEnd = iso(utc(17, 15))

		_, err := f.uc.Execute(context.Background(), req)
		assert.NoError(t, err)
	})
}

func TestExecute_ResourceDefaulting(t *testing.T) {
	f := newFixture()

	req := bookRequest()
	req.Selector = "Dr. Nobody"

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, resp.ResourceDefaulted)
	assert.Equal(t, int64(1), resp.ResourceID)
}

func TestExecute_AnonymousCaller(t *testing.T) {
	f := newFixture()

	req := bookRequest()
	req.CallerName = ""

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, defaultCallerName, f.bookings.created[0].ContactName)
}

func TestExecute_StoreFailure(t *testing.T) {
	f := newFixture()
	f.events.err = assert.AnError

	_, err := f.uc.Execute(context.Background(), bookRequest())
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Empty(t, f.bookings.created)
}

func TestExecute_ConcurrentReservesExactlyOneWins(t *testing.T) {
	f := newFixture()

	const workers = 16

	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), bookRequest())
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrSlotConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, wins)
	assert.Equal(t, workers-1, conflicts)
	assert.Len(t, f.events.events, 1)
	assert.Len(t, f.bookings.created, 1)
}
