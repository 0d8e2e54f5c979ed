package book_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	eventRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/event"
	scheduleRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/mailer"
)

// UseCase use case бронирования слота (путь записи)
// Занятость ресурса перечитывается в момент фиксации внутри сериализуемой
// транзакции: результат более раннего чтения доступности может устареть
// к приходу бронирования и ему не доверяют
type UseCase struct {
	events            EventRepository
	bookings          BookingRepository
	schedules         ScheduleRepository
	contacts          ContactRepository
	notifier          Notifier
	txManager         TransactionManager
	defaultResourceID int64
	timeProvider      TimeProvider
	logger            Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	events EventRepository,
	bookings BookingRepository,
	schedules ScheduleRepository,
	contacts ContactRepository,
	notifier Notifier,
	txManager TransactionManager,
	defaultResourceID int64,
	logger Logger,
) *UseCase {
	return &UseCase{
		events:            events,
		bookings:          bookings,
		schedules:         schedules,
		contacts:          contacts,
		notifier:          notifier,
		txManager:         txManager,
		defaultResourceID: defaultResourceID,
		timeProvider:      &RealTimeProvider{},
		logger:            logger,
	}
}

// Execute выполняет use case бронирования
// Проверка занятости и запись выполняются одной атомарной критической
// секцией на ресурс: из конкурирующих бронирований пересекающихся слотов
// фиксируется ровно одно, остальные получают ErrSlotConflict
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookAppointment: selector=%q, slot=[%s, %s), caller=%q",
		req.Selector, req.SlotStart, req.SlotEnd, req.CallerName)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	slot, err := parseSlot(req, now)
	if err != nil {
		uc.logger.Warn("BookAppointment: slot parsing failed: %v", err)
		return nil, err
	}

	// 2. Разрешаем зону вызывающего (деградация в UTC, не ошибка)
	callerZone, degraded := resolveLocation(req.Timezone)
	if degraded {
		uc.logger.Warn("BookAppointment: unknown timezone %q, degrading to UTC", req.Timezone)
	}

	// 3. Разрешаем ресурс по той же политике, что и путь чтения
	sched, defaulted, err := uc.resolveSchedule(ctx, req.Selector)
	if err != nil {
		return nil, err
	}
	if defaulted {
		uc.logger.Warn("BookAppointment: selector %q unresolved, defaulting to resource id=%d",
			req.Selector, sched.ID)
	}

	// 4. Разрешаем контакт вызывающего до критической секции:
	// поиск/создание контакта не участвует в инварианте занятости
	contact, err := uc.contacts.LookupOrCreate(ctx, callerName(req), req.CallerEmail, req.CallerPhone)
	if err != nil {
		uc.logger.Error("BookAppointment: failed to resolve contact: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve contact: %v", ErrStoreUnavailable, err)
	}

	var result *domain.Booking

	// 5. Критическая секция: перечитать занятость, проверить, записать.
	// Сериализуемая транзакция линеаризует конкурирующие бронирования,
	// exclusion constraint в БД — последний рубеж
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. В режиме шаблонов запрошенный слот обязан точно совпасть
		// с одним из шаблонных кандидатов на эту дату
		if err := uc.verifyTemplateMatch(txCtx, sched, slot); err != nil {
			return err
		}

		// 5.2. Перечитываем занятые интервалы, покрывающие слот
		busy, err := uc.events.QueryOverlapping(txCtx, sched.ID, slot)
		if err != nil {
			uc.logger.Error("BookAppointment: failed to query busy intervals: %v", err)
			return fmt.Errorf("%w: failed to query busy intervals: %v", ErrStoreUnavailable, err)
		}

		for _, b := range domain.MergeIntervals(busy) {
			if slot.Overlaps(b) {
				uc.logger.Warn("BookAppointment: slot [%s, %s) conflicts with busy [%s, %s) on resource=%d",
					slot.Start, slot.End, b.Start, b.End, sched.ID)
				return ErrSlotConflict
			}
		}

		// 5.3. Создаем бронирование с денормализацией данных
		booking := &domain.Booking{
			PublicID:     uuid.New(),
			ResourceID:   sched.ID,
			ContactID:    contact.ID,
			StartAt:      slot.Start,
			EndAt:        slot.End,
			Status:       domain.StatusConfirmed,
			ScheduleName: sched.Name,
			ContactName:  contact.Name,
			ContactEmail: contact.Email,
			ContactPhone: contact.Phone,
			Notes:        req.Notes,
		}

		created, err := uc.bookings.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("BookAppointment: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 5.4. Занимаем интервал в календаре тем же коммитом:
		// запись и занятый интервал не существуют друг без друга
		event := &domain.CalendarEvent{
			ResourceID: sched.ID,
			BookingID:  &created.ID,
			Title:      fmt.Sprintf("%s - %s", sched.Name, contact.Name),
			StartAt:    slot.Start,
			EndAt:      slot.End,
		}

		if _, err := uc.events.Create(txCtx, event); err != nil {
			if errors.Is(err, eventRepo.ErrIntervalTaken) {
				uc.logger.Warn("BookAppointment: exclusion constraint rejected slot [%s, %s) on resource=%d",
					slot.Start, slot.End, sched.ID)
				return ErrSlotConflict
			}
			uc.logger.Error("BookAppointment: failed to create calendar event: %v", err)
			return fmt.Errorf("%w: failed to create calendar event: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("BookAppointment: booking %s confirmed on resource=%d, slot=[%s, %s)",
		result.PublicID, sched.ID, result.StartAt, result.EndAt)

	// 6. Уведомление best-effort после фиксации: его неудача невидима
	// вызывающему и никогда не откатывает бронирование
	uc.notifyAsync(result, callerZone)

	return &Response{
		BookingID:         result.PublicID,
		ResourceID:        sched.ID,
		ResourceName:      sched.Name,
		ResourceDefaulted: defaulted,
		ContactID:         contact.ID,
		FinalStart:        result.StartAt,
		FinalEnd:          result.EndAt,
		CallerZone:        callerZone,
	}, nil
}

// resolveSchedule разрешает селектор в расписание с деградацией в дефолтный
// ресурс по явной политике
func (uc *UseCase) resolveSchedule(ctx context.Context, selector string) (*domain.Schedule, bool, error) {
	if selector != "" {
		sched, err := uc.schedules.Resolve(ctx, selector)
		if err == nil {
			return sched, false, nil
		}
		if !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Error("BookAppointment: failed to resolve selector %q: %v", selector, err)
			return nil, false, fmt.Errorf("%w: failed to resolve resource: %v", ErrStoreUnavailable, err)
		}
	}

	sched, err := uc.schedules.GetByID(ctx, uc.defaultResourceID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Error("BookAppointment: default resource id=%d not found", uc.defaultResourceID)
			return nil, false, fmt.Errorf("%w: default resource is not configured correctly", ErrInternal)
		}
		uc.logger.Error("BookAppointment: failed to get default resource: %v", err)
		return nil, false, fmt.Errorf("%w: failed to get default resource: %v", ErrStoreUnavailable, err)
	}

	return sched, true, nil
}

// verifyTemplateMatch проверяет слот против действующих шаблонов
// Дата и день недели берутся в домашней зоне ресурса — авторитетной зоне
// режима шаблонов. Если шаблонов на этот день нет, ресурс работает в
// режиме нарезки и проверка не применяется
func (uc *UseCase) verifyTemplateMatch(ctx context.Context, sched *domain.Schedule, slot domain.TimeInterval) error {
	localDate := slot.Start.In(sched.Location())

	templates, err := uc.schedules.TemplatesFor(ctx, sched.ID, domain.ISOWeekday(localDate))
	if err != nil {
		uc.logger.Error("BookAppointment: failed to get templates for resource=%d: %v", sched.ID, err)
		return fmt.Errorf("%w: failed to get templates: %v", ErrStoreUnavailable, err)
	}

	if len(templates) == 0 {
		return nil
	}

	for _, tpl := range templates {
		candidate, err := tpl.Localize(localDate)
		if err != nil {
			continue
		}
		if candidate.Equal(slot) {
			return nil
		}
	}

	uc.logger.Warn("BookAppointment: slot [%s, %s) does not match any template of resource=%d",
		slot.Start, slot.End, sched.ID)
	return ErrSlotNotOffered
}

// notifyAsync отправляет подтверждение в отдельной горутине
func (uc *UseCase) notifyAsync(booking *domain.Booking, zone *time.Location) {
	email := ""
	if booking.ContactEmail != nil {
		email = *booking.ContactEmail
	}

	n := mailer.BookingNotification{
		RecipientName:  booking.ContactName,
		RecipientEmail: email,
		ScheduleName:   booking.ScheduleName,
		BookingID:      booking.PublicID.String(),
		StartAt:        booking.StartAt,
		EndAt:          booking.EndAt,
		Zone:           zone,
	}

	go func() {
		if err := uc.notifier.SendBookingConfirmed(n); err != nil && !errors.Is(err, mailer.ErrDisabled) {
			uc.logger.Error("BookAppointment: failed to send confirmation for booking %s: %v", n.BookingID, err)
		}
	}()
}
