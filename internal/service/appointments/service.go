package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/mailer"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// Service сервис для работы с существующими бронированиями
type Service struct {
	bookingRepo  BookingRepository
	eventRepo    EventRepository
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	eventRepo EventRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		eventRepo:    eventRepo,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByPublicID получает бронирование по публичному идентификатору
func (s *Service) GetByPublicID(ctx context.Context, publicID uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByPublicID: fetching booking %s", publicID)

	booking, err := s.bookingRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByPublicID: booking %s not found", publicID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByPublicID: repository error for booking %s: %v", publicID, err)
		return nil, fmt.Errorf("%w: GetByPublicID - repository error: %v", ErrStoreUnavailable, err)
	}

	return models.FromDomainBooking(booking), nil
}

// Cancel отменяет подтверждённое бронирование и освобождает его интервал
// Отмена и освобождение интервала выполняются одной транзакцией: слот
// становится доступным для новых бронирований тем же коммитом, который
// помечает запись отменённой
func (s *Service) Cancel(ctx context.Context, publicID uuid.UUID, req *models.CancelAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling booking %s", publicID)

	if len(req.CancellationReason) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: cancellation reason must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	var reason *string
	if req.CancellationReason != "" {
		reason = &req.CancellationReason
	}

	var cancelled *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Внутри транзакции GetByPublicID берёт строку с блокировкой
		booking, err := s.bookingRepo.GetByPublicID(txCtx, publicID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("Cancel: repository error for booking %s: %v", publicID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrStoreUnavailable, err)
		}

		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking %s has status %s and cannot be cancelled", publicID, booking.Status)
			return ErrCannotCancel
		}

		if err := s.bookingRepo.Cancel(txCtx, booking.ID, reason); err != nil {
			if errors.Is(err, bookingRepo.ErrCannotCancel) {
				return ErrCannotCancel
			}
			s.logger.Error("Cancel: failed to cancel booking %s: %v", publicID, err)
			return fmt.Errorf("%w: Cancel - failed to cancel: %v", ErrInternal, err)
		}

		if err := s.eventRepo.DeleteByBookingID(txCtx, booking.ID); err != nil {
			s.logger.Error("Cancel: failed to release interval of booking %s: %v", publicID, err)
			return fmt.Errorf("%w: Cancel - failed to release interval: %v", ErrInternal, err)
		}

		cancelled = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: booking %s cancelled, interval [%s, %s) released",
		publicID, cancelled.StartAt, cancelled.EndAt)

	s.notifyCancelled(cancelled)

	now := s.timeProvider.Now()
	cancelled.Status = domain.StatusCancelled
	cancelled.CancelledAt = &now
	cancelled.CancellationReason = reason

	return models.FromDomainBooking(cancelled), nil
}

// ListByResource получает бронирования ресурса с фильтрацией
func (s *Service) ListByResource(ctx context.Context, req *models.ListResourceAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListByResource: fetching bookings for resource=%d", req.ResourceID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListByResource: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.ListByResource(ctx, filter)
	if err != nil {
		s.logger.Error("ListByResource: repository error for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: ListByResource - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("ListByResource: fetched %d bookings for resource=%d", len(bookings), req.ResourceID)
	return models.FromDomainBookings(bookings), nil
}

// CompletePast помечает завершёнными подтверждённые бронирования, чьё
// время окончания уже прошло. Возвращает количество обновлённых записей
func (s *Service) CompletePast(ctx context.Context) (int64, error) {
	now := s.timeProvider.Now()

	count, err := s.bookingRepo.CompletePast(ctx, now)
	if err != nil {
		s.logger.Error("CompletePast: repository error: %v", err)
		return 0, fmt.Errorf("%w: CompletePast - repository error: %v", ErrStoreUnavailable, err)
	}

	if count > 0 {
		s.logger.Info("CompletePast: marked %d bookings as completed", count)
	}
	return count, nil
}

// notifyCancelled отправляет уведомление об отмене в отдельной горутине
func (s *Service) notifyCancelled(booking *domain.Booking) {
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
		Zone:           time.UTC,
	}

	go func() {
		if err := s.notifier.SendBookingCancelled(n); err != nil && !errors.Is(err, mailer.ErrDisabled) {
			s.logger.Error("Cancel: failed to send cancellation notice for booking %s: %v", n.BookingID, err)
		}
	}()
}
