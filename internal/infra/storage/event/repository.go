package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// pgExclusionViolation код PostgreSQL для нарушения exclusion constraint
// Constraint calendar_events_no_overlap — последний рубеж защиты от
// двойного бронирования, помимо сериализуемой транзакции
const pgExclusionViolation = "23P01"

// Repository репозиторий событий календаря — хранилище занятых интервалов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория событий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// QueryOverlapping возвращает занятые интервалы ресурса, пересекающиеся с
// окном [window.Start, window.End). Запрашивается только диапазон окна:
// start_at < window.End AND end_at > window.Start
// Интервалы возвращаются в UTC, отсортированные по началу
func (r *Repository) QueryOverlapping(ctx context.Context, resourceID int64, window domain.TimeInterval) ([]domain.TimeInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("start_at", "end_at").
		From("calendar_events").
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.Lt{"start_at": window.End}).
		Where(squirrel.Gt{"end_at": window.Start}).
		OrderBy("start_at ASC, end_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: QueryOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: QueryOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals := make([]domain.TimeInterval, 0)
	for rows.Next() {
		var iv domain.TimeInterval
		if err := rows.Scan(&iv.Start, &iv.End); err != nil {
			return nil, fmt.Errorf("%w: QueryOverlapping - scan interval: %v", ErrScanRow, err)
		}
		iv.Start = iv.Start.UTC()
		iv.End = iv.End.UTC()
		intervals = append(intervals, iv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: QueryOverlapping - rows error: %v", ErrScanRow, err)
	}

	return intervals, nil
}

// Create создает событие календаря (занимает интервал)
// При нарушении exclusion constraint (пересечение с существующим событием
// того же ресурса) возвращает ErrIntervalTaken
func (r *Repository) Create(ctx context.Context, event *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("calendar_events").
		Columns(
			"resource_id",
			"booking_id",
			"title",
			"start_at",
			"end_at",
		).
		Values(
			event.ResourceID,
			event.BookingID,
			event.Title,
			event.StartAt,
			event.EndAt,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&event.ID,
		&createdAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgExclusionViolation {
			return nil, ErrIntervalTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	event.CreatedAt = createdAt.Time

	return event, nil
}

// DeleteByBookingID удаляет события календаря, созданные бронированием
// Вызывается в одной транзакции с отменой бронирования, освобождая интервал
func (r *Repository) DeleteByBookingID(ctx context.Context, bookingID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("calendar_events").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByBookingID - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByBookingID - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}
