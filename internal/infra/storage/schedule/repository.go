package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

var scheduleColumns = []string{
	"id",
	"name",
	"staff_name",
	"timezone",
	"active",
	"created_at",
	"updated_at",
}

// Repository репозиторий расписаний (ресурсов) и их шаблонов слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает расписание по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id, "active": true})
}

// GetByName получает расписание по точному имени
func (r *Repository) GetByName(ctx context.Context, name string) (*domain.Schedule, error) {
	return r.getOne(ctx, squirrel.Eq{"name": name, "active": true})
}

// Resolve разрешает селектор в расписание: сначала как числовой ID,
// затем как точное имя. Политика разрешения зафиксирована здесь один раз —
// вызывающий код не перебирает варианты
func (r *Repository) Resolve(ctx context.Context, selector string) (*domain.Schedule, error) {
	if id, err := strconv.ParseInt(selector, 10, 64); err == nil {
		sched, err := r.GetByID(ctx, id)
		if err == nil {
			return sched, nil
		}
		if !errors.Is(err, ErrScheduleNotFound) {
			return nil, err
		}
	}

	return r.GetByName(ctx, selector)
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("schedules").
		Where(where).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	var sched domain.Schedule
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&sched.ID,
		&sched.Name,
		&sched.StaffName,
		&sched.Timezone,
		&sched.Active,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan schedule: %v", ErrScanRow, err)
	}

	sched.CreatedAt = createdAt.Time
	sched.UpdatedAt = updatedAt.Time

	return &sched, nil
}

// TemplatesFor получает шаблоны слотов расписания на день недели
// (ISO 8601: 1 = понедельник ... 7 = воскресенье)
// Пустой результат означает режим нарезки свободного времени по длительности
func (r *Repository) TemplatesFor(ctx context.Context, scheduleID int64, weekday int) ([]domain.SlotTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"schedule_id",
		"weekday",
		"start_minutes",
		"end_minutes",
		"timezone",
	).
		From("schedule_slot_templates").
		Where(squirrel.Eq{"schedule_id": scheduleID, "weekday": weekday}).
		OrderBy("start_minutes ASC, end_minutes ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: TemplatesFor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: TemplatesFor - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	templates := make([]domain.SlotTemplate, 0)
	for rows.Next() {
		var tpl domain.SlotTemplate
		if err := rows.Scan(
			&tpl.ID,
			&tpl.ScheduleID,
			&tpl.Weekday,
			&tpl.StartMinutes,
			&tpl.EndMinutes,
			&tpl.Zone,
		); err != nil {
			return nil, fmt.Errorf("%w: TemplatesFor - scan template: %v", ErrScanRow, err)
		}
		templates = append(templates, tpl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: TemplatesFor - rows error: %v", ErrScanRow, err)
	}

	return templates, nil
}

// ListTemplates получает все шаблоны расписания (для просмотра конфигурации)
func (r *Repository) ListTemplates(ctx context.Context, scheduleID int64) ([]domain.SlotTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"schedule_id",
		"weekday",
		"start_minutes",
		"end_minutes",
		"timezone",
	).
		From("schedule_slot_templates").
		Where(squirrel.Eq{"schedule_id": scheduleID}).
		OrderBy("weekday ASC, start_minutes ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListTemplates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTemplates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	templates := make([]domain.SlotTemplate, 0)
	for rows.Next() {
		var tpl domain.SlotTemplate
		if err := rows.Scan(
			&tpl.ID,
			&tpl.ScheduleID,
			&tpl.Weekday,
			&tpl.StartMinutes,
			&tpl.EndMinutes,
			&tpl.Zone,
		); err != nil {
			return nil, fmt.Errorf("%w: ListTemplates - scan template: %v", ErrScanRow, err)
		}
		templates = append(templates, tpl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListTemplates - rows error: %v", ErrScanRow, err)
	}

	return templates, nil
}
