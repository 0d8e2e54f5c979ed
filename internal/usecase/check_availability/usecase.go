package check_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/schedule"
)

// UseCase use case вычисления доступных слотов (путь чтения)
// Чистое вычисление без побочных эффектов: безопасно выполняется
// параллельно для любого числа ресурсов и вызывающих
type UseCase struct {
	eventRepo         EventRepository
	scheduleRepo      ScheduleRepository
	defaultResourceID int64
	logger            Logger
}

// NewUseCase создает новый экземпляр use case
// defaultResourceID — явная конфигурация ресурса-фолбэка (не скрытая
// константа): используется, когда селектор не разрешился
func NewUseCase(
	eventRepo EventRepository,
	scheduleRepo ScheduleRepository,
	defaultResourceID int64,
	logger Logger,
) *UseCase {
	return &UseCase{
		eventRepo:         eventRepo,
		scheduleRepo:      scheduleRepo,
		defaultResourceID: defaultResourceID,
		logger:            logger,
	}
}

// Execute выполняет use case проверки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: selector=%q, date=%s, duration=%d, window=%q, tz=%q",
		req.Selector, req.Date, req.DurationMinutes, req.Window, req.Timezone)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	date, err := parseDate(req.Date)
	if err != nil {
		uc.logger.Warn("CheckAvailability: date parsing failed: %v", err)
		return nil, err
	}

	// 2. Разрешаем зону вызывающего (деградация в UTC, не ошибка)
	callerZone, degraded := resolveLocation(req.Timezone)
	if degraded {
		uc.logger.Warn("CheckAvailability: unknown timezone %q, degrading to UTC", req.Timezone)
	}

	// 3. Разрешаем ресурс (деградация в дефолтный ресурс, не ошибка)
	sched, defaulted, err := uc.resolveSchedule(ctx, req.Selector)
	if err != nil {
		return nil, err
	}
	if defaulted {
		uc.logger.Warn("CheckAvailability: selector %q unresolved, defaulting to resource id=%d",
			req.Selector, sched.ID)
	}

	// 4. Получаем шаблоны слотов на день недели запрошенной даты
	templates, err := uc.scheduleRepo.TemplatesFor(ctx, sched.ID, domain.ISOWeekday(date))
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get templates for resource=%d: %v", sched.ID, err)
		return nil, fmt.Errorf("%w: failed to get templates: %v", ErrStoreUnavailable, err)
	}

	resp := &Response{
		ResourceID:        sched.ID,
		ResourceName:      sched.Name,
		ResourceDefaulted: defaulted,
		Date:              date,
		CallerZone:        callerZone,
	}

	// 5. Вычисляем слоты: режим шаблонов, если они есть на этот день недели,
	// иначе нарезка свободного времени по запрошенной длительности.
	// Авторитетная зона в режиме шаблонов — домашняя зона ресурса,
	// в режиме нарезки — зона вызывающего; они никогда не смешиваются
	if len(templates) > 0 {
		resp.Mode = ModeTemplate
		resp.Slots, err = uc.templateSlots(ctx, sched, templates, date)
	} else {
		resp.Mode = ModeFixed
		resp.Slots, err = uc.fixedSlots(ctx, sched, req, date, callerZone)
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CheckAvailability: resource=%d, date=%s, mode=%s, slots=%d",
		sched.ID, req.Date, resp.Mode, len(resp.Slots))

	return resp, nil
}

// resolveSchedule разрешает селектор в расписание с деградацией в дефолтный
// ресурс по явной политике. Подмена видна вызывающему через флаг в ответе
func (uc *UseCase) resolveSchedule(ctx context.Context, selector string) (*domain.Schedule, bool, error) {
	if selector != "" {
		sched, err := uc.scheduleRepo.Resolve(ctx, selector)
		if err == nil {
			return sched, false, nil
		}
		if !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Error("CheckAvailability: failed to resolve selector %q: %v", selector, err)
			return nil, false, fmt.Errorf("%w: failed to resolve resource: %v", ErrStoreUnavailable, err)
		}
	}

	sched, err := uc.scheduleRepo.GetByID(ctx, uc.defaultResourceID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Error("CheckAvailability: default resource id=%d not found", uc.defaultResourceID)
			return nil, false, fmt.Errorf("%w: default resource is not configured correctly", ErrInternal)
		}
		uc.logger.Error("CheckAvailability: failed to get default resource: %v", err)
		return nil, false, fmt.Errorf("%w: failed to get default resource: %v", ErrStoreUnavailable, err)
	}

	return sched, true, nil
}

// fixedSlots вычисляет слоты нарезкой свободного времени
// Окно дня локализуется в зоне вызывающего, вся арифметика — в UTC
func (uc *UseCase) fixedSlots(
	ctx context.Context,
	sched *domain.Schedule,
	req *Request,
	date time.Time,
	callerZone *time.Location,
) ([]domain.Slot, error) {
	keyword := domain.ParseWindowKeyword(req.Window)
	window := domain.WorkingWindow(date, keyword, callerZone)

	merged, err := uc.busyIntervals(ctx, sched.ID, window)
	if err != nil {
		return nil, err
	}

	free := domain.FreeIntervals(window, merged)
	duration := time.Duration(req.DurationMinutes) * time.Minute

	return domain.CapSlots(domain.SliceSlots(free, duration)), nil
}

// templateSlots вычисляет слоты по недельным шаблонам
// Каждый шаблон локализуется в своей (домашней) зоне и оценивается
// независимо; частично занятый шаблонный слот исключается целиком
func (uc *UseCase) templateSlots(
	ctx context.Context,
	sched *domain.Schedule,
	templates []domain.SlotTemplate,
	date time.Time,
) ([]domain.Slot, error) {
	window, err := domain.TemplateWindow(templates, date)
	if err != nil {
		// Ни один шаблон не локализуется — предлагать нечего
		uc.logger.Warn("CheckAvailability: no localizable templates for resource=%d on %s",
			sched.ID, date.Format(domain.DateFormat))
		return []domain.Slot{}, nil
	}

	merged, err := uc.busyIntervals(ctx, sched.ID, window)
	if err != nil {
		return nil, err
	}

	return domain.CapSlots(domain.TemplateSlots(templates, date, merged)), nil
}

// busyIntervals получает и нормализует занятые интервалы окна
func (uc *UseCase) busyIntervals(ctx context.Context, resourceID int64, window domain.TimeInterval) ([]domain.TimeInterval, error) {
	busy, err := uc.eventRepo.QueryOverlapping(ctx, resourceID, window)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to query busy intervals for resource=%d: %v", resourceID, err)
		return nil, fmt.Errorf("%w: failed to query busy intervals: %v", ErrStoreUnavailable, err)
	}
	return domain.MergeIntervals(busy), nil
}
