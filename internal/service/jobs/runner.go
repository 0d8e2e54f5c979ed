package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// AppointmentService интерфейс сервиса бронирований, нужный фоновым задачам
type AppointmentService interface {
	CompletePast(ctx context.Context) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// jobTimeout таймаут одного запуска фоновой задачи
const jobTimeout = 30 * time.Second

// Runner планировщик фоновых задач сервиса
type Runner struct {
	cron    *cron.Cron
	service AppointmentService
	logger  Logger
}

// NewRunner создает планировщик без запуска
func NewRunner(service AppointmentService, logger Logger) *Runner {
	return &Runner{
		cron:    cron.New(),
		service: service,
		logger:  logger,
	}
}

// Start регистрирует задачи и запускает планировщик
// completePastSpec - cron-выражение для задачи завершения прошедших
// бронирований, например "*/10 * * * *"
func (r *Runner) Start(completePastSpec string) error {
	_, err := r.cron.AddFunc(completePastSpec, r.runCompletePast)
	if err != nil {
		return fmt.Errorf("jobs: failed to schedule complete-past job: %w", err)
	}

	r.cron.Start()
	r.logger.Info("Jobs: scheduler started, complete-past spec=%q", completePastSpec)
	return nil
}

// Stop останавливает планировщик и дожидается завершения текущих задач
func (r *Runner) Stop() {
	stopCtx := r.cron.Stop()
	<-stopCtx.Done()
	r.logger.Info("Jobs: scheduler stopped")
}

// runCompletePast помечает завершёнными прошедшие подтверждённые бронирования
func (r *Runner) runCompletePast() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	count, err := r.service.CompletePast(ctx)
	if err != nil {
		r.logger.Error("Jobs: complete-past run failed: %v", err)
		return
	}
	if count > 0 {
		r.logger.Info("Jobs: complete-past marked %d bookings", count)
	}
}
