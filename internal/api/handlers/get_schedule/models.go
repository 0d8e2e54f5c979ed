package get_schedule

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// TemplateResponse один недельный шаблон слота
type TemplateResponse struct {
	ID        int64  `json:"id"`
	Weekday   int    `json:"weekday"`   // ISO 8601: 1=Пн .. 7=Вс
	StartTime string `json:"startTime"` // "09:00" в домашней зоне расписания
	EndTime   string `json:"endTime"`   // "10:00"
	Timezone  string `json:"timezone"`
}

// ScheduleResponse HTTP response model: расписание с шаблонами
type ScheduleResponse struct {
	ID        int64              `json:"id"`
	Name      string             `json:"name"`
	StaffName string             `json:"staffName,omitempty"`
	Timezone  string             `json:"timezone"`
	Active    bool               `json:"active"`
	Templates []TemplateResponse `json:"templates"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// FromDomain конвертирует domain модели в HTTP модель
func FromDomain(s *domain.Schedule, templates []domain.SlotTemplate) *ScheduleResponse {
	resp := &ScheduleResponse{
		ID:        s.ID,
		Name:      s.Name,
		StaffName: s.StaffName,
		Timezone:  s.Timezone,
		Active:    s.Active,
		Templates: make([]TemplateResponse, 0, len(templates)),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}

	for _, t := range templates {
		resp.Templates = append(resp.Templates, TemplateResponse{
			ID:        t.ID,
			Weekday:   t.Weekday,
			StartTime: minutesToClock(t.StartMinutes),
			EndTime:   minutesToClock(t.EndMinutes),
			Timezone:  t.Zone,
		})
	}

	return resp
}

func minutesToClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
