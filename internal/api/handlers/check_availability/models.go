package check_availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	checkAvailability "github.com/m04kA/SMC-AppointmentService/internal/usecase/check_availability"
)

// CheckAvailabilityRequest HTTP request model
type CheckAvailabilityRequest struct {
	Resource        string `json:"resource,omitempty"`        // ID или имя расписания
	Date            string `json:"date"`                      // "2026-01-15"
	DurationMinutes int    `json:"durationMinutes,omitempty"` // Длительность слота, по умолчанию 30
	Window          string `json:"window,omitempty"`          // morning/afternoon/evening/any
	Timezone        string `json:"timezone,omitempty"`        // IANA зона вызывающего
}

// SlotResponse один доступный слот в зоне вызывающего
type SlotResponse struct {
	Start string `json:"start"` // ISO 8601
	End   string `json:"end"`   // ISO 8601
}

// CheckAvailabilityResponse HTTP response model
type CheckAvailabilityResponse struct {
	Status            string         `json:"status"`
	ResourceID        int64          `json:"resourceId"`
	ResourceName      string         `json:"resourceName"`
	ResourceDefaulted bool           `json:"resourceDefaulted,omitempty"`
	Mode              string         `json:"mode"`
	Date              string         `json:"date"`
	Slots             []SlotResponse `json:"slots"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckAvailabilityRequest) ToUseCaseRequest() *checkAvailability.Request {
	return &checkAvailability.Request{
		Selector:        r.Resource,
		Date:            r.Date,
		DurationMinutes: r.DurationMinutes,
		Window:          r.Window,
		Timezone:        r.Timezone,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
// Границы слотов представляются в зоне вызывающего
func FromUseCaseResponse(resp *checkAvailability.Response) *CheckAvailabilityResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			Start: s.Start.In(resp.CallerZone).Format(time.RFC3339),
			End:   s.End.In(resp.CallerZone).Format(time.RFC3339),
		})
	}

	return &CheckAvailabilityResponse{
		Status:            "ok",
		ResourceID:        resp.ResourceID,
		ResourceName:      resp.ResourceName,
		ResourceDefaulted: resp.ResourceDefaulted,
		Mode:              resp.Mode,
		Date:              resp.Date.Format(domain.DateFormat),
		Slots:             slots,
	}
}
