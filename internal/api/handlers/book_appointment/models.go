package book_appointment

import (
	"time"

	bookAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/book_appointment"
)

// BookAppointmentRequest HTTP request model
type BookAppointmentRequest struct {
	Resource  string  `json:"resource,omitempty"` // ID или имя расписания
	SlotStart string  `json:"slotStart"`          // ISO 8601
	SlotEnd   string  `json:"slotEnd"`            // ISO 8601
	Timezone  string  `json:"timezone,omitempty"` // IANA зона вызывающего
	Name      string  `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// BookAppointmentResponse HTTP response model
type BookAppointmentResponse struct {
	Status            string `json:"status"`
	BookingID         string `json:"bookingId"`
	ResourceID        int64  `json:"resourceId"`
	ResourceName      string `json:"resourceName"`
	ResourceDefaulted bool   `json:"resourceDefaulted,omitempty"`
	FinalStart        string `json:"finalStart"` // ISO 8601 в зоне вызывающего
	FinalEnd          string `json:"finalEnd"`   // ISO 8601 в зоне вызывающего
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookAppointmentRequest) ToUseCaseRequest() *bookAppointment.Request {
	return &bookAppointment.Request{
		Selector:    r.Resource,
		SlotStart:   r.SlotStart,
		SlotEnd:     r.SlotEnd,
		Timezone:    r.Timezone,
		CallerName:  r.Name,
		CallerEmail: r.Email,
		CallerPhone: r.Phone,
		Notes:       r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *bookAppointment.Response) *BookAppointmentResponse {
	return &BookAppointmentResponse{
		Status:            "confirmed",
		BookingID:         resp.BookingID.String(),
		ResourceID:        resp.ResourceID,
		ResourceName:      resp.ResourceName,
		ResourceDefaulted: resp.ResourceDefaulted,
		FinalStart:        resp.FinalStart.In(resp.CallerZone).Format(time.RFC3339),
		FinalEnd:          resp.FinalEnd.In(resp.CallerZone).Format(time.RFC3339),
	}
}
