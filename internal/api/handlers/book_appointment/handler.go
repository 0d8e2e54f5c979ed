package book_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	bookAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/book_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlot        = "некорректные границы слота, ожидается ISO 8601 и start < end"
	msgInvalidInput       = "некорректные входные данные"
	msgSlotNotOffered     = "запрошенный слот не входит в расписание ресурса"
	msgSlotConflict       = "запрошенный слот уже занят"
	msgStoreUnavailable   = "хранилище временно недоступно, повторите запрос"
)

type Handler struct {
	useCase BookAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase BookAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/book
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BookAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/book - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, bookAppointment.ErrInvalidSlot):
			h.logger.Warn("POST /appointments/book - Invalid slot: start=%q, end=%q", req.SlotStart, req.SlotEnd)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, bookAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments/book - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, bookAppointment.ErrSlotNotOffered):
			h.logger.Warn("POST /appointments/book - Slot not offered: resource=%q, start=%q", req.Resource, req.SlotStart)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotOffered)

		case errors.Is(err, bookAppointment.ErrSlotConflict):
			h.logger.Warn("POST /appointments/book - Slot conflict: resource=%q, start=%q", req.Resource, req.SlotStart)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, bookAppointment.ErrStoreUnavailable):
			h.logger.Error("POST /appointments/book - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgStoreUnavailable)

		default:
			h.logger.Error("POST /appointments/book - Failed to book: resource=%q, start=%q, error=%v",
				req.Resource, req.SlotStart, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/book - Booking %s confirmed: resource=%d, start=%s",
		result.BookingID, result.ResourceID, result.FinalStart)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
