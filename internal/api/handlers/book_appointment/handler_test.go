package book_appointment

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/book_appointment"
)

type fakeUseCase struct {
	resp *bookAppointment.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, _ *bookAppointment.Request) (*bookAppointment.Response, error) {
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, uc BookAppointmentUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler(uc, nopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments/book", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	bookingID := uuid.New()
	uc := &fakeUseCase{resp: &bookAppointment.Response{
		BookingID:    bookingID,
		ResourceID:   1,
		ResourceName: "Dr. Ivanova",
		FinalStart:   time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
		FinalEnd:     time.Date(2026, 1, 15, 11, 0, 0, 0, time.UTC),
		CallerZone:   time.UTC,
	}}

	rec := doRequest(t, uc, `{"resource":"Dr. Ivanova","slotStart":"2026-01-15T10:00:00Z","slotEnd":"2026-01-15T11:00:00Z","name":"Ivan"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp BookAppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, bookingID.String(), resp.BookingID)
	assert.Equal(t, "2026-01-15T10:00:00Z", resp.FinalStart)
}

func TestHandle_CallerZoneRendering(t *testing.T) {
	msk, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	uc := &fakeUseCase{resp: &bookAppointment.Response{
		BookingID:  uuid.New(),
		ResourceID: 1,
		FinalStart: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
		FinalEnd:   time.Date(2026, 1, 15, 11, 0, 0, 0, time.UTC),
		CallerZone: msk,
	}}

	rec := doRequest(t, uc, `{"slotStart":"2026-01-15T10:00:00Z","slotEnd":"2026-01-15T11:00:00Z"}`)

	var resp BookAppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2026-01-15T13:00:00+03:00", resp.FinalStart)
}

func TestHandle_ErrorMapping(t *testing.T) {
	body := `{"slotStart":"2026-01-15T10:00:00Z","slotEnd":"2026-01-15T11:00:00Z"}`

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid slot", bookAppointment.ErrInvalidSlot, http.StatusBadRequest},
		{"invalid input", bookAppointment.ErrInvalidInput, http.StatusBadRequest},
		{"slot not offered", bookAppointment.ErrSlotNotOffered, http.StatusConflict},
		{"slot conflict", bookAppointment.ErrSlotConflict, http.StatusConflict},
		{"store unavailable", bookAppointment.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{"internal", bookAppointment.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &fakeUseCase{err: tt.err}, body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_MalformedBody(t *testing.T) {
	rec := doRequest(t, &fakeUseCase{}, `{"slotStart":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
