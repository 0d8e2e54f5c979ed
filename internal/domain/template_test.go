package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotTemplate_Localize(t *testing.T) {
	t.Run("UTC template", func(t *testing.T) {
		tpl := SlotTemplate{ID: 1, Weekday: 4, StartMinutes: 9 * 60, EndMinutes: 10 * 60, Zone: "UTC"}

		iv, err := tpl.Localize(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		assert.Equal(t, utc(9, 0), iv.Start)
		assert.Equal(t, utc(10, 0), iv.End)
	})

	t.Run("offset zone converts to UTC", func(t *testing.T) {
		tpl := SlotTemplate{ID: 1, Weekday: 4, StartMinutes: 12 * 60, EndMinutes: 13 * 60, Zone: "Europe/Moscow"}

		iv, err := tpl.Localize(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		assert.Equal(t, utc(9, 0), iv.Start)
		assert.Equal(t, utc(10, 0), iv.End)
	})

	t.Run("DST transition handled by zone database", func(t *testing.T) {
		// 29 марта 2026 — переход на летнее время в Берлине
		tpl := SlotTemplate{ID: 1, Weekday: 7, StartMinutes: 10 * 60, EndMinutes: 11 * 60, Zone: "Europe/Berlin"}

		iv, err := tpl.Localize(time.Date(2026, 3, 29, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		// 10:00 CEST = 08:00 UTC
		assert.Equal(t, time.Date(2026, 3, 29, 8, 0, 0, 0, time.UTC), iv.Start)
	})

	t.Run("unknown zone is an error", func(t *testing.T) {
		tpl := SlotTemplate{ID: 1, Weekday: 4, StartMinutes: 9 * 60, EndMinutes: 10 * 60, Zone: "Mars/Olympus"}

		_, err := tpl.Localize(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))
		assert.Error(t, err)
	})

	t.Run("invalid template is an error", func(t *testing.T) {
		tpl := SlotTemplate{ID: 1, Weekday: 8, StartMinutes: 9 * 60, EndMinutes: 10 * 60, Zone: "UTC"}

		_, err := tpl.Localize(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))
		assert.Error(t, err)
	})
}

func TestISOWeekday(t *testing.T) {
	tests := []struct {
		date time.Time
		want int
	}{
		{time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC), 1}, // понедельник
		{time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), 4}, // четверг
		{time.Date(2026, 1, 17, 0, 0, 0, 0, time.UTC), 6}, // суббота
		{time.Date(2026, 1, 18, 0, 0, 0, 0, time.UTC), 7}, // воскресенье
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ISOWeekday(tt.date), tt.date.String())
	}
}

func TestTemplateWindow(t *testing.T) {
	date := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("spans earliest start to latest end", func(t *testing.T) {
		templates := []SlotTemplate{
			{ID: 1, Weekday: 4, StartMinutes: 13 * 60, EndMinutes: 14 * 60, Zone: "UTC"},
			{ID: 2, Weekday: 4, StartMinutes: 9 * 60, EndMinutes: 10 * 60, Zone: "UTC"},
			{ID: 3, Weekday: 4, StartMinutes: 15 * 60, EndMinutes: 16 * 60, Zone: "UTC"},
		}

		window, err := TemplateWindow(templates, date)
		require.NoError(t, err)

		assert.Equal(t, utc(9, 0), window.Start)
		assert.Equal(t, utc(16, 0), window.End)
	})

	t.Run("unlocalizable templates ignored", func(t *testing.T) {
		templates := []SlotTemplate{
			{ID: 1, Weekday: 4, StartMinutes: 9 * 60, EndMinutes: 10 * 60, Zone: "UTC"},
			{ID: 2, Weekday: 4, StartMinutes: 11 * 60, EndMinutes: 12 * 60, Zone: "Mars/Olympus"},
		}

		window, err := TemplateWindow(templates, date)
		require.NoError(t, err)

		assert.Equal(t, utc(9, 0), window.Start)
		assert.Equal(t, utc(10, 0), window.End)
	})

	t.Run("no localizable templates is an error", func(t *testing.T) {
		_, err := TemplateWindow([]SlotTemplate{
			{ID: 1, Weekday: 4, StartMinutes: 9 * 60, EndMinutes: 10 * 60, Zone: "Mars/Olympus"},
		}, date)
		assert.Error(t, err)
	})
}

func TestParseWindowKeyword(t *testing.T) {
	assert.Equal(t, WindowMorning, ParseWindowKeyword("morning"))
	assert.Equal(t, WindowAfternoon, ParseWindowKeyword(" Afternoon "))
	assert.Equal(t, WindowEvening, ParseWindowKeyword("EVENING"))
	assert.Equal(t, WindowAny, ParseWindowKeyword("any"))
	assert.Equal(t, WindowAny, ParseWindowKeyword(""))
	assert.Equal(t, WindowAny, ParseWindowKeyword("lunchtime"))
}

func TestWorkingWindow(t *testing.T) {
	date := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("morning bounds in UTC", func(t *testing.T) {
		window := WorkingWindow(date, WindowMorning, time.UTC)

		assert.Equal(t, utc(9, 0), window.Start)
		assert.Equal(t, utc(12, 0), window.End)
	})

	t.Run("caller zone shifts absolute bounds", func(t *testing.T) {
		msk, err := time.LoadLocation("Europe/Moscow")
		require.NoError(t, err)

		window := WorkingWindow(date, WindowMorning, msk)

		// 09:00 МСК = 06:00 UTC
		assert.Equal(t, utc(6, 0), window.Start)
		assert.Equal(t, utc(9, 0), window.End)
	})
}
