package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliceSlots(t *testing.T) {
	t.Run("morning busy hour leaves seven slots in working day", func(t *testing.T) {
		window := interval(t, 9, 0, 17, 0)
		busy := MergeIntervals([]TimeInterval{interval(t, 9, 0, 10, 0)})
		free := FreeIntervals(window, busy)

		slots := SliceSlots(free, time.Hour)

		require.Len(t, slots, 7)
		assert.Equal(t, utc(10, 0), slots[0].Start)
		assert.Equal(t, utc(11, 0), slots[0].End)
		assert.Equal(t, utc(16, 0), slots[6].Start)
		assert.Equal(t, utc(17, 0), slots[6].End)
	})

	t.Run("trailing remainder shorter than duration dropped", func(t *testing.T) {
		free := []TimeInterval{interval(t, 9, 0, 10, 30)}

		slots := SliceSlots(free, time.Hour)

		require.Len(t, slots, 1)
		assert.Equal(t, utc(9, 0), slots[0].Start)
		assert.Equal(t, utc(10, 0), slots[0].End)
	})

	t.Run("interval shorter than duration yields nothing", func(t *testing.T) {
		free := []TimeInterval{interval(t, 9, 0, 9, 20)}
		assert.Empty(t, SliceSlots(free, 30*time.Minute))
	})

	t.Run("slots are consecutive within each interval", func(t *testing.T) {
		free := []TimeInterval{interval(t, 9, 0, 10, 30)}

		slots := SliceSlots(free, 30*time.Minute)

		require.Len(t, slots, 3)
		for i := 1; i < len(slots); i++ {
			assert.Equal(t, slots[i-1].End, slots[i].Start)
		}
	})

	t.Run("non-positive duration yields nothing", func(t *testing.T) {
		free := []TimeInterval{interval(t, 9, 0, 17, 0)}
		assert.Empty(t, SliceSlots(free, 0))
		assert.Empty(t, SliceSlots(free, -time.Hour))
	})
}

func TestTemplateSlots(t *testing.T) {
	date := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC) // четверг

	templates := []SlotTemplate{
		{ID: 1, Weekday: 4, StartMinutes: 9 * 60, EndMinutes: 10 * 60, Zone: "UTC"},
		{ID: 2, Weekday: 4, StartMinutes: 13 * 60, EndMinutes: 14 * 60, Zone: "UTC"},
		{ID: 3, Weekday: 4, StartMinutes: 15 * 60, EndMinutes: 16 * 60, Zone: "UTC"},
	}

	t.Run("all free templates included in order", func(t *testing.T) {
		slots := TemplateSlots(templates, date, nil)

		require.Len(t, slots, 3)
		assert.Equal(t, utc(9, 0), slots[0].Start)
		assert.Equal(t, utc(13, 0), slots[1].Start)
		assert.Equal(t, utc(15, 0), slots[2].Start)
	})

	t.Run("partially busy template excluded entirely", func(t *testing.T) {
		busy := []TimeInterval{interval(t, 13, 30, 13, 45)}

		slots := TemplateSlots(templates, date, busy)

		require.Len(t, slots, 2)
		assert.Equal(t, utc(9, 0), slots[0].Start)
		assert.Equal(t, utc(15, 0), slots[1].Start)
	})

	t.Run("busy touching template bound keeps template", func(t *testing.T) {
		busy := []TimeInterval{interval(t, 14, 0, 15, 0)}

		slots := TemplateSlots(templates, date, busy)

		require.Len(t, slots, 2)
		assert.Equal(t, utc(9, 0), slots[0].Start)
		assert.Equal(t, utc(13, 0), slots[1].Start)
	})

	t.Run("template with unknown zone skipped", func(t *testing.T) {
		broken := append([]SlotTemplate{}, templates...)
		broken = append(broken, SlotTemplate{ID: 4, Weekday: 4, StartMinutes: 17 * 60, EndMinutes: 18 * 60, Zone: "Mars/Olympus"})

		slots := TemplateSlots(broken, date, nil)

		assert.Len(t, slots, 3)
	})

	t.Run("template zone authoritative over caller zone", func(t *testing.T) {
		msk := []SlotTemplate{
			{ID: 1, Weekday: 4, StartMinutes: 12 * 60, EndMinutes: 13 * 60, Zone: "Europe/Moscow"},
		}

		slots := TemplateSlots(msk, date, nil)

		require.Len(t, slots, 1)
		// 12:00 МСК = 09:00 UTC
		assert.Equal(t, utc(9, 0), slots[0].Start)
		assert.Equal(t, utc(10, 0), slots[0].End)
	})
}

func TestCapSlots(t *testing.T) {
	t.Run("short list unchanged", func(t *testing.T) {
		slots := SliceSlots([]TimeInterval{interval(t, 9, 0, 11, 0)}, time.Hour)
		assert.Len(t, CapSlots(slots), 2)
	})

	t.Run("long list truncated to cap keeping earliest", func(t *testing.T) {
		// 16 получасовых слотов
		slots := SliceSlots([]TimeInterval{interval(t, 9, 0, 17, 0)}, 30*time.Minute)
		require.Len(t, slots, 16)

		capped := CapSlots(slots)

		require.Len(t, capped, MaxSlotsPerResponse)
		assert.Equal(t, utc(9, 0), capped[0].Start)
		assert.Equal(t, utc(13, 30), capped[MaxSlotsPerResponse-1].Start)
	})
}
