package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utc(hour, min int) time.Time {
	return time.Date(2026, 1, 15, hour, min, 0, 0, time.UTC)
}

func interval(t *testing.T, startHour, startMin, endHour, endMin int) TimeInterval {
	t.Helper()
	iv, err := NewTimeInterval(utc(startHour, startMin), utc(endHour, endMin))
	require.NoError(t, err)
	return iv
}

func TestNewTimeInterval(t *testing.T) {
	t.Run("valid interval normalized to UTC", func(t *testing.T) {
		msk, err := time.LoadLocation("Europe/Moscow")
		require.NoError(t, err)

		iv, err := NewTimeInterval(
			time.Date(2026, 1, 15, 12, 0, 0, 0, msk),
			time.Date(2026, 1, 15, 13, 0, 0, 0, msk),
		)
		require.NoError(t, err)

		assert.Equal(t, time.UTC, iv.Start.Location())
		assert.Equal(t, utc(9, 0), iv.Start)
		assert.Equal(t, utc(10, 0), iv.End)
	})

	t.Run("zero-length interval rejected", func(t *testing.T) {
		_, err := NewTimeInterval(utc(10, 0), utc(10, 0))
		assert.Error(t, err)
	})

	t.Run("inverted interval rejected", func(t *testing.T) {
		_, err := NewTimeInterval(utc(11, 0), utc(10, 0))
		assert.Error(t, err)
	})
}

func TestTimeInterval_Overlaps(t *testing.T) {
	base := interval(t, 10, 0, 11, 0)

	tests := []struct {
		name  string
		other TimeInterval
		want  bool
	}{
		{"identical", interval(t, 10, 0, 11, 0), true},
		{"contained", interval(t, 10, 15, 10, 45), true},
		{"containing", interval(t, 9, 0, 12, 0), true},
		{"partial left", interval(t, 9, 30, 10, 30), true},
		{"partial right", interval(t, 10, 30, 11, 30), true},
		{"touching left bound", interval(t, 9, 0, 10, 0), false},
		{"touching right bound", interval(t, 11, 0, 12, 0), false},
		{"disjoint before", interval(t, 8, 0, 9, 0), false},
		{"disjoint after", interval(t, 12, 0, 13, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			// Пересечение симметрично
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestMergeIntervals(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, MergeIntervals(nil))
		assert.Empty(t, MergeIntervals([]TimeInterval{}))
	})

	t.Run("overlapping pair merges into one", func(t *testing.T) {
		merged := MergeIntervals([]TimeInterval{
			interval(t, 9, 0, 9, 30),
			interval(t, 9, 15, 10, 0),
		})

		require.Len(t, merged, 1)
		assert.Equal(t, utc(9, 0), merged[0].Start)
		assert.Equal(t, utc(10, 0), merged[0].End)
	})

	t.Run("adjacent intervals merge", func(t *testing.T) {
		merged := MergeIntervals([]TimeInterval{
			interval(t, 9, 0, 10, 0),
			interval(t, 10, 0, 11, 0),
		})

		require.Len(t, merged, 1)
		assert.Equal(t, utc(9, 0), merged[0].Start)
		assert.Equal(t, utc(11, 0), merged[0].End)
	})

	t.Run("disjoint intervals stay separate and sorted", func(t *testing.T) {
		merged := MergeIntervals([]TimeInterval{
			interval(t, 14, 0, 15, 0),
			interval(t, 9, 0, 10, 0),
		})

		require.Len(t, merged, 2)
		assert.Equal(t, utc(9, 0), merged[0].Start)
		assert.Equal(t, utc(14, 0), merged[1].Start)
	})

	t.Run("contained interval absorbed", func(t *testing.T) {
		merged := MergeIntervals([]TimeInterval{
			interval(t, 9, 0, 12, 0),
			interval(t, 10, 0, 11, 0),
		})

		require.Len(t, merged, 1)
		assert.Equal(t, utc(9, 0), merged[0].Start)
		assert.Equal(t, utc(12, 0), merged[0].End)
	})

	t.Run("invalid intervals dropped", func(t *testing.T) {
		merged := MergeIntervals([]TimeInterval{
			{Start: utc(10, 0), End: utc(10, 0)},
			{Start: utc(12, 0), End: utc(11, 0)},
			interval(t, 9, 0, 10, 0),
		})

		require.Len(t, merged, 1)
		assert.Equal(t, utc(9, 0), merged[0].Start)
	})

	t.Run("order independent", func(t *testing.T) {
		a := MergeIntervals([]TimeInterval{
			interval(t, 9, 0, 9, 30),
			interval(t, 9, 15, 10, 0),
			interval(t, 13, 0, 14, 0),
		})
		b := MergeIntervals([]TimeInterval{
			interval(t, 13, 0, 14, 0),
			interval(t, 9, 15, 10, 0),
			interval(t, 9, 0, 9, 30),
		})

		assert.Equal(t, a, b)
	})

	t.Run("input not modified", func(t *testing.T) {
		input := []TimeInterval{
			interval(t, 14, 0, 15, 0),
			interval(t, 9, 0, 10, 0),
		}

		MergeIntervals(input)

		assert.Equal(t, utc(14, 0), input[0].Start)
		assert.Equal(t, utc(9, 0), input[1].Start)
	})
}

func TestFreeIntervals(t *testing.T) {
	window := interval(t, 9, 0, 17, 0)

	t.Run("no busy intervals returns whole window", func(t *testing.T) {
		free := FreeIntervals(window, nil)

		require.Len(t, free, 1)
		assert.Equal(t, window, free[0])
	})

	t.Run("single busy interval splits window", func(t *testing.T) {
		free := FreeIntervals(window, []TimeInterval{interval(t, 9, 0, 10, 0)})

		require.Len(t, free, 1)
		assert.Equal(t, utc(10, 0), free[0].Start)
		assert.Equal(t, utc(17, 0), free[0].End)
	})

	t.Run("busy in the middle yields two gaps", func(t *testing.T) {
		free := FreeIntervals(window, []TimeInterval{interval(t, 12, 0, 13, 0)})

		require.Len(t, free, 2)
		assert.Equal(t, interval(t, 9, 0, 12, 0), free[0])
		assert.Equal(t, interval(t, 13, 0, 17, 0), free[1])
	})

	t.Run("busy covering window leaves nothing", func(t *testing.T) {
		free := FreeIntervals(window, []TimeInterval{interval(t, 8, 0, 18, 0)})
		assert.Empty(t, free)
	})

	t.Run("busy partially outside window clipped", func(t *testing.T) {
		free := FreeIntervals(window, []TimeInterval{
			interval(t, 8, 0, 10, 0),
			interval(t, 16, 30, 18, 0),
		})

		require.Len(t, free, 1)
		assert.Equal(t, interval(t, 10, 0, 16, 30), free[0])
	})

	t.Run("invalid window yields nothing", func(t *testing.T) {
		free := FreeIntervals(TimeInterval{Start: utc(17, 0), End: utc(9, 0)}, nil)
		assert.Empty(t, free)
	})
}
