package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatEastern(t *testing.T) {
	// 2025-06-15 22:30 UTC is 6:30 PM EDT
	ts := time.Date(2025, 6, 15, 22, 30, 0, 0, time.UTC)
	assert.Equal(t, "06/15/2025 at 6:30 PM (ET)", FormatEastern(ts))

	// 2025-01-15 22:30 UTC is 5:30 PM EST
	winter := time.Date(2025, 1, 15, 22, 30, 0, 0, time.UTC)
	assert.Equal(t, "01/15/2025 at 5:30 PM (ET)", FormatEastern(winter))
}

func TestFormatEasternRangeSameDay(t *testing.T) {
	start := time.Date(2025, 6, 15, 22, 30, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	assert.Equal(t, "06/15/2025 at 6:30 PM → 8:30 PM (ET)", FormatEasternRange(start, &end))
}

func TestFormatEasternRangeCrossDay(t *testing.T) {
	start := time.Date(2025, 6, 15, 22, 30, 0, 0, time.UTC)
	end := start.Add(26 * time.Hour)
	assert.Equal(t, "06/15/2025 at 6:30 PM → 06/16/2025 at 8:30 PM (ET)", FormatEasternRange(start, &end))
}

func TestFormatEasternRangeNoEnd(t *testing.T) {
	start := time.Date(2025, 6, 15, 22, 30, 0, 0, time.UTC)
	assert.Equal(t, "06/15/2025 at 6:30 PM (ET)", FormatEasternRange(start, nil))
}

func TestLocationFallback(t *testing.T) {
	assert.Equal(t, "America/New_York", Location("not-a-zone").String())
	assert.Equal(t, "America/Chicago", Location("America/Chicago").String())
}
