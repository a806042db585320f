package timeframe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(date string) time.Time {
	d, _ := time.ParseInLocation("2006-01-02", date, Zone)
	return d.Add(9 * time.Hour)
}

func TestResolveAt_Week(t *testing.T) {
	r := ResolveAt("week", "", "", at("2024-03-10"))
	assert.Equal(t, "2024-03-03", r.StartDate())
	assert.Equal(t, "2024-03-09", r.EndDate())
}

func TestResolveAt_Today(t *testing.T) {
	r := ResolveAt("today", "", "", at("2024-03-10"))
	assert.Equal(t, "2024-03-10", r.StartDate())
	assert.Equal(t, "2024-03-10", r.EndDate())
}

func TestResolveAt_Month(t *testing.T) {
	r := ResolveAt("month", "", "", at("2024-03-10"))
	assert.Equal(t, "2024-02-09", r.StartDate())
	assert.Equal(t, "2024-03-09", r.EndDate())
}

func TestResolveAt_Year(t *testing.T) {
	r := ResolveAt("year", "", "", at("2024-03-10"))
	assert.Equal(t, "2024-01-01", r.StartDate())
	assert.Equal(t, "2024-03-09", r.EndDate())
}

func TestResolveAt_CustomClampsEndToYesterday(t *testing.T) {
	now := at("2024-03-10")

	r := ResolveAt("custom", "2024-02-01", "2024-03-10", now)
	assert.Equal(t, "2024-02-01", r.StartDate())
	assert.Equal(t, "2024-03-09", r.EndDate())

	r = ResolveAt("custom", "2024-02-01", "2024-04-01", now)
	assert.Equal(t, "2024-03-09", r.EndDate())

	r = ResolveAt("custom", "2024-02-01", "2024-03-05", now)
	assert.Equal(t, "2024-03-05", r.EndDate())
}

func TestResolveAt_Unrecognized(t *testing.T) {
	r := ResolveAt("fortnight", "", "", at("2024-03-10"))
	assert.Equal(t, "2024-03-10", r.StartDate())
	assert.Equal(t, "2024-03-10", r.EndDate())
}
