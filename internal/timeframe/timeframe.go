// Package timeframe resolves symbolic reporting timeframes into concrete
// inclusive date ranges. All calendar arithmetic happens in the store's fixed
// UTC+5:30 zone so day boundaries match the storefront's reporting day.
package timeframe

import "time"

// Zone is the fixed reporting time zone (UTC+5:30).
var Zone = time.FixedZone("IST", 5*3600+30*60)

const dateLayout = "2006-01-02"

// DateRange is an inclusive start/end pair of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// StartDate formats the range start as YYYY-MM-DD.
func (r DateRange) StartDate() string { return r.Start.Format(dateLayout) }

// EndDate formats the range end as YYYY-MM-DD.
func (r DateRange) EndDate() string { return r.End.Format(dateLayout) }

// Resolve maps a timeframe label to a date range relative to the current
// moment. For "custom" the caller supplied bounds are used, with the end
// clamped to yesterday whenever it reaches into today or beyond.
func Resolve(timeframe, customStart, customEnd string) DateRange {
	return ResolveAt(timeframe, customStart, customEnd, time.Now().In(Zone))
}

// ResolveAt is Resolve with an explicit current moment.
func ResolveAt(timeframe, customStart, customEnd string, now time.Time) DateRange {
	now = now.In(Zone)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, Zone)
	yesterday := today.AddDate(0, 0, -1)

	switch timeframe {
	case "today":
		return DateRange{Start: today, End: today}
	case "week":
		return DateRange{Start: yesterday.AddDate(0, 0, -6), End: yesterday}
	case "month":
		return DateRange{Start: yesterday.AddDate(0, 0, -29), End: yesterday}
	case "year":
		return DateRange{Start: time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, Zone), End: yesterday}
	case "custom":
		start := parseDate(customStart, today)
		end := parseDate(customEnd, today)
		if !end.Before(today) {
			end = yesterday
		}
		return DateRange{Start: start, End: end}
	default:
		return DateRange{Start: today, End: today}
	}
}

func parseDate(s string, fallback time.Time) time.Time {
	d, err := time.ParseInLocation(dateLayout, s, Zone)
	if err != nil {
		return fallback
	}
	return d
}

// Today returns the current calendar date in the reporting zone, formatted
// YYYY-MM-DD. Handlers use it as the default for absent date parameters.
func Today() string {
	return time.Now().In(Zone).Format(dateLayout)
}
