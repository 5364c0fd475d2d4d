package weather

import "time"

// Regime selects which upstream provider serves a query date.
type Regime int

const (
	// RegimeArchive covers dates from the archive epoch up to the day
	// before yesterday, served by the historical diary scrape.
	RegimeArchive Regime = iota

	// RegimeRecent covers yesterday and today, served by the
	// observation history API.
	RegimeRecent

	// RegimeForecast covers tomorrow through today+7, served by the
	// forecast timeline API.
	RegimeForecast
)

// String returns the regime name for logging.
func (r Regime) String() string {
	switch r {
	case RegimeArchive:
		return "archive"
	case RegimeRecent:
		return "recent"
	case RegimeForecast:
		return "forecast"
	default:
		return "unknown"
	}
}

// forecastHorizonDays is how far ahead the forecast provider goes.
const forecastHorizonDays = 7

// firstArchiveDate is the earliest date the archive provider has data for.
var firstArchiveDate = time.Date(1997, time.April, 1, 0, 0, 0, 0, time.UTC)

// Day normalizes a time to midnight UTC so date comparisons ignore the
// time-of-day and zone.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Classify partitions date into exactly one regime relative to today.
// Bounds are inclusive on the stated side: archive is
// [firstArchiveDate, today-2], recent is (today-2, today], forecast is
// (today, today+7]. Anything else is an OutOfRangeError.
func Classify(date, today time.Time) (Regime, error) {
	date = Day(date)
	today = Day(today)

	dayBeforeYesterday := today.AddDate(0, 0, -2)
	lastForecastDay := today.AddDate(0, 0, forecastHorizonDays)

	switch {
	case !date.Before(firstArchiveDate) && !date.After(dayBeforeYesterday):
		return RegimeArchive, nil
	case date.After(dayBeforeYesterday) && !date.After(today):
		return RegimeRecent, nil
	case date.After(today) && !date.After(lastForecastDay):
		return RegimeForecast, nil
	default:
		return 0, &OutOfRangeError{
			First: firstArchiveDate.Format(DateLayout),
			Last:  lastForecastDay.Format(DateLayout),
		}
	}
}
