package report

import (
	"fmt"
	"time"
)

// Well-known property names carrying an event's begin and end markers.
const (
	PropStart = "DTSTART"
	PropEnd   = "DTEND"
)

// Summary is one display-ready row of the hour report, plus the raw keys
// the filter and sort stages operate on. It is built once per usable event
// and immutable afterwards.
type Summary struct {
	// Date is DD-MM-YYYY, or "DD-MM-YYYY - DD-MM-YYYY" when the start and
	// end day-of-month differ.
	Date string
	// Time is "HH:MM - HH:MM" from the start and end hour/minute.
	Time string
	// Duration is the HH:MM:SS rendering of DurationSec.
	Duration string

	// Start-instant calendar components, used as sort and filter keys.
	StartDay   int
	StartMonth int
	StartYear  int

	// DurationSec is end minus start in seconds. Negative when the
	// upstream end marker precedes the start marker; the formatter renders
	// that as-is.
	DurationSec int64
}

// TimestampParseError reports a start or end marker that was present but
// did not parse as an absolute instant after normalization. Unlike a
// missing marker, this aborts the whole report.
type TimestampParseError struct {
	Property string
	Value    string
	Err      error
}

func (e *TimestampParseError) Error() string {
	return fmt.Sprintf("report: parse %s value %q: %v", e.Property, e.Value, e.Err)
}

func (e *TimestampParseError) Unwrap() error { return e.Err }

// buildSummary combines the raw start and end marker tokens into a Summary.
func buildSummary(startRaw, endRaw string) (Summary, error) {
	start, err := time.Parse(time.RFC3339, NormalizeStamp(startRaw))
	if err != nil {
		return Summary{}, &TimestampParseError{Property: PropStart, Value: startRaw, Err: err}
	}

	end, err := time.Parse(time.RFC3339, NormalizeStamp(endRaw))
	if err != nil {
		return Summary{}, &TimestampParseError{Property: PropEnd, Value: endRaw, Err: err}
	}

	// Single date, or a range when the event spans day boundaries. The
	// comparison is on day-of-month, matching the sort key.
	var date string
	if start.Day() == end.Day() {
		date = fmt.Sprintf("%02d-%02d-%d", start.Day(), int(start.Month()), start.Year())
	} else {
		date = fmt.Sprintf("%02d-%02d-%d - %02d-%02d-%d",
			start.Day(), int(start.Month()), start.Year(),
			end.Day(), int(end.Month()), end.Year())
	}

	// Seconds are dropped from the time span even when non-zero.
	span := fmt.Sprintf("%02d:%02d - %02d:%02d",
		start.Hour(), start.Minute(), end.Hour(), end.Minute())

	durSec := int64(end.Sub(start) / time.Second)

	return Summary{
		Date:        date,
		Time:        span,
		Duration:    FormatDuration(durSec),
		StartDay:    start.Day(),
		StartMonth:  int(start.Month()),
		StartYear:   start.Year(),
		DurationSec: durSec,
	}, nil
}
