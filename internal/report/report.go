package report

import (
	"fmt"
	"sort"

	appLog "hourcal/internal/log"
	"hourcal/internal/model"
)

// Report is the outcome of one report computation: the filtered, ordered
// summaries plus the aggregated duration. It does not outlive the
// invocation that produced it.
type Report struct {
	Events []Summary

	// Skipped records why individual events were left out (missing start
	// or end markers). The same diagnostics are logged as they happen.
	Skipped []string

	// TotalSec is the sum of DurationSec over Events.
	TotalSec int64
}

// Total renders the aggregated duration as HH:MM:SS.
func (r Report) Total() string { return FormatDuration(r.TotalSec) }

// Build runs the full pipeline over the parsed calendars: flatten, filter
// by the optional month (1-12) and year, stable-sort by day-of-month, and
// aggregate. A zero month or year means no filter on that component.
//
// Build is a pure function of its inputs; the only side effects are skip
// diagnostics on the log.
func Build(cals []model.Calendar, month, year int) (Report, error) {
	flat, skipped, err := Flatten(cals)
	if err != nil {
		return Report{}, err
	}

	events := FilterPeriod(flat, month, year)
	SortByDay(events)

	return Report{
		Events:   events,
		Skipped:  skipped,
		TotalSec: TotalSeconds(events),
	}, nil
}

// Flatten builds one summary per usable event across all calendars,
// preserving calendar order and event order within each calendar. Events
// missing a start or end marker are skipped with a diagnostic; a marker
// that is present but unparseable aborts the whole operation with no
// partial output. Identical events from two calendars both appear.
func Flatten(cals []model.Calendar) ([]Summary, []string, error) {
	out := make([]Summary, 0)
	var skipped []string

	for _, cal := range cals {
		for _, ev := range cal.Events {
			startRaw, ok := ev.Property(PropStart)
			if !ok {
				appLog.Warn("event missing start, skipping", "source", cal.Source)
				skipped = append(skipped, fmt.Sprintf("%s: event missing %s", cal.Source, PropStart))
				continue
			}

			endRaw, ok := ev.Property(PropEnd)
			if !ok {
				appLog.Warn("event missing end, skipping", "source", cal.Source)
				skipped = append(skipped, fmt.Sprintf("%s: event missing %s", cal.Source, PropEnd))
				continue
			}

			sum, err := buildSummary(startRaw, endRaw)
			if err != nil {
				return nil, nil, err
			}
			out = append(out, sum)
		}
	}

	return out, skipped, nil
}

// FilterPeriod retains summaries matching the month and year predicates,
// composed by AND. A zero month or year retains all on that component.
func FilterPeriod(events []Summary, month, year int) []Summary {
	if month == 0 && year == 0 {
		return events
	}

	kept := make([]Summary, 0, len(events))
	for _, ev := range events {
		if month != 0 && ev.StartMonth != month {
			continue
		}
		if year != 0 && ev.StartYear != year {
			continue
		}
		kept = append(kept, ev)
	}
	return kept
}

// SortByDay orders events by day-of-month ascending, in place. The sort is
// stable: events with equal days keep their input order. The key really is
// the day number only, so events from different months with the same day
// interleave rather than sorting chronologically.
func SortByDay(events []Summary) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartDay < events[j].StartDay
	})
}

// TotalSeconds sums the event durations. Empty input yields zero.
func TotalSeconds(events []Summary) int64 {
	var total int64
	for _, ev := range events {
		total += ev.DurationSec
	}
	return total
}

// FormatDuration renders a signed second count as HH:MM:SS, each component
// zero-padded to at least two digits. Hours are not clamped. Negative
// counts keep Go's truncating division and remainder signs, so -5400
// renders as "-1:-30:00".
func FormatDuration(secs int64) string {
	return fmt.Sprintf("%02d:%02d:%02d", (secs/60)/60, (secs/60)%60, secs%60)
}
