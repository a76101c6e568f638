package report

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hourcal/internal/model"
)

func event(props map[string]string) model.Event {
	return model.Event{Properties: props}
}

func timedEvent(start, end string) model.Event {
	return event(map[string]string{PropStart: start, PropEnd: end})
}

func TestFlatten_MissingMarkersAreSkipped(t *testing.T) {
	cals := []model.Calendar{{
		Source: "work",
		Events: []model.Event{
			timedEvent("20220921T090000Z", "20220921T170000Z"),
			// One event without an end marker, one with an empty start.
			event(map[string]string{PropStart: "20220922T090000Z"}),
			event(map[string]string{PropStart: "", PropEnd: "20220923T170000Z"}),
			timedEvent("20220924T090000Z", "20220924T110000Z"),
		},
	}}

	events, skipped, err := Flatten(cals)
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, 21, events[0].StartDay)
	assert.Equal(t, 24, events[1].StartDay)
	assert.Len(t, skipped, 2)

	// Skipped events do not affect the aggregate of the surviving ones.
	assert.Equal(t, int64(8*3600+2*3600), TotalSeconds(events))
}

func TestFlatten_UnparseableMarkerAbortsWithNoPartialOutput(t *testing.T) {
	cals := []model.Calendar{{
		Source: "work",
		Events: []model.Event{
			timedEvent("20220921T090000Z", "20220921T170000Z"),
			timedEvent("bogus", "20220922T170000Z"),
		},
	}}

	events, skipped, err := Flatten(cals)
	require.Error(t, err)

	var parseErr *TimestampParseError
	assert.True(t, errors.As(err, &parseErr))
	assert.Nil(t, events)
	assert.Nil(t, skipped)
}

func TestFlatten_PreservesCalendarAndEventOrder(t *testing.T) {
	cals := []model.Calendar{
		{
			Source: "a",
			Events: []model.Event{
				timedEvent("20220903T090000Z", "20220903T100000Z"),
				timedEvent("20220901T090000Z", "20220901T100000Z"),
			},
		},
		{
			Source: "b",
			Events: []model.Event{
				// Identical to the first event of calendar a: both appear.
				timedEvent("20220903T090000Z", "20220903T100000Z"),
			},
		},
	}

	events, skipped, err := Flatten(cals)
	require.NoError(t, err)
	require.Empty(t, skipped)
	require.Len(t, events, 3)

	assert.Equal(t, []int{3, 1, 3}, []int{events[0].StartDay, events[1].StartDay, events[2].StartDay})
}

func TestFilterPeriod_Composition(t *testing.T) {
	events := []Summary{
		{StartDay: 1, StartMonth: 1, StartYear: 2021},
		{StartDay: 2, StartMonth: 1, StartYear: 2022},
		{StartDay: 3, StartMonth: 2, StartYear: 2022},
		{StartDay: 4, StartMonth: 3, StartYear: 2022},
	}

	testCases := []struct {
		name     string
		month    int
		year     int
		wantDays []int
	}{
		{name: "no filters retain all", month: 0, year: 0, wantDays: []int{1, 2, 3, 4}},
		{name: "month only", month: 1, year: 0, wantDays: []int{1, 2}},
		{name: "year only", month: 0, year: 2022, wantDays: []int{2, 3, 4}},
		{name: "month AND year", month: 1, year: 2021, wantDays: []int{1}},
		{name: "nothing matches", month: 12, year: 2021, wantDays: []int{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterPeriod(events, tc.month, tc.year)
			days := make([]int, 0, len(got))
			for _, ev := range got {
				days = append(days, ev.StartDay)
			}
			assert.Equal(t, tc.wantDays, days)
		})
	}
}

// Two events with the same day number from different months keep their
// relative input order: the key is day-of-month only, not the full date.
func TestSortByDay_StableAndDayOnly(t *testing.T) {
	events := []Summary{
		{Date: "05-03-2022", StartDay: 5, StartMonth: 3},
		{Date: "12-01-2022", StartDay: 12, StartMonth: 1},
		{Date: "05-01-2022", StartDay: 5, StartMonth: 1},
	}

	SortByDay(events)

	require.Len(t, events, 3)
	assert.Equal(t, "05-03-2022", events[0].Date) // March 5 stays ahead of January 5
	assert.Equal(t, "05-01-2022", events[1].Date)
	assert.Equal(t, "12-01-2022", events[2].Date)
}

func TestTotalSeconds_Empty(t *testing.T) {
	assert.Equal(t, int64(0), TotalSeconds(nil))
	assert.Equal(t, "00:00:00", FormatDuration(TotalSeconds(nil)))
}

func TestFormatDuration(t *testing.T) {
	testCases := []struct {
		secs int64
		want string
	}{
		{secs: 0, want: "00:00:00"},
		{secs: 59, want: "00:00:59"},
		{secs: 30600, want: "08:30:00"},
		{secs: 360000, want: "100:00:00"}, // hours are not clamped
		{secs: -5400, want: "-1:-30:00"},
		{secs: -3661, want: "-1:-1:-1"},
	}

	for _, tc := range testCases {
		if got := FormatDuration(tc.secs); got != tc.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tc.secs, got, tc.want)
		}
	}
}

func TestBuild_EndToEnd(t *testing.T) {
	cals := []model.Calendar{
		{
			Source: "work",
			Events: []model.Event{
				timedEvent("20220915T130000Z", "20220915T170000Z"),
				timedEvent("20220902T090000Z", "20220902T120000Z"),
				// October event (filtered out) and a start-less event (skipped).
				timedEvent("20221003T090000Z", "20221003T170000Z"),
				event(map[string]string{PropEnd: "20220910T170000Z"}),
			},
		},
		{
			Source: "side",
			Events: []model.Event{
				timedEvent("20220902T180000Z", "20220902T190000Z"),
			},
		},
	}

	rep, err := Build(cals, 9, 2022)
	require.NoError(t, err)

	require.Len(t, rep.Events, 3)
	// Sorted by day; the two day-2 events keep flattening order.
	assert.Equal(t, "09:00 - 12:00", rep.Events[0].Time)
	assert.Equal(t, "18:00 - 19:00", rep.Events[1].Time)
	assert.Equal(t, 15, rep.Events[2].StartDay)

	assert.Len(t, rep.Skipped, 1)
	assert.Equal(t, int64(4*3600+3*3600+3600), rep.TotalSec)
	assert.Equal(t, "08:00:00", rep.Total())
}
