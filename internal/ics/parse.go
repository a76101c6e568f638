package ics

import (
	"bytes"
	"errors"
	"strings"

	ical "github.com/arran4/golang-ical"

	appLog "hourcal/internal/log"
	"hourcal/internal/model"
)

// Parse parses an ICS payload into raw calendars. A single payload may
// carry several VCALENDAR blocks back to back; each becomes its own
// model.Calendar, in input order. Events are reduced to their raw property
// values; the report pipeline does its own timestamp handling.
//
// source identifies where the bytes came from (config source name or file
// path) and is used for diagnostics.
func Parse(source string, body []byte) ([]model.Calendar, error) {
	if len(body) == 0 {
		return nil, errors.New("empty ICS body")
	}

	blocks := splitCalendars(body)
	if len(blocks) == 0 {
		return nil, errors.New("no VCALENDAR block found")
	}

	cals := make([]model.Calendar, 0, len(blocks))
	for _, block := range blocks {
		cal, err := ical.ParseCalendar(bytes.NewReader(block))
		if err != nil {
			appLog.Error("ics parse failed", err, "source", source)
			return nil, err
		}

		vevents := cal.Events()
		events := make([]model.Event, 0, len(vevents))
		for _, ve := range vevents {
			events = append(events, model.Event{Properties: eventProperties(ve)})
		}
		cals = append(cals, model.Calendar{Source: source, Events: events})
	}

	appLog.Info("ics parse completed", "source", source, "calendar_count", len(cals))
	return cals, nil
}

// eventProperties collapses a VEVENT's property list into a name -> value
// map. If a property name repeats, the first occurrence wins.
func eventProperties(ve *ical.VEvent) map[string]string {
	props := make(map[string]string, len(ve.Properties))
	for _, p := range ve.Properties {
		if _, ok := props[p.IANAToken]; ok {
			continue
		}
		props[p.IANAToken] = p.Value
	}
	return props
}

// splitCalendars slices the payload into individual top-level VCALENDAR
// blocks. The underlying library parses one calendar per payload, so
// concatenated blocks have to be separated first.
func splitCalendars(body []byte) [][]byte {
	var blocks [][]byte
	var current []byte
	in := false

	for _, line := range bytes.SplitAfter(body, []byte("\n")) {
		trimmed := strings.TrimSpace(string(line))

		if !in {
			if strings.EqualFold(trimmed, "BEGIN:VCALENDAR") {
				in = true
				current = append([]byte(nil), line...)
			}
			continue
		}

		current = append(current, line...)
		if strings.EqualFold(trimmed, "END:VCALENDAR") {
			blocks = append(blocks, current)
			current = nil
			in = false
		}
	}

	return blocks
}
