package model

// Calendar is one parsed VCALENDAR block from a single source. An ICS
// payload may carry several calendars back to back; the report flattens
// them all in order.
type Calendar struct {
	// Source identifies where the calendar came from (config source name
	// or local file path). Used for diagnostics only.
	Source string

	Events []Event
}

// Event is a single VEVENT reduced to its raw property values, keyed by
// property name (e.g. "DTSTART", "DTEND"). Values are the unparsed
// iCalendar value strings; an absent or empty value means the property is
// not usable. The report pipeline consumes only the start and end markers
// and does its own timestamp handling.
type Event struct {
	Properties map[string]string
}

// Property returns the value for name and whether it is present and
// non-empty.
func (e Event) Property(name string) (string, bool) {
	v, ok := e.Properties[name]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
