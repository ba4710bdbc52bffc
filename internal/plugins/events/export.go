package events

import (
	ical "github.com/arran4/golang-ical"
)

// prodID identifies Hearth as the generator in exported feeds.
const prodID = "-//Hearth//Family Calendar//EN"

// BuildICS serializes events into an iCalendar document. Recurring events
// carry their RRULE so subscribing clients expand occurrences themselves.
func BuildICS(calendarName string, events []Event) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(prodID)
	if calendarName != "" {
		cal.SetXWRCalName(calendarName)
	}

	for i := range events {
		evt := &events[i]

		ve := cal.AddEvent(evt.ID)
		ve.SetDtStampTime(evt.UpdatedAt)
		ve.SetSummary(evt.Title)

		if evt.AllDay {
			ve.SetAllDayStartAt(evt.StartTime)
			ve.SetAllDayEndAt(evt.EndTime)
		} else {
			ve.SetStartAt(evt.StartTime)
			ve.SetEndAt(evt.EndTime)
		}

		if evt.Description != nil {
			ve.SetDescription(*evt.Description)
		}
		if evt.Location != nil {
			ve.SetLocation(*evt.Location)
		}
		if evt.Recurring() {
			ve.AddRrule(*evt.RRule)
		}
	}

	return cal.Serialize()
}
