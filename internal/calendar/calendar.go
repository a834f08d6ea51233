// Package calendar publishes approved leave as an iCalendar feed.
package calendar

import (
	"time"

	ics "github.com/arran4/golang-ical"
)

const productID = "-//go-leave//leave calendar//TR"

type Event struct {
	UID         string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
}

// Write renders all-day events. End dates are inclusive on input and become
// the exclusive DTEND the format expects.
func Write(events []Event, stamp time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetName("İzin Takvimi")

	for _, e := range events {
		ev := cal.AddEvent(e.UID)
		ev.SetDtStampTime(stamp.UTC())
		ev.SetSummary(e.Summary)
		if e.Description != "" {
			ev.SetDescription(e.Description)
		}
		ev.SetAllDayStartAt(e.Start)
		ev.SetAllDayEndAt(e.End.AddDate(0, 0, 1))
		ev.SetStatus(ics.ObjectStatusConfirmed)
	}

	return cal.Serialize()
}
