package calendar_test

import (
	"strings"
	"testing"
	"time"

	"go-leave/internal/calendar"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
)

func TestWrite(t *testing.T) {
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	out := calendar.Write([]calendar.Event{
		{UID: "leave-7@go-leave", Summary: "Ayşe Kaya - Yıllık İzin", Start: start, End: start.AddDate(0, 0, 4)},
	}, time.Date(2026, 6, 20, 9, 0, 0, 0, time.UTC))

	cal, err := ics.ParseCalendar(strings.NewReader(out))
	assert.NoError(t, err)

	events := cal.Events()
	assert.Len(t, events, 1)
	assert.Equal(t, "leave-7@go-leave", events[0].Id())
	assert.Equal(t, "Ayşe Kaya - Yıllık İzin", events[0].GetProperty(ics.ComponentPropertySummary).Value)
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20260701")
	assert.Contains(t, out, "DTEND;VALUE=DATE:20260706")
}

func TestWriteEmpty(t *testing.T) {
	out := calendar.Write(nil, time.Now())

	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.NotContains(t, out, "BEGIN:VEVENT")
}
