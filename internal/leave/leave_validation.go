package leave

import (
	"time"

	leaveerrors "go-leave/internal/leave/errors"
)

// MaxSpan is the longest allowed distance between start and end date.
const MaxSpan = 365 * 24 * time.Hour

type Candidate struct {
	StartDate time.Time
	EndDate   time.Time
}

// Validate checks a candidate against the employee's other requests. Rules
// run in order and the first failure wins: identical window, span, order.
// The returned candidate has both dates truncated to the calendar day.
func Validate(c Candidate, existing []LeaveRequest) (Candidate, error) {
	c.StartDate = dateOnly(c.StartDate)
	c.EndDate = dateOnly(c.EndDate)

	for _, e := range existing {
		if dateOnly(e.StartDate).Equal(c.StartDate) && dateOnly(e.EndDate).Equal(c.EndDate) {
			return c, leaveerrors.ErrDuplicateRequest
		}
	}

	if c.EndDate.Sub(c.StartDate) > MaxSpan {
		return c, leaveerrors.ErrSpanTooLong
	}

	if c.EndDate.Before(c.StartDate) {
		return c, leaveerrors.ErrInvertedRange
	}

	return c, nil
}

func excluding(requests []LeaveRequest, id int64) []LeaveRequest {
	out := make([]LeaveRequest, 0, len(requests))
	for _, r := range requests {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const dateLayout = "2006-01-02"

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}
