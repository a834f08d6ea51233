package leave_test

import (
	"testing"

	"go-leave/internal/leave"
	leaveerrors "go-leave/internal/leave/errors"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	existing := []leave.LeaveRequest{pending(1, "Ayse Kaya", "2024-06-01", "2024-06-05")}

	tests := []struct {
		name    string
		start   string
		end     string
		wantErr error
	}{
		{name: "single day", start: "2024-03-01", end: "2024-03-01"},
		{name: "exactly 365 days", start: "2023-01-01", end: "2024-01-01"},
		{name: "366 days", start: "2023-01-01", end: "2024-01-02", wantErr: leaveerrors.ErrSpanTooLong},
		{name: "inverted", start: "2024-03-05", end: "2024-03-01", wantErr: leaveerrors.ErrInvertedRange},
		{name: "identical window", start: "2024-06-01", end: "2024-06-05", wantErr: leaveerrors.ErrDuplicateRequest},
		{name: "shares start only", start: "2024-06-01", end: "2024-06-04"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := leave.Validate(leave.Candidate{StartDate: day(tt.start), EndDate: day(tt.end)}, existing)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_DuplicateWinsOverOtherRules(t *testing.T) {
	inverted := pending(1, "Ayse Kaya", "2024-06-05", "2024-06-01")

	_, err := leave.Validate(leave.Candidate{StartDate: day("2024-06-05"), EndDate: day("2024-06-01")}, []leave.LeaveRequest{inverted})

	assert.ErrorIs(t, err, leaveerrors.ErrDuplicateRequest)
}

func TestParseLeaveType(t *testing.T) {
	code, err := leave.ParseLeaveType("annual")
	assert.NoError(t, err)
	assert.Equal(t, leave.TypeAnnual, code)

	code, err = leave.ParseLeaveType("Cenaze İzni")
	assert.NoError(t, err)
	assert.Equal(t, leave.TypeBereavement, code)

	_, err = leave.ParseLeaveType("")
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidLeaveType)

	assert.Equal(t, "Doğum İzni", leave.LeaveTypeLabel(leave.TypeMaternity))
	assert.Equal(t, "LEGACY", leave.LeaveTypeLabel("LEGACY"))
	assert.Len(t, leave.LeaveTypeCodes(), 8)
}

func TestApprovalNote(t *testing.T) {
	t.Run("build then parse", func(t *testing.T) {
		note := leave.BuildApprovalNote("Mehmet Can Öz", "Genel Müdür", fixedNow)

		parsed, ok := leave.ParseApprovalNote(note)

		assert.True(t, ok)
		assert.Equal(t, "Mehmet Can Öz (Genel Müdür)", parsed.Approver)
		assert.Equal(t, "Mehmet Can Öz", parsed.Name)
		assert.Equal(t, "Genel Müdür", parsed.Title)
		assert.Equal(t, "2024-05-02", parsed.Date)
	})

	t.Run("free text without token", func(t *testing.T) {
		_, ok := leave.ParseApprovalNote("onaylandı")
		assert.False(t, ok)
	})

	t.Run("approver without title", func(t *testing.T) {
		parsed, ok := leave.ParseApprovalNote("Ali tarafından 2024-01-01 tarihinde onaylandı.")
		assert.True(t, ok)
		assert.Equal(t, "Ali", parsed.Name)
		assert.Empty(t, parsed.Title)
	})
}
