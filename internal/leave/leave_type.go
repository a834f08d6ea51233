package leave

import (
	"strings"

	leaveerrors "go-leave/internal/leave/errors"
)

const (
	TypeAnnual      = "ANNUAL"
	TypeExcuse      = "EXCUSE"
	TypeUnpaid      = "UNPAID"
	TypeMedical     = "MEDICAL"
	TypeMaternity   = "MATERNITY"
	TypePaternity   = "PATERNITY"
	TypeMarriage    = "MARRIAGE"
	TypeBereavement = "BEREAVEMENT"
)

var leaveTypes = []struct {
	code  string
	label string
}{
	{TypeAnnual, "Yıllık İzin"},
	{TypeExcuse, "Mazeret İzni"},
	{TypeUnpaid, "Ücretsiz İzin"},
	{TypeMedical, "Raporlu İzin"},
	{TypeMaternity, "Doğum İzni"},
	{TypePaternity, "Babalık İzni"},
	{TypeMarriage, "Evlenme İzni"},
	{TypeBereavement, "Cenaze İzni"},
}

// ParseLeaveType accepts a code (any case) or an exact display label.
func ParseLeaveType(v string) (string, error) {
	v = strings.TrimSpace(v)
	for _, t := range leaveTypes {
		if strings.EqualFold(v, t.code) || v == t.label {
			return t.code, nil
		}
	}
	return "", leaveerrors.ErrInvalidLeaveType
}

// LeaveTypeLabel returns the display label, or the code itself when unknown.
func LeaveTypeLabel(code string) string {
	for _, t := range leaveTypes {
		if t.code == code {
			return t.label
		}
	}
	return code
}

func LeaveTypeCodes() []string {
	out := make([]string, len(leaveTypes))
	for i, t := range leaveTypes {
		out[i] = t.code
	}
	return out
}
