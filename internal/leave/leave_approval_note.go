package leave

import (
	"fmt"
	"strings"
	"time"
)

const approvalToken = "tarafından"

type ApprovalNote struct {
	// Approver is every word before the token, e.g. "Ali Veli (Müdür)".
	Approver string
	Name     string
	Title    string
	Date     string
}

func BuildApprovalNote(name, title string, on time.Time) string {
	return fmt.Sprintf("%s (%s) %s %s tarihinde onaylandı.", name, title, approvalToken, on.Format(dateLayout))
}

// ParseApprovalNote reads back a note written by BuildApprovalNote. Notes
// without the token report ok=false.
func ParseApprovalNote(note string) (ApprovalNote, bool) {
	words := strings.Fields(note)
	idx := -1
	for i, w := range words {
		if w == approvalToken {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ApprovalNote{}, false
	}

	out := ApprovalNote{Approver: strings.Join(words[:idx], " ")}
	if idx+1 < len(words) {
		out.Date = words[idx+1]
	}

	out.Name = out.Approver
	if open := strings.LastIndex(out.Approver, " ("); open >= 0 && strings.HasSuffix(out.Approver, ")") {
		out.Name = out.Approver[:open]
		out.Title = out.Approver[open+2 : len(out.Approver)-1]
	}
	return out, true
}
