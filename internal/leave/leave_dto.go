package leave

type SubmitLeaveRequest struct {
	LeaveType string `json:"leave_type" binding:"required"`
	StartDate string `json:"start_date" binding:"required,isodate"`
	EndDate   string `json:"end_date" binding:"required,isodate"`
	Reason    string `json:"reason"`
}

type UpdateLeaveRequest struct {
	LeaveType string `json:"leave_type" binding:"required"`
	StartDate string `json:"start_date" binding:"required,isodate"`
	EndDate   string `json:"end_date" binding:"required,isodate"`
	Reason    string `json:"reason"`
}

type LeaveResponse struct {
	ID               int64   `json:"id"`
	EmployeeFullName string  `json:"employee_full_name"`
	Department       string  `json:"department"`
	JobTitle         string  `json:"job_title"`
	LeaveType        string  `json:"leave_type"`
	LeaveTypeLabel   string  `json:"leave_type_label"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	Reason           string  `json:"reason"`
	Status           string  `json:"status"`
	ApprovalNote     *string `json:"approval_note,omitempty"`
}

type Document struct {
	Filename string
	Content  []byte
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	return LeaveResponse{
		ID:               l.ID,
		EmployeeFullName: l.EmployeeFullName,
		Department:       l.Department,
		JobTitle:         l.JobTitle,
		LeaveType:        l.LeaveType,
		LeaveTypeLabel:   LeaveTypeLabel(l.LeaveType),
		StartDate:        l.StartDate.Format(dateLayout),
		EndDate:          l.EndDate.Format(dateLayout),
		Reason:           l.Reason,
		Status:           l.Status,
		ApprovalNote:     l.ApprovalNote,
	}
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
