package leave

import "time"

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// LeaveRequest references its owner by full name only. Deleting the
// employee leaves the request in place.
type LeaveRequest struct {
	ID               int64     `gorm:"column:id;primaryKey;autoIncrement"`
	EmployeeFullName string    `gorm:"column:employee_full_name"`
	Department       string    `gorm:"column:department"`
	JobTitle         string    `gorm:"column:job_title"`
	LeaveType        string    `gorm:"column:leave_type"`
	StartDate        time.Time `gorm:"column:start_date;type:date"`
	EndDate          time.Time `gorm:"column:end_date;type:date"`
	Reason           string    `gorm:"column:reason"`
	Status           string    `gorm:"column:status"`
	ApprovalNote     *string   `gorm:"column:approval_note"`
}

func (LeaveRequest) TableName() string {
	return "requests"
}
