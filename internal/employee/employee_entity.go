package employee

import "go-leave/internal/session"

// Employee is one roster row. FullName is unique and is what leave
// requests reference.
type Employee struct {
	RegistryNo    string `gorm:"column:registry_no;primaryKey"`
	FullName      string `gorm:"column:full_name"`
	Secret        string `gorm:"column:secret"`
	JobTitle      string `gorm:"column:job_title"`
	Department    string `gorm:"column:department"`
	Email         string `gorm:"column:email"`
	ApproverEmail string `gorm:"column:approver_email"`
	Role          string `gorm:"column:role"`
	Phone         string `gorm:"column:phone"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e Employee) Actor() session.Actor {
	return session.Actor{
		RegistryNo:    e.RegistryNo,
		FullName:      e.FullName,
		Email:         e.Email,
		ApproverEmail: e.ApproverEmail,
		JobTitle:      e.JobTitle,
		Department:    e.Department,
		Phone:         e.Phone,
		Role:          session.Role(e.Role),
	}
}
