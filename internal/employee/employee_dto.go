package employee

import "go-leave/internal/session"

type CreateEmployeeRequest struct {
	RegistryNo    string `json:"registry_no" binding:"required"`
	FullName      string `json:"full_name" binding:"required"`
	Secret        string `json:"secret" binding:"required"`
	JobTitle      string `json:"job_title"`
	Department    string `json:"department"`
	Email         string `json:"email" binding:"omitempty,email"`
	ApproverEmail string `json:"approver_email" binding:"omitempty,email"`
	Role          string `json:"role" binding:"required"`
	Phone         string `json:"phone"`
}

// EmployeeResponse never carries the secret.
type EmployeeResponse struct {
	RegistryNo    string `json:"registry_no"`
	FullName      string `json:"full_name"`
	JobTitle      string `json:"job_title"`
	Department    string `json:"department"`
	Email         string `json:"email"`
	ApproverEmail string `json:"approver_email"`
	Role          string `json:"role"`
	Phone         string `json:"phone"`
}

func (r EmployeeResponse) Actor() session.Actor {
	return session.Actor{
		RegistryNo:    r.RegistryNo,
		FullName:      r.FullName,
		Email:         r.Email,
		ApproverEmail: r.ApproverEmail,
		JobTitle:      r.JobTitle,
		Department:    r.Department,
		Phone:         r.Phone,
		Role:          session.Role(r.Role),
	}
}

type SkippedRow struct {
	Row        int    `json:"row"`
	RegistryNo string `json:"registry_no"`
	Reason     string `json:"reason"`
}

type ImportResult struct {
	Inserted int          `json:"inserted"`
	Skipped  []SkippedRow `json:"skipped"`
}

func mapToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		RegistryNo:    e.RegistryNo,
		FullName:      e.FullName,
		JobTitle:      e.JobTitle,
		Department:    e.Department,
		Email:         e.Email,
		ApproverEmail: e.ApproverEmail,
		Role:          e.Role,
		Phone:         e.Phone,
	}
}

func mapToListResponse(emps []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(emps))
	for i, e := range emps {
		res[i] = mapToResponse(e)
	}
	return res
}
