package leave

import (
	"context"
	"errors"
	"sort"

	"go-leave/internal/employee"
	employeeerrors "go-leave/internal/employee/errors"
)

// Roster is the read side of the employee roster. employee.Service
// satisfies it.
type Roster interface {
	GetAll(ctx context.Context) ([]employee.EmployeeResponse, error)
	GetByFullName(ctx context.Context, fullName string) (employee.EmployeeResponse, error)
}

// Router decides which employees and requests an approver can see. The
// relation is one level deep: an approver sees exactly the employees whose
// approver email equals theirs.
type Router struct {
	roster Roster
	repo   Repository
}

func NewRouter(roster Roster, repo Repository) *Router {
	return &Router{roster: roster, repo: repo}
}

// VisibleEmployees returns the sorted full names assigned to approverEmail.
func (r *Router) VisibleEmployees(ctx context.Context, approverEmail string) ([]string, error) {
	names := []string{}
	if approverEmail == "" {
		return names, nil
	}

	emps, err := r.roster.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range emps {
		if e.ApproverEmail == approverEmail {
			names = append(names, e.FullName)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (r *Router) VisiblePendingRequests(ctx context.Context, approverEmail string) ([]LeaveRequest, error) {
	names, err := r.VisibleEmployees(ctx, approverEmail)
	if err != nil {
		return nil, err
	}
	return r.repo.FindPendingByEmployees(ctx, names)
}

// Owner resolves the roster entry of fullName and reports whether
// approverEmail is its approver. A missing employee is not an error.
func (r *Router) Owner(ctx context.Context, approverEmail, fullName string) (employee.EmployeeResponse, bool, error) {
	owner, err := r.roster.GetByFullName(ctx, fullName)
	if err != nil {
		if errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, false, nil
		}
		return employee.EmployeeResponse{}, false, err
	}
	return owner, approverEmail != "" && owner.ApproverEmail == approverEmail, nil
}
