package leave_test

import (
	"context"
	"errors"
	"testing"

	"go-leave/internal/employee"
	"go-leave/internal/leave"

	"github.com/stretchr/testify/assert"
)

func TestRouter_VisibleEmployees(t *testing.T) {
	ctx := context.Background()
	emps := []employee.EmployeeResponse{
		{FullName: "Zehra", ApproverEmail: "mgr@example.com"},
		{FullName: "Ahmet", ApproverEmail: "mgr@example.com"},
		{FullName: "Mert", ApproverEmail: "MGR@example.com"},
		{FullName: "Selin", ApproverEmail: "other@example.com"},
	}
	reversed := make([]employee.EmployeeResponse, len(emps))
	for i, e := range emps {
		reversed[len(emps)-1-i] = e
	}

	a := leave.NewRouter(&fakeRoster{employees: emps}, newFakeRepo())
	b := leave.NewRouter(&fakeRoster{employees: reversed}, newFakeRepo())

	gotA, err := a.VisibleEmployees(ctx, "mgr@example.com")
	assert.NoError(t, err)
	gotB, err := b.VisibleEmployees(ctx, "mgr@example.com")
	assert.NoError(t, err)

	assert.Equal(t, []string{"Ahmet", "Zehra"}, gotA)
	assert.Equal(t, gotA, gotB)

	none, err := a.VisibleEmployees(ctx, "nobody@example.com")
	assert.NoError(t, err)
	assert.Empty(t, none)

	blank, err := a.VisibleEmployees(ctx, "")
	assert.NoError(t, err)
	assert.Empty(t, blank)
}

func TestRouter_VisiblePendingRequests(t *testing.T) {
	ctx := context.Background()
	decided := pending(3, "Ahmet", "2024-01-01", "2024-01-02")
	decided.Status = leave.StatusApproved
	repo := newFakeRepo(
		pending(1, "Ahmet", "2024-06-01", "2024-06-02"),
		pending(2, "Selin", "2024-06-01", "2024-06-02"),
		decided,
	)
	r := leave.NewRouter(&fakeRoster{employees: []employee.EmployeeResponse{
		{FullName: "Ahmet", ApproverEmail: "mgr@example.com"},
		{FullName: "Selin", ApproverEmail: "other@example.com"},
	}}, repo)

	got, err := r.VisiblePendingRequests(ctx, "mgr@example.com")

	assert.NoError(t, err)
	if assert.Len(t, got, 1) {
		assert.Equal(t, int64(1), got[0].ID)
	}
}

func TestRouter_Owner(t *testing.T) {
	ctx := context.Background()
	r := leave.NewRouter(&fakeRoster{employees: []employee.EmployeeResponse{
		{FullName: "Ahmet", Email: "ahmet@example.com", ApproverEmail: "mgr@example.com"},
	}}, newFakeRepo())

	owner, ok, err := r.Owner(ctx, "mgr@example.com", "Ahmet")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ahmet@example.com", owner.Email)

	_, ok, err = r.Owner(ctx, "other@example.com", "Ahmet")
	assert.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = r.Owner(ctx, "mgr@example.com", "Silinmiş")
	assert.NoError(t, err)
	assert.False(t, ok)

	broken := leave.NewRouter(&fakeRoster{err: errors.New("redis down")}, newFakeRepo())
	_, _, err = broken.Owner(ctx, "mgr@example.com", "Ahmet")
	assert.EqualError(t, err, "redis down")
}
