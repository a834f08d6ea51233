package leave_test

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"

	"go-leave/internal/employee"
	employeeerrors "go-leave/internal/employee/errors"
	"go-leave/internal/leave"

	"gorm.io/gorm"
)

// fakeRepo is an in-memory request store. barrier, when set, holds every
// FindAllByEmployee caller until all expected readers have arrived.
type fakeRepo struct {
	mu      sync.Mutex
	nextID  int64
	rows    map[int64]leave.LeaveRequest
	barrier *sync.WaitGroup

	creates int
	updates int
}

func newFakeRepo(seed ...leave.LeaveRequest) *fakeRepo {
	r := &fakeRepo{rows: map[int64]leave.LeaveRequest{}}
	for _, l := range seed {
		r.rows[l.ID] = l
		if l.ID > r.nextID {
			r.nextID = l.ID
		}
	}
	return r
}

func (r *fakeRepo) WithTx(*sql.Tx) leave.Repository { return r }

func (r *fakeRepo) Create(_ context.Context, l *leave.LeaveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	l.ID = r.nextID
	r.rows[l.ID] = *l
	r.creates++
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id int64) (*leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &l, nil
}

func (r *fakeRepo) sorted(keep func(leave.LeaveRequest) bool) []leave.LeaveRequest {
	out := []leave.LeaveRequest{}
	for _, l := range r.rows {
		if keep(l) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r *fakeRepo) FindAll(context.Context) ([]leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(leave.LeaveRequest) bool { return true }), nil
}

func (r *fakeRepo) FindAllByEmployee(_ context.Context, fullName string) ([]leave.LeaveRequest, error) {
	r.mu.Lock()
	out := r.sorted(func(l leave.LeaveRequest) bool { return l.EmployeeFullName == fullName })
	r.mu.Unlock()

	if r.barrier != nil {
		r.barrier.Done()
		r.barrier.Wait()
	}
	return out, nil
}

func (r *fakeRepo) FindPendingByEmployees(_ context.Context, fullNames []string) ([]leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := map[string]bool{}
	for _, n := range fullNames {
		names[n] = true
	}
	return r.sorted(func(l leave.LeaveRequest) bool {
		return l.Status == leave.StatusPending && names[l.EmployeeFullName]
	}), nil
}

func (r *fakeRepo) Update(_ context.Context, l *leave.LeaveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[l.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.rows[l.ID] = *l
	r.updates++
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *fakeRepo) DeleteAll(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.rows))
	r.rows = map[int64]leave.LeaveRequest{}
	return n, nil
}

func (r *fakeRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

type fakeRoster struct {
	employees []employee.EmployeeResponse
	err       error
}

func (f *fakeRoster) GetAll(context.Context) ([]employee.EmployeeResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.employees, nil
}

func (f *fakeRoster) GetByFullName(_ context.Context, fullName string) (employee.EmployeeResponse, error) {
	if f.err != nil {
		return employee.EmployeeResponse{}, f.err
	}
	for _, e := range f.employees {
		if e.FullName == fullName {
			return e, nil
		}
	}
	return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
}

type fakeObserver struct {
	mu            sync.Mutex
	transitions   []string
	notifications []string
}

func (o *fakeObserver) ObserveTransition(transition, outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.transitions = append(o.transitions, transition+":"+outcome)
}

func (o *fakeObserver) ObserveNotification(outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.notifications = append(o.notifications, outcome)
}

var assertErr = errors.New("boom")
