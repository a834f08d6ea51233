package leave

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go-leave/internal/calendar"
	"go-leave/internal/document"
	"go-leave/internal/employee"
	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/notification"
	"go-leave/internal/session"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/contextutil"
	"go-leave/internal/spreadsheet"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	TransitionSubmit    = "submit"
	TransitionEdit      = "edit"
	TransitionApprove   = "approve"
	TransitionReject    = "reject"
	TransitionDelete    = "delete"
	TransitionDeleteAll = "delete_all"

	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, actor session.Actor, req SubmitLeaveRequest) (LeaveResponse, error)
	Edit(ctx context.Context, actor session.Actor, id int64, req UpdateLeaveRequest) (LeaveResponse, error)
	Approve(ctx context.Context, actor session.Actor, id int64) (LeaveResponse, error)
	Reject(ctx context.Context, actor session.Actor, id int64) (LeaveResponse, error)
	Delete(ctx context.Context, actor session.Actor, id int64) error
	DeleteAll(ctx context.Context, actor session.Actor) (int64, error)
	GetByID(ctx context.Context, actor session.Actor, id int64) (LeaveResponse, error)
	ListOwn(ctx context.Context, actor session.Actor) ([]LeaveResponse, error)
	ListAll(ctx context.Context, actor session.Actor) ([]LeaveResponse, error)
	ListPending(ctx context.Context, actor session.Actor) ([]LeaveResponse, error)
	Document(ctx context.Context, actor session.Actor, id int64) (Document, error)
	Export(ctx context.Context, actor session.Actor) ([]byte, error)
	Calendar(ctx context.Context, actor session.Actor) ([]byte, error)
}

// Observer receives lifecycle and notification outcomes. metrics.Registry
// satisfies it.
type Observer interface {
	ObserveTransition(transition, outcome string)
	ObserveNotification(outcome string)
}

type Option func(*service)

func WithLogger(l *zap.Logger) Option {
	return func(s *service) {
		if l != nil {
			s.logger = l.Named("leave.service")
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSlotGuard closes the window between reading existing requests and
// inserting a new one. Without it two concurrent identical submissions can
// both succeed.
func WithSlotGuard(g SlotGuard) Option {
	return func(s *service) {
		if g != nil {
			s.guard = g
		}
	}
}

func WithObserver(o Observer) Option {
	return func(s *service) {
		s.observer = o
	}
}

type service struct {
	db         *sql.DB
	repo       Repository
	roster     Roster
	router     *Router
	dispatcher notification.Dispatcher
	guard      SlotGuard
	observer   Observer
	now        func() time.Time
	logger     *zap.Logger
}

func NewService(db *sql.DB, repo Repository, roster Roster, dispatcher notification.Dispatcher, opts ...Option) Service {
	s := &service{
		db:         db,
		repo:       repo,
		roster:     roster,
		router:     NewRouter(roster, repo),
		dispatcher: dispatcher,
		guard:      noopSlotGuard{},
		now:        time.Now,
		logger:     zap.L().Named("leave.service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.dispatcher == nil {
		s.dispatcher = notification.Noop{}
	}
	return s
}

func (s *service) observe(transition string, err error) {
	if s.observer == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			outcome = OutcomeRejected
		}
	}
	s.observer.ObserveTransition(transition, outcome)
}

func (s *service) notify(ctx context.Context, id int64, msg notification.Message) {
	var observers []notification.Observer
	if s.observer != nil {
		observers = append(observers, s.observer)
	}
	ctx = notification.WithLeaveID(ctx, id)
	notification.Send(ctx, contextutil.GetLogger(ctx, s.logger), s.dispatcher, msg, observers...)
}

func (s *service) Submit(ctx context.Context, actor session.Actor, req SubmitLeaveRequest) (resp LeaveResponse, err error) {
	defer func() { s.observe(TransitionSubmit, err) }()

	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("submit leave requested",
		zap.String("request_id", rid),
		zap.String("employee", actor.FullName),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	leaveType, err := ParseLeaveType(req.LeaveType)
	if err != nil {
		return LeaveResponse{}, err
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	release, err := s.guard.Acquire(ctx, actor.FullName, startDate, endDate)
	if err != nil {
		s.logger.Warn("submit leave slot busy", zap.String("employee", actor.FullName), zap.Error(err))
		return LeaveResponse{}, err
	}
	defer release()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindAllByEmployee(ctx, actor.FullName)
	if err != nil {
		s.logger.Error("submit leave load existing failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	candidate, err := Validate(Candidate{StartDate: startDate, EndDate: endDate}, existing)
	if err != nil {
		s.logger.Warn("submit leave validation failed",
			zap.String("employee", actor.FullName),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	l := &LeaveRequest{
		EmployeeFullName: actor.FullName,
		Department:       actor.Department,
		JobTitle:         actor.JobTitle,
		LeaveType:        leaveType,
		StartDate:        candidate.StartDate,
		EndDate:          candidate.EndDate,
		Reason:           req.Reason,
		Status:           StatusPending,
	}
	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("submit leave success",
		zap.String("request_id", rid),
		zap.Int64("leave_id", l.ID),
		zap.String("employee", actor.FullName),
	)

	s.notify(ctx, l.ID, notification.SubmittedMessage(actor.ApproverEmail, actor.FullName))

	return mapToResponse(*l), nil
}

func (s *service) Edit(ctx context.Context, actor session.Actor, id int64, req UpdateLeaveRequest) (resp LeaveResponse, err error) {
	defer func() { s.observe(TransitionEdit, err) }()

	s.logger.Debug("edit leave requested", zap.Int64("leave_id", id), zap.String("employee", actor.FullName))

	leaveType, err := ParseLeaveType(req.LeaveType)
	if err != nil {
		return LeaveResponse{}, err
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("edit leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := findLeave(ctx, qtx, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if l.EmployeeFullName != actor.FullName {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrNotEditable
	}

	existing, err := qtx.FindAllByEmployee(ctx, actor.FullName)
	if err != nil {
		return LeaveResponse{}, err
	}

	candidate, err := Validate(Candidate{StartDate: startDate, EndDate: endDate}, excluding(existing, id))
	if err != nil {
		s.logger.Warn("edit leave validation failed", zap.Int64("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	l.LeaveType = leaveType
	l.StartDate = candidate.StartDate
	l.EndDate = candidate.EndDate
	l.Reason = req.Reason

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("edit leave persist failed", zap.Int64("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("edit leave commit failed", zap.Int64("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("edit leave success", zap.Int64("leave_id", id))
	return mapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, actor session.Actor, id int64) (LeaveResponse, error) {
	resp, err := s.decide(ctx, actor, id, StatusApproved)
	s.observe(TransitionApprove, err)
	return resp, err
}

func (s *service) Reject(ctx context.Context, actor session.Actor, id int64) (LeaveResponse, error) {
	resp, err := s.decide(ctx, actor, id, StatusRejected)
	s.observe(TransitionReject, err)
	return resp, err
}

// decide moves a pending request to a terminal status. Requests of
// employees the actor does not approve are reported as not found.
func (s *service) decide(ctx context.Context, actor session.Actor, id int64, target string) (LeaveResponse, error) {
	s.logger.Debug("decide leave requested",
		zap.Int64("leave_id", id),
		zap.String("approver", actor.FullName),
		zap.String("target_status", target),
	)

	if !actor.CanApprove() {
		return LeaveResponse{}, leaveerrors.ErrForbidden
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := findLeave(ctx, qtx, id)
	if err != nil {
		return LeaveResponse{}, err
	}

	owner, allowed, err := s.router.Owner(ctx, actor.Email, l.EmployeeFullName)
	if err != nil {
		s.logger.Error("decide leave roster lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !allowed {
		s.logger.Warn("decide leave not visible to approver",
			zap.Int64("leave_id", id),
			zap.String("approver", actor.FullName),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}

	if l.Status != StatusPending {
		s.logger.Warn("decide leave invalid transition",
			zap.Int64("leave_id", id),
			zap.String("from_status", l.Status),
			zap.String("to_status", target),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	l.Status = target
	if target == StatusApproved {
		note := BuildApprovalNote(actor.FullName, actor.JobTitle, s.now())
		l.ApprovalNote = &note
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("decide leave persist failed", zap.Int64("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave commit failed", zap.Int64("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("decide leave success", zap.Int64("leave_id", id), zap.String("status", target))

	msg := notification.RejectedMessage(owner.Email, l.EmployeeFullName)
	if target == StatusApproved {
		msg = notification.ApprovedMessage(owner.Email, l.EmployeeFullName)
	}
	s.notify(ctx, l.ID, msg)

	return mapToResponse(*l), nil
}

func (s *service) Delete(ctx context.Context, actor session.Actor, id int64) (err error) {
	defer func() { s.observe(TransitionDelete, err) }()

	s.logger.Debug("delete leave requested", zap.Int64("leave_id", id), zap.String("actor", actor.FullName))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := findLeave(ctx, qtx, id)
	if err != nil {
		return err
	}
	if !actor.IsHR() && l.EmployeeFullName != actor.FullName {
		return leaveerrors.ErrLeaveNotFound
	}

	if err := qtx.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrLeaveNotFound
		}
		s.logger.Error("delete leave failed", zap.Int64("leave_id", id), zap.Error(err))
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete leave success", zap.Int64("leave_id", id))
	return nil
}

func (s *service) DeleteAll(ctx context.Context, actor session.Actor) (n int64, err error) {
	defer func() { s.observe(TransitionDeleteAll, err) }()

	if !actor.IsHR() {
		return 0, leaveerrors.ErrForbidden
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	n, err = s.repo.WithTx(tx).DeleteAll(ctx)
	if err != nil {
		s.logger.Error("delete all leaves failed", zap.Error(err))
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}

	s.logger.Info("delete all leaves success", zap.Int64("deleted", n), zap.String("actor", actor.FullName))
	return n, nil
}

func (s *service) GetByID(ctx context.Context, actor session.Actor, id int64) (LeaveResponse, error) {
	l, err := s.visibleLeave(ctx, actor, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

// visibleLeave loads a request the actor owns, approves or, as HR, any.
func (s *service) visibleLeave(ctx context.Context, actor session.Actor, id int64) (*LeaveRequest, error) {
	l, err := findLeave(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	if actor.IsHR() || l.EmployeeFullName == actor.FullName {
		return l, nil
	}
	if actor.CanApprove() {
		_, allowed, err := s.router.Owner(ctx, actor.Email, l.EmployeeFullName)
		if err != nil {
			return nil, err
		}
		if allowed {
			return l, nil
		}
	}
	return nil, leaveerrors.ErrLeaveNotFound
}

func (s *service) ListOwn(ctx context.Context, actor session.Actor) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAllByEmployee(ctx, actor.FullName)
	if err != nil {
		s.logger.Error("list own leaves failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) ListAll(ctx context.Context, actor session.Actor) ([]LeaveResponse, error) {
	if !actor.IsHR() {
		return nil, leaveerrors.ErrForbidden
	}
	leaves, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("list all leaves failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) ListPending(ctx context.Context, actor session.Actor) ([]LeaveResponse, error) {
	if !actor.CanApprove() {
		return nil, leaveerrors.ErrForbidden
	}
	leaves, err := s.router.VisiblePendingRequests(ctx, actor.Email)
	if err != nil {
		s.logger.Error("list pending leaves failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) Document(ctx context.Context, actor session.Actor, id int64) (Document, error) {
	l, err := s.visibleLeave(ctx, actor, id)
	if err != nil {
		return Document{}, err
	}
	if l.Status != StatusApproved {
		return Document{}, leaveerrors.ErrDocumentUnavailable
	}

	owner := s.documentOwner(ctx, actor, l)
	label := LeaveTypeLabel(l.LeaveType)

	form := document.LeaveForm{
		FullName:   l.EmployeeFullName,
		RegistryNo: owner.RegistryNo,
		Department: owner.Department,
		JobTitle:   owner.JobTitle,
		Phone:      owner.Phone,
		Email:      owner.Email,
		LeaveLabel: label,
		StartDate:  l.StartDate.Format(dateLayout),
		EndDate:    l.EndDate.Format(dateLayout),
		Reason:     l.Reason,
	}
	if l.ApprovalNote != nil {
		if note, ok := ParseApprovalNote(*l.ApprovalNote); ok {
			form.Approver = note.Approver
			form.ApprovedOn = note.Date
		}
	}

	content, err := document.RenderLeaveForm(form)
	if err != nil {
		s.logger.Error("render leave form failed", zap.Int64("leave_id", id), zap.Error(err))
		return Document{}, err
	}

	return Document{
		Filename: document.Filename(l.EmployeeFullName, label, owner.RegistryNo),
		Content:  content,
	}, nil
}

// documentOwner prefers the current roster entry and falls back to the
// session snapshot, then to what the request itself recorded.
func (s *service) documentOwner(ctx context.Context, actor session.Actor, l *LeaveRequest) employee.EmployeeResponse {
	owner, err := s.roster.GetByFullName(ctx, l.EmployeeFullName)
	if err == nil {
		return owner
	}
	if l.EmployeeFullName == actor.FullName {
		return employee.EmployeeResponse{
			RegistryNo: actor.RegistryNo,
			FullName:   actor.FullName,
			JobTitle:   actor.JobTitle,
			Department: actor.Department,
			Email:      actor.Email,
			Phone:      actor.Phone,
		}
	}
	return employee.EmployeeResponse{
		FullName:   l.EmployeeFullName,
		JobTitle:   l.JobTitle,
		Department: l.Department,
	}
}

func (s *service) Export(ctx context.Context, actor session.Actor) ([]byte, error) {
	if !actor.IsHR() {
		return nil, leaveerrors.ErrForbidden
	}
	leaves, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]spreadsheet.RequestRow, len(leaves))
	for i, l := range leaves {
		note := ""
		if l.ApprovalNote != nil {
			note = *l.ApprovalNote
		}
		rows[i] = spreadsheet.RequestRow{
			ID:               l.ID,
			EmployeeFullName: l.EmployeeFullName,
			Department:       l.Department,
			JobTitle:         l.JobTitle,
			LeaveType:        LeaveTypeLabel(l.LeaveType),
			StartDate:        l.StartDate.Format(dateLayout),
			EndDate:          l.EndDate.Format(dateLayout),
			Reason:           l.Reason,
			Status:           l.Status,
			ApprovalNote:     note,
		}
	}
	return spreadsheet.WriteRequests(rows)
}

func (s *service) Calendar(ctx context.Context, actor session.Actor) ([]byte, error) {
	leaves, err := s.repo.FindAllByEmployee(ctx, actor.FullName)
	if err != nil {
		return nil, err
	}

	var events []calendar.Event
	for _, l := range leaves {
		if l.Status != StatusApproved {
			continue
		}
		events = append(events, calendar.Event{
			UID:         fmt.Sprintf("leave-%d@go-leave", l.ID),
			Summary:     l.EmployeeFullName + " - " + LeaveTypeLabel(l.LeaveType),
			Description: l.Reason,
			Start:       l.StartDate,
			End:         l.EndDate,
		})
	}
	return []byte(calendar.Write(events, s.now())), nil
}

func findLeave(ctx context.Context, repo Repository, id int64) (*LeaveRequest, error) {
	l, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		return nil, err
	}
	return l, nil
}
