package auth

import (
	"context"
	"errors"
	"time"

	autherrors "go-leave/internal/auth/errors"
	"go-leave/internal/employee"
	employeeerrors "go-leave/internal/employee/errors"
	"go-leave/internal/session"

	"go.uber.org/zap"
)

// Authenticator is the part of the roster login needs. employee.Service
// satisfies it.
type Authenticator interface {
	Authenticate(ctx context.Context, fullName, secret string) (employee.EmployeeResponse, error)
	GetByFullName(ctx context.Context, fullName string) (employee.EmployeeResponse, error)
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, fullName, secret string) (AuthResponse, error)
	Refresh(ctx context.Context, actor session.Actor) (AuthResponse, error)
}

type service struct {
	roster    Authenticator
	jwtSecret string
	ttl       time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(roster Authenticator, jwtSecret string, ttl time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		roster:    roster,
		jwtSecret: jwtSecret,
		ttl:       ttl,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) Login(ctx context.Context, fullName, secret string) (AuthResponse, error) {
	s.logger.Debug("login requested", zap.String("full_name", fullName))

	emp, err := s.roster.Authenticate(ctx, fullName, secret)
	if err != nil {
		if errors.Is(err, employeeerrors.ErrInvalidCredentials) {
			return AuthResponse{}, autherrors.ErrInvalidCredentials
		}
		s.logger.Error("login failed", zap.Error(err))
		return AuthResponse{}, err
	}

	resp, err := s.issue(emp.Actor())
	if err != nil {
		return AuthResponse{}, err
	}

	s.logger.Info("login success", zap.String("registry_no", emp.RegistryNo), zap.String("role", emp.Role))
	return resp, nil
}

// Refresh re-reads the roster entry so role or approver changes made since
// login take effect.
func (s *service) Refresh(ctx context.Context, actor session.Actor) (AuthResponse, error) {
	emp, err := s.roster.GetByFullName(ctx, actor.FullName)
	if err != nil {
		if errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
			return AuthResponse{}, autherrors.ErrInvalidToken
		}
		return AuthResponse{}, err
	}
	return s.issue(emp.Actor())
}

func (s *service) issue(actor session.Actor) (AuthResponse, error) {
	token, err := session.IssueToken(s.jwtSecret, actor, s.ttl, s.now())
	if err != nil {
		s.logger.Error("issue token failed", zap.Error(err))
		return AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	return AuthResponse{AccessToken: token, User: actor}, nil
}
