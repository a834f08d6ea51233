package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"time"

	"go-leave/internal/auth/password"
	employeeerrors "go-leave/internal/employee/errors"
	"go-leave/internal/session"
	"go-leave/internal/shared/contextutil"
	"go-leave/internal/spreadsheet"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	RosterCacheKey = "employees:roster"
	rosterCacheTTL = time.Hour
)

const (
	SkipMissingRegistryNo = "registry number is empty"
	SkipDuplicateRegistry = "registry number already exists"
	SkipMissingFullName   = "full name is empty"
	SkipDuplicateFullName = "full name already exists"
	SkipUnknownRole       = "unknown role"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByFullName(ctx context.Context, fullName string) (EmployeeResponse, error)
	Authenticate(ctx context.Context, fullName, secret string) (EmployeeResponse, error)
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, fullName string) error
	Import(ctx context.Context, file io.Reader) (ImportResult, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	hasher password.Hasher
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, hasher password.Hasher, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	if hasher == nil {
		hasher = password.Plaintext{}
	}
	return &service{
		db:     db,
		repo:   repo,
		hasher: hasher,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested")

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, RosterCacheKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("read roster cache failed", zap.Error(err))
		}
	}

	v, err, _ := s.sf.Do(RosterCacheKey, func() (interface{}, error) {
		emps, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(emps)

		if s.rdb != nil {
			if b, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, RosterCacheKey, string(b), rosterCacheTTL).Err(); err != nil {
					s.logger.Warn("write roster cache failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

func (s *service) GetByFullName(ctx context.Context, fullName string) (EmployeeResponse, error) {
	e, err := s.repo.FindByFullName(ctx, fullName)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*e), nil
}

func (s *service) Authenticate(ctx context.Context, fullName, secret string) (EmployeeResponse, error) {
	fullName = strings.TrimSpace(fullName)
	s.logger.Debug("authenticate employee requested", zap.String("full_name", fullName))

	e, err := s.repo.FindByFullName(ctx, fullName)
	if err != nil {
		mapped := mapRepositoryError(err)
		if errors.Is(mapped, employeeerrors.ErrEmployeeNotFound) {
			s.logger.Warn("authenticate employee unknown name", zap.String("full_name", fullName))
			return EmployeeResponse{}, employeeerrors.ErrInvalidCredentials
		}
		s.logger.Error("authenticate employee lookup failed", zap.Error(err))
		return EmployeeResponse{}, mapped
	}

	if !s.hasher.Verify(e.Secret, secret) {
		s.logger.Warn("authenticate employee wrong secret", zap.String("full_name", fullName))
		return EmployeeResponse{}, employeeerrors.ErrInvalidCredentials
	}

	return mapToResponse(*e), nil
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("registry_no", req.RegistryNo),
	)

	role, err := session.ParseRole(req.Role)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidRole
	}

	hashed, err := s.hasher.Hash(req.Secret)
	if err != nil {
		s.logger.Error("create employee hash secret failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.ExistsByRegistryNo(ctx, req.RegistryNo)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if exists {
		return EmployeeResponse{}, employeeerrors.ErrRegistryNoAlreadyExists
	}

	exists, err = qtx.ExistsByFullName(ctx, req.FullName)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if exists {
		return EmployeeResponse{}, employeeerrors.ErrFullNameAlreadyExists
	}

	emp := &Employee{
		RegistryNo:    strings.TrimSpace(req.RegistryNo),
		FullName:      strings.TrimSpace(req.FullName),
		Secret:        hashed,
		JobTitle:      req.JobTitle,
		Department:    req.Department,
		Email:         req.Email,
		ApproverEmail: req.ApproverEmail,
		Role:          string(role),
		Phone:         req.Phone,
	}
	if err := qtx.Create(ctx, emp); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateRoster(ctx)
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("registry_no", emp.RegistryNo),
	)

	return mapToResponse(*emp), nil
}

func (s *service) Delete(ctx context.Context, fullName string) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete employee requested", zap.String("request_id", rid), zap.String("full_name", fullName))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).DeleteByFullName(ctx, fullName); err != nil {
		s.logger.Warn("delete employee failed", zap.String("full_name", fullName), zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	s.invalidateRoster(ctx)
	s.logger.Info("delete employee success", zap.String("request_id", rid), zap.String("full_name", fullName))
	return nil
}

// Import inserts every new row of the roster workbook in one transaction.
// Rows that would collide with the store or with an earlier row of the same
// file are reported as skipped and never update existing employees.
func (s *service) Import(ctx context.Context, file io.Reader) (ImportResult, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("import roster requested", zap.String("request_id", rid))

	rows, err := spreadsheet.ParseRoster(file)
	if err != nil {
		var missing *spreadsheet.MissingColumnsError
		switch {
		case errors.As(err, &missing):
			s.logger.Warn("import roster missing columns", zap.Strings("columns", missing.Columns))
			return ImportResult{}, employeeerrors.ErrMissingColumns.WithDetails(missing.Columns)
		case errors.Is(err, spreadsheet.ErrUnreadableWorkbook):
			s.logger.Warn("import roster unreadable workbook", zap.Error(err))
			return ImportResult{}, employeeerrors.ErrInvalidWorkbook
		}
		return ImportResult{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("import roster begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return ImportResult{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	result := ImportResult{Skipped: []SkippedRow{}}
	seenRegistry := make(map[string]struct{}, len(rows))
	seenName := make(map[string]struct{}, len(rows))

	for _, row := range rows {
		skip := func(reason string) {
			result.Skipped = append(result.Skipped, SkippedRow{Row: row.Row, RegistryNo: row.RegistryNo, Reason: reason})
		}

		if row.RegistryNo == "" {
			skip(SkipMissingRegistryNo)
			continue
		}
		if _, dup := seenRegistry[row.RegistryNo]; dup {
			skip(SkipDuplicateRegistry)
			continue
		}
		exists, err := qtx.ExistsByRegistryNo(ctx, row.RegistryNo)
		if err != nil {
			s.logger.Error("import roster lookup failed", zap.Int("row", row.Row), zap.Error(err))
			return ImportResult{}, err
		}
		if exists {
			seenRegistry[row.RegistryNo] = struct{}{}
			skip(SkipDuplicateRegistry)
			continue
		}

		role, err := session.ParseRole(row.Role)
		if err != nil {
			skip(SkipUnknownRole)
			continue
		}

		if row.FullName == "" {
			skip(SkipMissingFullName)
			continue
		}
		if _, dup := seenName[row.FullName]; dup {
			skip(SkipDuplicateFullName)
			continue
		}
		exists, err = qtx.ExistsByFullName(ctx, row.FullName)
		if err != nil {
			s.logger.Error("import roster lookup failed", zap.Int("row", row.Row), zap.Error(err))
			return ImportResult{}, err
		}
		if exists {
			skip(SkipDuplicateFullName)
			continue
		}

		hashed, err := s.hasher.Hash(row.Secret)
		if err != nil {
			return ImportResult{}, err
		}

		if err := qtx.Create(ctx, &Employee{
			RegistryNo:    row.RegistryNo,
			FullName:      row.FullName,
			Secret:        hashed,
			JobTitle:      row.JobTitle,
			Department:    row.Department,
			Email:         row.Email,
			ApproverEmail: row.ApproverEmail,
			Role:          string(role),
			Phone:         row.Phone,
		}); err != nil {
			s.logger.Error("import roster persist failed", zap.Int("row", row.Row), zap.Error(err))
			return ImportResult{}, mapRepositoryError(err)
		}

		seenRegistry[row.RegistryNo] = struct{}{}
		seenName[row.FullName] = struct{}{}
		result.Inserted++
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return ImportResult{}, err
	}

	if result.Inserted > 0 {
		s.invalidateRoster(ctx)
	}
	s.logger.Info("import roster success",
		zap.String("request_id", rid),
		zap.Int("inserted", result.Inserted),
		zap.Int("skipped", len(result.Skipped)),
	)

	return result, nil
}

func (s *service) invalidateRoster(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, RosterCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate roster cache",
			zap.Error(err),
			zap.String("key", RosterCacheKey),
		)
	}
}
