package employee

import (
	"errors"
	"strings"

	employeeerrors "go-leave/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	constraintRegistryNo = "employees_pkey"
	constraintFullName   = "uq_employees_full_name"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case constraintRegistryNo:
				return employeeerrors.ErrRegistryNoAlreadyExists
			case constraintFullName:
				return employeeerrors.ErrFullNameAlreadyExists
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, constraintRegistryNo) {
		return employeeerrors.ErrRegistryNoAlreadyExists
	}
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, constraintFullName) {
		return employeeerrors.ErrFullNameAlreadyExists
	}

	return err
}
