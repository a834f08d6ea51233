package employeeerrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrRegistryNoAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with the same registry number already exists",
		http.StatusConflict,
	)
	ErrFullNameAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with the same full name already exists",
		http.StatusConflict,
	)
	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Role must be one of STAFF, MANAGER, HR",
		http.StatusBadRequest,
	)
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Full name or secret is incorrect",
		http.StatusUnauthorized,
	)
	ErrMissingColumns = apperror.New(
		apperror.CodeInvalidInput,
		"Roster file is missing required columns",
		http.StatusBadRequest,
	)
	ErrInvalidWorkbook = apperror.New(
		apperror.CodeInvalidInput,
		"Roster file is not a readable xlsx workbook",
		http.StatusBadRequest,
	)
	ErrMissingFile = apperror.New(
		apperror.CodeInvalidInput,
		"Roster file is required",
		http.StatusBadRequest,
	)
)
