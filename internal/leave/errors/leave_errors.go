package leaveerrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"unknown leave type",
		http.StatusBadRequest,
	)
	ErrDuplicateRequest = apperror.New(
		apperror.CodeConflict,
		"Bu tarihlerde zaten bir izin talebiniz var.",
		http.StatusConflict,
	)
	ErrSpanTooLong = apperror.New(
		apperror.CodeInvalidInput,
		"İzin süresi 1 yıldan uzun olamaz.",
		http.StatusBadRequest,
	)
	ErrInvertedRange = apperror.New(
		apperror.CodeInvalidInput,
		"Bitiş tarihi başlangıç tarihinden önce olamaz.",
		http.StatusBadRequest,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave not found",
		http.StatusNotFound,
	)
	ErrNotEditable = apperror.New(
		apperror.CodeInvalidState,
		"only pending leave requests can be edited",
		http.StatusBadRequest,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid leave status transition",
		http.StatusBadRequest,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to perform this leave operation",
		http.StatusForbidden,
	)
	ErrSubmissionInProgress = apperror.New(
		apperror.CodeConflict,
		"a submission for the same dates is already in progress",
		http.StatusConflict,
	)
	ErrDocumentUnavailable = apperror.New(
		apperror.CodeInvalidState,
		"documents are only available for approved leave requests",
		http.StatusBadRequest,
	)
)
