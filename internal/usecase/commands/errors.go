package commands

import (
	"errors"

	"cabinet-keeper/internal/pkg/errs"
)

var (
	ErrCabinetNotFound      = errs.New("cabinet not found")
	ErrCabinetAlreadyRented = errs.New("cabinet already rented")
	ErrCabinetNotRented     = errs.New("cabinet is not rented")
	ErrCabinetBroken        = errs.New("cabinet is broken")
	ErrNotCabinetHolder     = errs.New("cabinet is held by another user")
	ErrUserNotFound         = errs.New("user not found")
	ErrUserHasRental        = errs.New("user already has an active rental")
	ErrLockBusy             = errs.New("cabinet lock is busy")
	ErrRentInProgress       = errs.New("rent already in progress")
	ErrReturnInProgress     = errs.New("return failed, rent in progress")
	ErrRentFailed           = errs.New("rent failed")
	ErrReturnFailed         = errs.New("return failed")
	ErrBookmarkExists       = errs.New("bookmark already exists")
	ErrBookmarkNotFound     = errs.New("bookmark not found")
	ErrInvalidStatus        = errs.New("invalid cabinet status")
)

// Stable machine-readable codes. They cross the async result correlator as
// plain strings and come back as the same typed errors on the requesting side.
const (
	CodeCabinetNotFound      = "cabinet_not_found"
	CodeCabinetAlreadyRented = "cabinet_already_rented"
	CodeCabinetNotRented     = "cabinet_not_rented"
	CodeCabinetBroken        = "cabinet_broken"
	CodeNotCabinetHolder     = "not_cabinet_holder"
	CodeUserNotFound         = "user_not_found"
	CodeUserHasRental        = "user_has_rental"
	CodeLockBusy             = "lock_busy"
	CodeRentInProgress       = "rent_in_progress"
	CodeReturnInProgress     = "return_in_progress"
	CodeRentFailed           = "rent_failed"
	CodeReturnFailed         = "return_failed"
	CodeBookmarkExists       = "bookmark_exists"
	CodeBookmarkNotFound     = "bookmark_not_found"
	CodeInvalidStatus        = "invalid_status"
)

var errByCode = map[string]error{
	CodeCabinetNotFound:      ErrCabinetNotFound,
	CodeCabinetAlreadyRented: ErrCabinetAlreadyRented,
	CodeCabinetNotRented:     ErrCabinetNotRented,
	CodeCabinetBroken:        ErrCabinetBroken,
	CodeNotCabinetHolder:     ErrNotCabinetHolder,
	CodeUserNotFound:         ErrUserNotFound,
	CodeUserHasRental:        ErrUserHasRental,
	CodeLockBusy:             ErrLockBusy,
	CodeRentInProgress:       ErrRentInProgress,
	CodeReturnInProgress:     ErrReturnInProgress,
	CodeRentFailed:           ErrRentFailed,
	CodeReturnFailed:         ErrReturnFailed,
	CodeBookmarkExists:       ErrBookmarkExists,
	CodeBookmarkNotFound:     ErrBookmarkNotFound,
	CodeInvalidStatus:        ErrInvalidStatus,
}

var codeByErr = []struct {
	err  error
	code string
}{
	{ErrCabinetNotFound, CodeCabinetNotFound},
	{ErrCabinetAlreadyRented, CodeCabinetAlreadyRented},
	{ErrCabinetNotRented, CodeCabinetNotRented},
	{ErrCabinetBroken, CodeCabinetBroken},
	{ErrNotCabinetHolder, CodeNotCabinetHolder},
	{ErrUserNotFound, CodeUserNotFound},
	{ErrUserHasRental, CodeUserHasRental},
	{ErrLockBusy, CodeLockBusy},
	{ErrRentInProgress, CodeRentInProgress},
	{ErrReturnInProgress, CodeReturnInProgress},
	{ErrBookmarkExists, CodeBookmarkExists},
	{ErrBookmarkNotFound, CodeBookmarkNotFound},
	{ErrInvalidStatus, CodeInvalidStatus},
	{ErrReturnFailed, CodeReturnFailed},
	{ErrRentFailed, CodeRentFailed},
}

// CodeForError maps a typed error (possibly wrapped) onto its stable code.
func CodeForError(err error) string {
	for _, entry := range codeByErr {
		if errors.Is(err, entry.err) {
			return entry.code
		}
	}
	return CodeRentFailed
}

// ErrorForCode reconstructs the typed error recorded by an execution path, so
// the synchronous caller sees the same taxonomy a direct call would produce.
func ErrorForCode(code string) error {
	if err, ok := errByCode[code]; ok {
		return err
	}
	return ErrRentFailed
}
