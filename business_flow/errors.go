// Package businessflow contains the core business logic and use cases for approval workflows
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Scout-related errors
	ErrScoutNotFound = errors.New("scout not found")
	ErrScoutInactive = errors.New("scout is inactive")
	ErrAdminNotFound = errors.New("admin not found")

	// Identifier allocation errors
	ErrAllocationFailed  = errors.New("identifier allocation failed")
	ErrInvalidEntityType = errors.New("invalid entity type")
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// Entity errors
	ErrPlayerNotFound     = errors.New("player not found")
	ErrReportNotFound     = errors.New("report not found")
	ErrPlayerNameRequired = errors.New("player name is required")
	ErrReportTextRequired = errors.New("report text is required")
	ErrRatingOutOfRange   = errors.New("rating must be between 1 and 10")

	// Workflow errors
	ErrEntityNotPending  = errors.New("entity is not pending review")
	ErrEntityNotApproved = errors.New("entity is not approved")

	// Change request errors
	ErrRequestNotFound         = errors.New("change request not found")
	ErrRequestAlreadyResolved  = errors.New("change request already resolved")
	ErrDuplicatePendingRequest = errors.New("a pending request already exists for this entity")
	ErrNotRequestSubmitter     = errors.New("only the original submitter may request changes")
	ErrReasonTooShort          = errors.New("request reason is too short")
	ErrInvalidRequestType      = errors.New("invalid request type")
	ErrAdminResponseRequired   = errors.New("admin response is required for rejection")

	// Notification errors
	ErrNotificationNotFound = errors.New("notification not found")

	// Filter errors
	ErrInvalidPage           = errors.New("page must be at least 1")
	ErrInvalidPageSize       = errors.New("page size must be between 1 and 100")
	ErrStartDateAfterEndDate = errors.New("start date cannot be after end date")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewBusinessErrorf(code, message string, err error, args ...any) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: fmt.Sprintf(message, args...),
		Err:     err,
	}
}

func IsScoutNotFound(err error) bool {
	return errors.Is(err, ErrScoutNotFound)
}

func IsScoutInactive(err error) bool {
	return errors.Is(err, ErrScoutInactive)
}

func IsAdminNotFound(err error) bool {
	return errors.Is(err, ErrAdminNotFound)
}

func IsAllocationFailed(err error) bool {
	return errors.Is(err, ErrAllocationFailed)
}

func IsInvalidEntityType(err error) bool {
	return errors.Is(err, ErrInvalidEntityType)
}

func IsInvalidIdentifier(err error) bool {
	return errors.Is(err, ErrInvalidIdentifier)
}

func IsPlayerNotFound(err error) bool {
	return errors.Is(err, ErrPlayerNotFound)
}

func IsReportNotFound(err error) bool {
	return errors.Is(err, ErrReportNotFound)
}

func IsPlayerNameRequired(err error) bool {
	return errors.Is(err, ErrPlayerNameRequired)
}

func IsReportTextRequired(err error) bool {
	return errors.Is(err, ErrReportTextRequired)
}

func IsRatingOutOfRange(err error) bool {
	return errors.Is(err, ErrRatingOutOfRange)
}

func IsEntityNotPending(err error) bool {
	return errors.Is(err, ErrEntityNotPending)
}

func IsEntityNotApproved(err error) bool {
	return errors.Is(err, ErrEntityNotApproved)
}

func IsRequestNotFound(err error) bool {
	return errors.Is(err, ErrRequestNotFound)
}

func IsRequestAlreadyResolved(err error) bool {
	return errors.Is(err, ErrRequestAlreadyResolved)
}

func IsDuplicatePendingRequest(err error) bool {
	return errors.Is(err, ErrDuplicatePendingRequest)
}

func IsNotRequestSubmitter(err error) bool {
	return errors.Is(err, ErrNotRequestSubmitter)
}

func IsReasonTooShort(err error) bool {
	return errors.Is(err, ErrReasonTooShort)
}

func IsInvalidRequestType(err error) bool {
	return errors.Is(err, ErrInvalidRequestType)
}

func IsAdminResponseRequired(err error) bool {
	return errors.Is(err, ErrAdminResponseRequired)
}

func IsNotificationNotFound(err error) bool {
	return errors.Is(err, ErrNotificationNotFound)
}

func IsInvalidPage(err error) bool {
	return errors.Is(err, ErrInvalidPage)
}

func IsInvalidPageSize(err error) bool {
	return errors.Is(err, ErrInvalidPageSize)
}

func IsStartDateAfterEndDate(err error) bool {
	return errors.Is(err, ErrStartDateAfterEndDate)
}
