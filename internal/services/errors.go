package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrExternalService = errors.New("external service error")
	ErrValidation      = errors.New("validation error")
	ErrConfiguration   = errors.New("configuration error")
	ErrNotFound        = errors.New("not found")
	ErrTimeout         = errors.New("timeout")
	ErrTransient       = errors.New("transient failure")
	// ErrBudgetExhausted signals the spend ceiling has been reached. Hitting the
	// ceiling is expected operation: the batch runner stops cleanly and reports
	// remaining budget rather than treating it as a failure.
	ErrBudgetExhausted = errors.New("budget exhausted")
)

// Wrap builds an error message that includes job context while tagging it with
// the provided marker for later classification. The marker should be one of
// the exported sentinel errors above.
func Wrap(marker error, job, operation, message string, err error) error {
	detail := buildDetail(job, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether an error should abort the whole batch instead of
// skipping the current row.
func IsFatal(err error) bool {
	return errors.Is(err, ErrConfiguration) || errors.Is(err, ErrValidation)
}

func buildDetail(job, operation, message string) string {
	parts := make([]string, 0, 3)
	if job = strings.TrimSpace(job); job != "" {
		parts = append(parts, job)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
