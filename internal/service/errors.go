package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/societyledger/internal/auth"
	"github.com/mmynk/societyledger/internal/calculator"
	"github.com/mmynk/societyledger/internal/models"
	"github.com/mmynk/societyledger/internal/storage"
)

var (
	ErrIDRequired           = errors.New("id is required")
	ErrMalformedAmount      = errors.New("amount is not a number")
	ErrConfirmationRequired = errors.New("confirmation required")
)

// validationErrors are form-level mistakes the caller can fix.
var validationErrors = []error{
	ErrIDRequired,
	ErrMalformedAmount,
	ErrConfirmationRequired,
	models.ErrEmptyFlatNo,
	models.ErrEmptyOwnerName,
	models.ErrNegativeMaintAmount,
	models.ErrInvalidStatus,
	models.ErrEmptySheetName,
	models.ErrEmptyDate,
	models.ErrInvalidAmount,
	models.ErrEmptySheetID,
	models.ErrEmptyDescription,
	models.ErrEmptyMode,
	models.ErrEmptyMonthName,
	models.ErrNegativeTotal,
	auth.ErrWeakPassword,
}

// toConnectError maps a domain error to its Connect code.
func toConnectError(err error) *connect.Error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}
	return connect.NewError(codeOf(err), err)
}

func codeOf(err error) connect.Code {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return connect.CodeInvalidArgument
		}
	}

	switch {
	case errors.Is(err, calculator.ErrDuplicatePayment), errors.Is(err, storage.ErrDuplicate):
		return connect.CodeAlreadyExists
	case errors.Is(err, storage.ErrNotFound):
		return connect.CodeNotFound
	case errors.Is(err, models.ErrIllegalTransition), errors.Is(err, models.ErrSheetNotActive):
		return connect.CodeFailedPrecondition
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		return connect.CodeUnauthenticated
	case errors.Is(err, context.Canceled):
		return connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return connect.CodeDeadlineExceeded
	}
	return connect.CodeInternal
}

// parseAmount reads a form amount. A blank field is zero; the model's
// Validate decides whether zero is allowed.
func parseAmount(field, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := models.ParseAmount(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s %q", ErrMalformedAmount, field, s)
	}
	return d, nil
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrIDRequired
	}
	return nil
}
