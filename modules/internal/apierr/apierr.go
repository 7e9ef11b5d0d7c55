// Package apierr maps domain errors to handler.HTTPError values.
package apierr

import (
	"errors"

	"github.com/dmitrymomot/intellicall/handler"
	"github.com/dmitrymomot/intellicall/svc/customer"
)

// FromCustomer maps customer service errors to HTTP errors. Errors it does not
// know are returned unchanged and end up as 500 responses.
func FromCustomer(err error) error {
	switch {
	case errors.Is(err, customer.ErrNotFound):
		return handler.ErrNotFound.WithMessage(customer.MsgNotFound)
	case errors.Is(err, customer.ErrDuplicateEmail):
		return handler.ErrConflict.WithMessage(customer.MsgDuplicateEmail)
	case errors.Is(err, customer.ErrInvalidCredentials):
		return handler.ErrUnauthorized.WithMessage(customer.MsgInvalidCredentials)
	case errors.Is(err, customer.ErrPasswordRequired):
		return handler.ErrUnauthorized.WithMessage(customer.MsgPasswordRequired)
	}
	return err
}
