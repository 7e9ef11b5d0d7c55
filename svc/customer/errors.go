package customer

import "errors"

var (
	ErrNotFound           = errors.New("customer not found")
	ErrDuplicateEmail     = errors.New("customer with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordRequired   = errors.New("password required")
)

// User-facing messages.
const (
	MsgNotFound           = "Customer not found"
	MsgDuplicateEmail     = "Customer with this email already exists"
	MsgInvalidCredentials = "Invalid credentials"
	MsgPasswordRequired   = "Password required"

	MsgEmailInvalid       = "Valid email is required"
	MsgNameRequired       = "Name is required"
	MsgNameTooLong        = "Name must be at most 255 characters"
	MsgPasswordTooShort   = "Password must be at least 6 characters"
	MsgPasswordTooLong    = "Password must be at most 72 bytes"
	MsgCustomerIDInvalid  = "Valid customer ID required"
	MsgTextContentInvalid = "Text content must be a string"
)
