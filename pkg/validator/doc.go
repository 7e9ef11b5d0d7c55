// Package validator provides rule based validation for request payloads.
//
// Rules are plain values built from a field name and the value under test.
// Apply runs all of them and returns ValidationErrors listing every failure:
//
//	err := validator.Apply(
//		validator.ValidEmail("email", req.Email).WithMessage("Valid email is required"),
//		validator.RequiredString("name", req.Name),
//		validator.When(req.Password != "", validator.MinLenString("password", req.Password, 6)),
//	)
//	if errs := validator.ExtractValidationErrors(err); errs != nil {
//		// errs.Has("email"), errs.Get("email") ...
//	}
package validator
