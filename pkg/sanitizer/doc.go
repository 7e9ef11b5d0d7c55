// Package sanitizer normalizes user input before validation and storage.
//
// Transformations are plain func(T) T values and can be chained:
//
//	name := sanitizer.Apply(req.Name, sanitizer.Trim, sanitizer.SingleLine)
//	email := sanitizer.NormalizeEmail(req.Email)
package sanitizer
