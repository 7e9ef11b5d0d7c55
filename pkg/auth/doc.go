// Package auth hashes and verifies customer passwords with bcrypt.
package auth
