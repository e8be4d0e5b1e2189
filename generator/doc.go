// Package generator implements the make:* commands. A Generator reads the
// stub of its Kind, replaces the kind's token with the identifier derived
// from the requested artifact name and writes the result below the kind's
// category directory.
//
// ParseRequest is the validation step: it runs before any file access, and
// every rejection wraps ErrInvalidInput.
//
// Example:
//
//	name=auth/Example.js  ->  MIDDLEWARE_NAME=Example
//	                      ->  middleware/auth/Example.js
package generator
