// Package templating renders stub text by substituting placeholder tokens
// from a replacement mapping. Tokens are either bare literals (the default,
// e.g. MIDDLEWARE_NAME) or delimited by configurable tags, in which case
// valyala/fasttemplate does the substitution.
//
// Tokens that have no entry in the mapping are left untouched in both modes.
// ParseVars and LoadVarFiles build extra mappings from NAME=VALUE flags and
// "KEY VALUE" variable files.
package templating
