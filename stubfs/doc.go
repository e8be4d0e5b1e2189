// Package stubfs is the file access layer of the generator. It reads stub
// resources, either from a stubs directory on disk or from the stubs
// embedded in the binary, and writes rendered artifacts below a project
// directory.
//
// Writes refuse to overwrite existing files unless forced and go through
// a temporary file renamed into place, so a failed write never leaves a
// partial artifact behind.
package stubfs
