// Package errs provides the typed errors shared by every layer of ParcelMyBox.
//
// Each error type follows the same pattern:
//   - a sentinel variable (ErrValueIsRequired, ErrObjectNotFound, ...) usable with errors.Is
//   - a struct carrying the offending parameter and an optional cause
//   - New...Error and New...ErrorWithCause constructors
//   - Unwrap returning the sentinel
//
// The HTTP adapter maps the sentinels to status codes, so domain code never
// needs to know about transport concerns.
package errs
