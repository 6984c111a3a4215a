// Package errs provides the typed errors shared by the orderflow packages.
//
// Each error type follows the same pattern:
//   - a sentinel error variable (e.g. ErrValueIsRequired) for errors.Is checks
//   - a struct carrying the offending parameter and an optional cause
//   - constructors with and without cause
//   - Unwrap returning the sentinel
package errs
