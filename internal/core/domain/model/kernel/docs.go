// Package kernel holds the small value types shared by every orderflow
// domain package: generated identifiers and the clock used to stamp
// automation and audit records.
package kernel
