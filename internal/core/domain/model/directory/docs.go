// Package directory holds the organisation records written by the seed
// command: departments, users and the per-department member lists.
package directory
