// Package order models the order documents that the status automation reads.
//
// An Order is an immutable snapshot of one orders document at a point in time:
// its opaque identifier, its status label and its ordered line items. The
// automation never owns orders; it only ever writes the status and the two
// bookkeeping fields listed in the Field* constants.
//
// Key business rules:
//   - Orders must carry a non-empty identifier
//   - Status labels are open-ended; Pending, Fulfilled and Backordered are the
//     ones the automation knows about
//   - Item fulfillment statuses are read-only from the automation's perspective
package order
