// Package audit defines the append-only trail the order status automation
// leaves behind. Every attempted action (a status change, a notification
// outcome or a failed automation run) is recorded as exactly one Entry.
package audit
