package order

// Status is an order status label. The set is open-ended: other parts of the
// system may use labels the automation has no rule for.
type Status string

const (
	Pending     Status = "pending"
	Fulfilled   Status = "fulfilled"
	Backordered Status = "backordered"
)

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// IsEmpty reports whether no status label is set.
func (s Status) IsEmpty() bool {
	return s == ""
}

// FulfillmentStatus is the per-item fulfillment label.
type FulfillmentStatus string

const (
	ItemFulfilled   FulfillmentStatus = "fulfilled"
	ItemBackordered FulfillmentStatus = "backordered"
)

// String implements fmt.Stringer.
func (s FulfillmentStatus) String() string {
	return string(s)
}
