package entity

// Availability is the tri-state result of probing one candidate on the
// storefront.
type Availability int

const (
	// AvailabilityNotFound covers both "no such card" and any fault while
	// looking: an unprobeable candidate is treated as absent, never as an
	// error.
	AvailabilityNotFound Availability = iota
	AvailabilitySoldOut
	AvailabilityAvailable
)

func (a Availability) String() string {
	switch a {
	case AvailabilityAvailable:
		return "available"
	case AvailabilitySoldOut:
		return "sold_out"
	case AvailabilityNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
