package delivery

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery.
//
// The lifecycle is strictly ordered:
//
//	Draft ──> WaitingForCourier ──> PickedUp ──> Fulfilled
//
// No transition skips a state and no transition reverses. Each transition is
// guarded individually by the Delivery aggregate rather than through a
// generic transition table, because each guard also validates a distinct
// precondition (presence of preparation details, presence of a courier).
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Draft is the initial status: the delivery exists but its preparation
	// details may still be edited and it is not yet visible to couriers.
	Draft

	// WaitingForCourier means the delivery has been placed and is awaiting
	// courier assignment. During this window the delivery has no courier;
	// that absence is a designed state, not an error.
	WaitingForCourier

	// PickedUp means a courier has collected the delivery.
	PickedUp

	// Fulfilled means the delivery reached its recipient. Final state.
	Fulfilled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:           "Unknown",
		Draft:             "Draft",
		WaitingForCourier: "WaitingForCourier",
		PickedUp:          "PickedUp",
		Fulfilled:         "Fulfilled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Draft:             "Draft",
		WaitingForCourier: "WaitingForCourier",
		PickedUp:          "PickedUp",
		Fulfilled:         "Fulfilled",
	}
}

// Validate checks that the Status is one of the defined lifecycle states.
// Used when reconstructing deliveries from persistence or event payloads.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Safe to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses a status name as stored in the database.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}
