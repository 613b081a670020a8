package conversion

import (
	"errors"
	"fmt"
)

// ErrUnresolvable matches every UnresolvableError via errors.Is.
var ErrUnresolvable = errors.New("conversion unresolvable")

// Reason tells why a conversion could not be resolved
type Reason int

const (
	// ReasonNotFound means a referenced unit does not exist
	ReasonNotFound Reason = iota + 1
	// ReasonCrossType means the units belong to different unit types
	ReasonCrossType
	// ReasonNoRule means no stored rule connects the units
	ReasonNoRule
	// ReasonInvalidFactor means a factor of zero prevented the division
	ReasonInvalidFactor
)

func (r Reason) String() string {
	switch r {
	case ReasonNotFound:
		return "not_found"
	case ReasonCrossType:
		return "cross_type"
	case ReasonNoRule:
		return "no_rule"
	case ReasonInvalidFactor:
		return "invalid_factor"
	default:
		return "unknown"
	}
}

// UnresolvableError is returned when no conversion path exists. FoodItemID
// is zero for generic lookups.
type UnresolvableError struct {
	FoodItemID uint
	From       uint
	To         uint
	Reason     Reason
}

func (e *UnresolvableError) Error() string {
	if e.FoodItemID != 0 {
		return fmt.Sprintf("cannot convert unit %d to unit %d for food item %d: %s", e.From, e.To, e.FoodItemID, e.Reason)
	}
	return fmt.Sprintf("cannot convert unit %d to unit %d: %s", e.From, e.To, e.Reason)
}

func (e *UnresolvableError) Is(target error) bool {
	return target == ErrUnresolvable
}

func unresolvable(from, to uint, reason Reason) error {
	return &UnresolvableError{From: from, To: to, Reason: reason}
}

// IsUnresolvable reports whether err signals a missing conversion path
// rather than a storage failure.
func IsUnresolvable(err error) bool {
	return errors.Is(err, ErrUnresolvable)
}

// ReasonOf extracts the reason from an unresolvable error.
func ReasonOf(err error) (Reason, bool) {
	var ue *UnresolvableError
	if errors.As(err, &ue) {
		return ue.Reason, true
	}
	return 0, false
}
