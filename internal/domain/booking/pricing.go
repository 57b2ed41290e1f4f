package booking

import "fmt"

// PricingStrategy defines the interface for calculating the price of a stay.
type PricingStrategy interface {
	// Calculate returns the total price in minor units for the given parameters.
	Calculate(params PricingParams) (int64, error)
}

// PricingParams holds the inputs for price calculation.
type PricingParams struct {
	NightlyRate     int64
	Nights          int
	Offer           bool
	DiscountPercent int
}

// StandardPricingStrategy charges the nightly rate per night, minus the room's
// discount while it is on offer.
type StandardPricingStrategy struct{}

// NewStandardPricingStrategy creates a new StandardPricingStrategy.
func NewStandardPricingStrategy() *StandardPricingStrategy {
	return &StandardPricingStrategy{}
}

// Calculate computes the total price of the stay.
func (s *StandardPricingStrategy) Calculate(params PricingParams) (int64, error) {
	if params.NightlyRate < 0 {
		return 0, fmt.Errorf("nightly rate cannot be negative")
	}
	if params.Nights < 1 {
		return 0, fmt.Errorf("a stay lasts at least one night")
	}

	total := params.NightlyRate * int64(params.Nights)
	if params.Offer {
		total -= total * int64(clampPercent(params.DiscountPercent)) / 100
	}
	return total, nil
}

func clampPercent(p int) int {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}
