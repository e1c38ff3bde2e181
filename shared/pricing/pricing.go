// Package pricing computes cleaning prices from home size and selected add-ons.
package pricing

import (
	"math"
	"strings"
)

const (
	BasePrice          = 150.0
	ExtraBedroomPrice  = 35.0
	ExtraBathroomPrice = 25.0

	MinRooms = 1
	MaxRooms = 9
)

const (
	AddOnWindowCleaning     = "windowCleaning"
	AddOnOvenCleaning       = "ovenCleaning"
	AddOnCeilingFanCleaning = "ceilingFanCleaning"
)

var addOnPrices = map[string]float64{
	AddOnWindowCleaning: 15,
	AddOnOvenCleaning:   15,
}

const ceilingFanUnitPrice = 5.0

// ClampRooms keeps a room count inside the supported range.
func ClampRooms(count int) int {
	return min(max(count, MinRooms), MaxRooms)
}

// PriceOf returns the base cleaning price for a home.
func PriceOf(bedrooms, bathrooms int) float64 {
	bedrooms = ClampRooms(bedrooms)
	bathrooms = ClampRooms(bathrooms)

	return BasePrice +
		ExtraBedroomPrice*float64(bedrooms-1) +
		ExtraBathroomPrice*float64(bathrooms-1)
}

// AddOnTotal sums the price of the selected add-ons. Unknown names cost nothing.
func AddOnTotal(addOns []string, ceilingFanCount int) float64 {
	total := 0.0
	seen := map[string]bool{}

	for _, addOn := range addOns {
		addOn = strings.TrimSpace(addOn)
		if seen[addOn] {
			continue
		}

		seen[addOn] = true

		if addOn == AddOnCeilingFanCleaning {
			total += ceilingFanUnitPrice * float64(max(ceilingFanCount, 0))

			continue
		}

		total += addOnPrices[addOn]
	}

	return total
}

// ToMinorUnits converts a currency amount into cents, rounding half away from zero.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromMinorUnits converts cents back into a currency amount.
func FromMinorUnits(amount int64) float64 {
	return float64(amount) / 100
}
