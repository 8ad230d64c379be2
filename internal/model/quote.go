package model

import "math"

// Booking status of a quote.
const (
	QuoteConfirmed = "CONFIRMED" // Every item was packed
	QuotePartial   = "PARTIAL"   // At least one item was left unpacked
)

// cm3PerM3 converts cubic centimetres to cubic metres.
const cm3PerM3 = 1_000_000.0

// QuoteRates holds the storage pricing parameters.
type QuoteRates struct {
	PricePerM3    float64 `json:"price_per_m3"`
	MinimumCharge float64 `json:"minimum_charge"`
}

func DefaultQuoteRates() QuoteRates {
	return QuoteRates{
		PricePerM3:    50000,
		MinimumCharge: 10000,
	}
}

// StorageQuote is the price estimate for storing the packed items.
type StorageQuote struct {
	PackedVolumeM3 float64 `json:"packed_volume_m3"`
	Price          float64 `json:"price"`
	Status         string  `json:"status"`
	PricePerM3     float64 `json:"price_per_m3"`
	MinimumCharge  float64 `json:"minimum_charge"`
}

// CalculateStorageQuote prices the placed volume of a result. Dimensions are
// taken to be centimetres. The volume is rounded to 4 decimal places and the
// price to a whole unit; the minimum charge always applies.
func CalculateStorageQuote(result PackingResult, rates QuoteRates) StorageQuote {
	var packed float64
	for _, b := range result.PackedBins {
		packed += b.UsedVolume()
	}
	m3 := packed / cm3PerM3

	price := math.Max(m3*rates.PricePerM3, rates.MinimumCharge)

	status := QuoteConfirmed
	if len(result.UnpackedItems) > 0 {
		status = QuotePartial
	}

	return StorageQuote{
		PackedVolumeM3: math.Round(m3*10000) / 10000,
		Price:          math.Round(price),
		Status:         status,
		PricePerM3:     rates.PricePerM3,
		MinimumCharge:  rates.MinimumCharge,
	}
}
