package utils

import "math"

// Pricing constants. Shipping is free strictly above the threshold,
// otherwise a flat fee applies. Tax is GST at a fixed rate.
const (
	FreeShippingThreshold = 500.0
	FlatShippingFee       = 50.0
	TaxRate               = 0.18
)

// OrderTotals is the computed money breakdown of an order.
type OrderTotals struct {
	Subtotal float64
	Shipping float64
	Tax      float64
	Total    float64
}

// ComputeTotals derives shipping, tax and total from a subtotal.
// Tax and total are rounded to two decimals.
func ComputeTotals(subtotal float64) OrderTotals {
	shipping := FlatShippingFee
	if subtotal > FreeShippingThreshold {
		shipping = 0
	}

	tax := Round2(subtotal * TaxRate)

	return OrderTotals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    Round2(subtotal + shipping + tax),
	}
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Round1 rounds to one decimal place, used for displayed ratings.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}
