package bar

// Price returns the price of the instrument at leg index i
func (b *Bar) Price(i int) float64 {
	if i < 0 || i >= len(b.LegPrices) {
		return 0
	}
	return b.LegPrices[i]
}

// Prices returns the price of every basket leg at this timestamp.
// Callers must not modify the returned slice
func (b *Bar) Prices() []float64 {
	return b.LegPrices
}

// SpreadValue returns the spread value at this timestamp
func (b *Bar) SpreadValue() float64 {
	return b.Spread
}

// HedgeRatio returns the hedge weights used to form the spread at this
// timestamp. Callers must not modify the returned slice
func (b *Bar) HedgeRatio() []float64 {
	return b.Weights
}
