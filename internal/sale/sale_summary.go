package sale

import "github.com/creesler/laundry-pos-backend/internal/shared/numeric"

// Summary holds the six field totals over a set of sales. These are sums,
// never averages.
type Summary struct {
	CoinTotal           float64
	HopperTotal         float64
	SoapTotal           float64
	VendingTotal        float64
	DropOffAmount1Total float64
	DropOffAmount2Total float64
}

// Summarize sums each amount field across the given sales and rounds every
// total to two decimals. An empty input yields all zeros.
func Summarize(sales []Sale) Summary {
	var s Summary
	for _, row := range sales {
		s.CoinTotal += row.Coin
		s.HopperTotal += row.Hopper
		s.SoapTotal += row.Soap
		s.VendingTotal += row.Vending
		s.DropOffAmount1Total += row.DropOffAmount1
		s.DropOffAmount2Total += row.DropOffAmount2
	}

	s.CoinTotal = numeric.Round2(s.CoinTotal)
	s.HopperTotal = numeric.Round2(s.HopperTotal)
	s.SoapTotal = numeric.Round2(s.SoapTotal)
	s.VendingTotal = numeric.Round2(s.VendingTotal)
	s.DropOffAmount1Total = numeric.Round2(s.DropOffAmount1Total)
	s.DropOffAmount2Total = numeric.Round2(s.DropOffAmount2Total)
	return s
}

// Total is the display grand total, the sum of the six field totals.
func (s Summary) Total() float64 {
	return numeric.Round2(s.CoinTotal +
		s.HopperTotal +
		s.SoapTotal +
		s.VendingTotal +
		s.DropOffAmount1Total +
		s.DropOffAmount2Total)
}
