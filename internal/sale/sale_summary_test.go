package sale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_Empty(t *testing.T) {
	sum := Summarize(nil)
	assert.Equal(t, Summary{}, sum)
	assert.Equal(t, 0.0, sum.Total())
}

func TestSummarize_SumsNotAverages(t *testing.T) {
	sum := Summarize([]Sale{
		{Coin: 10, Hopper: 1.25, Soap: 2, Vending: 0.5, DropOffAmount1: 3, DropOffAmount2: 0},
		{Coin: 5.5, Hopper: 1.25, Soap: 0, Vending: 0.5, DropOffAmount1: 0, DropOffAmount2: 4},
	})

	assert.Equal(t, 15.5, sum.CoinTotal)
	assert.Equal(t, 2.5, sum.HopperTotal)
	assert.Equal(t, 2.0, sum.SoapTotal)
	assert.Equal(t, 1.0, sum.VendingTotal)
	assert.Equal(t, 3.0, sum.DropOffAmount1Total)
	assert.Equal(t, 4.0, sum.DropOffAmount2Total)
	assert.Equal(t, 28.0, sum.Total())
}

func TestSummarize_RoundsToTwoDecimals(t *testing.T) {
	rows := make([]Sale, 3)
	for i := range rows {
		rows[i].Coin = 0.1 // 0.1*3 is not representable exactly
	}
	sum := Summarize(rows)
	assert.Equal(t, 0.3, sum.CoinTotal)
}
