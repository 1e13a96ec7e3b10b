package analytics

import (
	"math"

	"github.com/moznion/go-optional"

	"tradeJournal/internal/domain"
)

// TradingDaysPerYear is the annualisation factor applied to per-trade returns.
const TradingDaysPerYear = 252

// CalculateSharpeRatio returns the annualised Sharpe ratio of per-trade
// PnL, treating each trade as one trading day's return. The ratio is
// absent for fewer than two trades and zero when PnL never varies.
func CalculateSharpeRatio(trades []domain.Trade) optional.Option[float64] {
	if len(trades) < 2 {
		return optional.None[float64]()
	}
	trades = sortedByTimestamp(trades)

	var sum float64
	constant := true
	for _, trade := range trades {
		sum += trade.PnL
		if trade.PnL != trades[0].PnL {
			constant = false
		}
	}
	// Identical values have zero deviation; skip the rounding of the mean.
	if constant {
		return optional.Some(0.0)
	}
	mean := sum / float64(len(trades))

	var variance float64
	for _, trade := range trades {
		diff := trade.PnL - mean
		variance += diff * diff
	}
	stdDev := math.Sqrt(variance / float64(len(trades)))

	if stdDev == 0 {
		return optional.Some(0.0)
	}
	return optional.Some(mean / stdDev * math.Sqrt(TradingDaysPerYear))
}
