package analytics

import "tradeJournal/internal/domain"

// Nominal split of total fees. Trade records carry a single fee amount,
// so this is an approximation and not a measured breakdown.
const (
	TradingFeeShare = 0.8
	NetworkFeeShare = 0.2
)

// CalculateFeeBreakdown summarises fees over all trades, open or closed.
func CalculateFeeBreakdown(trades []domain.Trade) FeeBreakdown {
	var breakdown FeeBreakdown
	var totalVolume float64
	for _, trade := range sortedByTimestamp(trades) {
		breakdown.TotalFees += trade.Fees
		totalVolume += trade.Notional()
	}

	if len(trades) > 0 {
		breakdown.AverageFeePerTrade = breakdown.TotalFees / float64(len(trades))
	}
	if totalVolume > 0 {
		breakdown.FeesAsPercentOfVolume = breakdown.TotalFees / totalVolume * 100
	}
	breakdown.TradingFees = breakdown.TotalFees * TradingFeeShare
	breakdown.NetworkFees = breakdown.TotalFees * NetworkFeeShare
	return breakdown
}
