package analytics

import (
	"math"

	"tradeJournal/internal/domain"
)

// CalculatePortfolioMetrics computes portfolio statistics over the
// completed trades in the given set. Open trades are ignored.
func CalculatePortfolioMetrics(trades []domain.Trade) PortfolioMetrics {
	completed := sortedByTimestamp(completedTrades(trades))
	if len(completed) == 0 {
		return EmptyMetrics()
	}

	var (
		metrics               PortfolioMetrics
		grossProfit           float64
		grossLoss             float64
		totalDuration         float64
		longCount, shortCount int
	)
	metrics.TradeCount = len(completed)

	for _, trade := range completed {
		metrics.TotalPnL += trade.PnL
		metrics.TotalVolume += trade.Notional()
		metrics.TotalFees += trade.Fees
		totalDuration += trade.Duration

		switch trade.Side {
		case domain.SideLong:
			longCount++
		case domain.SideShort:
			shortCount++
		}

		switch {
		case trade.PnL > 0:
			if metrics.WinningTrades == 0 || trade.PnL > metrics.LargestGain {
				metrics.LargestGain = trade.PnL
			}
			metrics.WinningTrades++
			grossProfit += trade.PnL
		case trade.PnL < 0:
			if metrics.LosingTrades == 0 || trade.PnL < metrics.LargestLoss {
				metrics.LargestLoss = trade.PnL
			}
			metrics.LosingTrades++
			grossLoss += math.Abs(trade.PnL)
		}
	}

	metrics.WinRate = percentOf(metrics.WinningTrades, metrics.TradeCount)
	metrics.AverageTradeDuration = totalDuration / float64(metrics.TradeCount)

	if shortCount > 0 {
		metrics.LongShortRatio = float64(longCount) / float64(shortCount)
	} else {
		metrics.LongShortRatio = float64(longCount)
	}

	if metrics.WinningTrades > 0 {
		metrics.AverageWin = grossProfit / float64(metrics.WinningTrades)
	}
	if metrics.LosingTrades > 0 {
		metrics.AverageLoss = grossLoss / float64(metrics.LosingTrades)
	}

	if grossLoss > 0 {
		metrics.ProfitFactor = grossProfit / grossLoss
	} else {
		metrics.ProfitFactor = grossProfit
	}

	if metrics.AverageLoss > 0 {
		metrics.AverageRiskRewardRatio = metrics.AverageWin / metrics.AverageLoss
	}

	drawdown := analyzeDrawdown(completed)
	metrics.MaxDrawdown = drawdown.max
	metrics.MaxDrawdownDuration = drawdown.duration
	metrics.SharpeRatio = CalculateSharpeRatio(completed)

	streaks := CalculateStreaks(completed)
	metrics.ConsecutiveWins = streaks.ConsecutiveWins
	metrics.ConsecutiveLosses = streaks.ConsecutiveLosses

	return metrics
}

// EmptyMetrics returns the metrics reported when there are no completed
// trades: every number is zero and every optional statistic is absent.
func EmptyMetrics() PortfolioMetrics {
	return PortfolioMetrics{}
}

// Analyze computes every analytic over the same trade set.
func Analyze(trades []domain.Trade, opts ...Option) Report {
	return Report{
		Metrics:    CalculatePortfolioMetrics(trades),
		TimeSeries: GenerateTimeSeriesData(trades, opts...),
		Symbols:    CalculateSymbolPerformance(trades),
		OrderTypes: CalculateOrderTypePerformance(trades),
		Hourly:     CalculateHourlyPerformance(trades, opts...),
		Daily:      CalculateDailyPerformance(trades, opts...),
		Fees:       CalculateFeeBreakdown(trades),
	}
}

func completedTrades(trades []domain.Trade) []domain.Trade {
	completed := make([]domain.Trade, 0, len(trades))
	for _, trade := range trades {
		if trade.IsCompleted() {
			completed = append(completed, trade)
		}
	}
	return completed
}

// percentOf returns part/total as a percentage, or 0 when total is 0.
func percentOf(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
