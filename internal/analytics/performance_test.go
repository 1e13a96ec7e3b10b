package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeJournal/internal/domain"
)

func TestCalculatePortfolioMetrics(t *testing.T) {
	trades := pnlSeries(100, -50, 30)

	metrics := CalculatePortfolioMetrics(trades)

	assert.Equal(t, 3, metrics.TradeCount)
	assert.Equal(t, 80.0, metrics.TotalPnL)
	assert.Equal(t, 600.0, metrics.TotalVolume)
	assert.Equal(t, 3.0, metrics.TotalFees)
	assert.Equal(t, 2, metrics.WinningTrades)
	assert.Equal(t, 1, metrics.LosingTrades)
	assert.InDelta(t, 66.6667, metrics.WinRate, 0.001)
	assert.Equal(t, 60.0, metrics.AverageTradeDuration)
	assert.Equal(t, 3.0, metrics.LongShortRatio, "no shorts falls back to the long count")
	assert.Equal(t, 100.0, metrics.LargestGain)
	assert.Equal(t, -50.0, metrics.LargestLoss)
	assert.Equal(t, 65.0, metrics.AverageWin)
	assert.Equal(t, 50.0, metrics.AverageLoss)
	assert.Equal(t, 130.0/50.0, metrics.ProfitFactor)
	assert.Equal(t, 65.0/50.0, metrics.AverageRiskRewardRatio)
	assert.Equal(t, 50.0, metrics.MaxDrawdown, "100 -> 50 is a 50 drop from the running peak")
	assert.Equal(t, 1, metrics.ConsecutiveWins)
	assert.Equal(t, 1, metrics.ConsecutiveLosses)

	require.True(t, metrics.SharpeRatio.IsSome())
	assert.InDelta(t, 6.907675, metrics.SharpeRatio.Unwrap(), 1e-6)

	require.True(t, metrics.MaxDrawdownDuration.IsSome())
	assert.Equal(t, (2 * time.Hour).Seconds(), metrics.MaxDrawdownDuration.Unwrap(), "never recovered, runs to the last trade")
}

func TestCalculatePortfolioMetricsEmpty(t *testing.T) {
	for name, trades := range map[string][]domain.Trade{
		"nil":       nil,
		"empty":     {},
		"only open": {openTrade(1, baseTime), openTrade(2, baseTime.Add(time.Hour))},
	} {
		t.Run(name, func(t *testing.T) {
			metrics := CalculatePortfolioMetrics(trades)
			assert.Equal(t, EmptyMetrics(), metrics)
			assert.Zero(t, metrics.TradeCount)
			assert.Zero(t, metrics.WinRate)
			assert.Zero(t, metrics.ProfitFactor)
			assert.True(t, metrics.SharpeRatio.IsNone())
			assert.True(t, metrics.MaxDrawdownDuration.IsNone())
		})
	}
}

func TestCalculatePortfolioMetricsIgnoresOpenTrades(t *testing.T) {
	trades := append(pnlSeries(40, -10), openTrade(99, baseTime.Add(10*time.Hour)))
	trades[2].PnL = 1000 // open trades never contribute, whatever their PnL

	metrics := CalculatePortfolioMetrics(trades)

	assert.Equal(t, 2, metrics.TradeCount)
	assert.Equal(t, 30.0, metrics.TotalPnL)
	assert.Equal(t, 2.0, metrics.TotalFees)
}

func TestCalculatePortfolioMetricsSingleBreakEven(t *testing.T) {
	metrics := CalculatePortfolioMetrics(pnlSeries(0))

	assert.Equal(t, 1, metrics.TradeCount)
	assert.Zero(t, metrics.WinRate)
	assert.Zero(t, metrics.ProfitFactor)
	assert.Zero(t, metrics.MaxDrawdown)
	assert.Zero(t, metrics.ConsecutiveWins)
	assert.Zero(t, metrics.ConsecutiveLosses)
	assert.True(t, metrics.SharpeRatio.IsNone(), "a single trade has no Sharpe ratio")
}

func TestCalculatePortfolioMetricsBreakEvenCounts(t *testing.T) {
	metrics := CalculatePortfolioMetrics(pnlSeries(10, 0, -5, 0))

	assert.Equal(t, 4, metrics.TradeCount)
	assert.Equal(t, 1, metrics.WinningTrades)
	assert.Equal(t, 1, metrics.LosingTrades)
	assert.Equal(t, 25.0, metrics.WinRate)

	lossRate := float64(metrics.LosingTrades) / float64(metrics.TradeCount) * 100
	assert.Less(t, metrics.WinRate+lossRate, 100.0, "break-even trades keep win+loss below 100%")
}

func TestCalculatePortfolioMetricsProfitFactorWithoutLosses(t *testing.T) {
	metrics := CalculatePortfolioMetrics(pnlSeries(10, 15))

	assert.Equal(t, 25.0, metrics.ProfitFactor, "no gross loss falls back to gross profit")
	assert.Zero(t, metrics.AverageLoss)
	assert.Zero(t, metrics.AverageRiskRewardRatio)
	assert.Zero(t, metrics.LargestLoss)
	assert.Zero(t, metrics.MaxDrawdown)
	assert.True(t, metrics.MaxDrawdownDuration.IsNone())
}

func TestCalculatePortfolioMetricsLongShortRatio(t *testing.T) {
	trades := pnlSeries(1, 2, 3, 4, 5)
	trades[1].Side = domain.SideShort
	trades[3].Side = domain.SideShort

	metrics := CalculatePortfolioMetrics(trades)

	assert.Equal(t, 1.5, metrics.LongShortRatio)
}

func TestCalculatePortfolioMetricsOrderIndependent(t *testing.T) {
	trades := pnlSeries(12, -40, 7, 7, -3, 25, -18, 0, 9)

	forward := CalculatePortfolioMetrics(trades)
	backward := CalculatePortfolioMetrics(reversed(trades))

	assert.Equal(t, forward, backward)
}

func TestCalculatePortfolioMetricsSumsAreExactAcrossOrders(t *testing.T) {
	trades := pnlSeries(0.1, 0.2, 0.3)

	forward := CalculatePortfolioMetrics(trades)
	backward := CalculatePortfolioMetrics(reversed(trades))

	assert.Equal(t, forward.TotalPnL, backward.TotalPnL)
	assert.Equal(t, forward.SharpeRatio, backward.SharpeRatio)
	assert.Equal(t, CalculateFeeBreakdown(trades), CalculateFeeBreakdown(reversed(trades)))
	assert.Equal(t, CalculateSymbolPerformance(trades), CalculateSymbolPerformance(reversed(trades)))
}

func TestCalculatePortfolioMetricsDoesNotMutateInput(t *testing.T) {
	trades := reversed(pnlSeries(5, -5, 10))
	before := make([]domain.Trade, len(trades))
	copy(before, trades)

	first := CalculatePortfolioMetrics(trades)
	second := CalculatePortfolioMetrics(trades)

	assert.Equal(t, before, trades)
	assert.Equal(t, first, second)
}

func TestCalculateSharpeRatio(t *testing.T) {
	tests := []struct {
		name   string
		trades []domain.Trade
		absent bool
		want   float64
	}{
		{name: "no trades", trades: nil, absent: true},
		{name: "one trade", trades: pnlSeries(50), absent: true},
		{name: "identical pnl", trades: pnlSeries(0.1, 0.1, 0.1), want: 0},
		{name: "identical zeros", trades: pnlSeries(0, 0), want: 0},
		{name: "two trades", trades: pnlSeries(10, 20), want: 15 / 5 * math.Sqrt(252)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateSharpeRatio(tt.trades)
			if tt.absent {
				assert.True(t, got.IsNone())
				return
			}
			require.True(t, got.IsSome())
			assert.InDelta(t, tt.want, got.Unwrap(), 1e-9)
		})
	}
}

func TestAnalyze(t *testing.T) {
	trades := pnlSeries(100, -50, 30)
	trades[1].Symbol = "BTC-PERP"
	trades[2].OrderType = domain.OrderTypeLimit

	report := Analyze(trades, WithLocation(time.UTC))

	assert.Equal(t, CalculatePortfolioMetrics(trades), report.Metrics)
	assert.Len(t, report.TimeSeries, 3)
	assert.Len(t, report.Symbols, 2)
	assert.Len(t, report.OrderTypes, 2)
	assert.Len(t, report.Hourly, 24)
	assert.Len(t, report.Daily, 7)
	assert.Equal(t, 3.0, report.Fees.TotalFees)
}
