package analytics

import (
	"cmp"
	"iter"
	"slices"

	"github.com/moznion/go-optional"

	"tradeJournal/internal/domain"
)

// DateLabelLayout is the calendar-date label attached to time series points.
const DateLabelLayout = "Jan 02, 2006"

// sortedByTimestamp returns a copy of trades ordered by exit timestamp.
// Trades sharing a timestamp are ordered by ID, so the result does not
// depend on input order.
func sortedByTimestamp(trades []domain.Trade) []domain.Trade {
	sorted := slices.Clone(trades)
	slices.SortFunc(sorted, func(a, b domain.Trade) int {
		if c := cmp.Compare(a.Timestamp, b.Timestamp); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return sorted
}

// CalculateMaxDrawdown returns the largest drop of cumulative PnL below
// its running peak. The peak starts at zero, so an opening loss counts
// as drawdown.
func CalculateMaxDrawdown(trades []domain.Trade) float64 {
	return analyzeDrawdown(sortedByTimestamp(trades)).max
}

type drawdownResult struct {
	max      float64
	duration optional.Option[float64]
}

// analyzeDrawdown walks trades in chronological order. duration is the time
// in seconds from the peak preceding the deepest drawdown until equity got
// back to that peak, or until the last trade when it never did.
func analyzeDrawdown(sorted []domain.Trade) drawdownResult {
	var result drawdownResult
	if len(sorted) == 0 {
		return result
	}

	var cumulative, peak, maxPeak float64
	var maxPeakAt int64
	peakAt := sorted[0].Timestamp
	troughIdx := -1
	for i, trade := range sorted {
		cumulative += trade.PnL
		if cumulative > peak {
			peak = cumulative
			peakAt = trade.Timestamp
		}
		if drawdown := peak - cumulative; drawdown > result.max {
			result.max = drawdown
			maxPeak = peak
			maxPeakAt = peakAt
			troughIdx = i
		}
	}
	if troughIdx < 0 {
		return result
	}

	endAt := sorted[len(sorted)-1].Timestamp
	cumulative = 0
	for i, trade := range sorted {
		cumulative += trade.PnL
		if i > troughIdx && cumulative >= maxPeak {
			endAt = trade.Timestamp
			break
		}
	}
	result.duration = optional.Some(float64(endAt-maxPeakAt) / 1000)
	return result
}

// CalculateStreaks returns the longest runs of winning and losing trades
// in chronological order. A break-even trade ends both runs.
func CalculateStreaks(trades []domain.Trade) Streaks {
	var streaks Streaks
	var currentWins, currentLosses int
	for _, trade := range sortedByTimestamp(trades) {
		switch {
		case trade.PnL > 0:
			currentWins++
			currentLosses = 0
			streaks.ConsecutiveWins = max(streaks.ConsecutiveWins, currentWins)
		case trade.PnL < 0:
			currentLosses++
			currentWins = 0
			streaks.ConsecutiveLosses = max(streaks.ConsecutiveLosses, currentLosses)
		default:
			currentWins = 0
			currentLosses = 0
		}
	}
	return streaks
}

// TimeSeries returns the equity curve as a sequence with one point per
// trade in chronological order. The trade set is copied when TimeSeries is
// called; every iteration recomputes the running totals from the start.
func TimeSeries(trades []domain.Trade, opts ...Option) iter.Seq[TimeSeriesPoint] {
	cfg := newSettings(opts)
	sorted := sortedByTimestamp(trades)

	return func(yield func(TimeSeriesPoint) bool) {
		var cumulative, peak float64
		for _, trade := range sorted {
			cumulative += trade.PnL
			if cumulative > peak {
				peak = cumulative
			}
			point := TimeSeriesPoint{
				Timestamp:     trade.Timestamp,
				Date:          trade.ExitAt(cfg.location).Format(DateLabelLayout),
				PnL:           trade.PnL,
				CumulativePnL: cumulative,
				Volume:        trade.Notional(),
				Fees:          trade.Fees,
				Drawdown:      peak - cumulative,
				TradeCount:    1,
			}
			if !yield(point) {
				return
			}
		}
	}
}

// GenerateTimeSeriesData collects TimeSeries into a slice.
func GenerateTimeSeriesData(trades []domain.Trade, opts ...Option) []TimeSeriesPoint {
	points := make([]TimeSeriesPoint, 0, len(trades))
	for point := range TimeSeries(trades, opts...) {
		points = append(points, point)
	}
	return points
}
