package analytics

import (
	"cmp"
	"slices"
	"time"

	"tradeJournal/internal/domain"
)

// bucket accumulates trade counts and PnL for one category.
type bucket struct {
	trades      int
	wins        int
	pnl         float64
	volume      float64
	fees        float64
	largestWin  float64
	largestLoss float64
}

func (b *bucket) add(trade domain.Trade) {
	b.trades++
	b.pnl += trade.PnL
	b.volume += trade.Notional()
	b.fees += trade.Fees
	if trade.PnL > 0 {
		b.wins++
	}
	// Seeded with zero: an all-losing bucket reports largestWin 0.
	b.largestWin = max(b.largestWin, trade.PnL)
	b.largestLoss = min(b.largestLoss, trade.PnL)
}

func (b *bucket) winRate() float64 {
	return percentOf(b.wins, b.trades)
}

func (b *bucket) averagePnL() float64 {
	if b.trades == 0 {
		return 0
	}
	return b.pnl / float64(b.trades)
}

// CalculateSymbolPerformance groups all trades by symbol, sorted by
// total PnL from best to worst.
func CalculateSymbolPerformance(trades []domain.Trade) []SymbolPerformance {
	buckets := make(map[string]*bucket)
	for _, trade := range sortedByTimestamp(trades) {
		b, ok := buckets[trade.Symbol]
		if !ok {
			b = &bucket{}
			buckets[trade.Symbol] = b
		}
		b.add(trade)
	}

	result := make([]SymbolPerformance, 0, len(buckets))
	for symbol, b := range buckets {
		result = append(result, SymbolPerformance{
			Symbol:      symbol,
			Trades:      b.trades,
			PnL:         b.pnl,
			WinRate:     b.winRate(),
			Volume:      b.volume,
			AveragePnL:  b.averagePnL(),
			LargestWin:  b.largestWin,
			LargestLoss: b.largestLoss,
			TotalFees:   b.fees,
		})
	}
	slices.SortFunc(result, func(a, b SymbolPerformance) int {
		if c := cmp.Compare(b.PnL, a.PnL); c != 0 {
			return c
		}
		return cmp.Compare(a.Symbol, b.Symbol)
	})
	return result
}

// CalculateOrderTypePerformance summarises trades per order type in the
// order market, limit, stop. Order types without trades are left out.
func CalculateOrderTypePerformance(trades []domain.Trade) []OrderTypePerformance {
	buckets := make(map[domain.OrderType]*bucket, len(domain.OrderTypes))
	for _, orderType := range domain.OrderTypes {
		buckets[orderType] = &bucket{}
	}
	for _, trade := range sortedByTimestamp(trades) {
		if b, ok := buckets[trade.OrderType]; ok {
			b.add(trade)
		}
	}

	result := make([]OrderTypePerformance, 0, len(domain.OrderTypes))
	for _, orderType := range domain.OrderTypes {
		b := buckets[orderType]
		if b.trades == 0 {
			continue
		}
		result = append(result, OrderTypePerformance{
			OrderType:  string(orderType),
			Trades:     b.trades,
			PnL:        b.pnl,
			WinRate:    b.winRate(),
			AveragePnL: b.averagePnL(),
			TotalFees:  b.fees,
		})
	}
	return result
}

// CalculateHourlyPerformance buckets trades by the hour of day of their
// exit timestamp. All 24 hours are always returned.
func CalculateHourlyPerformance(trades []domain.Trade, opts ...Option) []HourlyPerformance {
	cfg := newSettings(opts)

	var buckets [24]bucket
	for _, trade := range sortedByTimestamp(trades) {
		buckets[trade.ExitAt(cfg.location).Hour()].add(trade)
	}

	result := make([]HourlyPerformance, 0, len(buckets))
	for hour := range buckets {
		b := &buckets[hour]
		result = append(result, HourlyPerformance{
			Hour:       hour,
			AveragePnL: b.averagePnL(),
			Trades:     b.trades,
			TotalPnL:   b.pnl,
			WinRate:    b.winRate(),
		})
	}
	return result
}

// CalculateDailyPerformance buckets trades by the weekday of their exit
// timestamp. All seven days are always returned, Sunday first.
func CalculateDailyPerformance(trades []domain.Trade, opts ...Option) []DailyPerformance {
	cfg := newSettings(opts)

	var buckets [7]bucket
	for _, trade := range sortedByTimestamp(trades) {
		buckets[trade.ExitAt(cfg.location).Weekday()].add(trade)
	}

	result := make([]DailyPerformance, 0, len(buckets))
	for day := range buckets {
		b := &buckets[day]
		result = append(result, DailyPerformance{
			Day:        time.Weekday(day).String(),
			DayIndex:   day,
			AveragePnL: b.averagePnL(),
			Trades:     b.trades,
			TotalPnL:   b.pnl,
			WinRate:    b.winRate(),
		})
	}
	return result
}
