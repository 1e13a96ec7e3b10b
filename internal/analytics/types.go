package analytics

import (
	"github.com/moznion/go-optional"
)

// PortfolioMetrics holds portfolio-level statistics over completed trades.
type PortfolioMetrics struct {
	TotalPnL               float64                  `json:"totalPnL"`
	TotalVolume            float64                  `json:"totalVolume"`
	TotalFees              float64                  `json:"totalFees"`
	WinRate                float64                  `json:"winRate"` // percent
	TradeCount             int                      `json:"tradeCount"`
	AverageTradeDuration   float64                  `json:"averageTradeDuration"` // seconds
	LongShortRatio         float64                  `json:"longShortRatio"`
	LargestGain            float64                  `json:"largestGain"`
	LargestLoss            float64                  `json:"largestLoss"` // signed, <= 0
	AverageWin             float64                  `json:"averageWin"`
	AverageLoss            float64                  `json:"averageLoss"` // absolute, >= 0
	ProfitFactor           float64                  `json:"profitFactor"`
	SharpeRatio            optional.Option[float64] `json:"sharpeRatio,omitempty"`
	MaxDrawdown            float64                  `json:"maxDrawdown"`
	MaxDrawdownDuration    optional.Option[float64] `json:"maxDrawdownDuration,omitempty"` // seconds
	WinningTrades          int                      `json:"winningTrades"`
	LosingTrades           int                      `json:"losingTrades"`
	ConsecutiveWins        int                      `json:"consecutiveWins"`
	ConsecutiveLosses      int                      `json:"consecutiveLosses"`
	AverageRiskRewardRatio float64                  `json:"averageRiskRewardRatio"`
}

// Streaks holds the longest winning and losing runs of a trade sequence.
type Streaks struct {
	ConsecutiveWins   int `json:"consecutiveWins"`
	ConsecutiveLosses int `json:"consecutiveLosses"`
}

// TimeSeriesPoint is one point of the equity curve, one per trade.
type TimeSeriesPoint struct {
	Timestamp     int64   `json:"timestamp"`
	Date          string  `json:"date"`
	PnL           float64 `json:"pnl"`
	CumulativePnL float64 `json:"cumulativePnL"`
	Volume        float64 `json:"volume"`
	Fees          float64 `json:"fees"`
	Drawdown      float64 `json:"drawdown"`
	TradeCount    int     `json:"tradeCount"`
}

// SymbolPerformance summarises trades of one symbol.
type SymbolPerformance struct {
	Symbol      string  `json:"symbol"`
	Trades      int     `json:"trades"`
	PnL         float64 `json:"pnl"`
	WinRate     float64 `json:"winRate"`
	Volume      float64 `json:"volume"`
	AveragePnL  float64 `json:"averagePnL"`
	LargestWin  float64 `json:"largestWin"`
	LargestLoss float64 `json:"largestLoss"`
	TotalFees   float64 `json:"totalFees"`
}

// HourlyPerformance summarises trades closed within one hour of the day.
type HourlyPerformance struct {
	Hour       int     `json:"hour"`
	AveragePnL float64 `json:"averagePnL"`
	Trades     int     `json:"trades"`
	TotalPnL   float64 `json:"totalPnL"`
	WinRate    float64 `json:"winRate"`
}

// DailyPerformance summarises trades closed on one day of the week.
type DailyPerformance struct {
	Day        string  `json:"day"`
	DayIndex   int     `json:"dayIndex"`
	AveragePnL float64 `json:"averagePnL"`
	Trades     int     `json:"trades"`
	TotalPnL   float64 `json:"totalPnL"`
	WinRate    float64 `json:"winRate"`
}

// OrderTypePerformance summarises trades opened with one order type.
type OrderTypePerformance struct {
	OrderType  string  `json:"orderType"`
	Trades     int     `json:"trades"`
	PnL        float64 `json:"pnl"`
	WinRate    float64 `json:"winRate"`
	AveragePnL float64 `json:"averagePnL"`
	TotalFees  float64 `json:"totalFees"`
}

// FeeBreakdown splits total fees into nominal categories.
type FeeBreakdown struct {
	TradingFees           float64 `json:"tradingFees"`
	NetworkFees           float64 `json:"networkFees"`
	TotalFees             float64 `json:"totalFees"`
	AverageFeePerTrade    float64 `json:"averageFeePerTrade"`
	FeesAsPercentOfVolume float64 `json:"feesAsPercentOfVolume"`
}

// Report bundles every analytic computed over one trade set.
type Report struct {
	Metrics    PortfolioMetrics       `json:"metrics"`
	TimeSeries []TimeSeriesPoint      `json:"timeSeries"`
	Symbols    []SymbolPerformance    `json:"symbols"`
	OrderTypes []OrderTypePerformance `json:"orderTypes"`
	Hourly     []HourlyPerformance    `json:"hourly"`
	Daily      []DailyPerformance     `json:"daily"`
	Fees       FeeBreakdown           `json:"fees"`
}
