package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/moznion/go-optional"
	"gopkg.in/yaml.v3"

	"tradeJournal/internal/analytics"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

type renderFunc func(w io.Writer, report analytics.Report) error

func rendererFor(name string) (renderFunc, error) {
	switch name {
	case formatTable:
		return renderTable, nil
	case formatJSON:
		return renderJSON, nil
	case formatYAML:
		return renderYAML, nil
	default:
		return nil, fmt.Errorf("unknown format %q (expected table, json or yaml)", name)
	}
}

func renderJSON(w io.Writer, report analytics.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// renderYAML goes through JSON so optional values and field names match
// the JSON output.
func renderYAML(w io.Writer, report analytics.Report) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return err
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func renderTable(out io.Writer, report analytics.Report) error {
	m := report.Metrics

	fmt.Fprintln(out, "## Portfolio")
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "Completed trades\t%d\t(%d wins, %d losses)\n", m.TradeCount, m.WinningTrades, m.LosingTrades)
	fmt.Fprintf(w, "Total PnL\t%.2f\t\n", m.TotalPnL)
	fmt.Fprintf(w, "Win rate\t%.2f%%\t\n", m.WinRate)
	fmt.Fprintf(w, "Profit factor\t%.2f\t\n", m.ProfitFactor)
	fmt.Fprintf(w, "Average win / loss\t%.2f / %.2f\t(risk/reward %.2f)\n", m.AverageWin, m.AverageLoss, m.AverageRiskRewardRatio)
	fmt.Fprintf(w, "Largest gain / loss\t%.2f / %.2f\t\n", m.LargestGain, m.LargestLoss)
	fmt.Fprintf(w, "Sharpe ratio\t%s\t\n", formatOptional(m.SharpeRatio, func(v float64) string { return fmt.Sprintf("%.2f", v) }))
	fmt.Fprintf(w, "Max drawdown\t%.2f\t(%s)\n", m.MaxDrawdown, formatOptional(m.MaxDrawdownDuration, formatSeconds))
	fmt.Fprintf(w, "Streaks\t%d wins / %d losses\t\n", m.ConsecutiveWins, m.ConsecutiveLosses)
	fmt.Fprintf(w, "Long/short ratio\t%.2f\t\n", m.LongShortRatio)
	fmt.Fprintf(w, "Volume / fees\t%.2f / %.2f\t\n", m.TotalVolume, m.TotalFees)
	fmt.Fprintf(w, "Average duration\t%s\t\n", formatSeconds(m.AverageTradeDuration))
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out, "\n## By symbol")
	w = tabwriter.NewWriter(out, 0, 0, 3, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Symbol\tTrades\tPnL\tWinRate\tAvgPnL\tBest\tWorst\tFees\t")
	for _, s := range report.Symbols {
		fmt.Fprintf(w, "%s\t%d\t%.2f\t%.1f%%\t%.2f\t%.2f\t%.2f\t%.2f\t\n",
			s.Symbol, s.Trades, s.PnL, s.WinRate, s.AveragePnL, s.LargestWin, s.LargestLoss, s.TotalFees)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out, "\n## By order type")
	w = tabwriter.NewWriter(out, 0, 0, 3, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Type\tTrades\tPnL\tWinRate\tAvgPnL\tFees\t")
	for _, o := range report.OrderTypes {
		fmt.Fprintf(w, "%s\t%d\t%.2f\t%.1f%%\t%.2f\t%.2f\t\n", o.OrderType, o.Trades, o.PnL, o.WinRate, o.AveragePnL, o.TotalFees)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out, "\n## By hour (hours with trades)")
	w = tabwriter.NewWriter(out, 0, 0, 3, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Hour\tTrades\tPnL\tWinRate\tAvgPnL\t")
	for _, h := range report.Hourly {
		if h.Trades == 0 {
			continue
		}
		fmt.Fprintf(w, "%02d:00\t%d\t%.2f\t%.1f%%\t%.2f\t\n", h.Hour, h.Trades, h.TotalPnL, h.WinRate, h.AveragePnL)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out, "\n## By weekday")
	w = tabwriter.NewWriter(out, 0, 0, 3, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Day\tTrades\tPnL\tWinRate\tAvgPnL\t")
	for _, d := range report.Daily {
		fmt.Fprintf(w, "%s\t%d\t%.2f\t%.1f%%\t%.2f\t\n", d.Day, d.Trades, d.TotalPnL, d.WinRate, d.AveragePnL)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	f := report.Fees
	fmt.Fprintln(out, "\n## Fees")
	w = tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "Total\t%.4f\t\n", f.TotalFees)
	fmt.Fprintf(w, "Trading / network (est.)\t%.4f / %.4f\t\n", f.TradingFees, f.NetworkFees)
	fmt.Fprintf(w, "Per trade\t%.4f\t\n", f.AverageFeePerTrade)
	fmt.Fprintf(w, "Share of volume\t%.4f%%\t\n", f.FeesAsPercentOfVolume)
	return w.Flush()
}

func formatOptional[T any](v optional.Option[T], format func(T) string) string {
	if v.IsNone() {
		return "n/a"
	}
	return format(v.Unwrap())
}

func formatSeconds(seconds float64) string {
	return (time.Duration(seconds * float64(time.Second))).Round(time.Second).String()
}
