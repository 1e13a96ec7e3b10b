package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/moznion/go-optional"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tradeJournal/config"
	"tradeJournal/internal/adapters/logger"
	"tradeJournal/internal/adapters/sqlite"
	"tradeJournal/internal/analytics"
	"tradeJournal/internal/domain"
	"tradeJournal/internal/filter"
	"tradeJournal/internal/utils"
)

const dateLayout = "2006-01-02"

var (
	csvPath  string
	dbPath   string
	timezone string
	format   string
	symbols  []string
	side     string
	fromDate string
	toDate   string
	debug    bool
)

var rootCmd = &cobra.Command{
	Use:   "analyze_trades",
	Short: "Print a performance report for journaled trades",
	Long: `analyze_trades computes portfolio metrics, drawdown, streaks and
breakdowns by symbol, order type, hour and weekday for a set of trades read
from a CSV export or the journal database.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runAnalyze,
}

func init() {
	rootCmd.Flags().StringVar(&csvPath, "csv", "", "CSV file to analyze")
	rootCmd.Flags().StringVar(&dbPath, "db", "", "journal database to analyze")
	rootCmd.Flags().StringVar(&timezone, "tz", "Local", "timezone for hour/day buckets and date labels")
	rootCmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format: table, json or yaml")
	rootCmd.Flags().StringSliceVar(&symbols, "symbol", nil, "only include these symbols (repeatable)")
	rootCmd.Flags().StringVar(&side, "side", filter.SideAll, "only include one side: all, long or short")
	rootCmd.Flags().StringVar(&fromDate, "from", "", "first day to include, YYYY-MM-DD")
	rootCmd.Flags().StringVar(&toDate, "to", "", "last day to include, YYYY-MM-DD")
	rootCmd.Flags().BoolVarP(&debug, "debug", "d", false, "log database activity to stderr")

	rootCmd.MarkFlagsOneRequired("csv", "db")
	rootCmd.MarkFlagsMutuallyExclusive("csv", "db")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	loc, err := config.LoadLocation(timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	opts, err := buildFilter(loc)
	if err != nil {
		return err
	}
	render, err := rendererFor(format)
	if err != nil {
		return err
	}

	trades, err := loadTrades(cmd.Context())
	if err != nil {
		return err
	}

	report := analytics.Analyze(filter.Apply(trades, opts), analytics.WithLocation(loc))
	return render(cmd.OutOrStdout(), report)
}

func buildFilter(loc *time.Location) (filter.Options, error) {
	opts := filter.Options{Symbols: symbols, Side: side}
	if fromDate != "" {
		from, err := time.ParseInLocation(dateLayout, fromDate, loc)
		if err != nil {
			return opts, fmt.Errorf("invalid from date format (expected YYYY-MM-DD): %w", err)
		}
		opts.From = optional.Some(from.UnixMilli())
	}
	if toDate != "" {
		to, err := time.ParseInLocation(dateLayout, toDate, loc)
		if err != nil {
			return opts, fmt.Errorf("invalid to date format (expected YYYY-MM-DD): %w", err)
		}
		// Inclusive of the whole last day.
		opts.To = optional.Some(to.AddDate(0, 0, 1).UnixMilli() - 1)
	}
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

func loadTrades(ctx context.Context) ([]domain.Trade, error) {
	if csvPath != "" {
		trades, err := utils.ReadTradesFromCSV(csvPath)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", csvPath, err)
		}
		return trades, nil
	}

	zapLogger := zap.NewNop()
	if debug {
		var err error
		if zapLogger, err = zap.NewDevelopment(); err != nil {
			return nil, err
		}
	}
	repo, err := sqlite.NewRepository(sqlite.Config{DBPath: dbPath, Logger: logger.NewFromZap(zapLogger)})
	if err != nil {
		return nil, err
	}
	defer repo.Close()

	stored, err := repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	trades := make([]domain.Trade, 0, len(stored))
	for _, trade := range stored {
		trades = append(trades, *trade)
	}
	return trades, nil
}
