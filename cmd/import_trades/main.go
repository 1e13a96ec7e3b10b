package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"tradeJournal/config"
	"tradeJournal/internal/adapters/logger"
	"tradeJournal/internal/adapters/sqlite"
	"tradeJournal/internal/app"
	"tradeJournal/internal/ports"
	"tradeJournal/internal/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

// run imports a CSV export into the journal database.
func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("import_trades", flag.ContinueOnError)
	csvPath := fs.String("csv", "", "CSV file to import (required)")
	dbPath := fs.String("db", "", "journal database (defaults to DB_PATH)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *csvPath == "" {
		fs.Usage()
		return fmt.Errorf("-csv is required: %w", ports.ErrInvalidRequest)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	appLogger, err := logger.NewZapLogger(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		return err
	}
	defer appLogger.Sync()

	trades, err := utils.ReadTradesFromCSV(*csvPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", *csvPath, err)
	}

	repo, err := sqlite.NewRepository(sqlite.Config{DBPath: cfg.DBPath, Logger: appLogger})
	if err != nil {
		return err
	}
	defer repo.Close()

	journal, err := app.NewJournalService(cfg, appLogger, repo, nil)
	if err != nil {
		return err
	}

	imported, err := journal.ImportTrades(ctx, trades)
	fmt.Fprintf(stdout, "Imported %d of %d trades from %s into %s\n", imported, len(trades), *csvPath, cfg.DBPath)
	return err
}
