package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/moznion/go-optional"

	"tradeJournal/internal/domain"
	"tradeJournal/internal/ports"
)

// Repository implements the ports.TradeRepository interface using SQLite.
type Repository struct {
	db     *sql.DB
	logger ports.Logger
}

// Config holds configuration for the SQLite repository.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// NewRepository creates a new SQLite repository instance.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite repository: %w", ports.ErrConfigurationError)
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/trade_journal.db" // Default path
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}
	cfg.Logger.Info(context.Background(), "Data directory checked/created", map[string]interface{}{"path": filepath.Dir(dbPath)})

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		err = fmt.Errorf("failed to open database at '%s': %v: %w", dbPath, err, ports.ErrDBConnection)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("failed to ping database at '%s': %v: %w", dbPath, err, ports.ErrDBConnection)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// One writer at a time; SQLite serialises writes anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cfg.Logger.Info(context.Background(), "SQLite database connection established", map[string]interface{}{"path": dbPath})

	repo := &Repository{db: db, logger: cfg.Logger}
	if err := repo.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize database schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}
	cfg.Logger.Info(context.Background(), "Database schema initialized/verified")

	return repo, nil
}

// initializeSchema creates tables if they don't exist.
func (r *Repository) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS trades (
		id TEXT PRIMARY KEY,
		timestamp INTEGER NOT NULL,
		symbol TEXT NOT NULL,
		side TEXT NOT NULL,
		entry_price REAL NOT NULL,
		exit_price REAL DEFAULT NULL,
		size REAL NOT NULL,
		pnl REAL NOT NULL,
		fees REAL NOT NULL DEFAULT 0,
		order_type TEXT NOT NULL,
		duration REAL NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT '',
		tags TEXT NOT NULL DEFAULT '[]',
		signature TEXT NOT NULL DEFAULT '',
		leverage REAL DEFAULT NULL,
		entry_time INTEGER NOT NULL,
		exit_time INTEGER DEFAULT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_trades_timestamp ON trades (timestamp);
	CREATE INDEX IF NOT EXISTS idx_trades_symbol ON trades (symbol);
	`
	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to execute schema initialization: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	if r.db != nil {
		r.logger.Info(context.Background(), "Closing SQLite database connection")
		return r.db.Close()
	}
	return nil
}

const tradeColumns = `id, timestamp, symbol, side, entry_price, exit_price, size, pnl, fees,
	order_type, duration, notes, tags, signature, leverage, entry_time, exit_time`

// CreateTrade saves a new trade record.
func (r *Repository) CreateTrade(ctx context.Context, trade *domain.Trade) error {
	const query = `INSERT INTO trades (` + tradeColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	tags, err := encodeTags(trade.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags for trade %s: %v: %w", trade.ID, err, ports.ErrInvalidRequest)
	}

	_, err = r.db.ExecContext(ctx, query,
		trade.ID, trade.Timestamp, trade.Symbol, string(trade.Side), trade.EntryPrice,
		nullFloat(trade.ExitPrice), trade.Size, trade.PnL, trade.Fees,
		string(trade.OrderType), trade.Duration, trade.Notes, tags, trade.Signature,
		nullFloat(trade.Leverage), trade.EntryTime, nullInt(trade.ExitTime))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("trade %s already stored: %w", trade.ID, ports.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to insert trade %s: %v: %w", trade.ID, err, ports.ErrQueryFailed)
	}
	r.logger.Debug(ctx, "Trade created", map[string]interface{}{"tradeID": trade.ID, "symbol": trade.Symbol, "pnl": trade.PnL})
	return nil
}

// FindAll retrieves all trades, ordered by timestamp descending.
func (r *Repository) FindAll(ctx context.Context) ([]*domain.Trade, error) {
	const query = `SELECT ` + tradeColumns + ` FROM trades ORDER BY timestamp DESC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query all trades: %v: %w", err, ports.ErrQueryFailed)
	}
	defer rows.Close()

	trades := make([]*domain.Trade, 0)
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade during FindAll: %v: %w", err, ports.ErrQueryFailed)
		}
		trades = append(trades, trade)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade rows: %v: %w", err, ports.ErrQueryFailed)
	}
	return trades, nil
}

// FindByID retrieves a trade by its unique ID.
func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Trade, error) {
	const query = `SELECT ` + tradeColumns + ` FROM trades WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	trade, err := scanTrade(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Debug(ctx, "Trade not found by ID", map[string]interface{}{"tradeID": id})
			return nil, nil // Not an error, just not found
		}
		return nil, fmt.Errorf("failed to query trade by ID %s: %v: %w", id, err, ports.ErrQueryFailed)
	}
	return trade, nil
}

// UpdateNotes replaces the journal notes of a trade.
func (r *Repository) UpdateNotes(ctx context.Context, id string, notes string) error {
	return r.updateColumn(ctx, id, "notes", `UPDATE trades SET notes = ? WHERE id = ?`, notes)
}

// UpdateTags replaces the tag set of a trade.
func (r *Repository) UpdateTags(ctx context.Context, id string, tags []string) error {
	encoded, err := encodeTags(tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags for trade %s: %v: %w", id, err, ports.ErrInvalidRequest)
	}
	return r.updateColumn(ctx, id, "tags", `UPDATE trades SET tags = ? WHERE id = ?`, encoded)
}

func (r *Repository) updateColumn(ctx context.Context, id, column, query string, value any) error {
	result, err := r.db.ExecContext(ctx, query, value, id)
	if err != nil {
		return fmt.Errorf("failed to update %s of trade %s: %v: %w", column, id, err, ports.ErrUpdateFailed)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for trade %s: %v: %w", id, err, ports.ErrUpdateFailed)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("trade %s not found for update: %w", id, ports.ErrNotFound)
	}
	r.logger.Debug(ctx, "Trade updated", map[string]interface{}{"tradeID": id, "column": column})
	return nil
}

// --- Helper Scan Functions ---

// scanner defines an interface compatible with *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanTrade scans a row into a domain.Trade struct.
func scanTrade(s scanner) (*domain.Trade, error) {
	t := &domain.Trade{}
	var (
		side, orderType string
		tags            string
		exitPrice       sql.NullFloat64
		leverage        sql.NullFloat64
		exitTime        sql.NullInt64
	)
	err := s.Scan(
		&t.ID, &t.Timestamp, &t.Symbol, &side, &t.EntryPrice, &exitPrice, &t.Size, &t.PnL, &t.Fees,
		&orderType, &t.Duration, &t.Notes, &tags, &t.Signature, &leverage, &t.EntryTime, &exitTime)
	if err != nil {
		return nil, err // Handle sql.ErrNoRows in the caller
	}
	t.Side = domain.Side(side)
	t.OrderType = domain.OrderType(orderType)
	if exitPrice.Valid {
		t.ExitPrice = optional.Some(exitPrice.Float64)
	}
	if leverage.Valid {
		t.Leverage = optional.Some(leverage.Float64)
	}
	if exitTime.Valid {
		t.ExitTime = optional.Some(exitTime.Int64)
	}
	if err := json.Unmarshal([]byte(tags), &t.Tags); err != nil {
		return nil, fmt.Errorf("decode tags of trade %s: %w", t.ID, err)
	}
	return t, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func nullFloat(v optional.Option[float64]) sql.NullFloat64 {
	if v.IsNone() {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v.Unwrap(), Valid: true}
}

func nullInt(v optional.Option[int64]) sql.NullInt64 {
	if v.IsNone() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: v.Unwrap(), Valid: true}
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
