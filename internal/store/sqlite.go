package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"StockToolkit/internal/model"
)

// DefaultTTL bounds how long a fetch whose range reaches into the last day is trusted.
const DefaultTTL = 24 * time.Hour

// SQLiteCache persists daily bars to a SQLite database.
type SQLiteCache struct {
	db     *sql.DB
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
}

// NewSQLiteCache opens (or creates) the SQLite database and runs migrations.
func NewSQLiteCache(dbPath string, logger *zap.Logger) (*SQLiteCache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	c := &SQLiteCache{db: db, ttl: DefaultTTL, now: time.Now, logger: logger}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info("sqlite bar cache opened", zap.String("path", dbPath))
	return c, nil
}

func (c *SQLiteCache) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS daily_bars (
			symbol    TEXT    NOT NULL,
			day       INTEGER NOT NULL,
			open      REAL,
			high      REAL,
			low       REAL,
			close     REAL,
			adj_close REAL,
			volume    INTEGER,
			PRIMARY KEY (symbol, day)
		)`,

		`CREATE TABLE IF NOT EXISTS bar_fetches (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol     TEXT    NOT NULL,
			start_day  INTEGER NOT NULL,
			end_day    INTEGER NOT NULL,
			fetched_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fetches_symbol ON bar_fetches(symbol)`,
	}

	for _, s := range stmts {
		if _, err := c.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// Load returns the cached bars when a previous fetch covered [start, end).
// A fetch whose range ends after the day it ran may hold a partial bar for that
// day, so it only counts while younger than the TTL. Days are UTC midnights.
func (c *SQLiteCache) Load(symbol string, start, end time.Time) ([]model.OHLCV, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, e := dayKey(start), dayKey(end)
	now := c.now()
	var n int
	err := c.db.QueryRow(`SELECT COUNT(*) FROM bar_fetches
		WHERE symbol = ? AND start_day <= ? AND end_day >= ?
		  AND (end_day <= (fetched_at / 86400) * 86400 OR fetched_at >= ?)`,
		symbol, s, e, now.Add(-c.ttl).Unix(),
	).Scan(&n)
	if err != nil {
		return nil, false, fmt.Errorf("query fetches: %w", err)
	}
	if n == 0 {
		return nil, false, nil
	}

	rows, err := c.db.Query(`SELECT day, open, high, low, close, adj_close, volume
		FROM daily_bars WHERE symbol = ? AND day >= ? AND day < ? ORDER BY day`,
		symbol, s, e)
	if err != nil {
		return nil, false, fmt.Errorf("query bars: %w", err)
	}
	defer rows.Close()

	var bars []model.OHLCV
	for rows.Next() {
		var day int64
		var b model.OHLCV
		if err := rows.Scan(&day, &b.Open, &b.High, &b.Low, &b.Close, &b.AdjClose, &b.Volume); err != nil {
			return nil, false, fmt.Errorf("scan bar: %w", err)
		}
		b.Time = time.Unix(day, 0).UTC()
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	return bars, true, nil
}

// Save upserts bars and records the fetched range.
func (c *SQLiteCache) Save(symbol string, start, end time.Time, bars []model.OHLCV) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO daily_bars
		(symbol, day, open, high, low, close, adj_close, volume)
		VALUES (?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.Exec(symbol, dayKey(b.Time), b.Open, b.High, b.Low, b.Close, b.AdjClose, b.Volume); err != nil {
			return fmt.Errorf("insert bar: %w", err)
		}
	}
	if _, err := tx.Exec(`INSERT INTO bar_fetches (symbol, start_day, end_day, fetched_at)
		VALUES (?,?,?,?)`, symbol, dayKey(start), dayKey(end), c.now().Unix()); err != nil {
		return fmt.Errorf("insert fetch: %w", err)
	}
	return tx.Commit()
}

func (c *SQLiteCache) Close() error {
	c.logger.Info("closing sqlite bar cache")
	return c.db.Close()
}

func dayKey(t time.Time) int64 {
	return model.TradingDay(t).Unix()
}
