package database

import (
	"context"
	"database/sql"
	"sync"
	"time"
)

type dbConfig struct {
	maxOpenConns    int
	maxIdleConns    int
	connMaxLifetime time.Duration
	connMaxIdleTime time.Duration
	pingTimeout     time.Duration
	retryAttempts   int
	retryDelay      time.Duration
}

type Option func(*dbConfig)

func WithConnectionPool(maxOpen, maxIdle int, maxLifetime time.Duration) Option {
	return func(config *dbConfig) {
		config.maxOpenConns = maxOpen
		config.maxIdleConns = maxIdle
		config.connMaxLifetime = maxLifetime
	}
}

func WithConnectionIdleTime(idleTime time.Duration) Option {
	return func(config *dbConfig) {
		config.connMaxIdleTime = idleTime
	}
}

func WithPingTimeout(timeout time.Duration) Option {
	return func(config *dbConfig) {
		config.pingTimeout = timeout
	}
}

func WithRetry(attempts int, delay time.Duration) Option {
	return func(config *dbConfig) {
		config.retryAttempts = attempts
		config.retryDelay = delay
	}
}

// Database is a lazily opened *sql.DB with pool settings and connect
// retries.
type Database struct {
	driver string
	dsn    string
	config dbConfig

	mu sync.Mutex
	db *sql.DB
}

func NewDatabase(driver, dsn string, options ...Option) *Database {
	config := dbConfig{
		maxOpenConns:    25,
		maxIdleConns:    5,
		connMaxLifetime: time.Hour,
		connMaxIdleTime: time.Minute * 5,
		pingTimeout:     time.Second * 5,
		retryAttempts:   3,
		retryDelay:      time.Second,
	}

	for _, option := range options {
		option(&config)
	}

	return &Database{
		driver: driver,
		dsn:    dsn,
		config: config,
	}
}

func (d *Database) Driver() string {
	return d.driver
}

// Connect opens the pool and pings it, retrying with a fixed delay. It is a
// no-op once connected.
func (d *Database) Connect(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db != nil {
		return nil
	}

	var err error
	for attempt := 0; attempt <= d.config.retryAttempts; attempt++ {
		var db *sql.DB
		db, err = sql.Open(d.driver, d.dsn)
		if err == nil {
			db.SetMaxOpenConns(d.config.maxOpenConns)
			db.SetMaxIdleConns(d.config.maxIdleConns)
			db.SetConnMaxLifetime(d.config.connMaxLifetime)
			db.SetConnMaxIdleTime(d.config.connMaxIdleTime)

			pingCtx, cancel := context.WithTimeout(ctx, d.config.pingTimeout)
			err = db.PingContext(pingCtx)
			cancel()

			if err == nil {
				d.db = db
				return nil
			}
			_ = db.Close()
		}

		if attempt < d.config.retryAttempts {
			select {
			case <-ctx.Done():
				return ErrFailedToOpenDatabase.WithDetail("driver", d.driver).WithCause(ctx.Err())
			case <-time.After(d.config.retryDelay):
			}
		}
	}

	return ErrFailedToOpenDatabase.WithDetail("driver", d.driver).WithCause(err)
}

func (d *Database) DB() (*sql.DB, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.db == nil {
		return nil, ErrDatabaseNotConnected
	}
	return d.db, nil
}

func (d *Database) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	return err
}

func (d *Database) Ping(ctx context.Context) error {
	db, err := d.DB()
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

// Transaction runs fn inside a transaction, committing when fn returns nil
// and rolling back otherwise.
func (d *Database) Transaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	db, err := d.DB()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return ErrTransactionFailed.
			WithDetail("reason", "begin failed").
			WithCause(err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return ErrTransactionFailed.
				WithDetail("reason", "rollback failed").
				WithCause(rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return ErrTransactionFailed.
			WithDetail("reason", "commit failed").
			WithCause(err)
	}
	return nil
}
