package database

import (
	"context"
	"fmt"
	stdlog "log"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	// registers the pure-Go "sqlite" database/sql driver
	_ "modernc.org/sqlite"
)

const slowQueryThreshold = 200 * time.Millisecond

// Connect opens PostgreSQL for postgres:// URLs and SQLite for anything
// else (a file path or ":memory:").
func Connect(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: newGormLogger()}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Info().Msg("connecting to PostgreSQL")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	log.Info().Str("dsn", dsn).Msg("using SQLite for local development")

	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
	if err != nil {
		return nil, err
	}

	// every new connection to ":memory:" is a fresh empty database
	if strings.Contains(dsn, ":memory:") {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

func newGormLogger() logger.Interface {
	return logger.New(
		stdlog.New(log.Logger, "", 0),
		logger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// Provider hands out one process-wide *gorm.DB. The connection is opened on
// the first call to DB; a failed attempt is not cached, so the next caller
// retries. Once a connection succeeds it is reused for the process lifetime.
type Provider struct {
	dsn     string
	connect func(string) (*gorm.DB, error)

	mu sync.Mutex
	db *gorm.DB
}

func NewProvider(dsn string) *Provider {
	return &Provider{dsn: dsn, connect: Connect}
}

func (p *Provider) DB(ctx context.Context) (*gorm.DB, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db != nil {
		return p.db, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	db, err := p.connect(p.dsn)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		return nil, fmt.Errorf("connect database: %w", err)
	}
	log.Info().Msg("database connected")
	p.db = db
	return db, nil
}

// Ping checks the cached connection. It does not open one.
func (p *Provider) Ping(ctx context.Context) error {
	p.mu.Lock()
	db := p.db
	p.mu.Unlock()

	if db == nil {
		return fmt.Errorf("database not connected")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db == nil {
		return nil
	}
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	p.db = nil
	return sqlDB.Close()
}
