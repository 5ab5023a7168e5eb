package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	defaultPoolSize = 5
	pingTimeout     = 5 * time.Second
)

// Config carries the connection settings a subsystem derives from the
// shared configuration. Echo turns on SQL statement logging; PoolSize and
// MaxOverflow bound the pool (PoolSize idle, PoolSize+MaxOverflow open).
type Config struct {
	DSN         string
	Echo        bool
	PoolSize    int
	MaxOverflow int
}

// Postgres wraps DB connectivity. Each subsystem owns one.
type Postgres struct {
	DB *gorm.DB
}

func Connect(ctx context.Context, cfg Config) (*Postgres, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, errors.New("postgres dsn is required")
	}

	logMode := gormlogger.Silent
	if cfg.Echo {
		logMode = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("resolve postgres sql db handle: %w", err)
	}

	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}
	overflow := cfg.MaxOverflow
	if overflow < 0 {
		overflow = 0
	}
	sqlDB.SetMaxIdleConns(poolSize)
	sqlDB.SetMaxOpenConns(poolSize + overflow)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Postgres{DB: db}, nil
}

func (p *Postgres) Close() error {
	if p == nil || p.DB == nil {
		return nil
	}
	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
