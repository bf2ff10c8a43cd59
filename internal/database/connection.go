package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

const pingTimeout = 5 * time.Second

// InitDatabase opens the configured store. A hosted database may still be
// starting when the API boots, so failed connects are retried with a
// doubling delay until cfg.ConnectAttempts is used up.
func InitDatabase(cfg DatabaseConfig) (*gorm.DB, error) {
	driver := cfg.driver()
	if driver == DriverMemory {
		return NewInMemory()
	}
	if cfg.DSN() == "" {
		return nil, fmt.Errorf("unsupported database driver %q (supported: postgres, sqlite, memory)", cfg.Driver)
	}

	entry := log.WithField("db", cfg.String())
	attempts := cfg.attempts()
	for attempt := 1; ; attempt++ {
		db, err := connect(cfg)
		if err == nil {
			entry.WithField("attempt", attempt).Info("Database connected")
			return db, nil
		}
		if attempt >= attempts {
			return nil, fmt.Errorf("connect to %s after %d attempts: %w", driver, attempts, err)
		}
		delay := time.Second << (attempt - 1)
		entry.WithError(err).WithFields(logrus.Fields{
			"attempt":  attempt,
			"retry_in": delay.String(),
		}).Warn("Database not reachable")
		time.Sleep(delay)
	}
}

func dialector(cfg DatabaseConfig) gorm.Dialector {
	if cfg.driver() == DriverPostgres {
		return postgres.Open(cfg.DSN())
	}
	return sqlite.Open(cfg.DSN())
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	}
}

func connect(cfg DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(dialector(cfg), gormConfig())
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	configurePool(sqlDB, cfg.driver())
	return db, nil
}

// NewInMemory opens a private in-memory SQLite database with the schema migrated.
// The pool is pinned to one connection since every new SQLite memory
// connection starts from an empty database.
func NewInMemory() (*gorm.DB, error) {
	conf := gormConfig()
	conf.Logger = logger.Default.LogMode(logger.Silent)
	db, err := gorm.Open(sqlite.Open(":memory:"), conf)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	configurePool(sqlDB, DriverMemory)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func configurePool(sqlDB *sql.DB, driver string) {
	switch driver {
	case DriverPostgres:
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	case DriverMemory:
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	default:
		// WAL readers run alongside the writer, busy_timeout serializes writes
		sqlDB.SetMaxOpenConns(4)
		sqlDB.SetMaxIdleConns(4)
	}
	log.WithFields(logrus.Fields{
		"driver":         driver,
		"max_open_conns": sqlDB.Stats().MaxOpenConnections,
	}).Debug("Connection pool configured")
}
