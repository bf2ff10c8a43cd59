package database

import (
	"fmt"
	"strings"
	"time"
)

const sqliteBusyTimeout = 5 * time.Second

// Supported values for DatabaseConfig.Driver
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// DatabaseConfig describes where orders, carts and users are stored.
// SQLite is the embedded store, postgres the hosted one.
type DatabaseConfig struct {
	Driver string

	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	// Path is the SQLite file
	Path string

	// ConnectAttempts bounds the startup retry loop, 0 means the default
	ConnectAttempts int
}

// driver normalizes the configured driver name
func (c *DatabaseConfig) driver() string {
	switch d := strings.ToLower(c.Driver); d {
	case "", DriverSQLite:
		return DriverSQLite
	case "postgresql":
		return DriverPostgres
	default:
		return d
	}
}

func (c *DatabaseConfig) attempts() int {
	if c.ConnectAttempts > 0 {
		return c.ConnectAttempts
	}
	return 5
}

// String masks the password
func (c *DatabaseConfig) String() string {
	if c.driver() == DriverPostgres {
		return fmt.Sprintf("postgres://%s:[REDACTED]@%s:%s/%s?sslmode=%s", c.User, c.Host, c.Port, c.Name, c.SSLMode)
	}
	return fmt.Sprintf("%s:%s", c.driver(), c.Path)
}

// DSN returns the connection string for the configured driver, empty
// when the driver is unknown. SQLite files get a busy timeout so the
// progressor and request handlers can share the file.
func (c *DatabaseConfig) DSN() string {
	switch c.driver() {
	case DriverPostgres:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
	case DriverSQLite:
		return fmt.Sprintf("file:%s?_busy_timeout=%d&_journal_mode=WAL", c.Path, sqliteBusyTimeout.Milliseconds())
	case DriverMemory:
		return ":memory:"
	default:
		return ""
	}
}
