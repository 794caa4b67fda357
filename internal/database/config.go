package database

import (
	"fmt"
)

// DatabaseConfig selects the backing store for the recipe data. SQLite is
// the default and needs only Path; the Postgres fields matter when Driver
// is "postgres".
type DatabaseConfig struct {
	Driver string

	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	// Path is the SQLite database file. ":memory:" gives a throwaway store.
	Path string
}

// String masks the password so configs can be logged at startup
func (c *DatabaseConfig) String() string {
	return fmt.Sprintf("DatabaseConfig{Driver: %s, Host: %s, Port: %s, User: %s, Password: [REDACTED], Name: %s, SSLMode: %s, Path: %s}",
		c.Driver, c.Host, c.Port, c.User, c.Name, c.SSLMode, c.Path)
}

// DSN renders the connection string for the configured driver. An empty
// driver means SQLite; unknown drivers yield an empty DSN and are rejected
// by InitDatabase.
func (c *DatabaseConfig) DSN() string {
	switch c.Driver {
	case "postgres", "postgresql":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
	case "sqlite", "":
		return c.Path
	default:
		return ""
	}
}
