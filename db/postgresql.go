package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
)

// Config holds the connection settings for the posts database.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// LoadDBConfig retrieves the database settings from environment variables.
// Every credential is required; a missing one fails the process at startup.
func LoadDBConfig() (*Config, error) {
	cfg := &Config{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
		SSLMode:  os.Getenv("DB_SSLMODE"),
	}

	required := map[string]string{
		"DB_HOST":     cfg.Host,
		"DB_PORT":     cfg.Port,
		"DB_USER":     cfg.User,
		"DB_PASSWORD": cfg.Password,
		"DB_NAME":     cfg.Name,
	}
	for name, value := range required {
		if value == "" {
			return nil, errors.New("database environment variable " + name + " is not set")
		}
	}

	if cfg.SSLMode == "" {
		cfg.SSLMode = "disable"
	}

	return cfg, nil
}

// DSN composes the lib/pq connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// InitDB opens the connection pool and verifies it with a ping. The pool is
// returned to the caller and handed to the handlers at startup; there is no
// package-level handle.
func InitDB(ctx context.Context, dataSourceName string) (*sql.DB, error) {
	conn, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database connection")
	}

	if err = conn.PingContext(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	// Pool capacity is 10 concurrent connections shared by all requests.
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)

	log.Println("Database connection initialized successfully.")
	return conn, nil
}
