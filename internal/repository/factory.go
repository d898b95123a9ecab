package repository

import (
	"fmt"
	"log"

	"mediscribe/internal/config"
	"mediscribe/internal/db"
)

// CreateStore creates the record store backend selected by configuration.
// The backends are interchangeable implementations of the same contract;
// none is authoritative.
func CreateStore(cfg *config.Config) (*Store, error) {
	switch cfg.StoreBackend {
	case "memory":
		log.Printf("[Store Factory] Using in-memory store (records are not persisted across restarts)")
		return NewMemoryStore(), nil
	case "postgres":
		log.Printf("[Store Factory] Connecting to PostgreSQL...")
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return NewPostgresStore(conn), nil
	case "mysql":
		log.Printf("[Store Factory] Connecting to MySQL...")
		return NewMySQLStore(cfg.MySQLDSN)
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", cfg.StoreBackend)
	}
}
