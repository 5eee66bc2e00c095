// Package storage is the persistence layer. A single Store is constructed
// at process start around the sqlite handle and passed to the services, so
// nothing reads from a package-level singleton.
package storage

import (
	"database/sql"
	"errors"
	"time"
)

var (
	// ErrThresholdNotFound is returned when a point update targets an id
	// that does not exist.
	ErrThresholdNotFound = errors.New("threshold not found")
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func nowTimestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
