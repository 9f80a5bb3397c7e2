// Package store implements the write and read contracts around the receipt
// schema: validated line-item insertion, the file-ingestion ledger, and the
// sales_summary read path. Aggregation itself lives in the database view;
// nothing here caches or maintains derived state.
package store

import (
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var validate = validator.New()

// Store wraps a migrated *gorm.DB. It owns no connection lifecycle; callers
// open and close the handle (see database.Connect / database.Open).
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}
