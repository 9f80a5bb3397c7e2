package store_test

import (
	"path/filepath"
	"testing"
	"time"

	"receipts-backend/database"
	"receipts-backend/store"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) (*store.Store, *gorm.DB) {
	t.Helper()
	db, err := database.Open(sqlite.Open(filepath.Join(t.TempDir(), "receipts.db")))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return store.New(db), db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validLine() store.LineItem {
	return store.LineItem{
		DocID:          "240101120000_ABC123",
		StoreID:        1,
		CashID:         1,
		Item:           "Milk 3.2%",
		Category:       "Dairy",
		Quantity:       2,
		UnitPrice:      10.00,
		DiscountAmount: 0,
		ReceiptDate:    day(2024, time.January, 1),
	}
}
