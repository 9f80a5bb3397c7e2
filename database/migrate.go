package database

import (
	"fmt"

	"receipts-backend/models"

	"gorm.io/gorm"
)

// Migrate applies (idempotent) schema migrations:
// - AutoMigrate (tables/columns/tag-declared indexes and checks)
// - Money column types (NUMERIC) on Postgres
// - Named CHECK constraints on Postgres
// - The index set the loader and the summary view rely on
// - The sales_summary view
func Migrate(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		// The view references receipts, and SQLite rebuilds the table on
		// AutoMigrate (its reported column types never match declared ones
		// like date or numeric). The rebuild fails while the view exists,
		// so drop it up front and recreate it last.
		if err := DropView(tx, &SalesSummaryView{}); err != nil {
			return fmt.Errorf("view drop failed: %w", err)
		}

		// --- AutoMigrate tables/columns/index tags (non-destructive) ---
		if err := tx.AutoMigrate(
			&models.Receipt{},
			&models.ProcessedFile{},
		); err != nil {
			return fmt.Errorf("automigrate failed: %w", err)
		}

		if tx.Dialector.Name() == "postgres" {
			// --- Enforce money columns as NUMERIC (idempotent ALTERs) ---
			alters := []string{
				`ALTER TABLE receipts ALTER COLUMN unit_price      TYPE numeric(10,2)`,
				`ALTER TABLE receipts ALTER COLUMN discount_amount TYPE numeric(10,2)`,
				`ALTER TABLE receipts ALTER COLUMN total_price     TYPE numeric(12,2)`,
			}
			for _, stmt := range alters {
				if err := tx.Exec(stmt).Error; err != nil {
					return fmt.Errorf("money type migration failed on: %s - %w", stmt, err)
				}
			}

			// --- Named CHECK constraints (idempotent; AutoMigrate may have
			// created them from the model tags already) ---
			checks := []string{
				`DO $$
				BEGIN
					IF NOT EXISTS (
						SELECT 1 FROM pg_constraint
						WHERE conrelid = 'receipts'::regclass
						  AND conname  = 'chk_receipts_quantity_pos'
					) THEN
						ALTER TABLE receipts
						ADD CONSTRAINT chk_receipts_quantity_pos
						CHECK (quantity > 0);
					END IF;
				END $$;`,
				`DO $$
				BEGIN
					IF NOT EXISTS (
						SELECT 1 FROM pg_constraint
						WHERE conrelid = 'receipts'::regclass
						  AND conname  = 'chk_receipts_unit_price_nonneg'
					) THEN
						ALTER TABLE receipts
						ADD CONSTRAINT chk_receipts_unit_price_nonneg
						CHECK (unit_price >= 0);
					END IF;
				END $$;`,
				`DO $$
				BEGIN
					IF NOT EXISTS (
						SELECT 1 FROM pg_constraint
						WHERE conrelid = 'receipts'::regclass
						  AND conname  = 'chk_receipts_discount_nonneg'
					) THEN
						ALTER TABLE receipts
						ADD CONSTRAINT chk_receipts_discount_nonneg
						CHECK (discount_amount >= 0);
					END IF;
				END $$;`,
			}
			for _, stmt := range checks {
				if err := tx.Exec(stmt).Error; err != nil {
					return fmt.Errorf("check constraint migration failed: %w", err)
				}
			}
		}

		// --- Indexes (idempotent; same statements work on both dialects) ---
		indexes := []string{
			`CREATE INDEX IF NOT EXISTS idx_receipts_doc_id ON receipts (doc_id)`,
			`CREATE INDEX IF NOT EXISTS idx_receipts_receipt_date ON receipts (receipt_date)`,
			`CREATE INDEX IF NOT EXISTS idx_receipts_store_id ON receipts (store_id)`,
			`CREATE INDEX IF NOT EXISTS idx_receipts_store_cash ON receipts (store_id, cash_id)`,
			`CREATE INDEX IF NOT EXISTS idx_receipts_category ON receipts (category)`,
			`CREATE INDEX IF NOT EXISTS idx_receipts_file_name ON receipts (file_name)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_processed_files_file_name ON processed_files (file_name)`,
		}
		for _, stmt := range indexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Derived view; recreated so definition changes take effect ---
		if err := CreateView(tx, &SalesSummaryView{}); err != nil {
			return fmt.Errorf("view migration failed: %w", err)
		}

		return nil
	})
}
